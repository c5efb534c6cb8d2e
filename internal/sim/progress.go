package sim

import (
	"log/slog"

	"github.com/san-kum/verletsim/internal/physics"
)

// ProgressLog is an Observer that logs roughly ten debug progress lines per run.
type ProgressLog struct {
	log   *slog.Logger
	total int
	every int
}

func NewProgressLog(log *slog.Logger, total int) *ProgressLog {
	return &ProgressLog{log: log, total: total, every: max(total/10, 1)}
}

func (p *ProgressLog) OnFrame(e *physics.Engine, frame int) {
	done := frame + 1
	if done%p.every != 0 && done != p.total {
		return
	}
	p.log.Debug("progress",
		slog.Int("frame", done),
		slog.Int("of", p.total),
		slog.Int("points", len(e.Points())),
	)
}
