package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/verletsim/internal/physics"
)

// Runner drives an engine headlessly for a fixed number of frames.
type Runner struct {
	engine    *physics.Engine
	metrics   []Metric
	observers []Observer
}

func New(e *physics.Engine) *Runner {
	return &Runner{
		engine:    e,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (r *Runner) Engine() *physics.Engine { return r.engine }
func (r *Runner) AddMetric(m Metric)      { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer)  { r.observers = append(r.observers, o) }

// Run advances the engine cfg.Frames times. Cancellation is checked between
// frames and returns the partial result together with ctx.Err(). A point
// that goes NaN or infinite ends the run early with a SimError in
// Result.Errors.
func (r *Runner) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	result := &Result{
		Series:  make(map[string][]float64, len(r.metrics)),
		Metrics: make(map[string]float64, len(r.metrics)),
		Errors:  make([]error, 0),
	}

	for _, m := range r.metrics {
		m.Reset()
		result.Series[m.Name()] = make([]float64, 0, cfg.Frames)
	}

	for frame := 0; frame < cfg.Frames; frame++ {
		select {
		case <-ctx.Done():
			r.finish(result, cfg)
			return result, ctx.Err()
		default:
		}

		r.engine.Update(cfg.Substeps, cfg.Width, cfg.Height)

		if id, ok := firstInvalid(r.engine); ok {
			result.Errors = append(result.Errors, SimError{Frame: frame, Point: id, Message: "invalid position (NaN/Inf)"})
			break
		}

		for _, m := range r.metrics {
			m.Observe(r.engine, frame)
			result.Series[m.Name()] = append(result.Series[m.Name()], m.Value())
		}
		for _, obs := range r.observers {
			obs.OnFrame(r.engine, frame)
		}
		result.FramesRun++
	}

	r.finish(result, cfg)
	return result, nil
}

// RunWithCallback steps frame by frame until fn returns false, the context
// ends, or cfg.Frames is reached. Frames of 0 means no limit.
func (r *Runner) RunWithCallback(ctx context.Context, cfg Config, fn func(e *physics.Engine, frame int) bool) error {
	if err := validateConfig(cfg); err != nil {
		return err
	}

	for frame := 0; cfg.Frames == 0 || frame < cfg.Frames; frame++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		r.engine.Update(cfg.Substeps, cfg.Width, cfg.Height)
		if id, ok := firstInvalid(r.engine); ok {
			return SimError{Frame: frame, Point: id, Message: "invalid position (NaN/Inf)"}
		}
		if !fn(r.engine, frame) {
			return nil
		}
	}
	return nil
}

func (r *Runner) finish(result *Result, cfg Config) {
	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	result.Snapshot = Capture(r.engine, result.FramesRun, cfg.Width, cfg.Height)
}

func validateConfig(cfg Config) error {
	if cfg.Frames < 0 {
		return fmt.Errorf("frames must not be negative, got %d", cfg.Frames)
	}
	if cfg.Substeps < 1 {
		return fmt.Errorf("substeps must be at least 1, got %d", cfg.Substeps)
	}
	if !(cfg.Width > 0) || !(cfg.Height > 0) {
		return fmt.Errorf("bounds must be positive, got %vx%v", cfg.Width, cfg.Height)
	}
	return nil
}

func firstInvalid(e *physics.Engine) (physics.PointID, bool) {
	for _, p := range e.Points() {
		x, y := p.Position.X, p.Position.Y
		if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
			return p.ID, true
		}
	}
	return 0, false
}
