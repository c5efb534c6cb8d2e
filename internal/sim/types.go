package sim

import (
	"fmt"

	"github.com/san-kum/verletsim/internal/physics"
)

// Metric reduces the engine state after each frame to one number.
type Metric interface {
	Name() string
	Observe(e *physics.Engine, frame int)
	Value() float64
	Reset()
}

type Observer interface {
	OnFrame(e *physics.Engine, frame int)
}

type Config struct {
	Frames   int
	Substeps int
	Width    float64
	Height   float64
}

func DefaultConfig() Config {
	return Config{
		Frames:   600,
		Substeps: 24,
		Width:    800,
		Height:   600,
	}
}

type Result struct {
	FramesRun int
	// Series holds one value per completed frame for every metric.
	Series   map[string][]float64
	Metrics  map[string]float64
	Snapshot *Snapshot
	Errors   []error
}

// SimError reports a point whose position stopped being a finite number.
type SimError struct {
	Frame   int
	Point   physics.PointID
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("frame %d (point %d): %s", e.Frame, e.Point, e.Message)
}
