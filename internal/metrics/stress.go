package metrics

import "github.com/san-kum/verletsim/internal/physics"

// MaxStress is the largest |L - L0| / L0 over all edges in the last frame.
type MaxStress struct {
	name  string
	value float64
}

func NewMaxStress() *MaxStress {
	return &MaxStress{name: "max_stress"}
}

func (m *MaxStress) Name() string { return m.name }

func (m *MaxStress) Observe(e *physics.Engine, frame int) {
	m.value = peakStress(e)
}

func (m *MaxStress) Value() float64 { return m.value }
func (m *MaxStress) Reset()         { m.value = 0 }

func peakStress(e *physics.Engine) float64 {
	peak := 0.0
	for _, edge := range e.Edges() {
		if s := edge.Stress(e); s > peak {
			peak = s
		}
	}
	return peak
}
