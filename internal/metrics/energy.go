package metrics

import "github.com/san-kum/verletsim/internal/physics"

// KineticEnergy sums ½|X - X0|² over free points, with unit mass and the
// per-step displacement standing in for velocity.
type KineticEnergy struct {
	name  string
	value float64
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "kinetic_energy"}
}

func (k *KineticEnergy) Name() string { return k.name }

func (k *KineticEnergy) Observe(e *physics.Engine, frame int) {
	k.value = 0
	for _, p := range e.Points() {
		if p.Fixed {
			continue
		}
		v := p.Velocity()
		k.value += 0.5 * (v.X*v.X + v.Y*v.Y)
	}
}

func (k *KineticEnergy) Value() float64 { return k.value }
func (k *KineticEnergy) Reset()         { k.value = 0 }
