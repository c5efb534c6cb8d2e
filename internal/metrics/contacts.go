package metrics

import "github.com/san-kum/verletsim/internal/physics"

// FloorContacts counts free points resting on the floor of a world of the
// given height, where the clamp holds them at height-1.
type FloorContacts struct {
	name   string
	height float64
	value  int
}

func NewFloorContacts(height float64) *FloorContacts {
	return &FloorContacts{name: "floor_contacts", height: height}
}

func (f *FloorContacts) Name() string { return f.name }

func (f *FloorContacts) Observe(e *physics.Engine, frame int) {
	f.value = 0
	for _, p := range e.Points() {
		if !p.Fixed && p.Position.Y >= f.height-1 {
			f.value++
		}
	}
}

func (f *FloorContacts) Value() float64 { return float64(f.value) }
func (f *FloorContacts) Reset()         { f.value = 0 }
