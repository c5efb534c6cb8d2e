package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/verletsim/internal/physics"
	"github.com/san-kum/verletsim/internal/vector"
)

func TestKineticEnergy(t *testing.T) {
	e := physics.NewEngine()
	a := e.NewPoint(0, 0, false)
	b := e.NewPoint(10, 10, false)
	pinned := e.NewPoint(50, 50, true)
	a.Position = vector.New(3, 4)
	b.Position = vector.New(10, 12)
	pinned.Position = vector.New(80, 80)

	m := NewKineticEnergy()
	m.Observe(e, 0)

	expected := 0.5*25 + 0.5*4
	if math.Abs(m.Value()-expected) > 1e-12 {
		t.Errorf("expected energy %f, got %f", expected, m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero energy after reset")
	}
}

func TestKineticEnergy_AtRest(t *testing.T) {
	e := physics.NewEngine()
	e.NewPoint(1, 1, false)

	m := NewKineticEnergy()
	m.Observe(e, 0)
	if m.Value() != 0 {
		t.Errorf("expected zero energy at rest, got %f", m.Value())
	}
}

func TestMaxStress(t *testing.T) {
	e := physics.NewEngine()
	a := e.NewPoint(0, 0, false)
	b := e.NewPoint(10, 0, false)
	c := e.NewPoint(0, 20, false)
	e.Connect(a, b)
	e.Connect(a, c)

	b.Position = vector.New(11, 0)
	c.Position = vector.New(0, 14)

	m := NewMaxStress()
	m.Observe(e, 0)
	if math.Abs(m.Value()-0.3) > 1e-12 {
		t.Errorf("expected max stress 0.3, got %f", m.Value())
	}

	e.Reset()
	m.Observe(e, 1)
	if m.Value() != 0 {
		t.Errorf("expected zero stress without edges, got %f", m.Value())
	}
}

func TestStability(t *testing.T) {
	e := physics.NewEngine()
	a := e.NewPoint(0, 0, false)
	b := e.NewPoint(10, 0, false)
	e.Connect(a, b)

	s := NewStability(0.15)
	if s.Value() != 1 {
		t.Errorf("expected 1 before samples, got %f", s.Value())
	}

	s.Observe(e, 0)
	b.Position = vector.New(12, 0)
	s.Observe(e, 1)

	if s.Value() != 0.5 {
		t.Errorf("expected stability 0.5, got %f", s.Value())
	}

	s.Reset()
	if s.Value() != 1 {
		t.Errorf("expected 1 after reset, got %f", s.Value())
	}
}

func TestFloorContacts(t *testing.T) {
	e := physics.NewEngine()
	e.NewPoint(10, 99, false)
	e.NewPoint(20, 99, false)
	e.NewPoint(30, 50, false)
	e.NewPoint(40, 99, true)

	f := NewFloorContacts(100)
	f.Observe(e, 0)
	if f.Value() != 2 {
		t.Errorf("expected 2 contacts, got %f", f.Value())
	}
}

func TestDefault(t *testing.T) {
	seen := make(map[string]bool)
	for _, m := range Default(600) {
		if seen[m.Name()] {
			t.Errorf("duplicate metric %s", m.Name())
		}
		seen[m.Name()] = true
	}
	for _, name := range []string{"kinetic_energy", "max_stress", "stability", "floor_contacts"} {
		if !seen[name] {
			t.Errorf("missing metric %s", name)
		}
	}
}
