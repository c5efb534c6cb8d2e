package shape

import (
	"errors"
	"testing"

	"github.com/san-kum/verletsim/internal/physics"
)

func TestBuilder_Chaining(t *testing.T) {
	ids := physics.NewIDs()
	b := NewBuilder(ids)
	a := b.AddFixedPoint(0, 0)
	c := b.AddPoint(10, 0)
	d := b.AddPoint(10, 10)

	s, err := b.Connect(a, c).Spring(c, d, 0.3).Connect(d, a).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(s.Points()) != 3 || len(s.Edges()) != 3 {
		t.Fatalf("got %d points, %d edges; want 3, 3", len(s.Points()), len(s.Edges()))
	}
	if !a.Fixed || c.Fixed {
		t.Error("AddFixedPoint/AddPoint set the wrong fixed flag")
	}
	if k := s.Edges()[1].Kind; k != physics.Spring {
		t.Errorf("second edge kind = %s, want spring", k)
	}
}

func TestBuilder_StickyError(t *testing.T) {
	b := NewBuilder(nil)
	a := b.AddPoint(0, 0)
	c := b.AddPoint(5, 0)

	b.Spring(a, c, 0).Spring(a, c, 2).Connect(a, c)

	if !errors.Is(b.Err(), physics.ErrStiffness) {
		t.Fatalf("Err() = %v, want ErrStiffness", b.Err())
	}
	if _, err := b.Build(); !errors.Is(err, physics.ErrStiffness) {
		t.Errorf("Build error = %v, want ErrStiffness", err)
	}
}

func TestBuilder_SharesEngineIDs(t *testing.T) {
	e := physics.NewEngine()
	direct := e.NewPoint(0, 0, false)

	b := NewBuilder(e.IDs())
	built := b.AddPoint(1, 1)
	if built.ID == direct.ID {
		t.Fatalf("builder reused id %d", built.ID)
	}

	s, _ := b.Build()
	if err := e.AddShape(s); err != nil {
		t.Fatalf("AddShape: %v", err)
	}
	if len(e.Points()) != 2 {
		t.Errorf("expected 2 points, got %d", len(e.Points()))
	}
}

func TestBuilder_PrivateIDsCollideWithEngine(t *testing.T) {
	e := physics.NewEngine()
	e.NewPoint(0, 0, false)
	e.NewPoint(10, 0, false)

	b := NewBuilder(nil)
	a := b.AddPoint(100, 100)
	c := b.AddPoint(200, 100)
	s, err := b.Connect(a, c).Build()
	if err != nil {
		t.Fatal(err)
	}

	if err := e.AddShape(s); !errors.Is(err, physics.ErrDuplicateID) {
		t.Fatalf("AddShape error = %v, want ErrDuplicateID", err)
	}
	if len(e.Points()) != 2 || len(e.Edges()) != 0 {
		t.Errorf("engine changed: %d points, %d edges", len(e.Points()), len(e.Edges()))
	}
}

func TestRectangle(t *testing.T) {
	s := Rectangle(physics.NewIDs(), 500, 70, 70, 40)

	if len(s.Points()) != 4 || len(s.Edges()) != 6 {
		t.Fatalf("got %d points, %d edges; want 4, 6", len(s.Points()), len(s.Edges()))
	}

	wantRest := []float64{70, 80.62257748298549, 70, 80.62257748298549, 40, 40}
	for i, edge := range s.Edges() {
		if edge.Kind != physics.Rigid {
			t.Errorf("edge %d is %s, want rigid", i, edge.Kind)
		}
		if diff := edge.RestLength - wantRest[i]; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("edge %d rest length = %v, want %v", i, edge.RestLength, wantRest[i])
		}
	}

	// corner order matters to callers that pin one of them
	if p := s.Points()[1].Position; p.X != 570 || p.Y != 70 {
		t.Errorf("top-right corner at %v", p)
	}
}

func TestTruss(t *testing.T) {
	tests := []struct {
		name      string
		levels    int
		anchored  bool
		wantPts   int
		wantEdges int
		wantFixed int
	}{
		{"demo tower", 4, true, 10, 20, 2},
		{"free standing", 2, false, 6, 11, 0},
		{"clamped levels", 0, true, 4, 5, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Truss(physics.NewIDs(), 90, 40, 70, 70, tt.levels, tt.anchored)
			if len(s.Points()) != tt.wantPts {
				t.Errorf("points = %d, want %d", len(s.Points()), tt.wantPts)
			}
			if len(s.Edges()) != tt.wantEdges {
				t.Errorf("edges = %d, want %d", len(s.Edges()), tt.wantEdges)
			}
			fixed := 0
			for _, p := range s.Points() {
				if p.Fixed {
					fixed++
				}
			}
			if fixed != tt.wantFixed {
				t.Errorf("fixed points = %d, want %d", fixed, tt.wantFixed)
			}
		})
	}
}

func TestTruss_Layout(t *testing.T) {
	s := Truss(physics.NewIDs(), 90, 40, 70, 70, 4, true)
	pts := s.Points()

	if p := pts[0].Position; p.X != 90 || p.Y != 40 {
		t.Errorf("top-left at %v, want (90, 40)", p)
	}
	if p := pts[9].Position; p.X != 160 || p.Y != 320 {
		t.Errorf("bottom-right at %v, want (160, 320)", p)
	}
	if !pts[8].Fixed || !pts[9].Fixed || pts[7].Fixed {
		t.Error("only the bottom row should be anchored")
	}
}

func TestChain(t *testing.T) {
	s, err := Chain(physics.NewIDs(), 100, 50, 5, 20, 0.8)
	if err != nil {
		t.Fatalf("Chain: %v", err)
	}
	if len(s.Points()) != 6 || len(s.Edges()) != 5 {
		t.Fatalf("got %d points, %d edges; want 6, 5", len(s.Points()), len(s.Edges()))
	}
	if !s.Points()[0].Fixed {
		t.Error("chain anchor is not fixed")
	}
	for _, edge := range s.Edges() {
		if edge.Kind != physics.Spring || edge.Stiffness != 0.8 || edge.RestLength != 20 {
			t.Errorf("unexpected link %+v", edge)
		}
	}

	if _, err := Chain(physics.NewIDs(), 0, 0, 3, 10, -1); !errors.Is(err, physics.ErrStiffness) {
		t.Errorf("negative stiffness: err = %v, want ErrStiffness", err)
	}
}
