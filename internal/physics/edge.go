package physics

import (
	"math"

	"github.com/san-kum/verletsim/internal/vector"
)

// EdgeKind tags the constraint an Edge enforces.
type EdgeKind uint8

const (
	// Rigid edges project both endpoints back to the rest length.
	Rigid EdgeKind = iota
	// Spring edges push a proportional force into both endpoints.
	Spring
)

func (k EdgeKind) String() string {
	switch k {
	case Rigid:
		return "rigid"
	case Spring:
		return "spring"
	default:
		return "unknown"
	}
}

// PointSet resolves point identities. The Engine is the usual implementation.
type PointSet interface {
	Point(id PointID) (*Point, bool)
}

// Edge is a constraint between two points, referenced by id.
// RestLength is the endpoint distance at construction and never changes.
type Edge struct {
	ID         EdgeID
	Kind       EdgeKind
	P1, P2     PointID
	RestLength float64
	Stiffness  float64 // Spring only
}

func NewRigidEdge(id EdgeID, p1, p2 *Point) *Edge {
	return &Edge{
		ID:         id,
		Kind:       Rigid,
		P1:         p1.ID,
		P2:         p2.ID,
		RestLength: p1.Position.Distance(p2.Position),
	}
}

func NewSpringEdge(id EdgeID, p1, p2 *Point, stiffness float64) (*Edge, error) {
	if err := ValidateStiffness(stiffness); err != nil {
		return nil, err
	}
	return &Edge{
		ID:         id,
		Kind:       Spring,
		P1:         p1.ID,
		P2:         p2.ID,
		RestLength: p1.Position.Distance(p2.Position),
		Stiffness:  stiffness,
	}, nil
}

// ValidateStiffness rejects spring coefficients outside (0, 1].
func ValidateStiffness(k float64) error {
	if math.IsNaN(k) || k <= 0 || k > 1 {
		return ErrStiffness
	}
	return nil
}

func (e *Edge) Includes(id PointID) bool {
	return e.P1 == id || e.P2 == id
}

// Connects reports whether the edge joins a and b, in either order.
func (e *Edge) Connects(a, b PointID) bool {
	return e.Includes(a) && e.Includes(b)
}

// Length returns the current endpoint distance.
func (e *Edge) Length(ps PointSet) (float64, bool) {
	p1, p2, ok := e.endpoints(ps)
	if !ok {
		return 0, false
	}
	return p1.Position.Distance(p2.Position), true
}

// Stress is the relative deviation from rest length, |L - L0| / L0.
func (e *Edge) Stress(ps PointSet) float64 {
	l, ok := e.Length(ps)
	if !ok || e.RestLength == 0 {
		return 0
	}
	return math.Abs(l-e.RestLength) / e.RestLength
}

// Resolve applies the constraint once. Rigid edges move both endpoints half
// the length error each; springs add offset*stiffness as force, which the
// next Integrate consumes. Edges with a missing endpoint are skipped.
func (e *Edge) Resolve(ps PointSet) {
	p1, p2, ok := e.endpoints(ps)
	if !ok {
		return
	}

	connector := vector.Sub(p2.Position, p1.Position)
	offset := connector.Len() - e.RestLength

	switch e.Kind {
	case Rigid:
		correction := connector.Normalize().MulScalar(offset * 0.5)
		p1.Move(*correction)
		p2.Move(*correction.Negate())
	case Spring:
		force := connector.Normalize().MulScalar(offset * e.Stiffness)
		p1.AddForce(*force)
		p2.AddForce(*force.Negate())
	}
}

func (e *Edge) endpoints(ps PointSet) (*Point, *Point, bool) {
	p1, ok := ps.Point(e.P1)
	if !ok {
		return nil, nil, false
	}
	p2, ok := ps.Point(e.P2)
	if !ok {
		return nil, nil, false
	}
	return p1, p2, true
}
