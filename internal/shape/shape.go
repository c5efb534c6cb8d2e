// Package shape assembles groups of points and edges that are merged into
// an engine in one call.
package shape

import "github.com/san-kum/verletsim/internal/physics"

// Shape is a finished, unregistered group of points and edges.
type Shape struct {
	points []*physics.Point
	edges  []*physics.Edge
}

func (s *Shape) Points() []*physics.Point { return s.points }
func (s *Shape) Edges() []*physics.Edge   { return s.edges }

// Builder collects points and edges for a Shape. Identities come from the
// IDs it was created with, normally the target engine's.
//
// A spring with an invalid stiffness does not stop the chain of calls; the
// first such failure is kept and reported by Err and Build.
type Builder struct {
	ids    *physics.IDs
	points []*physics.Point
	edges  []*physics.Edge
	err    error
}

// NewBuilder returns a builder drawing identities from ids. A nil ids gets a
// private sequence; merging such a shape into an engine that already holds
// those ids fails with physics.ErrDuplicateID.
func NewBuilder(ids *physics.IDs) *Builder {
	if ids == nil {
		ids = physics.NewIDs()
	}
	return &Builder{ids: ids}
}

func (b *Builder) AddPoint(x, y float64) *physics.Point {
	return b.add(x, y, false)
}

func (b *Builder) AddFixedPoint(x, y float64) *physics.Point {
	return b.add(x, y, true)
}

func (b *Builder) add(x, y float64, fixed bool) *physics.Point {
	p := b.ids.NewPoint(x, y, fixed)
	b.points = append(b.points, p)
	return p
}

// Connect appends a rigid edge between p1 and p2.
func (b *Builder) Connect(p1, p2 *physics.Point) *Builder {
	b.edges = append(b.edges, b.ids.NewRigidEdge(p1, p2))
	return b
}

// Spring appends a spring edge between p1 and p2.
func (b *Builder) Spring(p1, p2 *physics.Point, stiffness float64) *Builder {
	edge, err := b.ids.NewSpringEdge(p1, p2, stiffness)
	if err != nil {
		if b.err == nil {
			b.err = &physics.LinkError{P1: p1.ID, P2: p2.ID, Wrapped: err}
		}
		return b
	}
	b.edges = append(b.edges, edge)
	return b
}

func (b *Builder) Err() error { return b.err }

func (b *Builder) Build() (*Shape, error) {
	if b.err != nil {
		return nil, b.err
	}
	return &Shape{points: b.points, edges: b.edges}, nil
}
