package physics

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/san-kum/verletsim/internal/vector"
)

// DefaultGravity is the per-step acceleration applied to every free point.
var DefaultGravity = vector.New(0, 0.98)

// Group is a bundle of points and edges merged in one call, e.g. a shape.
type Group interface {
	Points() []*Point
	Edges() []*Edge
}

type Option func(*Engine)

func WithGravity(g vector.Vector) Option {
	return func(e *Engine) { e.gravity = g }
}

type drag struct {
	id     PointID
	target vector.Vector
}

// Engine owns the canonical point and edge collections. Insertion order is
// resolution order.
type Engine struct {
	points    []*Point
	edges     []*Edge
	index     map[PointID]*Point
	edgeIndex map[EdgeID]*Edge
	ids       *IDs
	gravity   vector.Vector
	grab      *drag
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		points:    make([]*Point, 0),
		edges:     make([]*Edge, 0),
		index:     make(map[PointID]*Point),
		edgeIndex: make(map[EdgeID]*Edge),
		ids:       NewIDs(),
		gravity:   DefaultGravity,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) IDs() *IDs                  { return e.ids }
func (e *Engine) Gravity() vector.Vector     { return e.gravity }
func (e *Engine) SetGravity(g vector.Vector) { e.gravity = g }
func (e *Engine) Points() []*Point           { return e.points }
func (e *Engine) Edges() []*Edge             { return e.edges }

func (e *Engine) Point(id PointID) (*Point, bool) {
	p, ok := e.index[id]
	return p, ok
}

// Update advances the simulation by one frame split into substeps. Every
// sub-step applies gravity, integrates and clamps all points to
// [0,width]x[0,height], and only then resolves all edges.
func (e *Engine) Update(substeps int, width, height float64) {
	if substeps < 1 {
		logger().Debug("update skipped", slog.Int("substeps", substeps))
		return
	}

	dt := 1 / float64(substeps)
	for n := 0; n < substeps; n++ {
		e.pullDragged(substeps)

		for _, p := range e.points {
			p.AddForce(e.gravity)
			p.Integrate(dt)
			p.ClampToBounds(0, 0, width, height)
		}

		for _, edge := range e.edges {
			edge.Resolve(e)
		}
	}
}

// NewPoint creates a point with the engine's next id and registers it.
func (e *Engine) NewPoint(x, y float64, fixed bool) *Point {
	return e.AddPoint(e.ids.NewPoint(x, y, fixed))
}

// AddPoint registers p. Adding a point whose id is already present is a
// no-op that returns the stored instance.
func (e *Engine) AddPoint(p *Point) *Point {
	if existing, ok := e.index[p.ID]; ok {
		return existing
	}
	e.points = append(e.points, p)
	e.index[p.ID] = p
	return p
}

// RemovePoint removes p and every edge that references it. Removing a point
// that is not present is a no-op.
func (e *Engine) RemovePoint(p *Point) {
	removed := 0
	for i := len(e.edges) - 1; i >= 0; i-- {
		edge := e.edges[i]
		if edge.Includes(p.ID) {
			delete(e.edgeIndex, edge.ID)
			e.edges = slices.Delete(e.edges, i, i+1)
			removed++
		}
	}

	if _, ok := e.index[p.ID]; !ok {
		return
	}
	delete(e.index, p.ID)
	if i := slices.IndexFunc(e.points, func(q *Point) bool { return q.ID == p.ID }); i >= 0 {
		e.points = slices.Delete(e.points, i, i+1)
	}
	if e.grab != nil && e.grab.id == p.ID {
		e.grab = nil
	}

	logger().Debug("point removed", slog.Uint64("id", uint64(p.ID)), slog.Int("edges", removed))
}

// AddEdge registers edge. Both endpoints must already be registered. Adding
// an edge whose id is already present returns the stored instance.
func (e *Engine) AddEdge(edge *Edge) (*Edge, error) {
	if existing, ok := e.edgeIndex[edge.ID]; ok {
		return existing, nil
	}
	for _, id := range [2]PointID{edge.P1, edge.P2} {
		if _, ok := e.index[id]; !ok {
			return nil, &LinkError{P1: edge.P1, P2: edge.P2, Wrapped: ErrUnknownPoint}
		}
	}
	e.edges = append(e.edges, edge)
	e.edgeIndex[edge.ID] = edge
	return edge, nil
}

// RemoveEdge unlinks edge. Removing an absent edge is a no-op.
func (e *Engine) RemoveEdge(edge *Edge) {
	if _, ok := e.edgeIndex[edge.ID]; !ok {
		return
	}
	delete(e.edgeIndex, edge.ID)
	if i := slices.IndexFunc(e.edges, func(x *Edge) bool { return x.ID == edge.ID }); i >= 0 {
		e.edges = slices.Delete(e.edges, i, i+1)
	}
}

// Connect links p1 and p2 with a rigid edge at their current distance.
func (e *Engine) Connect(p1, p2 *Point) (*Edge, error) {
	if err := e.checkLink(p1, p2); err != nil {
		return nil, err
	}
	return e.AddEdge(e.ids.NewRigidEdge(p1, p2))
}

// Spring links p1 and p2 with a spring edge at their current distance.
func (e *Engine) Spring(p1, p2 *Point, stiffness float64) (*Edge, error) {
	if err := e.checkLink(p1, p2); err != nil {
		return nil, err
	}
	edge, err := e.ids.NewSpringEdge(p1, p2, stiffness)
	if err != nil {
		return nil, &LinkError{P1: p1.ID, P2: p2.ID, Wrapped: err}
	}
	return e.AddEdge(edge)
}

func (e *Engine) checkLink(p1, p2 *Point) error {
	for _, p := range [2]*Point{p1, p2} {
		if _, ok := e.index[p.ID]; !ok {
			return &LinkError{P1: p1.ID, P2: p2.ID, Wrapped: ErrUnknownPoint}
		}
	}
	return nil
}

// PointsAreConnected returns the first edge joining p1 and p2, if any.
func (e *Engine) PointsAreConnected(p1, p2 *Point) (*Edge, bool) {
	for _, edge := range e.edges {
		if edge.Connects(p1.ID, p2.ID) {
			return edge, true
		}
	}
	return nil, false
}

// AddShape merges a group wholesale: its points first, then its edges.
//
// An id already held by a different point or edge instance means g was built
// from another id sequence; AddShape then fails with ErrDuplicateID before
// adding anything.
func (e *Engine) AddShape(g Group) error {
	for _, p := range g.Points() {
		if existing, ok := e.index[p.ID]; ok && existing != p {
			return fmt.Errorf("point %d: %w", p.ID, ErrDuplicateID)
		}
	}
	for _, edge := range g.Edges() {
		if existing, ok := e.edgeIndex[edge.ID]; ok && existing != edge {
			return fmt.Errorf("edge %d: %w", edge.ID, ErrDuplicateID)
		}
	}

	for _, p := range g.Points() {
		e.AddPoint(p)
	}
	for _, edge := range g.Edges() {
		if _, err := e.AddEdge(edge); err != nil {
			return err
		}
	}
	return nil
}

// Drag grabs p and pulls it toward target by 1/substeps of the remaining
// distance at the start of every sub-step. Free points gain velocity from
// the pull; fixed points are carried along without any.
func (e *Engine) Drag(p *Point, target vector.Vector) bool {
	if _, ok := e.index[p.ID]; !ok {
		return false
	}
	e.grab = &drag{id: p.ID, target: target}
	return true
}

func (e *Engine) Release() { e.grab = nil }

// Dragged returns the grabbed point, if any.
func (e *Engine) Dragged() (*Point, bool) {
	if e.grab == nil {
		return nil, false
	}
	return e.Point(e.grab.id)
}

func (e *Engine) pullDragged(substeps int) {
	p, ok := e.Dragged()
	if !ok {
		return
	}
	pull := vector.Sub(e.grab.target, p.Position)
	pull.DivScalar(float64(substeps))
	if p.Fixed {
		p.Place(vector.Add(p.Position, pull))
		return
	}
	p.Position.Add(pull)
}

// Reset drops every point and edge. The id sequence keeps counting.
func (e *Engine) Reset() {
	e.points = e.points[:0]
	e.edges = e.edges[:0]
	clear(e.index)
	clear(e.edgeIndex)
	e.grab = nil
}
