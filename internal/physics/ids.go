package physics

type (
	PointID uint64
	EdgeID  uint64
)

// IDs hands out monotonically increasing point and edge identities.
// Every Engine owns one; shape builders borrow the engine's so that
// bulk-built groups never collide with points created directly.
type IDs struct {
	nextPoint PointID
	nextEdge  EdgeID
}

func NewIDs() *IDs {
	return &IDs{}
}

func (ids *IDs) NextPoint() PointID {
	id := ids.nextPoint
	ids.nextPoint++
	return id
}

func (ids *IDs) NextEdge() EdgeID {
	id := ids.nextEdge
	ids.nextEdge++
	return id
}

// NewPoint creates an unregistered point with the next point id.
func (ids *IDs) NewPoint(x, y float64, fixed bool) *Point {
	return NewPoint(ids.NextPoint(), x, y, fixed)
}

// NewRigidEdge creates an unregistered rigid edge with the next edge id.
func (ids *IDs) NewRigidEdge(p1, p2 *Point) *Edge {
	return NewRigidEdge(ids.NextEdge(), p1, p2)
}

// NewSpringEdge creates an unregistered spring edge with the next edge id.
// No id is consumed when stiffness is rejected.
func (ids *IDs) NewSpringEdge(p1, p2 *Point, stiffness float64) (*Edge, error) {
	if err := ValidateStiffness(stiffness); err != nil {
		return nil, err
	}
	return NewSpringEdge(ids.NextEdge(), p1, p2, stiffness)
}
