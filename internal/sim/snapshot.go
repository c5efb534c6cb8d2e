package sim

import "github.com/san-kum/verletsim/internal/physics"

type PointState struct {
	ID    physics.PointID `json:"id"`
	X     float64         `json:"x"`
	Y     float64         `json:"y"`
	Fixed bool            `json:"fixed"`
}

type EdgeState struct {
	ID         physics.EdgeID  `json:"id"`
	Kind       string          `json:"kind"`
	P1         physics.PointID `json:"p1"`
	P2         physics.PointID `json:"p2"`
	RestLength float64         `json:"rest_length"`
	Length     float64         `json:"length"`
	Stiffness  float64         `json:"stiffness,omitempty"`
}

// Stress is the relative deviation from rest length.
func (e EdgeState) Stress() float64 {
	if e.RestLength == 0 {
		return 0
	}
	d := e.Length - e.RestLength
	if d < 0 {
		d = -d
	}
	return d / e.RestLength
}

// Snapshot is a detached copy of an engine's points and edges, safe to keep
// after the engine moves on.
type Snapshot struct {
	Frame  int          `json:"frame"`
	Width  float64      `json:"width"`
	Height float64      `json:"height"`
	Points []PointState `json:"points"`
	Edges  []EdgeState  `json:"edges"`
}

func Capture(e *physics.Engine, frame int, width, height float64) *Snapshot {
	s := &Snapshot{
		Frame:  frame,
		Width:  width,
		Height: height,
		Points: make([]PointState, 0, len(e.Points())),
		Edges:  make([]EdgeState, 0, len(e.Edges())),
	}
	for _, p := range e.Points() {
		s.Points = append(s.Points, PointState{ID: p.ID, X: p.Position.X, Y: p.Position.Y, Fixed: p.Fixed})
	}
	for _, edge := range e.Edges() {
		l, ok := edge.Length(e)
		if !ok {
			continue
		}
		s.Edges = append(s.Edges, EdgeState{
			ID:         edge.ID,
			Kind:       edge.Kind.String(),
			P1:         edge.P1,
			P2:         edge.P2,
			RestLength: edge.RestLength,
			Length:     l,
			Stiffness:  edge.Stiffness,
		})
	}
	return s
}

// Index maps point ids to their position in Points.
func (s *Snapshot) Index() map[physics.PointID]int {
	idx := make(map[physics.PointID]int, len(s.Points))
	for i, p := range s.Points {
		idx[p.ID] = i
	}
	return idx
}
