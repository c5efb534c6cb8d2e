package physics

import "github.com/san-kum/verletsim/internal/vector"

// ClosestPoint returns the point nearest to query and its distance. Ties keep
// the earliest point. It fails with ErrEmptyInput when points is empty.
func ClosestPoint(query vector.Vector, points []*Point) (*Point, float64, error) {
	if len(points) == 0 {
		return nil, 0, ErrEmptyInput
	}

	closest := points[0]
	best := closest.Position.Distance(query)
	for _, p := range points[1:] {
		if d := p.Position.Distance(query); d < best {
			closest, best = p, d
		}
	}
	return closest, best, nil
}

// PointWithin returns the earliest point strictly closer than radius to query.
func PointWithin(query vector.Vector, points []*Point, radius float64) (*Point, bool) {
	for _, p := range points {
		if p.Position.Distance(query) < radius {
			return p, true
		}
	}
	return nil, false
}
