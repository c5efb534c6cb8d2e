package physics

import (
	"math"

	"github.com/san-kum/verletsim/internal/vector"
)

// Point is a simulated particle. Velocity is implicit: it is the difference
// between Position and Previous. A fixed point never moves under forces or
// constraint corrections.
type Point struct {
	ID       PointID
	Position vector.Vector
	Previous vector.Vector
	Force    vector.Vector
	Fixed    bool
}

func NewPoint(id PointID, x, y float64, fixed bool) *Point {
	return &Point{
		ID:       id,
		Position: vector.New(x, y),
		Previous: vector.New(x, y),
		Fixed:    fixed,
	}
}

func (p *Point) Move(delta vector.Vector) {
	if p.Fixed {
		return
	}
	p.Position.Add(delta)
}

func (p *Point) AddForce(f vector.Vector) {
	if p.Fixed {
		return
	}
	p.Force.Add(f)
}

// Integrate advances the point one Verlet step:
//
//	X' = X + (X - X0) + A*dt²
//
// The accumulated force is consumed and X0 becomes the pre-step X.
func (p *Point) Integrate(dt float64) {
	if p.Fixed {
		return
	}
	x := p.Position
	p.Force.MulScalar(dt * dt)
	p.Position.Add(vector.Sub(x, p.Previous)).Add(p.Force)
	p.Force.Reset()
	p.Previous = x
}

// ClampToBounds keeps the point one unit inside the rectangle. A point
// resting on the floor (max Y) loses its horizontal velocity for the step;
// the other three walls have no friction.
func (p *Point) ClampToBounds(minX, minY, maxX, maxY float64) {
	if p.Fixed {
		return
	}
	p.Position.X = math.Max(minX+1, math.Min(maxX-1, p.Position.X))
	p.Position.Y = math.Max(minY+1, math.Min(maxY-1, p.Position.Y))

	if p.Position.Y >= maxY-1 {
		p.Position.X -= p.Position.X - p.Previous.X + p.Force.X
	}
}

// Velocity returns the implicit per-step velocity.
func (p *Point) Velocity() vector.Vector {
	return vector.Sub(p.Position, p.Previous)
}

// Place teleports the point, fixed or not, and zeroes its velocity.
// It is an editing operation for hosts, not part of the simulation.
func (p *Point) Place(pos vector.Vector) {
	p.Position = pos
	p.Previous = pos
	p.Force.Reset()
}

// SetFixed pins or frees the point. Pinning drops any pending velocity and
// force so the anchor holds exactly where it is.
func (p *Point) SetFixed(fixed bool) {
	p.Fixed = fixed
	if fixed {
		p.Previous = p.Position
		p.Force.Reset()
	}
}
