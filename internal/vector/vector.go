// Package vector provides the 2D vector value type used by the simulator.
//
// Methods mutate the receiver and return it so calls can be chained:
//
//	v := vector.New(3, 4)
//	v.Sub(origin).Normalize().MulScalar(2)
//
// The package-level functions of the same names leave their inputs untouched
// and return a new value instead.
package vector

import (
	"fmt"
	"math"
)

type Vector struct {
	X, Y float64
}

func New(x, y float64) Vector {
	return Vector{X: x, Y: y}
}

func (v *Vector) Add(o Vector) *Vector {
	v.X += o.X
	v.Y += o.Y
	return v
}

func (v *Vector) Sub(o Vector) *Vector {
	v.X -= o.X
	v.Y -= o.Y
	return v
}

// Mul multiplies component-wise.
func (v *Vector) Mul(o Vector) *Vector {
	v.X *= o.X
	v.Y *= o.Y
	return v
}

// Div divides component-wise.
func (v *Vector) Div(o Vector) *Vector {
	v.X /= o.X
	v.Y /= o.Y
	return v
}

func (v *Vector) AddScalar(s float64) *Vector {
	v.X += s
	v.Y += s
	return v
}

func (v *Vector) SubScalar(s float64) *Vector {
	v.X -= s
	v.Y -= s
	return v
}

func (v *Vector) MulScalar(s float64) *Vector {
	v.X *= s
	v.Y *= s
	return v
}

func (v *Vector) DivScalar(s float64) *Vector {
	v.X /= s
	v.Y /= s
	return v
}

// Normalize scales v to unit length. A zero vector is left as is.
func (v *Vector) Normalize() *Vector {
	l := v.Len()
	if l > 0 {
		v.X /= l
		v.Y /= l
	}
	return v
}

func (v *Vector) Negate() *Vector {
	v.X = -v.X
	v.Y = -v.Y
	return v
}

func (v *Vector) Reset() *Vector {
	v.X, v.Y = 0, 0
	return v
}

func (v Vector) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

func (v Vector) Distance(o Vector) float64 {
	dx := v.X - o.X
	dy := v.Y - o.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// IsValid reports whether both components are finite.
func (v Vector) IsValid() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) && !math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

func (v Vector) String() string {
	return fmt.Sprintf("(%.3f, %.3f)", v.X, v.Y)
}

func Add(a, b Vector) Vector { return Vector{a.X + b.X, a.Y + b.Y} }
func Sub(a, b Vector) Vector { return Vector{a.X - b.X, a.Y - b.Y} }
func Mul(a, b Vector) Vector { return Vector{a.X * b.X, a.Y * b.Y} }
func Div(a, b Vector) Vector { return Vector{a.X / b.X, a.Y / b.Y} }

func AddScalar(a Vector, s float64) Vector { return Vector{a.X + s, a.Y + s} }
func SubScalar(a Vector, s float64) Vector { return Vector{a.X - s, a.Y - s} }
func MulScalar(a Vector, s float64) Vector { return Vector{a.X * s, a.Y * s} }
func DivScalar(a Vector, s float64) Vector { return Vector{a.X / s, a.Y / s} }
