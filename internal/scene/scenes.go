package scene

import (
	"github.com/san-kum/verletsim/internal/config"
	"github.com/san-kum/verletsim/internal/physics"
	"github.com/san-kum/verletsim/internal/shape"
)

// Tower is the classic sandbox layout: an anchored four-level truss with a
// crane arm and hook, a loose box, and a box hanging from one pinned corner.
// Coordinates are absolute and sized for an 800x600 area.
func Tower(e *physics.Engine, _ *config.Config) error {
	ids := e.IDs()

	truss := shape.Truss(ids, 90, 40, 70, 70, 4, true)
	if err := e.AddShape(truss); err != nil {
		return err
	}
	top, below := truss.Points()[1], truss.Points()[3]

	arm := e.NewPoint(300, 40, false)
	hook := e.NewPoint(365, 198, false)
	left := e.NewPoint(345, 218, false)
	right := e.NewPoint(385, 218, false)

	for _, pair := range [][2]*physics.Point{
		{top, arm}, {below, arm}, {arm, hook},
		{hook, left}, {hook, right}, {left, right},
	} {
		if _, err := e.Connect(pair[0], pair[1]); err != nil {
			return err
		}
	}

	if err := e.AddShape(shape.Rectangle(ids, 500, 70, 70, 70)); err != nil {
		return err
	}
	square := shape.Rectangle(ids, 630, 70, 50, 50)
	square.Points()[1].SetFixed(true)
	return e.AddShape(square)
}

// Rectangles drops five boxes of growing size spread across the width.
func Rectangles(e *physics.Engine, cfg *config.Config) error {
	const n = 5
	for i := 0; i < n; i++ {
		size := 40 + float64(i)*12
		x := cfg.Width*(float64(i)+0.5)/n - size/2
		y := 40 + float64(i)*25
		if err := e.AddShape(shape.Rectangle(e.IDs(), x, y, size, size)); err != nil {
			return err
		}
	}
	return nil
}

// Chain hangs a spring rope from a pin in the upper left quarter with a box
// tied to its free end.
func Chain(e *physics.Engine, cfg *config.Config) error {
	const links = 16
	x, y := cfg.Width*0.25, cfg.Height*0.1
	spacing := cfg.Width * 0.5 / links

	rope, err := shape.Chain(e.IDs(), x, y, links, spacing, cfg.Stiffness)
	if err != nil {
		return err
	}
	if err := e.AddShape(rope); err != nil {
		return err
	}

	tail := rope.Points()[len(rope.Points())-1]
	box := shape.Rectangle(e.IDs(), tail.Position.X-15, tail.Position.Y, 30, 30)
	if err := e.AddShape(box); err != nil {
		return err
	}
	_, err = e.Connect(tail, box.Points()[0])
	return err
}

// Bridge spans a spring deck between two pins and drops a box on its middle.
func Bridge(e *physics.Engine, cfg *config.Config) error {
	const segments = 12
	x0, x1 := cfg.Width*0.15, cfg.Width*0.85
	y := cfg.Height * 0.45
	step := (x1 - x0) / segments

	b := shape.NewBuilder(e.IDs())
	prev := b.AddFixedPoint(x0, y)
	for i := 1; i <= segments; i++ {
		var p *physics.Point
		if i == segments {
			p = b.AddFixedPoint(x1, y)
		} else {
			p = b.AddPoint(x0+float64(i)*step, y)
		}
		b.Spring(prev, p, cfg.Stiffness)
		prev = p
	}
	deck, err := b.Build()
	if err != nil {
		return err
	}
	if err := e.AddShape(deck); err != nil {
		return err
	}

	size := step * 1.5
	return e.AddShape(shape.Rectangle(e.IDs(), cfg.Width/2-size/2, y-4*size, size, size))
}
