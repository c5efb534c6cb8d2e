// Package render draws snapshots of the simulation to PNG and SVG.
package render

import "math"

const FixedColor = "#EDEA26"

type Options struct {
	PointSize float64
	// StressRatio is the stress at which an edge is drawn fully red.
	StressRatio float64
	ShowStress  bool
	Background  string
	// Scale multiplies every coordinate and the output size.
	Scale float64
}

func DefaultOptions() Options {
	return Options{
		PointSize:   4,
		StressRatio: 0.15,
		ShowStress:  true,
		Background:  "#0a0a0a",
		Scale:       1,
	}
}

// StressColor maps an edge stress to a white-to-red ramp that saturates at
// ratio.
func StressColor(stress, ratio float64) (r, g, b uint8) {
	if ratio <= 0 {
		return 255, 0, 0
	}
	per := uint8(math.Round(math.Min(math.Abs(stress/ratio), 1) * 255))
	return 255, 255 - per, 255 - per
}

func (o Options) edgeColor(stress float64) (r, g, b uint8, a float64) {
	if !o.ShowStress {
		return 255, 255, 255, 0.8
	}
	r, g, b = StressColor(stress, o.StressRatio)
	return r, g, b, 1
}

func (o Options) scale() float64 {
	if o.Scale <= 0 {
		return 1
	}
	return o.Scale
}
