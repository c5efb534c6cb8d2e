package render

import (
	"fmt"
	"strings"

	"github.com/san-kum/verletsim/internal/sim"
)

// SVG returns snap as a standalone SVG document drawn like PNG.
func SVG(snap *sim.Snapshot, opts Options) string {
	k := opts.scale()
	width, height := snap.Width*k, snap.Height*k

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
<g stroke-width="%.1f">
`, width, height, width, height, opts.Background, k))

	idx := snap.Index()
	for _, e := range snap.Edges {
		i1, ok1 := idx[e.P1]
		i2, ok2 := idx[e.P2]
		if !ok1 || !ok2 {
			continue
		}
		p1, p2 := snap.Points[i1], snap.Points[i2]
		r, g, b, a := opts.edgeColor(e.Stress())
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="rgb(%d,%d,%d)" stroke-opacity="%.1f" class="%s"/>
`, p1.X*k, p1.Y*k, p2.X*k, p2.Y*k, r, g, b, a, e.Kind))
	}
	sb.WriteString("</g>\n<g>\n")

	size := opts.PointSize * k
	for _, p := range snap.Points {
		fill := "#ffffff"
		if p.Fixed {
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="#ffffff" fill-opacity="0.2"/>
`, p.X*k, p.Y*k, size*3))
			fill = FixedColor
		}
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, p.X*k, p.Y*k, size, fill))
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}
