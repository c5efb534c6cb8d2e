package render

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/gogpu/gg"

	"github.com/san-kum/verletsim/internal/physics"
	"github.com/san-kum/verletsim/internal/sim"
)

// PNG rasterizes snap at its own width and height. Edges are drawn first so
// points sit on top; fixed points get a translucent halo.
func PNG(w io.Writer, snap *sim.Snapshot, opts Options) error {
	k := opts.scale()
	width := int(math.Ceil(snap.Width * k))
	height := int(math.Ceil(snap.Height * k))
	if width <= 0 || height <= 0 {
		return fmt.Errorf("render: empty canvas %dx%d", width, height)
	}

	dc := gg.NewContext(width, height)
	defer dc.Close()

	dc.ClearWithColor(gg.Hex(opts.Background))
	dc.SetLineWidth(k)

	idx := snap.Index()
	for _, e := range snap.Edges {
		i1, ok1 := idx[e.P1]
		i2, ok2 := idx[e.P2]
		if !ok1 || !ok2 {
			continue
		}
		p1, p2 := snap.Points[i1], snap.Points[i2]

		r, g, b, a := opts.edgeColor(e.Stress())
		dc.SetRGBA(float64(r)/255, float64(g)/255, float64(b)/255, a)
		dc.DrawLine(p1.X*k, p1.Y*k, p2.X*k, p2.Y*k)
		if err := dc.Stroke(); err != nil {
			return fmt.Errorf("render: edge %d: %w", e.ID, err)
		}
	}

	size := opts.PointSize * k
	for _, p := range snap.Points {
		if p.Fixed {
			dc.SetRGBA(1, 1, 1, 0.2)
			dc.DrawCircle(p.X*k, p.Y*k, size*3)
			if err := dc.Fill(); err != nil {
				return fmt.Errorf("render: point %d: %w", p.ID, err)
			}
			dc.SetHexColor(FixedColor)
		} else {
			dc.SetRGB(1, 1, 1)
		}
		dc.DrawCircle(p.X*k, p.Y*k, size)
		if err := dc.Fill(); err != nil {
			return fmt.Errorf("render: point %d: %w", p.ID, err)
		}
	}

	return dc.EncodePNG(w)
}

func SavePNG(path string, snap *sim.Snapshot, opts Options) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := PNG(f, snap, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Frame captures the engine and renders it in one call.
func Frame(w io.Writer, e *physics.Engine, width, height float64, opts Options) error {
	return PNG(w, sim.Capture(e, 0, width, height), opts)
}
