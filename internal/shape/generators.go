package shape

import "github.com/san-kum/verletsim/internal/physics"

// Rectangle is a braced box: corners ordered top-left, top-right,
// bottom-left, bottom-right, joined by four sides and both diagonals.
func Rectangle(ids *physics.IDs, x, y, w, h float64) *Shape {
	b := NewBuilder(ids)
	p1 := b.AddPoint(x, y)
	p2 := b.AddPoint(x+w, y)
	p3 := b.AddPoint(x, y+h)
	p4 := b.AddPoint(x+w, y+h)

	b.Connect(p1, p2).
		Connect(p2, p3).
		Connect(p3, p4).
		Connect(p4, p1).
		Connect(p1, p3).
		Connect(p2, p4)

	s, _ := b.Build()
	return s
}

// Truss is a two-column tower of levels cross-braced cells standing on its
// bottom row. Points are row-major from the top: row i holds points 2i (left)
// and 2i+1 (right). When anchored the bottom row is fixed and left unbraced
// horizontally, since an edge between two anchors never does anything.
func Truss(ids *physics.IDs, x, y, cellW, cellH float64, levels int, anchored bool) *Shape {
	if levels < 1 {
		levels = 1
	}
	b := NewBuilder(ids)

	rows := make([][2]*physics.Point, levels+1)
	for i := range rows {
		fixed := anchored && i == levels
		rows[i][0] = b.add(x, y+float64(i)*cellH, fixed)
		rows[i][1] = b.add(x+cellW, y+float64(i)*cellH, fixed)
	}

	for i, row := range rows {
		if anchored && i == levels {
			break
		}
		b.Connect(row[0], row[1])
	}
	for side := 0; side < 2; side++ {
		for i := 0; i < levels; i++ {
			b.Connect(rows[i][side], rows[i+1][side])
		}
	}
	for i := 0; i < levels; i++ {
		b.Connect(rows[i][0], rows[i+1][1]).
			Connect(rows[i][1], rows[i+1][0])
	}

	s, _ := b.Build()
	return s
}

// Chain is a rope of springs laid out to the right of a fixed anchor at
// (x, y). It has links+1 points.
func Chain(ids *physics.IDs, x, y float64, links int, spacing, stiffness float64) (*Shape, error) {
	b := NewBuilder(ids)
	prev := b.AddFixedPoint(x, y)
	for i := 1; i <= links; i++ {
		p := b.AddPoint(x+float64(i)*spacing, y)
		b.Spring(prev, p, stiffness)
		prev = p
	}
	return b.Build()
}
