package viz

import (
	"strings"
	"testing"
)

func TestCanvas_Set(t *testing.T) {
	tests := []struct {
		x, y int
		want rune
	}{
		{0, 0, 0x2801},
		{1, 0, 0x2808},
		{0, 3, 0x2840},
		{1, 3, 0x2880},
	}

	for _, tt := range tests {
		c := NewCanvas(2, 2)
		c.Set(tt.x, tt.y)
		if got := c.Grid[0][0]; got != tt.want {
			t.Errorf("Set(%d, %d) = %U, want %U", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestCanvas_OutOfRange(t *testing.T) {
	c := NewCanvas(2, 2)
	c.Set(-1, 0)
	c.Set(4, 0)
	c.Set(0, 8)
	c.Mark(100, 100, 'x')
	if strings.ContainsFunc(c.String(), func(r rune) bool { return r != blank && r != '\n' }) {
		t.Errorf("out of range writes changed the canvas:\n%s", c.String())
	}
}

func TestCanvas_DrawLine(t *testing.T) {
	c := NewCanvas(3, 1)
	c.DrawLine(0, 0, 3, 0)
	if c.Grid[0][0] != 0x2809 || c.Grid[0][1] != 0x2809 {
		t.Errorf("horizontal line cells = %U %U, want U+2809", c.Grid[0][0], c.Grid[0][1])
	}
	if c.Grid[0][2] != blank {
		t.Errorf("line overran into cell 2: %U", c.Grid[0][2])
	}
}

func TestCanvas_MarkAndClear(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Set(2, 4)
	c.Mark(2, 4, '+')

	lines := strings.Split(strings.TrimSuffix(c.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if []rune(lines[1])[1] != '+' {
		t.Errorf("mark not drawn: %q", lines[1])
	}

	c.Clear()
	if strings.ContainsRune(c.String(), '+') || c.Grid[1][1] != blank {
		t.Error("Clear left marks or dots behind")
	}
}

func TestCanvas_Dot(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Dot(1, 1, 1)

	// 3x3 square over x 0..2, y 0..2
	if c.Grid[0][0] != 0x283F {
		t.Errorf("left cell = %U, want U+283F", c.Grid[0][0])
	}
	if c.Grid[0][1] != 0x2807 {
		t.Errorf("right cell = %U, want U+2807", c.Grid[0][1])
	}
}
