package vector

import (
	"math"
	"testing"
)

func TestVector_Len(t *testing.T) {
	tests := []struct {
		v        Vector
		expected float64
	}{
		{New(3, 4), 5},
		{New(0, 0), 0},
		{New(-1, 0), 1},
		{New(1, 1), math.Sqrt2},
	}

	for _, tt := range tests {
		if got := tt.v.Len(); math.Abs(got-tt.expected) > 1e-12 {
			t.Errorf("Len(%v) = %v, want %v", tt.v, got, tt.expected)
		}
	}
}

func TestVector_Chaining(t *testing.T) {
	v := New(1, 2)
	v.Add(New(1, 1)).MulScalar(2).Sub(New(4, 6)).AddScalar(1)

	if v.X != 1 || v.Y != 1 {
		t.Errorf("chained result = %v, want (1, 1)", v)
	}

	w := New(6, 8)
	w.Div(New(2, 4)).DivScalar(3).Mul(New(3, 2)).SubScalar(1)
	if w.X != 2 || w.Y != 1 {
		t.Errorf("chained result = %v, want (2, 1)", w)
	}
}

func TestVector_MethodsReturnReceiver(t *testing.T) {
	v := New(1, 1)
	if v.Add(New(1, 0)) != &v {
		t.Error("Add did not return its receiver")
	}
	if v.Normalize() != &v {
		t.Error("Normalize did not return its receiver")
	}
}

func TestVector_Normalize(t *testing.T) {
	v := New(3, 4)
	v.Normalize()
	if math.Abs(v.Len()-1) > 1e-12 {
		t.Errorf("normalized length = %v, want 1", v.Len())
	}
	if math.Abs(v.X-0.6) > 1e-12 || math.Abs(v.Y-0.8) > 1e-12 {
		t.Errorf("normalized = %v, want (0.6, 0.8)", v)
	}

	zero := New(0, 0)
	zero.Normalize()
	if zero.X != 0 || zero.Y != 0 || !zero.IsValid() {
		t.Errorf("zero vector normalized to %v", zero)
	}
}

func TestVector_NegateReset(t *testing.T) {
	v := New(2, -3)
	v.Negate()
	if v.X != -2 || v.Y != 3 {
		t.Errorf("Negate = %v, want (-2, 3)", v)
	}
	v.Reset()
	if v.X != 0 || v.Y != 0 {
		t.Errorf("Reset = %v, want (0, 0)", v)
	}
}

func TestVector_Distance(t *testing.T) {
	a := New(1, 1)
	b := New(4, 5)
	if d := a.Distance(b); d != 5 {
		t.Errorf("Distance = %v, want 5", d)
	}
	if a.Distance(b) != b.Distance(a) {
		t.Error("Distance is not symmetric")
	}
}

func TestStaticVariantsDoNotMutate(t *testing.T) {
	a := New(2, 4)
	b := New(1, 2)

	tests := []struct {
		name string
		got  Vector
		want Vector
	}{
		{"add", Add(a, b), New(3, 6)},
		{"sub", Sub(a, b), New(1, 2)},
		{"mul", Mul(a, b), New(2, 8)},
		{"div", Div(a, b), New(2, 2)},
		{"add scalar", AddScalar(a, 1), New(3, 5)},
		{"sub scalar", SubScalar(a, 1), New(1, 3)},
		{"mul scalar", MulScalar(a, 0.5), New(1, 2)},
		{"div scalar", DivScalar(a, 2), New(1, 2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}

	if a != New(2, 4) || b != New(1, 2) {
		t.Errorf("inputs mutated: a=%v b=%v", a, b)
	}
}

func TestVector_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		v     Vector
		valid bool
	}{
		{"finite", New(1, 2), true},
		{"NaN x", New(math.NaN(), 0), false},
		{"+Inf y", New(0, math.Inf(1)), false},
		{"-Inf x", New(math.Inf(-1), 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}
