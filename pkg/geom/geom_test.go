package geom

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestVectorOps(t *testing.T) {
	v := Vector{3, 4}

	if got := v.Magnitude(); !almostEqual(got, 5) {
		t.Errorf("Magnitude = %v, want 5", got)
	}
	if got := v.Add(Vector{1, -1}); got != (Vector{4, 3}) {
		t.Errorf("Add = %v, want {4 3}", got)
	}
	if got := v.Sub(Vector{3, 4}); got != (Vector{0, 0}) {
		t.Errorf("Sub = %v, want {0 0}", got)
	}
	if got := v.Scale(2); got != (Vector{6, 8}) {
		t.Errorf("Scale = %v, want {6 8}", got)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   Vector
		want Vector
	}{
		{"Unit", Vector{1, 0}, Vector{1, 0}},
		{"Diagonal", Vector{3, 4}, Vector{0.6, 0.8}},
		{"Zero", Vector{0, 0}, Vector{0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalize()
			if !almostEqual(got.X, tt.want.X) || !almostEqual(got.Y, tt.want.Y) {
				t.Errorf("Normalize = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	v := Vector{30, 40} // magnitude 50

	clamped := v.Clamp(10)
	if !almostEqual(clamped.Magnitude(), 10) {
		t.Errorf("clamped magnitude = %v, want 10", clamped.Magnitude())
	}
	// Direction preserved
	if !almostEqual(clamped.X/clamped.Y, v.X/v.Y) {
		t.Errorf("direction changed: %v", clamped)
	}
	// Within limit is untouched
	if got := v.Clamp(100); got != v {
		t.Errorf("Clamp(100) = %v, want %v", got, v)
	}
}

func TestRectDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want float64
	}{
		{
			name: "Overlapping",
			a:    Rect{0, 0, 10, 10},
			b:    Rect{5, 5, 15, 15},
			want: 0,
		},
		{
			name: "Touching",
			a:    Rect{0, 0, 10, 10},
			b:    Rect{10, 0, 20, 10},
			want: 0,
		},
		{
			name: "HorizontalGap",
			a:    Rect{0, 0, 10, 10},
			b:    Rect{15, 0, 25, 10},
			want: 5,
		},
		{
			name: "VerticalGap",
			a:    Rect{0, 0, 10, 10},
			b:    Rect{0, 13, 10, 20},
			want: 3,
		},
		{
			name: "Diagonal",
			a:    Rect{0, 0, 10, 10},
			b:    Rect{13, 14, 20, 20},
			want: 5, // 3-4-5 triangle
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Distance(tt.a, tt.b); !almostEqual(got, tt.want) {
				t.Errorf("Distance = %v, want %v", got, tt.want)
			}
			// Symmetric
			if got := Distance(tt.b, tt.a); !almostEqual(got, tt.want) {
				t.Errorf("Distance reversed = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIntersection(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want float64
	}{
		{"Disjoint", Rect{0, 0, 10, 10}, Rect{20, 20, 30, 30}, 0},
		{"Touching", Rect{0, 0, 10, 10}, Rect{10, 0, 20, 10}, 0},
		{"Quarter", Rect{0, 0, 10, 10}, Rect{5, 5, 15, 15}, 25},
		{"Contained", Rect{0, 0, 10, 10}, Rect{2, 2, 4, 4}, 4},
		{"Identical", Rect{0, 0, 10, 10}, Rect{0, 0, 10, 10}, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Intersection(tt.a, tt.b); !almostEqual(got, tt.want) {
				t.Errorf("Intersection = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExpandAndUnion(t *testing.T) {
	r := Rect{10, 10, 20, 20}

	e := r.Expand(5)
	if e != (Rect{5, 5, 25, 25}) {
		t.Errorf("Expand = %v", e)
	}

	u := Union(Rect{0, 0, 5, 5}, Rect{10, 10, 20, 30})
	if u != (Rect{0, 0, 20, 30}) {
		t.Errorf("Union = %v", u)
	}
	if !almostEqual(u.Width(), 20) || !almostEqual(u.Height(), 30) {
		t.Errorf("Union dims = %v x %v", u.Width(), u.Height())
	}
}
