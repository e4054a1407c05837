// Package geom provides the 2D vector and rectangle primitives used by the
// layout engine. All types are plain values with no retained state; functions
// never mutate their receivers.
package geom

import "math"

// Vector is a 2D point or displacement.
type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns v + o.
func (v Vector) Add(o Vector) Vector { return Vector{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vector) Sub(o Vector) Vector { return Vector{v.X - o.X, v.Y - o.Y} }

// Scale returns v scaled by s.
func (v Vector) Scale(s float64) Vector { return Vector{v.X * s, v.Y * s} }

// Magnitude returns the Euclidean length of v.
func (v Vector) Magnitude() float64 { return math.Hypot(v.X, v.Y) }

// Normalize returns the unit vector in the direction of v.
// The zero vector normalizes to the zero vector.
func (v Vector) Normalize() Vector {
	m := v.Magnitude()
	if m == 0 {
		return Vector{}
	}
	return Vector{v.X / m, v.Y / m}
}

// Clamp returns v rescaled so its magnitude does not exceed limit.
// Direction is preserved; vectors already within the limit are returned as-is.
func (v Vector) Clamp(limit float64) Vector {
	m := v.Magnitude()
	if m <= limit {
		return v
	}
	return v.Scale(limit / m)
}

// Rect is an axis-aligned rectangle. Left/Top are the minimum coordinates,
// Right/Bottom the maximum (screen convention: Y grows downward).
type Rect struct {
	Left, Top, Right, Bottom float64
}

// Width returns the horizontal span of the rectangle.
func (r Rect) Width() float64 { return r.Right - r.Left }

// Height returns the vertical span of the rectangle.
func (r Rect) Height() float64 { return r.Bottom - r.Top }

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Vector {
	return Vector{(r.Left + r.Right) / 2, (r.Top + r.Bottom) / 2}
}

// Expand returns the rectangle grown by margin on all four sides.
func (r Rect) Expand(margin float64) Rect {
	return Rect{
		Left:   r.Left - margin,
		Top:    r.Top - margin,
		Right:  r.Right + margin,
		Bottom: r.Bottom + margin,
	}
}

// Distance returns the shortest distance between the edges of two rectangles.
// Overlapping or touching rectangles have distance 0. Rectangles separated
// along one axis only are measured by the axis gap; diagonally separated
// rectangles by the Euclidean corner distance.
func Distance(a, b Rect) float64 {
	dx := math.Max(0, math.Max(a.Left-b.Right, b.Left-a.Right))
	dy := math.Max(0, math.Max(a.Top-b.Bottom, b.Top-a.Bottom))
	return math.Hypot(dx, dy)
}

// Intersection returns the overlap area of two rectangles, 0 when disjoint.
func Intersection(a, b Rect) float64 {
	w := math.Min(a.Right, b.Right) - math.Max(a.Left, b.Left)
	h := math.Min(a.Bottom, b.Bottom) - math.Max(a.Top, b.Top)
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}

// Union returns the smallest rectangle enclosing both a and b.
func Union(a, b Rect) Rect {
	return Rect{
		Left:   math.Min(a.Left, b.Left),
		Top:    math.Min(a.Top, b.Top),
		Right:  math.Max(a.Right, b.Right),
		Bottom: math.Max(a.Bottom, b.Bottom),
	}
}
