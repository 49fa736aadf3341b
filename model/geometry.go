package model

import "math"

// Point represents a 2D point in page-image space.
type Point struct {
	X, Y float64
}

// Distance calculates the Euclidean distance to another point.
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Rect represents an axis-aligned rectangle in page-image coordinates.
// Y grows downward, matching raster image space.
type Rect struct {
	X      float64 // Left
	Y      float64 // Top
	Width  float64
	Height float64
}

// NewRect creates a rectangle from position and size.
func NewRect(x, y, width, height float64) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// Left returns the left edge X coordinate.
func (r Rect) Left() float64 {
	return r.X
}

// Right returns the right edge X coordinate.
func (r Rect) Right() float64 {
	return r.X + r.Width
}

// Top returns the top edge Y coordinate.
func (r Rect) Top() float64 {
	return r.Y
}

// Bottom returns the bottom edge Y coordinate.
func (r Rect) Bottom() float64 {
	return r.Y + r.Height
}

// Center returns the center point.
func (r Rect) Center() Point {
	return Point{
		X: r.X + r.Width/2,
		Y: r.Y + r.Height/2,
	}
}

// Area returns the area of the rectangle.
func (r Rect) Area() float64 {
	return r.Width * r.Height
}

// IsEmpty returns true if the rectangle has zero area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Intersect returns the intersection of two rectangles, or the zero Rect
// when they do not overlap on both axes.
func (r Rect) Intersect(other Rect) Rect {
	x := math.Max(r.Left(), other.Left())
	y := math.Max(r.Top(), other.Top())
	right := math.Min(r.Right(), other.Right())
	bottom := math.Min(r.Bottom(), other.Bottom())

	if right <= x || bottom <= y {
		return Rect{}
	}

	return Rect{
		X:      x,
		Y:      y,
		Width:  right - x,
		Height: bottom - y,
	}
}

// Union returns the smallest rectangle containing both rectangles.
func (r Rect) Union(other Rect) Rect {
	x := math.Min(r.Left(), other.Left())
	y := math.Min(r.Top(), other.Top())
	right := math.Max(r.Right(), other.Right())
	bottom := math.Max(r.Bottom(), other.Bottom())

	return Rect{
		X:      x,
		Y:      y,
		Width:  right - x,
		Height: bottom - y,
	}
}

// VerticalOverlap reports whether the two rectangles overlap vertically
// by any positive amount.
func VerticalOverlap(a, b Rect) bool {
	return a.Top() < b.Bottom() && b.Top() < a.Bottom()
}

// VerticalOverlapPercent returns the percentage of b's height that overlaps
// a vertically. The measure is asymmetric: the denominator is always the
// second argument's height.
func VerticalOverlapPercent(a, b Rect) float64 {
	if b.Height <= 0 {
		return 0
	}
	overlap := math.Min(a.Bottom(), b.Bottom()) - math.Max(a.Top(), b.Top())
	if overlap < 0 {
		overlap = 0
	}
	return overlap * 100 / b.Height
}

// overhangFactor is how far a candidate may start left of the reference's
// right edge, as a fraction of the reference width, before it is no longer
// considered "to the right" of it.
const overhangFactor = 0.2

// DistanceSquared returns the squared Euclidean distance from a's
// right-center point to b's left-center point. It returns +Inf when b
// starts left of a's right edge minus 20% of a's width, treating ambiguous
// overlap as "not actually to the right".
func DistanceSquared(a, b Rect) float64 {
	if b.Left() < a.Right()-overhangFactor*a.Width {
		return math.Inf(1)
	}
	dx := b.Left() - a.Right()
	dy := (b.Top() + b.Height/2) - (a.Top() + a.Height/2)
	return dx*dx + dy*dy
}
