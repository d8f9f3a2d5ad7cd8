package media

import "math"

// Rect is an axis-aligned rectangle positioned at (X, Y) with the given
// Width and Height. Rectangles with non-positive width or height are
// considered empty.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// NewRect creates a rectangle from position and size.
func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, Width: w, Height: h}
}

// RectFromPoints creates the smallest rectangle containing both points.
func RectFromPoints(a, b Point) Rect {
	x0, x1 := math.Min(a.X, b.X), math.Max(a.X, b.X)
	y0, y1 := math.Min(a.Y, b.Y), math.Max(a.Y, b.Y)
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// RectFromSize creates a rectangle at the origin with the given size.
func RectFromSize(s Size) Rect {
	return Rect{Width: s.Width, Height: s.Height}
}

// Right returns the X coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the Y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Position returns the top-left corner.
func (r Rect) Position() Point { return Point{X: r.X, Y: r.Y} }

// Center returns the center point.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Size returns the rectangle's size.
func (r Rect) Size() Size { return Size{Width: r.Width, Height: r.Height} }

// IsEmpty reports whether the rectangle has non-positive width or height.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains reports whether the point lies inside the rectangle.
// Points on the top/left edges are inside, bottom/right edges are outside.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width &&
		p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Intersects reports whether the rectangles share any area.
func (r Rect) Intersects(o Rect) bool {
	return !r.Intersect(o).IsEmpty()
}

// Intersect returns the overlapping area of two rectangles.
// The result is empty when they do not overlap.
func (r Rect) Intersect(o Rect) Rect {
	x0 := math.Max(r.X, o.X)
	y0 := math.Max(r.Y, o.Y)
	x1 := math.Min(r.Right(), o.Right())
	y1 := math.Min(r.Bottom(), o.Bottom())
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Union returns the smallest rectangle containing both rectangles.
// An empty rectangle does not contribute.
func (r Rect) Union(o Rect) Rect {
	if r.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return r
	}
	x0 := math.Min(r.X, o.X)
	y0 := math.Min(r.Y, o.Y)
	x1 := math.Max(r.Right(), o.Right())
	y1 := math.Max(r.Bottom(), o.Bottom())
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Inflate grows the rectangle by d on every side.
// Negative values shrink it.
func (r Rect) Inflate(d float64) Rect {
	return Rect{X: r.X - d, Y: r.Y - d, Width: r.Width + 2*d, Height: r.Height + 2*d}
}

// Deflate shrinks the rectangle by d on every side.
func (r Rect) Deflate(d float64) Rect {
	return r.Inflate(-d)
}

// Translate returns the rectangle moved by the vector v.
func (r Rect) Translate(v Point) Rect {
	return Rect{X: r.X + v.X, Y: r.Y + v.Y, Width: r.Width, Height: r.Height}
}

// TransformBounds returns the axis-aligned bounds of the rectangle after
// applying the matrix to its four corners.
func (r Rect) TransformBounds(m Matrix) Rect {
	p0 := m.TransformPoint(Point{X: r.X, Y: r.Y})
	p1 := m.TransformPoint(Point{X: r.Right(), Y: r.Y})
	p2 := m.TransformPoint(Point{X: r.Right(), Y: r.Bottom()})
	p3 := m.TransformPoint(Point{X: r.X, Y: r.Bottom()})

	x0 := math.Min(math.Min(p0.X, p1.X), math.Min(p2.X, p3.X))
	y0 := math.Min(math.Min(p0.Y, p1.Y), math.Min(p2.Y, p3.Y))
	x1 := math.Max(math.Max(p0.X, p1.X), math.Max(p2.X, p3.X))
	y1 := math.Max(math.Max(p0.Y, p1.Y), math.Max(p2.Y, p3.Y))
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// RoundedRect is a rectangle with an independent radius per corner.
// A zero radius on all corners is an ordinary rectangle.
type RoundedRect struct {
	Rect Rect

	RadiusTopLeft     float64
	RadiusTopRight    float64
	RadiusBottomRight float64
	RadiusBottomLeft  float64
}

// NewRoundedRect creates a rounded rectangle with a uniform corner radius.
func NewRoundedRect(rect Rect, radius float64) RoundedRect {
	return RoundedRect{
		Rect:              rect,
		RadiusTopLeft:     radius,
		RadiusTopRight:    radius,
		RadiusBottomRight: radius,
		RadiusBottomLeft:  radius,
	}
}

// IsRounded reports whether any corner has a positive radius.
func (rr RoundedRect) IsRounded() bool {
	return rr.RadiusTopLeft > 0 || rr.RadiusTopRight > 0 ||
		rr.RadiusBottomRight > 0 || rr.RadiusBottomLeft > 0
}

// IsUniform reports whether all four corners share the same radius.
func (rr RoundedRect) IsUniform() bool {
	return rr.RadiusTopLeft == rr.RadiusTopRight &&
		rr.RadiusTopRight == rr.RadiusBottomRight &&
		rr.RadiusBottomRight == rr.RadiusBottomLeft
}

// Normalized clamps every radius to at most half of the shorter side, so
// adjacent corner arcs never overlap.
func (rr RoundedRect) Normalized() RoundedRect {
	limit := math.Min(rr.Rect.Width, rr.Rect.Height) / 2
	clampR := func(v float64) float64 {
		if v < 0 {
			return 0
		}
		if v > limit {
			return limit
		}
		return v
	}
	return RoundedRect{
		Rect:              rr.Rect,
		RadiusTopLeft:     clampR(rr.RadiusTopLeft),
		RadiusTopRight:    clampR(rr.RadiusTopRight),
		RadiusBottomRight: clampR(rr.RadiusBottomRight),
		RadiusBottomLeft:  clampR(rr.RadiusBottomLeft),
	}
}

// Deflate shrinks the rectangle by d on every side and reduces each corner
// radius accordingly (radii never go below zero).
func (rr RoundedRect) Deflate(d float64) RoundedRect {
	shrink := func(v float64) float64 {
		v -= d
		if v < 0 {
			return 0
		}
		return v
	}
	return RoundedRect{
		Rect:              rr.Rect.Deflate(d),
		RadiusTopLeft:     shrink(rr.RadiusTopLeft),
		RadiusTopRight:    shrink(rr.RadiusTopRight),
		RadiusBottomRight: shrink(rr.RadiusBottomRight),
		RadiusBottomLeft:  shrink(rr.RadiusBottomLeft),
	}
}

// Inflate grows the rectangle by d on every side and widens each rounded
// corner radius by the same amount.
func (rr RoundedRect) Inflate(d float64) RoundedRect {
	grow := func(v float64) float64 {
		if v <= 0 {
			return v
		}
		return v + d
	}
	return RoundedRect{
		Rect:              rr.Rect.Inflate(d),
		RadiusTopLeft:     grow(rr.RadiusTopLeft),
		RadiusTopRight:    grow(rr.RadiusTopRight),
		RadiusBottomRight: grow(rr.RadiusBottomRight),
		RadiusBottomLeft:  grow(rr.RadiusBottomLeft),
	}
}
