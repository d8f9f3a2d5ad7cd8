// Package path flattens geometry into polylines for rasterization and
// stroking.
package path

import (
	"math"

	"github.com/0xDB6/Avalonia/media"
)

// Tolerance is the default maximum deviation, in device pixels, between a
// flattened segment and the true curve.
const Tolerance = 0.25

// Polyline is one flattened figure. Fill treats every figure as implicitly
// closed; stroking honors Closed to decide between caps and a closing join.
type Polyline struct {
	Points []media.Point
	Closed bool
}

// Flatten converts path operations into polylines, transforming every point
// by m first. Flatness is evaluated after the transform, so tol is in device
// pixels.
func Flatten(ops []media.PathOp, m media.Matrix, tol float64) []Polyline {
	if tol <= 0 {
		tol = Tolerance
	}

	var (
		figures []Polyline
		current []media.Point
		start   media.Point
	)

	flush := func(closed bool) {
		if len(current) >= 2 {
			figures = append(figures, Polyline{Points: current, Closed: closed})
		}
		current = nil
	}

	for _, op := range ops {
		switch op.Verb {
		case media.PathMoveTo:
			flush(false)
			start = m.TransformPoint(op.P1)
			current = append(current, start)

		case media.PathLineTo:
			current = appendPoint(current, m.TransformPoint(op.P1))

		case media.PathQuadTo:
			if len(current) == 0 {
				continue
			}
			p0 := current[len(current)-1]
			current = flattenQuad(current, p0, m.TransformPoint(op.P1), m.TransformPoint(op.P2), tol)

		case media.PathCubicTo:
			if len(current) == 0 {
				continue
			}
			p0 := current[len(current)-1]
			current = flattenCubic(current, p0, m.TransformPoint(op.P1), m.TransformPoint(op.P2), m.TransformPoint(op.P3), tol)

		case media.PathClose:
			if len(current) > 0 {
				current = appendPoint(current, start)
				flush(true)
			}
		}
	}
	flush(false)

	return figures
}

// appendPoint skips exact duplicates of the previous point.
func appendPoint(pts []media.Point, p media.Point) []media.Point {
	if n := len(pts); n > 0 && pts[n-1] == p {
		return pts
	}
	return append(pts, p)
}

func flattenQuad(dst []media.Point, p0, p1, p2 media.Point, tol float64) []media.Point {
	if distanceToLine(p1, p0, p2) < tol {
		return appendPoint(dst, p2)
	}
	q0 := p0.Lerp(p1, 0.5)
	q1 := p1.Lerp(p2, 0.5)
	mid := q0.Lerp(q1, 0.5)
	dst = flattenQuad(dst, p0, q0, mid, tol)
	return flattenQuad(dst, mid, q1, p2, tol)
}

func flattenCubic(dst []media.Point, p0, p1, p2, p3 media.Point, tol float64) []media.Point {
	d := math.Max(distanceToLine(p1, p0, p3), distanceToLine(p2, p0, p3))
	if d < tol {
		return appendPoint(dst, p3)
	}
	q0 := p0.Lerp(p1, 0.5)
	q1 := p1.Lerp(p2, 0.5)
	q2 := p2.Lerp(p3, 0.5)
	r0 := q0.Lerp(q1, 0.5)
	r1 := q1.Lerp(q2, 0.5)
	mid := r0.Lerp(r1, 0.5)
	dst = flattenCubic(dst, p0, q0, r0, mid, tol)
	return flattenCubic(dst, mid, r1, q2, p3, tol)
}

// distanceToLine is the distance from p to the segment a-b.
func distanceToLine(p, a, b media.Point) float64 {
	ab := b.Sub(a)
	lenSq := ab.Dot(ab)
	if lenSq < 1e-20 {
		return p.Distance(a)
	}
	t := p.Sub(a).Dot(ab) / lenSq
	if t < 0 {
		return p.Distance(a)
	}
	if t > 1 {
		return p.Distance(b)
	}
	return p.Distance(a.Add(ab.Mul(t)))
}
