// Package stroke expands stroked polylines into fillable outline
// polygons and splits polylines into dash segments.
package stroke

import (
	"math"

	"github.com/0xDB6/Avalonia/media"
)

// Stroke describes how a polyline outline is generated.
type Stroke struct {
	Width      float64
	Cap        media.PenLineCap
	Join       media.PenLineJoin
	MiterLimit float64

	// Tolerance is the maximum deviation for round caps and joins, in
	// device pixels. Zero selects a default.
	Tolerance float64
}

const defaultTolerance = 0.25

// Expand converts a stroked polyline into closed polygons that fill the
// stroked region under the non-zero rule. Each segment contributes a
// quad; joins and caps contribute wedge polygons with consistent
// winding, so overlaps union cleanly.
func (s Stroke) Expand(pts []media.Point, closed bool) [][]media.Point {
	if s.Width <= 0 {
		return nil
	}
	half := s.Width / 2
	tol := s.Tolerance
	if tol <= 0 {
		tol = defaultTolerance
	}

	pts = dropConsecutiveDuplicates(pts)
	if closed && len(pts) > 1 && pts[0] == pts[len(pts)-1] {
		pts = pts[:len(pts)-1]
	}

	if len(pts) < 2 {
		// A degenerate subpath still renders a dot with round or
		// square caps, matching common renderer behavior.
		if len(pts) == 1 && !closed {
			return s.capDot(pts[0], half, tol)
		}
		return nil
	}

	var polys [][]media.Point

	// Segment quads.
	for i := 0; i < len(pts)-1; i++ {
		polys = appendSegmentQuad(polys, pts[i], pts[i+1], half)
	}
	if closed {
		polys = appendSegmentQuad(polys, pts[len(pts)-1], pts[0], half)
	}

	// Joins at every interior vertex.
	for i := 1; i < len(pts)-1; i++ {
		polys = s.appendJoin(polys, pts[i-1], pts[i], pts[i+1], half, tol)
	}
	if closed {
		n := len(pts)
		polys = s.appendJoin(polys, pts[n-2], pts[n-1], pts[0], half, tol)
		polys = s.appendJoin(polys, pts[n-1], pts[0], pts[1], half, tol)
	} else {
		polys = s.appendCap(polys, pts[1], pts[0], half, tol)
		polys = s.appendCap(polys, pts[len(pts)-2], pts[len(pts)-1], half, tol)
	}

	return polys
}

func dropConsecutiveDuplicates(pts []media.Point) []media.Point {
	clean := true
	for i := 1; i < len(pts); i++ {
		if pts[i] == pts[i-1] {
			clean = false
			break
		}
	}
	if clean {
		return pts
	}
	out := make([]media.Point, 0, len(pts))
	out = append(out, pts[0])
	for _, p := range pts[1:] {
		if p != out[len(out)-1] {
			out = append(out, p)
		}
	}
	return out
}

// leftNormal returns the unit normal 90 degrees counterclockwise from
// the direction a->b.
func leftNormal(a, b media.Point) media.Point {
	d := b.Sub(a).Normalize()
	return media.Pt(-d.Y, d.X)
}

func appendSegmentQuad(polys [][]media.Point, p0, p1 media.Point, half float64) [][]media.Point {
	n := leftNormal(p0, p1).Mul(half)
	return append(polys, []media.Point{
		p0.Add(n), p1.Add(n), p1.Sub(n), p0.Sub(n),
	})
}

// appendJoin fills the outer wedge at vertex p between segments prev->p
// and p->next.
func (s Stroke) appendJoin(polys [][]media.Point, prev, p, next media.Point, half, tol float64) [][]media.Point {
	d0 := p.Sub(prev).Normalize()
	d1 := next.Sub(p).Normalize()
	cross := d0.X*d1.Y - d0.Y*d1.X
	if math.Abs(cross) < 1e-12 {
		return polys // collinear, segment quads already cover it
	}

	// The outer side is opposite the turn direction.
	n0 := media.Pt(-d0.Y, d0.X).Mul(half)
	n1 := media.Pt(-d1.Y, d1.X).Mul(half)
	if cross > 0 {
		n0 = n0.Mul(-1)
		n1 = n1.Mul(-1)
	}

	switch s.Join {
	case media.PenLineJoinRound:
		a0 := math.Atan2(n0.Y, n0.X)
		a1 := math.Atan2(n1.Y, n1.X)
		return append(polys, arcPolygon(p, a0, shortestSweep(a1-a0), half, tol))

	case media.PenLineJoinMiter:
		// theta is the angle between the segments at the vertex; the
		// miter extends half/sin(theta/2) from it.
		sinHalf := math.Sqrt(math.Max(0, (1+d0.Dot(d1))/2))
		limit := s.MiterLimit
		if limit <= 0 {
			limit = 10
		}
		if sinHalf > 1e-9 && 1/sinHalf <= limit {
			m := n0.Add(n1).Normalize().Mul(half / sinHalf)
			return append(polys, []media.Point{p, p.Add(n0), p.Add(m), p.Add(n1)})
		}
		fallthrough

	default: // bevel
		return append(polys, []media.Point{p, p.Add(n0), p.Add(n1)})
	}
}

// shortestSweep normalizes an angle difference into (-pi, pi].
func shortestSweep(sweep float64) float64 {
	for sweep > math.Pi {
		sweep -= 2 * math.Pi
	}
	for sweep <= -math.Pi {
		sweep += 2 * math.Pi
	}
	return sweep
}

// appendCap fills the cap at endpoint p; from is the adjacent polyline
// point, so the cap extends away from it.
func (s Stroke) appendCap(polys [][]media.Point, from, p media.Point, half, tol float64) [][]media.Point {
	d := p.Sub(from).Normalize()
	n := media.Pt(-d.Y, d.X).Mul(half)

	switch s.Cap {
	case media.PenLineCapSquare:
		ext := d.Mul(half)
		return append(polys, []media.Point{
			p.Add(n), p.Add(n).Add(ext), p.Sub(n).Add(ext), p.Sub(n),
		})
	case media.PenLineCapRound:
		// Sweeping -pi from the left normal passes through d, putting
		// the semicircle on the far side of the endpoint.
		a0 := math.Atan2(n.Y, n.X)
		return append(polys, arcPolygon(p, a0, -math.Pi, half, tol))
	default: // flat
		return polys
	}
}

// capDot renders an isolated point as a dot shaped by the cap style.
func (s Stroke) capDot(p media.Point, half, tol float64) [][]media.Point {
	switch s.Cap {
	case media.PenLineCapRound:
		return [][]media.Point{circlePolygon(p, half, tol)}
	case media.PenLineCapSquare:
		return [][]media.Point{{
			media.Pt(p.X-half, p.Y-half),
			media.Pt(p.X+half, p.Y-half),
			media.Pt(p.X+half, p.Y+half),
			media.Pt(p.X-half, p.Y+half),
		}}
	default:
		return nil
	}
}

// arcPolygon builds a pie wedge starting at startAngle and sweeping the
// given signed angle around center.
func arcPolygon(center media.Point, startAngle, sweep, r, tol float64) []media.Point {
	steps := arcSteps(math.Abs(sweep), r, tol)
	poly := make([]media.Point, 0, steps+2)
	poly = append(poly, center)
	for i := 0; i <= steps; i++ {
		ang := startAngle + sweep*float64(i)/float64(steps)
		poly = append(poly, media.Pt(center.X+r*math.Cos(ang), center.Y+r*math.Sin(ang)))
	}
	return poly
}

func circlePolygon(center media.Point, r, tol float64) []media.Point {
	steps := arcSteps(2*math.Pi, r, tol)
	poly := make([]media.Point, 0, steps)
	for i := 0; i < steps; i++ {
		ang := 2 * math.Pi * float64(i) / float64(steps)
		poly = append(poly, media.Pt(center.X+r*math.Cos(ang), center.Y+r*math.Sin(ang)))
	}
	return poly
}

// arcSteps picks a segment count so the chord sagitta stays under tol.
func arcSteps(sweep, r, tol float64) int {
	if r <= tol {
		return 1
	}
	maxStep := 2 * math.Acos(1-tol/r)
	steps := int(math.Ceil(sweep / maxStep))
	if steps < 1 {
		steps = 1
	}
	return steps
}
