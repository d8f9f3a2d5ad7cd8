package drawing

import (
	"math"

	"github.com/0xDB6/Avalonia/media"
)

// linearShader shades along the axis from start to end, both in brush
// space. inv maps device pixels back into brush space.
type linearShader struct {
	start, end media.Point
	stops      media.GradientStops
	spread     media.SpreadMethod
	inv        media.Matrix
	opacity    float64

	// cached axis projection terms
	dx, dy, lenSq float64
}

func newLinearShader(start, end media.Point, stops media.GradientStops, spread media.SpreadMethod, inv media.Matrix, opacity float64) *linearShader {
	dx := end.X - start.X
	dy := end.Y - start.Y
	return &linearShader{
		start: start, end: end,
		stops: stops, spread: spread, inv: inv, opacity: opacity,
		dx: dx, dy: dy, lenSq: dx*dx + dy*dy,
	}
}

func (s *linearShader) sample(x, y float64) (r, g, b, a uint8) {
	p := s.inv.TransformPoint(media.Pt(x, y))
	t := 0.0
	if s.lenSq > 0 {
		t = ((p.X-s.start.X)*s.dx + (p.Y-s.start.Y)*s.dy) / s.lenSq
	}
	t = applySpread(t, s.spread)
	return colorAtOffset(s.stops, t).MulAlpha(s.opacity).PremulRGBA8()
}

// radialShader shades by normalized elliptical distance from center.
// Used when the gradient origin coincides with the center; the focal
// case goes through focalShader instead.
type radialShader struct {
	center           media.Point
	radiusX, radiusY float64
	stops            media.GradientStops
	spread           media.SpreadMethod
	inv              media.Matrix
	opacity          float64
}

func (s *radialShader) sample(x, y float64) (r, g, b, a uint8) {
	p := s.inv.TransformPoint(media.Pt(x, y))
	t := 0.0
	if s.radiusX > 0 && s.radiusY > 0 {
		nx := (p.X - s.center.X) / s.radiusX
		ny := (p.Y - s.center.Y) / s.radiusY
		t = math.Sqrt(nx*nx + ny*ny)
	}
	t = applySpread(t, s.spread)
	return colorAtOffset(s.stops, t).MulAlpha(s.opacity).PremulRGBA8()
}

// focalShader is a two-point conical gradient from the circle (center,
// radius) at t=0 down to the focal point at t=1. The resolver feeds it
// the reversed stop list, so t=0 carries the brush's outermost color.
// Pixels the cone never reaches sample transparent, which the composed
// background underlay then shows through.
type focalShader struct {
	center  media.Point
	focal   media.Point
	radius  float64
	stops   media.GradientStops
	spread  media.SpreadMethod
	inv     media.Matrix
	opacity float64
}

func (s *focalShader) sample(x, y float64) (r, g, b, a uint8) {
	p := s.inv.TransformPoint(media.Pt(x, y))

	// Solve |p - c(t)| = (1-t)*radius for the circle family
	// c(t) = center + t*(focal-center).
	dx := p.X - s.center.X
	dy := p.Y - s.center.Y
	ex := s.focal.X - s.center.X
	ey := s.focal.Y - s.center.Y
	rr := s.radius * s.radius

	qa := ex*ex + ey*ey - rr
	qb := -2 * (dx*ex + dy*ey - rr)
	qc := dx*dx + dy*dy - rr

	t, ok := smallestValidRoot(qa, qb, qc, s.radius)
	if !ok {
		return 0, 0, 0, 0
	}
	t = applySpread(t, s.spread)
	return colorAtOffset(s.stops, t).MulAlpha(s.opacity).PremulRGBA8()
}

// smallestValidRoot picks the root of qa*t^2 + qb*t + qc = 0 whose
// interpolated circle has non-negative radius, preferring the smaller t
// so interior pixels take the wider circle.
func smallestValidRoot(qa, qb, qc, radius float64) (float64, bool) {
	if math.Abs(qa) < 1e-12 {
		if qb == 0 {
			return 0, false
		}
		t := -qc / qb
		if radius*(1-t) < 0 {
			return 0, false
		}
		return t, true
	}
	disc := qb*qb - 4*qa*qc
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	t1 := (-qb - sq) / (2 * qa)
	t2 := (-qb + sq) / (2 * qa)
	if t1 > t2 {
		t1, t2 = t2, t1
	}
	if radius*(1-t1) >= 0 {
		return t1, true
	}
	if radius*(1-t2) >= 0 {
		return t2, true
	}
	return 0, false
}

// conicShader sweeps the stops around center. Zero angle points up and
// increases clockwise; the raw atan2 reference is +x, so the shader
// rotates by -90 degrees plus the brush angle.
type conicShader struct {
	center  media.Point
	angle   float64 // degrees
	stops   media.GradientStops
	spread  media.SpreadMethod
	inv     media.Matrix
	opacity float64
}

func (s *conicShader) sample(x, y float64) (r, g, b, a uint8) {
	p := s.inv.TransformPoint(media.Pt(x, y))
	theta := math.Atan2(p.Y-s.center.Y, p.X-s.center.X)
	theta -= (s.angle - 90) * math.Pi / 180
	t := theta / (2 * math.Pi)
	t -= math.Floor(t)
	t = applySpread(t, s.spread)
	return colorAtOffset(s.stops, t).MulAlpha(s.opacity).PremulRGBA8()
}
