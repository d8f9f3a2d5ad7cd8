package media

import "sort"

// GradientStop defines a color at a specific offset in a gradient.
type GradientStop struct {
	// Offset is the position along the gradient, typically in [0, 1].
	Offset float64

	// Color is the color at this offset.
	Color Color
}

// GradientStops is an ordered list of gradient stops.
type GradientStops []GradientStop

// Sorted returns a copy of the stops sorted by offset (stable, so stops
// sharing an offset keep their declaration order). The receiver is never
// mutated; resolvers rely on non-decreasing offsets and call this once per
// resolution. Sorting an already-sorted list returns an equal list.
func (s GradientStops) Sorted() GradientStops {
	if s.isSorted() {
		return s
	}
	sorted := make(GradientStops, len(s))
	copy(sorted, s)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Offset < sorted[j].Offset
	})
	return sorted
}

func (s GradientStops) isSorted() bool {
	for i := 1; i < len(s); i++ {
		if s[i].Offset < s[i-1].Offset {
			return false
		}
	}
	return true
}

// SpreadMethod defines how a gradient extends beyond its stop range.
type SpreadMethod int

const (
	// SpreadPad extends the edge colors (clamp).
	SpreadPad SpreadMethod = iota

	// SpreadReflect mirrors the gradient back and forth.
	SpreadReflect

	// SpreadRepeat tiles the gradient.
	SpreadRepeat
)

// String returns the spread method name.
func (m SpreadMethod) String() string {
	switch m {
	case SpreadPad:
		return "pad"
	case SpreadReflect:
		return "reflect"
	case SpreadRepeat:
		return "repeat"
	default:
		return "unknown"
	}
}

// LinearGradientBrush paints a color transition along the line from
// StartPoint to EndPoint.
type LinearGradientBrush struct {
	StartPoint RelativePoint
	EndPoint   RelativePoint
	Stops      GradientStops
	Spread     SpreadMethod

	Opacity         float64
	Transform       *Matrix
	TransformOrigin RelativePoint
}

// NewLinearGradientBrush creates a top-to-bottom linear gradient with the
// given stops, running down the center of the target bounds.
func NewLinearGradientBrush(stops GradientStops) *LinearGradientBrush {
	return &LinearGradientBrush{
		StartPoint: RelPt(0.5, 0),
		EndPoint:   RelPt(0.5, 1),
		Stops:      stops,
		Opacity:    1,
	}
}

func (*LinearGradientBrush) brushMarker() {}

// BrushOpacity implements Brush.
func (b *LinearGradientBrush) BrushOpacity() float64 { return b.Opacity }

// BrushTransform implements Brush.
func (b *LinearGradientBrush) BrushTransform() (*Matrix, RelativePoint) {
	return b.Transform, b.TransformOrigin
}

// RadialGradientBrush paints a color transition radiating from a gradient
// origin inside an ellipse centered at Center. When GradientOrigin differs
// from Center, the resolver emulates a two-point focal gradient.
type RadialGradientBrush struct {
	Center         RelativePoint
	GradientOrigin RelativePoint
	RadiusX        RelativeScalar
	RadiusY        RelativeScalar
	Stops          GradientStops
	Spread         SpreadMethod

	Opacity         float64
	Transform       *Matrix
	TransformOrigin RelativePoint
}

// NewRadialGradientBrush creates a centered radial gradient covering half
// the target bounds in each axis.
func NewRadialGradientBrush(stops GradientStops) *RadialGradientBrush {
	return &RadialGradientBrush{
		Center:         RelativeCenter,
		GradientOrigin: RelativeCenter,
		RadiusX:        RelScalar(0.5),
		RadiusY:        RelScalar(0.5),
		Stops:          stops,
		Opacity:        1,
	}
}

func (*RadialGradientBrush) brushMarker() {}

// BrushOpacity implements Brush.
func (b *RadialGradientBrush) BrushOpacity() float64 { return b.Opacity }

// BrushTransform implements Brush.
func (b *RadialGradientBrush) BrushTransform() (*Matrix, RelativePoint) {
	return b.Transform, b.TransformOrigin
}

// ConicGradientBrush paints a color sweep around Center. Angle is measured
// in degrees clockwise; zero points straight up.
type ConicGradientBrush struct {
	Center RelativePoint
	Angle  float64
	Stops  GradientStops
	Spread SpreadMethod

	Opacity         float64
	Transform       *Matrix
	TransformOrigin RelativePoint
}

// NewConicGradientBrush creates a centered conic gradient starting at the
// top of the sweep.
func NewConicGradientBrush(stops GradientStops) *ConicGradientBrush {
	return &ConicGradientBrush{
		Center:  RelativeCenter,
		Stops:   stops,
		Opacity: 1,
	}
}

func (*ConicGradientBrush) brushMarker() {}

// BrushOpacity implements Brush.
func (b *ConicGradientBrush) BrushOpacity() float64 { return b.Opacity }

// BrushTransform implements Brush.
func (b *ConicGradientBrush) BrushTransform() (*Matrix, RelativePoint) {
	return b.Transform, b.TransformOrigin
}
