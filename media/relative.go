package media

// RelativeUnit determines how relative coordinates are interpreted.
type RelativeUnit int

const (
	// RelativeUnitRelative interprets coordinates as fractions of a target
	// bounds (0 = start edge, 1 = end edge).
	RelativeUnitRelative RelativeUnit = iota

	// RelativeUnitAbsolute interprets coordinates in logical units.
	RelativeUnitAbsolute
)

// RelativePoint is a point expressed either absolutely or as a fraction of
// some target bounds. Brushes use relative points so a single descriptor
// scales with whatever shape it fills.
type RelativePoint struct {
	Point Point
	Unit  RelativeUnit
}

// RelPt creates a relative point (fractions of the target bounds).
func RelPt(x, y float64) RelativePoint {
	return RelativePoint{Point: Point{X: x, Y: y}, Unit: RelativeUnitRelative}
}

// AbsPt creates an absolute point in logical units.
func AbsPt(x, y float64) RelativePoint {
	return RelativePoint{Point: Point{X: x, Y: y}, Unit: RelativeUnitAbsolute}
}

// RelativeCenter is the center of the target bounds.
var RelativeCenter = RelPt(0.5, 0.5)

// ToAbsolute resolves the point against the given bounds.
func (p RelativePoint) ToAbsolute(bounds Rect) Point {
	if p.Unit == RelativeUnitAbsolute {
		return p.Point
	}
	return Point{
		X: bounds.X + p.Point.X*bounds.Width,
		Y: bounds.Y + p.Point.Y*bounds.Height,
	}
}

// RelativeScalar is a scalar expressed either absolutely or as a fraction
// of a reference length.
type RelativeScalar struct {
	Value float64
	Unit  RelativeUnit
}

// RelScalar creates a relative scalar.
func RelScalar(v float64) RelativeScalar {
	return RelativeScalar{Value: v, Unit: RelativeUnitRelative}
}

// AbsScalar creates an absolute scalar in logical units.
func AbsScalar(v float64) RelativeScalar {
	return RelativeScalar{Value: v, Unit: RelativeUnitAbsolute}
}

// ToAbsolute resolves the scalar against a reference length.
func (s RelativeScalar) ToAbsolute(reference float64) float64 {
	if s.Unit == RelativeUnitAbsolute {
		return s.Value
	}
	return s.Value * reference
}

// RelativeRect is a rectangle expressed either absolutely or as fractions of
// a target bounds. Tile brushes use relative rects for their source and
// destination regions.
type RelativeRect struct {
	Rect Rect
	Unit RelativeUnit
}

// RelRect creates a relative rectangle.
func RelRect(x, y, w, h float64) RelativeRect {
	return RelativeRect{Rect: NewRect(x, y, w, h), Unit: RelativeUnitRelative}
}

// AbsRect creates an absolute rectangle in logical units.
func AbsRect(x, y, w, h float64) RelativeRect {
	return RelativeRect{Rect: NewRect(x, y, w, h), Unit: RelativeUnitAbsolute}
}

// RelativeFull covers the entire target bounds.
var RelativeFull = RelRect(0, 0, 1, 1)

// ToAbsolute resolves the rectangle against the given bounds.
func (r RelativeRect) ToAbsolute(bounds Rect) Rect {
	if r.Unit == RelativeUnitAbsolute {
		return r.Rect
	}
	return Rect{
		X:      bounds.X + r.Rect.X*bounds.Width,
		Y:      bounds.Y + r.Rect.Y*bounds.Height,
		Width:  r.Rect.Width * bounds.Width,
		Height: r.Rect.Height * bounds.Height,
	}
}
