package media

import "math"

// BoxShadow describes one drop shadow of a box: an offset, blurred, colored
// copy of the box shape. Inset shadows render inside the shape instead of
// behind it.
type BoxShadow struct {
	// OffsetX and OffsetY move the shadow relative to the box.
	OffsetX float64
	OffsetY float64

	// Blur is the gaussian blur radius, >= 0. Zero produces a hard edge.
	Blur float64

	// Spread grows (or, negative, shrinks) the shadow shape before blurring.
	Spread float64

	Color Color

	// Inset renders the shadow inside the shape.
	Inset bool
}

// IsVisible reports whether the shadow would produce any output.
func (s BoxShadow) IsVisible() bool {
	return s.Color.A > 0 && (s.Blur > 0 || s.Spread != 0 || s.OffsetX != 0 || s.OffsetY != 0)
}

// Margin returns the maximum extent of the shadow beyond the box on each
// side (left, top, right, bottom), never negative. Inset shadows have no
// outward extent.
func (s BoxShadow) Margin() (left, top, right, bottom float64) {
	if s.Inset {
		return 0, 0, 0, 0
	}
	left = math.Max(0, s.Spread-s.OffsetX+s.Blur)
	top = math.Max(0, s.Spread-s.OffsetY+s.Blur)
	right = math.Max(0, s.Spread+s.OffsetX+s.Blur)
	bottom = math.Max(0, s.Spread+s.OffsetY+s.Blur)
	return left, top, right, bottom
}

// TransformBounds expands rect by the shadow's outward extent.
func (s BoxShadow) TransformBounds(rect Rect) Rect {
	l, t, r, b := s.Margin()
	return Rect{
		X:      rect.X - l,
		Y:      rect.Y - t,
		Width:  rect.Width + l + r,
		Height: rect.Height + t + b,
	}
}

// BoxShadows is an ordered list of shadows. Outset shadows paint back to
// front underneath the box fill; inset shadows paint over it.
type BoxShadows []BoxShadow

// HasOutset reports whether any visible non-inset shadow is present.
func (s BoxShadows) HasOutset() bool {
	for _, sh := range s {
		if !sh.Inset && sh.IsVisible() {
			return true
		}
	}
	return false
}

// HasInset reports whether any visible inset shadow is present.
func (s BoxShadows) HasInset() bool {
	for _, sh := range s {
		if sh.Inset && sh.IsVisible() {
			return true
		}
	}
	return false
}

// TransformBounds expands rect by the union of all shadow extents.
func (s BoxShadows) TransformBounds(rect Rect) Rect {
	out := rect
	for _, sh := range s {
		out = out.Union(sh.TransformBounds(rect))
	}
	return out
}
