package media

import "math"

// PenLineCap is the shape drawn at the ends of an open stroke.
type PenLineCap int

const (
	// PenLineCapFlat ends the stroke exactly at the endpoint.
	PenLineCapFlat PenLineCap = iota

	// PenLineCapRound appends a semicircle.
	PenLineCapRound

	// PenLineCapSquare extends the stroke by half its thickness.
	PenLineCapSquare
)

// PenLineJoin is the shape drawn where two stroke segments meet.
type PenLineJoin int

const (
	// PenLineJoinMiter extends the outer edges until they meet.
	PenLineJoinMiter PenLineJoin = iota

	// PenLineJoinBevel cuts the corner with a straight edge.
	PenLineJoinBevel

	// PenLineJoinRound rounds the corner.
	PenLineJoinRound
)

// DashStyle defines a dash pattern for a pen.
// Dashes holds alternating dash and gap lengths, in multiples of the pen
// thickness; an odd-length list is logically duplicated to an even one.
// Offset is the starting phase within the pattern cycle.
type DashStyle struct {
	Dashes []float64
	Offset float64
}

// NewDashStyle creates a dash style from alternating dash/gap lengths.
// Negative lengths are normalized to their absolute value. Returns nil when
// no length is positive, which callers treat as a solid stroke.
func NewDashStyle(lengths ...float64) *DashStyle {
	if len(lengths) == 0 {
		return nil
	}
	anyPositive := false
	for _, l := range lengths {
		if l > 0 {
			anyPositive = true
			break
		}
	}
	if !anyPositive {
		return nil
	}
	normalized := make([]float64, len(lengths))
	for i, l := range lengths {
		normalized[i] = math.Abs(l)
	}
	return &DashStyle{Dashes: normalized}
}

// WithOffset returns a copy of the style with the given phase offset.
func (d *DashStyle) WithOffset(offset float64) *DashStyle {
	if d == nil {
		return nil
	}
	return &DashStyle{Dashes: d.Dashes, Offset: offset}
}

// IsDashed reports whether the style describes an actual dash pattern.
func (d *DashStyle) IsDashed() bool {
	if d == nil {
		return false
	}
	for _, l := range d.Dashes {
		if l > 0 {
			return true
		}
	}
	return false
}

// EffectiveDashes returns the dash list with odd-length lists duplicated to
// an even length, ready for pattern iteration.
func (d *DashStyle) EffectiveDashes() []float64 {
	if d == nil || len(d.Dashes) == 0 {
		return nil
	}
	if len(d.Dashes)%2 == 0 {
		return d.Dashes
	}
	result := make([]float64, len(d.Dashes)*2)
	copy(result, d.Dashes)
	copy(result[len(d.Dashes):], d.Dashes)
	return result
}

// Clone creates a deep copy of the dash style.
func (d *DashStyle) Clone() *DashStyle {
	if d == nil {
		return nil
	}
	dashes := make([]float64, len(d.Dashes))
	copy(dashes, d.Dashes)
	return &DashStyle{Dashes: dashes, Offset: d.Offset}
}

// Pen describes how outlines are stroked: the brush to paint with plus
// thickness, caps, joins and an optional dash pattern.
//
// A pen with Thickness 0 renders nothing at all; it is not a hairline.
type Pen struct {
	Brush      Brush
	Thickness  float64
	LineCap    PenLineCap
	LineJoin   PenLineJoin
	MiterLimit float64
	DashStyle  *DashStyle
}

// NewPen creates a pen with the given brush and thickness, flat caps,
// miter joins and the conventional miter limit of 10.
func NewPen(brush Brush, thickness float64) *Pen {
	return &Pen{
		Brush:      brush,
		Thickness:  thickness,
		MiterLimit: 10,
	}
}

// Visible reports whether the pen can produce any output.
func (p *Pen) Visible() bool {
	return p != nil && p.Brush != nil && p.Thickness > 0
}
