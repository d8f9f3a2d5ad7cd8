// Package text shapes and rasterizes text for the drawing layer.
//
// A FontSource owns parsed font data and hands out Faces at specific
// sizes. Shaping goes through HarfBuzz (go-text/typesetting); glyph
// masks are rasterized from sfnt outlines and cached.
package text

// Direction specifies text direction.
type Direction int

const (
	// DirectionLTR is left-to-right text.
	DirectionLTR Direction = iota
	// DirectionRTL is right-to-left text (Arabic, Hebrew).
	DirectionRTL
	// DirectionTTB is top-to-bottom vertical text.
	DirectionTTB
	// DirectionBTT is bottom-to-top vertical text.
	DirectionBTT
)

// String returns the string representation of the direction.
func (d Direction) String() string {
	switch d {
	case DirectionLTR:
		return "LTR"
	case DirectionRTL:
		return "RTL"
	case DirectionTTB:
		return "TTB"
	case DirectionBTT:
		return "BTT"
	default:
		return "Unknown"
	}
}

// IsHorizontal reports whether the direction is LTR or RTL.
func (d Direction) IsHorizontal() bool {
	return d == DirectionLTR || d == DirectionRTL
}

// IsVertical reports whether the direction is TTB or BTT.
func (d Direction) IsVertical() bool {
	return d == DirectionTTB || d == DirectionBTT
}
