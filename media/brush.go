package media

// Brush describes what to paint with.
// This is a sealed interface - only types in this package implement it.
//
// Brushes are declarative: they carry no pixel state of their own. The
// drawing layer resolves a brush against the bounds of the shape being
// painted into concrete shader state. Keeping the set closed lets the
// resolver be a single exhaustive type switch, so an unhandled new brush
// kind is a compile-time hole rather than a silent runtime fallback.
//
// Supported brush kinds:
//   - SolidColorBrush: a single solid color
//   - LinearGradientBrush, RadialGradientBrush, ConicGradientBrush
//   - ImageBrush: an image tiled or stretched over the target
//   - VisualBrush: an arbitrary sub-scene rendered into the target
//   - AcrylicBrush: translucent tint composed with a noise texture
type Brush interface {
	// brushMarker is an unexported method that seals this interface.
	// Only types in this package can implement Brush.
	brushMarker()

	// BrushOpacity returns the brush's own opacity in [0, 1]. It composes
	// multiplicatively with the drawing context's ambient opacity.
	BrushOpacity() float64

	// BrushTransform returns the brush's optional transform and the origin
	// it applies about. A nil matrix means no transform.
	BrushTransform() (*Matrix, RelativePoint)
}

// SolidColorBrush paints a single color.
type SolidColorBrush struct {
	Color Color

	// Opacity multiplies the color's alpha. Constructors set it to 1.
	Opacity float64

	// Transform is ignored for solid colors but kept so the common brush
	// surface stays uniform.
	Transform       *Matrix
	TransformOrigin RelativePoint
}

// NewSolidColorBrush creates an opaque-opacity solid brush.
func NewSolidColorBrush(c Color) *SolidColorBrush {
	return &SolidColorBrush{Color: c, Opacity: 1}
}

func (*SolidColorBrush) brushMarker() {}

// BrushOpacity implements Brush.
func (b *SolidColorBrush) BrushOpacity() float64 { return b.Opacity }

// BrushTransform implements Brush.
func (b *SolidColorBrush) BrushTransform() (*Matrix, RelativePoint) {
	return b.Transform, b.TransformOrigin
}

// TileMode controls how a tile brush repeats outside its destination rect.
type TileMode int

const (
	// TileModeNone paints the content once; the edge pixels extend outward.
	TileModeNone TileMode = iota

	// TileModeTile repeats the content in both axes.
	TileModeTile

	// TileModeFlipX mirrors alternate columns.
	TileModeFlipX

	// TileModeFlipY mirrors alternate rows.
	TileModeFlipY

	// TileModeFlipXY mirrors alternate columns and rows.
	TileModeFlipXY
)

// String returns the tile mode name.
func (m TileMode) String() string {
	switch m {
	case TileModeNone:
		return "None"
	case TileModeTile:
		return "Tile"
	case TileModeFlipX:
		return "FlipX"
	case TileModeFlipY:
		return "FlipY"
	case TileModeFlipXY:
		return "FlipXY"
	default:
		return "Unknown"
	}
}

// Stretch controls how tile-brush content is scaled into its destination.
type Stretch int

const (
	// StretchNone keeps the content at its natural size.
	StretchNone Stretch = iota

	// StretchFill scales both axes independently to fill the destination.
	StretchFill

	// StretchUniform scales uniformly until one axis fits.
	StretchUniform

	// StretchUniformToFill scales uniformly until both axes are covered,
	// clipping the overflow.
	StretchUniformToFill
)

// AlignmentX positions tile-brush content horizontally.
type AlignmentX int

const (
	AlignmentXLeft AlignmentX = iota
	AlignmentXCenter
	AlignmentXRight
)

// AlignmentY positions tile-brush content vertically.
type AlignmentY int

const (
	AlignmentYTop AlignmentY = iota
	AlignmentYCenter
	AlignmentYBottom
)
