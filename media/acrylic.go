package media

// AcrylicBackgroundSource selects what an acrylic material composites over.
type AcrylicBackgroundSource int

const (
	// AcrylicBackgroundNone composites over whatever is already on the
	// surface.
	AcrylicBackgroundNone AcrylicBackgroundSource = iota

	// AcrylicBackgroundDigger punches through to the backdrop: the brush's
	// own tint opacity replaces the ambient opacity and the material is
	// written with a source (non-blending) composite.
	AcrylicBackgroundDigger
)

// AcrylicMaterial describes the translucent "frosted" material: a tint over
// a backdrop, finished with a faint repeating noise texture.
type AcrylicMaterial struct {
	BackgroundSource AcrylicBackgroundSource

	// TintColor is the material's nominal tint.
	TintColor Color

	// TintOpacity scales the tint's alpha in [0, 1].
	TintOpacity float64

	// MaterialOpacity is the overall opacity of the finished material.
	MaterialOpacity float64

	// PlatformTransparencyCompensationLevel is the minimum effective tint
	// alpha in [0, 1]. Platforms that cannot sample the real backdrop keep
	// the material readable by flooring the tint alpha at this level.
	PlatformTransparencyCompensationLevel float64

	// FallbackColor is used where translucency is unavailable entirely.
	FallbackColor Color
}

// DefaultAcrylicMaterial returns a light acrylic with conservative
// compensation.
func DefaultAcrylicMaterial() AcrylicMaterial {
	return AcrylicMaterial{
		TintColor:                             White,
		TintOpacity:                           0.8,
		MaterialOpacity:                       1,
		PlatformTransparencyCompensationLevel: 0.3,
		FallbackColor:                         White,
	}
}

// EffectiveTint returns the tint color actually painted: the tint alpha
// scaled by TintOpacity, floored at the platform compensation level.
func (m AcrylicMaterial) EffectiveTint() Color {
	a := m.TintColor.A * m.TintOpacity
	level := m.PlatformTransparencyCompensationLevel
	if level < 0 {
		level = 0
	} else if level > 1 {
		level = 1
	}
	a = level + a*(1-level)
	return m.TintColor.WithAlpha(a)
}

// AcrylicBrush paints an acrylic material.
type AcrylicBrush struct {
	Material AcrylicMaterial

	Opacity         float64
	Transform       *Matrix
	TransformOrigin RelativePoint
}

// NewAcrylicBrush creates an acrylic brush over the default material with
// the given tint.
func NewAcrylicBrush(tint Color) *AcrylicBrush {
	m := DefaultAcrylicMaterial()
	m.TintColor = tint
	m.FallbackColor = tint
	return &AcrylicBrush{Material: m, Opacity: 1}
}

func (*AcrylicBrush) brushMarker() {}

// BrushOpacity implements Brush.
func (b *AcrylicBrush) BrushOpacity() float64 { return b.Opacity }

// BrushTransform implements Brush.
func (b *AcrylicBrush) BrushTransform() (*Matrix, RelativePoint) {
	return b.Transform, b.TransformOrigin
}
