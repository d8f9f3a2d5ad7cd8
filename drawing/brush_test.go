package drawing

import (
	"errors"
	"image"
	"testing"

	"github.com/0xDB6/Avalonia/internal/blend"
	"github.com/0xDB6/Avalonia/media"
)

// resolveShader runs brush resolution the way a draw call would and
// hands back the shader for inspection.
func resolveShader(t *testing.T, c *Context, brush media.Brush, bounds media.Rect) shader {
	t.Helper()
	w := c.checkoutPaint()
	t.Cleanup(func() { w.Close() })
	if err := c.configurePaint(w, brush, bounds); err != nil {
		t.Fatalf("configurePaint: %v", err)
	}
	return w.Paint().shader
}

func TestConfigurePaintSolidFoldsOpacities(t *testing.T) {
	c := newTestContext(t, 4, 4)
	if err := c.PushOpacity(0.5); err != nil {
		t.Fatal(err)
	}
	brush := media.NewSolidColorBrush(media.Red)
	brush.Opacity = 0.5

	sh := resolveShader(t, c, brush, media.NewRect(0, 0, 4, 4))
	solid, ok := sh.(*solidShader)
	if !ok {
		t.Fatalf("shader = %T, want *solidShader", sh)
	}
	if solid.a != 64 || solid.r != 64 {
		t.Errorf("premul = (%d, a %d), want 64 from 0.5*0.5", solid.r, solid.a)
	}
}

func TestConfigurePaintNilBrushIsTransparent(t *testing.T) {
	c := newTestContext(t, 4, 4)
	sh := resolveShader(t, c, nil, media.NewRect(0, 0, 4, 4))
	if _, ok := sh.(transparentShader); !ok {
		t.Errorf("shader = %T, want transparentShader", sh)
	}
}

func TestResolveLinearDegenerateStops(t *testing.T) {
	c := newTestContext(t, 4, 4)
	bounds := media.NewRect(0, 0, 4, 4)

	empty := media.NewLinearGradientBrush(nil)
	sh0 := resolveShader(t, c, empty, bounds)
	if _, ok := sh0.(transparentShader); !ok {
		t.Errorf("no stops: shader = %T, want transparentShader", sh0)
	}

	single := media.NewLinearGradientBrush(media.GradientStops{{Offset: 0.5, Color: media.Green}})
	sh := resolveShader(t, c, single, bounds)
	solid, ok := sh.(*solidShader)
	if !ok {
		t.Fatalf("single stop: shader = %T, want *solidShader", sh)
	}
	if solid.g != 255 || solid.a != 255 {
		t.Errorf("single stop color = %+v, want opaque green", solid)
	}
}

func TestResolveLinearCoincidentEndpoints(t *testing.T) {
	c := newTestContext(t, 4, 4)
	brush := media.NewLinearGradientBrush(grayStops())
	brush.StartPoint = media.AbsPt(2, 2)
	brush.EndPoint = media.AbsPt(2, 2)

	sh := resolveShader(t, c, brush, media.NewRect(0, 0, 4, 4))
	solid, ok := sh.(*solidShader)
	if !ok {
		t.Fatalf("shader = %T, want *solidShader", sh)
	}
	if solid.r != 255 {
		t.Errorf("collapsed gradient = %+v, want the last stop", solid)
	}
}

func TestResolveRadialCenteredUsesRadialShader(t *testing.T) {
	c := newTestContext(t, 8, 8)
	brush := media.NewRadialGradientBrush(grayStops())

	sh := resolveShader(t, c, brush, media.NewRect(0, 0, 8, 8))
	radial, ok := sh.(*radialShader)
	if !ok {
		t.Fatalf("shader = %T, want *radialShader", sh)
	}
	if radial.center != media.Pt(4, 4) {
		t.Errorf("center = %v, want bounds center", radial.center)
	}
	if radial.radiusX != 4 || radial.radiusY != 4 {
		t.Errorf("radii = (%v, %v), want (4, 4)", radial.radiusX, radial.radiusY)
	}
}

func TestResolveRadialZeroRadiusIsLastStop(t *testing.T) {
	c := newTestContext(t, 8, 8)
	brush := media.NewRadialGradientBrush(grayStops())
	brush.RadiusX = media.AbsScalar(0)

	sh := resolveShader(t, c, brush, media.NewRect(0, 0, 8, 8))
	solid, ok := sh.(*solidShader)
	if !ok {
		t.Fatalf("shader = %T, want *solidShader", sh)
	}
	if solid.r != 255 {
		t.Errorf("zero radius = %+v, want the last stop color", solid)
	}
}

func TestResolveRadialFocalComposesOverOuterColor(t *testing.T) {
	c := newTestContext(t, 8, 8)
	brush := media.NewRadialGradientBrush(grayStops())
	brush.GradientOrigin = media.RelPt(0.25, 0.5)

	sh := resolveShader(t, c, brush, media.NewRect(0, 0, 8, 8))
	composed, ok := sh.(*composedShader)
	if !ok {
		t.Fatalf("shader = %T, want *composedShader", sh)
	}
	back, ok := composed.background.(*solidShader)
	if !ok {
		t.Fatalf("background = %T, want *solidShader", composed.background)
	}
	if back.r != 255 {
		t.Errorf("underlay = %+v, want the outermost stop color", back)
	}

	focal, ok := composed.foreground.(*focalShader)
	if !ok {
		t.Fatalf("foreground = %T, want *focalShader", composed.foreground)
	}
	// Stops come back reversed with offsets reflected about 1/2, still
	// ascending: the outermost color sits at offset 0.
	if len(focal.stops) != 2 {
		t.Fatalf("stops = %d, want 2", len(focal.stops))
	}
	if focal.stops[0].Offset != 0 || focal.stops[0].Color != media.White {
		t.Errorf("stops[0] = %+v, want white at 0", focal.stops[0])
	}
	if focal.stops[1].Offset != 1 || focal.stops[1].Color != media.Black {
		t.Errorf("stops[1] = %+v, want black at 1", focal.stops[1])
	}
	if focal.focal != media.Pt(2, 4) {
		t.Errorf("focal = %v, want the resolved gradient origin", focal.focal)
	}
}

func TestResolveConicKeepsAngle(t *testing.T) {
	c := newTestContext(t, 8, 8)
	brush := media.NewConicGradientBrush(grayStops())
	brush.Angle = 45

	sh := resolveShader(t, c, brush, media.NewRect(0, 0, 8, 8))
	conic, ok := sh.(*conicShader)
	if !ok {
		t.Fatalf("shader = %T, want *conicShader", sh)
	}
	if conic.angle != 45 {
		t.Errorf("angle = %v, want 45", conic.angle)
	}
	if conic.center != media.Pt(4, 4) {
		t.Errorf("center = %v, want bounds center", conic.center)
	}
}

func TestResolveImageNilSourceIsTransparent(t *testing.T) {
	c := newTestContext(t, 8, 8)
	sh := resolveShader(t, c, &media.ImageBrush{Opacity: 1}, media.NewRect(0, 0, 8, 8))
	if _, ok := sh.(transparentShader); !ok {
		t.Errorf("shader = %T, want transparentShader for a sourceless brush", sh)
	}
}

func TestResolveVisualNilVisualIsTransparent(t *testing.T) {
	// A brush with no visual resolves before the renderer check, so it
	// works even on contexts without one.
	c := newTestContext(t, 8, 8)
	sh := resolveShader(t, c, &media.VisualBrush{Opacity: 1}, media.NewRect(0, 0, 8, 8))
	if _, ok := sh.(transparentShader); !ok {
		t.Errorf("shader = %T, want transparentShader", sh)
	}
}

func TestResolveVisualWithoutRendererFails(t *testing.T) {
	c := newTestContext(t, 8, 8)
	w := c.checkoutPaint()
	defer w.Close()

	brush := &media.VisualBrush{Visual: struct{}{}, Opacity: 1}
	err := c.configurePaint(w, brush, media.NewRect(0, 0, 8, 8))
	if !errors.Is(err, ErrNoVisualBrushRenderer) {
		t.Errorf("configurePaint = %v, want ErrNoVisualBrushRenderer", err)
	}
}

type fakeVisualRenderer struct {
	size  media.Size
	fill  media.Color
	calls int
}

func (f *fakeVisualRenderer) IntermediateSize(*media.VisualBrush) media.Size {
	return f.size
}

func (f *fakeVisualRenderer) RenderVisual(ctx *Context, _ *media.VisualBrush) error {
	f.calls++
	return ctx.DrawRectangle(media.NewSolidColorBrush(f.fill), nil,
		media.NewRoundedRect(media.RectFromSize(ctx.Size()), 0))
}

func TestVisualBrushRendersSubScene(t *testing.T) {
	renderer := &fakeVisualRenderer{size: media.Size{Width: 8, Height: 8}, fill: media.Blue}
	c := newTestContext(t, 8, 8, WithVisualBrushRenderer(renderer))

	brush := &media.VisualBrush{
		Visual:          struct{}{},
		Opacity:         1,
		SourceRect:      media.RelativeFull,
		DestinationRect: media.RelativeFull,
		Stretch:         media.StretchFill,
	}
	if err := c.DrawRectangle(brush, nil, media.NewRoundedRect(media.NewRect(0, 0, 8, 8), 0)); err != nil {
		t.Fatalf("DrawRectangle: %v", err)
	}
	if renderer.calls != 1 {
		t.Errorf("renderer calls = %d, want 1", renderer.calls)
	}
	if got := pixelAt(c, 4, 4); got != [4]uint8{0, 0, 255, 255} {
		t.Errorf("pixel = %v, want the sub-scene fill", got)
	}
}

// newCheckerNRGBA builds a 2x2 red/blue checker.
func newCheckerNRGBA() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			i := img.PixOffset(x, y)
			if (x+y)%2 == 0 {
				img.Pix[i+0] = 255
			} else {
				img.Pix[i+2] = 255
			}
			img.Pix[i+3] = 255
		}
	}
	return img
}

func TestImageBrushTilesAcrossShape(t *testing.T) {
	// A 2x2 red/blue checker tiled at its natural size over an 8x8
	// shape: the pattern must repeat every two pixels.
	src := newCheckerNRGBA()
	brush := &media.ImageBrush{
		Source:          media.NewBitmapFromImage(src),
		Opacity:         1,
		TileMode:        media.TileModeTile,
		Stretch:         media.StretchNone,
		SourceRect:      media.RelativeFull,
		DestinationRect: media.AbsRect(0, 0, 2, 2),
	}

	c := newTestContext(t, 8, 8)
	if err := c.DrawRectangle(brush, nil, media.NewRoundedRect(media.NewRect(0, 0, 8, 8), 0)); err != nil {
		t.Fatalf("DrawRectangle: %v", err)
	}

	first := pixelAt(c, 0, 0)
	wrapped := pixelAt(c, 4, 4)
	if first != wrapped {
		t.Errorf("tile at (0,0) = %v differs from repeat at (4,4) = %v", first, wrapped)
	}
	if first[3] != 255 {
		t.Errorf("tile alpha = %d, want 255", first[3])
	}
}

func TestAcrylicResolvesToNoiseOverTint(t *testing.T) {
	c := newTestContext(t, 8, 8)
	brush := &media.AcrylicBrush{
		Material: media.AcrylicMaterial{
			BackgroundSource: media.AcrylicBackgroundNone,
			TintColor:        media.RGB(0.2, 0.2, 0.2),
			TintOpacity:      0.8,
			MaterialOpacity:  0.5,
		},
		Opacity: 1,
	}

	w := c.checkoutPaint()
	defer w.Close()
	if err := c.configurePaint(w, brush, media.NewRect(0, 0, 8, 8)); err != nil {
		t.Fatalf("configurePaint: %v", err)
	}
	composed, ok := w.Paint().shader.(*composedShader)
	if !ok {
		t.Fatalf("shader = %T, want *composedShader", w.Paint().shader)
	}
	if _, ok := composed.foreground.(*imageShader); !ok {
		t.Errorf("foreground = %T, want the noise image shader", composed.foreground)
	}
	if _, ok := composed.background.(*solidShader); !ok {
		t.Errorf("background = %T, want the solid tint", composed.background)
	}
	if w.Paint().blend != blend.SrcOver {
		t.Errorf("blend = %v, want source-over for non-digger acrylic", w.Paint().blend)
	}
}

func TestAcrylicDiggerReplacesTarget(t *testing.T) {
	c := newTestContext(t, 8, 8)
	brush := &media.AcrylicBrush{
		Material: media.AcrylicMaterial{
			BackgroundSource: media.AcrylicBackgroundDigger,
			TintColor:        media.RGB(0, 0, 0),
			TintOpacity:      1,
		},
		Opacity: 1,
	}

	w := c.checkoutPaint()
	defer w.Close()
	if err := c.configurePaint(w, brush, media.NewRect(0, 0, 8, 8)); err != nil {
		t.Fatalf("configurePaint: %v", err)
	}
	if w.Paint().blend != blend.Src {
		t.Errorf("blend = %v, want source for digger acrylic", w.Paint().blend)
	}
}

func TestBrushInverseAppliesBrushTransform(t *testing.T) {
	c := newTestContext(t, 8, 8)
	shift := media.Translate(2, 0)
	brush := media.NewLinearGradientBrush(grayStops())
	brush.Transform = &shift

	inv := c.brushInverse(brush, media.NewRect(0, 0, 8, 8))
	// Forward is device * translate, so the inverse un-translates.
	if got := inv.TransformPoint(media.Pt(3, 0)); got != media.Pt(1, 0) {
		t.Errorf("inverse maps (3,0) to %v, want (1,0)", got)
	}
}
