package drawing

import (
	"image"
	"math"

	"github.com/disintegration/imaging"

	"github.com/0xDB6/Avalonia/media"
	"github.com/0xDB6/Avalonia/surface"
)

// configurePaint resolves a brush against the bounds of the shape
// being painted and loads the result into the wrapper's paint. The
// type switch is exhaustive over the sealed brush set; resolution
// failures leave the paint unusable and return the error.
func (c *Context) configurePaint(w *PaintWrapper, brush media.Brush, bounds media.Rect) error {
	p := w.Paint()
	p.blend = c.blendMode
	switch b := brush.(type) {
	case nil:
		p.shader = transparentShader{}
	case *media.SolidColorBrush:
		p.shader = newSolidShader(b.Color, c.opacity*clamp01(b.Opacity))
	case *media.LinearGradientBrush:
		p.shader = c.resolveLinear(b, bounds)
	case *media.RadialGradientBrush:
		p.shader = c.resolveRadial(b, bounds)
	case *media.ConicGradientBrush:
		p.shader = c.resolveConic(b, bounds)
	case *media.ImageBrush:
		sh, err := c.resolveImage(w, b, bounds)
		if err != nil {
			return err
		}
		p.shader = sh
	case *media.VisualBrush:
		sh, err := c.resolveVisual(w, b, bounds)
		if err != nil {
			return err
		}
		p.shader = sh
	case *media.AcrylicBrush:
		c.resolveAcrylic(p, b)
	}
	return nil
}

// brushInverse maps device coordinates back into brush space,
// accounting for the brush's optional transform about its origin.
func (c *Context) brushInverse(brush media.Brush, bounds media.Rect) media.Matrix {
	t, origin := brush.BrushTransform()
	forward := c.device
	if t != nil {
		forward = c.device.Multiply(t.AboutOrigin(origin.ToAbsolute(bounds)))
	}
	return forward.Invert()
}

func (c *Context) resolveLinear(b *media.LinearGradientBrush, bounds media.Rect) shader {
	stops := sortedStops(b.Stops)
	opacity := c.opacity * clamp01(b.Opacity)
	if sh, done := degenerateGradient(stops, opacity); done {
		return sh
	}
	start := b.StartPoint.ToAbsolute(bounds)
	end := b.EndPoint.ToAbsolute(bounds)
	if start == end {
		return newSolidShader(stops[len(stops)-1].Color, opacity)
	}
	return newLinearShader(start, end, stops, b.Spread, c.brushInverse(b, bounds), opacity)
}

func (c *Context) resolveRadial(b *media.RadialGradientBrush, bounds media.Rect) shader {
	stops := sortedStops(b.Stops)
	opacity := c.opacity * clamp01(b.Opacity)
	if sh, done := degenerateGradient(stops, opacity); done {
		return sh
	}
	rx := b.RadiusX.ToAbsolute(bounds.Width)
	ry := b.RadiusY.ToAbsolute(bounds.Height)
	if rx <= 0 || ry <= 0 {
		return newSolidShader(stops[len(stops)-1].Color, opacity)
	}
	center := b.Center.ToAbsolute(bounds)
	focal := b.GradientOrigin.ToAbsolute(bounds)
	inv := c.brushInverse(b, bounds)
	if focal == center {
		return &radialShader{
			center:  center,
			radiusX: rx,
			radiusY: ry,
			stops:   stops,
			spread:  b.Spread,
			inv:     inv,
			opacity: opacity,
		}
	}
	return newFocalShader(center, focal, rx, ry, stops, b.Spread, inv, opacity)
}

// newFocalShader emulates a two-point conical gradient for a radial
// brush whose gradient origin sits off center: the stop list is
// reversed with offsets reflected about 1/2 and swept from the outer
// circle down to the focal point, composed over a solid underlay of
// the outermost stop's color for the region the cone never covers.
func newFocalShader(center, focal media.Point, rx, ry float64, stops media.GradientStops, spread media.SpreadMethod, inv media.Matrix, opacity float64) shader {
	if ry != rx {
		// Squash brush space so the ellipse becomes a circle of
		// radius rx.
		squash := media.Scale(1, rx/ry).AboutOrigin(center)
		inv = squash.Multiply(inv)
		focal = squash.TransformPoint(focal)
	}
	reversed := make(media.GradientStops, len(stops))
	for i, s := range stops {
		reversed[len(stops)-1-i] = media.GradientStop{Offset: 1 - s.Offset, Color: s.Color}
	}
	return &composedShader{
		background: newSolidShader(reversed[0].Color, opacity),
		foreground: &focalShader{
			center:  center,
			focal:   focal,
			radius:  rx,
			stops:   reversed,
			spread:  spread,
			inv:     inv,
			opacity: opacity,
		},
	}
}

func (c *Context) resolveConic(b *media.ConicGradientBrush, bounds media.Rect) shader {
	stops := sortedStops(b.Stops)
	opacity := c.opacity * clamp01(b.Opacity)
	if sh, done := degenerateGradient(stops, opacity); done {
		return sh
	}
	return &conicShader{
		center:  b.Center.ToAbsolute(bounds),
		angle:   b.Angle,
		stops:   stops,
		spread:  b.Spread,
		inv:     c.brushInverse(b, bounds),
		opacity: opacity,
	}
}

// degenerateGradient handles the stop counts that need no gradient
// math at all.
func degenerateGradient(stops media.GradientStops, opacity float64) (shader, bool) {
	switch len(stops) {
	case 0:
		return transparentShader{}, true
	case 1:
		return newSolidShader(stops[0].Color, opacity), true
	}
	return nil, false
}

// resolveImage renders the brush's bitmap content into a pooled
// intermediate at device resolution and wraps it in a sampling shader.
// The intermediate's return to the pool rides on the paint wrapper.
func (c *Context) resolveImage(w *PaintWrapper, b *media.ImageBrush, bounds media.Rect) (shader, error) {
	if b.Source == nil || b.Source.Image() == nil {
		return transparentShader{}, nil
	}
	layout := computeTileLayout(b.TileMode, b.Stretch, b.AlignmentX, b.AlignmentY,
		b.SourceRect, b.DestinationRect, b.Source.Size(), bounds.Size())
	interSize := surface.PixelSizeFromLogical(layout.IntermediateSize, c.dpi)
	if interSize.IsEmpty() || layout.SourceRect.IsEmpty() {
		return transparentShader{}, nil
	}

	// Crop the source pixels and prescale them to their final device
	// size in one resampling pass.
	img := b.Source.Image()
	pxPerUnit := b.Source.DPI() / 96
	srcPx := imageRect(scaleRect(layout.SourceRect, pxPerUnit)).Intersect(img.Bounds())
	if srcPx.Empty() {
		return transparentShader{}, nil
	}
	scaledW := int(math.Round(layout.SourceRect.Width * layout.ScaleX * c.scale))
	scaledH := int(math.Round(layout.SourceRect.Height * layout.ScaleY * c.scale))
	if scaledW < 1 || scaledH < 1 {
		return transparentShader{}, nil
	}
	content := imaging.Crop(img, srcPx)
	if scaledW != srcPx.Dx() || scaledH != srcPx.Dy() {
		content = imaging.Resize(content, scaledW, scaledH, imaging.Lanczos)
	}

	pm, err := c.stagePixmap(interSize.Width, interSize.Height, w)
	if err != nil {
		return nil, err
	}
	offX, offY := layout.TranslateX, layout.TranslateY
	if b.TileMode == media.TileModeNone {
		offX += layout.DestRect.X
		offY += layout.DestRect.Y
	}
	clipPx := imageRect(scaleRect(layout.Clip, c.scale)).Intersect(image.Rect(0, 0, interSize.Width, interSize.Height))
	blitNRGBA(pm, content, int(math.Round(offX*c.scale)), int(math.Round(offY*c.scale)), clipPx)

	return c.tileShader(b, b.TileMode, layout, pm, bounds, clamp01(b.Opacity)), nil
}

// resolveVisual renders the brush's sub-scene into a pooled
// intermediate through the injected renderer.
func (c *Context) resolveVisual(w *PaintWrapper, b *media.VisualBrush, bounds media.Rect) (shader, error) {
	if b.Visual == nil {
		return transparentShader{}, nil
	}
	renderer := c.opts.visualRenderer
	if renderer == nil {
		return nil, ErrNoVisualBrushRenderer
	}
	content := renderer.IntermediateSize(b)
	if content.Width <= 0 || content.Height <= 0 {
		return transparentShader{}, nil
	}
	layout := computeTileLayout(b.TileMode, b.Stretch, b.AlignmentX, b.AlignmentY,
		b.SourceRect, b.DestinationRect, content, bounds.Size())
	interSize := surface.PixelSizeFromLogical(layout.IntermediateSize, c.dpi)
	if interSize.IsEmpty() {
		return transparentShader{}, nil
	}

	pm, err := c.stagePixmap(interSize.Width, interSize.Height, w)
	if err != nil {
		return nil, err
	}
	sub := newPixmapContext(pm, c.dpi, c.opts)
	sub.pool = c.layerPool()
	if err := sub.PushClip(layout.Clip); err != nil {
		sub.Close()
		return nil, err
	}
	sub.setTransform(layout.Transform)
	renderErr := renderer.RenderVisual(sub, b)
	sub.Close()
	if renderErr != nil {
		return nil, renderErr
	}

	return c.tileShader(b, b.TileMode, layout, pm, bounds, clamp01(b.Opacity)), nil
}

// tileShader builds the sampling shader over a rendered intermediate.
func (c *Context) tileShader(brush media.Brush, mode media.TileMode, layout tileLayout, pm *surface.Pixmap, bounds media.Rect, brushOpacity float64) shader {
	var tile media.Rect
	if mode == media.TileModeNone {
		tile = bounds
	} else {
		tile = layout.DestRect.Translate(bounds.Position())
	}
	sx, sy := tileModeSpreads(mode)
	return &imageShader{
		pixmap:  pm,
		tile:    tile,
		spreadX: sx,
		spreadY: sy,
		inv:     c.brushInverse(brush, bounds),
		opacity: c.opacity * brushOpacity,
	}
}

func scaleRect(r media.Rect, s float64) media.Rect {
	return media.NewRect(r.X*s, r.Y*s, r.Width*s, r.Height*s)
}
