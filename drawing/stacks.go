package drawing

import (
	"github.com/0xDB6/Avalonia/internal/blend"
	"github.com/0xDB6/Avalonia/internal/path"
	"github.com/0xDB6/Avalonia/internal/raster"
	"github.com/0xDB6/Avalonia/media"
	"github.com/0xDB6/Avalonia/surface"
)

// stackTag records which kind of state each push left on the context,
// so that pops are checked against the actual nesting order.
type stackTag uint8

const (
	tagClip stackTag = iota
	tagGeometryClip
	tagOpacity
	tagBlend
	tagOpacityMask
)

// maskEntry pairs an opacity-mask layer with the paint holding its
// resolved shader. The wrapper is closed when the mask pops.
type maskEntry struct {
	wrapper *PaintWrapper
}

// PushClip intersects the clip with an axis-aligned rectangle in the
// current transform. Rects that stay axis-aligned under the transform
// clip analytically; rotated ones fall back to a coverage mask.
func (c *Context) PushClip(rect media.Rect) error {
	if err := c.usable(); err != nil {
		return err
	}
	c.pushRectClip(rect)
	c.tags = append(c.tags, tagClip)
	return nil
}

// PushRoundedClip intersects the clip with a rounded rectangle.
func (c *Context) PushRoundedClip(rr media.RoundedRect) error {
	if err := c.usable(); err != nil {
		return err
	}
	if !rr.IsRounded() {
		c.pushRectClip(rr.Rect)
	} else {
		c.pushMaskClip(rrectOps(rr.Normalized()), raster.FillNonZero)
	}
	c.tags = append(c.tags, tagClip)
	return nil
}

// PopClip removes the most recent PushClip or PushRoundedClip.
func (c *Context) PopClip() error {
	return c.popTagged(tagClip, func() { c.clips.pop() })
}

// PushGeometryClip intersects the clip with an arbitrary geometry.
func (c *Context) PushGeometryClip(g media.Geometry) error {
	if err := c.usable(); err != nil {
		return err
	}
	var ops []media.PathOp
	rule := raster.FillNonZero
	if g != nil {
		ops = g.PathOps()
		if sg, ok := g.(*media.StreamGeometry); ok && sg.FillRule == media.FillRuleEvenOdd {
			rule = raster.FillEvenOdd
		}
	}
	c.pushMaskClip(ops, rule)
	c.tags = append(c.tags, tagGeometryClip)
	return nil
}

// PopGeometryClip removes the most recent PushGeometryClip.
func (c *Context) PopGeometryClip() error {
	return c.popTagged(tagGeometryClip, func() { c.clips.pop() })
}

// PushOpacity multiplies the ambient opacity applied to subsequent
// draws. Values are clamped to [0, 1].
func (c *Context) PushOpacity(opacity float64) error {
	if err := c.usable(); err != nil {
		return err
	}
	c.opacityStack = append(c.opacityStack, c.opacity)
	c.opacity *= clamp01(opacity)
	c.tags = append(c.tags, tagOpacity)
	return nil
}

// PopOpacity restores the ambient opacity.
func (c *Context) PopOpacity() error {
	return c.popTagged(tagOpacity, func() {
		n := len(c.opacityStack)
		c.opacity = c.opacityStack[n-1]
		c.opacityStack = c.opacityStack[:n-1]
	})
}

// PushBitmapBlendMode changes the composite operator for subsequent
// draws.
func (c *Context) PushBitmapBlendMode(mode media.BlendMode) error {
	if err := c.usable(); err != nil {
		return err
	}
	c.blendStack = append(c.blendStack, c.blendMode)
	c.blendMode = blendModeFor(mode)
	c.tags = append(c.tags, tagBlend)
	return nil
}

// PopBitmapBlendMode restores the previous composite operator.
func (c *Context) PopBitmapBlendMode() error {
	return c.popTagged(tagBlend, func() {
		n := len(c.blendStack)
		c.blendMode = c.blendStack[n-1]
		c.blendStack = c.blendStack[:n-1]
	})
}

// PushOpacityMask redirects drawing into a layer that will be
// multiplied by the brush's alpha, sampled over bounds, when the mask
// is popped.
func (c *Context) PushOpacityMask(brush media.Brush, bounds media.Rect) error {
	if err := c.usable(); err != nil {
		return err
	}
	w := c.checkoutPaint()
	if err := c.configurePaint(w, brush, bounds); err != nil {
		w.Close()
		return err
	}
	c.masks = append(c.masks, maskEntry{wrapper: w})
	c.pushLayer()
	c.tags = append(c.tags, tagOpacityMask)
	return nil
}

// PopOpacityMask applies the mask to the layered content and
// composites the result into the parent target. The mask itself is
// rendered into a second, inner layer so that only alpha transfers.
func (c *Context) PopOpacityMask() error {
	return c.popTagged(tagOpacityMask, func() {
		n := len(c.masks)
		entry := c.masks[n-1]
		c.masks = c.masks[:n-1]

		content := c.layers[len(c.layers)-1]
		pool := c.layerPool()
		maskPm := pool.Get(c.pixmap.Size())
		if sh := entry.wrapper.Paint().shader; sh != nil {
			fillPixmapWithShader(maskPm, sh)
		}
		compositePixmap(content.pixmap, maskPm, blend.DstIn)
		pool.Put(maskPm)
		entry.wrapper.Close()

		c.popLayer(blend.SrcOver)
	})
}

// popTagged validates strict nesting: the top of the combined stack
// must match the kind being popped.
func (c *Context) popTagged(tag stackTag, restore func()) error {
	if err := c.usable(); err != nil {
		return err
	}
	if len(c.tags) == 0 || c.tags[len(c.tags)-1] != tag {
		return ErrStackUnderflow
	}
	c.tags = c.tags[:len(c.tags)-1]
	restore()
	return nil
}

func (c *Context) pushRectClip(rect media.Rect) {
	if r, ok := axisAlignedRect(rect, c.device); ok {
		c.clips.pushRect(r)
		return
	}
	c.pushMaskClip(rectOps(rect), raster.FillNonZero)
}

// pushMaskClip rasterizes the path into a full-canvas coverage mask.
func (c *Context) pushMaskClip(ops []media.PathOp, rule raster.FillRule) {
	mask := make([]uint8, c.width*c.height)
	polys := path.Flatten(ops, c.device, path.Tolerance)
	c.rast.Reset()
	any := false
	for _, poly := range polys {
		if len(poly.Points) < 3 {
			continue
		}
		c.rast.AddPolyline(poly.Points)
		any = true
	}
	if !any {
		c.clips.pushMask(mask, media.Rect{})
		return
	}
	width := c.width
	c.rast.Fill(rule, func(y, x0 int, cov []uint8) {
		copy(mask[y*width+x0:], cov)
	})
	c.clips.pushMask(mask, polylineBounds(polys))
}

// fillPixmapWithShader writes the shader's output over the whole
// pixmap, replacing whatever is there.
func fillPixmapWithShader(pm *surface.Pixmap, sh shader) {
	pix := pm.Pix()
	w, h := pm.Width(), pm.Height()
	for y := 0; y < h; y++ {
		i := y * pm.Stride()
		for x := 0; x < w; x++ {
			r, g, b, a := sh.sample(float64(x)+0.5, float64(y)+0.5)
			pix[i+0] = r
			pix[i+1] = g
			pix[i+2] = b
			pix[i+3] = a
			i += 4
		}
	}
}

// blendModeFor maps the public blend enum to the compositing kernel.
func blendModeFor(m media.BlendMode) blend.Mode {
	switch m {
	case media.BlendClear:
		return blend.Clear
	case media.BlendSource:
		return blend.Src
	case media.BlendDestination:
		return blend.Dst
	case media.BlendDestinationOver:
		return blend.DstOver
	case media.BlendSourceIn:
		return blend.SrcIn
	case media.BlendDestinationIn:
		return blend.DstIn
	case media.BlendSourceOut:
		return blend.SrcOut
	case media.BlendDestinationOut:
		return blend.DstOut
	case media.BlendSourceAtop:
		return blend.SrcAtop
	case media.BlendDestinationAtop:
		return blend.DstAtop
	case media.BlendXor:
		return blend.Xor
	case media.BlendPlus:
		return blend.Plus
	case media.BlendModulate:
		return blend.Modulate
	case media.BlendMultiply:
		return blend.Multiply
	case media.BlendScreen:
		return blend.Screen
	case media.BlendOverlay:
		return blend.Overlay
	case media.BlendDarken:
		return blend.Darken
	case media.BlendLighten:
		return blend.Lighten
	case media.BlendDifference:
		return blend.Difference
	case media.BlendExclusion:
		return blend.Exclusion
	default:
		return blend.SrcOver
	}
}
