package drawing

import (
	"github.com/anthonynsimon/bild/blur"

	"github.com/0xDB6/Avalonia/internal/path"
	"github.com/0xDB6/Avalonia/internal/raster"
	"github.com/0xDB6/Avalonia/media"
	"github.com/0xDB6/Avalonia/surface"
)

// shadowsEnabled applies the oversized-target guard: box shadows are
// dropped wholesale when the rectangle's device extent exceeds the
// configured limit. This is a backend stability limit, nothing more.
func (c *Context) shadowsEnabled(rect media.Rect) bool {
	limit := c.opts.shadowSizeLimit
	if limit <= 0 {
		return false
	}
	dev := rect.TransformBounds(c.device)
	return dev.Width <= limit && dev.Height <= limit
}

// drawOutsetShadows renders every non-inset shadow behind the shape:
// a blurred, colored, offset copy of the shape, clipped to the
// outside of the shape boundary.
func (c *Context) drawOutsetShadows(rect media.RoundedRect, shadows media.BoxShadows) error {
	shapeMask := c.rasterizeShapeMask(rrectOps(rect))
	for _, s := range shadows {
		if s.Inset || !s.IsVisible() {
			continue
		}
		shape := rrectOps(rect.Inflate(s.Spread))
		c.renderShadow(shape, raster.FillNonZero, s, shapeMask, false)
	}
	return nil
}

// drawInsetShadows renders every inset shadow over the fill: an
// even-odd ring between an enlarged outer rect and the deflated inner
// shape, blurred and clipped to the inside of the shape.
func (c *Context) drawInsetShadows(rect media.RoundedRect, shadows media.BoxShadows) error {
	shapeMask := c.rasterizeShapeMask(rrectOps(rect))
	for _, s := range shadows {
		if !s.Inset || !s.IsVisible() {
			continue
		}
		outer := rect.Rect.Inflate(s.Blur)
		outer = outer.Union(outer.Translate(media.Point{X: -s.OffsetX, Y: -s.OffsetY}))
		inner := rect.Deflate(s.Spread)
		ring := append(rectOps(outer), rrectOps(inner)...)
		c.renderShadow(ring, raster.FillEvenOdd, s, shapeMask, true)
	}
	return nil
}

// renderShadow rasterizes one shadow shape into a scratch layer,
// blurs it, and composites it through the shape mask. The shadow's
// offset is applied as a temporary transform translation.
func (c *Context) renderShadow(ops []media.PathOp, rule raster.FillRule, s media.BoxShadow, shapeMask []uint8, inside bool) {
	pool := c.layerPool()
	scratch := pool.Get(surface.PixelSize{Width: c.width, Height: c.height})
	defer pool.Put(scratch)

	offset := c.device.Multiply(media.Translate(s.OffsetX, s.OffsetY))
	// Shadows dim inside a PushOpacity scope just like fills and
	// strokes do.
	c.fillSolidInto(scratch, ops, offset, rule, s.Color.MulAlpha(c.opacity))

	if s.Blur > 0 {
		radius := 0.5 * s.Blur * c.uniformScale()
		blurred := blur.Gaussian(scratch.Image(), radius)
		copy(scratch.Pix(), blurred.Pix)
	}

	c.compositeShadow(scratch, shapeMask, inside)
}

// rasterizeShapeMask renders the shape's own coverage, used to keep
// outset shadows outside it and inset shadows inside it.
func (c *Context) rasterizeShapeMask(ops []media.PathOp) []uint8 {
	mask := make([]uint8, c.width*c.height)
	c.rast.Reset()
	any := false
	for _, poly := range path.Flatten(ops, c.device, path.Tolerance) {
		if len(poly.Points) < 3 {
			continue
		}
		c.rast.AddPolyline(poly.Points)
		any = true
	}
	if !any {
		return mask
	}
	width := c.width
	c.rast.Fill(raster.FillNonZero, func(y, x0 int, cov []uint8) {
		copy(mask[y*width+x0:], cov)
	})
	return mask
}

// fillSolidInto rasterizes a path directly into a cleared scratch
// pixmap with a solid color, bypassing the clip stack; clipping
// happens once at composite time.
func (c *Context) fillSolidInto(pm *surface.Pixmap, ops []media.PathOp, m media.Matrix, rule raster.FillRule, col media.Color) {
	c.rast.Reset()
	any := false
	for _, poly := range path.Flatten(ops, m, path.Tolerance) {
		if len(poly.Points) < 3 {
			continue
		}
		c.rast.AddPolyline(poly.Points)
		any = true
	}
	if !any {
		return
	}
	cr, cg, cb, ca := col.PremulRGBA8()
	pix := pm.Pix()
	stride := pm.Stride()
	c.rast.Fill(rule, func(y, x0 int, cov []uint8) {
		base := y*stride + x0*4
		for i, cv := range cov {
			if cv == 0 {
				continue
			}
			j := base + i*4
			pix[j+0] = mul8(cr, cv)
			pix[j+1] = mul8(cg, cv)
			pix[j+2] = mul8(cb, cv)
			pix[j+3] = mul8(ca, cv)
		}
	})
}

// compositeShadow blends the blurred scratch layer into the target,
// weighting every pixel by the shape mask (inside) or its complement
// (outside) and by the active clip.
func (c *Context) compositeShadow(scratch *surface.Pixmap, shapeMask []uint8, inside bool) {
	pass := c.clips.passthrough()
	src := scratch.Pix()
	dst := c.pixmap.Pix()
	for y := 0; y < c.height; y++ {
		row := y * c.width
		for x := 0; x < c.width; x++ {
			pi := row + x
			i := pi * 4
			sa := src[i+3]
			if sa == 0 && src[i+0] == 0 && src[i+1] == 0 && src[i+2] == 0 {
				continue
			}
			factor := shapeMask[pi]
			if !inside {
				factor = 255 - factor
			}
			if factor == 0 {
				continue
			}
			if !pass {
				cc := c.clips.coverage(x, y)
				if cc == 0 {
					continue
				}
				factor = uint8(uint16(factor) * uint16(cc) / 255)
				if factor == 0 {
					continue
				}
			}
			sr := mul8(src[i+0], factor)
			sg := mul8(src[i+1], factor)
			sb := mul8(src[i+2], factor)
			saf := mul8(sa, factor)
			inv := uint16(255 - saf)
			dst[i+0] = sr + uint8((uint16(dst[i+0])*inv+127)/255)
			dst[i+1] = sg + uint8((uint16(dst[i+1])*inv+127)/255)
			dst[i+2] = sb + uint8((uint16(dst[i+2])*inv+127)/255)
			dst[i+3] = saf + uint8((uint16(dst[i+3])*inv+127)/255)
		}
	}
}
