// Package drawing rasterizes the immediate-mode drawing API onto a
// surface.Surface. A Context owns the full rasterization state: the
// logical transform composed with the DPI post-transform, the clip,
// opacity, blend-mode and opacity-mask stacks, a pool of reusable
// paints, and the CPU span pipeline that shades brush output through
// Porter-Duff compositing.
package drawing

import (
	"math"

	avalonia "github.com/0xDB6/Avalonia"
	"github.com/0xDB6/Avalonia/internal/blend"
	"github.com/0xDB6/Avalonia/internal/path"
	"github.com/0xDB6/Avalonia/internal/raster"
	"github.com/0xDB6/Avalonia/internal/stroke"
	"github.com/0xDB6/Avalonia/media"
	"github.com/0xDB6/Avalonia/surface"
	"github.com/0xDB6/Avalonia/text"
)

// Context draws onto a single surface. It is not safe for concurrent
// use. Create one with NewContext, issue draw calls, then Close it to
// release the GPU lock and any outstanding paints.
type Context struct {
	surf   surface.Surface
	pixmap *surface.Pixmap
	base   *surface.Pixmap

	width  int
	height int
	dpi    float64
	scale  float64

	// logical is the caller-visible transform; device is the DPI
	// post-transform composed with it. Every rasterized coordinate
	// goes through device.
	logical      media.Matrix
	device       media.Matrix
	dpiTransform media.Matrix

	opacity      float64
	opacityStack []float64
	blendMode    blend.Mode
	blendStack   []blend.Mode
	clips        *clipStack
	layers       []*layer
	masks        []maskEntry
	tags         []stackTag

	pool        *surface.PixmapPool
	paints      *paintPool
	outstanding []*PaintWrapper

	rast *raster.Rasterizer
	opts contextOptions

	gpu        avalonia.GPUContext
	releaseGPU func()

	leased bool
	closed bool
}

// NewContext creates a drawing context over the surface's CPU backing
// store. Surfaces without one (pure GPU swapchains) yield
// ErrNoBackingStore. While the context is open it holds the global GPU
// lock if a device handle is registered.
func NewContext(s surface.Surface, opts ...ContextOption) (*Context, error) {
	options := defaultContextOptions()
	for _, opt := range opts {
		opt(&options)
	}
	pm := s.Pixmap()
	if pm == nil {
		return nil, ErrNoBackingStore
	}
	gpu, release := avalonia.AcquireGPU()
	c := newPixmapContext(pm, s.DPI(), options)
	c.surf = s
	c.gpu = gpu
	c.releaseGPU = release
	if options.clear {
		pm.Clear(options.clearColor)
	}
	return c, nil
}

// newPixmapContext builds a context over a bare pixmap. Intermediate
// renders (tile and visual brush content) use it so they never touch
// the GPU lock, which is not reentrant.
func newPixmapContext(pm *surface.Pixmap, dpi float64, options contextOptions) *Context {
	if dpi <= 0 {
		dpi = 96
	}
	scale := dpi / 96
	c := &Context{
		pixmap:       pm,
		base:         pm,
		width:        pm.Width(),
		height:       pm.Height(),
		dpi:          dpi,
		scale:        scale,
		dpiTransform: media.Scale(scale, scale),
		logical:      media.Identity(),
		opacity:      1,
		blendMode:    blend.SrcOver,
		clips:        newClipStack(pm.Width(), pm.Height()),
		pool:         options.pool,
		paints:       newPaintPool(),
		rast:         raster.New(pm.Width(), pm.Height()),
		opts:         options,
		releaseGPU:   func() {},
	}
	c.device = c.dpiTransform
	return c
}

// usable gates every mutating operation.
func (c *Context) usable() error {
	if c.closed {
		return ErrClosed
	}
	if c.leased {
		return ErrLeased
	}
	return nil
}

// DPI returns the resolution the context renders at.
func (c *Context) DPI() float64 { return c.dpi }

// Size returns the drawable area in logical units.
func (c *Context) Size() media.Size {
	return surface.PixelSize{Width: c.width, Height: c.height}.ToLogical(c.dpi)
}

// Transform returns the current logical transform. The DPI scaling is
// not part of it; it is applied after.
func (c *Context) Transform() media.Matrix { return c.logical }

// SetTransform replaces the logical transform.
func (c *Context) SetTransform(m media.Matrix) error {
	if err := c.usable(); err != nil {
		return err
	}
	c.setTransform(m)
	return nil
}

func (c *Context) setTransform(m media.Matrix) {
	c.logical = m
	c.device = c.dpiTransform.Multiply(m)
}

// uniformScale is the scale factor the device transform applies to
// lengths, assuming it is close to a similarity. Pen widths, dash
// patterns and glyph sizes scale by it.
func (c *Context) uniformScale() float64 {
	det := c.device.A*c.device.E - c.device.B*c.device.D
	return math.Sqrt(math.Abs(det))
}

// Clear fills the whole target with the given color, ignoring the
// transform, clip and opacity state.
func (c *Context) Clear(color media.Color) error {
	if err := c.usable(); err != nil {
		return err
	}
	c.pixmap.Clear(color)
	return nil
}

// DrawLine strokes a single segment with the pen.
func (c *Context) DrawLine(pen *media.Pen, a, b media.Point) error {
	if err := c.usable(); err != nil {
		return err
	}
	if !pen.Visible() {
		return nil
	}
	ops := []media.PathOp{
		{Verb: media.PathMoveTo, P1: a},
		{Verb: media.PathLineTo, P1: b},
	}
	return c.strokePath(ops, pen, media.RectFromPoints(a, b))
}

// DrawRectangle fills and strokes a rounded rectangle, rendering any
// box shadows around it. Outset shadows go under the fill, inset
// shadows over it, the stroke on top. Rectangles with a non-positive
// width or height draw nothing.
func (c *Context) DrawRectangle(brush media.Brush, pen *media.Pen, rect media.RoundedRect, shadows ...media.BoxShadow) error {
	if err := c.usable(); err != nil {
		return err
	}
	if rect.Rect.Width <= 0 || rect.Rect.Height <= 0 {
		return nil
	}
	rect = rect.Normalized()
	boxShadows := media.BoxShadows(shadows)
	withShadows := len(shadows) > 0 && c.shadowsEnabled(rect.Rect)
	if withShadows && boxShadows.HasOutset() {
		if err := c.drawOutsetShadows(rect, boxShadows); err != nil {
			return err
		}
	}
	ops := rrectOps(rect)
	if brush != nil {
		if err := c.fillPath(ops, raster.FillNonZero, brush, rect.Rect); err != nil {
			return err
		}
	}
	if withShadows && boxShadows.HasInset() {
		if err := c.drawInsetShadows(rect, boxShadows); err != nil {
			return err
		}
	}
	if pen.Visible() {
		if err := c.strokePath(ops, pen, rect.Rect); err != nil {
			return err
		}
	}
	return nil
}

// DrawEllipse fills and strokes the ellipse inscribed in rect.
func (c *Context) DrawEllipse(brush media.Brush, pen *media.Pen, rect media.Rect) error {
	if err := c.usable(); err != nil {
		return err
	}
	if rect.Width <= 0 || rect.Height <= 0 {
		return nil
	}
	g := media.EllipseGeometry{
		Center:  rect.Center(),
		RadiusX: rect.Width / 2,
		RadiusY: rect.Height / 2,
	}
	ops := g.PathOps()
	if brush != nil {
		if err := c.fillPath(ops, raster.FillNonZero, brush, rect); err != nil {
			return err
		}
	}
	if pen.Visible() {
		return c.strokePath(ops, pen, rect)
	}
	return nil
}

// DrawGeometry fills and strokes an arbitrary geometry.
func (c *Context) DrawGeometry(brush media.Brush, pen *media.Pen, g media.Geometry) error {
	if err := c.usable(); err != nil {
		return err
	}
	if g == nil {
		return nil
	}
	ops := g.PathOps()
	if len(ops) == 0 {
		return nil
	}
	bounds := g.Bounds()
	if brush != nil {
		rule := raster.FillNonZero
		if sg, ok := g.(*media.StreamGeometry); ok && sg.FillRule == media.FillRuleEvenOdd {
			rule = raster.FillEvenOdd
		}
		if err := c.fillPath(ops, rule, brush, bounds); err != nil {
			return err
		}
	}
	if pen.Visible() {
		return c.strokePath(ops, pen, bounds)
	}
	return nil
}

// DrawBitmap draws the sourceRect portion of the bitmap, in bitmap
// pixels, into destRect in logical units. An empty sourceRect means
// the whole bitmap. The opacity multiplies the ambient opacity.
func (c *Context) DrawBitmap(source *media.Bitmap, opacity float64, sourceRect, destRect media.Rect) error {
	if err := c.usable(); err != nil {
		return err
	}
	if source == nil || source.Image() == nil {
		return nil
	}
	if destRect.Width <= 0 || destRect.Height <= 0 {
		return nil
	}
	img := source.Image()
	full := img.Bounds()
	if sourceRect.Width <= 0 || sourceRect.Height <= 0 {
		sourceRect = media.NewRect(0, 0, float64(full.Dx()), float64(full.Dy()))
	}
	src := imageRect(sourceRect).Add(full.Min).Intersect(full)
	if src.Empty() {
		return nil
	}

	w := c.checkoutPaint()
	defer w.Close()
	pm, err := c.stagePixmap(src.Dx(), src.Dy(), w)
	if err != nil {
		return err
	}
	copyNRGBA(pm, img, src)

	p := w.Paint()
	p.shader = &imageShader{
		pixmap:  pm,
		tile:    destRect,
		spreadX: spreadClamp,
		spreadY: spreadClamp,
		inv:     c.device.Invert(),
		opacity: c.opacity * clamp01(opacity),
	}
	p.blend = c.blendMode
	c.fillOps(rectOps(destRect), raster.FillNonZero, p)
	return nil
}

// DrawGlyphRun renders a shaped glyph run with the foreground brush.
// Glyph masks are rasterized at the transform's uniform scale and
// blitted upright at their transformed pen positions.
func (c *Context) DrawGlyphRun(foreground media.Brush, run *text.GlyphRun) error {
	if err := c.usable(); err != nil {
		return err
	}
	if foreground == nil || run == nil || run.Face == nil || len(run.Glyphs) == 0 {
		return nil
	}
	w := c.checkoutPaint()
	defer w.Close()
	if err := c.configurePaint(w, foreground, run.Bounds()); err != nil {
		return err
	}
	p := w.Paint()
	if p.shader == nil {
		return nil
	}
	bf := blend.FuncFor(p.blend)

	face := run.Face
	scale := c.uniformScale()
	if math.Abs(scale-1) > 1e-9 && face.Source() != nil {
		face = face.Source().Face(face.Size() * scale)
	}
	for i := range run.Glyphs {
		g := &run.Glyphs[i]
		mask := text.GlyphMask(face, g.GID)
		if mask == nil || mask.IsEmpty() {
			continue
		}
		pos := c.device.TransformPoint(media.Point{
			X: run.BaselineOrigin.X + g.X,
			Y: run.BaselineOrigin.Y + g.Y,
		})
		c.blitMask(mask, int(math.Round(pos.X)), int(math.Round(pos.Y)), p.shader, bf)
	}
	return nil
}

// blitMask composites a glyph alpha mask at the given device origin.
func (c *Context) blitMask(m *text.Mask, ox, oy int, sh shader, bf blend.Func) {
	alpha := m.Alpha
	if alpha == nil {
		return
	}
	r := alpha.Rect
	pass := c.clips.passthrough()
	pix := c.pixmap.Pix()
	for my := 0; my < r.Dy(); my++ {
		y := oy + r.Min.Y + my
		if y < 0 || y >= c.height {
			continue
		}
		row := alpha.Pix[my*alpha.Stride : my*alpha.Stride+r.Dx()]
		for mx, cov := range row {
			if cov == 0 {
				continue
			}
			x := ox + r.Min.X + mx
			if x < 0 || x >= c.width {
				continue
			}
			if !pass {
				cc := c.clips.coverage(x, y)
				if cc == 0 {
					continue
				}
				if cc < 255 {
					cov = uint8(uint16(cov) * uint16(cc) / 255)
					if cov == 0 {
						continue
					}
				}
			}
			shadePixel(pix, c.pixmap.PixOffset(x, y), x, y, cov, sh, bf)
		}
	}
}

// fillPath resolves the brush and fills the path with it.
func (c *Context) fillPath(ops []media.PathOp, rule raster.FillRule, brush media.Brush, bounds media.Rect) error {
	w := c.checkoutPaint()
	defer w.Close()
	if err := c.configurePaint(w, brush, bounds); err != nil {
		return err
	}
	c.fillOps(ops, rule, w.Paint())
	return nil
}

// strokePath resolves the pen and rasterizes the stroke outline.
// Stroke widths and dash lengths are logical; they scale with the
// transform like every other geometry.
func (c *Context) strokePath(ops []media.PathOp, pen *media.Pen, bounds media.Rect) error {
	if !pen.Visible() {
		return nil
	}
	w := c.checkoutPaint()
	defer w.Close()
	if err := c.configurePaint(w, pen.Brush, bounds); err != nil {
		return err
	}
	p := w.Paint()
	scale := c.uniformScale()
	p.stroke = true
	p.lineWidth = pen.Thickness * scale
	p.lineCap = pen.LineCap
	p.lineJoin = pen.LineJoin
	p.miterLimit = pen.MiterLimit
	if pen.DashStyle != nil {
		// Dash lengths are multiples of the pen thickness.
		unit := pen.Thickness * scale
		eff := pen.DashStyle.EffectiveDashes()
		p.dashes = make([]float64, len(eff))
		for i, d := range eff {
			p.dashes[i] = d * unit
		}
		p.dashOffset = pen.DashStyle.Offset * unit
	}
	if p.lineWidth <= 0 {
		return nil
	}

	st := stroke.Stroke{
		Width:      p.lineWidth,
		Cap:        p.lineCap,
		Join:       p.lineJoin,
		MiterLimit: p.miterLimit,
	}
	polys := path.Flatten(ops, c.device, path.Tolerance)
	var outlines []path.Polyline
	for _, poly := range polys {
		if len(poly.Points) < 2 {
			continue
		}
		if len(p.dashes) > 0 {
			for _, seg := range stroke.SplitDashes(poly.Points, poly.Closed, p.dashes, p.dashOffset) {
				for _, outline := range st.Expand(seg, false) {
					outlines = append(outlines, path.Polyline{Points: outline, Closed: true})
				}
			}
		} else {
			for _, outline := range st.Expand(poly.Points, poly.Closed) {
				outlines = append(outlines, path.Polyline{Points: outline, Closed: true})
			}
		}
	}
	c.fillPolylines(outlines, raster.FillNonZero, p)
	return nil
}

// fillOps flattens the path through the device transform and fills it.
func (c *Context) fillOps(ops []media.PathOp, rule raster.FillRule, p *Paint) {
	c.fillPolylines(path.Flatten(ops, c.device, path.Tolerance), rule, p)
}

func (c *Context) fillPolylines(polys []path.Polyline, rule raster.FillRule, p *Paint) {
	if p.shader == nil {
		return
	}
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
		return
	}
	bf := blend.FuncFor(p.blend)
	pass := c.clips.passthrough()
	pix := c.pixmap.Pix()
	stride := c.pixmap.Stride()
	c.rast.Fill(rule, func(y, x0 int, cov []uint8) {
		base := y*stride + x0*4
		for i, cv := range cov {
			if cv == 0 {
				continue
			}
			if !p.antialias {
				if cv < 128 {
					continue
				}
				cv = 255
			}
			x := x0 + i
			if !pass {
				cc := c.clips.coverage(x, y)
				if cc == 0 {
					continue
				}
				if cc < 255 {
					cv = uint8(uint16(cv) * uint16(cc) / 255)
					if cv == 0 {
						continue
					}
				}
			}
			shadePixel(pix, base+i*4, x, y, cv, p.shader, bf)
		}
	})
}

// shadePixel samples the shader at the pixel center, scales by
// coverage and blends into pix at offset i.
func shadePixel(pix []uint8, i, x, y int, cov uint8, sh shader, bf blend.Func) {
	sr, sg, sb, sa := sh.sample(float64(x)+0.5, float64(y)+0.5)
	if cov < 255 {
		cv := uint16(cov)
		sr = uint8((uint16(sr)*cv + 127) / 255)
		sg = uint8((uint16(sg)*cv + 127) / 255)
		sb = uint8((uint16(sb)*cv + 127) / 255)
		sa = uint8((uint16(sa)*cv + 127) / 255)
	}
	r, g, b, a := bf(sr, sg, sb, sa, pix[i+0], pix[i+1], pix[i+2], pix[i+3])
	pix[i+0] = r
	pix[i+1] = g
	pix[i+2] = b
	pix[i+3] = a
}

// checkoutPaint takes a wrapper from the pool and tracks it so Close
// can reclaim leaks.
func (c *Context) checkoutPaint() *PaintWrapper {
	w := c.paints.checkout(c)
	c.outstanding = append(c.outstanding, w)
	return w
}

// returnPaint is called by PaintWrapper.Close.
func (c *Context) returnPaint(w *PaintWrapper) {
	for i, o := range c.outstanding {
		if o == w {
			c.outstanding = append(c.outstanding[:i], c.outstanding[i+1:]...)
			break
		}
	}
	c.paints.put(w.paint)
}

// stagePixmap rents an intermediate pixmap and parks its return on the
// wrapper, so it lives exactly as long as the paint that samples it.
func (c *Context) stagePixmap(width, height int, w *PaintWrapper) (*surface.Pixmap, error) {
	pool := c.layerPool()
	pm := pool.Get(surface.PixelSize{Width: width, Height: height})
	if err := w.AddDisposable(&pooledPixmap{pm: pm, pool: pool}); err != nil {
		pool.Put(pm)
		return nil, err
	}
	return pm, nil
}

// GPU returns the registered device handle, or nil when rendering is
// CPU-only.
func (c *Context) GPU() avalonia.GPUContext { return c.gpu }

// Lease suspends the context and hands out its raw resources. Every
// context operation fails with ErrLeased until the lease is closed.
func (c *Context) Lease() (*ContextLease, error) {
	if c.closed {
		return nil, ErrClosed
	}
	if c.leased {
		return nil, ErrLeased
	}
	c.leased = true
	return &ContextLease{
		ctx:          c,
		pixmap:       c.pixmap,
		gpu:          c.gpu,
		surf:         c.surf,
		opacity:      c.opacity,
		savedLogical: c.logical,
	}, nil
}

// Close releases the context: outstanding paints are reclaimed, open
// layers are dropped without compositing, and the GPU lock is
// released. Close is idempotent.
func (c *Context) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	c.leased = false
	for _, w := range append([]*PaintWrapper(nil), c.outstanding...) {
		w.Close()
	}
	c.outstanding = nil
	for _, m := range c.masks {
		if m.wrapper != nil {
			m.wrapper.Close()
		}
	}
	c.masks = nil
	for len(c.layers) > 0 {
		c.discardLayer()
	}
	c.clips.popTo(0)
	c.tags = nil
	c.opacityStack = nil
	c.blendStack = nil
	c.releaseGPU()
	return nil
}
