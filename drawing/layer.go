package drawing

import (
	"github.com/0xDB6/Avalonia/internal/blend"
	"github.com/0xDB6/Avalonia/surface"
)

// layer is one off-screen compositing surface. While a layer is open,
// drawing is redirected into its pixmap; popping composites the pixmap
// onto the previous target and returns it to the pool.
type layer struct {
	pixmap *surface.Pixmap
	prev   *surface.Pixmap
}

// pushLayer redirects drawing into a fresh transparent pixmap of the
// same size as the current target.
func (c *Context) pushLayer() *layer {
	pm := c.layerPool().Get(c.pixmap.Size())
	l := &layer{pixmap: pm, prev: c.pixmap}
	c.layers = append(c.layers, l)
	c.pixmap = pm
	return l
}

// popLayer restores the previous target and composites the layer onto
// it with the given mode. The layer pixmap goes back to the pool.
func (c *Context) popLayer(mode blend.Mode) {
	if len(c.layers) == 0 {
		return
	}
	last := len(c.layers) - 1
	l := c.layers[last]
	c.layers = c.layers[:last]
	c.pixmap = l.prev
	compositePixmap(c.pixmap, l.pixmap, mode)
	c.layerPool().Put(l.pixmap)
}

// discardLayer drops the topmost layer without compositing. Close uses
// it to unwind layers left open by unbalanced pushes.
func (c *Context) discardLayer() {
	if len(c.layers) == 0 {
		return
	}
	last := len(c.layers) - 1
	l := c.layers[last]
	c.layers = c.layers[:last]
	c.pixmap = l.prev
	c.layerPool().Put(l.pixmap)
}

func (c *Context) layerPool() *surface.PixmapPool {
	if c.pool == nil {
		c.pool = surface.NewPixmapPool(8)
	}
	return c.pool
}

// compositePixmap blends src onto dst pixel by pixel. Both pixmaps must
// be the same size.
func compositePixmap(dst, src *surface.Pixmap, mode blend.Mode) {
	dp := dst.Pix()
	sp := src.Pix()
	n := len(dp)
	if len(sp) < n {
		n = len(sp)
	}

	if mode == blend.SrcOver {
		// The common case inlines source-over instead of going through
		// the blend function table.
		for i := 0; i < n; i += 4 {
			sa := sp[i+3]
			if sa == 0 {
				continue
			}
			if sa == 255 {
				dp[i] = sp[i]
				dp[i+1] = sp[i+1]
				dp[i+2] = sp[i+2]
				dp[i+3] = sa
				continue
			}
			inv := uint16(255 - sa)
			dp[i] = sp[i] + uint8((uint16(dp[i])*inv+127)/255)
			dp[i+1] = sp[i+1] + uint8((uint16(dp[i+1])*inv+127)/255)
			dp[i+2] = sp[i+2] + uint8((uint16(dp[i+2])*inv+127)/255)
			dp[i+3] = sa + uint8((uint16(dp[i+3])*inv+127)/255)
		}
		return
	}

	fn := blend.FuncFor(mode)
	for i := 0; i < n; i += 4 {
		r, g, b, a := fn(
			sp[i], sp[i+1], sp[i+2], sp[i+3],
			dp[i], dp[i+1], dp[i+2], dp[i+3],
		)
		dp[i] = r
		dp[i+1] = g
		dp[i+2] = b
		dp[i+3] = a
	}
}

// pooledPixmap returns a pixmap to its pool when closed. Paint wrappers
// track tile and visual brush intermediates with it so the pixmap
// outlives the draw call but not the paint release.
type pooledPixmap struct {
	pm   *surface.Pixmap
	pool *surface.PixmapPool
}

func (p pooledPixmap) Close() error {
	p.pool.Put(p.pm)
	return nil
}
