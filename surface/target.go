package surface

import (
	"github.com/gogpu/gputypes"

	"github.com/0xDB6/Avalonia/media"
)

// Layer is an explicitly created off-screen framebuffer owned by a
// RenderTarget. Unlike the pooled scratch pixmaps used for clip, mask
// and tile-brush sub-renders, a Layer lives until the caller or the
// owning target closes it.
type Layer struct {
	surface *ImageSurface
	target  *RenderTarget
	closed  bool
}

// Surface returns the layer's framebuffer.
func (l *Layer) Surface() Surface { return l.surface }

// Size returns the layer's framebuffer size in device pixels.
func (l *Layer) Size() PixelSize { return l.surface.Size() }

// Close releases the layer and detaches it from its target. Close is
// idempotent.
func (l *Layer) Close() error {
	if l.closed {
		return nil
	}
	l.closed = true
	if l.target != nil {
		l.target.detach(l)
	}
	return l.surface.Close()
}

// RenderTarget wraps a surface with the resources a renderer needs
// across frames: a pixmap pool for transient layers and the set of
// explicitly created Layers, which are closed with the target. It
// implements Surface by delegation so it can be drawn to directly.
type RenderTarget struct {
	surface Surface
	pool    *PixmapPool
	layers  []*Layer
	closed  bool
}

var _ Surface = (*RenderTarget)(nil)

// NewRenderTarget wraps a surface. The target takes ownership: closing
// the target closes the surface.
func NewRenderTarget(s Surface) *RenderTarget {
	return &RenderTarget{
		surface: s,
		pool:    NewPixmapPool(8),
	}
}

// NewRenderTargetFor provisions a surface for a logical size at the
// given DPI through the provider registry and wraps it.
func NewRenderTargetFor(logical media.Size, dpi float64) (*RenderTarget, error) {
	s, err := NewSurface(Options{
		Size: PixelSizeFromLogical(logical, dpi),
		DPI:  dpi,
	})
	if err != nil {
		return nil, err
	}
	return NewRenderTarget(s), nil
}

// Surface returns the wrapped surface.
func (t *RenderTarget) Surface() Surface { return t.surface }

// Pool returns the pixmap pool shared by transient layer renders
// against this target.
func (t *RenderTarget) Pool() *PixmapPool { return t.pool }

// CreateLayer allocates a caller-managed off-screen framebuffer of
// the given logical size at the target's DPI.
func (t *RenderTarget) CreateLayer(logical media.Size) (*Layer, error) {
	if t.closed {
		return nil, ErrSurfaceClosed
	}
	l := &Layer{
		surface: NewImageSurface(Options{
			Size: PixelSizeFromLogical(logical, t.DPI()),
			DPI:  t.DPI(),
		}),
		target: t,
	}
	t.layers = append(t.layers, l)
	return l, nil
}

func (t *RenderTarget) detach(l *Layer) {
	for i, o := range t.layers {
		if o == l {
			t.layers = append(t.layers[:i], t.layers[i+1:]...)
			return
		}
	}
}

// Resize reallocates the underlying framebuffer when the surface
// supports it.
func (t *RenderTarget) Resize(size PixelSize) error {
	if t.closed {
		return ErrSurfaceClosed
	}
	r, ok := t.surface.(Resizable)
	if !ok {
		return ErrNotResizable
	}
	return r.Resize(size)
}

// Size implements Surface.
func (t *RenderTarget) Size() PixelSize { return t.surface.Size() }

// DPI implements Surface.
func (t *RenderTarget) DPI() float64 { return t.surface.DPI() }

// Format implements Surface.
func (t *RenderTarget) Format() gputypes.TextureFormat { return t.surface.Format() }

// Pixmap implements Surface.
func (t *RenderTarget) Pixmap() *Pixmap {
	if t.closed {
		return nil
	}
	return t.surface.Pixmap()
}

// Flush implements Surface.
func (t *RenderTarget) Flush() error {
	if t.closed {
		return ErrSurfaceClosed
	}
	return t.surface.Flush()
}

// Close closes every remaining layer, then the wrapped surface. Close
// is idempotent.
func (t *RenderTarget) Close() error {
	if t.closed {
		return nil
	}
	t.closed = true
	for _, l := range append([]*Layer(nil), t.layers...) {
		l.target = nil
		l.closed = true
		l.surface.Close()
	}
	t.layers = nil
	return t.surface.Close()
}
