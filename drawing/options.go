package drawing

import (
	"github.com/0xDB6/Avalonia/media"
	"github.com/0xDB6/Avalonia/surface"
)

// VisualBrushRenderer renders the sub-scene of a visual brush into an
// intermediate context. The compositor supplies an implementation that
// replays the referenced visual's draw list; tests supply fakes.
type VisualBrushRenderer interface {
	// IntermediateSize returns the logical size of the intermediate
	// surface the brush content should be rendered at.
	IntermediateSize(brush *media.VisualBrush) media.Size

	// RenderVisual draws the brush's visual content into ctx. The
	// context is already sized per IntermediateSize.
	RenderVisual(ctx *Context, brush *media.VisualBrush) error
}

// BackgroundSampler reports the backdrop color under a device pixel.
// Acrylic brushes composite over it; without a sampler they fall back to
// the material's fallback color.
type BackgroundSampler func(x, y float64) media.Color

// ContextOption configures a Context during creation.
//
// Example:
//
//	dc, err := drawing.NewContext(surf)
//	dc, err := drawing.NewContext(surf, drawing.WithClear(media.White))
type ContextOption func(*contextOptions)

// contextOptions holds optional configuration for Context creation.
type contextOptions struct {
	visualRenderer  VisualBrushRenderer
	background      BackgroundSampler
	shadowSizeLimit float64
	clear           bool
	clearColor      media.Color
	pool            *surface.PixmapPool
}

// defaultShadowSizeLimit is the device-pixel dimension above which box
// shadows are disabled entirely. Oversized blur targets destabilize the
// backend, so the whole feature backs off rather than individual shadows.
const defaultShadowSizeLimit = 8192

func defaultContextOptions() contextOptions {
	return contextOptions{
		shadowSizeLimit: defaultShadowSizeLimit,
	}
}

// WithVisualBrushRenderer supplies the collaborator that renders visual
// brush sub-scenes. Without one, drawing a visual brush fails with
// ErrNoVisualBrushRenderer.
func WithVisualBrushRenderer(r VisualBrushRenderer) ContextOption {
	return func(o *contextOptions) {
		o.visualRenderer = r
	}
}

// WithShadowSizeLimit overrides the device-pixel dimension above which
// box shadows are disabled. Non-positive limits disable shadows always.
func WithShadowSizeLimit(px float64) ContextOption {
	return func(o *contextOptions) {
		o.shadowSizeLimit = px
	}
}

// WithClear fills the surface with the given color before the first
// drawing operation.
func WithClear(c media.Color) ContextOption {
	return func(o *contextOptions) {
		o.clear = true
		o.clearColor = c
	}
}

// WithBackgroundSampler supplies the backdrop for acrylic materials.
func WithBackgroundSampler(f BackgroundSampler) ContextOption {
	return func(o *contextOptions) {
		o.background = f
	}
}

// WithPixmapPool sets the pool layer pixmaps are drawn from. Contexts
// created through a RenderTarget share the target's pool; a context
// created without one allocates a private pool on first use.
func WithPixmapPool(p *surface.PixmapPool) ContextOption {
	return func(o *contextOptions) {
		o.pool = p
	}
}
