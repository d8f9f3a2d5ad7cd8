package drawing

import (
	avalonia "github.com/0xDB6/Avalonia"
	"github.com/0xDB6/Avalonia/media"
	"github.com/0xDB6/Avalonia/surface"
)

// ContextLease exposes the raw resources under a Context for direct
// backend access. While a lease is open the owning context rejects
// every operation; closing the lease reactivates it and reverts any
// transform changes made through the lease.
type ContextLease struct {
	ctx          *Context
	pixmap       *surface.Pixmap
	gpu          avalonia.GPUContext
	surf         surface.Surface
	opacity      float64
	savedLogical media.Matrix
	closed       bool
}

// Pixmap returns the CPU backing store drawing currently renders to.
func (l *ContextLease) Pixmap() *surface.Pixmap { return l.pixmap }

// GPU returns the registered device handle, nil when CPU-only.
func (l *ContextLease) GPU() avalonia.GPUContext { return l.gpu }

// Surface returns the surface the context was created over. It is nil
// for internal intermediate contexts.
func (l *ContextLease) Surface() surface.Surface { return l.surf }

// Opacity returns the ambient opacity at the time of the lease.
func (l *ContextLease) Opacity() float64 { return l.opacity }

// Transform returns the context's logical transform.
func (l *ContextLease) Transform() media.Matrix { return l.ctx.logical }

// SetTransform changes the transform for raw rendering. The change is
// undone when the lease closes.
func (l *ContextLease) SetTransform(m media.Matrix) {
	if l.closed {
		return
	}
	l.ctx.setTransform(m)
}

// Close ends the lease, restores the transform that was current when
// the lease was taken and reactivates the context. Close is
// idempotent.
func (l *ContextLease) Close() error {
	if l.closed {
		return nil
	}
	l.closed = true
	l.ctx.setTransform(l.savedLogical)
	l.ctx.leased = false
	return nil
}
