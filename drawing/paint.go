package drawing

import (
	"io"
	"sync"

	"github.com/0xDB6/Avalonia/internal/blend"
	"github.com/0xDB6/Avalonia/media"
)

// Paint holds the transient state of one draw call: the resolved shader
// plus stroke and compositing attributes. Paints are pooled; they reach
// callers only inside a PaintWrapper and return to the pool reset.
type Paint struct {
	shader     shader
	blend      blend.Mode
	stroke     bool
	lineWidth  float64
	lineCap    media.PenLineCap
	lineJoin   media.PenLineJoin
	miterLimit float64
	dashes     []float64
	dashOffset float64
	antialias  bool
}

// reset restores the neutral defaults: no shader, source-over, fill
// style, miter limit 10, antialiasing on.
func (p *Paint) reset() {
	p.shader = nil
	p.blend = blend.SrcOver
	p.stroke = false
	p.lineWidth = 0
	p.lineCap = media.PenLineCapFlat
	p.lineJoin = media.PenLineJoinMiter
	p.miterLimit = 10
	p.dashes = nil
	p.dashOffset = 0
	p.antialias = true
}

// maxPaintAux is the number of auxiliary disposables one draw call may
// create while configuring a paint (intermediate surfaces, sub-renders).
const maxPaintAux = 3

// PaintWrapper is a checked-out paint plus the auxiliary disposables
// created while configuring it. Closing the wrapper closes the
// disposables in reverse order, resets the paint and returns it to the
// pool. A wrapper is owned by exactly one draw call; the pool's
// checkout discipline guarantees no two calls share a paint.
type PaintWrapper struct {
	paint    *Paint
	aux      [maxPaintAux]io.Closer
	auxCount int
	ctx      *Context
	released bool
}

// Paint returns the wrapped paint.
func (w *PaintWrapper) Paint() *Paint {
	return w.paint
}

// AddDisposable registers a resource to close when the wrapper is
// released. At most maxPaintAux resources fit; the next one fails with
// ErrPaintAuxLimit and is not tracked.
func (w *PaintWrapper) AddDisposable(d io.Closer) error {
	if w.auxCount >= maxPaintAux {
		return ErrPaintAuxLimit
	}
	w.aux[w.auxCount] = d
	w.auxCount++
	return nil
}

// Close releases the auxiliary disposables, resets the paint and
// returns it to the pool. Close is idempotent.
func (w *PaintWrapper) Close() error {
	if w.released {
		return nil
	}
	w.released = true
	for i := w.auxCount - 1; i >= 0; i-- {
		_ = w.aux[i].Close()
		w.aux[i] = nil
	}
	w.auxCount = 0
	w.paint.reset()
	if w.ctx != nil {
		w.ctx.returnPaint(w)
	}
	return nil
}

var _ io.Closer = (*PaintWrapper)(nil)

// paintPool recycles paints across draw calls. Checkout hands out a
// wrapper holding a reset paint; return happens through
// PaintWrapper.Close.
type paintPool struct {
	pool sync.Pool
}

func newPaintPool() *paintPool {
	return &paintPool{
		pool: sync.Pool{
			New: func() any {
				p := &Paint{}
				p.reset()
				return p
			},
		},
	}
}

func (pp *paintPool) checkout(ctx *Context) *PaintWrapper {
	p := pp.pool.Get().(*Paint)
	p.reset()
	return &PaintWrapper{paint: p, ctx: ctx}
}

func (pp *paintPool) put(p *Paint) {
	pp.pool.Put(p)
}
