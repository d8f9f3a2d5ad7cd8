package composition

import (
	"fmt"
	"math"
	"sync"
	"time"

	avalonia "github.com/0xDB6/Avalonia"
	"github.com/0xDB6/Avalonia/drawing"
	"github.com/0xDB6/Avalonia/media"
	"github.com/0xDB6/Avalonia/surface"
)

// rootVisualID is the id of the visual created by NewCompositor as the
// tree root. CreateVisual hands it out first.
const rootVisualID = 1

// Options configures a compositor. The zero value provisions a 1x1
// image surface at 96 DPI, which is only useful in tests.
type Options struct {
	// Size is the logical size of the composition target.
	Size media.Size

	// DPI is the target resolution. Zero means 96 (1:1 scaling).
	DPI float64

	// FrameInterval is the render loop cadence. Zero selects
	// DefaultFrameInterval (60 Hz).
	FrameInterval time.Duration

	// Surface supplies the target surface directly. When nil, one is
	// provisioned through the surface provider registry from Size and
	// DPI.
	Surface surface.Surface

	// Background is painted under every repainted region before the
	// scene composites over it. The zero value is fully transparent.
	Background media.Color

	// ContextOptions apply to every frame's drawing context: the visual
	// brush renderer, shadow size limit, and so on.
	ContextOptions []drawing.ContextOption
}

// Compositor owns the dual scene graph and the render loop. The UI
// thread builds Visual trees and calls Commit; the render loop applies
// committed batches to the render-side mirror, repaints the regions
// they invalidated, and reports each repainted rectangle to the
// registered invalidation listeners.
//
// All Visual mutation and Commit calls must come from one goroutine
// (the UI thread). HitTest and the listener registration methods are
// safe from any goroutine.
type Compositor struct {
	target *surface.RenderTarget
	loop   *RenderLoop
	opts   Options
	size   media.Size
	root   *Visual

	// UI-side pending state, guarded by mu.
	mu              sync.Mutex
	nextID          uint64
	creates         []*Visual
	writes          map[*Visual]struct{}
	childrenChanged map[*Visual]struct{}
	destroys        []uint64

	// The commit queue is the only channel between the two graphs.
	queueMu sync.Mutex
	queue   []*Batch

	// Render-side graph, guarded by serverMu.
	serverMu   sync.Mutex
	server     map[uint64]*serverVisual
	serverRoot *serverVisual

	dirty dirtyRegions

	listenerMu   sync.Mutex
	nextListener int
	listeners    map[int]func(media.Rect)
}

// NewCompositor provisions a render target and builds a compositor
// around it. The render loop starts stopped; call Start, or drive
// frames manually with RenderFrame.
func NewCompositor(opts Options) (*Compositor, error) {
	if opts.DPI <= 0 {
		opts.DPI = 96
	}
	var target *surface.RenderTarget
	if opts.Surface != nil {
		target = surface.NewRenderTarget(opts.Surface)
		opts.DPI = target.DPI()
		if opts.Size.IsEmpty() {
			opts.Size = target.Size().ToLogical(opts.DPI)
		}
	} else {
		t, err := surface.NewRenderTargetFor(opts.Size, opts.DPI)
		if err != nil {
			return nil, fmt.Errorf("composition: provision render target: %w", err)
		}
		target = t
	}
	c := &Compositor{
		target:          target,
		opts:            opts,
		size:            opts.Size,
		nextID:          rootVisualID,
		writes:          make(map[*Visual]struct{}),
		childrenChanged: make(map[*Visual]struct{}),
		server:          make(map[uint64]*serverVisual),
		listeners:       make(map[int]func(media.Rect)),
	}
	c.loop = NewRenderLoop(opts.FrameInterval)
	c.loop.AddTask(c.RenderFrame)
	c.root = c.CreateVisual()
	c.root.SetSize(opts.Size)
	return c, nil
}

// Root returns the visual at the top of the tree. It exists for the
// compositor's lifetime and cannot be disposed.
func (c *Compositor) Root() *Visual { return c.root }

// Loop returns the compositor's render loop.
func (c *Compositor) Loop() *RenderLoop { return c.loop }

// Target returns the render target frames composite into.
func (c *Compositor) Target() *surface.RenderTarget { return c.target }

// Size returns the logical size of the composition target.
func (c *Compositor) Size() media.Size { return c.size }

// DPI returns the target resolution.
func (c *Compositor) DPI() float64 { return c.target.DPI() }

// Start begins ticking the render loop. Starting twice is a no-op.
func (c *Compositor) Start() { c.loop.Start() }

// Stop halts the render loop after its in-flight frame, if any.
// Stopping twice is a no-op. Pending commits stay queued and apply on
// the next frame after a restart or a manual RenderFrame.
func (c *Compositor) Stop() { c.loop.Stop() }

// Close stops the loop and releases the render target.
func (c *Compositor) Close() error {
	c.loop.Stop()
	return c.target.Close()
}

// CreateVisual allocates a detached visual. It renders nothing until it
// gets content and a place in the tree, and reaches the render side
// with the next Commit.
func (c *Compositor) CreateVisual() *Visual {
	c.mu.Lock()
	defer c.mu.Unlock()
	v := &Visual{
		comp: c,
		id:   c.nextID,
		state: visualState{
			transform: media.Identity(),
			opacity:   1,
			visible:   true,
		},
	}
	c.nextID++
	c.creates = append(c.creates, v)
	return v
}

func (c *Compositor) markWrite(v *Visual) {
	if v.disposed {
		return
	}
	c.mu.Lock()
	c.writes[v] = struct{}{}
	c.mu.Unlock()
}

func (c *Compositor) markChildren(v *Visual) {
	if v.disposed {
		return
	}
	c.mu.Lock()
	c.childrenChanged[v] = struct{}{}
	c.mu.Unlock()
}

// noteDispose queues the visual's render-side destruction. A visual
// that never reached the render side is simply dropped from the
// pending creates.
func (c *Compositor) noteDispose(v *Visual) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.writes, v)
	delete(c.childrenChanged, v)
	if v.committed {
		c.destroys = append(c.destroys, v.id)
	}
}

// Commit snapshots all pending changes into a batch, queues it for the
// render side and wakes the loop. The returned batch's Done channel
// closes once the render side has applied it; with nothing pending the
// channel is already closed and nothing is queued.
func (c *Compositor) Commit() *Batch {
	c.mu.Lock()
	b := newBatch()
	for _, v := range c.creates {
		if v.disposed {
			continue
		}
		v.committed = true
		// The create carries the full state; a separate write would be
		// redundant.
		delete(c.writes, v)
		b.creates = append(b.creates, batchCreate{id: v.id, state: v.snapshot(), client: v})
	}
	c.creates = nil
	for v := range c.writes {
		if v.disposed {
			continue
		}
		b.writes = append(b.writes, batchWrite{id: v.id, state: v.snapshot()})
	}
	clear(c.writes)
	for v := range c.childrenChanged {
		if v.disposed {
			continue
		}
		b.children = append(b.children, batchChildren{id: v.id, children: v.childIDs()})
	}
	clear(c.childrenChanged)
	b.destroys = c.destroys
	c.destroys = nil
	c.mu.Unlock()

	if b.empty() {
		close(b.done)
		return b
	}
	c.queueMu.Lock()
	c.queue = append(c.queue, b)
	c.queueMu.Unlock()
	c.loop.Wake()
	return b
}

// Resize grows or shrinks the composition target and invalidates
// everything. The root visual follows the new size with the next
// commit.
func (c *Compositor) Resize(size media.Size) error {
	if err := c.target.Resize(surface.PixelSizeFromLogical(size, c.target.DPI())); err != nil {
		return fmt.Errorf("composition: resize render target: %w", err)
	}
	c.size = size
	c.root.SetSize(size)
	c.dirty.Add(media.RectFromSize(size))
	c.loop.Wake()
	return nil
}

// AddInvalidationListener registers f to receive one call per repainted
// rectangle per frame, in root coordinates. The returned function
// removes the registration.
func (c *Compositor) AddInvalidationListener(f func(media.Rect)) func() {
	c.listenerMu.Lock()
	id := c.nextListener
	c.nextListener++
	c.listeners[id] = f
	c.listenerMu.Unlock()
	return func() {
		c.listenerMu.Lock()
		delete(c.listeners, id)
		c.listenerMu.Unlock()
	}
}

// RenderFrame produces one frame: it drains the commit queue in
// submission order, applies each batch to the render-side graph, then
// repaints the invalidated regions and notifies listeners. With no
// pending batches and no dirty regions it does nothing. The render
// loop runs it every tick; tests and manual drivers may call it
// directly when the loop is stopped.
func (c *Compositor) RenderFrame() error {
	c.queueMu.Lock()
	batches := c.queue
	c.queue = nil
	c.queueMu.Unlock()

	c.serverMu.Lock()
	for _, b := range batches {
		c.applyBatch(b)
		close(b.done)
	}
	bounds := media.RectFromSize(c.size)
	var repaint []media.Rect
	for _, r := range c.dirty.Snapshot() {
		r = r.Intersect(bounds)
		if r.IsEmpty() {
			continue
		}
		repaint = append(repaint, snapToPixels(r))
	}
	var err error
	if len(repaint) > 0 {
		avalonia.Logger().Debug("composition: frame",
			"batches", len(batches), "regions", len(repaint))
		err = c.rasterize(repaint)
	}
	c.serverMu.Unlock()

	for _, r := range repaint {
		c.notifyInvalidated(r)
	}
	if err != nil {
		return fmt.Errorf("composition: render frame: %w", err)
	}
	return nil
}

func (c *Compositor) notifyInvalidated(r media.Rect) {
	c.listenerMu.Lock()
	fs := make([]func(media.Rect), 0, len(c.listeners))
	for _, f := range c.listeners {
		fs = append(fs, f)
	}
	c.listenerMu.Unlock()
	for _, f := range fs {
		f(r)
	}
}

// rasterize repaints the given regions. Called with the server lock
// held. Each region is cleared to the background color, then the scene
// renders clipped to it, so pixels outside the dirty set are never
// touched.
func (c *Compositor) rasterize(rects []media.Rect) error {
	if pm := c.target.Pixmap(); pm != nil {
		for _, r := range rects {
			c.clearRect(pm, r)
		}
	}
	opts := append([]drawing.ContextOption{drawing.WithPixmapPool(c.target.Pool())}, c.opts.ContextOptions...)
	dc, err := drawing.NewContext(c.target, opts...)
	if err != nil {
		return err
	}
	defer dc.Close()
	for _, r := range rects {
		if err := c.renderRegion(dc, r); err != nil {
			return err
		}
	}
	return c.target.Flush()
}

func (c *Compositor) renderRegion(dc *drawing.Context, r media.Rect) error {
	if err := dc.PushClip(r); err != nil {
		return err
	}
	err := c.renderVisual(dc, c.serverRoot)
	if perr := dc.PopClip(); err == nil {
		err = perr
	}
	return err
}

// renderVisual composites one node and its subtree. The context
// arrives in the parent's coordinate space and is restored to it on
// return even when a draw fails mid-subtree.
func (c *Compositor) renderVisual(dc *drawing.Context, sv *serverVisual) error {
	if sv == nil {
		return nil
	}
	st := &sv.state
	if !st.visible || st.opacity <= 0 {
		return nil
	}
	save := dc.Transform()
	if err := dc.SetTransform(save.Multiply(st.localMatrix())); err != nil {
		return err
	}
	err := func() error {
		pushedOpacity := st.opacity < 1
		if pushedOpacity {
			if err := dc.PushOpacity(st.opacity); err != nil {
				return err
			}
		}
		clips := 0
		if st.clipToBounds {
			if err := dc.PushClip(media.RectFromSize(st.size)); err != nil {
				return err
			}
			clips++
		}
		if st.clip != nil {
			if err := dc.PushClip(*st.clip); err != nil {
				return err
			}
			clips++
		}
		err := st.drawList.Replay(dc)
		for _, child := range sv.children {
			if err != nil {
				break
			}
			err = c.renderVisual(dc, child)
		}
		for ; clips > 0; clips-- {
			if perr := dc.PopClip(); err == nil {
				err = perr
			}
		}
		if pushedOpacity {
			if perr := dc.PopOpacity(); err == nil {
				err = perr
			}
		}
		return err
	}()
	if serr := dc.SetTransform(save); err == nil {
		err = serr
	}
	return err
}

// clearRect resets the region to the background color, bypassing
// compositing: stale pixels must not show through a transparent
// background.
func (c *Compositor) clearRect(pm *surface.Pixmap, r media.Rect) {
	scale := c.target.DPI() / 96
	x0 := clampInt(int(math.Floor(r.X*scale)), 0, pm.Width())
	y0 := clampInt(int(math.Floor(r.Y*scale)), 0, pm.Height())
	x1 := clampInt(int(math.Ceil(r.Right()*scale)), 0, pm.Width())
	y1 := clampInt(int(math.Ceil(r.Bottom()*scale)), 0, pm.Height())
	if x1 <= x0 || y1 <= y0 {
		return
	}
	br, bg, bb, ba := c.opts.Background.PremulRGBA8()
	pix := pm.Pix()
	for y := y0; y < y1; y++ {
		row := pix[pm.PixOffset(x0, y) : pm.PixOffset(x1-1, y)+4]
		for i := 0; i < len(row); i += 4 {
			row[i] = br
			row[i+1] = bg
			row[i+2] = bb
			row[i+3] = ba
		}
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
