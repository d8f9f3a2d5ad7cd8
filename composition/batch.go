package composition

import "github.com/0xDB6/Avalonia/media"

// visualState is an immutable snapshot of one visual's properties, taken
// at commit time on the UI thread and applied on the render side. The
// draw list pointer is shared, never copied; draw lists are immutable
// once built.
type visualState struct {
	offset       media.Point
	size         media.Size
	transform    media.Matrix
	opacity      float64
	clip         *media.Rect
	clipToBounds bool
	visible      bool
	drawList     *DrawList
}

// localMatrix is the visual's transform relative to its parent: the render
// transform applied first, then the offset.
func (s *visualState) localMatrix() media.Matrix {
	return media.Translate(s.offset.X, s.offset.Y).Multiply(s.transform)
}

type batchCreate struct {
	id    uint64
	state visualState
	// client is the UI-side identity, carried so hit tests can report
	// it. The render side never reads through it.
	client *Visual
}

type batchWrite struct {
	id    uint64
	state visualState
}

type batchChildren struct {
	id       uint64
	children []uint64
}

// Batch is one commit's worth of scene graph changes, applied atomically
// on the render side before the next frame. Order within a batch is
// creates, then property writes, then child list swaps, then destroys,
// so a write may reference a visual created in the same batch and a
// destroy may follow the detach that orphaned it.
type Batch struct {
	creates  []batchCreate
	writes   []batchWrite
	children []batchChildren
	destroys []uint64

	done chan struct{}
}

func newBatch() *Batch {
	return &Batch{done: make(chan struct{})}
}

// Done returns a channel that closes once the batch has been applied to
// the render-side graph. An empty commit returns a batch whose channel is
// already closed.
func (b *Batch) Done() <-chan struct{} { return b.done }

func (b *Batch) empty() bool {
	return len(b.creates) == 0 && len(b.writes) == 0 &&
		len(b.children) == 0 && len(b.destroys) == 0
}
