package composition

import (
	"github.com/0xDB6/Avalonia/media"
)

// serverVisual is the render-side mirror of one Visual. It is owned
// exclusively by the render thread; the only way state arrives is
// through an applied batch, so a frame never observes a half-written
// node.
type serverVisual struct {
	id     uint64
	state  visualState
	client *Visual

	parent   *serverVisual
	children []*serverVisual
}

// attached reports whether the node is reachable from the server root.
// Detached subtrees contribute nothing to dirty regions.
func (sv *serverVisual) attached(root *serverVisual) bool {
	for n := sv; n != nil; n = n.parent {
		if n == root {
			return true
		}
	}
	return false
}

// accumulatedMatrix is the node's local-to-root transform.
func (sv *serverVisual) accumulatedMatrix() media.Matrix {
	if sv.parent == nil {
		return sv.state.localMatrix()
	}
	return sv.parent.accumulatedMatrix().Multiply(sv.state.localMatrix())
}

// localBounds is the union of the node's content bounds and its
// children's bounds mapped into the node's coordinates, cut down by the
// node's own clips. Invisible nodes have empty bounds.
func (sv *serverVisual) localBounds() media.Rect {
	st := &sv.state
	if !st.visible || st.opacity <= 0 {
		return media.Rect{}
	}
	b := st.drawList.Bounds()
	for _, c := range sv.children {
		cb := c.localBounds()
		if cb.IsEmpty() {
			continue
		}
		b = b.Union(cb.TransformBounds(c.state.localMatrix()))
	}
	if st.clipToBounds {
		b = b.Intersect(media.RectFromSize(st.size))
	}
	if st.clip != nil {
		b = b.Intersect(*st.clip)
	}
	return b
}

// subtreeBounds is localBounds mapped to root coordinates.
func (sv *serverVisual) subtreeBounds() media.Rect {
	b := sv.localBounds()
	if b.IsEmpty() {
		return media.Rect{}
	}
	return b.TransformBounds(sv.accumulatedMatrix())
}

// applyBatch replays one commit onto the server graph, accumulating the
// regions it invalidates. Called with the server lock held. Batch
// sections apply in the recorded order: creates first so writes and
// child lists may reference nodes born in the same batch, destroys last
// so they follow the detach that orphaned them.
func (c *Compositor) applyBatch(b *Batch) {
	for _, cr := range b.creates {
		sv := &serverVisual{id: cr.id, state: cr.state, client: cr.client}
		c.server[cr.id] = sv
		if cr.id == rootVisualID {
			c.serverRoot = sv
		}
		// A node born attached (the root) carries content no child-list
		// swap will ever invalidate for it; everything else is detached
		// here and gets invalidated by the swap that attaches it.
		c.invalidate(sv)
	}
	for _, w := range b.writes {
		sv := c.server[w.id]
		if sv == nil {
			continue
		}
		c.invalidate(sv)
		sv.state = w.state
		c.invalidate(sv)
	}
	for _, ch := range b.children {
		sv := c.server[ch.id]
		if sv == nil {
			continue
		}
		c.invalidate(sv)
		for _, old := range sv.children {
			if old.parent == sv {
				old.parent = nil
			}
		}
		next := make([]*serverVisual, 0, len(ch.children))
		for _, id := range ch.children {
			child := c.server[id]
			if child == nil {
				continue
			}
			child.parent = sv
			next = append(next, child)
		}
		sv.children = next
		c.invalidate(sv)
	}
	for _, id := range b.destroys {
		sv := c.server[id]
		if sv == nil {
			continue
		}
		c.invalidate(sv)
		if sv.parent != nil {
			siblings := sv.parent.children
			for i, s := range siblings {
				if s == sv {
					copy(siblings[i:], siblings[i+1:])
					sv.parent.children = siblings[:len(siblings)-1]
					break
				}
			}
			sv.parent = nil
		}
		delete(c.server, id)
	}
}

// invalidate marks the node's current on-screen extent dirty. Nothing
// happens for detached or empty subtrees.
func (c *Compositor) invalidate(sv *serverVisual) {
	if c.serverRoot == nil || !sv.attached(c.serverRoot) {
		return
	}
	b := sv.subtreeBounds()
	if b.IsEmpty() {
		return
	}
	c.dirty.Add(b)
}
