package composition

import (
	"github.com/0xDB6/Avalonia/media"
)

// HitTest resolves a point in root coordinates to the visuals whose
// content contains it, front to back: within each node later siblings
// render on top and are therefore reported first, and a parent follows
// the children drawn over it. The walk runs against the render-side
// graph, so it sees the scene as of the last applied commit.
//
// The optional filter prunes: a visual it rejects is skipped together
// with its whole subtree. A point outside the root's bounds yields an
// empty result.
func (c *Compositor) HitTest(p media.Point, filter func(*Visual) bool) []*Visual {
	c.serverMu.Lock()
	defer c.serverMu.Unlock()
	root := c.serverRoot
	if root == nil {
		return nil
	}
	local := root.state.localMatrix()
	if !local.IsInvertible() {
		return nil
	}
	if !media.RectFromSize(root.state.size).Contains(local.Invert().TransformPoint(p)) {
		return nil
	}
	var hits []*Visual
	hitTestVisual(root, p, filter, &hits)
	return hits
}

// hitTestVisual tests sv against a point given in its parent's
// coordinate space, appending matches front to back.
func hitTestVisual(sv *serverVisual, p media.Point, filter func(*Visual) bool, hits *[]*Visual) {
	st := &sv.state
	if !st.visible || st.opacity <= 0 {
		return
	}
	if filter != nil && sv.client != nil && !filter(sv.client) {
		return
	}
	local := st.localMatrix()
	if !local.IsInvertible() {
		return
	}
	lp := local.Invert().TransformPoint(p)
	// Clips cut both the node's content and its subtree out of the
	// hit-test space.
	if st.clipToBounds && !media.RectFromSize(st.size).Contains(lp) {
		return
	}
	if st.clip != nil && !st.clip.Contains(lp) {
		return
	}
	for i := len(sv.children) - 1; i >= 0; i-- {
		hitTestVisual(sv.children[i], lp, filter, hits)
	}
	if sv.client != nil && st.drawList.Bounds().Contains(lp) {
		*hits = append(*hits, sv.client)
	}
}
