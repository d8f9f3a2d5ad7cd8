package composition

import (
	"github.com/0xDB6/Avalonia/media"
)

// Visual is one node of the UI-thread scene graph. It carries the
// properties that affect rendering (offset, size, transform, opacity,
// clip, visibility) and a recorded DrawList as its content. Property
// writes never reach the render side directly; they mark the visual
// pending, and the next Compositor.Commit snapshots it into a batch.
//
// A Visual is affine to the UI thread that created its compositor. It
// is not safe for concurrent use; the compositor only ever treats a
// Visual pointer as an opaque identity on the render side.
type Visual struct {
	comp *Compositor
	id   uint64

	parent   *Visual
	children []*Visual

	state     visualState
	committed bool
	disposed  bool
}

// ID returns the visual's compositor-unique identity.
func (v *Visual) ID() uint64 { return v.id }

// Parent returns the visual's parent, or nil when detached.
func (v *Visual) Parent() *Visual { return v.parent }

// Children returns a copy of the ordered child list. Later children
// render on top of earlier ones.
func (v *Visual) Children() []*Visual {
	out := make([]*Visual, len(v.children))
	copy(out, v.children)
	return out
}

// Offset returns the visual's position relative to its parent.
func (v *Visual) Offset() media.Point { return v.state.offset }

// SetOffset moves the visual relative to its parent.
func (v *Visual) SetOffset(p media.Point) {
	if v.state.offset == p {
		return
	}
	v.state.offset = p
	v.comp.markWrite(v)
}

// Size returns the visual's logical size. Size bounds the clip applied
// by SetClipToBounds and the root hit-test area; content may overdraw
// it unless clipped.
func (v *Visual) Size() media.Size { return v.state.size }

// SetSize resizes the visual.
func (v *Visual) SetSize(s media.Size) {
	if v.state.size == s {
		return
	}
	v.state.size = s
	v.comp.markWrite(v)
}

// RenderTransform returns the transform applied before the offset.
func (v *Visual) RenderTransform() media.Matrix { return v.state.transform }

// SetRenderTransform replaces the visual's transform.
func (v *Visual) SetRenderTransform(m media.Matrix) {
	if v.state.transform == m {
		return
	}
	v.state.transform = m
	v.comp.markWrite(v)
}

// Opacity returns the visual's own opacity.
func (v *Visual) Opacity() float64 { return v.state.opacity }

// SetOpacity sets the visual's opacity, clamped to [0, 1]. It
// multiplies with ancestor opacity during rendering.
func (v *Visual) SetOpacity(opacity float64) {
	if opacity < 0 {
		opacity = 0
	} else if opacity > 1 {
		opacity = 1
	}
	if v.state.opacity == opacity {
		return
	}
	v.state.opacity = opacity
	v.comp.markWrite(v)
}

// Clip returns the explicit clip rectangle, or nil when unset.
func (v *Visual) Clip() *media.Rect {
	if v.state.clip == nil {
		return nil
	}
	r := *v.state.clip
	return &r
}

// SetClip sets an explicit clip rectangle in local coordinates, applied
// to the visual's content and subtree. Nil removes it.
func (v *Visual) SetClip(r *media.Rect) {
	if r == nil && v.state.clip == nil {
		return
	}
	if r != nil && v.state.clip != nil && *r == *v.state.clip {
		return
	}
	if r == nil {
		v.state.clip = nil
	} else {
		c := *r
		v.state.clip = &c
	}
	v.comp.markWrite(v)
}

// ClipToBounds reports whether the visual clips content and children to
// its size.
func (v *Visual) ClipToBounds() bool { return v.state.clipToBounds }

// SetClipToBounds toggles clipping to the visual's size rect.
func (v *Visual) SetClipToBounds(clip bool) {
	if v.state.clipToBounds == clip {
		return
	}
	v.state.clipToBounds = clip
	v.comp.markWrite(v)
}

// Visible reports whether the visual and its subtree render.
func (v *Visual) Visible() bool { return v.state.visible }

// SetVisible toggles rendering of the visual and its subtree. Hidden
// visuals are skipped by hit testing too.
func (v *Visual) SetVisible(visible bool) {
	if v.state.visible == visible {
		return
	}
	v.state.visible = visible
	v.comp.markWrite(v)
}

// DrawList returns the visual's recorded content.
func (v *Visual) DrawList() *DrawList { return v.state.drawList }

// SetDrawList replaces the visual's content. The list must not be
// mutated after this call; record a new one instead.
func (v *Visual) SetDrawList(list *DrawList) {
	if v.state.drawList == list {
		return
	}
	v.state.drawList = list
	v.comp.markWrite(v)
}

// AddChild appends child to the end of the child list, on top of its
// new siblings. A child attached elsewhere is detached first.
func (v *Visual) AddChild(child *Visual) {
	v.InsertChild(len(v.children), child)
}

// InsertChild inserts child at index in the z-order. Indexes outside
// the list clamp to its ends.
func (v *Visual) InsertChild(index int, child *Visual) {
	if child == nil || child == v || child.disposed || v.disposed {
		return
	}
	if child.parent != nil {
		child.parent.RemoveChild(child)
	}
	if index < 0 {
		index = 0
	}
	if index > len(v.children) {
		index = len(v.children)
	}
	v.children = append(v.children, nil)
	copy(v.children[index+1:], v.children[index:])
	v.children[index] = child
	child.parent = v
	v.comp.markChildren(v)
}

// RemoveChild detaches child from this visual. Removing a visual that
// is not a child is a no-op.
func (v *Visual) RemoveChild(child *Visual) {
	for i, c := range v.children {
		if c != child {
			continue
		}
		copy(v.children[i:], v.children[i+1:])
		v.children = v.children[:len(v.children)-1]
		child.parent = nil
		v.comp.markChildren(v)
		return
	}
}

// Dispose detaches the visual and queues it and its subtree for
// destruction. The render-side mirrors survive until a commit carrying
// the destroys has been applied, so an in-flight frame never loses a
// node it is still consuming. Disposing the compositor root, or
// disposing twice, is a no-op.
func (v *Visual) Dispose() {
	if v.disposed || v == v.comp.root {
		return
	}
	if v.parent != nil {
		v.parent.RemoveChild(v)
	}
	v.disposeSubtree()
}

func (v *Visual) disposeSubtree() {
	if v.disposed {
		return
	}
	v.disposed = true
	v.comp.noteDispose(v)
	for _, c := range v.children {
		c.parent = nil
		c.disposeSubtree()
	}
	v.children = nil
}

// snapshot copies the visual's render-affecting state for a batch. The
// clip pointer is deep-copied so later UI-thread writes cannot reach a
// state already handed to the render side.
func (v *Visual) snapshot() visualState {
	s := v.state
	if s.clip != nil {
		c := *s.clip
		s.clip = &c
	}
	return s
}

func (v *Visual) childIDs() []uint64 {
	ids := make([]uint64, len(v.children))
	for i, c := range v.children {
		ids[i] = c.id
	}
	return ids
}
