package drawing

import (
	"math"

	"github.com/0xDB6/Avalonia/media"
)

// clipStack intersects pushed clip regions. Rect clips only narrow the
// device-space bounds; path clips additionally carry a full-canvas
// coverage mask. Coverage at a pixel is the product of all mask
// coverages, zero outside the bounds.
type clipStack struct {
	width, height int
	bounds        media.Rect
	entries       []clipEntry
	masks         int
}

type clipEntry struct {
	prevBounds media.Rect
	mask       []uint8
}

func newClipStack(width, height int) *clipStack {
	return &clipStack{
		width:  width,
		height: height,
		bounds: media.NewRect(0, 0, float64(width), float64(height)),
	}
}

// pushRect intersects the bounds with a device-space rectangle.
func (s *clipStack) pushRect(r media.Rect) {
	s.entries = append(s.entries, clipEntry{prevBounds: s.bounds})
	s.bounds = s.bounds.Intersect(r)
}

// pushMask intersects with a rasterized coverage mask. maskBounds is
// the mask's device-space extent, used to narrow the rect bounds too.
func (s *clipStack) pushMask(mask []uint8, maskBounds media.Rect) {
	s.entries = append(s.entries, clipEntry{prevBounds: s.bounds, mask: mask})
	s.bounds = s.bounds.Intersect(maskBounds)
	s.masks++
}

// pop restores the bounds saved by the matching push. Reports false on
// an empty stack.
func (s *clipStack) pop() bool {
	if len(s.entries) == 0 {
		return false
	}
	last := len(s.entries) - 1
	entry := s.entries[last]
	s.bounds = entry.prevBounds
	if entry.mask != nil {
		s.masks--
	}
	s.entries = s.entries[:last]
	return true
}

func (s *clipStack) depth() int {
	return len(s.entries)
}

// popTo discards entries above the given depth. Used by Close to unwind
// unbalanced stacks.
func (s *clipStack) popTo(depth int) {
	for len(s.entries) > depth {
		s.pop()
	}
}

// passthrough reports whether shading can skip per-pixel clip queries:
// no masks and bounds covering the whole canvas.
func (s *clipStack) passthrough() bool {
	return s.masks == 0 &&
		s.bounds.X <= 0 && s.bounds.Y <= 0 &&
		s.bounds.Right() >= float64(s.width) &&
		s.bounds.Bottom() >= float64(s.height)
}

// coverage returns the combined clip coverage at pixel (x, y).
func (s *clipStack) coverage(x, y int) uint8 {
	fx := float64(x)
	fy := float64(y)
	if fx+0.5 < s.bounds.X || fy+0.5 < s.bounds.Y ||
		fx+0.5 >= s.bounds.Right() || fy+0.5 >= s.bounds.Bottom() {
		return 0
	}
	if s.masks == 0 {
		return 255
	}
	cov := uint16(255)
	idx := y*s.width + x
	for i := range s.entries {
		mask := s.entries[i].mask
		if mask == nil {
			continue
		}
		mc := mask[idx]
		if mc == 0 {
			return 0
		}
		cov = (cov * uint16(mc)) / 255
		if cov == 0 {
			return 0
		}
	}
	return uint8(cov)
}

// axisAlignedRect maps a logical rect through m when m has no rotation
// or shear, reporting false otherwise.
func axisAlignedRect(r media.Rect, m media.Matrix) (media.Rect, bool) {
	if m.B != 0 || m.D != 0 {
		return media.Rect{}, false
	}
	p1 := m.TransformPoint(media.Pt(r.X, r.Y))
	p2 := m.TransformPoint(media.Pt(r.Right(), r.Bottom()))
	return media.NewRect(
		math.Min(p1.X, p2.X),
		math.Min(p1.Y, p2.Y),
		math.Abs(p2.X-p1.X),
		math.Abs(p2.Y-p1.Y),
	), true
}
