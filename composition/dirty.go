package composition

import (
	"math"
	"sync"

	"github.com/0xDB6/Avalonia/media"
)

// dirtyRegions accumulates invalidated areas between frames. Batches add
// rects as they apply on the render side; the frame loop drains the set
// and repaints each region.
//
// Rects are snapped outward to integer pixel bounds on entry so a region
// can be cleared and repainted without seams, and overlapping regions are
// merged so no pixel is composited twice in one frame.
type dirtyRegions struct {
	mu    sync.Mutex
	rects []media.Rect
}

// Add marks an area as needing repaint. Empty rects are ignored.
func (d *dirtyRegions) Add(r media.Rect) {
	if r.IsEmpty() {
		return
	}
	r = snapToPixels(r)
	d.mu.Lock()
	defer d.mu.Unlock()
	d.rects = append(d.rects, r)
	d.rects = coalesce(d.rects)
}

// Snapshot returns the accumulated regions and clears the set.
func (d *dirtyRegions) Snapshot() []media.Rect {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := d.rects
	d.rects = nil
	return out
}

// snapToPixels grows r to the smallest integer-aligned rect containing it.
func snapToPixels(r media.Rect) media.Rect {
	x := math.Floor(r.X)
	y := math.Floor(r.Y)
	return media.Rect{
		X:      x,
		Y:      y,
		Width:  math.Ceil(r.Right()) - x,
		Height: math.Ceil(r.Bottom()) - y,
	}
}

// coalesce merges intersecting rects until no pair overlaps. Merging two
// rects can create new overlaps with rects already visited, so the scan
// restarts after every union until it completes cleanly.
func coalesce(rects []media.Rect) []media.Rect {
	for {
		merged := false
		for i := 0; i < len(rects) && !merged; i++ {
			for j := i + 1; j < len(rects); j++ {
				if !overlaps(rects[i], rects[j]) {
					continue
				}
				rects[i] = rects[i].Union(rects[j])
				rects[j] = rects[len(rects)-1]
				rects = rects[:len(rects)-1]
				merged = true
				break
			}
		}
		if !merged {
			return rects
		}
	}
}

// overlaps reports whether a and b share any area or touch edges. Touching
// rects merge too, which keeps adjacent invalidations from producing a
// double repaint along their shared seam.
func overlaps(a, b media.Rect) bool {
	return a.X <= b.Right() && b.X <= a.Right() &&
		a.Y <= b.Bottom() && b.Y <= a.Bottom()
}
