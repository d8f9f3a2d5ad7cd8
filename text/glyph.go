package text

import "github.com/0xDB6/Avalonia/media"

// GlyphID is a glyph index within a font.
type GlyphID uint16

// ShapedGlyph is one positioned glyph produced by shaping. Positions
// are relative to the run origin on the baseline, y growing downward.
type ShapedGlyph struct {
	// GID is the glyph index in the font.
	GID GlyphID

	// Cluster is the rune index in the source text this glyph maps
	// to. Several glyphs can share a cluster (ligatures).
	Cluster int

	// X, Y position the glyph relative to the run origin.
	X, Y float64

	// XAdvance, YAdvance move the pen after this glyph.
	XAdvance, YAdvance float64
}

// GlyphRun is shaped text ready for drawing. The drawing context
// consumes runs through DrawGlyphRun.
type GlyphRun struct {
	// Face is the font face the run was shaped with.
	Face *Face

	// Glyphs are the positioned glyphs in visual order.
	Glyphs []ShapedGlyph

	// BaselineOrigin is where the run's baseline starts in the
	// caller's coordinate space.
	BaselineOrigin media.Point
}

// Advance returns the total horizontal advance of the run.
func (r *GlyphRun) Advance() float64 {
	total := 0.0
	for i := range r.Glyphs {
		total += r.Glyphs[i].XAdvance
	}
	return total
}

// Bounds returns the union of glyph bounding boxes in the caller's
// coordinate space. An empty run yields a zero rect at the origin.
func (r *GlyphRun) Bounds() media.Rect {
	if r.Face == nil || len(r.Glyphs) == 0 {
		return media.Rect{X: r.BaselineOrigin.X, Y: r.BaselineOrigin.Y}
	}

	var bounds media.Rect
	first := true
	for i := range r.Glyphs {
		g := &r.Glyphs[i]
		b := r.Face.GlyphBounds(g.GID)
		if b.Width <= 0 || b.Height <= 0 {
			continue
		}
		b.X += r.BaselineOrigin.X + g.X
		b.Y += r.BaselineOrigin.Y + g.Y
		if first {
			bounds = b
			first = false
			continue
		}
		bounds = bounds.Union(b)
	}
	if first {
		return media.Rect{X: r.BaselineOrigin.X, Y: r.BaselineOrigin.Y}
	}
	return bounds
}
