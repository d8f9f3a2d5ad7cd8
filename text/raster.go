package text

import (
	"image"
	"math"

	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/0xDB6/Avalonia/cache"
	"github.com/0xDB6/Avalonia/internal/path"
	"github.com/0xDB6/Avalonia/internal/raster"
	"github.com/0xDB6/Avalonia/media"
)

// Mask is a rasterized glyph. Alpha holds the coverage with its Rect
// positioned relative to the baseline origin, y growing downward.
// Glyphs without an outline (spaces) have a nil Alpha.
type Mask struct {
	Alpha   *image.Alpha
	Advance float64
}

// IsEmpty reports whether the mask has no coverage to draw.
func (m *Mask) IsEmpty() bool {
	return m == nil || m.Alpha == nil || m.Alpha.Rect.Empty()
}

// maskKey identifies one rasterization of a glyph. Size is kept in
// 26.6 fixed point so metrically equal sizes share an entry.
type maskKey struct {
	source uint64
	gid    GlyphID
	ppem   fixed.Int26_6
}

func hashMaskKey(k maskKey) uint64 {
	// FNV-1a over the key fields.
	h := uint64(14695981039346656037)
	mix := func(v uint64) {
		for i := 0; i < 8; i++ {
			h ^= v & 0xff
			h *= 1099511628211
			v >>= 8
		}
	}
	mix(k.source)
	mix(uint64(k.gid))
	mix(uint64(k.ppem))
	return h
}

// maskCache holds rasterized glyphs process-wide. Eviction is LRU per
// shard; a scrolling text view stays fully cached.
var maskCache = cache.New[maskKey, *Mask](0, hashMaskKey)

// GlyphMask returns the rasterized mask for a glyph at the face's
// size, cached across calls.
func GlyphMask(face *Face, gid GlyphID) *Mask {
	if face == nil || face.source == nil || face.source.ot == nil {
		return &Mask{}
	}
	key := maskKey{source: face.source.id, gid: gid, ppem: face.ppem()}
	return maskCache.GetOrCreate(key, func() *Mask {
		return rasterizeGlyph(face, gid)
	})
}

// rasterizeGlyph renders a glyph outline through the scanline filler.
func rasterizeGlyph(face *Face, gid GlyphID) *Mask {
	src := face.source
	buf := src.acquireBuffer()
	defer src.releaseBuffer(buf)

	mask := &Mask{Advance: face.GlyphAdvance(gid)}

	segments, err := src.ot.LoadGlyph(buf, sfnt.GlyphIndex(gid), face.ppem(), nil)
	if err != nil || len(segments) == 0 {
		return mask
	}

	polys := path.Flatten(segmentOps(segments), media.Identity(), path.Tolerance)
	if len(polys) == 0 {
		return mask
	}

	minX, minY, maxX, maxY := polyBounds(polys)
	x0, y0 := int(math.Floor(minX)), int(math.Floor(minY))
	x1, y1 := int(math.Ceil(maxX)), int(math.Ceil(maxY))
	w, h := x1-x0, y1-y0
	if w <= 0 || h <= 0 {
		return mask
	}

	alpha := image.NewAlpha(image.Rect(x0, y0, x1, y1))
	r := raster.New(w, h)
	shifted := make([]media.Point, 0, 64)
	for _, poly := range polys {
		shifted = shifted[:0]
		for _, p := range poly.Points {
			shifted = append(shifted, media.Point{X: p.X - float64(x0), Y: p.Y - float64(y0)})
		}
		r.AddPolyline(shifted)
	}
	r.Fill(raster.FillNonZero, func(y, sx int, cov []uint8) {
		copy(alpha.Pix[y*alpha.Stride+sx:], cov)
	})

	mask.Alpha = alpha
	return mask
}

// segmentOps converts sfnt outline segments to path operations.
// Coordinates are already in pixels at the loaded ppem, y down.
func segmentOps(segments []sfnt.Segment) []media.PathOp {
	ops := make([]media.PathOp, 0, len(segments))
	for _, seg := range segments {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			ops = append(ops, media.PathOp{
				Verb: media.PathMoveTo,
				P1:   fixedPoint(seg.Args[0]),
			})
		case sfnt.SegmentOpLineTo:
			ops = append(ops, media.PathOp{
				Verb: media.PathLineTo,
				P1:   fixedPoint(seg.Args[0]),
			})
		case sfnt.SegmentOpQuadTo:
			ops = append(ops, media.PathOp{
				Verb: media.PathQuadTo,
				P1:   fixedPoint(seg.Args[0]),
				P2:   fixedPoint(seg.Args[1]),
			})
		case sfnt.SegmentOpCubeTo:
			ops = append(ops, media.PathOp{
				Verb: media.PathCubicTo,
				P1:   fixedPoint(seg.Args[0]),
				P2:   fixedPoint(seg.Args[1]),
				P3:   fixedPoint(seg.Args[2]),
			})
		}
	}
	return ops
}

func fixedPoint(p fixed.Point26_6) media.Point {
	return media.Point{X: fixedToFloat(p.X), Y: fixedToFloat(p.Y)}
}

func polyBounds(polys []path.Polyline) (minX, minY, maxX, maxY float64) {
	first := true
	for _, poly := range polys {
		for _, p := range poly.Points {
			if first {
				minX, maxX = p.X, p.X
				minY, maxY = p.Y, p.Y
				first = false
				continue
			}
			if p.X < minX {
				minX = p.X
			}
			if p.X > maxX {
				maxX = p.X
			}
			if p.Y < minY {
				minY = p.Y
			}
			if p.Y > maxY {
				maxY = p.Y
			}
		}
	}
	return minX, minY, maxX, maxY
}
