// Package raster rasterizes filled polygons into antialiased coverage
// spans using 4x supersampled scanlines.
package raster

import (
	"math"
	"sort"

	"github.com/0xDB6/Avalonia/media"
)

// FillRule specifies how to determine which areas are inside a path.
type FillRule int

const (
	// FillNonZero uses the non-zero winding rule.
	FillNonZero FillRule = iota
	// FillEvenOdd uses the even-odd rule.
	FillEvenOdd
)

// subSamples is the number of supersampled scanlines per pixel row.
const subSamples = 4

// SpanFunc receives one row of coverage. cov[i] is the antialiased
// coverage of pixel (x0+i, y) in the range 0-255. The slice is reused
// between rows and must not be retained.
type SpanFunc func(y, x0 int, cov []uint8)

// edge is a line segment normalized top-down for scanline processing.
type edge struct {
	x0, y0 float64
	x1, y1 float64
	dir    int
}

func newEdge(p0, p1 media.Point) edge {
	dir := 1
	if p0.Y > p1.Y {
		dir = -1
		p0, p1 = p1, p0
	}
	return edge{x0: p0.X, y0: p0.Y, x1: p1.X, y1: p1.Y, dir: dir}
}

// xAt returns the x coordinate where the edge crosses the given y.
func (e *edge) xAt(y float64) float64 {
	t := (y - e.y0) / (e.y1 - e.y0)
	return e.x0 + (e.x1-e.x0)*t
}

type crossing struct {
	x   float64
	dir int
}

// Rasterizer accumulates polygon edges and fills them with antialiased
// coverage. A Rasterizer may be reused across fills via Reset.
type Rasterizer struct {
	width, height int

	edges []edge
	xs    []crossing
	cover []float64
	cov8  []uint8
}

// New creates a rasterizer for a device-pixel region of the given size.
func New(width, height int) *Rasterizer {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Rasterizer{
		width:  width,
		height: height,
		cover:  make([]float64, width),
		cov8:   make([]uint8, width),
	}
}

// Reset discards accumulated edges, keeping allocated buffers.
func (r *Rasterizer) Reset() {
	r.edges = r.edges[:0]
}

// AddPolyline adds one figure. Open figures are implicitly closed,
// matching fill semantics.
func (r *Rasterizer) AddPolyline(pts []media.Point) {
	if len(pts) < 2 {
		return
	}
	for i := 0; i < len(pts)-1; i++ {
		r.addEdge(pts[i], pts[i+1])
	}
	if pts[0] != pts[len(pts)-1] {
		r.addEdge(pts[len(pts)-1], pts[0])
	}
}

func (r *Rasterizer) addEdge(p0, p1 media.Point) {
	// Horizontal edges never cross a scanline.
	if p0.Y == p1.Y {
		return
	}
	r.edges = append(r.edges, newEdge(p0, p1))
}

// Fill rasterizes the accumulated edges, emitting one coverage span per
// touched pixel row. The edge list is left intact; call Reset to reuse
// the rasterizer for another shape.
func (r *Rasterizer) Fill(rule FillRule, span SpanFunc) {
	if len(r.edges) == 0 || r.width == 0 || r.height == 0 {
		return
	}

	yMin, yMax := math.MaxFloat64, -math.MaxFloat64
	xMin, xMax := math.MaxFloat64, -math.MaxFloat64
	for i := range r.edges {
		e := &r.edges[i]
		yMin = math.Min(yMin, e.y0)
		yMax = math.Max(yMax, e.y1)
		xMin = math.Min(xMin, math.Min(e.x0, e.x1))
		xMax = math.Max(xMax, math.Max(e.x0, e.x1))
	}

	y0 := clampInt(int(math.Floor(yMin)), 0, r.height)
	y1 := clampInt(int(math.Ceil(yMax)), 0, r.height)
	x0 := clampInt(int(math.Floor(xMin)), 0, r.width)
	x1 := clampInt(int(math.Ceil(xMax)), 0, r.width)
	if y0 >= y1 || x0 >= x1 {
		return
	}

	for y := y0; y < y1; y++ {
		row := r.cover[x0:x1]
		for i := range row {
			row[i] = 0
		}

		touched := false
		for sub := 0; sub < subSamples; sub++ {
			scanY := float64(y) + (float64(sub)+0.5)/subSamples
			if r.collectCrossings(scanY) {
				r.accumulate(rule, x0, x1)
				touched = true
			}
		}
		if !touched {
			continue
		}

		r.emitRow(y, x0, x1, span)
	}
}

// collectCrossings gathers the x positions where edges cross scanY,
// sorted left to right. Reports whether any crossings exist.
func (r *Rasterizer) collectCrossings(scanY float64) bool {
	r.xs = r.xs[:0]
	for i := range r.edges {
		e := &r.edges[i]
		if e.y0 <= scanY && scanY < e.y1 {
			r.xs = append(r.xs, crossing{x: e.xAt(scanY), dir: e.dir})
		}
	}
	if len(r.xs) == 0 {
		return false
	}
	sort.Slice(r.xs, func(i, j int) bool { return r.xs[i].x < r.xs[j].x })
	return true
}

// accumulate walks the sorted crossings per the fill rule and adds this
// sub-scanline's fractional coverage to the row buffer.
func (r *Rasterizer) accumulate(rule FillRule, x0, x1 int) {
	if rule == FillNonZero {
		winding := 0
		var start float64
		for _, c := range r.xs {
			if winding == 0 {
				start = c.x
			}
			winding += c.dir
			if winding == 0 {
				r.addSpan(start, c.x, x0, x1)
			}
		}
		return
	}
	for i := 0; i+1 < len(r.xs); i += 2 {
		r.addSpan(r.xs[i].x, r.xs[i+1].x, x0, x1)
	}
}

// addSpan adds the sub-span [a, b) to the coverage buffer with
// fractional weights at the partial start and end pixels.
func (r *Rasterizer) addSpan(a, b float64, x0, x1 int) {
	a = math.Max(a, float64(x0))
	b = math.Min(b, float64(x1))
	if a >= b {
		return
	}

	ia := int(math.Floor(a))
	ib := int(math.Floor(b))
	if ia == ib {
		r.cover[ia] += b - a
		return
	}
	r.cover[ia] += float64(ia+1) - a
	for i := ia + 1; i < ib; i++ {
		r.cover[i]++
	}
	if frac := b - float64(ib); frac > 0 && ib < x1 {
		r.cover[ib] += frac
	}
}

// emitRow converts accumulated coverage to 8-bit alpha and emits the
// nonzero extent of the row.
func (r *Rasterizer) emitRow(y, x0, x1 int, span SpanFunc) {
	first, last := -1, -1
	for x := x0; x < x1; x++ {
		if r.cover[x] > 0 {
			if first < 0 {
				first = x
			}
			last = x
		}
	}
	if first < 0 {
		return
	}

	out := r.cov8[:last-first+1]
	for i := range out {
		// Full coverage is subSamples; scale to 255.
		v := r.cover[first+i] * (255.0 / subSamples)
		if v > 255 {
			v = 255
		}
		out[i] = uint8(v + 0.5)
	}
	span(y, first, out)
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
