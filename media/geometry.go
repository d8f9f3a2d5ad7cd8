package media

import "math"

// PathVerb identifies one path-building operation.
type PathVerb int

const (
	// PathMoveTo starts a new figure at P1.
	PathMoveTo PathVerb = iota

	// PathLineTo draws a line to P1.
	PathLineTo

	// PathQuadTo draws a quadratic bezier with control P1 to P2.
	PathQuadTo

	// PathCubicTo draws a cubic bezier with controls P1, P2 to P3.
	PathCubicTo

	// PathClose closes the current figure.
	PathClose
)

// PathOp is a single path operation. Which points are meaningful depends on
// the verb.
type PathOp struct {
	Verb       PathVerb
	P1, P2, P3 Point
}

// Geometry describes an immutable shape that can be filled, stroked or used
// as a clip. This is a sealed interface - only types in this package
// implement it.
type Geometry interface {
	// geometryMarker is an unexported method that seals this interface.
	geometryMarker()

	// PathOps returns the shape as a sequence of path operations.
	PathOps() []PathOp

	// Bounds returns the shape's axis-aligned bounds. For curved shapes
	// these are control-point bounds, which may slightly overestimate.
	Bounds() Rect
}

// RectangleGeometry is a rectangle shape.
type RectangleGeometry struct {
	Rect Rect
}

func (*RectangleGeometry) geometryMarker() {}

// PathOps implements Geometry.
func (g *RectangleGeometry) PathOps() []PathOp {
	r := g.Rect
	return []PathOp{
		{Verb: PathMoveTo, P1: Point{X: r.X, Y: r.Y}},
		{Verb: PathLineTo, P1: Point{X: r.Right(), Y: r.Y}},
		{Verb: PathLineTo, P1: Point{X: r.Right(), Y: r.Bottom()}},
		{Verb: PathLineTo, P1: Point{X: r.X, Y: r.Bottom()}},
		{Verb: PathClose},
	}
}

// Bounds implements Geometry.
func (g *RectangleGeometry) Bounds() Rect { return g.Rect }

// bezierCircle approximates a quarter circle with one cubic segment.
const bezierCircle = 0.5522847498307936

// EllipseGeometry is an ellipse shape.
type EllipseGeometry struct {
	Center  Point
	RadiusX float64
	RadiusY float64
}

func (*EllipseGeometry) geometryMarker() {}

// PathOps implements Geometry.
func (g *EllipseGeometry) PathOps() []PathOp {
	cx, cy := g.Center.X, g.Center.Y
	rx, ry := g.RadiusX, g.RadiusY
	kx, ky := rx*bezierCircle, ry*bezierCircle
	return []PathOp{
		{Verb: PathMoveTo, P1: Point{X: cx + rx, Y: cy}},
		{Verb: PathCubicTo, P1: Point{X: cx + rx, Y: cy + ky}, P2: Point{X: cx + kx, Y: cy + ry}, P3: Point{X: cx, Y: cy + ry}},
		{Verb: PathCubicTo, P1: Point{X: cx - kx, Y: cy + ry}, P2: Point{X: cx - rx, Y: cy + ky}, P3: Point{X: cx - rx, Y: cy}},
		{Verb: PathCubicTo, P1: Point{X: cx - rx, Y: cy - ky}, P2: Point{X: cx - kx, Y: cy - ry}, P3: Point{X: cx, Y: cy - ry}},
		{Verb: PathCubicTo, P1: Point{X: cx + kx, Y: cy - ry}, P2: Point{X: cx + rx, Y: cy - ky}, P3: Point{X: cx + rx, Y: cy}},
		{Verb: PathClose},
	}
}

// Bounds implements Geometry.
func (g *EllipseGeometry) Bounds() Rect {
	return Rect{
		X:      g.Center.X - g.RadiusX,
		Y:      g.Center.Y - g.RadiusY,
		Width:  2 * g.RadiusX,
		Height: 2 * g.RadiusY,
	}
}

// LineGeometry is a single line segment. It has no interior; filling it
// produces nothing, stroking it draws the segment.
type LineGeometry struct {
	Start, End Point
}

func (*LineGeometry) geometryMarker() {}

// PathOps implements Geometry.
func (g *LineGeometry) PathOps() []PathOp {
	return []PathOp{
		{Verb: PathMoveTo, P1: g.Start},
		{Verb: PathLineTo, P1: g.End},
	}
}

// Bounds implements Geometry.
func (g *LineGeometry) Bounds() Rect {
	return RectFromPoints(g.Start, g.End)
}

// PolylineGeometry is a sequence of connected line segments, optionally
// closed into a polygon.
type PolylineGeometry struct {
	Points []Point
	Closed bool
}

func (*PolylineGeometry) geometryMarker() {}

// PathOps implements Geometry.
func (g *PolylineGeometry) PathOps() []PathOp {
	if len(g.Points) == 0 {
		return nil
	}
	ops := make([]PathOp, 0, len(g.Points)+1)
	ops = append(ops, PathOp{Verb: PathMoveTo, P1: g.Points[0]})
	for _, p := range g.Points[1:] {
		ops = append(ops, PathOp{Verb: PathLineTo, P1: p})
	}
	if g.Closed {
		ops = append(ops, PathOp{Verb: PathClose})
	}
	return ops
}

// Bounds implements Geometry.
func (g *PolylineGeometry) Bounds() Rect {
	if len(g.Points) == 0 {
		return Rect{}
	}
	minX, minY := g.Points[0].X, g.Points[0].Y
	maxX, maxY := minX, minY
	for _, p := range g.Points[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// FillRule decides which regions of a self-intersecting path are
// inside it. Stream geometries default to even-odd.
type FillRule int

const (
	FillRuleEvenOdd FillRule = iota
	FillRuleNonZero
)

// StreamGeometry is an arbitrary path assembled through a
// StreamGeometryContext. Once built it is immutable.
type StreamGeometry struct {
	// FillRule applies when the geometry is filled.
	FillRule FillRule

	ops    []PathOp
	bounds Rect
	empty  bool
}

// NewStreamGeometry creates an empty stream geometry.
func NewStreamGeometry() *StreamGeometry {
	return &StreamGeometry{empty: true}
}

func (*StreamGeometry) geometryMarker() {}

// PathOps implements Geometry.
func (g *StreamGeometry) PathOps() []PathOp { return g.ops }

// Bounds implements Geometry.
func (g *StreamGeometry) Bounds() Rect {
	if g.empty {
		return Rect{}
	}
	return g.bounds
}

// Open returns a context for appending figures to the geometry.
func (g *StreamGeometry) Open() *StreamGeometryContext {
	return &StreamGeometryContext{geometry: g}
}

// StreamGeometryContext appends figures to a StreamGeometry.
// It is not safe for concurrent use.
type StreamGeometryContext struct {
	geometry *StreamGeometry
}

func (c *StreamGeometryContext) push(op PathOp, pts ...Point) {
	g := c.geometry
	g.ops = append(g.ops, op)
	for _, p := range pts {
		if g.empty {
			g.bounds = Rect{X: p.X, Y: p.Y}
			g.empty = false
			continue
		}
		b := g.bounds
		minX := math.Min(b.X, p.X)
		minY := math.Min(b.Y, p.Y)
		maxX := math.Max(b.Right(), p.X)
		maxY := math.Max(b.Bottom(), p.Y)
		g.bounds = Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
	}
}

// BeginFigure starts a new figure at the given point.
func (c *StreamGeometryContext) BeginFigure(start Point) {
	c.push(PathOp{Verb: PathMoveTo, P1: start}, start)
}

// SetFillRule selects the fill rule for the whole geometry.
func (c *StreamGeometryContext) SetFillRule(rule FillRule) {
	c.geometry.FillRule = rule
}

// LineTo appends a line segment.
func (c *StreamGeometryContext) LineTo(p Point) {
	c.push(PathOp{Verb: PathLineTo, P1: p}, p)
}

// QuadTo appends a quadratic bezier segment.
func (c *StreamGeometryContext) QuadTo(control, p Point) {
	c.push(PathOp{Verb: PathQuadTo, P1: control, P2: p}, control, p)
}

// CubicTo appends a cubic bezier segment.
func (c *StreamGeometryContext) CubicTo(control1, control2, p Point) {
	c.push(PathOp{Verb: PathCubicTo, P1: control1, P2: control2, P3: p}, control1, control2, p)
}

// EndFigure finishes the current figure, closing it when closed is true.
func (c *StreamGeometryContext) EndFigure(closed bool) {
	if closed {
		c.push(PathOp{Verb: PathClose})
	}
}
