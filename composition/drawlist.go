package composition

import (
	"github.com/0xDB6/Avalonia/drawing"
	"github.com/0xDB6/Avalonia/media"
	"github.com/0xDB6/Avalonia/text"
)

// A DrawList is an immutable recorded sequence of drawing commands, the
// content of one visual. The UI thread records it once through a
// DrawListBuilder; the render thread replays it against a
// drawing.Context as often as the visual's region needs repainting.
// Immutability is what makes sharing the list across the thread
// boundary safe.
type DrawList struct {
	ops    []drawOp
	bounds media.Rect
}

// Bounds returns the union of the recorded commands' extents in the
// visual's local coordinates, including pen and shadow overhang. Dirty
// tracking and hit testing both rely on it.
func (l *DrawList) Bounds() media.Rect {
	if l == nil {
		return media.Rect{}
	}
	return l.bounds
}

// Len returns the number of recorded commands.
func (l *DrawList) Len() int {
	if l == nil {
		return 0
	}
	return len(l.ops)
}

// Replay executes the recorded commands against dc in order. The first
// command error aborts the replay.
func (l *DrawList) Replay(dc *drawing.Context) error {
	if l == nil {
		return nil
	}
	for _, op := range l.ops {
		if err := op.replay(dc); err != nil {
			return err
		}
	}
	return nil
}

// drawOp is one recorded command.
type drawOp interface {
	replay(dc *drawing.Context) error
}

// DrawListBuilder records drawing commands into a DrawList. The zero
// value is ready to use; Build hands the recorded list over and resets
// the builder for the next recording.
//
// The builder mirrors the drawing.Context surface but never touches a
// backend, so recording is cheap and cannot fail. Unbalanced pushes are
// not checked here; they surface as ErrStackUnderflow when the list is
// replayed.
type DrawListBuilder struct {
	ops    []drawOp
	bounds media.Rect
}

// Build returns the recorded list and resets the builder.
func (b *DrawListBuilder) Build() *DrawList {
	list := &DrawList{ops: b.ops, bounds: b.bounds}
	b.ops = nil
	b.bounds = media.Rect{}
	return list
}

func (b *DrawListBuilder) record(op drawOp, bounds media.Rect) {
	b.ops = append(b.ops, op)
	b.bounds = b.bounds.Union(bounds)
}

// strokeBounds grows r by the pen's full thickness. Half the thickness
// is the true stroke extent; the extra margin covers square caps and
// miter spikes on diagonal segments.
func strokeBounds(r media.Rect, pen *media.Pen) media.Rect {
	if pen == nil || pen.Thickness <= 0 {
		return r
	}
	return r.Inflate(pen.Thickness)
}

// DrawLine records a stroked line from a to bp.
func (b *DrawListBuilder) DrawLine(pen *media.Pen, a, bp media.Point) {
	b.record(opLine{pen: pen, a: a, b: bp}, strokeBounds(media.RectFromPoints(a, bp), pen))
}

// DrawRectangle records a filled and stroked rectangle with optional
// box shadows.
func (b *DrawListBuilder) DrawRectangle(brush media.Brush, pen *media.Pen, rect media.RoundedRect, shadows ...media.BoxShadow) {
	bounds := strokeBounds(rect.Rect, pen)
	if len(shadows) > 0 {
		bounds = bounds.Union(media.BoxShadows(shadows).TransformBounds(rect.Rect))
	}
	b.record(opRectangle{brush: brush, pen: pen, rect: rect, shadows: shadows}, bounds)
}

// DrawEllipse records a filled and stroked ellipse inscribed in rect.
func (b *DrawListBuilder) DrawEllipse(brush media.Brush, pen *media.Pen, rect media.Rect) {
	b.record(opEllipse{brush: brush, pen: pen, rect: rect}, strokeBounds(rect, pen))
}

// DrawGeometry records a filled and stroked geometry.
func (b *DrawListBuilder) DrawGeometry(brush media.Brush, pen *media.Pen, g media.Geometry) {
	if g == nil {
		return
	}
	b.record(opGeometry{brush: brush, pen: pen, geometry: g}, strokeBounds(g.Bounds(), pen))
}

// DrawBitmap records a bitmap draw. sourceRect selects bitmap pixels
// (empty for all of them); destRect is the target in local coordinates.
func (b *DrawListBuilder) DrawBitmap(source *media.Bitmap, opacity float64, sourceRect, destRect media.Rect) {
	b.record(opBitmap{source: source, opacity: opacity, sourceRect: sourceRect, destRect: destRect}, destRect)
}

// DrawGlyphRun records shaped text.
func (b *DrawListBuilder) DrawGlyphRun(foreground media.Brush, run *text.GlyphRun) {
	if run == nil {
		return
	}
	b.record(opGlyphRun{foreground: foreground, run: run}, run.Bounds())
}

// PushClip records an axis-aligned clip push.
func (b *DrawListBuilder) PushClip(rect media.Rect) {
	b.record(opPushClip{rect: rect}, media.Rect{})
}

// PushRoundedClip records a rounded-rect clip push.
func (b *DrawListBuilder) PushRoundedClip(rr media.RoundedRect) {
	b.record(opPushRoundedClip{rect: rr}, media.Rect{})
}

// PopClip records the pop matching PushClip or PushRoundedClip.
func (b *DrawListBuilder) PopClip() {
	b.record(opPopClip{}, media.Rect{})
}

// PushGeometryClip records an arbitrary-path clip push.
func (b *DrawListBuilder) PushGeometryClip(g media.Geometry) {
	b.record(opPushGeometryClip{geometry: g}, media.Rect{})
}

// PopGeometryClip records the pop matching PushGeometryClip.
func (b *DrawListBuilder) PopGeometryClip() {
	b.record(opPopGeometryClip{}, media.Rect{})
}

// PushOpacity records an ambient opacity push.
func (b *DrawListBuilder) PushOpacity(opacity float64) {
	b.record(opPushOpacity{opacity: opacity}, media.Rect{})
}

// PopOpacity records the pop matching PushOpacity.
func (b *DrawListBuilder) PopOpacity() {
	b.record(opPopOpacity{}, media.Rect{})
}

// PushOpacityMask records an opacity mask push over bounds.
func (b *DrawListBuilder) PushOpacityMask(brush media.Brush, bounds media.Rect) {
	b.record(opPushOpacityMask{brush: brush, bounds: bounds}, media.Rect{})
}

// PopOpacityMask records the pop matching PushOpacityMask. The masked
// content composites into the parent here.
func (b *DrawListBuilder) PopOpacityMask() {
	b.record(opPopOpacityMask{}, media.Rect{})
}

// PushBitmapBlendMode records a blend mode push.
func (b *DrawListBuilder) PushBitmapBlendMode(mode media.BlendMode) {
	b.record(opPushBlendMode{mode: mode}, media.Rect{})
}

// PopBitmapBlendMode records the pop matching PushBitmapBlendMode.
func (b *DrawListBuilder) PopBitmapBlendMode() {
	b.record(opPopBlendMode{}, media.Rect{})
}

type opLine struct {
	pen  *media.Pen
	a, b media.Point
}

func (o opLine) replay(dc *drawing.Context) error {
	return dc.DrawLine(o.pen, o.a, o.b)
}

type opRectangle struct {
	brush   media.Brush
	pen     *media.Pen
	rect    media.RoundedRect
	shadows []media.BoxShadow
}

func (o opRectangle) replay(dc *drawing.Context) error {
	return dc.DrawRectangle(o.brush, o.pen, o.rect, o.shadows...)
}

type opEllipse struct {
	brush media.Brush
	pen   *media.Pen
	rect  media.Rect
}

func (o opEllipse) replay(dc *drawing.Context) error {
	return dc.DrawEllipse(o.brush, o.pen, o.rect)
}

type opGeometry struct {
	brush    media.Brush
	pen      *media.Pen
	geometry media.Geometry
}

func (o opGeometry) replay(dc *drawing.Context) error {
	return dc.DrawGeometry(o.brush, o.pen, o.geometry)
}

type opBitmap struct {
	source     *media.Bitmap
	opacity    float64
	sourceRect media.Rect
	destRect   media.Rect
}

func (o opBitmap) replay(dc *drawing.Context) error {
	return dc.DrawBitmap(o.source, o.opacity, o.sourceRect, o.destRect)
}

type opGlyphRun struct {
	foreground media.Brush
	run        *text.GlyphRun
}

func (o opGlyphRun) replay(dc *drawing.Context) error {
	return dc.DrawGlyphRun(o.foreground, o.run)
}

type opPushClip struct{ rect media.Rect }

func (o opPushClip) replay(dc *drawing.Context) error { return dc.PushClip(o.rect) }

type opPushRoundedClip struct{ rect media.RoundedRect }

func (o opPushRoundedClip) replay(dc *drawing.Context) error { return dc.PushRoundedClip(o.rect) }

type opPopClip struct{}

func (opPopClip) replay(dc *drawing.Context) error { return dc.PopClip() }

type opPushGeometryClip struct{ geometry media.Geometry }

func (o opPushGeometryClip) replay(dc *drawing.Context) error { return dc.PushGeometryClip(o.geometry) }

type opPopGeometryClip struct{}

func (opPopGeometryClip) replay(dc *drawing.Context) error { return dc.PopGeometryClip() }

type opPushOpacity struct{ opacity float64 }

func (o opPushOpacity) replay(dc *drawing.Context) error { return dc.PushOpacity(o.opacity) }

type opPopOpacity struct{}

func (opPopOpacity) replay(dc *drawing.Context) error { return dc.PopOpacity() }

type opPushOpacityMask struct {
	brush  media.Brush
	bounds media.Rect
}

func (o opPushOpacityMask) replay(dc *drawing.Context) error {
	return dc.PushOpacityMask(o.brush, o.bounds)
}

type opPopOpacityMask struct{}

func (opPopOpacityMask) replay(dc *drawing.Context) error { return dc.PopOpacityMask() }

type opPushBlendMode struct{ mode media.BlendMode }

func (o opPushBlendMode) replay(dc *drawing.Context) error { return dc.PushBitmapBlendMode(o.mode) }

type opPopBlendMode struct{}

func (opPopBlendMode) replay(dc *drawing.Context) error { return dc.PopBitmapBlendMode() }
