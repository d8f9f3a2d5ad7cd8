package drawing

import (
	"image"
	"math"

	"github.com/0xDB6/Avalonia/internal/path"
	"github.com/0xDB6/Avalonia/media"
)

// Circle quadrant cubic control distance.
const kappa = 0.5522847498307936

func rectOps(r media.Rect) []media.PathOp {
	g := media.RectangleGeometry{Rect: r}
	return g.PathOps()
}

// rrectOps builds the outline of a rounded rectangle, clockwise from
// the top edge. Corners with radius zero degenerate to sharp corners.
func rrectOps(rr media.RoundedRect) []media.PathOp {
	if !rr.IsRounded() {
		return rectOps(rr.Rect)
	}
	x, y := rr.Rect.X, rr.Rect.Y
	r, b := rr.Rect.Right(), rr.Rect.Bottom()
	tl, tr := rr.RadiusTopLeft, rr.RadiusTopRight
	br, bl := rr.RadiusBottomRight, rr.RadiusBottomLeft
	return []media.PathOp{
		{Verb: media.PathMoveTo, P1: media.Point{X: x + tl, Y: y}},
		{Verb: media.PathLineTo, P1: media.Point{X: r - tr, Y: y}},
		{Verb: media.PathCubicTo,
			P1: media.Point{X: r - tr + kappa*tr, Y: y},
			P2: media.Point{X: r, Y: y + tr - kappa*tr},
			P3: media.Point{X: r, Y: y + tr}},
		{Verb: media.PathLineTo, P1: media.Point{X: r, Y: b - br}},
		{Verb: media.PathCubicTo,
			P1: media.Point{X: r, Y: b - br + kappa*br},
			P2: media.Point{X: r - br + kappa*br, Y: b},
			P3: media.Point{X: r - br, Y: b}},
		{Verb: media.PathLineTo, P1: media.Point{X: x + bl, Y: b}},
		{Verb: media.PathCubicTo,
			P1: media.Point{X: x + bl - kappa*bl, Y: b},
			P2: media.Point{X: x, Y: b - bl + kappa*bl},
			P3: media.Point{X: x, Y: b - bl}},
		{Verb: media.PathLineTo, P1: media.Point{X: x, Y: y + tl}},
		{Verb: media.PathCubicTo,
			P1: media.Point{X: x, Y: y + tl - kappa*tl},
			P2: media.Point{X: x + tl - kappa*tl, Y: y},
			P3: media.Point{X: x + tl, Y: y}},
		{Verb: media.PathClose},
	}
}

// imageRect converts a logical rect to the covering pixel rectangle.
func imageRect(r media.Rect) image.Rectangle {
	return image.Rect(
		int(math.Floor(r.X)),
		int(math.Floor(r.Y)),
		int(math.Ceil(r.Right())),
		int(math.Ceil(r.Bottom())),
	)
}

// polylineBounds is the bounding box of already-transformed polylines.
func polylineBounds(polys []path.Polyline) media.Rect {
	first := true
	var minX, minY, maxX, maxY float64
	for _, poly := range polys {
		for _, p := range poly.Points {
			if first {
				minX, maxX = p.X, p.X
				minY, maxY = p.Y, p.Y
				first = false
				continue
			}
			minX = math.Min(minX, p.X)
			minY = math.Min(minY, p.Y)
			maxX = math.Max(maxX, p.X)
			maxY = math.Max(maxY, p.Y)
		}
	}
	if first {
		return media.Rect{}
	}
	return media.Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
