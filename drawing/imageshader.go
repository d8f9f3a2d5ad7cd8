package drawing

import (
	"image"
	"math"

	"github.com/0xDB6/Avalonia/media"
	"github.com/0xDB6/Avalonia/surface"
)

// spreadKind is a per-axis tile policy for image shaders.
type spreadKind uint8

const (
	spreadClamp spreadKind = iota
	spreadRepeat
	spreadMirror
)

// tileModeSpreads maps a brush tile mode onto per-axis spreads:
// None clamps, Flip mirrors its axis, everything else repeats.
func tileModeSpreads(m media.TileMode) (x, y spreadKind) {
	switch m {
	case media.TileModeNone:
		return spreadClamp, spreadClamp
	case media.TileModeFlipX:
		return spreadMirror, spreadRepeat
	case media.TileModeFlipY:
		return spreadRepeat, spreadMirror
	case media.TileModeFlipXY:
		return spreadMirror, spreadMirror
	default:
		return spreadRepeat, spreadRepeat
	}
}

func applySpreadKind(t float64, k spreadKind) float64 {
	switch k {
	case spreadRepeat:
		t -= math.Floor(t)
		if t < 0 {
			t++
		}
	case spreadMirror:
		t = math.Abs(t)
		period := math.Floor(t)
		t -= period
		if int(period)%2 == 1 {
			t = 1 - t
		}
	default:
		t = clamp01(t)
	}
	return t
}

// imageShader samples a premultiplied pixmap tiled over a brush-space
// rect. inv maps device pixels into brush space; the tile rect defines
// one period, with per-axis spread outside it.
type imageShader struct {
	pixmap           *surface.Pixmap
	tile             media.Rect // one tile period in brush space
	spreadX, spreadY spreadKind
	inv              media.Matrix
	opacity          float64
}

func (s *imageShader) sample(x, y float64) (r, g, b, a uint8) {
	w := s.pixmap.Width()
	h := s.pixmap.Height()
	if w == 0 || h == 0 || s.tile.Width <= 0 || s.tile.Height <= 0 {
		return 0, 0, 0, 0
	}

	p := s.inv.TransformPoint(media.Pt(x, y))
	u := applySpreadKind((p.X-s.tile.X)/s.tile.Width, s.spreadX)
	v := applySpreadKind((p.Y-s.tile.Y)/s.tile.Height, s.spreadY)

	r, g, b, a = sampleBilinear(s.pixmap, u, v)
	if s.opacity < 1 {
		r = scale8(r, s.opacity)
		g = scale8(g, s.opacity)
		b = scale8(b, s.opacity)
		a = scale8(a, s.opacity)
	}
	return r, g, b, a
}

// sampleBilinear interpolates the four pixels around normalized (u, v),
// clamping at the edges.
func sampleBilinear(pm *surface.Pixmap, u, v float64) (r, g, b, a uint8) {
	w := pm.Width()
	h := pm.Height()

	fx := u*float64(w) - 0.5
	fy := v*float64(h) - 0.5

	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	tx := fx - float64(x0)
	ty := fy - float64(y0)

	x1 := clampInt(x0+1, 0, w-1)
	y1 := clampInt(y0+1, 0, h-1)
	x0 = clampInt(x0, 0, w-1)
	y0 = clampInt(y0, 0, h-1)

	pix := pm.Pix()
	i00 := pm.PixOffset(x0, y0)
	i10 := pm.PixOffset(x1, y0)
	i01 := pm.PixOffset(x0, y1)
	i11 := pm.PixOffset(x1, y1)

	r = lerp2D(pix[i00], pix[i10], pix[i01], pix[i11], tx, ty)
	g = lerp2D(pix[i00+1], pix[i10+1], pix[i01+1], pix[i11+1], tx, ty)
	b = lerp2D(pix[i00+2], pix[i10+2], pix[i01+2], pix[i11+2], tx, ty)
	a = lerp2D(pix[i00+3], pix[i10+3], pix[i01+3], pix[i11+3], tx, ty)
	return r, g, b, a
}

func lerp2D(c00, c10, c01, c11 uint8, tx, ty float64) uint8 {
	top := float64(c00) + tx*(float64(c10)-float64(c00))
	bottom := float64(c01) + tx*(float64(c11)-float64(c01))
	v := top + ty*(bottom-top)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}

func scale8(c uint8, f float64) uint8 {
	return uint8(float64(c)*f + 0.5)
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

// copyNRGBA premultiplies the src portion of a straight-alpha image
// into the top-left corner of dst. dst must be at least src-sized.
func copyNRGBA(dst *surface.Pixmap, img *image.NRGBA, src image.Rectangle) {
	w, h := src.Dx(), src.Dy()
	pix := dst.Pix()
	for y := 0; y < h; y++ {
		si := img.PixOffset(src.Min.X, src.Min.Y+y)
		row := img.Pix[si : si+w*4]
		out := pix[dst.PixOffset(0, y) : dst.PixOffset(0, y)+w*4]
		for x := 0; x < w*4; x += 4 {
			a := row[x+3]
			out[x+0] = mul8(row[x+0], a)
			out[x+1] = mul8(row[x+1], a)
			out[x+2] = mul8(row[x+2], a)
			out[x+3] = a
		}
	}
}

// blitNRGBA premultiplies a straight-alpha image into dst with its
// top-left corner at (atX, atY), limited to the clip rectangle.
func blitNRGBA(dst *surface.Pixmap, img *image.NRGBA, atX, atY int, clip image.Rectangle) {
	area := image.Rect(atX, atY, atX+img.Bounds().Dx(), atY+img.Bounds().Dy()).
		Intersect(clip).
		Intersect(image.Rect(0, 0, dst.Width(), dst.Height()))
	if area.Empty() {
		return
	}
	pix := dst.Pix()
	for y := area.Min.Y; y < area.Max.Y; y++ {
		si := img.PixOffset(img.Bounds().Min.X+(area.Min.X-atX), img.Bounds().Min.Y+(y-atY))
		row := img.Pix[si : si+area.Dx()*4]
		out := pix[dst.PixOffset(area.Min.X, y) : dst.PixOffset(area.Min.X, y)+area.Dx()*4]
		for x := 0; x < area.Dx()*4; x += 4 {
			a := row[x+3]
			out[x+0] = mul8(row[x+0], a)
			out[x+1] = mul8(row[x+1], a)
			out[x+2] = mul8(row[x+2], a)
			out[x+3] = a
		}
	}
}

func mul8(c, a uint8) uint8 {
	return uint8((uint16(c)*uint16(a) + 127) / 255)
}
