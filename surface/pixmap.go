package surface

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"

	"github.com/0xDB6/Avalonia/media"
)

// PixelSize is a surface size in device pixels.
type PixelSize struct {
	Width  int
	Height int
}

// PixelSizeFromLogical converts a logical size to device pixels at the
// given DPI. Each axis is scaled by dpi/96 and rounded to nearest.
func PixelSizeFromLogical(logical media.Size, dpi float64) PixelSize {
	scale := dpi / 96.0
	return PixelSize{
		Width:  int(math.Round(logical.Width * scale)),
		Height: int(math.Round(logical.Height * scale)),
	}
}

// ToLogical converts the size back to logical units at the given DPI.
func (s PixelSize) ToLogical(dpi float64) media.Size {
	scale := dpi / 96.0
	if scale == 0 {
		return media.Size{}
	}
	return media.Size{
		Width:  float64(s.Width) / scale,
		Height: float64(s.Height) / scale,
	}
}

// IsEmpty reports whether either dimension is not positive.
func (s PixelSize) IsEmpty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Pixmap is a CPU pixel buffer in premultiplied RGBA order, 8 bits per
// channel. The layout matches image.RGBA so the buffer can be wrapped
// without copying.
type Pixmap struct {
	width  int
	height int
	pix    []uint8
}

// NewPixmap creates a pixmap with the given dimensions. Negative
// dimensions are clamped to zero.
func NewPixmap(width, height int) *Pixmap {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Pixmap{
		width:  width,
		height: height,
		pix:    make([]uint8, width*height*4),
	}
}

// Width returns the pixmap width in pixels.
func (p *Pixmap) Width() int {
	return p.width
}

// Height returns the pixmap height in pixels.
func (p *Pixmap) Height() int {
	return p.height
}

// Size returns the pixmap dimensions.
func (p *Pixmap) Size() PixelSize {
	return PixelSize{Width: p.width, Height: p.height}
}

// Stride returns the number of bytes per row.
func (p *Pixmap) Stride() int {
	return p.width * 4
}

// Pix returns the backing pixel slice. The slice is premultiplied RGBA,
// row-major, with no padding between rows.
func (p *Pixmap) Pix() []uint8 {
	return p.pix
}

// PixOffset returns the index of the first byte of the pixel at (x, y).
func (p *Pixmap) PixOffset(x, y int) int {
	return (y*p.width + x) * 4
}

// Clear fills the whole pixmap with the given color.
func (p *Pixmap) Clear(c media.Color) {
	r, g, b, a := c.PremulRGBA8()
	if r == 0 && g == 0 && b == 0 && a == 0 {
		clear(p.pix)
		return
	}
	for i := 0; i < len(p.pix); i += 4 {
		p.pix[i] = r
		p.pix[i+1] = g
		p.pix[i+2] = b
		p.pix[i+3] = a
	}
}

// ColorModel implements image.Image.
func (p *Pixmap) ColorModel() color.Model {
	return color.RGBAModel
}

// Bounds implements image.Image.
func (p *Pixmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.width, p.height)
}

// At implements image.Image. The returned color is premultiplied, as
// color.RGBA requires.
func (p *Pixmap) At(x, y int) color.Color {
	if x < 0 || y < 0 || x >= p.width || y >= p.height {
		return color.RGBA{}
	}
	i := p.PixOffset(x, y)
	return color.RGBA{R: p.pix[i], G: p.pix[i+1], B: p.pix[i+2], A: p.pix[i+3]}
}

// Image wraps the pixmap as an *image.RGBA sharing the same backing
// store. Writes through either view are visible in the other.
func (p *Pixmap) Image() *image.RGBA {
	return &image.RGBA{
		Pix:    p.pix,
		Stride: p.width * 4,
		Rect:   image.Rect(0, 0, p.width, p.height),
	}
}

// Clone returns a deep copy of the pixmap.
func (p *Pixmap) Clone() *Pixmap {
	out := NewPixmap(p.width, p.height)
	copy(out.pix, p.pix)
	return out
}

// EncodePNG writes the pixmap to w in PNG format.
func (p *Pixmap) EncodePNG(w io.Writer) error {
	return png.Encode(w, p.Image())
}

// SavePNG writes the pixmap to a PNG file.
func (p *Pixmap) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := p.EncodePNG(f); err != nil {
		return err
	}
	return f.Close()
}

var _ image.Image = (*Pixmap)(nil)
