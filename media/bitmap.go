package media

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Bitmap is an immutable decoded pixel source for image brushes and bitmap
// draws. Pixels are stored straight-alpha NRGBA.
type Bitmap struct {
	img *image.NRGBA
	dpi float64
}

// NewBitmapFromImage wraps a decoded image, converting to NRGBA as needed.
// The bitmap assumes the standard 96 DPI.
func NewBitmapFromImage(img image.Image) *Bitmap {
	return &Bitmap{img: imaging.Clone(img), dpi: 96}
}

// LoadBitmap decodes an image file from disk.
func LoadBitmap(path string) (*Bitmap, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("media: loading bitmap %q: %w", path, err)
	}
	return &Bitmap{img: imaging.Clone(img), dpi: 96}, nil
}

// PixelWidth returns the width in device pixels.
func (b *Bitmap) PixelWidth() int { return b.img.Bounds().Dx() }

// PixelHeight returns the height in device pixels.
func (b *Bitmap) PixelHeight() int { return b.img.Bounds().Dy() }

// DPI returns the bitmap's pixel density.
func (b *Bitmap) DPI() float64 { return b.dpi }

// Size returns the logical size at the bitmap's DPI.
func (b *Bitmap) Size() Size {
	scale := 96 / b.dpi
	return Size{
		Width:  float64(b.PixelWidth()) * scale,
		Height: float64(b.PixelHeight()) * scale,
	}
}

// Image returns the backing pixels. Callers must not mutate them.
func (b *Bitmap) Image() *image.NRGBA { return b.img }

// Resized returns a copy scaled to the given pixel dimensions with Lanczos
// resampling. Non-positive dimensions return the receiver unchanged.
func (b *Bitmap) Resized(width, height int) *Bitmap {
	if width <= 0 || height <= 0 {
		return b
	}
	if width == b.PixelWidth() && height == b.PixelHeight() {
		return b
	}
	return &Bitmap{img: imaging.Resize(b.img, width, height, imaging.Lanczos), dpi: b.dpi}
}

// Cropped returns a copy containing only the given pixel region, clamped to
// the bitmap bounds.
func (b *Bitmap) Cropped(region image.Rectangle) *Bitmap {
	return &Bitmap{img: imaging.Crop(b.img, region), dpi: b.dpi}
}
