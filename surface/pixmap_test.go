package surface

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xDB6/Avalonia/media"
)

func TestPixelSizeFromLogical(t *testing.T) {
	tests := []struct {
		name    string
		logical media.Size
		dpi     float64
		want    PixelSize
	}{
		{"96dpi identity", media.Sz(100, 50), 96, PixelSize{100, 50}},
		{"144dpi scales 1.5x", media.Sz(100, 50), 144, PixelSize{150, 75}},
		{"120dpi rounds half up", media.Sz(10, 10), 120, PixelSize{13, 13}},
		{"zero size", media.Sz(0, 0), 96, PixelSize{0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PixelSizeFromLogical(tt.logical, tt.dpi))
		})
	}
}

func TestPixelSizeToLogical(t *testing.T) {
	got := PixelSize{150, 75}.ToLogical(144)
	assert.InDelta(t, 100, got.Width, 1e-9)
	assert.InDelta(t, 50, got.Height, 1e-9)
}

func TestPixmapClear(t *testing.T) {
	p := NewPixmap(4, 3)
	p.Clear(media.Color{R: 1, A: 0.5})

	want := color.RGBA{R: 128, A: 128}
	assert.Equal(t, want, p.At(0, 0))
	assert.Equal(t, want, p.At(3, 2))

	p.Clear(media.Color{})
	assert.Equal(t, color.RGBA{}, p.At(1, 1))
}

func TestPixmapAtOutOfBounds(t *testing.T) {
	p := NewPixmap(2, 2)
	p.Clear(media.RGB(1, 1, 1))

	assert.Equal(t, color.RGBA{}, p.At(-1, 0))
	assert.Equal(t, color.RGBA{}, p.At(2, 0))
	assert.Equal(t, color.RGBA{}, p.At(0, 2))
}

func TestPixmapImageSharesBacking(t *testing.T) {
	p := NewPixmap(3, 3)
	img := p.Image()
	img.SetRGBA(1, 2, color.RGBA{R: 10, G: 20, B: 30, A: 255})

	assert.Equal(t, color.RGBA{R: 10, G: 20, B: 30, A: 255}, p.At(1, 2))
}

func TestPixmapClone(t *testing.T) {
	p := NewPixmap(2, 2)
	p.Clear(media.RGB(0, 1, 0))

	c := p.Clone()
	c.Clear(media.RGB(1, 0, 0))

	assert.Equal(t, color.RGBA{G: 255, A: 255}, p.At(0, 0))
	assert.Equal(t, color.RGBA{R: 255, A: 255}, c.At(0, 0))
}

func TestPixmapEncodePNG(t *testing.T) {
	p := NewPixmap(5, 4)
	p.Clear(media.Color{R: 1, A: 0.5})

	var buf bytes.Buffer
	require.NoError(t, p.EncodePNG(&buf))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 5, img.Bounds().Dx())
	assert.Equal(t, 4, img.Bounds().Dy())

	wr, wg, wb, wa := p.At(2, 2).RGBA()
	gr, gg, gb, ga := img.At(2, 2).RGBA()
	assert.Equal(t, []uint32{wr, wg, wb, wa}, []uint32{gr, gg, gb, ga})
}

func TestNewPixmapClampsNegative(t *testing.T) {
	p := NewPixmap(-3, 5)
	assert.Equal(t, 0, p.Width())
	assert.Equal(t, 5, p.Height())
	assert.Empty(t, p.Pix())
}
