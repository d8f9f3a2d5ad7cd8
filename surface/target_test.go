package surface

import (
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xDB6/Avalonia/media"
)

func TestNewRenderTargetForProvisionsFromRegistry(t *testing.T) {
	target, err := NewRenderTargetFor(media.Size{Width: 100, Height: 50}, 192)
	require.NoError(t, err)
	defer target.Close()

	assert.Equal(t, PixelSize{Width: 200, Height: 100}, target.Size())
	assert.Equal(t, 192.0, target.DPI())
	require.NotNil(t, target.Pixmap())
	require.NotNil(t, target.Pool())
}

func TestRenderTargetDelegatesToSurface(t *testing.T) {
	s := NewImageSurface(Options{Size: PixelSize{Width: 8, Height: 4}, DPI: 96})
	target := NewRenderTarget(s)
	defer target.Close()

	assert.Equal(t, s.Size(), target.Size())
	assert.Equal(t, s.DPI(), target.DPI())
	assert.Equal(t, s.Format(), target.Format())
	assert.Same(t, s.Pixmap(), target.Pixmap())
	assert.NoError(t, target.Flush())
}

func TestCreateLayerUsesTargetDPI(t *testing.T) {
	target, err := NewRenderTargetFor(media.Size{Width: 20, Height: 20}, 192)
	require.NoError(t, err)
	defer target.Close()

	layer, err := target.CreateLayer(media.Size{Width: 10, Height: 10})
	require.NoError(t, err)

	assert.Equal(t, PixelSize{Width: 20, Height: 20}, layer.Size())
	assert.Equal(t, 192.0, layer.Surface().DPI())
	require.NotNil(t, layer.Surface().Pixmap())
	assert.NoError(t, layer.Close())
}

func TestLayerCloseDetachesFromTarget(t *testing.T) {
	target := NewRenderTarget(NewImageSurface(Options{Size: PixelSize{Width: 4, Height: 4}}))
	defer target.Close()

	layer, err := target.CreateLayer(media.Size{Width: 2, Height: 2})
	require.NoError(t, err)

	require.NoError(t, layer.Close())
	assert.Nil(t, layer.Surface().Pixmap(), "closed layer should release its pixels")
	assert.NoError(t, layer.Close(), "layer close is idempotent")
}

func TestRenderTargetCloseClosesLayers(t *testing.T) {
	target := NewRenderTarget(NewImageSurface(Options{Size: PixelSize{Width: 4, Height: 4}}))

	a, err := target.CreateLayer(media.Size{Width: 2, Height: 2})
	require.NoError(t, err)
	b, err := target.CreateLayer(media.Size{Width: 3, Height: 3})
	require.NoError(t, err)

	require.NoError(t, target.Close())
	assert.Nil(t, a.Surface().Pixmap())
	assert.Nil(t, b.Surface().Pixmap())
	assert.Nil(t, target.Pixmap())
	assert.NoError(t, target.Close(), "target close is idempotent")

	_, err = target.CreateLayer(media.Size{Width: 1, Height: 1})
	assert.ErrorIs(t, err, ErrSurfaceClosed)
}

func TestRenderTargetResize(t *testing.T) {
	target := NewRenderTarget(NewImageSurface(Options{Size: PixelSize{Width: 4, Height: 4}}))
	defer target.Close()

	require.NoError(t, target.Resize(PixelSize{Width: 8, Height: 6}))
	assert.Equal(t, PixelSize{Width: 8, Height: 6}, target.Size())
	require.NotNil(t, target.Pixmap())
	assert.Equal(t, PixelSize{Width: 8, Height: 6}, target.Pixmap().Size())
}

// fixedSurface is a Surface without Resize support.
type fixedSurface struct {
	pm *Pixmap
}

func (f *fixedSurface) Size() PixelSize                { return f.pm.Size() }
func (f *fixedSurface) DPI() float64                   { return 96 }
func (f *fixedSurface) Format() gputypes.TextureFormat { return gputypes.TextureFormatRGBA8Unorm }
func (f *fixedSurface) Pixmap() *Pixmap                { return f.pm }
func (f *fixedSurface) Flush() error                   { return nil }
func (f *fixedSurface) Close() error                   { return nil }

func TestRenderTargetResizeUnsupported(t *testing.T) {
	target := NewRenderTarget(&fixedSurface{pm: NewPixmap(2, 2)})
	defer target.Close()

	assert.ErrorIs(t, target.Resize(PixelSize{Width: 4, Height: 4}), ErrNotResizable)
}
