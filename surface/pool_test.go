package surface

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xDB6/Avalonia/media"
)

func TestPixmapPoolReusesAndClears(t *testing.T) {
	pool := NewPixmapPool(4)
	size := PixelSize{8, 8}

	pm := pool.Get(size)
	require.Equal(t, size, pm.Size())
	pm.Clear(media.RGB(1, 0, 0))
	pool.Put(pm)

	again := pool.Get(size)
	assert.Same(t, pm, again)
	for _, b := range again.Pix() {
		require.Zero(t, b)
	}
}

func TestPixmapPoolBucketCap(t *testing.T) {
	pool := NewPixmapPool(1)
	size := PixelSize{4, 4}

	pool.Put(NewPixmap(size.Width, size.Height))
	pool.Put(NewPixmap(size.Width, size.Height))

	assert.Equal(t, 1, pool.Len(size))
}

func TestPixmapPoolWarmup(t *testing.T) {
	pool := NewPixmapPool(8)
	size := PixelSize{16, 16}

	pool.Warmup(size, 3)
	assert.Equal(t, 3, pool.Len(size))

	pool.Get(size)
	assert.Equal(t, 2, pool.Len(size))

	// Warmup never exceeds the bucket cap.
	pool.Warmup(size, 100)
	assert.Equal(t, 8, pool.Len(size))
}

func TestPixmapPoolSeparateBuckets(t *testing.T) {
	pool := NewPixmapPool(4)

	a := pool.Get(PixelSize{4, 4})
	b := pool.Get(PixelSize{8, 8})
	pool.Put(a)
	pool.Put(b)

	got := pool.Get(PixelSize{8, 8})
	assert.Same(t, b, got)
	assert.Equal(t, 1, pool.Len(PixelSize{4, 4}))
}
