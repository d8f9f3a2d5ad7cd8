package surface

import "sync"

// PixmapPool reuses layer pixmaps across frames.
//
// Pixmaps are bucketed by exact size. Compositor layers are almost
// always target-sized or match a stable clip, so exact-size buckets
// hit on the second frame and stay hot from then on.
//
// All methods are safe for concurrent use.
type PixmapPool struct {
	mu      sync.Mutex
	buckets map[PixelSize][]*Pixmap
	maxSize int
}

// NewPixmapPool creates a pool retaining at most maxPerBucket pixmaps
// of each size. Zero means unlimited.
func NewPixmapPool(maxPerBucket int) *PixmapPool {
	return &PixmapPool{
		buckets: make(map[PixelSize][]*Pixmap),
		maxSize: maxPerBucket,
	}
}

// Get returns a cleared pixmap of the given size, reusing a pooled one
// when available.
func (p *PixmapPool) Get(size PixelSize) *Pixmap {
	if size.Width < 0 {
		size.Width = 0
	}
	if size.Height < 0 {
		size.Height = 0
	}

	p.mu.Lock()
	bucket := p.buckets[size]
	if n := len(bucket); n > 0 {
		pm := bucket[n-1]
		p.buckets[size] = bucket[:n-1]
		p.mu.Unlock()

		clear(pm.Pix())
		return pm
	}
	p.mu.Unlock()

	return NewPixmap(size.Width, size.Height)
}

// Put returns a pixmap to the pool. Full buckets discard the pixmap.
func (p *PixmapPool) Put(pm *Pixmap) {
	if pm == nil {
		return
	}
	size := pm.Size()

	p.mu.Lock()
	defer p.mu.Unlock()

	bucket := p.buckets[size]
	if p.maxSize > 0 && len(bucket) >= p.maxSize {
		return
	}
	p.buckets[size] = append(bucket, pm)
}

// Warmup preallocates n pixmaps of the given size so the first frames
// render without allocation. The bucket cap still applies.
func (p *PixmapPool) Warmup(size PixelSize, n int) {
	if size.IsEmpty() {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	bucket := p.buckets[size]
	for len(bucket) < n {
		if p.maxSize > 0 && len(bucket) >= p.maxSize {
			break
		}
		bucket = append(bucket, NewPixmap(size.Width, size.Height))
	}
	p.buckets[size] = bucket
}

// Len returns the number of pooled pixmaps of the given size.
func (p *PixmapPool) Len(size PixelSize) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.buckets[size])
}
