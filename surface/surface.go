package surface

import (
	"errors"

	"github.com/gogpu/gputypes"
)

// ErrSurfaceClosed is returned by operations on a closed surface.
var ErrSurfaceClosed = errors.New("surface: surface is closed")

// ErrNotResizable is returned when resizing a surface whose
// framebuffer size is fixed.
var ErrNotResizable = errors.New("surface: surface is not resizable")

// Surface is a framebuffer a compositor frame is rendered into.
//
// Surfaces are not safe for concurrent use. The compositor owns its
// surface and touches it only from the render loop goroutine.
type Surface interface {
	// Size returns the framebuffer dimensions in device pixels.
	Size() PixelSize

	// DPI returns the resolution the surface was sized for.
	// Logical coordinates are scaled by DPI/96 when rendering.
	DPI() float64

	// Format returns the pixel format of the framebuffer.
	Format() gputypes.TextureFormat

	// Pixmap returns the CPU pixels of the surface, or nil if the
	// surface has no CPU-accessible backing store.
	Pixmap() *Pixmap

	// Flush makes all rendering performed so far visible. For CPU
	// surfaces this is a no-op; window-backed surfaces present here.
	Flush() error

	// Close releases the surface. Close is idempotent.
	Close() error
}

// Resizable is implemented by surfaces whose framebuffer can change
// size after creation.
type Resizable interface {
	Surface

	// Resize reallocates the framebuffer. Content is discarded.
	Resize(size PixelSize) error
}

// Options configures surface creation.
type Options struct {
	// Size is the framebuffer size in device pixels.
	Size PixelSize

	// DPI is the target resolution. Zero means 96 (1:1 scaling).
	DPI float64
}

func (o Options) withDefaults() Options {
	if o.DPI <= 0 {
		o.DPI = 96
	}
	if o.Size.Width < 1 {
		o.Size.Width = 1
	}
	if o.Size.Height < 1 {
		o.Size.Height = 1
	}
	return o
}

// ImageSurface is a CPU surface backed by a Pixmap. It is the default
// provider and the one the software rasterizer draws into.
type ImageSurface struct {
	pixmap *Pixmap
	size   PixelSize
	dpi    float64
	closed bool
}

var (
	_ Surface   = (*ImageSurface)(nil)
	_ Resizable = (*ImageSurface)(nil)
)

// NewImageSurface creates a CPU surface with the given options.
func NewImageSurface(opts Options) *ImageSurface {
	opts = opts.withDefaults()
	return &ImageSurface{
		pixmap: NewPixmap(opts.Size.Width, opts.Size.Height),
		size:   opts.Size,
		dpi:    opts.DPI,
	}
}

// Size returns the framebuffer dimensions in device pixels.
func (s *ImageSurface) Size() PixelSize {
	return s.size
}

// DPI returns the resolution the surface was sized for.
func (s *ImageSurface) DPI() float64 {
	return s.dpi
}

// Format returns the pixel format of the framebuffer.
func (s *ImageSurface) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

// Pixmap returns the backing pixel buffer.
func (s *ImageSurface) Pixmap() *Pixmap {
	if s.closed {
		return nil
	}
	return s.pixmap
}

// Flush implements Surface. CPU surfaces have nothing to present.
func (s *ImageSurface) Flush() error {
	if s.closed {
		return ErrSurfaceClosed
	}
	return nil
}

// Resize reallocates the framebuffer at the new size. Existing content
// is discarded.
func (s *ImageSurface) Resize(size PixelSize) error {
	if s.closed {
		return ErrSurfaceClosed
	}
	opts := Options{Size: size, DPI: s.dpi}.withDefaults()
	if opts.Size == s.size {
		return nil
	}
	s.pixmap = NewPixmap(opts.Size.Width, opts.Size.Height)
	s.size = opts.Size
	return nil
}

// Close releases the surface. Close is idempotent.
func (s *ImageSurface) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.pixmap = nil
	return nil
}
