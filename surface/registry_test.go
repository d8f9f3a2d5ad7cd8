package surface

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistryHasImageProvider(t *testing.T) {
	assert.Contains(t, globalRegistry.List(), "image")

	s, err := NewSurfaceNamed("image", Options{Size: PixelSize{8, 8}})
	require.NoError(t, err)
	defer s.Close()

	_, ok := s.(*ImageSurface)
	assert.True(t, ok)
}

func TestRegistryPriorityOrder(t *testing.T) {
	r := NewRegistry()
	factory := func(opts Options) (Surface, error) {
		return NewImageSurface(opts), nil
	}
	r.Register("low", 1, factory, nil)
	r.Register("high", 10, factory, nil)
	r.Register("mid", 5, factory, nil)

	assert.Equal(t, []string{"high", "mid", "low"}, r.List())
}

func TestRegistrySkipsUnavailable(t *testing.T) {
	r := NewRegistry()
	r.Register("gpu", 100, func(opts Options) (Surface, error) {
		return NewImageSurface(opts), nil
	}, func() bool { return false })
	r.Register("cpu", 10, func(opts Options) (Surface, error) {
		return NewImageSurface(opts), nil
	}, nil)

	assert.Equal(t, []string{"gpu", "cpu"}, r.List())
	assert.Equal(t, []string{"cpu"}, r.Available())

	s, err := r.NewSurface(Options{Size: PixelSize{4, 4}})
	require.NoError(t, err)
	defer s.Close()

	_, err = r.NewSurfaceNamed("gpu", Options{})
	var unavailable *ProviderUnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, "gpu", unavailable.Name)
}

func TestRegistryNotFound(t *testing.T) {
	r := NewRegistry()
	_, err := r.NewSurfaceNamed("nope", Options{})

	var notFound *ProviderNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "nope", notFound.Name)
}

func TestRegistryEmpty(t *testing.T) {
	r := NewRegistry()
	_, err := r.NewSurface(Options{})
	assert.ErrorIs(t, err, ErrNoProviderAvailable)
}

func TestRegistryReplacesOnReregister(t *testing.T) {
	r := NewRegistry()
	r.Register("image", 10, func(opts Options) (Surface, error) {
		return nil, errors.New("old factory")
	}, nil)
	r.Register("image", 20, func(opts Options) (Surface, error) {
		return NewImageSurface(opts), nil
	}, nil)

	assert.Equal(t, []string{"image"}, r.List())

	p, ok := r.Get("image")
	require.True(t, ok)
	assert.Equal(t, 20, p.Priority)

	s, err := r.NewSurfaceNamed("image", Options{})
	require.NoError(t, err)
	s.Close()
}

func TestRegistryFallsThroughFailingFactory(t *testing.T) {
	r := NewRegistry()
	r.Register("broken", 100, func(opts Options) (Surface, error) {
		return nil, errors.New("out of memory")
	}, nil)
	r.Register("cpu", 10, func(opts Options) (Surface, error) {
		return NewImageSurface(opts), nil
	}, nil)

	s, err := r.NewSurface(Options{Size: PixelSize{4, 4}})
	require.NoError(t, err)
	defer s.Close()

	_, ok := s.(*ImageSurface)
	assert.True(t, ok)
}

func TestRegistryUnregister(t *testing.T) {
	r := NewRegistry()
	r.Register("tmp", 1, func(opts Options) (Surface, error) {
		return NewImageSurface(opts), nil
	}, nil)
	r.Unregister("tmp")

	assert.Empty(t, r.List())
}
