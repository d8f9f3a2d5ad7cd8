package surface

import (
	"errors"
	"sort"
	"sync"
)

// Factory creates a surface from options.
type Factory func(opts Options) (Surface, error)

// Provider describes a registered surface provider.
type Provider struct {
	// Name identifies the provider ("image", "wgpu", ...).
	Name string

	// Priority orders provider selection. Higher wins. Hardware
	// providers register at 100, accelerated-CPU at 50, plain
	// software at 10.
	Priority int

	// Factory creates surfaces for this provider.
	Factory Factory

	// Available reports whether the provider can run here. nil means
	// always available.
	Available func() bool
}

// Registry holds surface providers and selects among them.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]*Provider
}

// NewRegistry creates an empty provider registry.
func NewRegistry() *Registry {
	return &Registry{providers: make(map[string]*Provider)}
}

// globalRegistry backs the package-level functions.
var globalRegistry = NewRegistry()

// Register adds a provider to the default registry. Registering a name
// twice replaces the earlier entry.
func Register(name string, priority int, factory Factory, available func() bool) {
	globalRegistry.Register(name, priority, factory, available)
}

// NewSurface creates a surface using the best available provider from
// the default registry.
func NewSurface(opts Options) (Surface, error) {
	return globalRegistry.NewSurface(opts)
}

// NewSurfaceNamed creates a surface using a specific provider from the
// default registry.
func NewSurfaceNamed(name string, opts Options) (Surface, error) {
	return globalRegistry.NewSurfaceNamed(name, opts)
}

// Register adds a provider. Registering a name twice replaces the
// earlier entry.
func (r *Registry) Register(name string, priority int, factory Factory, available func() bool) {
	if name == "" || factory == nil {
		return
	}
	if available == nil {
		available = func() bool { return true }
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[name] = &Provider{
		Name:      name,
		Priority:  priority,
		Factory:   factory,
		Available: available,
	}
}

// Unregister removes a provider.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.providers, name)
}

// List returns all registered provider names sorted by priority.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sortedNames(false)
}

// Available returns the names of all available providers sorted by
// priority.
func (r *Registry) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sortedNames(true)
}

// Get returns a copy of a provider's registration.
func (r *Registry) Get(name string) (Provider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.providers[name]
	if !ok {
		return Provider{}, false
	}
	return *p, true
}

// NewSurface creates a surface using the best available provider.
// Providers are tried in priority order until one succeeds.
func (r *Registry) NewSurface(opts Options) (Surface, error) {
	available := r.Available()
	if len(available) == 0 {
		return nil, ErrNoProviderAvailable
	}

	var lastErr error
	for _, name := range available {
		s, err := r.NewSurfaceNamed(name, opts)
		if err == nil {
			return s, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

// NewSurfaceNamed creates a surface using a specific provider.
func (r *Registry) NewSurfaceNamed(name string, opts Options) (Surface, error) {
	r.mu.RLock()
	p, ok := r.providers[name]
	r.mu.RUnlock()

	if !ok {
		return nil, &ProviderNotFoundError{Name: name}
	}
	if !p.Available() {
		return nil, &ProviderUnavailableError{Name: name}
	}
	return p.Factory(opts)
}

// sortedNames returns provider names sorted by priority, highest
// first. Must be called with the lock held.
func (r *Registry) sortedNames(onlyAvailable bool) []string {
	if len(r.providers) == 0 {
		return nil
	}

	type entry struct {
		name     string
		priority int
	}
	entries := make([]entry, 0, len(r.providers))
	for name, p := range r.providers {
		if onlyAvailable && !p.Available() {
			continue
		}
		entries = append(entries, entry{name: name, priority: p.Priority})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].priority != entries[j].priority {
			return entries[i].priority > entries[j].priority
		}
		return entries[i].name < entries[j].name
	})

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.name
	}
	return names
}

// ErrNoProviderAvailable is returned when no surface provider is
// registered or available on the current system.
var ErrNoProviderAvailable = errors.New("surface: no provider available")

// ProviderNotFoundError indicates a named provider is not registered.
type ProviderNotFoundError struct {
	Name string
}

func (e *ProviderNotFoundError) Error() string {
	return "surface: provider not found: " + e.Name
}

// ProviderUnavailableError indicates a provider exists but cannot run
// on the current system.
type ProviderUnavailableError struct {
	Name string
}

func (e *ProviderUnavailableError) Error() string {
	return "surface: provider unavailable: " + e.Name
}

// init registers the built-in CPU provider.
func init() {
	Register("image", 10, func(opts Options) (Surface, error) {
		return NewImageSurface(opts), nil
	}, nil)
}
