package choice

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/spf13/afero"

	"github.com/ardnew/bspgen/substrate"
)

// Provider returns the options of a list prompt. A provider must return at
// least one option.
type Provider func(ctx context.Context, c Context) ([]string, error)

// Registry maps dotted provider names, as given by the gen property, to
// providers.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]Provider
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{providers: make(map[string]Provider)}
}

// DefaultRegistry returns a Registry holding the built-in providers:
//
//	bsp.arch.all  the architectures with a template tree in fs
func DefaultRegistry(fs afero.Fs) *Registry {
	r := NewRegistry()

	r.Register("bsp.arch.all", func(_ context.Context, c Context) ([]string, error) {
		return substrate.Archs(fs, c.ScriptsPath)
	})

	return r
}

// Register binds name to p, replacing any previous binding.
func (r *Registry) Register(name string, p Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.providers[name] = p
}

// Lookup returns the provider bound to name.
func (r *Registry) Lookup(name string) (Provider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.providers[name]

	return p, ok
}

// Names returns the sorted names of all registered providers.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Sorted(maps.Keys(r.providers))
}
