package choice

import (
	"context"
	"log/slog"
	"sync"

	"github.com/ardnew/bspgen/lang"
	"github.com/ardnew/bspgen/log"
)

// Resolver holds the list prompts of one generation run, keyed by [Key],
// and computes each prompt's options at most once.
type Resolver struct {
	registry *Registry
	logger   log.Logger

	mu      sync.Mutex
	entries map[string]*deferred
}

type deferred struct {
	ctx     Context
	input   *lang.Input
	options []Option
	done    bool
}

// ResolverOption configures a [Resolver].
type ResolverOption func(*Resolver)

// WithLogger sets the logger used for debug diagnostics.
func WithLogger(logger log.Logger) ResolverOption {
	return func(r *Resolver) { r.logger = logger }
}

// NewResolver returns a Resolver looking up providers in registry. A nil
// registry resolves every list from its items.
func NewResolver(registry *Registry, opts ...ResolverOption) *Resolver {
	if registry == nil {
		registry = NewRegistry()
	}

	r := &Resolver{registry: registry, entries: make(map[string]*deferred)}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Register records the list descriptor in and its captured context under
// key. It reports false, leaving the table unchanged, when key is already
// registered.
func (r *Resolver) Register(key string, c Context, in *lang.Input) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[key]; ok {
		return false
	}

	r.entries[key] = &deferred{ctx: c, input: in}

	return true
}

// Input returns the list descriptor registered under key.
func (r *Resolver) Input(key string) (*lang.Input, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.entries[key]
	if !ok {
		return nil, false
	}

	return d.input, true
}

// Resolve returns the options of the prompt registered under key. The
// provider runs on the first call only; later calls return the same
// options.
func (r *Resolver) Resolve(ctx context.Context, key string) ([]Option, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.entries[key]
	if !ok {
		return nil, ErrUnknownKey.With(slog.String("key", key))
	}

	if d.done {
		return d.options, nil
	}

	c := d.ctx
	c.Name = key

	options, err := r.Options(ctx, c, d.input)
	if err != nil {
		return nil, err
	}

	d.options, d.done = options, true

	r.logger.DebugContext(ctx, "resolved deferred choice",
		slog.String("key", key),
		slog.Int("options", len(options)),
	)

	return options, nil
}

// Options computes the options of the list descriptor in without caching.
// A gen property names the provider; otherwise the attached items are
// used. An empty result from either source is an error.
func (r *Resolver) Options(
	ctx context.Context,
	c Context,
	in *lang.Input,
) ([]Option, error) {
	var options []Option

	if gen := in.Gen(); gen != "" {
		provider, ok := r.registry.Lookup(gen)
		if !ok {
			return nil, ErrUnknownProvider.
				WithPosition(in.File, in.Line).
				With(slog.String("gen", gen), slog.String("name", in.Name()))
		}

		values, err := provider(ctx, c)
		if err != nil {
			return nil, ErrProvider.
				WithPosition(in.File, in.Line).
				With(slog.String("gen", gen)).
				Wrap(err)
		}

		options = Degenerate(values)
	} else {
		options = Items(in)
	}

	if len(options) == 0 {
		return nil, ErrNoOptions.
			WithPosition(in.File, in.Line).
			With(slog.String("name", in.Name()))
	}

	return options, nil
}
