package dbctx

import "context"

// overrideKey is parameterized by H so handles of different types never collide.
type overrideKey[H any] struct{}

// WithHandle returns a copy of ctx carrying h as the data-access override.
// Parent and sibling contexts are not affected.
func WithHandle[H any](ctx context.Context, h H) context.Context {
	return context.WithValue(ctx, overrideKey[H]{}, h)
}

// FromContext returns the override carried by ctx, if any.
func FromContext[H any](ctx context.Context) (H, bool) {
	h, ok := ctx.Value(overrideKey[H]{}).(H)
	return h, ok
}

// Resolver resolves handles: context override first, registry fallback second.
type Resolver[H any] struct {
	registry *Registry[H]
	name     string
}

// ResolverOption configures a Resolver.
type ResolverOption[H any] func(*Resolver[H])

// WithName sets the registry key used for the fallback. Defaults to DefaultName.
func WithName[H any](name string) ResolverOption[H] {
	return func(r *Resolver[H]) {
		if name != "" {
			r.name = name
		}
	}
}

// NewResolver creates a Resolver backed by reg.
func NewResolver[H any](reg *Registry[H], opts ...ResolverOption[H]) *Resolver[H] {
	r := &Resolver[H]{registry: reg, name: DefaultName}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Handle returns the override carried by ctx, or the shared registry instance.
func (r *Resolver[H]) Handle(ctx context.Context) (H, error) {
	if h, ok := FromContext[H](ctx); ok {
		return h, nil
	}
	return r.registry.Lookup(ctx, r.name)
}

// Name returns the registry key used for the fallback.
func (r *Resolver[H]) Name() string {
	return r.name
}
