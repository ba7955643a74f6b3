package dbctx

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"
)

// DefaultName is the registry key of the shared data-access handle.
const DefaultName = "AuthContext"

// Factory builds the shared handle for a name.
type Factory[H any] func(ctx context.Context) (H, error)

// Registry maps names to lazily built, shared handles.
type Registry[H any] struct {
	factories map[string]Factory[H]
	instances map[string]H
	group     singleflight.Group
	mu        sync.RWMutex
}

// NewRegistry creates an empty registry.
func NewRegistry[H any]() *Registry[H] {
	return &Registry[H]{
		factories: make(map[string]Factory[H]),
		instances: make(map[string]H),
	}
}

// Register adds a factory under name. The factory runs on first lookup.
func (r *Registry[H]) Register(name string, f Factory[H]) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.factories[name]; ok {
		return fmt.Errorf("%w: %q", ErrAlreadyRegistered, name)
	}
	r.factories[name] = f
	return nil
}

// RegisterInstance registers an already built handle under name.
func (r *Registry[H]) RegisterInstance(name string, h H) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.factories[name]; ok {
		return fmt.Errorf("%w: %q", ErrAlreadyRegistered, name)
	}
	r.factories[name] = func(context.Context) (H, error) { return h, nil }
	r.instances[name] = h
	return nil
}

// Lookup returns the shared handle registered under name, building it on the
// first call. Concurrent first calls share a single factory invocation.
// A failed factory is not cached; the next Lookup retries.
func (r *Registry[H]) Lookup(ctx context.Context, name string) (H, error) {
	r.mu.RLock()
	h, ok := r.instances[name]
	f, registered := r.factories[name]
	r.mu.RUnlock()

	if ok {
		return h, nil
	}

	var zero H
	if !registered {
		return zero, fmt.Errorf("%w: %q", ErrNotRegistered, name)
	}

	v, err, _ := r.group.Do(name, func() (any, error) {
		r.mu.RLock()
		h, ok := r.instances[name]
		r.mu.RUnlock()
		if ok {
			return lookupResult[H]{h}, nil
		}

		h, err := f(ctx)
		if err != nil {
			return nil, errors.Join(ErrFactoryFailed, err)
		}

		r.mu.Lock()
		r.instances[name] = h
		r.mu.Unlock()
		return lookupResult[H]{h}, nil
	})
	if err != nil {
		return zero, err
	}
	return v.(lookupResult[H]).handle, nil
}

// lookupResult boxes H so nil interface handles survive the trip through any.
type lookupResult[H any] struct {
	handle H
}
