package cache

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"
)

// Cache is a typed key-value store with expiration.
//
// Set TTL semantics: positive expires after the duration, zero uses the
// backend default, negative never expires.
type Cache[V any] interface {
	// Get returns ErrNotFound for missing or expired keys.
	Get(ctx context.Context, key string) (V, error)
	Set(ctx context.Context, key string, value V, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Loader is a read-through cache. Concurrent misses for the same key share
// one call to the load function.
type Loader[V any] struct {
	cache Cache[V]
	group singleflight.Group
	ttl   time.Duration
}

// NewLoader wraps c. Loaded values are stored with ttl (zero = backend default).
func NewLoader[V any](c Cache[V], ttl time.Duration) *Loader[V] {
	return &Loader[V]{cache: c, ttl: ttl}
}

// Get returns the cached value for key or loads, stores and returns it.
// Load errors are returned and nothing is cached. Cache write failures are ignored.
func (l *Loader[V]) Get(ctx context.Context, key string, load func(context.Context) (V, error)) (V, error) {
	if v, err := l.cache.Get(ctx, key); err == nil {
		return v, nil
	}

	v, err, _ := l.group.Do(key, func() (any, error) {
		val, err := load(ctx)
		if err != nil {
			return nil, err
		}
		_ = l.cache.Set(ctx, key, val, l.ttl)
		return boxed[V]{val}, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return v.(boxed[V]).v, nil
}

// Forget drops key from the underlying cache.
func (l *Loader[V]) Forget(ctx context.Context, key string) error {
	return l.cache.Delete(ctx, key)
}

type boxed[V any] struct {
	v V
}
