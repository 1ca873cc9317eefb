package cachemanager

import (
	"context"
	"time"
)

// ReadThroughCache computes missing values with fn and stores them.
// Errors from fn are returned as-is and never cached. When keep returns
// false for a freshly computed value it is returned but not stored.
type ReadThroughCache[K ~string, V any, I any] struct {
	cache           CacheManager[K, V]
	fn              func(ctx context.Context, input I) (V, error)
	keep            func(I, V) bool
	shouldSkipCache bool
}

func NewReadThroughCache[K ~string, V any, I any](
	cache CacheManager[K, V],
	fn func(ctx context.Context, input I) (V, error),
	shouldSkipCache bool,
) *ReadThroughCache[K, V, I] {
	return &ReadThroughCache[K, V, I]{
		cache:           cache,
		fn:              fn,
		shouldSkipCache: shouldSkipCache,
	}
}

// WithKeep installs a predicate deciding whether a computed value may be cached.
func (r *ReadThroughCache[K, V, I]) WithKeep(keep func(input I, value V) bool) *ReadThroughCache[K, V, I] {
	r.keep = keep
	return r
}

func (r *ReadThroughCache[K, V, I]) Get(ctx context.Context, key K, input I, ttl time.Duration) (V, error) {
	if r.shouldSkipCache {
		return r.fn(ctx, input)
	}

	if value, ok := r.cache.Get(ctx, key); ok {
		return value, nil
	}

	return r.compute(ctx, key, input, ttl)
}

func (r *ReadThroughCache[K, V, I]) compute(ctx context.Context, key K, input I, ttl time.Duration) (V, error) {
	value, err := r.fn(ctx, input)
	if err != nil {
		return value, err
	}

	if r.keep == nil || r.keep(input, value) {
		r.cache.Set(ctx, key, value, ttl)
	}

	return value, nil
}
