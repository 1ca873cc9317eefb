// Package cachemanager wraps go-cache behind a small generic interface so
// callers such as the highlight service can swap implementations in tests.
package cachemanager

import (
	"context"
	"time"
)

type CacheManager[K ~string, V any] interface {
	Get(ctx context.Context, key K) (V, bool)
	Set(ctx context.Context, key K, value V, ttl time.Duration)
	Flush(ctx context.Context) error
	Len() int
}
