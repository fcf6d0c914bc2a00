// Package cache provides the local read-through cache for public
// portfolio reads: memory or Redis backends behind one interface.
package cache

import (
	"context"
	"time"
)

// Cacher is implemented by both backends. Values are opaque []byte so
// one interface covers memory and Redis; all implementations are safe
// for concurrent use.
type Cacher interface {
	// Get returns the cached value, or ErrCacheMiss when the key is
	// absent or expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value. A zero ttl means the backend's default TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes one key.
	Delete(ctx context.Context, key string) error

	// Clear removes all entries.
	Clear(ctx context.Context) error

	// Has reports whether a key exists and has not expired.
	Has(ctx context.Context, key string) (bool, error)

	// Close releases backend resources.
	Close() error
}

// PrefixDeleter is an optional interface for caches that can drop every
// key under a prefix in one call. Both backends implement it.
type PrefixDeleter interface {
	DeleteByPrefix(ctx context.Context, prefix string) error
}

// StatsProvider is an optional interface for backends that track
// counters, surfaced by the admin monitoring endpoint.
type StatsProvider interface {
	Stats() CacheStats
}

// CacheStats holds cache counters.
type CacheStats struct {
	Hits    int64   `json:"hits"`
	Misses  int64   `json:"misses"`
	Sets    int64   `json:"sets"`
	Items   int     `json:"items"`
	HitRate float64 `json:"hit_rate"`
	Size    int64   `json:"size_bytes,omitempty"` // approximate, memory backend only
}

// Error represents an error type for cache operations.
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	// ErrCacheMiss indicates the key was not found in cache or has expired.
	ErrCacheMiss Error = "cache miss"

	// ErrCacheClosed indicates the cache has been closed.
	ErrCacheClosed Error = "cache closed"
)
