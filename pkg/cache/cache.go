// Package cache stores computed signatures, labellings and symmetry classes
// keyed by graph hash and options.
//
// Backends share the [Cache] interface: [NullCache] disables caching,
// [FileCache] keeps one JSON file per entry for CLI use, [MemoryCache] is a
// bounded LRU for the server, and [RedisCache], [BadgerCache] and
// [MongoCache] persist entries in external or embedded stores. [Open]
// selects a backend from a URL.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key-value store with per-entry expiry.
// Implementations are safe for concurrent use.
type Cache interface {
	// Get returns the value for key and whether it was found.
	// Expired entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl <= 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Clearer is implemented by caches that can drop every entry at once.
type Clearer interface {
	// Clear removes all entries and returns how many were removed, or -1
	// when the backend cannot count them.
	Clear(ctx context.Context) (int, error)
}

// Default TTLs.
const (
	TTLSignature = 7 * 24 * time.Hour
	TTLLabelling = 7 * 24 * time.Hour
	TTLClasses   = 7 * 24 * time.Hour
)
