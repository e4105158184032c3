// Package cache stores computed layouts and rendered artifacts.
//
// # Overview
//
// A [Cache] is a byte store keyed by strings with optional expiry. Four
// backends are provided:
//
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [RedisCache]: a Redis server, for shared server deployments
//   - [MongoCache]: a MongoDB collection with a TTL index
//   - [NullCache]: never stores anything
//
// [Open] picks a backend from a URL-like string:
//
//	c, err := cache.Open(ctx, "redis://localhost:6379/0")
//
// # Keys
//
// A [Keyer] derives keys from content hashes and options. Layout keys hash
// the input text together with every layout option, so any change to either
// misses the cache. Artifact keys hash the layout key together with the
// render options.
package cache

import (
	"context"
	"time"
)

// Cache is a key/value byte store.
// Get reports a miss with ok == false and a nil error.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Entry lifetimes.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Clearer is implemented by caches that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) error
}
