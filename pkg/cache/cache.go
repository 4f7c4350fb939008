// Package cache provides the key-value cache capability used by gavtree.
//
// A [Cache] stores opaque bytes under string keys with a per-entry TTL. Set
// overwrites, so a key never holds more than one entry. Backends:
//
//   - [NullCache]: stores nothing (caching disabled)
//   - [MemoryCache]: process-local map, for the API server and tests
//   - [FileCache]: one JSON file per key, for the CLI
//   - [RedisCache]: shared cache for API replicas
//   - [MongoCache]: durable cache with a TTL index on expires_at
//
// Keys are built by a [Keyer] so every layer agrees on them. TTL classes
// follow what each key holds (see [TTLTree] and friends).
//
// Callers treat every cache error as a miss. A broken cache slows a request
// down; it never fails one.
package cache

import (
	"context"
	"encoding/json"
	"time"
)

// TTL classes.
const (
	TTLTree            = 24 * time.Hour   // Resolved dependency trees
	TTLVersions        = 6 * time.Hour    // Version lists and artifact info
	TTLSearch          = 10 * time.Minute // Search results
	TTLVulnerabilities = time.Hour        // Vulnerability reports
	TTLHTTP            = 24 * time.Hour   // Raw registry responses (POMs, metadata)
)

// Cache is a byte-oriented key-value store with expiring entries.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the entry for key. A missing or expired entry is a miss
	// (false, nil), not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key, replacing any previous entry. A ttl of
	// zero or less means the entry does not expire.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Clearer is implemented by caches that can drop every entry at once.
type Clearer interface {
	Clear(ctx context.Context) error
}

// GetJSON loads key into v. It reports a hit only if the entry exists and
// decodes; a corrupt entry is a miss.
func GetJSON(ctx context.Context, c Cache, key string, v any) (bool, error) {
	data, ok, err := c.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, nil
	}
	return true, nil
}

// SetJSON stores v under key as JSON.
func SetJSON(ctx context.Context, c Cache, key string, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.Set(ctx, key, data, ttl)
}
