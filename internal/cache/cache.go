// Package cache provides document caching for archive fetches: an
// in-memory tier for hot lookups and an optional disk tier so that
// long multi-decade crawls can be interrupted and resumed without
// refetching documents already seen.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is the interface shared by all cache tiers.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a stable cache key from a document URL.
func Key(url string) string {
	sum := sha256.Sum256([]byte(url))
	return "fundtrace:v1:" + hex.EncodeToString(sum[:])
}
