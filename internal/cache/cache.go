// Package cache memoizes token counts keyed by conversation text, so that
// near-identical rows across log files do not pay for repeated encoding.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// Cache defines the interface for token-count caching
type Cache interface {
	Get(key string) (int, bool)
	Set(key string, count int)
	Clear()
}

// Key generates a cache key from conversation text
func Key(text string) string {
	hash := sha256.Sum256([]byte(text))
	return "convoset:v1:" + hex.EncodeToString(hash[:])
}
