package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// hashKey builds a puzzle cache key of the form prefix:hash(parts...).
// The parts (grid size, technique, grid hash) are JSON-encoded before
// hashing so that no delimiter inside a part can collide with another
// combination. The full SHA-256 digest is kept; truncating would invite
// collisions between distinct puzzles.
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(sum[:]))
}

// Hash returns the hex SHA-256 digest of data. Callers hash the
// canonical text form of an input grid with it, so two files containing
// the same puzzle share one cache entry.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
