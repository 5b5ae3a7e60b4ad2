// Package cache provides the solution cache used by the CLI and the HTTP
// API to skip re-solving identical puzzles. Entries are keyed by grid
// size, technique, and a content hash of the input grid, so two textually
// different files containing the same puzzle share one entry.
//
// Three backends exist: FileCache for local CLI usage, RedisCache for the
// served API, and NullCache to disable caching entirely.
package cache

import (
	"context"
	"time"
)

// Cache is the storage interface shared by all backends.
// Get returns (data, true, nil) on a hit and (nil, false, nil) on a miss;
// errors are reserved for backend failures.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Keyer generates cache keys for solved puzzles.
type Keyer interface {
	PuzzleKey(size int, technique string, gridHash string) string
}

// DefaultKeyer hashes the key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer { return &DefaultKeyer{} }

// PuzzleKey generates a key for one puzzle's solution. gridHash should be
// Hash applied to the canonical text form of the input grid.
func (k *DefaultKeyer) PuzzleKey(size int, technique string, gridHash string) string {
	return hashKey("puzzle", size, technique, gridHash)
}
