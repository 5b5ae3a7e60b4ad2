package cache

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// FileCache keeps solved grids on local disk, one JSON entry per puzzle
// key. It backs the solve command, where repeated runs over the same
// puzzle files are common and a daemon is not.
type FileCache struct {
	dir string
}

// NewFileCache opens a file cache rooted at dir, creating the directory
// if needed.
func NewFileCache(dir string) (Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// fileEntry is the on-disk envelope around one cached solution.
type fileEntry struct {
	Solution  []byte    `json:"solution"`
	ExpiresAt time.Time `json:"expiresAt,omitempty"`
}

// Get returns the cached solution for key. Expired or unreadable entries
// are removed and reported as misses; a solve is always the fallback.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var entry fileEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		_ = os.Remove(path)
		return nil, false, nil
	}
	if !entry.ExpiresAt.IsZero() && time.Now().After(entry.ExpiresAt) {
		_ = os.Remove(path)
		return nil, false, nil
	}
	return entry.Solution, true, nil
}

// Set stores a solution under key. A zero ttl stores it without
// expiration; solutions never go stale, so the ttl exists only to bound
// disk usage.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	entry := fileEntry{Solution: data}
	if ttl > 0 {
		entry.ExpiresAt = time.Now().Add(ttl)
	}
	out, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, out, 0o644)
}

// Delete removes the entry for key. A missing entry is not an error.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	err := os.Remove(c.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Close does nothing; entries live until they expire or the cache
// directory is cleared.
func (c *FileCache) Close() error {
	return nil
}

// path maps a puzzle key to its entry file. Keys are re-hashed to a hex
// name and sharded by the first byte so that large batch runs do not
// pile thousands of entries into one directory.
func (c *FileCache) path(key string) string {
	sum := Hash([]byte(key))
	return filepath.Join(c.dir, sum[:2], sum[2:]+".json")
}

// Ensure FileCache implements Cache.
var _ Cache = (*FileCache)(nil)
