package cache

// ScopedKeyer wraps a Keyer with a prefix so that multiple deployments
// can share one Redis instance without colliding.
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "sudoku:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// PuzzleKey generates a prefixed key for one puzzle's solution.
func (k *ScopedKeyer) PuzzleKey(size int, technique string, gridHash string) string {
	return k.prefix + k.inner.PuzzleKey(size, technique, gridHash)
}
