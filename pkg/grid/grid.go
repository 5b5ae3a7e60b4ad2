// Package grid provides the puzzle grid type shared by every solver,
// together with the box-partition geometry table, text parsing of puzzle
// files, and output formatting.
//
// A grid is a square matrix of digits where 0 marks a blank cell and
// 1..n marks a clue or a solved value. Grids of sizes 9, 10, 12, and 16
// are supported; each size has a fixed rectangular box partition described
// by GeometryFor.
package grid

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedSize is returned by [GeometryFor] when the grid size is
	// not one of 9, 10, 12, or 16.
	ErrUnsupportedSize = errors.New("unsupported grid size")

	// ErrBadShape is returned by [Grid.Check] when the grid is not a square
	// matrix of its declared size.
	ErrBadShape = errors.New("grid is not square")
)

// Grid is a square puzzle grid. Cell values are 0 (blank) or 1..Size().
// The zero value is an empty, unusable grid - use New or a parser.
type Grid [][]int

// New returns an all-blank grid of the given size.
func New(size int) Grid {
	g := make(Grid, size)
	for i := range g {
		g[i] = make([]int, size)
	}
	return g
}

// Size returns the side length of the grid.
func (g Grid) Size() int { return len(g) }

// Clone returns a deep copy of the grid.
func (g Grid) Clone() Grid {
	out := make(Grid, len(g))
	for i, row := range g {
		out[i] = make([]int, len(row))
		copy(out[i], row)
	}
	return out
}

// Check verifies that the grid is square and that every cell value lies in
// 0..Size(). It returns ErrBadShape for a ragged or empty grid and a
// descriptive error for an out-of-range cell.
func (g Grid) Check() error {
	n := len(g)
	if n == 0 {
		return ErrBadShape
	}
	for i, row := range g {
		if len(row) != n {
			return fmt.Errorf("%w: row %d has %d cells, want %d", ErrBadShape, i+1, len(row), n)
		}
		for j, v := range row {
			if v < 0 || v > n {
				return fmt.Errorf("cell (%d,%d): value %d out of range 0..%d", i+1, j+1, v, n)
			}
		}
	}
	return nil
}

// Blanks returns the number of empty cells.
func (g Grid) Blanks() int {
	count := 0
	for _, row := range g {
		for _, v := range row {
			if v == 0 {
				count++
			}
		}
	}
	return count
}

// Equal reports whether two grids have identical shape and cell values.
func (g Grid) Equal(other Grid) bool {
	if len(g) != len(other) {
		return false
	}
	for i := range g {
		if len(g[i]) != len(other[i]) {
			return false
		}
		for j := range g[i] {
			if g[i][j] != other[i][j] {
				return false
			}
		}
	}
	return true
}
