// Package csp solves 9x9 Sudoku puzzles by constraint propagation in the
// style of Norvig: each cell keeps a candidate set, assigning a digit
// eliminates it from the cell's peers, and eliminations that leave a unit
// with a single place for a digit trigger further assignments. Search
// backtracks by copying the candidate state rather than undoing it, so it
// carries none of the pointer-graph invariants of the dancing-links
// solver. Only the classic 9x9 geometry is supported.
package csp

import (
	"context"
	"errors"
	"fmt"
	"math/bits"

	"github.com/mmorckos/sudoku/pkg/grid"
)

const (
	size  = 9
	cells = size * size
	units = 27 // 9 rows + 9 columns + 9 boxes
	// full is the candidate mask with bits 1..9 set.
	full = uint16(0x3FE)
)

var (
	// ErrInvalidClue is wrapped by Solve when a given digit contradicts
	// another clue during initial propagation.
	ErrInvalidClue = errors.New("repeated or invalid clue")

	// ErrUnsolvable is returned when propagation plus search exhaust every
	// candidate assignment.
	ErrUnsolvable = errors.New("puzzle is unsolvable")
)

// unit membership tables, computed once. unitOf[k] lists the three units
// containing cell k; peerOf[k] lists the 20 distinct cells sharing a
// unit with k.
var (
	unitCells [units][]int
	unitOf    [cells][]int
	peerOf    [cells][]int
)

func init() {
	for i := 0; i < size; i++ {
		for j := 0; j < size; j++ {
			k := i*size + j
			row := i
			col := size + j
			box := 2*size + (i/3)*3 + j/3
			for _, u := range []int{row, col, box} {
				unitCells[u] = append(unitCells[u], k)
				unitOf[k] = append(unitOf[k], u)
			}
		}
	}
	for k := 0; k < cells; k++ {
		var seen [cells]bool
		for _, u := range unitOf[k] {
			for _, p := range unitCells[u] {
				if p != k && !seen[p] {
					seen[p] = true
					peerOf[k] = append(peerOf[k], p)
				}
			}
		}
	}
}

// board holds one candidate bitmask per cell; bit d set means digit d is
// still possible. Boards are copied wholesale for backtracking.
type board [cells]uint16

func (b *board) assign(k, v int) bool {
	for d := 1; d <= size; d++ {
		if d != v && !b.eliminate(k, d) {
			return false
		}
	}
	return true
}

func (b *board) eliminate(k, d int) bool {
	bit := uint16(1) << d
	if b[k]&bit == 0 {
		return true
	}
	b[k] &^= bit

	switch bits.OnesCount16(b[k]) {
	case 0:
		return false
	case 1:
		// Naked single: remove the remaining digit from every peer.
		v := bits.TrailingZeros16(b[k])
		for _, p := range peerOf[k] {
			if !b.eliminate(p, v) {
				return false
			}
		}
	}

	// Hidden single: if a unit has exactly one place left for d, put it there.
	for _, u := range unitOf[k] {
		count, where := 0, -1
		for _, p := range unitCells[u] {
			if b[p]&bit != 0 {
				count++
				where = p
			}
		}
		if count == 0 {
			return false
		}
		if count == 1 && !b.assign(where, d) {
			return false
		}
	}
	return true
}

func (b *board) solvedAll() bool {
	for k := range b {
		if bits.OnesCount16(b[k]) != 1 {
			return false
		}
	}
	return true
}

// leastCount returns the unsolved cell with the fewest candidates, or -1
// when every cell is settled.
func (b *board) leastCount() int {
	best, min := -1, 0
	for k := range b {
		n := bits.OnesCount16(b[k])
		if n > 1 && (best == -1 || n < min) {
			best, min = k, n
		}
	}
	return best
}

// Solve returns the completed grid for a 9x9 puzzle, ErrInvalidClue for
// contradictory givens, or ErrUnsolvable when the search space is
// exhausted. ctx cancellation aborts the search between branches.
func Solve(ctx context.Context, g grid.Grid) (grid.Grid, error) {
	if g.Size() != size {
		return nil, fmt.Errorf("constraint propagation requires a 9x9 grid: %w", grid.ErrUnsupportedSize)
	}
	if err := g.Check(); err != nil {
		return nil, err
	}

	var b board
	for k := range b {
		b[k] = full
	}
	for i := 0; i < size; i++ {
		for j := 0; j < size; j++ {
			if v := g[i][j]; v != 0 {
				if !b.assign(i*size+j, v) {
					return nil, fmt.Errorf("%w: %d at row %d, column %d", ErrInvalidClue, v, i+1, j+1)
				}
			}
		}
	}

	out, err := searchBoard(ctx, b)
	if err != nil {
		return nil, err
	}
	return out.grid(), nil
}

// searchBoard is the copy-based backtracking search: pick the unsolved
// cell with the fewest candidates and try each in turn on a fresh copy.
func searchBoard(ctx context.Context, b board) (board, error) {
	if err := ctx.Err(); err != nil {
		return board{}, err
	}
	if b.solvedAll() {
		return b, nil
	}

	k := b.leastCount()
	for d := 1; d <= size; d++ {
		if b[k]&(1<<d) == 0 {
			continue
		}
		next := b
		if !next.assign(k, d) {
			continue
		}
		solved, err := searchBoard(ctx, next)
		if err == nil {
			return solved, nil
		}
		if !errors.Is(err, ErrUnsolvable) {
			return board{}, err
		}
	}
	return board{}, ErrUnsolvable
}

func (b *board) grid() grid.Grid {
	out := grid.New(size)
	for k := range b {
		out[k/size][k%size] = bits.TrailingZeros16(b[k])
	}
	return out
}
