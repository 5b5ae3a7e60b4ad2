// Package dlx solves Sudoku puzzles as exact-cover problems using
// Knuth's Algorithm X over dancing links.
//
// A Matrix is built once per grid size and holds the complete 0/1
// incidence structure as a quad-linked sparse graph: one logical row per
// (cell, digit) placement and four constraint columns per row (row-digit,
// column-digit, cell-occupancy, box-digit). Covering and uncovering are
// exact structural inverses, so a Matrix is restored to its pristine
// state after every solve and can be reused across puzzles.
//
// Nodes live in an arena and reference each other through stable indices
// rather than pointers; links are associative, never owning, and nodes
// are only released when the whole Matrix is garbage collected.
//
// # Usage
//
//	m, err := dlx.New(9)
//	if err != nil {
//	    return err
//	}
//	solution, stats, err := m.Solve(ctx, puzzle)
package dlx

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mmorckos/sudoku/pkg/grid"
)

var (
	// ErrEmptyColumn is returned by [New] when a constraint column ends up
	// with no candidate rows. This indicates a defect in the geometry
	// table, not bad user input; it cannot occur for the supported sizes.
	ErrEmptyColumn = errors.New("constraint column has no candidate rows")

	// ErrUnsolvable is returned by [Matrix.Solve] when the search exhausts
	// every assignment without completing the grid.
	ErrUnsolvable = errors.New("puzzle is unsolvable")
)

// ClueError reports a given digit that conflicts with the exact-cover
// structure: either out of range or duplicating another clue in the same
// row, column, or box. Row and Col are 0-indexed; Digit is the 1-based
// value from the input grid.
type ClueError struct {
	Row, Col, Digit int
}

func (e *ClueError) Error() string {
	return fmt.Sprintf("repeated or invalid clue %d at row %d, column %d", e.Digit, e.Row+1, e.Col+1)
}

// Stats describes one solve run.
type Stats struct {
	// Columns is the total number of candidate columns examined by the
	// search. Purely diagnostic; it has no effect on the result.
	Columns int

	// Duration is the wall-clock time spent in Solve.
	Duration time.Duration
}

// Solve locates and covers the rows for the puzzle's clues, runs
// Algorithm X on the reduced matrix, and returns the completed grid.
// Whatever the outcome, all covers are unwound in exact reverse order
// before returning, so the matrix is pristine for the next puzzle.
//
// An unsupported grid shape or out-of-range value fails before any cover
// is applied. A clue that cannot be located returns a *ClueError. An
// exhausted search returns ErrUnsolvable. Cancelling ctx aborts the
// search between steps and propagates ctx.Err(); the matrix is still
// restored.
func (m *Matrix) Solve(ctx context.Context, g grid.Grid) (grid.Grid, Stats, error) {
	start := time.Now()
	m.solved = false
	m.explored = 0
	m.sol = m.sol[:0]

	if g.Size() != m.size {
		return nil, Stats{}, fmt.Errorf("grid size %d does not match matrix size %d", g.Size(), m.size)
	}
	if err := g.Check(); err != nil {
		return nil, Stats{}, err
	}

	clues, err := m.loadClues(g)
	if err != nil {
		return nil, m.stats(start), err
	}

	solved, searchErr := m.search(ctx)
	m.solved = solved

	var out grid.Grid
	if solved {
		out = m.extract()
	}
	m.unloadClues(clues)

	if searchErr != nil {
		return nil, m.stats(start), searchErr
	}
	if !solved {
		return nil, m.stats(start), ErrUnsolvable
	}
	return out, m.stats(start), nil
}

// Solved reports whether the most recent Solve call found a solution.
func (m *Matrix) Solved() bool { return m.solved }

// Size returns the grid size the matrix was built for.
func (m *Matrix) Size() int { return m.size }

func (m *Matrix) stats(start time.Time) Stats {
	return Stats{Columns: m.explored, Duration: time.Since(start)}
}

// extract decodes the solution stack into a fresh grid. Every stacked
// node carries its placement triple; digits are stored 0-based.
func (m *Matrix) extract() grid.Grid {
	out := grid.New(m.size)
	for _, id := range m.sol {
		nd := &m.nodes[id]
		out[nd.row][nd.col] = int(nd.digit) + 1
	}
	return out
}
