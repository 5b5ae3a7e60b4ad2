// Package solver is the puzzle-solving facade. It selects between the
// two solving techniques - constraint propagation and exact-cover
// dancing links - times each solve, and processes batches of puzzles.
//
// The dancing-links matrix is built once per Engine and reused for every
// puzzle of that grid size; the constraint-propagation path allocates per
// puzzle and only handles the classic 9x9 geometry, so larger sizes are
// always routed to dancing links.
package solver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mmorckos/sudoku/pkg/csp"
	"github.com/mmorckos/sudoku/pkg/dlx"
	"github.com/mmorckos/sudoku/pkg/grid"
	"github.com/mmorckos/sudoku/pkg/observability"
)

// Technique names for the two solving strategies.
const (
	TechniqueCSP = "csp"
	TechniqueDLX = "dlx"
)

// DefaultTechnique is used when no technique is configured.
const DefaultTechnique = TechniqueCSP

// ValidTechniques is the set of recognized technique names.
var ValidTechniques = map[string]bool{
	TechniqueCSP: true,
	TechniqueDLX: true,
}

// ValidateTechnique checks that a technique name is recognized.
func ValidateTechnique(t string) error {
	if !ValidTechniques[t] {
		return fmt.Errorf("invalid technique: %q (must be one of: csp, dlx)", t)
	}
	return nil
}

// Result describes one solved (or failed) puzzle.
type Result struct {
	// Grid is the completed grid, nil when the puzzle was not solved.
	Grid grid.Grid

	// Solved reports whether a full assignment was found.
	Solved bool

	// Duration is the processing time for this puzzle.
	Duration time.Duration

	// Columns is the dancing-links diagnostic counter (0 for CSP solves).
	Columns int
}

// Puzzle pairs an input grid with its solve outcome, preserving batch
// order for output formatting.
type Puzzle struct {
	Input grid.Grid
	Result
	Err error
}

// Engine solves puzzles of one fixed grid size. It owns the reusable
// exact-cover matrix and must not be shared between goroutines.
type Engine struct {
	size      int
	technique string
	matrix    *dlx.Matrix
}

// New creates an engine for the given grid size and technique. The
// exact-cover matrix is built eagerly so that construction failures
// surface here rather than on the first solve. An empty technique
// selects the default; sizes above 9 always solve via dancing links
// regardless of the configured technique.
func New(size int, technique string) (*Engine, error) {
	if technique == "" {
		technique = DefaultTechnique
	}
	if err := ValidateTechnique(technique); err != nil {
		return nil, err
	}
	m, err := dlx.New(size)
	if err != nil {
		return nil, err
	}
	return &Engine{size: size, technique: technique, matrix: m}, nil
}

// Size returns the grid size this engine solves.
func (e *Engine) Size() int { return e.size }

// Technique returns the technique that will actually run, accounting for
// the dancing-links fallback on sizes above 9.
func (e *Engine) Technique() string {
	if e.size > 9 {
		return TechniqueDLX
	}
	return e.technique
}

// Solve solves a single puzzle, leaving the engine reusable whatever the
// outcome. Unsolvable puzzles and invalid clues are reported through the
// returned error; ctx cancellation aborts the search.
func (e *Engine) Solve(ctx context.Context, g grid.Grid) (Result, error) {
	technique := e.Technique()
	observability.Solver().OnSolveStart(ctx, e.size, technique)

	var (
		res Result
		err error
	)
	switch technique {
	case TechniqueDLX:
		var stats dlx.Stats
		res.Grid, stats, err = e.matrix.Solve(ctx, g)
		res.Solved = err == nil
		res.Duration = stats.Duration
		res.Columns = stats.Columns
	default:
		start := time.Now()
		res.Grid, err = csp.Solve(ctx, g)
		res.Solved = err == nil
		res.Duration = time.Since(start)
	}

	observability.Solver().OnSolveComplete(ctx, e.size, technique, res.Columns, res.Duration, err)
	return res, err
}

// SolveAll solves a batch in order. A failure on one puzzle (invalid
// clue, unsolvable) is recorded on that puzzle and the batch continues;
// only context cancellation stops the run early. The second return value
// is the number of solved puzzles.
func (e *Engine) SolveAll(ctx context.Context, inputs []grid.Grid) ([]Puzzle, int, error) {
	out := make([]Puzzle, 0, len(inputs))
	wins := 0
	for _, in := range inputs {
		res, err := e.Solve(ctx, in)
		if err != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
			return out, wins, err
		}
		if res.Solved {
			wins++
		}
		out = append(out, Puzzle{Input: in, Result: res, Err: err})
	}
	return out, wins, nil
}
