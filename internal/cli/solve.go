package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mmorckos/sudoku/pkg/cache"
	"github.com/mmorckos/sudoku/pkg/grid"
	"github.com/mmorckos/sudoku/pkg/solver"
)

// solveCacheTTL bounds how long CLI solve results stay cached on disk.
const solveCacheTTL = 7 * 24 * time.Hour

func newSolveCmd(configFile *string) *cobra.Command {
	var (
		size      int
		technique string
		output    string
		timeout   time.Duration
		display   bool
		noCache   bool
	)

	cmd := &cobra.Command{
		Use:   "solve <file>",
		Short: "Solve puzzles from a delimited text file",
		Long: `Solve reads one or more puzzles from a text file and prints solutions.

Each puzzle is a block of rows with cells separated by spaces, commas,
semicolons, or periods; zero marks a blank cell. Blank lines between
puzzles are ignored.

Sizes above 9 always solve with dancing links; the constraint
propagation technique only supports the classic 9x9 geometry.`,
		Example: `  sudoku solve puzzles.txt
  sudoku solve --size 16 --output solved.txt hard16.txt
  sudoku solve --technique dlx --display puzzles.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configFile)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("size") {
				size = cfg.Solver.Size
			}
			if !cmd.Flags().Changed("technique") {
				technique = cfg.Solver.Technique
			}
			if noCache {
				cfg.Cache.Enabled = false
			}
			return runSolve(cmd.Context(), cfg, args[0], size, technique, output, timeout, display)
		},
	}

	cmd.Flags().IntVarP(&size, "size", "s", 9, "grid size (9, 10, 12, or 16)")
	cmd.Flags().StringVarP(&technique, "technique", "t", solver.DefaultTechnique, "solving technique (csp or dlx)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write solutions to a file instead of stdout")
	cmd.Flags().DurationVar(&timeout, "time", 0, "abort solving after this duration (e.g. 30s)")
	cmd.Flags().BoolVar(&display, "display", false, "render solved boards with box borders")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the solution cache")

	return cmd
}

func runSolve(ctx context.Context, cfg Config, path string, size int, technique string, output string, timeout time.Duration, display bool) error {
	logger := loggerFromContext(ctx)

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	puzzles, err := grid.ParseAll(f, size)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(puzzles) == 0 {
		printWarning("no puzzles found in %s", path)
		return nil
	}
	logger.Debug("parsed input", "path", path, "puzzles", len(puzzles), "size", size)

	engine, err := solver.New(size, technique)
	if err != nil {
		return err
	}
	if engine.Technique() != technique {
		logger.Debug("technique overridden for large grid", "requested", technique, "using", engine.Technique())
	}

	c := openCache(cfg.Cache, logger)
	defer c.Close()
	keyer := cache.NewDefaultKeyer()

	prog := newProgress(logger)
	results := make([]solver.Puzzle, 0, len(puzzles))
	cachedHits := make([]bool, len(puzzles))
	wins := 0

	for i, in := range puzzles {
		key := keyer.PuzzleKey(size, engine.Technique(), cache.Hash([]byte(in.String())))
		if data, hit, cerr := c.Get(ctx, key); cerr == nil && hit {
			var solution grid.Grid
			if json.Unmarshal(data, &solution) == nil {
				results = append(results, solver.Puzzle{
					Input:  in,
					Result: solver.Result{Grid: solution, Solved: true},
				})
				cachedHits[i] = true
				wins++
				continue
			}
		}

		res, serr := engine.Solve(ctx, in)
		if serr != nil && (errors.Is(serr, context.Canceled) || errors.Is(serr, context.DeadlineExceeded)) {
			return serr
		}
		if res.Solved {
			wins++
			if data, merr := json.Marshal(res.Grid); merr == nil {
				if cerr := c.Set(ctx, key, data, solveCacheTTL); cerr != nil {
					logger.Warn("cache set failed", "err", cerr)
				}
			}
		}
		results = append(results, solver.Puzzle{Input: in, Result: res, Err: serr})
	}
	prog.done(fmt.Sprintf("Processed %d puzzle(s)", len(results)))

	if err := writeResults(results, output); err != nil {
		return err
	}

	for i, p := range results {
		if display {
			fmt.Println()
			if p.Solved {
				fmt.Println(renderBoard(p.Grid, p.Input))
			} else {
				fmt.Println(renderBoard(p.Input, nil))
			}
		}
		switch {
		case p.Solved:
			printSolveStats(engine.Technique(), p.Duration.Milliseconds(), p.Columns, cachedHits[i])
		default:
			printError("puzzle %d: %v", i+1, p.Err)
		}
	}

	if wins == len(results) {
		printSuccess("Solved %d of %d puzzle(s)", wins, len(results))
	} else {
		printWarning("Solved %d of %d puzzle(s)", wins, len(results))
	}
	if output != "" {
		printFile(output)
	}
	return nil
}

// writeResults writes solutions in input order, substituting the unsolved
// banner for failed puzzles. An empty path writes to stdout.
func writeResults(results []solver.Puzzle, output string) error {
	w := os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	for i, p := range results {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if !p.Solved {
			fmt.Fprintln(w, grid.UnsolvedBanner)
			continue
		}
		if err := grid.Write(w, p.Grid); err != nil {
			return err
		}
	}
	return nil
}
