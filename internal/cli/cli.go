// Package cli implements the sudoku command-line interface.
//
// This package provides commands for solving puzzle files, serving the
// solver over HTTP, inspecting solve history, and managing the solution
// cache. The CLI is built using cobra and supports verbose logging via
// the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - solve: Solve puzzles from a delimited text file
//   - serve: Run the HTTP solving API
//   - history: List stored solve records
//   - cache: Manage the solution cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers
// are passed through context.Context to allow structured progress
// tracking.
package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mmorckos/sudoku/pkg/buildinfo"
)

// appName is used for the binary name and XDG directory layout.
const appName = "sudoku"

// Execute runs the sudoku CLI and returns an error if any command fails.
// This is the main entry point for the CLI application.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all commands
// via loggerFromContext.
func Execute(ctx context.Context) error {
	var (
		verbose    bool
		configFile string
	)

	root := &cobra.Command{
		Use:          appName,
		Short:        "Sudoku solves puzzles of sizes 9, 10, 12, and 16",
		Long:         `Sudoku is a CLI for solving Sudoku puzzles of several grid geometries (9x9, 10x10, 12x12, 16x16) using either constraint propagation or exact-cover dancing links.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&configFile, "config", "", "path to TOML config file")

	root.AddCommand(newSolveCmd(&configFile))
	root.AddCommand(newServeCmd(&configFile))
	root.AddCommand(newHistoryCmd(&configFile))
	root.AddCommand(newCacheCmd(&configFile))
	root.AddCommand(newCompletionCmd())

	return root.ExecuteContext(ctx)
}
