package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/mmorckos/sudoku/internal/api"
	"github.com/mmorckos/sudoku/pkg/solver"
	"github.com/mmorckos/sudoku/pkg/store"
)

// serveShutdownGrace bounds graceful shutdown after an interrupt.
const serveShutdownGrace = 10 * time.Second

func newServeCmd(configFile *string) *cobra.Command {
	var (
		addr      string
		technique string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP solving API",
		Long: `Serve starts an HTTP server exposing solve, validate, and history
endpoints. One exact-cover matrix per configured grid size is built at
startup and reused for every request.`,
		Example: `  sudoku serve
  sudoku serve --addr :9090 --technique dlx`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configFile)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("addr") {
				addr = cfg.Server.Addr
			}
			if !cmd.Flags().Changed("technique") {
				technique = cfg.Solver.Technique
			}
			return runServe(cmd.Context(), cfg, addr, technique)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address (host:port)")
	cmd.Flags().StringVarP(&technique, "technique", "t", solver.DefaultTechnique, "solving technique for 9x9 grids (csp or dlx)")

	return cmd
}

func runServe(ctx context.Context, cfg Config, addr, technique string) error {
	logger := loggerFromContext(ctx)

	engines := make(map[int]*solver.Engine, len(cfg.Server.Sizes))
	for _, size := range cfg.Server.Sizes {
		e, err := solver.New(size, technique)
		if err != nil {
			return fmt.Errorf("building engine for size %d: %w", size, err)
		}
		engines[size] = e
	}
	logger.Debug("engines ready", "sizes", cfg.Server.Sizes)

	c := openCache(cfg.Cache, logger)
	defer c.Close()

	st, err := openStore(ctx, cfg.Store)
	if err != nil {
		return err
	}
	if st != nil {
		defer st.Close(context.Background())
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           api.New(engines, c, st, logger).Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), serveShutdownGrace)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	}
}

// openStore builds the history store selected by cfg, or nil when history
// is disabled. Unlike the cache, a misconfigured store is an error: losing
// history silently would defeat its purpose.
func openStore(ctx context.Context, cfg StoreConfig) (store.Store, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	if cfg.MongoURI != "" {
		return store.NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.MongoCollection)
	}
	dir := cfg.Dir
	if dir == "" {
		dir = dataDir()
	}
	return store.NewFileStore(dir)
}
