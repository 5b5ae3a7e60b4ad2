package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mmorckos/sudoku/pkg/cache"
)

// openCache builds the cache backend selected by cfg. A backend failure
// is downgraded to a warning and the null cache, so solving keeps working
// when Redis is unreachable or the cache directory cannot be created.
func openCache(cfg CacheConfig, logger *charmlog.Logger) cache.Cache {
	if !cfg.Enabled {
		return cache.NewNullCache()
	}
	if cfg.RedisAddr != "" {
		c, err := cache.NewRedisCache(context.Background(), cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			logger.Warn("redis cache unavailable, caching disabled", "addr", cfg.RedisAddr, "err", err)
			return cache.NewNullCache()
		}
		logger.Debug("using redis cache", "addr", cfg.RedisAddr)
		return c
	}
	dir := resolveCacheDir(cfg)
	c, err := cache.NewFileCache(dir)
	if err != nil {
		logger.Warn("file cache unavailable, caching disabled", "dir", dir, "err", err)
		return cache.NewNullCache()
	}
	logger.Debug("using file cache", "dir", dir)
	return c
}

// resolveCacheDir returns the cache directory configured in cfg, falling
// back to the XDG default. Every command that touches the file cache
// resolves the directory through this, so solve, serve, and the cache
// subcommands all agree on where entries live.
func resolveCacheDir(cfg CacheConfig) string {
	if cfg.Dir != "" {
		return cfg.Dir
	}
	return cacheDir()
}

func newCacheCmd(configFile *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the solution cache",
		Long:  `Cache provides subcommands to inspect and clear the local solution cache.`,
	}
	cmd.AddCommand(newCacheClearCmd(configFile))
	cmd.AddCommand(newCachePathCmd(configFile))
	return cmd
}

func newCacheClearCmd(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached solutions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configFile)
			if err != nil {
				return err
			}
			dir := resolveCacheDir(cfg.Cache)
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				printInfo("cache is already empty")
				return nil
			}
			if err := os.RemoveAll(dir); err != nil {
				return fmt.Errorf("clearing cache: %w", err)
			}
			printSuccess("Cleared cache at %s", dir)
			return nil
		},
	}
}

func newCachePathCmd(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configFile)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), resolveCacheDir(cfg.Cache))
			return nil
		},
	}
}
