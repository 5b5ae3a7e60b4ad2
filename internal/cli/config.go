package cli

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/mmorckos/sudoku/pkg/solver"
)

// Config holds the CLI configuration, loaded from a TOML file.
// Flags override config values, which override built-in defaults.
type Config struct {
	Solver SolverConfig `toml:"solver"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
	Store  StoreConfig  `toml:"store"`
}

// SolverConfig configures puzzle solving defaults.
type SolverConfig struct {
	// Size is the default grid size when --size is not given.
	Size int `toml:"size"`
	// Technique is the default solving technique ("csp" or "dlx").
	Technique string `toml:"technique"`
}

// CacheConfig configures the solution cache.
type CacheConfig struct {
	// Enabled toggles caching; --no-cache disables it for one run.
	Enabled bool `toml:"enabled"`
	// Dir overrides the file cache directory.
	Dir string `toml:"dir"`
	// RedisAddr selects the Redis backend when non-empty (host:port).
	RedisAddr string `toml:"redis_addr"`
	// RedisPassword authenticates against Redis when required.
	RedisPassword string `toml:"redis_password"`
	// RedisDB selects the Redis logical database.
	RedisDB int `toml:"redis_db"`
}

// ServerConfig configures the serve command.
type ServerConfig struct {
	// Addr is the listen address (host:port).
	Addr string `toml:"addr"`
	// Sizes lists the grid sizes the server builds engines for.
	Sizes []int `toml:"sizes"`
}

// StoreConfig configures solve-history persistence.
type StoreConfig struct {
	// Enabled toggles history recording.
	Enabled bool `toml:"enabled"`
	// Dir overrides the file store directory.
	Dir string `toml:"dir"`
	// MongoURI selects the MongoDB backend when non-empty.
	MongoURI string `toml:"mongo_uri"`
	// MongoDatabase is the database name for the MongoDB backend.
	MongoDatabase string `toml:"mongo_database"`
	// MongoCollection is the collection name for the MongoDB backend.
	MongoCollection string `toml:"mongo_collection"`
}

// defaultConfig returns the built-in defaults applied before any file or
// flag values.
func defaultConfig() Config {
	return Config{
		Solver: SolverConfig{
			Size:      9,
			Technique: solver.DefaultTechnique,
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     cacheDir(),
		},
		Server: ServerConfig{
			Addr:  ":8080",
			Sizes: []int{9, 10, 12, 16},
		},
		Store: StoreConfig{
			Enabled:         true,
			Dir:             dataDir(),
			MongoDatabase:   appName,
			MongoCollection: "solves",
		},
	}
}

// loadConfig reads the config file at path, or the default location when
// path is empty. A missing file is not an error; the defaults apply.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	explicit := path != ""
	if !explicit {
		path = defaultConfigPath()
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if explicit {
			return cfg, fmt.Errorf("config file not found: %s", path)
		}
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := solver.ValidateTechnique(cfg.Solver.Technique); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}
