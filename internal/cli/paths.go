package cli

import (
	"os"
	"path/filepath"
)

// cacheDir returns the cache directory for solved puzzles, following the
// XDG base directory convention:
//   - $XDG_CACHE_HOME/sudoku if XDG_CACHE_HOME is set
//   - ~/.cache/sudoku otherwise
//
// Falls back to .sudoku-cache in the working directory if the home
// directory cannot be determined.
func cacheDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".sudoku-cache"
	}
	return filepath.Join(home, ".cache", appName)
}

// dataDir returns the directory for solve-history records:
//   - $XDG_DATA_HOME/sudoku if XDG_DATA_HOME is set
//   - ~/.local/share/sudoku otherwise
func dataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".sudoku-data"
	}
	return filepath.Join(home, ".local", "share", appName)
}

// defaultConfigPath returns the default config file location:
//   - $XDG_CONFIG_HOME/sudoku/config.toml if XDG_CONFIG_HOME is set
//   - ~/.config/sudoku/config.toml otherwise
//
// Returns an empty string if the home directory cannot be determined, in
// which case only built-in defaults and flags apply.
func defaultConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName, "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName, "config.toml")
}
