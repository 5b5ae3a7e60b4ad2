package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestResolveCacheDir(t *testing.T) {
	if got := resolveCacheDir(CacheConfig{Dir: "/custom/cache"}); got != "/custom/cache" {
		t.Errorf("configured dir ignored: %s", got)
	}

	t.Setenv("XDG_CACHE_HOME", "/xdg/cache")
	if got := resolveCacheDir(CacheConfig{}); got != filepath.Join("/xdg/cache", appName) {
		t.Errorf("default dir = %s", got)
	}
}

func TestCachePathHonorsConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(cfgPath, []byte("[cache]\ndir = \""+dir+"\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	cmd := newCachePathCmd(&cfgPath)
	cmd.SetOut(&out)
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(out.String()); got != dir {
		t.Errorf("cache path = %q, want %q", got, dir)
	}
}

func TestCacheClearHonorsConfig(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "solutions")
	if err := os.MkdirAll(filepath.Join(dir, "ab"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "ab", "entry.json"), []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(cfgPath, []byte("[cache]\ndir = \""+dir+"\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd := newCacheClearCmd(&cfgPath)
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Error("configured cache directory not removed")
	}
}
