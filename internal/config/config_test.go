package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wikiplot/internal/core"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, core.DefaultAPIBaseURL, cfg.API.BaseURL)
	assert.Equal(t, core.PageLimit, cfg.API.PageLimit)
	assert.Equal(t, core.DefaultThrottleMs*time.Millisecond, cfg.API.Throttle.Std())
	assert.Equal(t, BackendFile, cfg.Cache.Backend)
	assert.Equal(t, core.DefaultLogBase, cfg.Plot.LogBase)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api:
  base_url: https://de.wikipedia.org/w/api.php
  page_limit: 100
  throttle: 1s
cache:
  backend: sqlite
  dir: /tmp/wikiplot-test-cache
plot:
  log_base: 2
log_level: debug
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://de.wikipedia.org/w/api.php", cfg.API.BaseURL)
	assert.Equal(t, 100, cfg.API.PageLimit)
	assert.Equal(t, time.Second, cfg.API.Throttle.Std())
	assert.Equal(t, BackendSQLite, cfg.Cache.Backend)
	assert.Equal(t, "/tmp/wikiplot-test-cache", cfg.Cache.Dir)
	assert.Equal(t, 2.0, cfg.Plot.LogBase)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cache:\n  dir: /from/file\n"), 0644))

	t.Setenv("WIKIPLOT_CACHE_DIR", "/from/env")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/from/env", cfg.Cache.Dir)
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cache:\n  backend: redis\n"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api:\n\tbase_url: x\n"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}
