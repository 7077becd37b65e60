// Package config loads wikiplot settings from an optional YAML file with
// environment overrides.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"wikiplot/internal/core"
)

// Backend names accepted by cache.backend.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

type Config struct {
	API      APIConfig   `yaml:"api"`
	Cache    CacheConfig `yaml:"cache"`
	Plot     PlotConfig  `yaml:"plot"`
	LogLevel string      `yaml:"log_level"`
}

type APIConfig struct {
	BaseURL   string   `yaml:"base_url"`
	UserAgent string   `yaml:"user_agent"`
	PageLimit int      `yaml:"page_limit"`
	Throttle  Duration `yaml:"throttle"`
}

// Duration is a time.Duration that reads "200ms"-style strings from YAML.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

type CacheConfig struct {
	Dir     string `yaml:"dir"`
	Backend string `yaml:"backend"`
}

type PlotConfig struct {
	OutputDir string  `yaml:"output_dir"`
	LogBase   float64 `yaml:"log_base"`
}

// Load reads the config file at path (the default location when path is
// empty). A missing file yields the defaults. Environment variables win
// over file values.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	if path == "" {
		path = core.ConfigPath()
	}

	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Defaults only.
	case err != nil:
		return nil, fmt.Errorf("read config file: %w", err)
	default:
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnv()
	cfg.setDefaults()

	if cfg.Cache.Backend != BackendFile && cfg.Cache.Backend != BackendSQLite {
		return nil, fmt.Errorf("unknown cache backend %q (want %s or %s)",
			cfg.Cache.Backend, BackendFile, BackendSQLite)
	}

	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("WIKIPLOT_API_URL"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("WIKIPLOT_USER_AGENT"); v != "" {
		c.API.UserAgent = v
	}
	if v := os.Getenv("WIKIPLOT_CACHE_DIR"); v != "" {
		c.Cache.Dir = v
	}
	if v := os.Getenv("WIKIPLOT_CACHE_BACKEND"); v != "" {
		c.Cache.Backend = v
	}
	if v := os.Getenv("WIKIPLOT_PLOT_DIR"); v != "" {
		c.Plot.OutputDir = v
	}
}

func (c *Config) setDefaults() {
	if c.API.BaseURL == "" {
		c.API.BaseURL = core.DefaultAPIBaseURL
	}
	if c.API.UserAgent == "" {
		c.API.UserAgent = core.DefaultUserAgent
	}
	if c.API.PageLimit <= 0 {
		c.API.PageLimit = core.PageLimit
	}
	if c.API.Throttle == 0 {
		c.API.Throttle = Duration(core.DefaultThrottleMs * time.Millisecond)
	}
	if c.Cache.Dir == "" {
		c.Cache.Dir = core.CacheRoot()
	}
	if c.Cache.Backend == "" {
		c.Cache.Backend = BackendFile
	}
	if c.Plot.OutputDir == "" {
		c.Plot.OutputDir = core.DefaultPlotDir
	}
	if c.Plot.LogBase <= 1 {
		c.Plot.LogBase = core.DefaultLogBase
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}
