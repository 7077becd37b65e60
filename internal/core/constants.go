// Package core provides shared constants and helpers for wikiplot.
package core

import (
	"os"
	"path/filepath"
)

// API configuration
const (
	DefaultAPIBaseURL = "https://en.wikipedia.org/w/api.php"
	DefaultUserAgent  = "wikiplot/" + Version + " (https://github.com/wikiplot/wikiplot)"
	WikiBaseURL       = "https://en.wikipedia.org/wiki/"
)

// DateFmt is the day-granularity format used for cache entries and the
// rvstart parameter.
const DateFmt = "2006-01-02"

// Pagination
const (
	// PageLimit is the revisions-per-request batch size. 500 is the
	// maximum the Action API grants unauthenticated clients.
	PageLimit = 500

	// DefaultThrottleMs is the pause between pagination requests.
	DefaultThrottleMs = 200
)

// Rendering defaults
const (
	DefaultLogBase = 10.0
	DefaultPlotDir = "plotGraphs"
)

// CacheRoot returns the default cache directory path.
func CacheRoot() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".wikiplot", "cache")
}

// ConfigPath returns the default config file location.
func ConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".wikiplot", "config.yaml")
}

// Version is the current CLI version.
const Version = "0.3.0"
