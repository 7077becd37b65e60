// Package cli implements the command-line interface for wikiplot.
package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"wikiplot/internal/core"
)

// Global flags
var (
	verbose     bool
	quiet       bool
	raw         bool
	forceCache  bool
	noPNG       bool
	logBase     float64
	cacheDir    string
	backendName string
	configPath  string
)

// rootCmd is the base command: fetch (or refresh) a page's revision
// history and plot its edit activity.
var rootCmd = &cobra.Command{
	Use:     "wikiplot [title-or-url]",
	Short:   "Plot the edit history of a Wikipedia page",
	Long: `wikiplot fetches the full revision history of a Wikipedia page,
caches the revision dates locally so later runs only fetch the delta,
and renders a logarithmic bar chart of edits per day.`,
	Version:       core.Version,
	Args:          cobra.MaximumNArgs(1),
	RunE:          runPlot,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose debug output to stderr")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "Suppress progress messages")
	rootCmd.PersistentFlags().StringVar(&cacheDir, "cache-dir", "", "Cache directory (default ~/.wikiplot/cache)")
	rootCmd.PersistentFlags().StringVar(&backendName, "backend", "", "Cache backend: file or sqlite")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.wikiplot/config.yaml)")

	rootCmd.Flags().Float64Var(&logBase, "log", core.DefaultLogBase, "Logarithmic base for the chart's y-axis")
	rootCmd.Flags().BoolVarP(&forceCache, "force-cache", "f", false, "Render from cache only; skip the API entirely")
	rootCmd.Flags().BoolVar(&noPNG, "no-png", false, "Skip writing the PNG chart")
	rootCmd.Flags().BoolVar(&raw, "raw", false, "Emit raw JSON (dates and daily counts) instead of charts")
}

// newLogger builds the run's logger from the verbosity flags.
func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})
	switch {
	case verbose:
		logger.SetLevel(log.DebugLevel)
	case quiet:
		logger.SetLevel(log.WarnLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}
	return logger
}
