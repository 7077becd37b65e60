package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"wikiplot/internal/config"
	"wikiplot/internal/output"
	"wikiplot/internal/page"
	"wikiplot/internal/render"
	"wikiplot/internal/stats"
	"wikiplot/internal/store"
	"wikiplot/internal/wiki"
)

func runPlot(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	input := ""
	if len(args) > 0 {
		input = args[0]
	} else {
		var err error
		input, err = promptForPage()
		if err != nil {
			return err
		}
	}

	id, err := page.Parse(input)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	backend, cleanup, err := openBackend(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	st := store.New(backend, logger)

	var merged []string
	added := 0

	if forceCache {
		merged = st.Load(id)
		logger.Info("cache only", "page", id.Display(), "revisions", len(merged))
	} else {
		client := wiki.NewClient(cfg.API.BaseURL, cfg.API.UserAgent, logger)
		fetcher := wiki.NewFetcher(client, wiki.FetcherOptions{
			PageLimit: cfg.API.PageLimit,
			Throttle:  cfg.API.Throttle.Std(),
		}, logger)

		merged, added, err = refreshHistory(cmd.Context(), st, fetcher, id, logger)
		if err != nil {
			return err
		}
	}

	if len(merged) == 0 {
		logger.Warn("no revisions to plot", "page", id.Display())
		return nil
	}

	sum := stats.Aggregate(merged)

	if raw {
		return output.PrintJSON(rawReport{
			Page:      id.Title(),
			URL:       id.URL(),
			Total:     sum.Total,
			New:       added,
			PeakDay:   sum.PeakDay,
			PeakCount: sum.PeakCount,
			Daily:     sum.Days,
		})
	}

	render.Terminal(os.Stdout, sum, id.URL(), cfg.Plot.LogBase)

	if !noPNG {
		path, err := render.PNG(sum, id.Display(), id.URL(), cfg.Plot.LogBase, cfg.Plot.OutputDir)
		if err != nil {
			logger.Warn("could not write plot image", "err", err)
		} else {
			logger.Info("plot saved", "path", path)
		}
	}

	return nil
}

// refreshHistory runs the load, fetch, merge, persist pipeline and returns
// the merged log. A persist failure only warns: the merged log stays valid
// for the rest of the run.
func refreshHistory(ctx context.Context, st *store.Store, fetcher *wiki.Fetcher, id page.Identity, logger *log.Logger) ([]string, int, error) {
	cached := st.Load(id)
	resume := store.ResumePoint(cached)

	if resume != "" {
		logger.Info("updating from cache", "page", id.Display(), "last_date", resume)
	} else {
		logger.Info("fetching full history", "page", id.Display())
	}

	// Any fetch error aborts before persist: a truncated log must
	// never replace the cached one.
	fetched, err := fetcher.FetchSince(ctx, id.Title(), resume)
	if err != nil {
		return nil, 0, err
	}

	merged, added := store.Merge(cached, fetched)
	if added < 0 {
		logger.Warn("cached resume day held more entries than the refresh returned; log repaired",
			"removed", -added)
	}

	if added != 0 || len(cached) == 0 {
		if err := st.Persist(id, merged); err != nil {
			logger.Warn("could not persist cache; next run will re-fetch", "err", err)
		}
	}

	// A repair shrinks the log; there is nothing new to report.
	if added < 0 {
		added = 0
	}
	logger.Info("revision history", "total", len(merged), "new", added)
	return merged, added, nil
}

// rawReport is the --raw JSON shape.
type rawReport struct {
	Page      string           `json:"page"`
	URL       string           `json:"url"`
	Total     int              `json:"total"`
	New       int              `json:"new"`
	PeakDay   string           `json:"peak_day,omitempty"`
	PeakCount int              `json:"peak_count,omitempty"`
	Daily     []stats.DayCount `json:"daily"`
}

// loadConfig loads the config file and folds the command-line overrides in.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	if cacheDir != "" {
		cfg.Cache.Dir = cacheDir
	}
	if backendName != "" {
		if backendName != config.BackendFile && backendName != config.BackendSQLite {
			return nil, fmt.Errorf("unknown cache backend %q (want %s or %s)",
				backendName, config.BackendFile, config.BackendSQLite)
		}
		cfg.Cache.Backend = backendName
	}
	if cmd.Flags().Changed("log") {
		if logBase <= 1 {
			return nil, fmt.Errorf("--log base must be greater than 1")
		}
		cfg.Plot.LogBase = logBase
	}

	return cfg, nil
}

// openBackend builds the configured cache backend and a cleanup func.
func openBackend(cfg *config.Config) (store.Backend, func(), error) {
	switch cfg.Cache.Backend {
	case config.BackendSQLite:
		b, err := store.NewSQLiteBackend(filepath.Join(cfg.Cache.Dir, "wikiplot.db"))
		if err != nil {
			return nil, nil, err
		}
		return b, func() { b.Close() }, nil
	default:
		return store.NewFilesystemBackend(cfg.Cache.Dir), func() {}, nil
	}
}

// promptForPage asks interactively when no positional argument was given.
func promptForPage() (string, error) {
	var input string
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Wikipedia page title or URL").
			Placeholder("Albert Einstein").
			Value(&input),
	))
	if err := form.Run(); err != nil {
		return "", err
	}
	return input, nil
}
