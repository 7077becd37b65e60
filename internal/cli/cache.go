package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"wikiplot/internal/page"
	"wikiplot/internal/store"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or invalidate the local revision cache",
}

var cachePathCmd = &cobra.Command{
	Use:   "path [title-or-url]",
	Short: "Print where a page's cached revision dates are stored",
	Args:  cobra.ExactArgs(1),
	RunE:  handleCachePath,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear [title-or-url]",
	Short: "Delete a page's cached revision dates",
	Args:  cobra.ExactArgs(1),
	RunE:  handleCacheClear,
}

func init() {
	cacheCmd.AddCommand(cachePathCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}

func handleCachePath(cmd *cobra.Command, args []string) error {
	id, err := page.Parse(args[0])
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

	fmt.Println(backend.Path(id.Key()))
	return nil
}

func handleCacheClear(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	id, err := page.Parse(args[0])
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
	if err := st.Clear(id); err != nil {
		return fmt.Errorf("failed to clear cache for %s: %w", id.Display(), err)
	}

	logger.Info("cache cleared", "page", id.Display())
	return nil
}
