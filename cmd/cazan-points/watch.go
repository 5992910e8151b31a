package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cazan/points/internal/watch"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func init() {
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Keep the query cache in sync with assets.json",
	Long: `Rebuild the query cache now and again whenever assets.json changes.

Runs until interrupted. Malformed intermediate documents are logged and
skipped; the cache keeps its last good contents.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	s, root := mustOpenStore()
	cache := mustOpenCache(root)
	defer cache.Close()

	refresh := func() error {
		images, points, err := rebuildCache(s, cache)
		if err != nil {
			return err
		}
		if humanOutput {
			fmt.Printf("Rebuilt query cache with %s and %s\n", pluralize(images, "image"), pluralize(points, "point"))
		} else {
			outputJSON(RebuildResult{Status: "rebuilt", Images: images, Points: points})
		}
		return nil
	}

	if err := refresh(); err != nil {
		logger.Warn("initial rebuild failed", zap.Error(err))
	}

	w, err := watch.New(s.Path(), refresh, watch.WithLogger(logger))
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return w.Run(ctx)
}
