package main

import (
	"fmt"

	"github.com/cazan/points/internal/storage"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func init() {
	rootCmd.AddCommand(rebuildCmd)
}

var rebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Rebuild the query cache from assets.json",
	Long: `Rebuild the SQLite query cache from assets.json.

Run this after the asset build rewrites assets.json, or keep the cache
fresh with 'cazan-points watch'.`,
	Args: cobra.NoArgs,
	RunE: runRebuild,
}

// RebuildResult is the response for the rebuild command.
type RebuildResult struct {
	Status string `json:"status"`
	Images int    `json:"images"`
	Points int    `json:"points"`
}

func runRebuild(cmd *cobra.Command, args []string) error {
	s, root := mustOpenStore()

	cache := mustOpenCache(root)
	defer cache.Close()

	images, points, err := rebuildCache(s, cache)
	if err != nil {
		exitWithStoreError(err)
	}

	if humanOutput {
		fmt.Printf("Rebuilt query cache with %s and %s\n", pluralize(images, "image"), pluralize(points, "point"))
	} else {
		outputJSON(RebuildResult{Status: "rebuilt", Images: images, Points: points})
	}
	return nil
}

// rebuildCache reloads the cache from the store's document and reports
// what the cache now holds.
func rebuildCache(s *storage.Store, cache *storage.Cache) (images, points int, err error) {
	records, err := s.Records()
	if err != nil {
		return 0, 0, err
	}
	if _, err := cache.RebuildFromDocument(records); err != nil {
		return 0, 0, err
	}
	images, points, err = cache.Count()
	if err != nil {
		return 0, 0, err
	}
	logger.Debug("rebuilt cache", zap.Int("images", images), zap.Int("points", points))
	return images, points, nil
}
