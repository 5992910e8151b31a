package main

import (
	"fmt"

	"github.com/cazan/points/internal/storage"
	"github.com/spf13/cobra"
)

var summaryRefresh bool

func init() {
	rootCmd.AddCommand(summaryCmd)
	summaryCmd.Flags().BoolVar(&summaryRefresh, "refresh", false, "Rebuild the cache from assets.json first")
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show point counts and bounds per image",
	Long: `Show, for each image record, the number of points and their bounding box.

Reads the SQLite cache; run 'cazan-points rebuild' first or pass --refresh.`,
	Args: cobra.NoArgs,
	RunE: runSummary,
}

func runSummary(cmd *cobra.Command, args []string) error {
	s, root := mustOpenStore()
	cache := mustOpenCache(root)
	defer cache.Close()

	if summaryRefresh {
		if _, _, err := rebuildCache(s, cache); err != nil {
			exitWithStoreError(err)
		}
	}

	summaries, err := cache.ImageSummaries()
	if err != nil {
		exitWithError(ExitError, "querying cache: %v", err)
	}
	if summaries == nil {
		summaries = []storage.ImageSummary{}
	}

	if !humanOutput {
		outputJSON(summaries)
		return nil
	}

	images, points, err := cache.Count()
	if err != nil {
		exitWithError(ExitError, "counting cache: %v", err)
	}
	fmt.Printf("%s, %s\n", pluralize(images, "image"), pluralize(points, "point"))
	for _, sum := range summaries {
		if sum.Points == 0 {
			fmt.Printf("%-40s  0 points\n", sum.Path)
			continue
		}
		fmt.Printf("%-40s  %s  bounds (%d,%d)-(%d,%d)\n",
			sum.Path, pluralize(sum.Points, "point"), sum.MinX, sum.MinY, sum.MaxX, sum.MaxY)
	}
	return nil
}
