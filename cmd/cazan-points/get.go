package main

import (
	"fmt"

	"github.com/cazan/points/internal/point"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(getCmd)
}

var getCmd = &cobra.Command{
	Use:   "get <image>",
	Short: "Show the points of one image",
	Long: `Show the points recorded for one image.

Backslashes in the image path are treated as separators, so Windows-style
paths match the forward-slash paths stored in assets.json. Exits with
code 4 if the image has no record.`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	s, _ := mustOpenStore()

	points, err := s.LoadOne(args[0])
	if err != nil {
		exitWithStoreError(err)
	}

	path := point.NormalizePath(args[0])
	if humanOutput {
		fmt.Printf("%s: %s\n", path, pluralize(len(points), "point"))
		for _, p := range points {
			fmt.Printf("  n=%d x=%d y=%d\n", p.N, p.X, p.Y)
		}
	} else {
		outputJSON(ImageResponse{Path: path, Points: points})
	}
	return nil
}
