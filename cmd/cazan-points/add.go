package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cazan/points/internal/point"
	"github.com/spf13/cobra"
)

var addPoints []string

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringArrayVarP(&addPoints, "point", "p", nil, "Point as x,y or x,y,n (repeatable)")
}

var addCmd = &cobra.Command{
	Use:   "add <image>",
	Short: "Append an image record",
	Long: `Append one image record to assets.json.

Points given as x,y are numbered by their position on the command line.
The record is appended even if the image already has one; lookups only
see the first record for a path.

Examples:
  cazan-points add assets/hero.png -p 0,0 -p 12,4 -p 12,30
  cazan-points add assets/hero.png -p 3,7,5`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

// AddResult is the response for the add command.
type AddResult struct {
	Status string `json:"status"`
	Path   string `json:"path"`
	Points int    `json:"points"`
}

func runAdd(cmd *cobra.Command, args []string) error {
	points := make([]point.Point, 0, len(addPoints))
	for i, spec := range addPoints {
		p, err := parsePoint(spec, i)
		if err != nil {
			exitWithError(ExitError, "invalid --point %q: %v", spec, err)
		}
		points = append(points, p)
	}

	s, _ := mustOpenStore()
	if err := s.WriteOne(args[0], points); err != nil {
		exitWithStoreError(err)
	}

	path := point.NormalizePath(args[0])
	if humanOutput {
		fmt.Printf("Added %s with %s\n", path, pluralize(len(points), "point"))
	} else {
		outputJSON(AddResult{Status: "added", Path: path, Points: len(points)})
	}
	return nil
}

// parsePoint parses "x,y" or "x,y,n". defaultN is used when n is omitted.
func parsePoint(spec string, defaultN int) (point.Point, error) {
	parts := strings.Split(spec, ",")
	if len(parts) != 2 && len(parts) != 3 {
		return point.Point{}, fmt.Errorf("expected x,y or x,y,n")
	}

	x, err := strconv.ParseUint(strings.TrimSpace(parts[0]), 10, 32)
	if err != nil {
		return point.Point{}, fmt.Errorf("x: %w", err)
	}
	y, err := strconv.ParseUint(strings.TrimSpace(parts[1]), 10, 32)
	if err != nil {
		return point.Point{}, fmt.Errorf("y: %w", err)
	}

	n := defaultN
	if len(parts) == 3 {
		v, err := strconv.ParseUint(strings.TrimSpace(parts[2]), 10, 31)
		if err != nil {
			return point.Point{}, fmt.Errorf("n: %w", err)
		}
		n = int(v)
	}

	return point.New(uint32(x), uint32(y), n), nil
}
