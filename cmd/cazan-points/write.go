package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/cazan/points/internal/point"
	"github.com/cazan/points/internal/storage"
	"github.com/spf13/cobra"
)

var (
	writeFile  string
	writeStdin bool
)

func init() {
	rootCmd.AddCommand(writeCmd)
	writeCmd.Flags().StringVarP(&writeFile, "file", "f", "", "Path to a JSON file")
	writeCmd.Flags().BoolVar(&writeStdin, "stdin", false, "Read JSON from stdin")
}

var writeCmd = &cobra.Command{
	Use:   "write",
	Short: "Replace every image record",
	Long: `Replace assets.json with the given images.

Input is either a JSON object mapping image paths to point arrays
(the output of 'cazan-points list') or a document array of
{"path", "points"} records. Records are written sorted by path.

Examples:
  cazan-points list > points.json && cazan-points write -f points.json
  echo '{"assets/a.png": [{"x": 1, "y": 2, "n": 0}]}' | cazan-points write --stdin`,
	Args: cobra.NoArgs,
	RunE: runWrite,
}

// WriteResult is the response for the write command.
type WriteResult struct {
	Status string `json:"status"`
	Images int    `json:"images"`
}

func runWrite(cmd *cobra.Command, args []string) error {
	var (
		data []byte
		err  error
	)
	switch {
	case writeStdin:
		data, err = io.ReadAll(os.Stdin)
	case writeFile != "":
		data, err = os.ReadFile(writeFile)
	default:
		exitWithError(ExitError, "no input provided: use --file or --stdin")
	}
	if err != nil {
		exitWithError(ExitError, "reading input: %v", err)
	}

	images, err := parseImageMap(data)
	if err != nil {
		exitWithError(ExitDataError, "invalid input: %v", err)
	}

	s, _ := mustOpenStore()
	if err := s.WriteAll(images); err != nil {
		exitWithStoreError(err)
	}

	if humanOutput {
		fmt.Printf("Wrote %s\n", pluralize(len(images), "image"))
	} else {
		outputJSON(WriteResult{Status: "written", Images: len(images)})
	}
	return nil
}

// parseImageMap accepts a path to points object or a document array.
// Paths must stay distinct after backslash normalization, since lookups
// could only ever reach one of them.
func parseImageMap(data []byte) (map[string][]point.Point, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty input")
	}

	var records []point.ImageRecord
	if trimmed[0] == '{' {
		var images map[string][]point.Point
		if err := json.Unmarshal(trimmed, &images); err != nil {
			return nil, err
		}
		for p, pts := range images {
			records = append(records, point.ImageRecord{Path: p, Points: pts})
		}
	} else {
		var err error
		records, err = storage.DecodeDocument("input", trimmed)
		if err != nil {
			return nil, err
		}
	}

	images := make(map[string][]point.Point, len(records))
	seen := make(map[string]string, len(records))
	for _, rec := range records {
		key := point.NormalizePath(rec.Path)
		if prev, dup := seen[key]; dup {
			if prev == rec.Path {
				return nil, fmt.Errorf("duplicate image path %q", rec.Path)
			}
			return nil, fmt.Errorf("image paths %q and %q collide as %q", prev, rec.Path, key)
		}
		seen[key] = rec.Path
		images[rec.Path] = rec.Points
	}
	return images, nil
}
