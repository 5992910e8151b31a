package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cazan/points/internal/storage"
	"github.com/spf13/cobra"
)

var (
	queryRegion  string
	queryRefresh bool
)

func init() {
	rootCmd.AddCommand(queryCmd)
	queryCmd.Flags().StringVarP(&queryRegion, "region", "r", "", "Rectangle as minX,minY,maxX,maxY (inclusive)")
	queryCmd.Flags().BoolVar(&queryRefresh, "refresh", false, "Rebuild the cache from assets.json first")
	queryCmd.MarkFlagRequired("region")
}

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Find points inside a rectangle",
	Long: `Find points across all images that fall inside a rectangle.

Queries read the SQLite cache; run 'cazan-points rebuild' first or pass
--refresh.

Example:
  cazan-points query --region 0,0,64,64 --refresh`,
	Args: cobra.NoArgs,
	RunE: runQuery,
}

// QueryResult is the response for the query command.
type QueryResult struct {
	Count int                `json:"count"`
	Hits  []storage.PointHit `json:"hits"`
}

func runQuery(cmd *cobra.Command, args []string) error {
	minX, minY, maxX, maxY, err := parseRegion(queryRegion)
	if err != nil {
		exitWithError(ExitError, "invalid --region %q: %v", queryRegion, err)
	}

	s, root := mustOpenStore()
	cache := mustOpenCache(root)
	defer cache.Close()

	if queryRefresh {
		if _, _, err := rebuildCache(s, cache); err != nil {
			exitWithStoreError(err)
		}
	}

	hits, err := cache.PointsInRegion(minX, minY, maxX, maxY)
	if err != nil {
		exitWithError(ExitError, "querying cache: %v", err)
	}
	if hits == nil {
		hits = []storage.PointHit{}
	}

	if humanOutput {
		if len(hits) == 0 {
			fmt.Println("No points in region")
			return nil
		}
		for _, h := range hits {
			fmt.Printf("%s  %s\n", h.Path, h.Point)
		}
	} else {
		outputJSON(QueryResult{Count: len(hits), Hits: hits})
	}
	return nil
}

// parseRegion parses "minX,minY,maxX,maxY".
func parseRegion(spec string) (minX, minY, maxX, maxY uint32, err error) {
	parts := strings.Split(spec, ",")
	if len(parts) != 4 {
		return 0, 0, 0, 0, fmt.Errorf("expected minX,minY,maxX,maxY")
	}

	var vals [4]uint32
	for i, part := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(part), 10, 32)
		if err != nil {
			return 0, 0, 0, 0, err
		}
		vals[i] = uint32(v)
	}

	if vals[0] > vals[2] || vals[1] > vals[3] {
		return 0, 0, 0, 0, fmt.Errorf("min corner must not exceed max corner")
	}
	return vals[0], vals[1], vals[2], vals[3], nil
}
