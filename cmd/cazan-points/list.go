package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the points of every image",
	Long: `Show every image in assets.json as a path to points mapping.

If the document repeats an image path, the later record is shown.
Use 'cazan-points check' to find repeated paths.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	s, _ := mustOpenStore()

	all, err := s.LoadAll()
	if err != nil {
		exitWithStoreError(err)
	}

	if !humanOutput {
		outputJSON(all)
		return nil
	}

	paths := make([]string, 0, len(all))
	for p := range all {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	if len(paths) == 0 {
		fmt.Println("No images")
		return nil
	}
	for _, p := range paths {
		fmt.Printf("%s (%s)\n", p, pluralize(len(all[p]), "point"))
		if len(all[p]) > 0 {
			fmt.Printf("  %s\n", formatPoints(all[p]))
		}
	}
	return nil
}
