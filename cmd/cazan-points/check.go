package main

import (
	"fmt"
	"os"

	"github.com/cazan/points/internal/config"
	"github.com/cazan/points/internal/storage"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func init() {
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify assets.json integrity",
	Long: `Verify assets.json against the document schema and check that image
paths are unique, non-empty, use forward slashes and lie inside the
assets-dir from .cazan/config.json.

Exits with code 3 if any problem is found.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

// CheckResult is the response for the check command.
type CheckResult struct {
	Status string          `json:"status"`
	Images int             `json:"images"`
	Points int             `json:"points"`
	Schema string          `json:"schema_error,omitempty"`
	Issues []storage.Issue `json:"issues"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	s, root := mustOpenStore()

	data, err := os.ReadFile(s.Path())
	if err != nil {
		exitWithStoreError(&storage.FileReadError{Path: s.Path(), Err: err})
	}

	result := CheckResult{Status: "ok", Issues: []storage.Issue{}}

	if err := storage.ValidateDocument(data); err != nil {
		result.Status = "invalid"
		result.Schema = err.Error()
	} else {
		records, err := storage.DecodeDocument(s.Path(), data)
		if err != nil {
			result.Status = "invalid"
			result.Schema = err.Error()
		} else {
			result.Images = len(records)
			for _, rec := range records {
				result.Points += len(rec.Points)
			}
			issues := storage.CheckRecords(records)
			if cfg, err := config.Load(root); err == nil {
				issues = append(issues, storage.CheckAssetsDir(records, cfg.AssetsDir)...)
			} else {
				logger.Debug("skipping assets-dir check", zap.Error(err))
			}
			if len(issues) > 0 {
				result.Status = "issues"
				result.Issues = issues
			}
		}
	}

	if humanOutput {
		printCheckHuman(result)
	} else {
		outputJSON(result)
	}

	if result.Status != "ok" {
		os.Exit(ExitDataError)
	}
	return nil
}

func printCheckHuman(r CheckResult) {
	switch r.Status {
	case "invalid":
		fmt.Printf("assets.json is invalid:\n%s\n", r.Schema)
	case "issues":
		fmt.Printf("Found %s in %s:\n", pluralize(len(r.Issues), "issue"), pluralize(r.Images, "image"))
		for _, is := range r.Issues {
			fmt.Printf("  [%s] record %d %q: %s\n", is.Type, is.Index, is.Path, is.Message)
		}
	default:
		fmt.Printf("OK: %s, %s\n", pluralize(r.Images, "image"), pluralize(r.Points, "point"))
	}
}
