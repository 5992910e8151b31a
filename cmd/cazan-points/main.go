// Package main provides the cazan-points CLI entry point.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/cazan/points/internal/config"
	"github.com/cazan/points/internal/logging"
	"github.com/cazan/points/internal/storage"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	// humanOutput controls whether to use human-readable output
	humanOutput bool
	verbose     bool
	rootFlag    string

	logger = zap.NewNop()
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		// SilenceErrors is set, so cobra errors (like bad flags) are printed here.
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cazan-points",
	Short: "Read and write per-image point annotations",
	Long: `cazan-points manages the point annotations recorded by the cazan
asset build in .cazan/build/assets.json.

Each image record associates an image path with an ordered list of
points {x, y, n}. The JSON document is the source of truth; an
ephemeral SQLite cache under .cazan/cache supports region queries.
All commands output JSON by default.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config.LoadEnv()

		l, err := logging.New(config.GetLogLevel(), verbose)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&rootFlag, "root", "", "Project root (default: search upward from the current directory)")
	rootCmd.Version = Version
}

// getStartingDirectory returns the directory to start searching for a project.
// Checks --root, then CAZAN_ROOT / global project_path, then the working directory.
func getStartingDirectory() (string, int) {
	if rootFlag != "" {
		return rootFlag, 0
	}
	if root := config.GetProjectPath(); root != "" {
		return root, 0
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", outputError(ExitError, "getting current directory: %v", err)
	}
	return cwd, 0
}

// mustFindProject finds the project root, exits on error.
func mustFindProject() string {
	start, exitCode := getStartingDirectory()
	if exitCode != 0 {
		os.Exit(exitCode)
	}

	root, err := config.FindProject(start)
	if err != nil {
		fmt.Fprintln(os.Stderr, config.HelpfulConfigMessage())
		os.Exit(ExitConfigError)
	}
	logger.Debug("using project", zap.String("root", root))
	return root
}

// mustOpenStore opens the point store of the current project.
func mustOpenStore() (*storage.Store, string) {
	root := mustFindProject()
	return storage.Open(root, storage.WithLogger(logger)), root
}

// mustOpenCache opens the SQLite cache, exits on error.
// The caller is responsible for calling Close() on the returned cache.
func mustOpenCache(root string) *storage.Cache {
	if err := os.MkdirAll(config.CachePath(root), 0755); err != nil {
		exitWithError(ExitError, "creating cache directory: %v", err)
	}
	cache, err := storage.OpenCache(config.DBPath(root))
	if err != nil {
		exitWithError(ExitError, "opening cache: %v", err)
	}
	return cache
}

// exitCodeFor maps store errors to exit codes.
func exitCodeFor(err error) int {
	var (
		readErr  *storage.FileReadError
		parseErr *storage.ParseError
	)
	switch {
	case errors.Is(err, storage.ErrImageNotFound):
		return ExitNotFound
	case errors.As(err, &parseErr):
		return ExitDataError
	case errors.As(err, &readErr) && errors.Is(readErr, os.ErrNotExist):
		return ExitConfigError
	default:
		return ExitError
	}
}

// exitWithStoreError reports a store failure with the matching exit code.
func exitWithStoreError(err error) {
	var readErr *storage.FileReadError
	if errors.As(err, &readErr) && errors.Is(readErr, os.ErrNotExist) {
		exitWithError(exitCodeFor(err), "%v\n\nRun the asset build or 'cazan-points init' to create it.", err)
	}
	exitWithError(exitCodeFor(err), "%v", err)
}
