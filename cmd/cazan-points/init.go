package main

import (
	"fmt"
	"os"

	"github.com/cazan/points/internal/config"
	"github.com/cazan/points/internal/storage"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var initAssetsDir string

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().StringVar(&initAssetsDir, "assets-dir", config.DefaultAssetsDir, "Directory holding source images")
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create .cazan/ with an empty points document",
	Long: `Create the .cazan directory in the project root (--root, or the current
directory) with config.json and an empty build/assets.json.

Existing files are left untouched.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	root := rootFlag
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			exitWithError(ExitError, "getting current directory: %v", err)
		}
		root = cwd
	}

	if _, err := os.Stat(config.ConfigPath(root)); os.IsNotExist(err) {
		cfg := &config.Config{AssetsDir: initAssetsDir}
		if err := cfg.Save(root); err != nil {
			exitWithError(ExitError, "%v", err)
		}
		logger.Debug("wrote project config", zap.String("path", config.ConfigPath(root)))
	}

	s := storage.Open(root, storage.WithLogger(logger))
	if err := s.Init(); err != nil {
		exitWithStoreError(err)
	}

	if humanOutput {
		fmt.Printf("Initialized cazan project in %s\n", config.CazanPath(root))
	} else {
		outputJSON(StatusResponse{Status: "initialized", Path: s.Path()})
	}
	return nil
}
