// Package config handles project and global configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents project configuration stored in .cazan/config.json.
type Config struct {
	AssetsDir string `json:"assets-dir"` // Directory holding source images, relative to the project root
}

const (
	CazanDir   = ".cazan"
	ConfigFile = "config.json"
	BuildDir   = "build"
	AssetsFile = "assets.json"
	CacheDir   = "cache"
	DBFile     = "points.db"

	// DefaultAssetsDir is used when config.json omits assets-dir.
	DefaultAssetsDir = "assets"
)

// CazanPath returns the path to the .cazan directory from a root path.
func CazanPath(root string) string {
	return filepath.Join(root, CazanDir)
}

// ConfigPath returns the path to config.json from a root path.
func ConfigPath(root string) string {
	return filepath.Join(root, CazanDir, ConfigFile)
}

// BuildPath returns the path to the build output directory from a root path.
func BuildPath(root string) string {
	return filepath.Join(root, CazanDir, BuildDir)
}

// AssetsPath returns the path to assets.json from a root path.
func AssetsPath(root string) string {
	return filepath.Join(root, CazanDir, BuildDir, AssetsFile)
}

// CachePath returns the path to the cache directory from a root path.
func CachePath(root string) string {
	return filepath.Join(root, CazanDir, CacheDir)
}

// DBPath returns the path to points.db from a root path.
func DBPath(root string) string {
	return filepath.Join(root, CazanDir, CacheDir, DBFile)
}

// IsProject checks if the given path contains a .cazan directory.
func IsProject(root string) bool {
	info, err := os.Stat(CazanPath(root))
	return err == nil && info.IsDir()
}

// FindProject walks up from the given path to find a cazan project.
// Returns the project root path or an error if not found.
func FindProject(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	for {
		if IsProject(abs) {
			return abs, nil
		}

		parent := filepath.Dir(abs)
		if parent == abs {
			return "", fmt.Errorf("not in a cazan project (no %s directory found)", CazanDir)
		}
		abs = parent
	}
}

// Load reads configuration from the project at the given root.
// A missing assets-dir falls back to DefaultAssetsDir.
func Load(root string) (*Config, error) {
	data, err := os.ReadFile(ConfigPath(root))
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.AssetsDir == "" {
		cfg.AssetsDir = DefaultAssetsDir
	}

	return &cfg, nil
}

// Save writes configuration to the project at the given root.
func (c *Config) Save(root string) error {
	data, err := json.MarshalIndent(c, "", "    ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.MkdirAll(CazanPath(root), 0755); err != nil {
		return fmt.Errorf("creating %s: %w", CazanDir, err)
	}
	if err := os.WriteFile(ConfigPath(root), data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path // Return original if we can't get home directory
	}

	return filepath.Join(home, path[1:])
}
