package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// GlobalConfig represents configuration stored in ~/.config/cazan/config.yml.
type GlobalConfig struct {
	ProjectPath string `yaml:"project_path,omitempty"`
	LogLevel    string `yaml:"log_level,omitempty"`
}

const (
	// GlobalConfigDir is the directory name under XDG_CONFIG_HOME.
	GlobalConfigDir = "cazan"
	// GlobalConfigFile is the config file name.
	GlobalConfigFile = "config.yml"

	// EnvRoot overrides project discovery and project_path.
	EnvRoot = "CAZAN_ROOT"
	// EnvLogLevel overrides log_level.
	EnvLogLevel = "CAZAN_LOG_LEVEL"
)

// globalConfigCache caches the loaded global config.
var globalConfigCache *GlobalConfig

// GlobalConfigPath returns the path to the global config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/cazan/config.yml.
func GlobalConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, GlobalConfigDir, GlobalConfigFile)
}

// LoadEnv loads a .env file from the working directory if one exists.
// Variables already set in the environment are not overridden.
func LoadEnv() {
	_ = godotenv.Load()
}

// LoadGlobalConfig loads the global configuration file and applies
// environment overrides. Returns an empty config (not an error) if the
// file doesn't exist.
func LoadGlobalConfig() (*GlobalConfig, error) {
	if globalConfigCache != nil {
		return globalConfigCache, nil
	}

	var cfg GlobalConfig
	if path := GlobalConfigPath(); path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading global config: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parsing global config: %w", err)
			}
		}
	}

	if v := os.Getenv(EnvRoot); v != "" {
		cfg.ProjectPath = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if cfg.ProjectPath != "" {
		cfg.ProjectPath = ExpandPath(cfg.ProjectPath)
	}

	globalConfigCache = &cfg
	return &cfg, nil
}

// ResetGlobalConfigCache clears the cached global config.
// Useful for testing.
func ResetGlobalConfigCache() {
	globalConfigCache = nil
}

// GetProjectPath returns the configured project path, if any.
func GetProjectPath() string {
	cfg, err := LoadGlobalConfig()
	if err != nil {
		return ""
	}
	return cfg.ProjectPath
}

// GetLogLevel returns the configured log level, if any.
func GetLogLevel() string {
	cfg, err := LoadGlobalConfig()
	if err != nil {
		return ""
	}
	return cfg.LogLevel
}

// HelpfulConfigMessage returns a hint shown when no project can be found.
func HelpfulConfigMessage() string {
	configPath := GlobalConfigPath()
	return fmt.Sprintf(`No cazan project found.

Run 'cazan-points init' in your project root, or point to an existing project:
  export %s=/path/to/project
or create %s with:
  project_path: /path/to/project`,
		EnvRoot,
		configPath)
}
