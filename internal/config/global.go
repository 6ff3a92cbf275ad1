// Package config handles the global bibnote configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// GlobalConfig represents configuration stored in ~/.config/bibnote/config.yml.
type GlobalConfig struct {
	Folder string `yaml:"folder,omitempty"`
}

const (
	// GlobalConfigDir is the directory name under XDG_CONFIG_HOME.
	GlobalConfigDir = "bibnote"
	// GlobalConfigFile is the config file name.
	GlobalConfigFile = "config.yml"
	// EnvFolder names the environment variable overriding the
	// configured notes folder.
	EnvFolder = "BIBNOTE_FOLDER"
)

// globalConfigCache caches the loaded global config.
var globalConfigCache *GlobalConfig

// GlobalConfigPath returns the path to the global config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/bibnote/config.yml.
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

// LoadGlobalConfig loads the global configuration file.
// Returns an empty config (not an error) if the file doesn't exist.
func LoadGlobalConfig() (*GlobalConfig, error) {
	if globalConfigCache != nil {
		return globalConfigCache, nil
	}

	path := GlobalConfigPath()
	if path == "" {
		return &GlobalConfig{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &GlobalConfig{}, nil
		}
		return nil, fmt.Errorf("reading global config: %w", err)
	}

	var cfg GlobalConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing global config: %w", err)
	}

	// Expand tilde in folder
	if cfg.Folder != "" {
		cfg.Folder = ExpandTilde(cfg.Folder)
	}

	globalConfigCache = &cfg
	return &cfg, nil
}

// ResetGlobalConfigCache clears the cached global config.
// Useful for testing.
func ResetGlobalConfigCache() {
	globalConfigCache = nil
}

// ErrFolderNotConfigured is returned when no notes folder is set via
// flag, environment or config file.
var ErrFolderNotConfigured = errors.New("notes folder not configured")

// ResolveFolder picks the notes folder to process: the flag value if
// given, else BIBNOTE_FOLDER from the environment, else the global
// config file. Tilde prefixes are expanded.
func ResolveFolder(flagValue string) (string, error) {
	if flagValue != "" {
		return ExpandTilde(flagValue), nil
	}
	if env := os.Getenv(EnvFolder); env != "" {
		return ExpandTilde(env), nil
	}

	cfg, err := LoadGlobalConfig()
	if err != nil {
		return "", err
	}
	if cfg.Folder == "" {
		return "", ErrFolderNotConfigured
	}
	return cfg.Folder, nil
}

// ExpandTilde expands a leading ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandTilde(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// HelpfulConfigMessage returns a helpful message when no folder is configured.
func HelpfulConfigMessage() string {
	configPath := GlobalConfigPath()
	return fmt.Sprintf(`No notes folder configured.

Pass --folder, set %s (an .env file works too), or create %s:
  mkdir -p %s
  echo 'folder: /path/to/your/notes' > %s`,
		EnvFolder,
		configPath,
		filepath.Dir(configPath),
		configPath)
}
