// Package config locates the launcher's data directory and loads user settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/chenwei791129/gamehub/pkg/catalog"
)

// Config holds the user settings stored in config.yaml
type Config struct {
	DarkTheme       bool    `yaml:"dark_theme"`
	ThumbWidth      float32 `yaml:"thumb_width"`
	ThumbHeight     float32 `yaml:"thumb_height"`
	DefaultCategory string  `yaml:"default_category"`

	// DataDir is where the library, icon cache and settings live
	DataDir string `yaml:"-"`
}

// Default returns the settings used when config.yaml is missing
func Default(dataDir string) *Config {
	return &Config{
		DarkTheme:       true,
		ThumbWidth:      150,
		ThumbHeight:     225,
		DefaultCategory: catalog.DefaultCategory,
		DataDir:         dataDir,
	}
}

// DefaultDataDir returns the per-user application data directory:
// - Windows: %APPDATA%/gamehub
// - macOS: ~/Library/Application Support/gamehub
// - Linux: $XDG_DATA_HOME/gamehub or ~/.local/share/gamehub
func DefaultDataDir() (string, error) {
	switch runtime.GOOS {
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData == "" {
			return "", fmt.Errorf("APPDATA environment variable not set")
		}
		return filepath.Join(appData, catalog.AppName), nil
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return filepath.Join(home, "Library", "Application Support", catalog.AppName), nil
	default:
		if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
			return filepath.Join(dataHome, catalog.AppName), nil
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return filepath.Join(home, ".local", "share", catalog.AppName), nil
	}
}

// Load reads config.yaml from dataDir. An empty dataDir selects DefaultDataDir.
// A missing file yields the defaults.
func Load(dataDir string) (*Config, error) {
	if dataDir == "" {
		dir, err := DefaultDataDir()
		if err != nil {
			return nil, err
		}
		dataDir = dir
	}

	abs, err := filepath.Abs(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory: %w", err)
	}

	cfg := Default(abs)
	data, err := os.ReadFile(cfg.ConfigPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.DataDir = abs
	cfg.sanitize()

	return cfg, nil
}

// Save writes the settings to config.yaml in the data directory
func (c *Config) Save() error {
	if err := os.MkdirAll(c.DataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(c.ConfigPath(), data, 0644)
}

// EnsureDirectories creates the data and cache directories
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.DataDir, c.IconCacheDir(), c.CoverDir()} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// ConfigPath returns the full path to config.yaml
func (c *Config) ConfigPath() string {
	return filepath.Join(c.DataDir, catalog.ConfigFile)
}

// LibraryPath returns the full path to games.json
func (c *Config) LibraryPath() string {
	return filepath.Join(c.DataDir, catalog.GamesFile)
}

// IconCacheDir returns the directory holding extracted icons
func (c *Config) IconCacheDir() string {
	return filepath.Join(c.DataDir, catalog.IconCacheDir)
}

// CoverDir returns the directory holding imported cover art
func (c *Config) CoverDir() string {
	return filepath.Join(c.DataDir, catalog.CoverDir)
}

// PlaceholderPath returns the path of the generated default cover
func (c *Config) PlaceholderPath() string {
	return filepath.Join(c.DataDir, catalog.PlaceholderCover)
}

// sanitize replaces unusable values with defaults
func (c *Config) sanitize() {
	def := Default(c.DataDir)
	if c.ThumbWidth <= 0 || c.ThumbHeight <= 0 {
		c.ThumbWidth = def.ThumbWidth
		c.ThumbHeight = def.ThumbHeight
	}
	if c.DefaultCategory != "" && !catalog.IsCategory(c.DefaultCategory) {
		c.DefaultCategory = def.DefaultCategory
	}
}
