// Package config loads and validates the application configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/fennwick/scribe/internal/logger"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger logger.Config `toml:"logger"`
	Editor EditorConfig  `toml:"editor"`
}

// EditorConfig holds editor-specific settings.
type EditorConfig struct {
	TabWidth        int  `toml:"tab_width"`
	ScrollOff       int  `toml:"scroll_off"`
	SystemClipboard bool `toml:"system_clipboard"`
	ShowWhitespace  bool `toml:"show_whitespace"`
	// CacheFrequency is the line sampling interval of the highlight cache.
	CacheFrequency int `toml:"cache_frequency"`
	// UndoGroupWindowMS is the time window (milliseconds) within which
	// consecutive edits merge into one undo group.
	UndoGroupWindowMS int `toml:"undo_group_window_ms"`
}

var (
	loadedConfig *Config
	loadOnce     sync.Once
	loadErr      error
)

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.Config{
			LogLevel:    "info",
			LogFilePath: "",
		},
		Editor: EditorConfig{
			TabWidth:          DefaultTabWidth,
			ScrollOff:         DefaultScrollOff,
			SystemClipboard:   SystemClipboard,
			ShowWhitespace:    false,
			CacheFrequency:    DefaultCacheFrequency,
			UndoGroupWindowMS: int(DefaultUndoGroupWindow / time.Millisecond),
		},
	}
}

// UndoGroupWindow returns the undo grouping window as a duration.
func (c *EditorConfig) UndoGroupWindow() time.Duration {
	return time.Duration(c.UndoGroupWindowMS) * time.Millisecond
}

// loadFromFile attempts to load configuration from a TOML file.
// A missing file is not an error; the caller merges over defaults.
func loadFromFile(filePath string) (*Config, error) {
	cfg := &Config{}
	_, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("error checking config file '%s': %w", filePath, err)
	}

	metadata, err := toml.DecodeFile(filePath, cfg)
	if err != nil {
		return cfg, fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}
	if len(metadata.Undecoded()) > 0 {
		logger.Warnf("Config file '%s': Unrecognized keys: %v", filePath, metadata.Undecoded())
	}
	return cfg, nil
}

// validate checks config values and resets invalid ones to defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()

	if c.Editor.TabWidth <= 0 {
		c.Editor.TabWidth = defaults.Editor.TabWidth
	}
	if c.Editor.ScrollOff < 0 {
		c.Editor.ScrollOff = defaults.Editor.ScrollOff
	}
	if c.Editor.CacheFrequency <= 0 {
		c.Editor.CacheFrequency = defaults.Editor.CacheFrequency
	}
	if c.Editor.UndoGroupWindowMS <= 0 {
		c.Editor.UndoGroupWindowMS = defaults.Editor.UndoGroupWindowMS
	}
	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
}

// merge copies non-zero values from src over dst.
func (c *Config) merge(src *Config) {
	if src.Logger.LogLevel != "" {
		c.Logger.LogLevel = src.Logger.LogLevel
	}
	if src.Logger.LogFilePath != "" {
		c.Logger.LogFilePath = src.Logger.LogFilePath
	}
	if src.Editor.TabWidth > 0 {
		c.Editor.TabWidth = src.Editor.TabWidth
	}
	if src.Editor.ScrollOff > 0 {
		c.Editor.ScrollOff = src.Editor.ScrollOff
	}
	if src.Editor.CacheFrequency > 0 {
		c.Editor.CacheFrequency = src.Editor.CacheFrequency
	}
	if src.Editor.UndoGroupWindowMS > 0 {
		c.Editor.UndoGroupWindowMS = src.Editor.UndoGroupWindowMS
	}
	if src.Editor.SystemClipboard {
		c.Editor.SystemClipboard = true
	}
	if src.Editor.ShowWhitespace {
		c.Editor.ShowWhitespace = true
	}
}

// LoadConfig orchestrates loading defaults, file, applying flags, and validation.
// It should be called only once, typically from main.
func LoadConfig(configFilePath string, flags *Flags) (*Config, error) {
	loadOnce.Do(func() {
		cfg := NewDefaultConfig()

		effectivePath := configFilePath
		if effectivePath == "" {
			configDir, err := os.UserConfigDir()
			if err == nil {
				effectivePath = filepath.Join(configDir, ConfigDirName, DefaultConfigFileName)
			}
		}

		if effectivePath != "" {
			fileCfg, err := loadFromFile(effectivePath)
			if err != nil {
				loadErr = err
			} else {
				cfg.merge(fileCfg)
			}
		}

		if flags != nil {
			flags.ApplyOverrides(cfg)
		}

		cfg.validate()
		loadedConfig = cfg
	})
	return loadedConfig, loadErr
}

// Get returns the loaded configuration, falling back to defaults if
// LoadConfig was never called (useful in tests).
func Get() *Config {
	loadOnce.Do(func() {
		cfg := NewDefaultConfig()
		cfg.validate()
		loadedConfig = cfg
	})
	return loadedConfig
}
