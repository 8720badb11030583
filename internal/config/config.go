// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/bethropolis/texthistory/internal/logger"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger    logger.Config   `toml:"logger"`
	History   HistoryConfig   `toml:"history"`
	Clipboard ClipboardConfig `toml:"clipboard"`
	View      ViewConfig      `toml:"view"`
	Output    OutputConfig    `toml:"output"`

	// Warnings collected while loading, logged once the logger is up.
	Warnings []string `toml:"-"`
}

// HistoryConfig controls the session's history.
type HistoryConfig struct {
	Compact     bool   `toml:"compact"`      // optimize the log command's output
	InitialText string `toml:"initial_text"` // inserted as version 1 when non-empty
}

// ClipboardConfig selects the clipboard backend.
type ClipboardConfig struct {
	System bool `toml:"system"`
}

// ViewConfig holds terminal viewer settings.
type ViewConfig struct {
	TabWidth int `toml:"tab_width"`
}

// OutputConfig selects how action logs are printed.
type OutputConfig struct {
	Format string `toml:"format"`
}

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.NewConfig(),
		History: HistoryConfig{
			Compact: DefaultCompact,
		},
		Clipboard: ClipboardConfig{
			System: SystemClipboard,
		},
		View: ViewConfig{
			TabWidth: DefaultTabWidth,
		},
		Output: OutputConfig{
			Format: FormatText,
		},
	}
}

// DefaultPath returns the config file location under the user config dir, or "" if unknown.
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(configDir, AppName, DefaultConfigFileName)
}

// loadFromFile decodes a TOML file over cfg. A missing file is not an error.
func loadFromFile(filePath string, cfg *Config) error {
	_, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("error checking config file '%s': %w", filePath, err)
	}

	metadata, err := toml.DecodeFile(filePath, cfg)
	if err != nil {
		return fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}
	if undecoded := metadata.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		cfg.Warnings = append(cfg.Warnings,
			fmt.Sprintf("config file '%s': unrecognized keys: %s", filePath, strings.Join(keys, ", ")))
	}
	return nil
}

// validate resets invalid values to defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()

	if c.View.TabWidth <= 0 {
		c.Warnings = append(c.Warnings, fmt.Sprintf("invalid tab_width %d, using %d", c.View.TabWidth, defaults.View.TabWidth))
		c.View.TabWidth = defaults.View.TabWidth
	}
	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
	if _, ok := logger.ParseLevel(c.Logger.LogLevel); !ok {
		c.Warnings = append(c.Warnings, fmt.Sprintf("unknown log level %q, using %s", c.Logger.LogLevel, defaults.Logger.LogLevel))
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}

	c.Output.Format = strings.ToLower(c.Output.Format)
	switch c.Output.Format {
	case FormatText, FormatYAML:
	default:
		c.Warnings = append(c.Warnings, fmt.Sprintf("unknown output format %q, using %s", c.Output.Format, FormatText))
		c.Output.Format = FormatText
	}
}

// Load resolves the configuration: defaults, then the file, then flag overrides, then validation.
// An empty configFilePath means DefaultPath(). flags may be nil.
func Load(configFilePath string, flags *Flags) (*Config, error) {
	cfg := NewDefaultConfig()

	effectivePath := configFilePath
	if effectivePath == "" {
		effectivePath = DefaultPath()
	}

	var loadErr error
	if effectivePath != "" {
		loadErr = loadFromFile(effectivePath, cfg)
	}

	if flags != nil {
		flags.ApplyOverrides(cfg)
	}
	cfg.validate()

	return cfg, loadErr
}

// LogWarnings reports collected warnings through the logger.
func (c *Config) LogWarnings() {
	for _, w := range c.Warnings {
		logger.WarnTagf("config", "%s", w)
	}
}
