// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/saleemkhair/resume-export/internal/export"
	"github.com/saleemkhair/resume-export/internal/layout"
)

// DefaultSettleDelay is how long animated content is given to repaint after
// being forced visible.
const DefaultSettleDelay = 300 * time.Millisecond

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Paths
	Content   string `json:"content,omitempty"`    // Path to the content model (.json, .yaml)
	OutputDir string `json:"output_dir,omitempty"` // Directory the document is saved to

	// Export
	Strategy    string `json:"strategy,omitempty"`     // text, raster or auto
	SurfaceURL  string `json:"surface_url,omitempty"`  // Page rendering the resume, for raster exports
	Selector    string `json:"selector,omitempty"`     // CSS selector of the resume root on that page
	SettleDelay string `json:"settle_delay,omitempty"` // Go duration, e.g. "300ms"
	ChromePath  string `json:"chrome_path,omitempty"`  // Chrome/Chromium binary, empty for the default lookup

	// Layout
	Geometry *layout.Geometry `json:"geometry,omitempty"` // Page geometry overrides

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // Print detailed debug information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	strategy, err := export.ParseStrategy(c.Strategy)
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if strategy == export.StrategyRaster && c.SurfaceURL == "" {
		return fmt.Errorf("config error: 'surface_url' is required for the raster strategy")
	}

	if _, err := c.Settle(); err != nil {
		return err
	}

	if c.Geometry != nil {
		if _, err := layout.Resolve(c.Geometry); err != nil {
			return fmt.Errorf("config error: %w", err)
		}
	}

	// Validate file paths exist (if specified)
	if c.Content != "" {
		if _, err := os.Stat(c.Content); os.IsNotExist(err) {
			return fmt.Errorf("config error: content file not found: %s", c.Content)
		}
	}

	return nil
}

// Settle parses SettleDelay, defaulting to DefaultSettleDelay.
func (c *Config) Settle() (time.Duration, error) {
	if c.SettleDelay == "" {
		return DefaultSettleDelay, nil
	}
	d, err := time.ParseDuration(c.SettleDelay)
	if err != nil {
		return 0, fmt.Errorf("config error: 'settle_delay': %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("config error: 'settle_delay' must be non-negative")
	}
	return d, nil
}

// MergeWithDefaults returns a new Config with empty string fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Content == "" {
		result.Content = defaults.Content
	}
	if result.OutputDir == "" {
		result.OutputDir = defaults.OutputDir
	}
	if result.Strategy == "" {
		result.Strategy = defaults.Strategy
	}
	if result.SurfaceURL == "" {
		result.SurfaceURL = defaults.SurfaceURL
	}
	if result.Selector == "" {
		result.Selector = defaults.Selector
	}
	if result.SettleDelay == "" {
		result.SettleDelay = defaults.SettleDelay
	}
	if result.ChromePath == "" {
		result.ChromePath = defaults.ChromePath
	}

	if result.Geometry == nil && defaults.Geometry != nil {
		g := *defaults.Geometry
		result.Geometry = &g
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
