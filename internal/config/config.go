// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/resume-builder/internal/catalog"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Inputs
	Data        string `json:"data,omitempty"`        // Path to résumé data JSON
	Visible     string `json:"visible,omitempty"`     // Path to visibility map JSON
	Template    string `json:"template,omitempty"`    // Template id
	Calibration string `json:"calibration,omitempty"` // Path to an estimator calibration YAML

	// Outputs
	OutputDir string `json:"output_dir,omitempty"` // Directory for exported files

	// Export
	ChromePath    string `json:"chrome_path,omitempty"`    // Chrome/Chromium binary for exports
	ExportTimeout int    `json:"export_timeout,omitempty"` // Export timeout in seconds

	// Server
	Port        int    `json:"port,omitempty"`         // HTTP port
	CORSOrigin  string `json:"cors_origin,omitempty"`  // Allowed CORS origin
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL

	// Behavior
	Preview bool `json:"preview,omitempty"` // Apply gallery preview budgets
	Verbose bool `json:"verbose,omitempty"` // Print detailed debug information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

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
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.ExportTimeout < 0 {
		return fmt.Errorf("config error: 'export_timeout' must be non-negative")
	}

	// An unknown template is not fatal at render time, but in a config file it is a typo.
	if c.Template != "" {
		if _, ok := catalog.Lookup(c.Template); !ok {
			return fmt.Errorf("config error: unknown template %q", c.Template)
		}
	}

	for name, path := range map[string]string{
		"data":        c.Data,
		"visible":     c.Visible,
		"calibration": c.Calibration,
		"chrome_path": c.ChromePath,
	} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return fmt.Errorf("config error: %s file not found: %s", name, path)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Data == "" {
		result.Data = defaults.Data
	}
	if result.Visible == "" {
		result.Visible = defaults.Visible
	}
	if result.Template == "" {
		result.Template = defaults.Template
	}
	if result.Calibration == "" {
		result.Calibration = defaults.Calibration
	}
	if result.OutputDir == "" {
		result.OutputDir = defaults.OutputDir
	}
	if result.ChromePath == "" {
		result.ChromePath = defaults.ChromePath
	}
	if result.CORSOrigin == "" {
		result.CORSOrigin = defaults.CORSOrigin
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	// Int fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.ExportTimeout == 0 {
		result.ExportTimeout = defaults.ExportTimeout
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
