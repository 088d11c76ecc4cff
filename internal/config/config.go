// =============================================================================
// Meter Reading Populator - Configuration Module
// =============================================================================
//
// This module loads the main application configuration. The billing format
// registry has its own loading path (internal/schema); the main
// configuration only carries run-level settings:
//
//   output_dir:         ./output
//   formats_dir:        ./formats
//   output_name_format: "Populated_{format}"
//   default_format:     "Quarterly Billing"
//   log_level:          info
//
// A missing configuration file is not an error: every setting has a default,
// so the tool runs out of the box with only the builtin billing formats.
//
// =============================================================================

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the global application configuration.
type MainConfig struct {
	// OutputDir is the directory where populated output files are written.
	// Default: "./output"
	OutputDir string `yaml:"output_dir"`

	// FormatsDir is the directory containing additional billing format
	// definitions as YAML files. Adding a format is a data change only.
	// Default: "./formats"
	FormatsDir string `yaml:"formats_dir"`

	// OutputNameFormat is the naming pattern for output files.
	// Placeholders: {format}, {timestamp}, {uuid}.
	// Default: "Populated_{format}"
	OutputNameFormat string `yaml:"output_name_format"`

	// DefaultFormat is the billing format used when --format is not given.
	// Empty means the flag is required.
	DefaultFormat string `yaml:"default_format"`

	// LogLevel controls logging verbosity: "debug", "info", "warn", "error".
	// Default: "info"
	LogLevel string `yaml:"log_level"`
}

// =============================================================================
// CONFIGURATION LOADING
// =============================================================================

// Load reads the main configuration from a YAML file and applies defaults.
//
// PARAMETERS:
//   - configPath: The path to the configuration file.
//
// RETURNS:
//   - The configuration with defaults applied. When the file does not
//     exist, a default configuration is returned without error.
//   - An error if the file exists but cannot be read or parsed.
func Load(configPath string) (*MainConfig, error) {
	var config MainConfig

	data, err := os.ReadFile(configPath)
	switch {
	case os.IsNotExist(err):
		// Run with defaults.
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyDefaults(&config)
	return &config, nil
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(config *MainConfig) {
	if config.OutputDir == "" {
		config.OutputDir = "./output"
	}
	if config.FormatsDir == "" {
		config.FormatsDir = "./formats"
	}
	if config.OutputNameFormat == "" {
		config.OutputNameFormat = "Populated_{format}"
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
}
