// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Paths
	RubricPath  string `json:"rubric_path,omitempty"`  // Path to the rubric JSON file
	ResultsPath string `json:"results_path,omitempty"` // Path to the result store JSON file
	ReportDir   string `json:"report_dir,omitempty"`   // Directory for exported reports

	// Student identity
	StudentID   string `json:"student_id,omitempty"`
	StudentName string `json:"student_name,omitempty"`

	// Behavior
	Verbose     bool   `json:"verbose,omitempty"`      // Print detailed grading output
	Concurrency int    `json:"concurrency,omitempty"`  // Parallel submissions in batch mode
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL result sink URL
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
	if c.Concurrency < 0 {
		return fmt.Errorf("config error: 'concurrency' must be non-negative")
	}

	if c.RubricPath != "" {
		if _, err := os.Stat(c.RubricPath); os.IsNotExist(err) {
			return fmt.Errorf("config error: rubric file not found: %s", c.RubricPath)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty string fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.RubricPath == "" {
		result.RubricPath = defaults.RubricPath
	}
	if result.ResultsPath == "" {
		result.ResultsPath = defaults.ResultsPath
	}
	if result.ReportDir == "" {
		result.ReportDir = defaults.ReportDir
	}
	if result.StudentID == "" {
		result.StudentID = defaults.StudentID
	}
	if result.StudentName == "" {
		result.StudentName = defaults.StudentName
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.Concurrency == 0 {
		result.Concurrency = defaults.Concurrency
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
