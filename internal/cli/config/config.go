// Package config provides configuration management for the irkit CLI.
//
// Configuration is assembled from four layers with the usual precedence:
// flags > environment variables (IRKIT_ prefix) > config file > defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Config holds all CLI configuration options.
type Config struct {
	Verbose      bool   `koanf:"verbose"`
	OutputFormat string `koanf:"output"`
	Pretty       bool   `koanf:"pretty"`
	Indent       int    `koanf:"indent"`
	Jobs         int    `koanf:"jobs"`
	HistoryFile  string `koanf:"history_file"`
}

// Default configuration values.
const (
	DefaultOutput      = "text"
	DefaultIndent      = 2
	DefaultJobs        = 4
	defaultHistoryName = ".irkit_history"
)

// DefaultHistoryFile returns the default REPL history path in the user's
// home directory, falling back to the working directory when home is
// unavailable.
func DefaultHistoryFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return defaultHistoryName
	}
	return filepath.Join(home, defaultHistoryName)
}

// Validate checks configuration values for consistency.
func (c *Config) Validate() error {
	switch c.OutputFormat {
	case "text", "json":
	default:
		return fmt.Errorf("invalid output format %q (supported: text, json)", c.OutputFormat)
	}

	if c.Indent < 0 || c.Indent > 16 {
		return fmt.Errorf("indent must be between 0 and 16, got %d", c.Indent)
	}

	if c.Jobs < 1 {
		return fmt.Errorf("jobs must be at least 1, got %d", c.Jobs)
	}

	return nil
}
