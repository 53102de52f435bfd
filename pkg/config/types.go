// Package config provides settings loading and validation for soralog.
package config

import (
	"log/slog"

	"github.com/soralog/soralog/pkg/field"
)

// Config holds the resolved settings. Values are layered: defaults, then the
// config file, then SORALOG_* environment variables, then command-line flags.
type Config struct {
	// Root is the directory (or single file) that log discovery starts from.
	Root string `mapstructure:"root" yaml:"root"`

	// Pattern restricts discovery to paths matching a doublestar glob,
	// relative to Root.
	Pattern string `mapstructure:"pattern" yaml:"pattern"`

	// Absolute makes discovered paths absolute.
	Absolute bool `mapstructure:"absolute" yaml:"absolute"`

	// LogLevel is the minimum level of diagnostics written to stderr
	// (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`

	// Output is the format for count and summary reports (json, yaml).
	Output string `mapstructure:"output" yaml:"output"`

	// SortKeys are the field names sort uses when given none.
	SortKeys []string `mapstructure:"sort_keys" yaml:"sort_keys"`

	// populated during validation
	sortKeys []field.Name
	logLevel slog.Level
}

// SortKeyNames returns SortKeys parsed into field names.
func (c *Config) SortKeyNames() []field.Name {
	return c.sortKeys
}

// SlogLevel returns LogLevel parsed into a slog level.
func (c *Config) SlogLevel() slog.Level {
	return c.logLevel
}
