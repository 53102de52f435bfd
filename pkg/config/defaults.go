package config

import (
	"github.com/spf13/viper"

	"github.com/soralog/soralog/pkg/source"
)

// Default values for configuration.
const (
	DefaultRoot     = "."
	DefaultPattern  = source.DefaultPattern
	DefaultLogLevel = "warn"
	DefaultOutput   = "json"
)

// DefaultSortKeys is the sort order used when none is configured.
var DefaultSortKeys = []string{"timestamp"}

// Config file lookup. An explicit --config path replaces the search.
const (
	DefaultConfigName = ".soralog"
	DefaultConfigType = "yaml"
)

// EnvPrefix is prepended to upper-cased keys to form environment variable
// names, for example SORALOG_LOG_LEVEL.
const EnvPrefix = "SORALOG"

// Setting keys, with the command-line flag bound to each.
var flagNames = map[string]string{
	"root":      "root",
	"pattern":   "pattern",
	"absolute":  "absolute",
	"log_level": "log-level",
	"output":    "output",
	"sort_keys": "sort-keys",
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Root:     DefaultRoot,
		Pattern:  DefaultPattern,
		LogLevel: DefaultLogLevel,
		Output:   DefaultOutput,
		SortKeys: append([]string(nil), DefaultSortKeys...),
	}
}

func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("root", d.Root)
	v.SetDefault("pattern", d.Pattern)
	v.SetDefault("absolute", d.Absolute)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("output", d.Output)
	v.SetDefault("sort_keys", d.SortKeys)
}
