package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/soralog/soralog/pkg/field"
	"github.com/soralog/soralog/pkg/output"
)

// Load resolves settings. When path is empty, .soralog.yaml is read from the
// working directory if it exists. Flags that the user set on the command line
// override everything else; flags may be nil.
func Load(_ context.Context, path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	} else {
		v.SetConfigName(DefaultConfigName)
		v.SetConfigType(DefaultConfigType)
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config file: %w", err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for key, name := range flagNames {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding flag %s: %w", name, err)
				}
			}
		}
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Validate checks a configuration for errors and resolves its typed values.
func Validate(cfg *Config) error {
	if cfg.Root == "" {
		return errors.New("root: must not be empty")
	}

	if !doublestar.ValidatePattern(cfg.Pattern) {
		return fmt.Errorf("pattern: invalid glob %q", cfg.Pattern)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return fmt.Errorf("log_level: invalid level %q (must be debug, info, warn, or error)", cfg.LogLevel)
	}
	cfg.logLevel = level

	if !slices.Contains(output.Formats(), cfg.Output) {
		return fmt.Errorf("output: invalid format %q (must be %s)", cfg.Output, strings.Join(output.Formats(), " or "))
	}

	keys, err := field.ParseNames(splitList(cfg.SortKeys))
	if err != nil {
		return fmt.Errorf("sort_keys: %w", err)
	}
	cfg.sortKeys = keys

	return nil
}

// splitList accepts both list values and comma-separated strings, which is
// how lists arrive from environment variables.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
