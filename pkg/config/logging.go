package config

import "log/slog"

// Log writes the resolved settings at debug level to the default logger.
func Log(cfg *Config) {
	LogWithLogger(cfg, slog.Default())
}

// LogWithLogger writes the resolved settings at debug level to logger.
func LogWithLogger(cfg *Config, logger *slog.Logger) {
	logger.Debug("configuration loaded", slog.Any("settings", cfg))
}

// LogValue implements slog.LogValuer.
func (c *Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("root", c.Root),
		slog.String("pattern", c.Pattern),
		slog.Bool("absolute", c.Absolute),
		slog.String("log_level", c.LogLevel),
		slog.String("output", c.Output),
		slog.Any("sort_keys", c.SortKeys),
	)
}
