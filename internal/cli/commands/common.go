// Package commands implements the soralog subcommands.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/soralog/soralog/pkg/config"
	"github.com/soralog/soralog/pkg/jsonl"
	"github.com/soralog/soralog/pkg/record"
	"github.com/soralog/soralog/pkg/source"
)

// commandContext returns the command's context, or a background context when
// the command runs outside Execute (as in tests).
func commandContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return ctx
}

// loadConfig resolves settings for cmd from --config, the environment and
// cmd's flags, and installs a logger writing to cmd's stderr.
func loadConfig(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	var path string
	if f := cmd.Flags().Lookup("config"); f != nil {
		path = f.Value.String()
	}

	cfg, err := config.Load(commandContext(cmd), path, cmd.Flags())
	if err != nil {
		return nil, nil, err
	}

	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	config.LogWithLogger(cfg, logger)
	return cfg, logger, nil
}

// addDiscoveryFlags adds the flags that control which log files are found.
func addDiscoveryFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("root", "r", config.DefaultRoot, "Log directory (or single log file) to search")
	cmd.Flags().String("pattern", config.DefaultPattern, "Only search paths matching this glob, relative to --root")
	cmd.Flags().BoolP("absolute", "a", false, "Report absolute paths")
}

// addOutputFlag adds the report format flag.
func addOutputFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", config.DefaultOutput, "Report format (json, yaml)")
}

func discover(cfg *config.Config) ([]source.File, error) {
	return source.Discover(cfg.Root,
		source.WithPattern(cfg.Pattern),
		source.WithAbsolute(cfg.Absolute),
	)
}

// finish turns a closed output into success: a reader that stops early, like
// head, is not an error.
func finish(err error) error {
	if jsonl.IsClosed(err) {
		return nil
	}
	return err
}

// pipe reads records from in and writes fn's result for each one that fn
// keeps. It stops when the input ends or the output is closed.
func pipe(ctx context.Context, in io.Reader, out io.Writer, fn func(record.Record) (any, bool)) error {
	reader := jsonl.NewReader(in)
	writer := jsonl.NewWriter(out)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		r, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}

		v, keep := fn(r)
		if !keep {
			continue
		}
		if err := writer.Write(v); err != nil {
			return finish(err)
		}
	}
	return finish(writer.Flush())
}
