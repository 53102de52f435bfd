package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/soralog/soralog/pkg/config"
	"github.com/soralog/soralog/pkg/jsonl"
	"github.com/soralog/soralog/pkg/record"
	"github.com/soralog/soralog/pkg/source"
)

// NewCatCommand creates the cat command.
func NewCatCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cat [file...]",
		Short: "Print every record of the given or discovered log files",
		Long: `Parse log files and print their records as JSON Lines.

With file arguments, only those files are read; each must have a known log
file name. Without arguments, every log file under --root is read.

Each record carries the synthetic keys @domain, @path and (when one can be
found) @type. Crash reports become {"@domain":"crash","@path":...,"@raw_report":...}.`,
		RunE: runCat,
	}
	addDiscoveryFlags(cmd)
	return cmd
}

func runCat(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)

	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	files, err := catFiles(cfg, args)
	if err != nil {
		return err
	}

	writer := jsonl.NewWriter(cmd.OutOrStdout())
	for _, f := range files {
		if f.Kind == source.KindNone {
			logger.Warn("skipping file with unknown log kind", "path", f.Path)
			continue
		}

		logger.Debug("reading log file", "path", f.Path, "kind", f.Kind)
		err := record.LoadFile(ctx, f, func(r record.Record) error {
			return writer.Write(r)
		})
		if err != nil {
			return finish(err)
		}
	}
	return finish(writer.Flush())
}

func catFiles(cfg *config.Config, args []string) ([]source.File, error) {
	if len(args) == 0 {
		files, err := discover(cfg)
		if err != nil {
			return nil, fmt.Errorf("discovering log files: %w", err)
		}
		return files, nil
	}

	files := make([]source.File, len(args))
	for i, path := range args {
		kind, _ := source.FromPath(path)
		files[i] = source.File{Kind: kind, Path: path}
	}
	return files, nil
}
