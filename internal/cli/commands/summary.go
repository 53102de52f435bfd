package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/soralog/soralog/pkg/output"
	"github.com/soralog/soralog/pkg/query"
	"github.com/soralog/soralog/pkg/record"
)

// NewSummaryCommand creates the summary command.
func NewSummaryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Summarize the log files under a directory",
		Long: `Count log files per kind and records per level and kind under --root.

Empty files are not counted. Records without a level count as info.`,
		Args: cobra.NoArgs,
		RunE: runSummary,
	}
	addDiscoveryFlags(cmd)
	addOutputFlag(cmd)
	return cmd
}

func runSummary(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)

	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	formatter, err := output.NewFormatter(cfg.Output, output.FormatOptions{})
	if err != nil {
		return err
	}

	files, err := discover(cfg)
	if err != nil {
		return fmt.Errorf("discovering log files: %w", err)
	}

	summary := query.NewSummary()
	for _, f := range files {
		info, err := os.Stat(f.Path)
		if err != nil {
			return fmt.Errorf("checking %s: %w", f.Path, err)
		}
		if info.Size() == 0 {
			logger.Debug("skipping empty log file", "path", f.Path)
			continue
		}

		summary.AddFile(f.Kind)
		err = record.LoadFile(ctx, f, func(r record.Record) error {
			summary.AddRecord(r)
			return nil
		})
		if err != nil {
			return err
		}
	}

	return finish(formatter.Format(ctx, summary, cmd.OutOrStdout()))
}
