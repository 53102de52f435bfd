package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/soralog/soralog/pkg/jsonl"
)

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the log files under a directory",
		Long: `List every known log file under --root, one JSON string per line.

Files are recognized by their exact name (api.jsonl, cluster.jsonl, crash.log,
sora.jsonl, ...). Anything else is ignored.`,
		Args: cobra.NoArgs,
		RunE: runList,
	}
	addDiscoveryFlags(cmd)
	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	files, err := discover(cfg)
	if err != nil {
		return fmt.Errorf("discovering log files: %w", err)
	}
	logger.Debug("discovered log files", "root", cfg.Root, "count", len(files))

	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.Path
	}
	return jsonl.WriteAll(jsonl.NewWriter(cmd.OutOrStdout()), paths)
}
