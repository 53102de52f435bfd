package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/soralog/soralog/pkg/field"
	"github.com/soralog/soralog/pkg/jsonl"
	"github.com/soralog/soralog/pkg/query"
)

// NewSortCommand creates the sort command.
func NewSortCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sort [field...]",
		Short: "Sort the records on stdin",
		Long: `Read every record from stdin and print them ordered by the given fields.

Later fields break ties in earlier ones; records missing a field come first.
The sort is stable. Without fields, the sort_keys setting is used (timestamp
by default).

Fields: ` + fieldList(),
		RunE: runSort,
	}
	cmd.Flags().StringSlice("sort-keys", nil, "Default sort fields when none are given as arguments")
	return cmd
}

func runSort(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	keys := cfg.SortKeyNames()
	if len(args) > 0 {
		keys, err = field.ParseNames(args)
		if err != nil {
			return err
		}
	}

	records, err := jsonl.NewReader(cmd.InOrStdin()).ReadAll()
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	logger.Debug("sorting records", "count", len(records), "keys", keys)

	query.Sort(records, keys)
	return jsonl.WriteAll(jsonl.NewWriter(cmd.OutOrStdout()), records)
}
