package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/soralog/soralog/pkg/jsonl"
	"github.com/soralog/soralog/pkg/output"
)

// NewTableCommand creates the table command.
func NewTableCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "table",
		Short: "Render the JSON objects on stdin as a markdown table",
		Long: `Read JSON objects from stdin and print them as a markdown table.

Columns are every key seen, in first-seen order. Arrays are joined with ".",
nested objects show as <object> and null is left empty.`,
		Args: cobra.NoArgs,
		RunE: runTable,
	}
}

func runTable(cmd *cobra.Command, args []string) error {
	if _, _, err := loadConfig(cmd); err != nil {
		return err
	}

	values, err := jsonl.NewReader(cmd.InOrStdin()).ReadAllValues()
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	return finish(output.WriteTable(cmd.OutOrStdout(), values))
}
