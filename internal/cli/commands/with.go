package commands

import (
	"github.com/spf13/cobra"

	"github.com/soralog/soralog/pkg/field"
	"github.com/soralog/soralog/pkg/query"
	"github.com/soralog/soralog/pkg/record"
)

// NewWithCommand creates the with command.
func NewWithCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "with <field>...",
		Short: "Keep only the given fields of each record on stdin",
		Long: `Replace each record on stdin with an object holding just the given fields.

Missing fields are null. The json, req and res fields keep their JSON form;
the others are strings.

Example:
  soralog cat | soralog with timestamp level msg | soralog table

Fields: ` + fieldList(),
		Args: cobra.MinimumNArgs(1),
		RunE: runWith,
	}
}

func runWith(cmd *cobra.Command, args []string) error {
	if _, _, err := loadConfig(cmd); err != nil {
		return err
	}

	names, err := field.ParseNames(args)
	if err != nil {
		return err
	}

	return pipe(commandContext(cmd), cmd.InOrStdin(), cmd.OutOrStdout(), func(r record.Record) (any, bool) {
		return query.Project(r, names), true
	})
}
