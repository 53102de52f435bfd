package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/soralog/soralog/pkg/field"
	"github.com/soralog/soralog/pkg/jsonl"
	"github.com/soralog/soralog/pkg/output"
	"github.com/soralog/soralog/pkg/query"
)

// NewCountCommand creates the count command.
func NewCountCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "count [field...]",
		Short: "Count the records on stdin, grouped by fields",
		Long: `Count the records on stdin in a tree keyed by the given fields.

Each field adds a level of nesting. A record without a field is counted one
level up; where its siblings were split further it lands under "__OTHER__".

Example:
  soralog cat | soralog count kind level

Fields: ` + fieldList(),
		RunE: runCount,
	}
	addOutputFlag(cmd)
	return cmd
}

func runCount(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)

	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	names, err := field.ParseNames(args)
	if err != nil {
		return err
	}

	counter := query.NewCounter()
	reader := jsonl.NewReader(cmd.InOrStdin())
	for {
		r, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
		counter.Add(r, names)
	}

	formatter, err := output.NewFormatter(cfg.Output, output.FormatOptions{})
	if err != nil {
		return err
	}
	return finish(formatter.Format(ctx, counter, cmd.OutOrStdout()))
}
