package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/soralog/soralog/pkg/field"
	"github.com/soralog/soralog/pkg/query"
	"github.com/soralog/soralog/pkg/record"
	"github.com/soralog/soralog/pkg/source"
)

// FilterOptions holds flags for the filter command.
type FilterOptions struct {
	Level  string
	Kinds  []string
	Equals []string
}

// NewFilterCommand creates the filter command.
func NewFilterCommand() *cobra.Command {
	opts := &FilterOptions{}

	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Keep the records on stdin that match every condition",
		Long: `Read records from stdin and print the ones that match every condition.

Records without a level count as info.

Examples:
  soralog cat | soralog filter --level warning
  soralog cat | soralog filter --kind api --kind signaling
  soralog cat | soralog filter --eq node=sora@node-a --eq msg.tag=NODE-DOWN`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFilter(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Level, "level", "l", "", "Minimum level (debug, info, notice, warning, error, emergency)")
	cmd.Flags().StringSliceVarP(&opts.Kinds, "kind", "k", nil, "Only records of this log kind (repeatable)")
	cmd.Flags().StringArrayVar(&opts.Equals, "eq", nil, "Only records whose field renders as value, as name=value (repeatable)")

	return cmd
}

func runFilter(cmd *cobra.Command, args []string, opts *FilterOptions) error {
	if _, _, err := loadConfig(cmd); err != nil {
		return err
	}

	filterOpts, err := opts.filterOptions()
	if err != nil {
		return err
	}
	filter := query.NewFilter(filterOpts...)

	return pipe(commandContext(cmd), cmd.InOrStdin(), cmd.OutOrStdout(), func(r record.Record) (any, bool) {
		return r, filter.Match(r)
	})
}

func (o *FilterOptions) filterOptions() ([]query.FilterOption, error) {
	var opts []query.FilterOption

	if o.Level != "" {
		level, err := field.ParseLevel(o.Level)
		if err != nil {
			return nil, fmt.Errorf("--level: %w", err)
		}
		opts = append(opts, query.WithMinLevel(level))
	}

	if len(o.Kinds) > 0 {
		kinds := make([]source.Kind, len(o.Kinds))
		for i, s := range o.Kinds {
			kind, err := source.ParseKind(s)
			if err != nil {
				return nil, fmt.Errorf("--kind: %w", err)
			}
			kinds[i] = kind
		}
		opts = append(opts, query.WithKinds(kinds...))
	}

	for _, eq := range o.Equals {
		name, value, ok := strings.Cut(eq, "=")
		if !ok {
			return nil, fmt.Errorf("--eq %q: want name=value", eq)
		}
		n, err := field.ParseName(name)
		if err != nil {
			return nil, fmt.Errorf("--eq %q: %w", eq, err)
		}
		opts = append(opts, query.WithFieldEquals(n, value))
	}

	return opts, nil
}
