package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/soralog/soralog/pkg/jsonl"
)

// NewPPCommand creates the pp command.
func NewPPCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "pp",
		Short: "Pretty-print the JSON values on stdin",
		Args:  cobra.NoArgs,
		RunE:  runPP,
	}
}

func runPP(cmd *cobra.Command, args []string) error {
	if _, _, err := loadConfig(cmd); err != nil {
		return err
	}

	reader := jsonl.NewReader(cmd.InOrStdin())
	writer := jsonl.NewWriter(cmd.OutOrStdout(), jsonl.WithPretty(true))
	for {
		v, err := reader.NextValue()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
		if err := writer.Write(v); err != nil {
			return finish(err)
		}
	}
	return finish(writer.Flush())
}
