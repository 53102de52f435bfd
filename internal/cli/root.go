// Package cli provides the command-line interface for soralog.
package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/soralog/soralog/internal/cli/commands"
	"github.com/soralog/soralog/pkg/config"
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	// Report writes to a closed stdout as EPIPE errors instead of dying, so
	// that `soralog cat | head` ends cleanly.
	signal.Ignore(syscall.SIGPIPE)

	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		// Print error to stderr (SilenceErrors prevents Cobra from doing this)
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}
	return 0
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "soralog",
		Short: "Query the log files of a Sora server",
		Long: `soralog reads the logs a Sora server writes (the JSON Lines files and
crash.log) and turns them into a single stream of records that can be
filtered, sorted, counted and tabulated by field name.

Commands that read logs from disk (list, cat, summary) print JSON Lines;
the others read such a stream on stdin, so they compose with pipes:

  soralog cat --root /var/log/sora | soralog filter --level warning | soralog sort

SETTINGS:
  Settings come from defaults, then .soralog.yaml in the working directory
  (or --config), then SORALOG_* environment variables, then flags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("config", "", "Settings file (default .soralog.yaml if present)")
	rootCmd.PersistentFlags().String("log-level", config.DefaultLogLevel, "Diagnostics level on stderr (debug, info, warn, error)")

	// Add subcommands
	rootCmd.AddCommand(commands.NewListCommand())
	rootCmd.AddCommand(commands.NewCatCommand())
	rootCmd.AddCommand(commands.NewFilterCommand())
	rootCmd.AddCommand(commands.NewSortCommand())
	rootCmd.AddCommand(commands.NewCountCommand())
	rootCmd.AddCommand(commands.NewWithCommand())
	rootCmd.AddCommand(commands.NewTableCommand())
	rootCmd.AddCommand(commands.NewPPCommand())
	rootCmd.AddCommand(commands.NewSummaryCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
