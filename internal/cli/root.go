package cli

import (
	"github.com/spf13/cobra"

	"github.com/eigerco/intsafe/pkg/log"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	LogLevel string
	JSON     bool
}

// NewRootCommand creates the root command for the safeiop CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "safeiop",
		Short: "Overflow-checked integer arithmetic",
		Long:  "Evaluates typed integer expressions with overflow, shift and cast checking.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := log.ParseLogLevel(opts.LogLevel)
			if err != nil {
				return err
			}
			logType := log.ConsoleLogger
			if opts.JSON {
				logType = log.JSONLogger
			}
			log.Init(log.Options{LogLevel: level, Type: logType})
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "warn", "log level (trace|debug|info|warn|error)")
	cmd.PersistentFlags().BoolVar(&opts.JSON, "json", false, "machine-readable JSON output")

	cmd.AddCommand(NewEvalCommand(opts))

	return cmd
}
