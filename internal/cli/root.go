// Package cli implements the sunwatch command-line surface: show-time,
// run-commands, collect-images, and init. Each action loads the configuration
// once, runs, and surfaces typed errors to main, which logs a single line and
// exits with the code carried by the error.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/mpeters/sunwatch/internal/config"
)

// defaultConfigPath is used when --config is not given.
const defaultConfigPath = "sunwatch.yaml"

// RootOptions holds global flags shared by all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string

	// RunID is a UUIDv7 token attached to every log line of one
	// invocation, making interleaved cron output attributable.
	RunID string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the sunwatch CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "sunwatch",
		Short: "Sun-event commands and time-lapse frame collection",
		Long: `sunwatch computes sun-event times for a configured location, runs or
prints shell commands keyed by the offset from a chosen event, and collects
timestamped frames into numbered sequences for time-lapse assembly.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}

			logLevel := slog.LevelInfo
			if opts.Verbose {
				logLevel = slog.LevelDebug
			}
			handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: logLevel,
			})
			opts.RunID = uuid.Must(uuid.NewV7()).String()
			slog.SetDefault(slog.New(handler).With("run", opts.RunID))
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", defaultConfigPath, "path to configuration file")

	cmd.AddCommand(NewShowTimeCommand(opts))
	cmd.AddCommand(NewRunCommandsCommand(opts))
	cmd.AddCommand(NewCollectImagesCommand(opts))
	cmd.AddCommand(NewInitCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// loadConfig loads and validates the configuration, mapping failures onto
// command errors (exit code 2).
func loadConfig(opts *RootOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load configuration", err)
	}
	return cfg, nil
}
