package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mpeters/sunwatch/internal/command"
	"github.com/mpeters/sunwatch/internal/sun"
)

// RunCommandsOptions holds flags for the run-commands command.
type RunCommandsOptions struct {
	*RootOptions
	Execute bool

	// Clock and Runner allow overriding time and command execution (for
	// testing). Nil means system clock and, depending on --execute, a real
	// shell or print-only runner.
	Clock  sun.Clock
	Runner command.Runner
}

// NewRunCommandsCommand creates the run-commands command.
func NewRunCommandsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunCommandsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run-commands",
		Short: "Select and run (or print) commands for the current sun offset",
		Long: `Compute the signed offset between now and the configured event, then
run every configured rule matching that offset, in rule order. Without
--execute the selected commands are printed instead of run.

Example:
  sunwatch run-commands
  sunwatch run-commands --execute`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommands(opts, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Execute, "execute", false, "execute commands through the shell instead of printing them")

	return cmd
}

func runCommands(opts *RunCommandsOptions, cmd *cobra.Command) error {
	cfg, err := loadConfig(opts.RootOptions)
	if err != nil {
		return err
	}

	ev, err := sun.ParseEvent(cfg.Event)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid configured event", err)
	}
	calc, err := cfg.Calculator()
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid location", err)
	}

	clock := opts.Clock
	if clock == nil {
		clock = sun.SystemClock{}
	}
	now := clock.Now().In(calc.Location)

	value, err := calc.Value(ev, now)
	if err != nil {
		return astroError(opts.RootOptions, cmd, err)
	}

	runner := opts.Runner
	if runner == nil {
		if opts.Execute {
			runner = command.ShellRunner{Stdout: cmd.OutOrStdout(), Stderr: cmd.ErrOrStderr()}
		} else {
			runner = command.PrintRunner{W: cmd.OutOrStdout()}
		}
	}

	selected := cfg.Rules.Select(value)
	slog.Debug("selected commands", "event", ev, "value", value, "count", len(selected))

	for _, c := range selected {
		if err := runner.Run(cmd.Context(), c); err != nil {
			return WrapExitError(ExitFailure, "command failed", err)
		}
	}
	return nil
}
