package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mpeters/sunwatch/internal/config"
)

// InitOptions holds flags for the init command.
type InitOptions struct {
	*RootOptions
	Force bool
}

// NewInitCommand creates the init command.
func NewInitCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InitOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a sample configuration file",
		Long: `Write a commented sample configuration to the config path (--config,
default ` + defaultConfigPath + `). Refuses to overwrite an existing file
unless --force is given.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(opts, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Force, "force", false, "overwrite an existing configuration file")

	return cmd
}

func runInit(opts *InitOptions, cmd *cobra.Command) error {
	path := opts.ConfigPath
	if !opts.Force {
		if _, err := os.Stat(path); err == nil {
			return NewExitError(ExitCommandError, fmt.Sprintf("config file %s already exists (use --force to overwrite)", path))
		}
	}
	if err := os.WriteFile(path, []byte(config.Sample()), 0o644); err != nil {
		return WrapExitError(ExitFailure, "failed to write config file", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created %s from sample.\n", path)
	return nil
}
