package cli

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mpeters/sunwatch/internal/sequence"
)

// CollectImagesOptions holds flags for the collect-images command.
type CollectImagesOptions struct {
	*RootOptions
	Offset int
	Target string
	Subdir string
	Purge  bool
	Silent bool
	Copy   bool
}

// NewCollectImagesCommand creates the collect-images command.
func NewCollectImagesCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CollectImagesOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "collect-images",
		Short: "Collect captured frames into a numbered time-lapse sequence",
		Long: `Collect the frames in the configured source directory whose names end
in the signed offset suffix (e.g. "+1" selects "...+1.jpg" from each capture
group), order them by modification time, and link or copy them into the
target directory as 0.jpg, 1.jpg, and so on.

A relative --target resolves under the configured source directory.

Example:
  sunwatch collect-images --offset 1 --target timelapse
  sunwatch collect-images --offset -1 --target /tmp/seq --purge --silent --copy`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCollectImages(opts, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Offset, "offset", 0, "index of images to be collected (required)")
	cmd.Flags().StringVar(&opts.Target, "target", "", "target path for images (required)")
	cmd.Flags().StringVar(&opts.Subdir, "subdir", "", "sub-directory to look for images")
	cmd.Flags().BoolVar(&opts.Purge, "purge", false, "remove old files in the target directory before proceeding")
	cmd.Flags().BoolVar(&opts.Silent, "silent", false, "do not ask for confirmation before purging")
	cmd.Flags().BoolVar(&opts.Copy, "copy", false, "copy files instead of creating symlinks")
	_ = cmd.MarkFlagRequired("offset")
	_ = cmd.MarkFlagRequired("target")

	return cmd
}

func runCollectImages(opts *CollectImagesOptions, cmd *cobra.Command) error {
	cfg, err := loadConfig(opts.RootOptions)
	if err != nil {
		return err
	}

	collector := &sequence.Collector{
		Confirm: stdinConfirm(cmd),
		Out:     cmd.OutOrStdout(),
	}
	slog.Debug("collecting images",
		"source", cfg.SourceDir, "subdir", opts.Subdir,
		"offset", opts.Offset, "target", opts.Target,
		"purge", opts.Purge, "copy", opts.Copy)

	result, err := collector.Collect(sequence.Options{
		SourceDir: cfg.SourceDir,
		Subdir:    opts.Subdir,
		Offset:    opts.Offset,
		TargetDir: opts.Target,
		Purge:     opts.Purge,
		Silent:    opts.Silent,
		Copy:      opts.Copy,
	})
	if err != nil {
		return collectError(opts.RootOptions, cmd, err)
	}

	out := cmd.OutOrStdout()
	switch {
	case result.Cancelled:
		fmt.Fprintln(out, "Operation cancelled.")
	case result.Count == 0:
		fmt.Fprintln(out, "No files found to be processed.")
	case opts.Copy:
		fmt.Fprintf(out, "Successfully copied %d files to %s.\n", result.Count, opts.Target)
	default:
		fmt.Fprintf(out, "Successfully created %d symlinks to %s.\n", result.Count, opts.Target)
	}
	return nil
}

// stdinConfirm prompts on the command's output and reads a y/n answer from
// its input. Anything other than "y" declines.
func stdinConfirm(cmd *cobra.Command) func(prompt string) (bool, error) {
	return func(prompt string) (bool, error) {
		fmt.Fprintln(cmd.OutOrStdout(), prompt)
		reader := bufio.NewReader(cmd.InOrStdin())
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return false, nil
		}
		return strings.ToLower(strings.TrimSpace(line)) == "y", nil
	}
}

// collectError maps sequencer failures onto the exit taxonomy: a bad source
// directory is a configuration problem, everything else a filesystem failure.
func collectError(opts *RootOptions, cmd *cobra.Command, err error) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
	if errors.Is(err, sequence.ErrSourceDir) {
		_ = formatter.Error(ErrCodeConfig, err.Error(), nil)
		return WrapExitError(ExitCommandError, "invalid source directory", err)
	}
	var opErr *sequence.OpError
	if errors.As(err, &opErr) {
		_ = formatter.Error(ErrCodeFS, err.Error(), map[string]string{"op": opErr.Op, "path": opErr.Path})
		return WrapExitError(ExitFailure, "collection failed", err)
	}
	return WrapExitError(ExitFailure, "collection failed", err)
}
