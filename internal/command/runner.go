package command

import (
	"context"
	"fmt"
	"io"
	"os/exec"
)

// Runner executes one selected shell command. The CLI picks ShellRunner or
// PrintRunner depending on --execute; tests use RecordingRunner.
type Runner interface {
	Run(ctx context.Context, command string) error
}

// ShellRunner executes the command through `sh -c`, streaming output to the
// configured writers.
type ShellRunner struct {
	Stdout io.Writer
	Stderr io.Writer
}

func (r ShellRunner) Run(ctx context.Context, command string) error {
	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("command %q: %w", command, err)
	}
	return nil
}

// PrintRunner writes the command text instead of executing it.
type PrintRunner struct {
	W io.Writer
}

func (r PrintRunner) Run(_ context.Context, command string) error {
	_, err := fmt.Fprintln(r.W, command)
	return err
}

// RecordingRunner captures commands for assertions in tests.
type RecordingRunner struct {
	Commands []string
}

func (r *RecordingRunner) Run(_ context.Context, command string) error {
	r.Commands = append(r.Commands, command)
	return nil
}
