package runner

import (
	"context"
	"io"
	"os/exec"
)

// Executor runs one bootstrap command.
type Executor interface {
	Execute(ctx context.Context, command string, out io.Writer) error
}

// ShellExecutor runs commands through "sh -c".
type ShellExecutor struct {
	// Dir is the working directory; empty means the current one.
	Dir string
}

// Execute runs command, sending both output streams to out.
func (e ShellExecutor) Execute(ctx context.Context, command string, out io.Writer) error {
	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Dir = e.Dir
	cmd.Stdout = out
	cmd.Stderr = out
	return cmd.Run()
}
