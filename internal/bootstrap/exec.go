package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// CommandRunner runs an external tool to completion. A non-nil error
// means the tool failed; ExitCode extracts the child status from it.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) error
}

// ExecRunner runs tools as child processes with inherited output
// streams, so pip and spacy progress reaches the operator unmodified.
type ExecRunner struct {
	stdout io.Writer
	stderr io.Writer
}

// ExecOption configures an ExecRunner.
type ExecOption func(*ExecRunner)

// WithStreams redirects child stdout/stderr, used by tests to capture
// tool output.
func WithStreams(stdout, stderr io.Writer) ExecOption {
	return func(r *ExecRunner) {
		r.stdout = stdout
		r.stderr = stderr
	}
}

// NewExecRunner creates a runner wired to the process streams.
func NewExecRunner(opts ...ExecOption) *ExecRunner {
	r := &ExecRunner{stdout: os.Stdout, stderr: os.Stderr}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("run %s: %w", name, err)
	}
	return nil
}

// ExitCode maps a step error to the process exit code. A wrapped
// exec.ExitError yields the child's status; anything else (tool not on
// PATH, filesystem failure) has no child status and yields 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return 1
}
