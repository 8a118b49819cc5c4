// Package bootstrap runs the fixed deployment build sequence for the
// sales-agent service: install Python dependencies, download the spaCy
// language model, and prepare the application database directory.
//
// The sequence is ordered, single-shot and fail-fast: the first failing
// step aborts the run and its child exit code becomes the process exit
// code. Status lines go to stdout; everything else (logs, progress UI)
// stays on stderr so the stdout contract of the build step is stable.
package bootstrap

import (
	"context"
	"fmt"

	"bootz/config"
	"bootz/internal/check"
)

// Stdout status lines, one per step. Deployment tooling greps for
// these, so they are fixed literals rather than formatted messages.
const (
	LabelDeps  = "Installing Python dependencies..."
	LabelModel = "Downloading spaCy language model..."
	LabelDir   = "Creating database directory..."
	LabelDone  = "Build completed successfully!"
)

// Step is one ordered unit of the bootstrap sequence. Label is the
// contractual stdout line; Title is the quieter description progress
// renderers show. Run may be nil for steps whose only effect is their
// status line.
type Step struct {
	ID    string
	Label string
	Title string
	Run   func(ctx context.Context) error
}

// StepError marks a failed step and carries the exit code the process
// should terminate with. For command steps that is the child's exit
// code; steps that fail without a child exit status report code 1.
type StepError struct {
	StepID   string
	ExitCode int
	Err      error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %s: %v", e.StepID, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Steps builds the canonical sequence from a resolved config. External
// tools run through runner; the directory step touches the filesystem
// directly.
func Steps(cfg config.Config, runner CommandRunner) []Step {
	check.Assert(runner != nil, "bootstrap.Steps: runner must not be nil")

	return []Step{
		{
			ID:    "deps",
			Label: LabelDeps,
			Title: fmt.Sprintf("installing python dependencies from %s", cfg.Manifest),
			Run: func(ctx context.Context) error {
				return runner.Run(ctx, cfg.Pip, "install", "-r", cfg.Manifest)
			},
		},
		{
			ID:    "model",
			Label: LabelModel,
			Title: fmt.Sprintf("downloading spaCy model %s", cfg.Model),
			Run: func(ctx context.Context) error {
				return runner.Run(ctx, cfg.Python, "-m", "spacy", "download", cfg.Model)
			},
		},
		{
			ID:    "dbdir",
			Label: LabelDir,
			Title: fmt.Sprintf("creating %s", cfg.DatabaseDir),
			Run: func(ctx context.Context) error {
				return EnsureDir(cfg.DatabaseDir)
			},
		},
		{
			ID:    "done",
			Label: LabelDone,
		},
	}
}
