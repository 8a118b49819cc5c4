package bootstrap

import (
	"context"
	"fmt"
	"io"
	"os"

	"bootz/internal/check"
)

// StepWrapper surrounds the execution of one step, typically to record
// a telemetry span. It must call fn exactly once and return its error.
type StepWrapper func(ctx context.Context, id string, fn func(context.Context) error) error

// Sequencer executes steps in order, printing each step's label to the
// output writer before running it, and stops at the first failure.
type Sequencer struct {
	steps []Step
	out   io.Writer
	wrap  StepWrapper
}

// SequencerOption configures a Sequencer.
type SequencerOption func(*Sequencer)

// WithOutput redirects the status lines. Defaults to stdout.
func WithOutput(w io.Writer) SequencerOption {
	return func(s *Sequencer) { s.out = w }
}

// WithStepWrapper installs a wrapper around each non-nil step Run.
func WithStepWrapper(wrap StepWrapper) SequencerOption {
	return func(s *Sequencer) { s.wrap = wrap }
}

// NewSequencer creates a sequencer over the given steps.
func NewSequencer(steps []Step, opts ...SequencerOption) *Sequencer {
	s := &Sequencer{
		steps: steps,
		out:   os.Stdout,
		wrap: func(ctx context.Context, _ string, fn func(context.Context) error) error {
			return fn(ctx)
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run executes the sequence. The returned error, if any, is a
// *StepError identifying the failed step and the exit code to
// terminate with. Steps after the failed one never run and never
// print their labels.
func (s *Sequencer) Run(ctx context.Context) error {
	for _, step := range s.steps {
		check.Assertf(step.ID != "", "sequencer step without id (label %q)", step.Label)

		fmt.Fprintln(s.out, step.Label)
		if step.Run == nil {
			continue
		}

		if err := s.wrap(ctx, step.ID, step.Run); err != nil {
			return &StepError{StepID: step.ID, ExitCode: ExitCode(err), Err: err}
		}
	}
	return nil
}
