// Package upcmd implements `bootz up`, the deployment bootstrap
// sequence: install Python dependencies, download the spaCy model,
// create the database directory, report completion.
package upcmd

import (
	"bootz/cmd/bootz/ui"
	"bootz/config"
	"bootz/internal/bootstrap"
	"bootz/pkg/telemetry"

	"github.com/spf13/cobra"
)

// Cmd returns the "bootz up" command. configPath points at the root
// persistent --config flag value.
func Cmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run the deployment bootstrap sequence",
		Long: "Installs Python dependencies from the manifest, downloads the spaCy " +
			"language model and creates the application database directory, in that " +
			"order, stopping at the first failure.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}

			telemetryOut := ui.NewTelemetryOutput()
			defer telemetryOut.Close()
			tracer := telemetryOut.Tracer("bootz/cmd/up")

			steps := bootstrap.Steps(cfg, bootstrap.NewExecRunner())
			op, err := telemetry.Begin(cmd.Context(), tracer, "bootstrap.up", planFromSteps(steps))
			if err != nil {
				return err
			}
			var opErr error
			defer func() {
				op.End(opErr)
			}()

			seq := bootstrap.NewSequencer(steps,
				bootstrap.WithOutput(cmd.OutOrStdout()),
				bootstrap.WithStepWrapper(op.Step),
			)
			opErr = seq.Run(op.Context())
			return opErr
		},
	}
}

// planFromSteps builds the progress plan. Steps without a Run have no
// span and stay out of the checklist; their stdout label is all there
// is to them.
func planFromSteps(steps []bootstrap.Step) telemetry.Plan {
	planned := make([]telemetry.PlannedStep, 0, len(steps))
	for _, step := range steps {
		if step.Run == nil {
			continue
		}
		planned = append(planned, telemetry.PlannedStep{ID: step.ID, Title: step.Title})
	}
	return telemetry.Plan{Steps: planned}
}
