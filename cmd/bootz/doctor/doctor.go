// Package doctorcmd implements `bootz doctor`, a preflight diagnostic
// of the build host.
package doctorcmd

import (
	"context"
	"fmt"

	"bootz/cmd/bootz/ui"
	"bootz/config"
	"bootz/internal/preflight"

	"github.com/spf13/cobra"
)

// Cmd returns the "bootz doctor" command. configPath points at the
// root persistent --config flag value.
func Cmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check that this host can run the bootstrap",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}

			var report preflight.Report
			err = ui.Probe(cmd.Context(), "Checking build host", func(ctx context.Context) error {
				report = preflight.NewChecker(cfg).Run(ctx)
				return nil
			})
			if err != nil {
				return err
			}

			fmt.Println(ui.InfoMsg("build host diagnostic"))
			fmt.Print(ui.KeyValues("  ",
				ui.KV("pip", cfg.Pip),
				ui.KV("python", cfg.Python),
				ui.KV("manifest", cfg.Manifest),
				ui.KV("model", cfg.Model),
				ui.KV("database dir", cfg.DatabaseDir),
			))

			if len(report.Issues) == 0 {
				fmt.Println(ui.SuccessMsg("no issues detected"))
				return nil
			}

			blockers := 0
			fmt.Println(ui.WarnMsg("detected issues:"))
			for i, issue := range report.Issues {
				if issue.Severity == preflight.Blocker {
					blockers++
				}
				fmt.Printf("  %d) [%s] %s: %s\n", i+1, issue.Severity, issue.Component, issue.Problem)
				if issue.Fix != "" {
					fmt.Println(ui.Muted("     fix: " + issue.Fix))
				}
			}

			if blockers > 0 {
				return fmt.Errorf("%d blocking issue(s) found", blockers)
			}
			fmt.Println(ui.SuccessMsg("warnings only; the bootstrap can proceed"))
			return nil
		},
	}
}
