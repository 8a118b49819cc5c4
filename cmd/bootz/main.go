package main

import (
	"errors"
	"fmt"
	"os"

	"bootz/cmd/bootz/dbcmd"
	doctorcmd "bootz/cmd/bootz/doctor"
	statuscmd "bootz/cmd/bootz/status"
	"bootz/cmd/bootz/ui"
	"bootz/cmd/bootz/upcmd"
	"bootz/internal/bootstrap"
	"bootz/internal/logging"

	"github.com/spf13/cobra"
)

// version is stamped by the release build via -ldflags.
var version = "dev"

func main() {
	var (
		debug         bool
		noInteraction bool
		configPath    string
	)
	if err := logging.Configure(logging.LevelWarn); err != nil {
		_, _ = os.Stderr.WriteString("configure logger: " + err.Error() + "\n")
		os.Exit(1)
	}

	root := &cobra.Command{
		Use:           "bootz",
		Short:         "Deployment bootstrap for the sales-agent service",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ui.ConfigureInteraction(noInteraction)

			level := logging.LevelWarn
			if debug {
				level = logging.LevelDebug
			}
			return logging.Configure(level)
		},
	}
	root.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	root.PersistentFlags().BoolVar(&noInteraction, "no-interaction", false, "Disable animated output and color")
	root.PersistentFlags().StringVar(&configPath, "config", "", "Path to bootz.yaml (defaults to ./bootz.yaml)")

	root.AddCommand(upcmd.Cmd(&configPath))
	root.AddCommand(doctorcmd.Cmd(&configPath))
	root.AddCommand(statuscmd.Cmd(&configPath))
	root.AddCommand(dbcmd.Cmd(&configPath))

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.ErrorMsg("%v", err))

		// A failed bootstrap step terminates with the failing tool's
		// exit code so callers can react to the exact failure.
		var stepErr *bootstrap.StepError
		if errors.As(err, &stepErr) && stepErr.ExitCode > 0 {
			os.Exit(stepErr.ExitCode)
		}
		os.Exit(1)
	}
}
