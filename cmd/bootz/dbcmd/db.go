// Package dbcmd groups `bootz db` subcommands for the application
// database the bootstrap prepares a home for.
package dbcmd

import (
	"fmt"
	"path/filepath"

	"bootz/cmd/bootz/ui"
	"bootz/config"
	"bootz/internal/bootstrap"
	"bootz/internal/dbstore"

	"github.com/spf13/cobra"
)

// Cmd returns the "bootz db" command group. configPath points at the
// root persistent --config flag value.
func Cmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Manage the application database",
	}
	cmd.AddCommand(initCmd(configPath))
	return cmd
}

func initCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create and seed the application database",
		Long: "Creates the database file inside the bootstrap directory and seeds " +
			"the system_config table the sales-agent service reads at startup. " +
			"Safe to run repeatedly.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}

			// db init is usable standalone, before or after bootz up.
			if err := bootstrap.EnsureDir(cfg.DatabaseDir); err != nil {
				return err
			}

			dbPath := filepath.Join(cfg.DatabaseDir, cfg.DatabaseFile)
			store, err := dbstore.Open(dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Seed(cfg.Model); err != nil {
				return err
			}

			fmt.Println(ui.SuccessMsg("database %s ready", ui.Accent(dbPath)))
			fmt.Print(ui.KeyValues("  ",
				ui.KV("schema", dbstore.SchemaVersion),
				ui.KV("nlp model", cfg.Model),
			))
			return nil
		},
	}
}
