// Package statuscmd implements `bootz status`, a report of which
// bootstrap artifacts exist on this host.
package statuscmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"bootz/cmd/bootz/ui"
	"bootz/config"
	"bootz/internal/dbstore"

	"github.com/spf13/cobra"
)

// artifacts is the probed state of everything the bootstrap produces.
type artifacts struct {
	manifestPresent bool
	dirPresent      bool
	dbPresent       bool
	configRows      int
	nlpModel        string
}

// Cmd returns the "bootz status" command. configPath points at the
// root persistent --config flag value.
func Cmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show which bootstrap artifacts exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}

			var state artifacts
			err = ui.Probe(cmd.Context(), "Inspecting artifacts", func(ctx context.Context) error {
				var probeErr error
				state, probeErr = probe(cfg)
				return probeErr
			})
			if err != nil {
				return err
			}

			dbPath := filepath.Join(cfg.DatabaseDir, cfg.DatabaseFile)
			pairs := []ui.Pair{
				ui.KV("manifest "+cfg.Manifest, ui.Bool(state.manifestPresent)),
				ui.KV("directory "+cfg.DatabaseDir, ui.Bool(state.dirPresent)),
				ui.KV("database "+dbPath, ui.Bool(state.dbPresent)),
			}
			if state.dbPresent {
				pairs = append(pairs,
					ui.KV("config rows", strconv.Itoa(state.configRows)),
					ui.KV("nlp model", valueOrMuted(state.nlpModel)),
				)
			}

			fmt.Println(ui.InfoMsg("bootstrap artifacts"))
			fmt.Print(ui.KeyValues("  ", pairs...))

			if state.manifestPresent && state.dirPresent && state.dbPresent {
				fmt.Println(ui.SuccessMsg("bootstrap complete"))
			} else {
				fmt.Println(ui.WarnMsg("bootstrap incomplete; run bootz up (and bootz db init)"))
			}
			return nil
		},
	}
}

func probe(cfg config.Config) (artifacts, error) {
	var state artifacts

	if info, err := os.Stat(cfg.Manifest); err == nil && info.Mode().IsRegular() {
		state.manifestPresent = true
	}
	if info, err := os.Stat(cfg.DatabaseDir); err == nil && info.IsDir() {
		state.dirPresent = true
	}

	dbPath := filepath.Join(cfg.DatabaseDir, cfg.DatabaseFile)
	info, err := os.Stat(dbPath)
	if err != nil || info.IsDir() {
		return state, nil
	}
	state.dbPresent = true

	store, err := dbstore.Open(dbPath)
	if err != nil {
		return state, fmt.Errorf("inspect database: %w", err)
	}
	defer store.Close()

	if state.configRows, err = store.ConfigCount(); err != nil {
		return state, err
	}
	model, ok, err := store.Get(dbstore.KeyNLPModel)
	if err != nil {
		return state, err
	}
	if ok {
		state.nlpModel = model
	}
	return state, nil
}

func valueOrMuted(v string) string {
	if v == "" {
		return ui.Muted("(unset)")
	}
	return v
}
