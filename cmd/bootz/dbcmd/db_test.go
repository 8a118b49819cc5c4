package dbcmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"bootz/internal/dbstore"
)

func writeConfig(t *testing.T, databaseDir string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bootz.yaml")
	body := fmt.Sprintf("database-dir: %s\n", databaseDir)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func runInit(t *testing.T, configPath string) error {
	t.Helper()
	cmd := Cmd(&configPath)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"init"})
	return cmd.Execute()
}

func TestDBInitCreatesAndSeedsDatabase(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "src", "database")
	configPath := writeConfig(t, dir)

	if err := runInit(t, configPath); err != nil {
		t.Fatalf("db init error = %v", err)
	}

	store, err := dbstore.Open(filepath.Join(dir, "app.db"))
	if err != nil {
		t.Fatalf("open seeded db: %v", err)
	}
	defer store.Close()

	model, ok, err := store.Get(dbstore.KeyNLPModel)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !ok || model != "pt_core_news_sm" {
		t.Fatalf("seeded model = %q, %v; want pt_core_news_sm, true", model, ok)
	}
}

func TestDBInitIsRepeatable(t *testing.T) {
	t.Parallel()

	configPath := writeConfig(t, filepath.Join(t.TempDir(), "src", "database"))
	for i := 0; i < 2; i++ {
		if err := runInit(t, configPath); err != nil {
			t.Fatalf("db init run %d error = %v", i+1, err)
		}
	}
}

func TestDBInitRefusesFileCollision(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "database")
	if err := os.WriteFile(dir, []byte("file"), 0o644); err != nil {
		t.Fatalf("write collision file: %v", err)
	}

	if err := runInit(t, writeConfig(t, dir)); err == nil {
		t.Fatal("db init succeeded with a file at the database dir path")
	}
}
