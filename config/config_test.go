package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingDefaultPathReturnsDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got, want := cfg, Default(); got != want {
		t.Fatalf("Load() = %+v, want defaults %+v", got, want)
	}
}

func TestLoadExplicitMissingPathErrors(t *testing.T) {
	t.Parallel()

	if _, err := Load(filepath.Join(t.TempDir(), "bootz.yaml")); err == nil {
		t.Fatal("Load() tolerated an explicitly named missing config file")
	}
}

func TestLoadOverridesOnlyPresentFields(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bootz.yaml")
	body := "pip: pip3\nmodel: pt_core_news_lg\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Pip != "pip3" {
		t.Fatalf("Pip = %q, want pip3", cfg.Pip)
	}
	if cfg.Model != "pt_core_news_lg" {
		t.Fatalf("Model = %q, want pt_core_news_lg", cfg.Model)
	}
	if cfg.Manifest != DefaultManifest {
		t.Fatalf("Manifest = %q, want default %q", cfg.Manifest, DefaultManifest)
	}
	if cfg.DatabaseDir != DefaultDatabaseDir {
		t.Fatalf("DatabaseDir = %q, want default %q", cfg.DatabaseDir, DefaultDatabaseDir)
	}
}

func TestLoadRejectsBlankOverride(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bootz.yaml")
	if err := os.WriteFile(path, []byte("manifest: \"  \"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("Load() accepted a blank manifest override")
	}
}

func TestLoadRejectsPathyDatabaseFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bootz.yaml")
	if err := os.WriteFile(path, []byte("database-file: nested/app.db\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("Load() accepted a database-file containing a path separator")
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bootz.yaml")
	if err := os.WriteFile(path, []byte("pip: [unclosed\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("Load() accepted malformed yaml")
	}
}
