// Package config loads the optional bootz.yaml build configuration.
//
// The file lives in the working directory the build step runs from.
// Every field has a default, so a missing file is a fully valid
// configuration; a present file only overrides what it names.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file location relative to the working
// directory. The bootstrap is a build step and deliberately resolves
// everything against the directory it is invoked from.
const DefaultPath = "bootz.yaml"

// Defaults for the sales-agent deployment this tool bootstraps.
const (
	DefaultPip          = "pip"
	DefaultPython       = "python"
	DefaultManifest     = "requirements.txt"
	DefaultModel        = "pt_core_news_sm"
	DefaultDatabaseDir  = "src/database"
	DefaultDatabaseFile = "app.db"
)

// Config describes the external tools and paths the bootstrap drives.
type Config struct {
	Pip          string `yaml:"pip,omitempty"`           // pip binary
	Python       string `yaml:"python,omitempty"`        // python binary for -m spacy
	Manifest     string `yaml:"manifest,omitempty"`      // dependency manifest path
	Model        string `yaml:"model,omitempty"`         // spaCy model identifier
	DatabaseDir  string `yaml:"database-dir,omitempty"`  // directory the app database lives in
	DatabaseFile string `yaml:"database-file,omitempty"` // database file name inside DatabaseDir
}

// Default returns a Config populated with every default value.
func Default() Config {
	return Config{
		Pip:          DefaultPip,
		Python:       DefaultPython,
		Manifest:     DefaultManifest,
		Model:        DefaultModel,
		DatabaseDir:  DefaultDatabaseDir,
		DatabaseFile: DefaultDatabaseFile,
	}
}

// Load reads the config file at path, falling back to DefaultPath when
// path is empty. Only the implicit DefaultPath may be absent — it then
// yields the defaults. A path the caller named explicitly must exist.
// Present fields replace defaults; absent fields keep them.
func Load(path string) (Config, error) {
	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path = DefaultPath
	}

	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	cfg.merge(file)

	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) merge(o Config) {
	if o.Pip != "" {
		c.Pip = o.Pip
	}
	if o.Python != "" {
		c.Python = o.Python
	}
	if o.Manifest != "" {
		c.Manifest = o.Manifest
	}
	if o.Model != "" {
		c.Model = o.Model
	}
	if o.DatabaseDir != "" {
		c.DatabaseDir = o.DatabaseDir
	}
	if o.DatabaseFile != "" {
		c.DatabaseFile = o.DatabaseFile
	}
}

func (c Config) validate() error {
	fields := []struct {
		name  string
		value string
	}{
		{"pip", c.Pip},
		{"python", c.Python},
		{"manifest", c.Manifest},
		{"model", c.Model},
		{"database-dir", c.DatabaseDir},
		{"database-file", c.DatabaseFile},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("field %s must not be blank", f.name)
		}
	}
	if strings.ContainsAny(c.DatabaseFile, "/\\") {
		return fmt.Errorf("database-file %q must be a bare file name", c.DatabaseFile)
	}
	return nil
}
