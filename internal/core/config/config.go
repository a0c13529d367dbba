// Package config handles configuration loading and validation for artfolio.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hay-kot/criterio"
	"gopkg.in/yaml.v3"

	"github.com/hay-kot/artfolio/internal/store"
)

// Config holds the application configuration.
type Config struct {
	Store   StoreConfig   `yaml:"store"`
	History HistoryConfig `yaml:"history"`
	DataDir string        `yaml:"-"` // set by caller, not from config file
}

// StoreConfig selects the catalog backend.
type StoreConfig struct {
	// Kind is one of delimited, structured, sqlite or memory. Aliases csv and
	// json are accepted.
	Kind string `yaml:"kind"`
	// Path is the catalog location. Empty means <data-dir>/artworks.<ext>.
	Path string `yaml:"path"`
}

// HistoryConfig controls undo/redo behavior.
type HistoryConfig struct {
	MaxEntries int  `yaml:"max_entries"` // 0 = unbounded
	Strict     bool `yaml:"strict"`      // report missing targets instead of ignoring them
	Persist    bool `yaml:"persist"`     // keep history between runs
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Store: StoreConfig{
			Kind: string(store.KindDelimited),
		},
		History: HistoryConfig{
			Persist: true,
		},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.DataDir = dataDir
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	if c.Store.Kind == "" {
		c.Store.Kind = DefaultConfig().Store.Kind
	}
	if kind, err := store.ParseKind(c.Store.Kind); err == nil {
		c.Store.Kind = string(kind)
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	var errs criterio.FieldErrorsBuilder

	if c.DataDir == "" {
		errs = errs.Append("data_dir", errors.New("data directory cannot be empty"))
	}

	if _, err := store.ParseKind(c.Store.Kind); err != nil {
		errs = errs.Append("store.kind", err)
	}

	if c.History.MaxEntries < 0 {
		errs = errs.Append("history.max_entries", errors.New("must be 0 (unbounded) or greater"))
	}

	return errs.ToError()
}

// StoreKind returns the configured backend kind.
func (c *Config) StoreKind() store.Kind {
	kind, err := store.ParseKind(c.Store.Kind)
	if err != nil {
		return store.KindDelimited
	}
	return kind
}

// CatalogFile returns the path to the catalog, resolving the default from
// the data directory and store kind. Empty for the memory store.
func (c *Config) CatalogFile() string {
	if c.StoreKind() == store.KindMemory {
		return ""
	}
	if c.Store.Path != "" {
		return c.Store.Path
	}
	return store.DefaultPath(c.StoreKind(), c.DataDir)
}

// JournalFile returns the path to the saved undo/redo history of the
// selected catalog. It sits next to the catalog file so every catalog keeps
// its own history. Empty for the memory store.
func (c *Config) JournalFile() string {
	catalog := c.CatalogFile()
	if catalog == "" {
		return ""
	}
	return catalog + ".history.json"
}

// PersistHistory reports whether undo history is saved between runs.
func (c *Config) PersistHistory() bool {
	return c.History.Persist && c.JournalFile() != ""
}
