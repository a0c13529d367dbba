package commands

import (
	"os"
	"path/filepath"

	"github.com/hay-kot/artfolio/internal/catalog"
	"github.com/hay-kot/artfolio/internal/core/artwork"
	"github.com/hay-kot/artfolio/internal/core/config"
	"github.com/hay-kot/artfolio/internal/core/history"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	DataDir    string

	// StoreKind and StorePath override the store section of the config file
	StoreKind string
	StorePath string

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config

	// Store is the opened catalog store; closed in the After hook
	Store artwork.Store

	// Journal persists undo history; nil when history.persist is off
	Journal history.Journal

	// Service is the catalog service used by every catalog command
	Service *catalog.Service
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "artfolio", "config.yaml")
}

// DefaultDataDir returns the default data directory using XDG_DATA_HOME.
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "artfolio")
}
