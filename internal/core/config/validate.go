package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hay-kot/criterio"

	"github.com/hay-kot/artfolio/internal/store"
)

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// ValidateDeep performs comprehensive validation of the configuration.
// Unlike Validate(), this checks file access for the config file, data
// directory and catalog path. Returns criterio.FieldErrors.
func (c *Config) ValidateDeep(configPath string) error {
	var errs criterio.FieldErrorsBuilder

	if err := c.Validate(); err != nil {
		var fieldErrs criterio.FieldErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				errs = errs.Append(fe.Field, fe.Err)
			}
		} else {
			errs = errs.Append("config", err)
		}
	}

	if configPath != "" {
		if info, err := os.Stat(configPath); err == nil {
			if info.IsDir() {
				errs = errs.Append("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
			}
		} else if !os.IsNotExist(err) {
			errs = errs.Append("config_file", fmt.Errorf("cannot access %s: %w", configPath, err))
		}
	}

	if c.DataDir != "" {
		if info, err := os.Stat(c.DataDir); err == nil {
			if !info.IsDir() {
				errs = errs.Append("data_dir", fmt.Errorf("%s exists but is not a directory", c.DataDir))
			}
		} else if !os.IsNotExist(err) {
			errs = errs.Append("data_dir", fmt.Errorf("cannot access %s: %w", c.DataDir, err))
		}
	}

	if path := c.CatalogFile(); path != "" {
		if info, err := os.Stat(path); err == nil {
			if info.IsDir() {
				errs = errs.Append("store.path", fmt.Errorf("%s is a directory, not a file", path))
			}
		} else if !os.IsNotExist(err) {
			errs = errs.Append("store.path", fmt.Errorf("cannot access %s: %w", path, err))
		}
	}

	return errs.ToError()
}

// Warnings returns non-fatal issues with the configuration.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	if c.StoreKind() == store.KindMemory && c.History.Persist {
		warnings = append(warnings, ValidationWarning{
			Category: "History",
			Item:     "history.persist",
			Message:  "memory store keeps nothing between runs, so history is not saved either",
		})
	}

	if path := c.CatalogFile(); path != "" {
		want := "." + c.StoreKind().Ext()
		if ext := filepath.Ext(path); ext != want {
			warnings = append(warnings, ValidationWarning{
				Category: "Store",
				Item:     "store.path",
				Message:  fmt.Sprintf("%s store usually uses a %s file, got %q", c.StoreKind(), want, filepath.Base(path)),
			})
		}
	}

	if c.History.MaxEntries > 0 && c.History.MaxEntries < 5 {
		warnings = append(warnings, ValidationWarning{
			Category: "History",
			Item:     "history.max_entries",
			Message:  fmt.Sprintf("only the last %d change(s) can be undone", c.History.MaxEntries),
		})
	}

	return warnings
}
