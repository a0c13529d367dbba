package doctor

import (
	"context"
	"errors"
	"fmt"

	"github.com/hay-kot/criterio"

	"github.com/hay-kot/artfolio/internal/core/config"
	"github.com/hay-kot/artfolio/internal/store"
)

// ConfigCheck runs deep validation on the loaded config and reports the
// store it selects.
type ConfigCheck struct {
	config     *config.Config
	configPath string
}

func NewConfigCheck(cfg *config.Config, configPath string) *ConfigCheck {
	return &ConfigCheck{config: cfg, configPath: configPath}
}

func (c *ConfigCheck) Name() string {
	return "Configuration"
}

func (c *ConfigCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}

	if c.config == nil {
		result.Fail("Config loaded", "configuration not loaded")
		return result
	}

	err := c.config.ValidateDeep(c.configPath)
	warnings := c.config.Warnings()

	if err == nil && len(warnings) == 0 {
		result.Pass("Config valid", "")
	}

	var fieldErrs criterio.FieldErrors
	switch {
	case err == nil:
	case errors.As(err, &fieldErrs):
		for _, fe := range fieldErrs {
			result.Fail(fieldLabel(fe.Field), fe.Err.Error())
		}
	default:
		result.Fail("validation", err.Error())
	}

	for _, w := range warnings {
		label := w.Category
		if w.Item != "" {
			label = fmt.Sprintf("%s (%s)", w.Category, w.Item)
		}
		result.Warn(label, w.Message)
	}

	result.Pass("Store", storeDetail(c.config))
	return result
}

func fieldLabel(field string) string {
	if field == "" {
		return "validation"
	}
	return field
}

func storeDetail(cfg *config.Config) string {
	kind := cfg.StoreKind()
	if kind == store.KindMemory {
		return "memory, nothing is saved"
	}
	return fmt.Sprintf("%s at %s", kind, cfg.CatalogFile())
}
