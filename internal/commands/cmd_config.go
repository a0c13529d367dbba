package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/hay-kot/artfolio/internal/core/config"
	"github.com/hay-kot/artfolio/internal/printer"
)

type ConfigCmd struct {
	flags  *Flags
	format string
}

func NewConfigCmd(flags *Flags) *ConfigCmd {
	return &ConfigCmd{flags: flags}
}

func (cmd *ConfigCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Inspect and validate the configuration",
		Commands: []*cli.Command{
			{
				Name:        "show",
				Usage:       "Print the effective configuration as YAML",
				UsageText:   "artfolio config show",
				Description: "Prints the config after defaults and the --store and --file overrides are applied.",
				Action:      cmd.runShow,
			},
			{
				Name:        "validate",
				Usage:       "Validate the configuration file",
				UsageText:   "artfolio config validate [--format text|json]",
				Description: "Checks the store kind, history limits and that the config, data directory and catalog paths are usable.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				},
				Action: cmd.runValidate,
			},
		},
	})

	return app
}

func (cmd *ConfigCmd) loaded() (*config.Config, error) {
	if cmd.flags.Config == nil {
		return nil, errors.New("configuration not loaded")
	}
	return cmd.flags.Config, nil
}

func (cmd *ConfigCmd) runShow(ctx context.Context, c *cli.Command) error {
	cfg, err := cmd.loaded()
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(c.Root().Writer)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return err
	}

	p := printer.Ctx(ctx)
	if file := cfg.CatalogFile(); file != "" {
		p.Infof("catalog: %s", file)
	}
	if cfg.PersistHistory() {
		p.Infof("history: %s", cfg.JournalFile())
	}
	return nil
}

type fieldProblem struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type validateReport struct {
	Valid    bool                       `json:"valid"`
	Errors   []fieldProblem             `json:"errors,omitempty"`
	Warnings []config.ValidationWarning `json:"warnings,omitempty"`
}

func (cmd *ConfigCmd) runValidate(ctx context.Context, c *cli.Command) error {
	cfg, err := cmd.loaded()
	if err != nil {
		return err
	}

	report := validateReport{Warnings: cfg.Warnings()}
	for _, fe := range fieldProblems(cfg.ValidateDeep(cmd.flags.ConfigPath)) {
		report.Errors = append(report.Errors, fieldProblem{Field: fe.Field, Message: fe.Err.Error()})
	}
	report.Valid = len(report.Errors) == 0

	switch cmd.format {
	case "json":
		if err := writeJSON(c.Root().Writer, report); err != nil {
			return err
		}
	case "text":
		printValidation(printer.Ctx(ctx), report)
	default:
		return fmt.Errorf("unknown format %q (want text or json)", cmd.format)
	}

	if !report.Valid {
		return cli.Exit("", 1)
	}
	return nil
}

func fieldProblems(err error) criterio.FieldErrors {
	if err == nil {
		return nil
	}
	var fieldErrs criterio.FieldErrors
	if errors.As(err, &fieldErrs) {
		return fieldErrs
	}
	return criterio.FieldErrors{{Err: err}}
}

func printValidation(p *printer.Printer, report validateReport) {
	for _, e := range report.Errors {
		p.FailItem(fieldLabel(e.Field), e.Message)
	}
	for _, w := range report.Warnings {
		label := w.Category
		if w.Item != "" {
			label = w.Item
		}
		p.WarnItem(label, w.Message)
	}

	warnings := printer.Plural(len(report.Warnings), "warning")
	if report.Valid {
		p.Successf("Configuration is valid (%s)", warnings)
		return
	}
	p.Errorf("Configuration is invalid: %s, %s", printer.Plural(len(report.Errors), "error"), warnings)
}

func fieldLabel(field string) string {
	if field == "" {
		return "config"
	}
	return field
}
