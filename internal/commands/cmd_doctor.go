package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/artfolio/internal/commands/doctor"
	"github.com/hay-kot/artfolio/internal/printer"
)

type DoctorCmd struct {
	flags  *Flags
	format string
}

func NewDoctorCmd(flags *Flags) *DoctorCmd {
	return &DoctorCmd{flags: flags}
}

func (cmd *DoctorCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "doctor",
		Usage:     "Check the config, the catalog file and the saved undo history",
		UsageText: "artfolio doctor [--format text|json]",
		Description: `Reads everything artfolio depends on without changing it.

Reports malformed catalog entries (which are dropped on the next change),
duplicate titles and a damaged history file. Exits 1 when any check fails.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "format",
				Usage:       "output format (text, json)",
				Value:       "text",
				Destination: &cmd.format,
			},
		},
		Action: cmd.run,
	})
	return app
}

type doctorReport struct {
	Healthy bool            `json:"healthy"`
	Summary doctor.Tally    `json:"summary"`
	Checks  []doctor.Result `json:"checks"`
}

func (cmd *DoctorCmd) run(ctx context.Context, c *cli.Command) error {
	var location string
	if cmd.flags.Config != nil {
		location = cmd.flags.Config.CatalogFile()
	}

	results := doctor.RunAll(ctx, []doctor.Check{
		doctor.NewConfigCheck(cmd.flags.Config, cmd.flags.ConfigPath),
		doctor.NewCatalogCheck(cmd.flags.Store, location),
		doctor.NewHistoryCheck(cmd.flags.Journal),
	})
	tally := doctor.Count(results)

	switch cmd.format {
	case "json":
		report := doctorReport{Healthy: tally.Healthy(), Summary: tally, Checks: results}
		if err := writeJSON(c.Root().Writer, report); err != nil {
			return err
		}
	case "text":
		cmd.printText(printer.Ctx(ctx), results, tally)
	default:
		return fmt.Errorf("unknown format %q (want text or json)", cmd.format)
	}

	if !tally.Healthy() {
		return cli.Exit("", 1)
	}
	return nil
}

func (cmd *DoctorCmd) printText(p *printer.Printer, results []doctor.Result, tally doctor.Tally) {
	items := map[doctor.Status]func(label, detail string){
		doctor.StatusPass: p.CheckItem,
		doctor.StatusWarn: p.WarnItem,
		doctor.StatusFail: p.FailItem,
	}

	for _, result := range results {
		p.Section(result.Name)
		for _, item := range result.Items {
			items[item.Status](item.Label, item.Detail)
		}
		p.Printf("")
	}

	p.Printf("%d passed, %s, %d failed", tally.Passed, printer.Plural(tally.Warned, "warning"), tally.Failed)
	if tally.Warned > 0 && tally.Healthy() {
		p.Hintf("warnings do not stop artfolio from running")
	}
}
