package commands

import (
	"context"
	"errors"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/artfolio/internal/core/artwork"
	"github.com/hay-kot/artfolio/internal/printer"
	"github.com/hay-kot/artfolio/internal/tui"
)

type AddCmd struct {
	flags  *Flags
	fields artworkFields
}

// NewAddCmd creates a new add command
func NewAddCmd(flags *Flags) *AddCmd {
	return &AddCmd{flags: flags}
}

// Register adds the add command to the application
func (cmd *AddCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "add",
		Usage:     "Add an artwork to the catalog",
		UsageText: "artfolio add [--title T --artist A --year N --type K]",
		Description: `Adds a new artwork. Every field is required and titles must be unique.

When any field is missing and stdin is a terminal, a form is shown with the
given values prefilled. Otherwise missing fields are reported as errors.

The change can be reverted with 'artfolio undo'.`,
		Flags:  cmd.fields.cliFlags("artwork title"),
		Action: cmd.run,
	})

	return app
}

func (cmd *AddCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	a := cmd.fields.overlay(c, artwork.Artwork{})

	if countSet(c) < len(fieldFlagNames) && stdinIsTerminal() {
		records, err := cmd.flags.Service.GetAll(ctx)
		if err != nil {
			return err
		}

		a, err = tui.NewArtworkForm("New artwork", a, titleSet(records)).Run()
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				p.Infof("Cancelled")
				return nil
			}
			return err
		}
	}

	records, err := cmd.flags.Service.Add(ctx, a)
	if err != nil {
		return err
	}

	p.Changef(len(records), "Added %q", a.Title)
	return nil
}
