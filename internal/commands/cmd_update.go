package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/artfolio/internal/core/artwork"
	"github.com/hay-kot/artfolio/internal/printer"
	"github.com/hay-kot/artfolio/internal/tui"
)

type UpdateCmd struct {
	flags  *Flags
	fields artworkFields
}

// NewUpdateCmd creates a new update command
func NewUpdateCmd(flags *Flags) *UpdateCmd {
	return &UpdateCmd{flags: flags}
}

// Register adds the update command to the application
func (cmd *UpdateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "update",
		Usage:     "Edit an artwork in the catalog",
		UsageText: "artfolio update <title...> [--title T --artist A --year N --type K]",
		Description: `Replaces the fields of an existing artwork. Fields without a flag keep
their current values; --title renames the artwork.

With no field flags on a terminal, a form prefilled with the current values
is shown instead.`,
		Flags:  cmd.fields.cliFlags("new title"),
		Action: cmd.run,
	})

	return app
}

func (cmd *UpdateCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)
	svc := cmd.flags.Service

	title, err := titleArg(ctx, c, cmd.flags, "Update which artwork?")
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			p.Infof("Cancelled")
			return nil
		}
		return err
	}

	records, err := svc.GetAll(ctx)
	if err != nil {
		return err
	}

	current, found := artwork.Find(records, title)
	if !found {
		current = artwork.Artwork{Title: title}
	}

	updated := cmd.fields.overlay(c, current)

	// A missing title with partial flags has nothing to merge onto.
	if !found && updated.Validate() != nil {
		if cmd.flags.Config != nil && cmd.flags.Config.History.Strict {
			return fmt.Errorf("update %q: %w", title, artwork.ErrNotFound)
		}
		p.Warnf("No artwork titled %q, nothing updated", title)
		return nil
	}

	if found && countSet(c) == 0 && stdinIsTerminal() {
		updated, err = tui.NewArtworkForm("Update "+title, current, titleSet(records)).Run()
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				p.Infof("Cancelled")
				return nil
			}
			return err
		}
	}

	records, err = svc.Update(ctx, title, updated)
	if err != nil {
		return err
	}

	if !found {
		p.Warnf("No artwork titled %q, nothing updated", title)
		return nil
	}

	if updated.Title != title {
		p.Changef(len(records), "Updated %q (now %q)", title, updated.Title)
		return nil
	}
	p.Changef(len(records), "Updated %q", title)
	return nil
}
