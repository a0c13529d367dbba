package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/artfolio/internal/printer"
	"github.com/hay-kot/artfolio/internal/tui"
)

type RmCmd struct {
	flags *Flags
}

// NewRmCmd creates a new rm command
func NewRmCmd(flags *Flags) *RmCmd {
	return &RmCmd{flags: flags}
}

// Register adds the rm command to the application
func (cmd *RmCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "rm",
		Usage:     "Remove an artwork from the catalog",
		UsageText: "artfolio rm <title...>",
		Description: `Removes the artwork with the given title. Arguments are joined with
spaces, so quoting is optional.

Without a title on a terminal, a picker lists the catalog.

A title that does not exist is reported but still recorded as an (empty)
change unless history.strict is enabled, in which case it is an error.`,
		Action: cmd.run,
	})

	return app
}

func (cmd *RmCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	title, err := cmd.resolveTitle(ctx, c)
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			p.Infof("Cancelled")
			return nil
		}
		return err
	}

	exists, err := cmd.flags.Service.Exists(ctx, title)
	if err != nil {
		return err
	}

	records, err := cmd.flags.Service.Remove(ctx, title)
	if err != nil {
		return err
	}

	if !exists {
		p.Warnf("No artwork titled %q, nothing removed", title)
		return nil
	}

	p.Changef(len(records), "Removed %q", title)
	p.Hintf("run 'artfolio undo' to restore it")
	return nil
}

func (cmd *RmCmd) resolveTitle(ctx context.Context, c *cli.Command) (string, error) {
	return titleArg(ctx, c, cmd.flags, "Remove which artwork?")
}

// titleArg joins positional args into a title, or asks for one on a terminal.
func titleArg(ctx context.Context, c *cli.Command, flags *Flags, heading string) (string, error) {
	if c.Args().Present() {
		return strings.Join(c.Args().Slice(), " "), nil
	}

	if !stdinIsTerminal() {
		return "", fmt.Errorf("a title is required")
	}

	records, err := flags.Service.GetAll(ctx)
	if err != nil {
		return "", err
	}

	return tui.PickTitle(heading, titlesOf(records))
}
