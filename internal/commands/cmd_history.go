package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/artfolio/internal/core/history"
	"github.com/hay-kot/artfolio/internal/printer"
	"github.com/hay-kot/artfolio/internal/tui"
)

type HistoryCmd struct {
	flags *Flags

	// Command-specific flags
	clear bool
	yes   bool
}

// NewHistoryCmd creates a new history command
func NewHistoryCmd(flags *Flags) *HistoryCmd {
	return &HistoryCmd{flags: flags}
}

// Register adds the history command to the application
func (cmd *HistoryCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "history",
		Usage:     "View or manage undo history",
		UsageText: "artfolio history [options]",
		Description: `View or manage the undo/redo history.

By default, lists recorded changes newest first. Changes marked 'undo' are
reverted next by 'artfolio undo'; changes marked 'redo' were undone and can
be re-applied with 'artfolio redo'.

Use --clear to forget all history. The catalog itself is not changed.
On a terminal --clear asks first unless --yes is given.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "clear",
				Aliases:     []string{"c"},
				Usage:       "clear all undo history",
				Destination: &cmd.clear,
			},
			&cli.BoolFlag{
				Name:        "yes",
				Aliases:     []string{"y"},
				Usage:       "clear without asking",
				Destination: &cmd.yes,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *HistoryCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	if cmd.clear {
		return cmd.runClear(ctx, p)
	}

	return cmd.runList(ctx, c)
}

func (cmd *HistoryCmd) runList(ctx context.Context, c *cli.Command) error {
	applied, pending := cmd.flags.Service.History()

	if len(applied) == 0 && len(pending) == 0 {
		printer.Ctx(ctx).Infof("No history")
		return nil
	}

	return writeHistory(c.Root().Writer, applied, pending)
}

// writeHistory prints pending operations above applied ones so the rows on
// either side of the divide are the next redo and the next undo.
func writeHistory(w io.Writer, applied, pending []history.Operation) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tSTACK\tCHANGE\tSTATUS\tTIME")

	row := func(op history.Operation, stack string) {
		status := printer.StatusOK()
		if op.Empty() {
			status = printer.StatusWarn("no match")
		}

		desc := op.Description()
		if len(desc) > 60 {
			desc = desc[:57] + "..."
		}

		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			op.ID,
			stack,
			desc,
			status,
			op.At.Format("2006-01-02 15:04:05"),
		)
	}

	for i := 0; i < len(pending); i++ {
		row(pending[i], "redo")
	}
	for i := len(applied) - 1; i >= 0; i-- {
		row(applied[i], "undo")
	}

	return tw.Flush()
}

func (cmd *HistoryCmd) runClear(ctx context.Context, p *printer.Printer) error {
	if !cmd.yes && stdinIsTerminal() {
		ok, err := tui.Confirm("Forget all undo history?")
		if err != nil && !errors.Is(err, huh.ErrUserAborted) {
			return err
		}
		if !ok {
			p.Infof("Cancelled")
			return nil
		}
	}

	if err := cmd.flags.Service.ClearHistory(ctx); err != nil {
		return err
	}

	p.Successf("Undo history cleared")
	return nil
}
