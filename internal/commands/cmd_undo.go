package commands

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/artfolio/internal/core/history"
	"github.com/hay-kot/artfolio/internal/printer"
)

type UndoCmd struct {
	flags *Flags
}

// NewUndoCmd creates the undo and redo commands
func NewUndoCmd(flags *Flags) *UndoCmd {
	return &UndoCmd{flags: flags}
}

// Register adds the undo and redo commands to the application
func (cmd *UndoCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands,
		&cli.Command{
			Name:      "undo",
			Usage:     "Revert the most recent change",
			UsageText: "artfolio undo",
			Description: `Reverts the most recent add, update or remove. Does nothing when
there is nothing to undo.`,
			Action: cmd.runUndo,
		},
		&cli.Command{
			Name:      "redo",
			Usage:     "Re-apply the most recently undone change",
			UsageText: "artfolio redo",
			Description: `Re-applies the change most recently reverted by undo. Making a new
change after undo discards the redo history.`,
			Action: cmd.runRedo,
		},
	)

	return app
}

func (cmd *UndoCmd) runUndo(ctx context.Context, _ *cli.Command) error {
	p := printer.Ctx(ctx)
	svc := cmd.flags.Service

	if !svc.CanUndo() {
		p.Infof("Nothing to undo")
		return nil
	}

	applied, _ := svc.History()
	op := top(applied)

	records, err := svc.Undo(ctx)
	if err != nil {
		return err
	}

	p.Changef(len(records), "Undid: %s", op.Description())
	return nil
}

func (cmd *UndoCmd) runRedo(ctx context.Context, _ *cli.Command) error {
	p := printer.Ctx(ctx)
	svc := cmd.flags.Service

	if !svc.CanRedo() {
		p.Infof("Nothing to redo")
		return nil
	}

	_, pending := svc.History()
	op := top(pending)

	records, err := svc.Redo(ctx)
	if err != nil {
		return err
	}

	p.Changef(len(records), "Redid: %s", op.Description())
	return nil
}

func top(ops []history.Operation) history.Operation {
	return ops[len(ops)-1]
}
