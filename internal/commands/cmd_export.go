package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/artfolio/internal/core/artwork"
	"github.com/hay-kot/artfolio/internal/printer"
	"github.com/hay-kot/artfolio/internal/store"
	"github.com/hay-kot/artfolio/internal/store/csvfile"
	"github.com/hay-kot/artfolio/internal/store/jsonfile"
)

type ExportCmd struct {
	flags  *Flags
	format string
	output string
}

func NewExportCmd(flags *Flags) *ExportCmd {
	return &ExportCmd{flags: flags}
}

func (cmd *ExportCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "export",
		Usage:     "Write the catalog in a file format",
		UsageText: "artfolio export [--format delimited|structured] [-o file]",
		Description: `Writes every artwork in storage order, regardless of which store the
catalog lives in. Useful for moving between store kinds:

  artfolio --store sqlite export --format structured -o artworks.json

Without -o the document is written to stdout.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "format",
				Usage:       "output format (delimited, structured)",
				Value:       string(store.KindDelimited),
				Destination: &cmd.format,
			},
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       "file to write (stdout if not provided)",
				Destination: &cmd.output,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *ExportCmd) run(ctx context.Context, c *cli.Command) error {
	records, err := cmd.flags.Service.GetAll(ctx)
	if err != nil {
		return err
	}

	data, err := encode(cmd.format, records)
	if err != nil {
		return err
	}

	if cmd.output == "" {
		_, err := c.Root().Writer.Write(data)
		return err
	}

	if err := os.MkdirAll(filepath.Dir(cmd.output), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(cmd.output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", cmd.output, err)
	}

	printer.Ctx(ctx).Successf("Exported %s to %s", printer.Plural(len(records), "artwork"), cmd.output)
	return nil
}

func encode(format string, records []artwork.Artwork) ([]byte, error) {
	kind, err := store.ParseKind(format)
	if err != nil {
		return nil, err
	}

	switch kind {
	case store.KindDelimited:
		return csvfile.Encode(records)
	case store.KindStructured:
		return jsonfile.Encode(records)
	default:
		return nil, fmt.Errorf("cannot export as %s (supported: delimited, structured)", kind)
	}
}
