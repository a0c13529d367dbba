package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

type DocCmd struct {
	flags *Flags
	raw   bool
}

func NewDocCmd(flags *Flags) *DocCmd {
	return &DocCmd{flags: flags}
}

func (cmd *DocCmd) Register(app *cli.Command) *cli.Command {
	rawFlag := &cli.BoolFlag{
		Name:        "raw",
		Usage:       "print markdown without rendering",
		Destination: &cmd.raw,
	}

	app.Commands = append(app.Commands, &cli.Command{
		Name:  "doc",
		Usage: "Documentation for catalog files and configuration",
		Description: `Access documentation for artfolio.

Use 'artfolio doc formats' to see how each store kind lays out its file.
Use 'artfolio doc config' to see every configuration option.`,
		Commands: []*cli.Command{
			{
				Name:  "formats",
				Usage: "Show the catalog file formats",
				Flags: []cli.Flag{rawFlag},
				Action: func(_ context.Context, c *cli.Command) error {
					return cmd.render(c.Root().Writer, formatsGuide)
				},
			},
			{
				Name:  "config",
				Usage: "Show the configuration reference",
				Flags: []cli.Flag{rawFlag},
				Action: func(_ context.Context, c *cli.Command) error {
					return cmd.render(c.Root().Writer, fmt.Sprintf(configGuide, DefaultConfigPath(), DefaultDataDir()))
				},
			},
		},
	})
	return app
}

// render writes markdown, styled when stdout is a terminal.
func (cmd *DocCmd) render(w io.Writer, markdown string) error {
	if cmd.raw || !term.IsTerminal(int(os.Stdout.Fd())) {
		_, err := io.WriteString(w, markdown)
		return err
	}

	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width > 100 {
		width = 100
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("tokyo-night"),
		glamour.WithWordWrap(width-4),
	)
	if err != nil {
		_, err := io.WriteString(w, markdown)
		return err
	}

	out, err := renderer.Render(markdown)
	if err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}

	_, err = io.WriteString(w, out)
	return err
}

const formatsGuide = "# Catalog File Formats\n" + `
Every store holds the same four fields per artwork: **title**, **artist**,
**year** and **type**. Titles identify artworks; ` + "`add`" + ` and renames
refuse a title that is already taken.

Pick a store with ` + "`store.kind`" + ` in the config file or ` + "`--store`" + ` on
the command line. Move between kinds with ` + "`artfolio export`" + `.

## delimited (default)

One artwork per line, four comma-separated columns:

` + "```" + `
Starry Night,Vincent van Gogh,1889,Painting
"Dogs Playing Poker, No. 3",Cassius Marcellus Coolidge,1903,Painting
` + "```" + `

- Fields containing commas or quotes are wrapped in double quotes; inner
  quotes are doubled.
- Blank lines are ignored.
- Lines without exactly four fields, or with a year that is not a whole
  number, are skipped with a warning and dropped the next time the
  catalog changes. ` + "`artfolio doctor`" + ` lists them by line.

## structured

A JSON array of objects:

` + "```json" + `
[
  {
    "title": "Starry Night",
    "artist": "Vincent van Gogh",
    "year": 1889,
    "type": "Painting"
  }
]
` + "```" + `

- An empty file reads as an empty catalog.
- A document that is not an array is an error and is never overwritten.
- Entries missing a field, or with a field of the wrong type, are skipped
  the same way as malformed delimited lines.

## sqlite

A SQLite database with a single ` + "`artworks`" + ` table. Storage order is
kept in an integer ` + "`position`" + ` column, so undoing a removal puts the
artwork back where it was.

## memory

Nothing is written. The catalog starts empty on every run; useful with
` + "`artfolio shell`" + ` for trying things out.

## Undo history

Every change is recorded in a history file next to the catalog, named after
it (` + "`artworks.csv.history.json`" + ` for the default delimited catalog), so
` + "`artfolio undo`" + ` works across runs. Each catalog has its own history;
switching with ` + "`--store`" + ` or ` + "`--file`" + ` never undoes changes made to
another catalog. The memory store keeps no history between runs.

Removing a title removes every artwork that carries it, and undo puts all of
them back in place. If the history file is damaged, run
` + "`artfolio history --clear`" + `.
`

const configGuide = "# Configuration\n" + `
artfolio reads YAML from ` + "`%s`" + `
(override with ` + "`--config`" + `). Every key is optional.

` + "```yaml" + `
store:
  kind: delimited   # delimited | structured | sqlite | memory
  path: ""          # default <data-dir>/artworks.<csv|json|db>
history:
  max_entries: 0    # changes kept for undo; 0 keeps all
  strict: false     # make remove/update of a missing title an error
  persist: true     # keep undo history in <catalog>.history.json
` + "```" + `

The data directory defaults to ` + "`%s`" + ` (override with
` + "`--data-dir`" + `).

## Environment

| Variable | Flag |
|---|---|
| ` + "`ARTFOLIO_CONFIG`" + ` | ` + "`--config`" + ` |
| ` + "`ARTFOLIO_DATA_DIR`" + ` | ` + "`--data-dir`" + ` |
| ` + "`ARTFOLIO_STORE`" + ` | ` + "`--store`" + ` |
| ` + "`ARTFOLIO_FILE`" + ` | ` + "`--file`" + ` |
| ` + "`ARTFOLIO_LOG_LEVEL`" + ` | ` + "`--log-level`" + ` |
| ` + "`ARTFOLIO_LOG_FILE`" + ` | ` + "`--log-file`" + ` |

Run ` + "`artfolio config validate`" + ` to check a config file.
`
