package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/artfolio/internal/catalog"
)

// ImportOutput is the JSON output schema.
type ImportOutput struct {
	Added   int                    `json:"added"`
	Failed  int                    `json:"failed"`
	Skipped int                    `json:"skipped"`
	Results []catalog.ImportResult `json:"results"`
}

// ImportErrorOutput is the JSON output for fatal errors.
type ImportErrorOutput struct {
	Error string `json:"error"`
}

type ImportCmd struct {
	flags *Flags
	file  string
}

func NewImportCmd(flags *Flags) *ImportCmd {
	return &ImportCmd{flags: flags}
}

func (cmd *ImportCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "import",
		Usage: "Add multiple artworks from JSON input",
		UsageText: `artfolio import [options]

Read from stdin:
  echo '{"artworks":[{"title":"Starry Night","artist":"Vincent van Gogh","year":1889,"type":"Painting"}]}' | artfolio import

Read from file:
  artfolio import -f artworks.json`,
		Description: `Adds artworks from a JSON document, one at a time.

Each artwork is added as its own change, so 'artfolio undo' reverts the
last one imported. The whole input is validated before anything is added.

Processing stops after 3 failures. Artworks not attempted are marked as skipped.

Input JSON schema:
  {
    "artworks": [
      {
        "title": "Starry Night",
        "artist": "Vincent van Gogh",
        "year": 1889,
        "type": "Painting"
      }
    ]
  }

Output is JSON with counts and a result for each artwork.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "file",
				Aliases:     []string{"f"},
				Usage:       "path to JSON file (reads from stdin if not provided)",
				Destination: &cmd.file,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ImportCmd) run(ctx context.Context, c *cli.Command) error {
	out := c.Root().Writer

	input, err := cmd.readInput(c.Root().Reader)
	if err != nil {
		return writeImportError(out, fmt.Errorf("read input: %w", err))
	}

	if err := input.Validate(); err != nil {
		return writeImportError(out, fmt.Errorf("invalid input: %w", err))
	}

	report := cmd.flags.Service.Import(ctx, input.Artworks)

	return writeJSON(out, ImportOutput{
		Added:   report.Count(catalog.StatusAdded),
		Failed:  report.Count(catalog.StatusFailed),
		Skipped: report.Count(catalog.StatusSkipped),
		Results: report.Results,
	})
}

func (cmd *ImportCmd) readInput(stdin io.Reader) (catalog.ImportInput, error) {
	var reader io.Reader

	if cmd.file != "" {
		f, err := os.Open(cmd.file)
		if err != nil {
			return catalog.ImportInput{}, fmt.Errorf("open file: %w", err)
		}
		defer func() { _ = f.Close() }()
		reader = f
	} else {
		if stdin == os.Stdin && stdinIsTerminal() {
			return catalog.ImportInput{}, fmt.Errorf("no input provided (stdin is a terminal); use -f flag or pipe JSON input")
		}
		reader = stdin
	}

	var input catalog.ImportInput
	if err := json.NewDecoder(reader).Decode(&input); err != nil {
		return catalog.ImportInput{}, fmt.Errorf("decode JSON: %w", err)
	}

	return input, nil
}

func writeImportError(w io.Writer, err error) error {
	if encErr := writeJSON(w, ImportErrorOutput{Error: err.Error()}); encErr != nil {
		fmt.Fprintf(os.Stderr, "error: %s (failed to write JSON: %v)\n", err, encErr)
	}
	return err
}
