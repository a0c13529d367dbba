package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/artfolio/internal/core/artwork"
	"github.com/hay-kot/artfolio/internal/printer"
	"github.com/hay-kot/artfolio/pkg/tmpl"
)

type LsCmd struct {
	flags *Flags

	artist   string
	year     int
	title    string
	json     bool
	template string
}

// NewLsCmd creates a new ls command
func NewLsCmd(flags *Flags) *LsCmd {
	return &LsCmd{flags: flags}
}

// Register adds the ls command to the application
func (cmd *LsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "ls",
		Usage:     "List artworks in the catalog",
		UsageText: "artfolio ls [options]",
		Description: `Displays a table of every artwork in storage order.

Filters combine: --artist and --year match exactly (case-sensitive),
--title takes a glob pattern such as 'Starry*'.

Use --json for machine-readable output or --template to render each
artwork with a Go template, e.g. --template '{{ .Title }} ({{ .Year }})'.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "artist",
				Aliases:     []string{"a"},
				Usage:       "only show artworks by this artist",
				Destination: &cmd.artist,
			},
			&cli.IntFlag{
				Name:        "year",
				Aliases:     []string{"y"},
				Usage:       "only show artworks from this year",
				Destination: &cmd.year,
			},
			&cli.StringFlag{
				Name:        "title",
				Aliases:     []string{"t"},
				Usage:       "only show artworks whose title matches a glob pattern",
				Destination: &cmd.title,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON",
				Destination: &cmd.json,
			},
			&cli.StringFlag{
				Name:        "template",
				Usage:       "render each artwork with a Go template",
				Destination: &cmd.template,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *LsCmd) run(ctx context.Context, c *cli.Command) error {
	if cmd.json && cmd.template != "" {
		return fmt.Errorf("--json and --template cannot be combined")
	}

	records, err := cmd.query(ctx)
	if err != nil {
		return err
	}

	out := c.Root().Writer

	switch {
	case cmd.json:
		return writeJSON(out, records)
	case cmd.template != "":
		return writeTemplate(out, cmd.template, records)
	}

	if len(records) == 0 {
		printer.Ctx(ctx).Infof("No artworks found")
		return nil
	}

	return writeTable(out, records)
}

// query applies every filter that was set, narrowing the collection in turn.
func (cmd *LsCmd) query(ctx context.Context) ([]artwork.Artwork, error) {
	svc := cmd.flags.Service

	var (
		records []artwork.Artwork
		err     error
	)

	switch {
	case cmd.artist != "":
		records, err = svc.FilterByArtist(ctx, cmd.artist)
	case cmd.year != 0:
		records, err = svc.FilterByYear(ctx, cmd.year)
	default:
		records, err = svc.GetAll(ctx)
	}
	if err != nil {
		return nil, err
	}

	if cmd.year != 0 {
		records = artwork.FilterByYear(records, cmd.year)
	}

	if cmd.title != "" {
		records, err = artwork.FilterByTitle(records, cmd.title)
		if err != nil {
			return nil, fmt.Errorf("invalid title pattern %q: %w", cmd.title, err)
		}
	}

	return records, nil
}

func writeTable(w io.Writer, records []artwork.Artwork) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "TITLE\tARTIST\tYEAR\tTYPE")

	for _, a := range records {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", a.Title, a.Artist, strconv.Itoa(a.Year), a.Type)
	}

	return tw.Flush()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeTemplate(w io.Writer, text string, records []artwork.Artwork) error {
	t, err := tmpl.Parse(text)
	if err != nil {
		return err
	}

	for _, a := range records {
		line, err := t.Execute(a)
		if err != nil {
			return fmt.Errorf("render %q: %w", a.Title, err)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	return nil
}
