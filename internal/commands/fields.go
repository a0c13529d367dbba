package commands

import (
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/hay-kot/artfolio/internal/core/artwork"
)

// stdinIsTerminal reports whether interactive prompts can be shown.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// artworkFields holds the --title/--artist/--year/--type flags shared by add
// and update.
type artworkFields struct {
	title  string
	artist string
	year   int
	kind   string
}

var fieldFlagNames = []string{"title", "artist", "year", "type"}

func (f *artworkFields) cliFlags(titleUsage string) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "title",
			Aliases:     []string{"t"},
			Usage:       titleUsage,
			Destination: &f.title,
		},
		&cli.StringFlag{
			Name:        "artist",
			Aliases:     []string{"a"},
			Usage:       "artist name",
			Destination: &f.artist,
		},
		&cli.IntFlag{
			Name:        "year",
			Aliases:     []string{"y"},
			Usage:       "year of creation",
			Destination: &f.year,
		},
		&cli.StringFlag{
			Name:        "type",
			Usage:       "kind of work (Painting, Sculpture, ...)",
			Destination: &f.kind,
		},
	}
}

// overlay returns base with every flag that was set on c replacing the
// matching field.
func (f *artworkFields) overlay(c *cli.Command, base artwork.Artwork) artwork.Artwork {
	if c.IsSet("title") {
		base.Title = f.title
	}
	if c.IsSet("artist") {
		base.Artist = f.artist
	}
	if c.IsSet("year") {
		base.Year = f.year
	}
	if c.IsSet("type") {
		base.Type = f.kind
	}
	return base
}

func countSet(c *cli.Command) int {
	n := 0
	for _, name := range fieldFlagNames {
		if c.IsSet(name) {
			n++
		}
	}
	return n
}

func titlesOf(records []artwork.Artwork) []string {
	out := make([]string, len(records))
	for i, a := range records {
		out[i] = a.Title
	}
	return out
}

func titleSet(records []artwork.Artwork) map[string]bool {
	out := make(map[string]bool, len(records))
	for _, a := range records {
		out[a.Title] = true
	}
	return out
}
