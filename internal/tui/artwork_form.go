// Package tui holds the interactive huh forms used by the add, update and
// shell commands.
package tui

import (
	"errors"
	"strconv"

	"github.com/charmbracelet/huh"

	"github.com/hay-kot/artfolio/internal/core/artwork"
	"github.com/hay-kot/artfolio/internal/core/validate"
	"github.com/hay-kot/artfolio/internal/styles"
)

// ArtworkForm wraps a huh.Form that collects the four artwork fields.
type ArtworkForm struct {
	form     *huh.Form
	original string
	taken    map[string]bool

	title  string
	artist string
	year   string
	kind   string
}

// NewArtworkForm creates a form prefilled with initial. taken lists titles
// already in the catalog; the form rejects them except for initial's own
// title, so an edit may keep its name.
func NewArtworkForm(heading string, initial artwork.Artwork, taken map[string]bool) *ArtworkForm {
	f := &ArtworkForm{
		original: initial.Title,
		taken:    taken,
		title:    initial.Title,
		artist:   initial.Artist,
		kind:     initial.Type,
	}
	if initial.Year != 0 {
		f.year = strconv.Itoa(initial.Year)
	}

	f.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&f.title).
				Validate(f.validateTitle),
			huh.NewInput().
				Title("Artist").
				Value(&f.artist).
				Validate(validate.Required),
			huh.NewInput().
				Title("Year").
				Placeholder("e.g. 1889").
				Value(&f.year).
				Validate(func(s string) error {
					_, err := validate.Year(s)
					return err
				}),
			huh.NewInput().
				Title("Type").
				Placeholder("Painting, Sculpture, Print...").
				Value(&f.kind).
				Validate(validate.Required),
		).Title(heading),
	).WithTheme(styles.FormTheme())

	return f
}

func (f *ArtworkForm) validateTitle(s string) error {
	if err := validate.Required(s); err != nil {
		return err
	}
	if s != f.original && f.taken[s] {
		return errors.New("an artwork with this title already exists")
	}
	return nil
}

// Form returns the underlying huh.Form.
func (f *ArtworkForm) Form() *huh.Form {
	return f.form
}

// Run shows the form and returns the entered artwork. Returns
// huh.ErrUserAborted if the user cancels.
func (f *ArtworkForm) Run() (artwork.Artwork, error) {
	if err := f.form.Run(); err != nil {
		return artwork.Artwork{}, err
	}
	return f.Result()
}

// Result returns the artwork described by the current field values.
func (f *ArtworkForm) Result() (artwork.Artwork, error) {
	year, err := validate.Year(f.year)
	if err != nil {
		return artwork.Artwork{}, err
	}

	return artwork.Artwork{
		Title:  f.title,
		Artist: f.artist,
		Year:   year,
		Type:   f.kind,
	}, nil
}

// PickTitle shows a filterable list of titles and returns the chosen one.
func PickTitle(heading string, titles []string) (string, error) {
	if len(titles) == 0 {
		return "", errors.New("catalog is empty")
	}

	options := make([]huh.Option[string], len(titles))
	for i, t := range titles {
		options[i] = huh.NewOption(t, t)
	}

	var choice string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(heading).
				Options(options...).
				Value(&choice).
				Filtering(true).
				Height(10),
		),
	).WithTheme(styles.FormTheme())

	if err := form.Run(); err != nil {
		return "", err
	}
	return choice, nil
}

// Confirm asks a yes/no question.
func Confirm(question string) (bool, error) {
	var ok bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(question).
				Value(&ok),
		),
	).WithTheme(styles.FormTheme()).Run()
	return ok, err
}
