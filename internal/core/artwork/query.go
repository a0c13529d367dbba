package artwork

import "github.com/bmatcuk/doublestar/v4"

// FilterByArtist returns the artworks whose artist exactly matches artist,
// preserving their relative order.
func FilterByArtist(records []Artwork, artist string) []Artwork {
	return filter(records, func(a Artwork) bool { return a.Artist == artist })
}

// FilterByYear returns the artworks created in year, preserving their relative order.
func FilterByYear(records []Artwork, year int) []Artwork {
	return filter(records, func(a Artwork) bool { return a.Year == year })
}

// FilterByTitle returns the artworks whose title matches the glob pattern.
// An empty pattern matches everything.
func FilterByTitle(records []Artwork, pattern string) ([]Artwork, error) {
	if pattern == "" {
		return filter(records, func(Artwork) bool { return true }), nil
	}

	if !doublestar.ValidatePattern(pattern) {
		return nil, doublestar.ErrBadPattern
	}

	return filter(records, func(a Artwork) bool {
		ok, _ := doublestar.Match(pattern, a.Title)
		return ok
	}), nil
}

func filter(records []Artwork, keep func(Artwork) bool) []Artwork {
	out := make([]Artwork, 0, len(records))
	for _, a := range records {
		if keep(a) {
			out = append(out, a)
		}
	}
	return out
}
