package artwork

import (
	"context"
	"errors"
)

// Sentinel errors for catalog operations.
var (
	ErrNotFound  = errors.New("artwork not found")
	ErrDuplicate = errors.New("artwork title already exists")
	ErrIO        = errors.New("catalog storage i/o failure")
	ErrMalformed = errors.New("catalog file is malformed")
)

// Store defines persistence operations for artworks. Every call reads the
// whole collection from the backing location, so the store is the single
// source of truth.
type Store interface {
	// Add appends a to the collection. Titles are not checked for duplicates.
	Add(ctx context.Context, a Artwork) error
	// Remove deletes every artwork with the given title. Returns ErrNotFound if none matched.
	Remove(ctx context.Context, title string) error
	// Update replaces the first artwork whose title equals a.Title. Returns ErrNotFound if none matched.
	Update(ctx context.Context, a Artwork) error
	// List returns the full collection in storage order.
	List(ctx context.Context) ([]Artwork, error)
}

// Retitler is implemented by stores that can replace a record located by a
// title other than the replacement's own, which makes renames reversible.
type Retitler interface {
	// UpdateTitle replaces the first artwork titled title with a.
	// Returns ErrNotFound if none matched.
	UpdateTitle(ctx context.Context, title string, a Artwork) error
}

// Inserter is implemented by stores that can place a record at a position,
// which lets a reverted delete restore the original order.
type Inserter interface {
	// Insert places a at index, shifting later records back. An index past
	// the end appends.
	Insert(ctx context.Context, index int, a Artwork) error
}

// Malformed describes an entry that was skipped while reading a store.
type Malformed struct {
	// Position is the 1-based line (delimited) or array index + 1 (structured).
	Position int    `json:"position"`
	Reason   string `json:"reason"`
}

// Report summarizes a full read of a store.
type Report struct {
	Location string      `json:"location"`
	Records  int         `json:"records"`
	Skipped  []Malformed `json:"skipped,omitempty"`
}

// Inspector is implemented by stores that can report on entries they skip.
type Inspector interface {
	Inspect(ctx context.Context) (Report, error)
}

// Find returns the first artwork in records with the given title.
func Find(records []Artwork, title string) (Artwork, bool) {
	if i := Index(records, title); i >= 0 {
		return records[i], true
	}
	return Artwork{}, false
}

// Index returns the position of the first artwork titled title, or -1.
func Index(records []Artwork, title string) int {
	for i, a := range records {
		if a.Title == title {
			return i
		}
	}
	return -1
}

// Lookup lists s and returns the first artwork with the given title.
// Returns ErrNotFound if none matched.
func Lookup(ctx context.Context, s Store, title string) (Artwork, error) {
	a, _, err := Locate(ctx, s, title)
	return a, err
}

// Locate is Lookup that also returns the artwork's position in the collection.
func Locate(ctx context.Context, s Store, title string) (Artwork, int, error) {
	records, err := s.List(ctx)
	if err != nil {
		return Artwork{}, -1, err
	}

	if i := Index(records, title); i >= 0 {
		return records[i], i, nil
	}
	return Artwork{}, -1, ErrNotFound
}

// DuplicateTitles returns titles that occur more than once, in first-seen order.
func DuplicateTitles(records []Artwork) []string {
	seen := make(map[string]int, len(records))
	var dups []string
	for _, a := range records {
		seen[a.Title]++
		if seen[a.Title] == 2 {
			dups = append(dups, a.Title)
		}
	}
	return dups
}
