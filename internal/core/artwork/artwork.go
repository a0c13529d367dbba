// Package artwork defines the catalog record type, the storage contract and
// the query helpers used to filter collections.
package artwork

import (
	"fmt"
	"strconv"

	"github.com/hay-kot/criterio"

	"github.com/hay-kot/artfolio/internal/core/validate"
)

// Artwork is a single catalogued piece. Title acts as the key within a store.
type Artwork struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
	Year   int    `json:"year"`
	Type   string `json:"type"`
}

// IsZero reports whether a is the empty sentinel value.
func (a Artwork) IsZero() bool {
	return a == Artwork{}
}

// Validate checks that every field is present.
func (a Artwork) Validate() error {
	var errs criterio.FieldErrorsBuilder

	if err := validate.Required(a.Title); err != nil {
		errs = errs.Append("title", err)
	}
	if err := validate.Required(a.Artist); err != nil {
		errs = errs.Append("artist", err)
	}
	if err := validate.Required(a.Type); err != nil {
		errs = errs.Append("type", err)
	}
	if a.Year == 0 {
		errs = errs.Append("year", fmt.Errorf("year is required"))
	}

	return errs.ToError()
}

// Fields returns the record as its four columns in storage order.
func (a Artwork) Fields() []string {
	return []string{a.Title, a.Artist, strconv.Itoa(a.Year), a.Type}
}

func (a Artwork) String() string {
	return fmt.Sprintf("%s (%s, %d, %s)", a.Title, a.Artist, a.Year, a.Type)
}
