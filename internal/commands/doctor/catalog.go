package doctor

import (
	"context"
	"fmt"

	"github.com/hay-kot/artfolio/internal/core/artwork"
)

// CatalogCheck reads the whole catalog and reports entries the store had to
// skip and titles that occur more than once.
type CatalogCheck struct {
	store    artwork.Store
	location string
}

// NewCatalogCheck creates a new catalog check. location is only used for
// display.
func NewCatalogCheck(store artwork.Store, location string) *CatalogCheck {
	return &CatalogCheck{
		store:    store,
		location: location,
	}
}

func (c *CatalogCheck) Name() string {
	return "Catalog"
}

func (c *CatalogCheck) Run(ctx context.Context) Result {
	result := Result{Name: c.Name()}

	if c.store == nil {
		result.Fail("Store opened", "catalog store not opened")
		return result
	}

	records, err := c.store.List(ctx)
	if err != nil {
		result.Fail("Read catalog", err.Error())
		return result
	}

	location := c.location
	if location == "" {
		location = "in memory"
	}
	result.Pass("Read catalog", fmt.Sprintf("%d artwork(s) %s", len(records), location))

	c.malformed(ctx, &result)

	dups := artwork.DuplicateTitles(records)
	if len(dups) == 0 {
		result.Pass("Unique titles", "no title appears twice")
		return result
	}

	for _, title := range dups {
		result.Warn(title, "duplicate title (rm removes every copy, update changes the first)")
	}

	return result
}

func (c *CatalogCheck) malformed(ctx context.Context, result *Result) {
	inspector, ok := c.store.(artwork.Inspector)
	if !ok {
		return
	}

	report, err := inspector.Inspect(ctx)
	switch {
	case err != nil:
		result.Fail("Inspect entries", err.Error())
	case len(report.Skipped) == 0:
		result.Pass("Well-formed entries", "every entry parsed")
	default:
		for _, m := range report.Skipped {
			result.Warn(fmt.Sprintf("Entry %d", m.Position), "skipped: "+m.Reason+" (rewritten away on the next change)")
		}
	}
}
