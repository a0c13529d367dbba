package catalog

import (
	"context"
	"fmt"

	"github.com/hay-kot/criterio"

	"github.com/hay-kot/artfolio/internal/core/artwork"
)

const (
	// StatusAdded indicates the artwork was added.
	StatusAdded = "added"
	// StatusFailed indicates adding the artwork failed.
	StatusFailed = "failed"
	// StatusSkipped indicates the artwork was not attempted due to the failure threshold.
	StatusSkipped = "skipped"

	// maxFailures is the number of failures before an import stops.
	maxFailures = 3
)

// ImportInput is the JSON input schema for bulk imports.
type ImportInput struct {
	Artworks []artwork.Artwork `json:"artworks"`
}

// Validate checks the import for missing fields and titles repeated within
// the input. Titles already in the catalog are reported per record at import time.
func (in ImportInput) Validate() error {
	if len(in.Artworks) == 0 {
		return criterio.NewFieldErrors("artworks", fmt.Errorf("array is empty"))
	}

	var errs criterio.FieldErrorsBuilder
	seen := make(map[string]bool, len(in.Artworks))

	for i, a := range in.Artworks {
		field := fmt.Sprintf("artworks[%d]", i)

		if err := a.Validate(); err != nil {
			errs = errs.Append(field, err)
			continue
		}

		if seen[a.Title] {
			errs = errs.Append(field+".title", fmt.Errorf("duplicate title %q", a.Title))
			continue
		}
		seen[a.Title] = true
	}

	return errs.ToError()
}

// ImportResult is the outcome for a single artwork.
type ImportResult struct {
	Title  string `json:"title"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// ImportReport is the outcome of a bulk import.
type ImportReport struct {
	Results []ImportResult `json:"results"`
}

// Count returns the number of results with the given status.
func (r ImportReport) Count(status string) int {
	n := 0
	for _, res := range r.Results {
		if res.Status == status {
			n++
		}
	}
	return n
}

// Import adds records one at a time, each as its own undoable change.
// Processing stops after three failures; the rest are marked skipped.
func (s *Service) Import(ctx context.Context, records []artwork.Artwork) ImportReport {
	report := ImportReport{Results: make([]ImportResult, 0, len(records))}

	failures := 0
	for i, a := range records {
		if failures >= maxFailures {
			s.log.Warn().Str("title", a.Title).Msg("skipping remaining artworks due to failure threshold")
			for _, rest := range records[i:] {
				report.Results = append(report.Results, ImportResult{Title: rest.Title, Status: StatusSkipped})
			}
			break
		}

		if _, err := s.Add(ctx, a); err != nil {
			failures++
			s.log.Error().Err(err).Str("title", a.Title).Msg("import failed")
			report.Results = append(report.Results, ImportResult{Title: a.Title, Status: StatusFailed, Error: err.Error()})
			continue
		}

		report.Results = append(report.Results, ImportResult{Title: a.Title, Status: StatusAdded})
	}

	s.log.Info().
		Int("total", len(records)).
		Int("added", report.Count(StatusAdded)).
		Int("failed", report.Count(StatusFailed)).
		Int("skipped", report.Count(StatusSkipped)).
		Msg("import complete")

	return report
}
