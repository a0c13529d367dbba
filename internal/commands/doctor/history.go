package doctor

import (
	"context"
	"fmt"

	"github.com/hay-kot/artfolio/internal/core/history"
)

// HistoryCheck verifies the saved undo history can be read.
type HistoryCheck struct {
	journal history.Journal
}

// NewHistoryCheck creates a new history check. A nil journal means history
// is not persisted.
func NewHistoryCheck(journal history.Journal) *HistoryCheck {
	return &HistoryCheck{journal: journal}
}

func (c *HistoryCheck) Name() string {
	return "History"
}

func (c *HistoryCheck) Run(ctx context.Context) Result {
	result := Result{Name: c.Name()}

	if c.journal == nil {
		result.Pass("Persistence", "disabled, undo history lasts one run")
		return result
	}

	state, err := c.journal.Load(ctx)
	if err != nil {
		result.Fail("Read history", err.Error())
		return result
	}

	result.Pass("Read history", fmt.Sprintf("%d undo, %d redo", len(state.Applied), len(state.Pending)))
	return result
}
