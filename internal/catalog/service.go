// Package catalog orchestrates artwork mutations through the undo/redo
// history and exposes the read and filter views callers render.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/hay-kot/artfolio/internal/core/artwork"
	"github.com/hay-kot/artfolio/internal/core/history"
)

// ErrNotRecorded is returned when a change reached the store but the history
// file could not be updated. The catalog and the in-process history already
// reflect the change; only the saved history is behind.
var ErrNotRecorded = errors.New("change applied but not recorded in history")

// Service turns caller input into operations, runs them through a History
// and returns the collection as it stands afterwards.
type Service struct {
	store   artwork.Store
	history *history.History
	journal history.Journal
	log     zerolog.Logger
}

// New creates a new Service. journal may be nil, in which case history
// lives only as long as the Service.
func New(store artwork.Store, hist *history.History, journal history.Journal, log zerolog.Logger) *Service {
	return &Service{
		store:   store,
		history: hist,
		journal: journal,
		log:     log,
	}
}

// Load restores history saved by a previous run.
func (s *Service) Load(ctx context.Context) error {
	if s.journal == nil {
		return nil
	}

	state, err := s.journal.Load(ctx)
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}

	s.history.Restore(state, s.store)
	s.log.Debug().
		Int("undo", s.history.UndoCount()).
		Int("redo", s.history.RedoCount()).
		Msg("history restored")
	return nil
}

// GetAll returns the full collection in storage order.
func (s *Service) GetAll(ctx context.Context) ([]artwork.Artwork, error) {
	records, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list artworks: %w", err)
	}
	if records == nil {
		records = []artwork.Artwork{}
	}
	return records, nil
}

// FilterByArtist returns artworks whose artist matches exactly.
func (s *Service) FilterByArtist(ctx context.Context, artist string) ([]artwork.Artwork, error) {
	records, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return artwork.FilterByArtist(records, artist), nil
}

// FilterByYear returns artworks created in year.
func (s *Service) FilterByYear(ctx context.Context, year int) ([]artwork.Artwork, error) {
	records, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return artwork.FilterByYear(records, year), nil
}

// FilterByTitle returns artworks whose title matches a glob pattern.
func (s *Service) FilterByTitle(ctx context.Context, pattern string) ([]artwork.Artwork, error) {
	records, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return artwork.FilterByTitle(records, pattern)
}

// Exists reports whether an artwork titled title is in the collection.
func (s *Service) Exists(ctx context.Context, title string) (bool, error) {
	records, err := s.GetAll(ctx)
	if err != nil {
		return false, err
	}
	_, ok := artwork.Find(records, title)
	return ok, nil
}

// Add validates a and inserts it. Titles must be unique.
func (s *Service) Add(ctx context.Context, a artwork.Artwork) ([]artwork.Artwork, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}

	if err := s.ensureTitleFree(ctx, a.Title); err != nil {
		return nil, err
	}

	s.log.Info().Str("title", a.Title).Msg("adding artwork")
	return s.apply(ctx, history.NewInsert(s.store, a))
}

// Remove deletes the artwork titled title. Whether a missing title is an
// error depends on the history's strict setting.
func (s *Service) Remove(ctx context.Context, title string) ([]artwork.Artwork, error) {
	op, err := history.NewDelete(ctx, s.store, title)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("title", title).Bool("found", !op.Empty()).Msg("removing artwork")
	return s.apply(ctx, op)
}

// Update replaces the artwork titled title with updated. updated may carry a
// new title as long as it does not collide with another artwork.
func (s *Service) Update(ctx context.Context, title string, updated artwork.Artwork) ([]artwork.Artwork, error) {
	if err := updated.Validate(); err != nil {
		return nil, err
	}

	if updated.Title != title {
		if err := s.ensureTitleFree(ctx, updated.Title); err != nil {
			return nil, err
		}
	}

	op, err := history.NewReplace(ctx, s.store, title, updated)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("title", title).Str("new_title", updated.Title).Bool("found", !op.Empty()).Msg("updating artwork")
	return s.apply(ctx, op)
}

// Undo reverts the most recent change. Nothing happens when there is nothing
// to undo.
func (s *Service) Undo(ctx context.Context) ([]artwork.Artwork, error) {
	if err := s.history.Undo(ctx); err != nil {
		return nil, fmt.Errorf("undo: %w", err)
	}
	if err := s.save(ctx, "undo"); err != nil {
		return nil, err
	}
	return s.GetAll(ctx)
}

// Redo re-applies the most recently undone change. Nothing happens when there
// is nothing to redo.
func (s *Service) Redo(ctx context.Context) ([]artwork.Artwork, error) {
	if err := s.history.Redo(ctx); err != nil {
		return nil, fmt.Errorf("redo: %w", err)
	}
	if err := s.save(ctx, "redo"); err != nil {
		return nil, err
	}
	return s.GetAll(ctx)
}

// CanUndo reports whether Undo would change anything.
func (s *Service) CanUndo() bool {
	return s.history.CanUndo()
}

// CanRedo reports whether Redo would change anything.
func (s *Service) CanRedo() bool {
	return s.history.CanRedo()
}

// History returns copies of the applied and pending stacks, bottom first.
func (s *Service) History() (applied, pending []history.Operation) {
	return s.history.Applied(), s.history.Pending()
}

// ClearHistory forgets every recorded change without touching the catalog.
func (s *Service) ClearHistory(ctx context.Context) error {
	s.history.Clear()

	if s.journal == nil {
		return nil
	}
	if err := s.journal.Clear(ctx); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}

func (s *Service) ensureTitleFree(ctx context.Context, title string) error {
	exists, err := s.Exists(ctx, title)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%q: %w", title, artwork.ErrDuplicate)
	}
	return nil
}

func (s *Service) apply(ctx context.Context, op history.Operation) ([]artwork.Artwork, error) {
	if err := s.history.Apply(ctx, op); err != nil {
		return nil, fmt.Errorf("%s: %w", op.Description(), err)
	}
	if err := s.save(ctx, op.Description()); err != nil {
		return nil, err
	}
	return s.GetAll(ctx)
}

func (s *Service) save(ctx context.Context, change string) error {
	if s.journal == nil {
		return nil
	}
	if err := s.journal.Save(ctx, s.history.State()); err != nil {
		s.log.Warn().Err(err).Str("change", change).Msg("catalog changed but saved history is out of date")
		return fmt.Errorf("%s: %w: save history: %w", change, ErrNotRecorded, err)
	}
	return nil
}
