// Package memory provides an in-memory artwork store. Data is lost on exit.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/hay-kot/artfolio/internal/core/artwork"
)

// Store implements artwork.Store in memory. Safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	artworks []artwork.Artwork
}

// New creates a store seeded with a copy of records.
func New(records ...artwork.Artwork) *Store {
	return &Store{artworks: slices.Clone(records)}
}

func (s *Store) Add(_ context.Context, a artwork.Artwork) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.artworks = append(s.artworks, a)
	return nil
}

func (s *Store) Remove(_ context.Context, title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	remaining, n := artwork.RemoveTitle(s.artworks, title)
	if n == 0 {
		return artwork.ErrNotFound
	}
	s.artworks = remaining
	return nil
}

func (s *Store) Insert(_ context.Context, index int, a artwork.Artwork) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.artworks = artwork.InsertAt(s.artworks, index, a)
	return nil
}

func (s *Store) Update(ctx context.Context, a artwork.Artwork) error {
	return s.UpdateTitle(ctx, a.Title, a)
}

func (s *Store) UpdateTitle(_ context.Context, title string, a artwork.Artwork) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !artwork.ReplaceTitle(s.artworks, title, a) {
		return artwork.ErrNotFound
	}
	return nil
}

func (s *Store) List(_ context.Context) ([]artwork.Artwork, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.artworks), nil
}

func (s *Store) Inspect(_ context.Context) (artwork.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return artwork.Report{Location: "memory", Records: len(s.artworks)}, nil
}
