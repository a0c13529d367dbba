// Package filestore implements the read-modify-write cycle shared by the
// file-backed artwork stores. The on-disk format is supplied by a Codec.
package filestore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"

	"github.com/hay-kot/artfolio/internal/core/artwork"
)

// Codec converts between a file's bytes and the records it holds.
type Codec interface {
	// Decode parses data. Entries that cannot be read are skipped and
	// reported; an error means the file as a whole is unusable.
	Decode(data []byte) ([]artwork.Artwork, []artwork.Malformed, error)
	// Encode renders records in file order.
	Encode(records []artwork.Artwork) ([]byte, error)
}

// Store implements artwork.Store on top of a single file. Every call loads
// the whole file and every mutation rewrites it.
type Store struct {
	path  string
	codec Codec
	log   zerolog.Logger
	mu    sync.RWMutex
}

// New creates a file store at path using codec for the file format.
func New(path string, codec Codec, log zerolog.Logger) *Store {
	return &Store{path: path, codec: codec, log: log}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Add appends a to the file.
func (s *Store) Add(ctx context.Context, a artwork.Artwork) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, _, err := s.load()
	if err != nil {
		return err
	}

	return s.save(append(records, a))
}

// Remove deletes every artwork titled title. Returns ErrNotFound, without
// rewriting the file, if none matched.
func (s *Store) Remove(ctx context.Context, title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, _, err := s.load()
	if err != nil {
		return err
	}

	remaining, n := artwork.RemoveTitle(records, title)
	if n == 0 {
		return artwork.ErrNotFound
	}

	return s.save(remaining)
}

// Insert places a at index, appending when index is past the end.
func (s *Store) Insert(ctx context.Context, index int, a artwork.Artwork) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, _, err := s.load()
	if err != nil {
		return err
	}

	return s.save(artwork.InsertAt(records, index, a))
}

// Update replaces the first artwork titled a.Title.
func (s *Store) Update(ctx context.Context, a artwork.Artwork) error {
	return s.UpdateTitle(ctx, a.Title, a)
}

// UpdateTitle replaces the first artwork titled title with a. Returns
// ErrNotFound, without rewriting the file, if none matched.
func (s *Store) UpdateTitle(ctx context.Context, title string, a artwork.Artwork) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, _, err := s.load()
	if err != nil {
		return err
	}

	if !artwork.ReplaceTitle(records, title, a) {
		return artwork.ErrNotFound
	}

	return s.save(records)
}

// List returns all artworks in file order.
func (s *Store) List(ctx context.Context) ([]artwork.Artwork, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records, _, err := s.load()
	return records, err
}

// Inspect reads the file and reports the entries that were skipped.
func (s *Store) Inspect(ctx context.Context) (artwork.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records, skipped, err := s.load()
	if err != nil {
		return artwork.Report{Location: s.path}, err
	}

	return artwork.Report{Location: s.path, Records: len(records), Skipped: skipped}, nil
}

// load reads the catalog file from disk.
// Returns an empty collection if the file doesn't exist or is empty.
func (s *Store) load() ([]artwork.Artwork, []artwork.Malformed, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("read catalog file: %w: %w", artwork.ErrIO, err)
	}

	if len(data) == 0 {
		return nil, nil, nil
	}

	records, skipped, err := s.codec.Decode(data)
	if err != nil {
		return nil, nil, fmt.Errorf("parse catalog file %s: %w", s.path, err)
	}

	if len(skipped) > 0 {
		s.log.Warn().
			Str("path", s.path).
			Int("skipped", len(skipped)).
			Int("first_position", skipped[0].Position).
			Str("reason", skipped[0].Reason).
			Msg("skipped malformed catalog entries")
	}

	return records, skipped, nil
}

// save writes the catalog file to disk atomically.
func (s *Store) save(records []artwork.Artwork) error {
	data, err := s.codec.Encode(records)
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create catalog directory: %w: %w", artwork.ErrIO, err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write catalog temp file: %w: %w", artwork.ErrIO, err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename catalog file: %w: %w", artwork.ErrIO, err)
	}

	s.log.Debug().Str("path", s.path).Int("records", len(records)).Msg("catalog written")
	return nil
}
