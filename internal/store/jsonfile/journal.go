package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/hay-kot/artfolio/internal/core/history"
)

// journalFile is the root JSON structure stored on disk.
type journalFile struct {
	Version int           `json:"version"`
	State   history.State `json:"state"`
}

const journalVersion = 1

// JournalStore implements history.Journal using a JSON file for persistence.
type JournalStore struct {
	path string
	mu   sync.RWMutex
}

// NewJournalStore creates a new JSON file journal at the given path.
func NewJournalStore(path string) *JournalStore {
	return &JournalStore{path: path}
}

// Load returns the saved history state.
func (s *JournalStore) Load(ctx context.Context) (history.State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, err := s.load()
	if err != nil {
		return history.State{}, err
	}

	return f.State, nil
}

// Save replaces the saved history state.
func (s *JournalStore) Save(ctx context.Context, state history.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.save(journalFile{Version: journalVersion, State: state})
}

// Clear removes all saved history.
func (s *JournalStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.save(journalFile{Version: journalVersion})
}

// load reads the journal file from disk.
// Returns an empty journal if the file doesn't exist.
func (s *JournalStore) load() (journalFile, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return journalFile{}, nil
		}
		return journalFile{}, fmt.Errorf("read history file: %w", err)
	}

	if len(data) == 0 {
		return journalFile{}, nil
	}

	var f journalFile
	if err := json.Unmarshal(data, &f); err != nil {
		return journalFile{}, fmt.Errorf("history file corrupted (run 'artfolio history --clear' to reset): %w", err)
	}

	if f.Version > journalVersion {
		return journalFile{}, fmt.Errorf("history file version %d is newer than supported version %d", f.Version, journalVersion)
	}

	return f, nil
}

// save writes the journal file to disk atomically.
func (s *JournalStore) save(f journalFile) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create history directory: %w", err)
	}

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write history temp file: %w", err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename history file: %w", err)
	}

	return nil
}
