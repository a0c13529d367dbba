// Package sqlite provides an artwork store backed by a SQLite database.
// Row order is preserved through an autoincrement position column.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"

	"github.com/hay-kot/artfolio/internal/core/artwork"
)

//go:embed schema.sql
var schemaSQL string

// Store implements artwork.Store on a SQLite database.
type Store struct {
	db   *sql.DB
	path string
	log  zerolog.Logger
}

// Open creates or opens the database at path and applies the schema.
// Pass ":memory:" for a throwaway database.
func Open(path string, log zerolog.Logger) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w: %w", artwork.ErrIO, err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w: %w", artwork.ErrIO, err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connect to database: %w: %w", artwork.ErrIO, err)
	}

	// SQLite allows one writer; a single connection also keeps ":memory:"
	// databases from splitting across connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	log.Debug().Str("path", path).Msg("opened sqlite store")
	return &Store{db: db, path: path, log: log}, nil
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("execute %q: %w", pragma, err)
		}
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database path.
func (s *Store) Path() string {
	return s.path
}

// Add appends a as the last row.
func (s *Store) Add(ctx context.Context, a artwork.Artwork) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO artworks (title, artist, year, type) VALUES (?, ?, ?, ?)`,
		a.Title, a.Artist, a.Year, a.Type,
	)
	if err != nil {
		return fmt.Errorf("insert artwork: %w: %w", artwork.ErrIO, err)
	}
	return nil
}

// Insert places a at index, shifting later rows back. An index past the end
// appends.
func (s *Store) Insert(ctx context.Context, index int, a artwork.Artwork) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin insert: %w: %w", artwork.ErrIO, err)
	}
	defer func() { _ = tx.Rollback() }()

	var pos int64
	err = tx.QueryRowContext(ctx,
		`SELECT position FROM artworks ORDER BY position LIMIT 1 OFFSET ?`, max(index, 0),
	).Scan(&pos)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = tx.ExecContext(ctx,
			`INSERT INTO artworks (title, artist, year, type) VALUES (?, ?, ?, ?)`,
			a.Title, a.Artist, a.Year, a.Type,
		)
	case err == nil:
		// Shift through negative positions so no two rows share a key mid-update.
		_, err = tx.ExecContext(ctx, `UPDATE artworks SET position = -(position + 1) WHERE position >= ?`, pos)
		if err == nil {
			_, err = tx.ExecContext(ctx, `UPDATE artworks SET position = -position WHERE position < 0`)
		}
		if err == nil {
			_, err = tx.ExecContext(ctx,
				`INSERT INTO artworks (position, title, artist, year, type) VALUES (?, ?, ?, ?, ?)`,
				pos, a.Title, a.Artist, a.Year, a.Type,
			)
		}
	}
	if err != nil {
		return fmt.Errorf("insert artwork: %w: %w", artwork.ErrIO, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit insert: %w: %w", artwork.ErrIO, err)
	}
	return nil
}

// Remove deletes every row titled title.
func (s *Store) Remove(ctx context.Context, title string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM artworks WHERE title = ?`, title)
	if err != nil {
		return fmt.Errorf("delete artwork: %w: %w", artwork.ErrIO, err)
	}
	return requireRows(res)
}

// Update replaces the first row titled a.Title.
func (s *Store) Update(ctx context.Context, a artwork.Artwork) error {
	return s.UpdateTitle(ctx, a.Title, a)
}

// UpdateTitle replaces the first row titled title with a, keeping its position.
func (s *Store) UpdateTitle(ctx context.Context, title string, a artwork.Artwork) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE artworks SET title = ?, artist = ?, year = ?, type = ?
		WHERE position = (SELECT MIN(position) FROM artworks WHERE title = ?)`,
		a.Title, a.Artist, a.Year, a.Type, title,
	)
	if err != nil {
		return fmt.Errorf("update artwork: %w: %w", artwork.ErrIO, err)
	}
	return requireRows(res)
}

// List returns every row in insertion order.
func (s *Store) List(ctx context.Context) ([]artwork.Artwork, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT title, artist, year, type FROM artworks ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query artworks: %w: %w", artwork.ErrIO, err)
	}
	defer func() { _ = rows.Close() }()

	records := []artwork.Artwork{}
	for rows.Next() {
		var a artwork.Artwork
		if err := rows.Scan(&a.Title, &a.Artist, &a.Year, &a.Type); err != nil {
			return nil, fmt.Errorf("scan artwork: %w: %w", artwork.ErrIO, err)
		}
		records = append(records, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate artworks: %w: %w", artwork.ErrIO, err)
	}
	return records, nil
}

// Inspect reports the row count. The schema enforces every column, so rows
// are never skipped.
func (s *Store) Inspect(ctx context.Context) (artwork.Report, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM artworks`).Scan(&n); err != nil {
		return artwork.Report{}, fmt.Errorf("count artworks: %w: %w", artwork.ErrIO, err)
	}
	return artwork.Report{Location: s.path, Records: n}, nil
}

func requireRows(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w: %w", artwork.ErrIO, err)
	}
	if n == 0 {
		return artwork.ErrNotFound
	}
	return nil
}
