// Package store selects an artwork.Store implementation by kind.
package store

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/hay-kot/artfolio/internal/core/artwork"
	"github.com/hay-kot/artfolio/internal/store/csvfile"
	"github.com/hay-kot/artfolio/internal/store/jsonfile"
	"github.com/hay-kot/artfolio/internal/store/memory"
	"github.com/hay-kot/artfolio/internal/store/sqlite"
)

// Kind names a backing format.
type Kind string

const (
	KindDelimited  Kind = "delimited"
	KindStructured Kind = "structured"
	KindSQLite     Kind = "sqlite"
	KindMemory     Kind = "memory"
)

// Kinds lists the canonical kinds in display order.
var Kinds = []Kind{KindDelimited, KindStructured, KindSQLite, KindMemory}

// ParseKind resolves a kind name or alias. An empty name yields KindDelimited.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "delimited", "csv":
		return KindDelimited, nil
	case "structured", "json":
		return KindStructured, nil
	case "sqlite", "db":
		return KindSQLite, nil
	case "memory":
		return KindMemory, nil
	default:
		return "", fmt.Errorf("unknown store kind: %q (supported: delimited, structured, sqlite, memory)", name)
	}
}

// Ext returns the default file extension for the kind, without the dot.
func (k Kind) Ext() string {
	switch k {
	case KindStructured:
		return "json"
	case KindSQLite:
		return "db"
	case KindMemory:
		return ""
	default:
		return "csv"
	}
}

// DefaultPath returns the catalog location for kind inside dataDir.
func DefaultPath(kind Kind, dataDir string) string {
	if kind == KindMemory {
		return ""
	}
	return filepath.Join(dataDir, "artworks."+kind.Ext())
}

// Open creates a store of the named kind at path.
//
// Supported kinds:
//
//	"delimited"  - comma-separated lines (alias "csv", default)
//	"structured" - JSON array of objects (alias "json")
//	"sqlite"     - SQLite database
//	"memory"     - in-memory, lost on exit; path is ignored
func Open(kind, path string, log zerolog.Logger) (artwork.Store, error) {
	k, err := ParseKind(kind)
	if err != nil {
		return nil, err
	}

	if k != KindMemory && path == "" {
		return nil, fmt.Errorf("store kind %q requires a path", k)
	}

	log = log.With().Str("component", "store").Str("kind", string(k)).Logger()

	switch k {
	case KindStructured:
		return jsonfile.New(path, log), nil
	case KindSQLite:
		s, err := sqlite.Open(path, log)
		if err != nil {
			return nil, err
		}
		return s, nil
	case KindMemory:
		return memory.New(), nil
	default:
		return csvfile.New(path, log), nil
	}
}

// Close releases resources held by s, if any.
func Close(s artwork.Store) error {
	if c, ok := s.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
