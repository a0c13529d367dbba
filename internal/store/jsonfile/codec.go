// Package jsonfile provides the structured-document artwork store and the
// JSON journal that persists undo/redo history.
package jsonfile

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/hay-kot/artfolio/internal/core/artwork"
	"github.com/hay-kot/artfolio/internal/store/filestore"
)

// Codec reads and writes a top-level JSON array of artwork objects.
type Codec struct{}

func (Codec) Decode(data []byte) ([]artwork.Artwork, []artwork.Malformed, error) {
	return Decode(data)
}

func (Codec) Encode(records []artwork.Artwork) ([]byte, error) {
	return Encode(records)
}

// New creates a structured-document store at path.
func New(path string, log zerolog.Logger) *filestore.Store {
	return filestore.New(path, Codec{}, log)
}

// Decode parses a JSON array of artwork objects. Entries that are not objects,
// lack one of the four fields, or carry a field of the wrong type are skipped
// and reported. Unknown keys are ignored. A document that is not an array
// returns an error wrapping artwork.ErrMalformed.
func Decode(data []byte) ([]artwork.Artwork, []artwork.Malformed, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil, nil
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", artwork.ErrMalformed, err)
	}

	var (
		records []artwork.Artwork
		skipped []artwork.Malformed
	)

	for i, raw := range entries {
		a, err := decodeEntry(raw)
		if err != nil {
			skipped = append(skipped, artwork.Malformed{Position: i + 1, Reason: err.Error()})
			continue
		}
		records = append(records, a)
	}

	return records, skipped, nil
}

func decodeEntry(raw json.RawMessage) (artwork.Artwork, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
		return artwork.Artwork{}, fmt.Errorf("entry is not an object")
	}

	var a artwork.Artwork
	fields := []struct {
		key string
		dst any
	}{
		{"title", &a.Title},
		{"artist", &a.Artist},
		{"year", &a.Year},
		{"type", &a.Type},
	}

	for _, f := range fields {
		v, ok := obj[f.key]
		if !ok {
			return artwork.Artwork{}, fmt.Errorf("missing field %q", f.key)
		}
		if bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			return artwork.Artwork{}, fmt.Errorf("field %q is null", f.key)
		}
		if err := json.Unmarshal(v, f.dst); err != nil {
			return artwork.Artwork{}, fmt.Errorf("field %q has the wrong type", f.key)
		}
	}

	return a, nil
}

// Encode renders records as an indented JSON array.
func Encode(records []artwork.Artwork) ([]byte, error) {
	if records == nil {
		records = []artwork.Artwork{}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
