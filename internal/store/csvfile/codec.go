// Package csvfile provides the delimited-text artwork store: one artwork per
// line, four comma-separated columns in the order title, artist, year, type.
package csvfile

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/hay-kot/artfolio/internal/core/artwork"
	"github.com/hay-kot/artfolio/internal/store/filestore"
)

const fieldCount = 4

// ErrLineBreak is returned when a field would split a record across lines.
var ErrLineBreak = errors.New("field contains a line break")

// Codec reads and writes the delimited format.
type Codec struct{}

func (Codec) Decode(data []byte) ([]artwork.Artwork, []artwork.Malformed, error) {
	records, skipped := Decode(data)
	return records, skipped, nil
}

func (Codec) Encode(records []artwork.Artwork) ([]byte, error) {
	return Encode(records)
}

// New creates a delimited-text store at path.
func New(path string, log zerolog.Logger) *filestore.Store {
	return filestore.New(path, Codec{}, log)
}

// Decode parses one artwork per line. Blank lines are ignored; lines with the
// wrong number of fields or a non-integer year are skipped and reported.
func Decode(data []byte) ([]artwork.Artwork, []artwork.Malformed) {
	var (
		records []artwork.Artwork
		skipped []artwork.Malformed
	)

	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		a, err := decodeLine(line)
		if err != nil {
			skipped = append(skipped, artwork.Malformed{Position: i + 1, Reason: err.Error()})
			continue
		}
		records = append(records, a)
	}

	return records, skipped
}

func decodeLine(line string) (artwork.Artwork, error) {
	r := csv.NewReader(strings.NewReader(line))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	fields, err := r.Read()
	if err != nil {
		return artwork.Artwork{}, fmt.Errorf("parse line: %w", err)
	}

	if len(fields) != fieldCount {
		return artwork.Artwork{}, fmt.Errorf("expected %d fields, got %d", fieldCount, len(fields))
	}

	year, err := strconv.Atoi(strings.TrimSpace(fields[2]))
	if err != nil {
		return artwork.Artwork{}, fmt.Errorf("year %q is not an integer", fields[2])
	}

	return artwork.Artwork{
		Title:  fields[0],
		Artist: fields[1],
		Year:   year,
		Type:   fields[3],
	}, nil
}

// Encode renders records one per line. Fields containing commas or quotes
// are quoted; fields containing line breaks are rejected.
func Encode(records []artwork.Artwork) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	for _, a := range records {
		fields := a.Fields()
		for _, f := range fields {
			if strings.ContainsAny(f, "\r\n") {
				return nil, fmt.Errorf("artwork %q: %w", a.Title, ErrLineBreak)
			}
		}
		if err := w.Write(fields); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
