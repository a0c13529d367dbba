package printer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
)

func TestFatalError_Plain(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).FatalError(errors.New("catalog storage i/o failure"))

	out := buf.String()
	assert.Contains(t, out, "╭ Error")
	assert.Contains(t, out, "catalog storage i/o failure")
}

func TestFatalError_FieldErrors(t *testing.T) {
	var buf bytes.Buffer

	var errs criterio.FieldErrorsBuilder
	errs = errs.Append("title", errors.New("value is required"))
	errs = errs.Append("year", errors.New("year is required"))
	err := fmt.Errorf("add artwork: %w", errs.ToError())

	New(&buf).FatalError(err)

	out := buf.String()
	assert.Contains(t, out, "Validation Error")
	assert.Contains(t, out, "add artwork")
	assert.Contains(t, out, "title: ")
	assert.Contains(t, out, "year is required")
}

func TestFatalError_Nil(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).FatalError(nil)
	assert.Empty(t, buf.String())
}

func TestChangef(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Changef(3, "Added %q", "Starry Night")

	out := buf.String()
	assert.Contains(t, out, `Added "Starry Night"`)
	assert.Contains(t, out, "3 artworks in catalog")
}

func TestPlural(t *testing.T) {
	assert.Equal(t, "0 artworks", Plural(0, "artwork"))
	assert.Equal(t, "1 artwork", Plural(1, "artwork"))
	assert.Equal(t, "2 changes", Plural(2, "change"))
}

func TestCtx(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)

	ctx := NewContext(context.Background(), p)
	assert.Same(t, p, Ctx(ctx))
	assert.NotNil(t, Ctx(context.Background()))
}
