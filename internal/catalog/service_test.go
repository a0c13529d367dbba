package catalog

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/artfolio/internal/core/artwork"
	"github.com/hay-kot/artfolio/internal/core/config"
	"github.com/hay-kot/artfolio/internal/core/history"
	"github.com/hay-kot/artfolio/internal/store"
	"github.com/hay-kot/artfolio/internal/store/csvfile"
	"github.com/hay-kot/artfolio/internal/store/jsonfile"
	"github.com/hay-kot/artfolio/internal/store/memory"
)

var (
	starryNight = artwork.Artwork{Title: "Starry Night", Artist: "Vincent van Gogh", Year: 1889, Type: "Painting"}
	irises      = artwork.Artwork{Title: "Irises", Artist: "Vincent van Gogh", Year: 1889, Type: "Painting"}
	monaLisa    = artwork.Artwork{Title: "Mona Lisa", Artist: "Leonardo da Vinci", Year: 1503, Type: "Painting"}
	thinker     = artwork.Artwork{Title: "The Thinker", Artist: "Auguste Rodin", Year: 1904, Type: "Sculpture"}
)

// recordingJournal keeps saved state in memory and counts saves.
type recordingJournal struct {
	state history.State
	saves int
	err   error
}

func (j *recordingJournal) Load(context.Context) (history.State, error) { return j.state, j.err }

func (j *recordingJournal) Save(_ context.Context, s history.State) error {
	if j.err != nil {
		return j.err
	}
	j.saves++
	j.state = s
	return nil
}

func (j *recordingJournal) Clear(context.Context) error {
	j.state = history.State{}
	return j.err
}

func newService(t *testing.T, opts history.Options, records ...artwork.Artwork) (*Service, *recordingJournal) {
	t.Helper()
	j := &recordingJournal{}
	store := memory.New(records...)
	return New(store, history.New(opts, zerolog.Nop()), j, zerolog.Nop()), j
}

func TestService_AddReturnsCollection(t *testing.T) {
	ctx := context.Background()
	svc, j := newService(t, history.Options{})

	got, err := svc.Add(ctx, starryNight)
	require.NoError(t, err)
	assert.Equal(t, []artwork.Artwork{starryNight}, got)
	assert.Equal(t, 1, j.saves)
	assert.True(t, svc.CanUndo())
}

func TestService_AddValidates(t *testing.T) {
	svc, j := newService(t, history.Options{})

	_, err := svc.Add(context.Background(), artwork.Artwork{Title: "Untitled"})

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Len(t, fieldErrs, 3)
	assert.Zero(t, j.saves)
	assert.False(t, svc.CanUndo())
}

func TestService_AddRejectsDuplicateTitle(t *testing.T) {
	svc, _ := newService(t, history.Options{}, starryNight)

	dup := starryNight
	dup.Year = 1890
	_, err := svc.Add(context.Background(), dup)
	require.ErrorIs(t, err, artwork.ErrDuplicate)
	assert.False(t, svc.CanUndo())
}

func TestService_GetAllEmptyIsNonNil(t *testing.T) {
	svc, _ := newService(t, history.Options{})

	got, err := svc.GetAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestService_Filters(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t, history.Options{}, starryNight, monaLisa, irises, thinker)

	byArtist, err := svc.FilterByArtist(ctx, "Vincent van Gogh")
	require.NoError(t, err)
	assert.Equal(t, []artwork.Artwork{starryNight, irises}, byArtist)

	byYear, err := svc.FilterByYear(ctx, 1904)
	require.NoError(t, err)
	assert.Equal(t, []artwork.Artwork{thinker}, byYear)

	none, err := svc.FilterByArtist(ctx, "vincent van gogh")
	require.NoError(t, err)
	assert.Empty(t, none)

	byTitle, err := svc.FilterByTitle(ctx, "*is*")
	require.NoError(t, err)
	assert.Equal(t, []artwork.Artwork{monaLisa, irises}, byTitle)
}

func TestService_RemoveAndUndo(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t, history.Options{}, starryNight, monaLisa, thinker)

	got, err := svc.Remove(ctx, monaLisa.Title)
	require.NoError(t, err)
	assert.Equal(t, []artwork.Artwork{starryNight, thinker}, got)

	got, err = svc.Undo(ctx)
	require.NoError(t, err)
	assert.Equal(t, []artwork.Artwork{starryNight, monaLisa, thinker}, got)

	got, err = svc.Redo(ctx)
	require.NoError(t, err)
	assert.Equal(t, []artwork.Artwork{starryNight, thinker}, got)
}

func TestService_RemoveMissing(t *testing.T) {
	ctx := context.Background()

	t.Run("permissive records a no-op", func(t *testing.T) {
		svc, _ := newService(t, history.Options{}, monaLisa)

		got, err := svc.Remove(ctx, "Guernica")
		require.NoError(t, err)
		assert.Equal(t, []artwork.Artwork{monaLisa}, got)

		got, err = svc.Undo(ctx)
		require.NoError(t, err)
		assert.Equal(t, []artwork.Artwork{monaLisa}, got)
	})

	t.Run("strict reports not found", func(t *testing.T) {
		svc, _ := newService(t, history.Options{Strict: true}, monaLisa)

		_, err := svc.Remove(ctx, "Guernica")
		require.ErrorIs(t, err, artwork.ErrNotFound)
		assert.False(t, svc.CanUndo())
	})
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("in place", func(t *testing.T) {
		svc, _ := newService(t, history.Options{}, starryNight, monaLisa)

		updated := monaLisa
		updated.Type = "Oil on poplar"
		got, err := svc.Update(ctx, monaLisa.Title, updated)
		require.NoError(t, err)
		assert.Equal(t, []artwork.Artwork{starryNight, updated}, got)

		got, err = svc.Undo(ctx)
		require.NoError(t, err)
		assert.Equal(t, []artwork.Artwork{starryNight, monaLisa}, got)
	})

	t.Run("rename", func(t *testing.T) {
		svc, _ := newService(t, history.Options{}, starryNight, monaLisa)

		renamed := monaLisa
		renamed.Title = "La Gioconda"
		got, err := svc.Update(ctx, monaLisa.Title, renamed)
		require.NoError(t, err)
		assert.Equal(t, []artwork.Artwork{starryNight, renamed}, got)

		got, err = svc.Undo(ctx)
		require.NoError(t, err)
		assert.Equal(t, []artwork.Artwork{starryNight, monaLisa}, got)
	})

	t.Run("rename onto existing title", func(t *testing.T) {
		svc, _ := newService(t, history.Options{}, starryNight, monaLisa)

		clash := monaLisa
		clash.Title = starryNight.Title
		_, err := svc.Update(ctx, monaLisa.Title, clash)
		require.ErrorIs(t, err, artwork.ErrDuplicate)
	})

	t.Run("nonexistent title leaves store unchanged", func(t *testing.T) {
		svc, _ := newService(t, history.Options{}, starryNight)

		ghost := artwork.Artwork{Title: "Guernica", Artist: "Pablo Picasso", Year: 1937, Type: "Painting"}
		got, err := svc.Update(ctx, ghost.Title, ghost)
		require.NoError(t, err)
		assert.Equal(t, []artwork.Artwork{starryNight}, got)

		got, err = svc.Undo(ctx)
		require.NoError(t, err)
		assert.Equal(t, []artwork.Artwork{starryNight}, got)
	})
}

func TestService_UndoRedoEmpty(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t, history.Options{}, starryNight)

	got, err := svc.Undo(ctx)
	require.NoError(t, err)
	assert.Equal(t, []artwork.Artwork{starryNight}, got)

	got, err = svc.Redo(ctx)
	require.NoError(t, err)
	assert.Equal(t, []artwork.Artwork{starryNight}, got)
}

func TestService_NewChangeDropsRedo(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t, history.Options{})

	_, err := svc.Add(ctx, starryNight)
	require.NoError(t, err)
	_, err = svc.Add(ctx, monaLisa)
	require.NoError(t, err)
	_, err = svc.Undo(ctx)
	require.NoError(t, err)
	_, err = svc.Add(ctx, thinker)
	require.NoError(t, err)

	assert.False(t, svc.CanRedo())
	got, err := svc.Redo(ctx)
	require.NoError(t, err)
	assert.Equal(t, []artwork.Artwork{starryNight, thinker}, got)
}

func TestService_HistoryAndClear(t *testing.T) {
	ctx := context.Background()
	svc, j := newService(t, history.Options{})

	_, err := svc.Add(ctx, starryNight)
	require.NoError(t, err)
	_, err = svc.Add(ctx, monaLisa)
	require.NoError(t, err)
	_, err = svc.Undo(ctx)
	require.NoError(t, err)

	applied, pending := svc.History()
	require.Len(t, applied, 1)
	require.Len(t, pending, 1)
	assert.Equal(t, `Add "Starry Night"`, applied[0].Description())
	assert.Equal(t, `Add "Mona Lisa"`, pending[0].Description())
	assert.Len(t, j.state.Applied, 1)

	require.NoError(t, svc.ClearHistory(ctx))
	applied, pending = svc.History()
	assert.Empty(t, applied)
	assert.Empty(t, pending)
	assert.Empty(t, j.state.Applied)

	// Clearing history never touches the catalog.
	got, err := svc.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []artwork.Artwork{starryNight}, got)
}

func TestService_JournalFailureSurfaces(t *testing.T) {
	svc, j := newService(t, history.Options{})
	j.err = errors.New("disk full")

	ctx := context.Background()
	_, err := svc.Add(ctx, starryNight)
	require.ErrorIs(t, err, ErrNotRecorded)
	assert.Contains(t, err.Error(), "save history")
	assert.Contains(t, err.Error(), `Add "Starry Night"`)

	// The change itself went through and can still be undone in this run.
	got, err := svc.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []artwork.Artwork{starryNight}, got)
	assert.True(t, svc.CanUndo())

	_, err = svc.Undo(ctx)
	require.ErrorIs(t, err, ErrNotRecorded)
	got, err = svc.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestService_NilJournal(t *testing.T) {
	ctx := context.Background()
	svc := New(memory.New(), history.New(history.Options{}, zerolog.Nop()), nil, zerolog.Nop())

	require.NoError(t, svc.Load(ctx))
	_, err := svc.Add(ctx, starryNight)
	require.NoError(t, err)
	require.NoError(t, svc.ClearHistory(ctx))
}

// Undo must work across processes: each "run" builds a fresh Service over
// the same catalog file and journal.
func TestService_UndoAcrossRuns(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	catalogPath := filepath.Join(dir, "artworks.csv")
	journalPath := filepath.Join(dir, "history.json")

	run := func(t *testing.T) *Service {
		t.Helper()
		store := csvfile.New(catalogPath, zerolog.Nop())
		svc := New(store, history.New(history.Options{}, zerolog.Nop()), jsonfile.NewJournalStore(journalPath), zerolog.Nop())
		require.NoError(t, svc.Load(ctx))
		return svc
	}

	_, err := run(t).Add(ctx, starryNight)
	require.NoError(t, err)
	_, err = run(t).Add(ctx, monaLisa)
	require.NoError(t, err)

	got, err := run(t).Undo(ctx)
	require.NoError(t, err)
	assert.Equal(t, []artwork.Artwork{starryNight}, got)

	got, err = run(t).Redo(ctx)
	require.NoError(t, err)
	assert.Equal(t, []artwork.Artwork{starryNight, monaLisa}, got)

	svc := run(t)
	assert.Equal(t, 2, len(svc.history.Applied()))
}

// Switching the store between runs must never replay one catalog's history
// against another.
func TestService_HistoryFollowsCatalog(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	run := func(t *testing.T, kind string) *Service {
		t.Helper()
		cfg, err := config.Load("", dir)
		require.NoError(t, err)
		cfg.Store.Kind = kind

		s, err := store.Open(kind, cfg.CatalogFile(), zerolog.Nop())
		require.NoError(t, err)
		t.Cleanup(func() { _ = store.Close(s) })

		var journal history.Journal
		if cfg.PersistHistory() {
			journal = jsonfile.NewJournalStore(cfg.JournalFile())
		}

		svc := New(s, history.New(history.Options{}, zerolog.Nop()), journal, zerolog.Nop())
		require.NoError(t, svc.Load(ctx))
		return svc
	}

	_, err := run(t, "structured").Add(ctx, starryNight)
	require.NoError(t, err)

	delimited := run(t, "delimited")
	assert.False(t, delimited.CanUndo(), "structured history is not visible")
	_, err = delimited.Add(ctx, monaLisa)
	require.NoError(t, err)

	assert.False(t, run(t, "memory").CanUndo())

	got, err := run(t, "structured").Undo(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = run(t, "structured").Redo(ctx)
	require.NoError(t, err)
	assert.Equal(t, []artwork.Artwork{starryNight}, got)

	got, err = run(t, "delimited").Undo(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = run(t, "structured").GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []artwork.Artwork{starryNight}, got)
}
