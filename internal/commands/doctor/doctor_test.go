package doctor

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/artfolio/internal/core/artwork"
	"github.com/hay-kot/artfolio/internal/core/config"
	"github.com/hay-kot/artfolio/internal/store/csvfile"
	"github.com/hay-kot/artfolio/internal/store/jsonfile"
	"github.com/hay-kot/artfolio/internal/store/memory"
)

var (
	starryNight = artwork.Artwork{Title: "Starry Night", Artist: "Vincent van Gogh", Year: 1889, Type: "Painting"}
	monaLisa    = artwork.Artwork{Title: "Mona Lisa", Artist: "Leonardo da Vinci", Year: 1503, Type: "Painting"}
)

func statuses(items []CheckItem) []Status {
	out := make([]Status, len(items))
	for i, item := range items {
		out[i] = item.Status
	}
	return out
}

func TestCatalogCheck_Healthy(t *testing.T) {
	check := NewCatalogCheck(memory.New(starryNight, monaLisa), "")
	result := check.Run(context.Background())

	assert.Equal(t, "Catalog", result.Name)
	assert.Equal(t, []Status{StatusPass, StatusPass, StatusPass}, statuses(result.Items))
	assert.Contains(t, result.Items[0].Detail, "2 artwork(s)")
}

func TestCatalogCheck_DuplicateTitles(t *testing.T) {
	check := NewCatalogCheck(memory.New(starryNight, monaLisa, starryNight), "")
	result := check.Run(context.Background())

	last := result.Items[len(result.Items)-1]
	assert.Equal(t, StatusWarn, last.Status)
	assert.Equal(t, "Starry Night", last.Label)
}

func TestCatalogCheck_MalformedEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "artworks.csv")
	content := "Starry Night,Vincent van Gogh,1889,Painting\nbroken line\nMona Lisa,Leonardo da Vinci,circa,Painting\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	check := NewCatalogCheck(csvfile.New(path, zerolog.Nop()), path)
	result := check.Run(context.Background())

	var warned []string
	for _, item := range result.Items {
		if item.Status == StatusWarn {
			warned = append(warned, item.Label)
		}
	}
	assert.Equal(t, []string{"Entry 2", "Entry 3"}, warned)

	assert.True(t, Count([]Result{result}).Healthy())
}

func TestCatalogCheck_Unreadable(t *testing.T) {
	// A directory where the file should be cannot be read.
	dir := t.TempDir()

	check := NewCatalogCheck(csvfile.New(dir, zerolog.Nop()), dir)
	result := check.Run(context.Background())

	require.Len(t, result.Items, 1)
	assert.Equal(t, StatusFail, result.Items[0].Status)
}

func TestHistoryCheck(t *testing.T) {
	t.Run("persistence disabled", func(t *testing.T) {
		result := NewHistoryCheck(nil).Run(context.Background())
		require.Len(t, result.Items, 1)
		assert.Equal(t, StatusPass, result.Items[0].Status)
	})

	t.Run("missing journal is empty", func(t *testing.T) {
		journal := jsonfile.NewJournalStore(filepath.Join(t.TempDir(), "history.json"))
		result := NewHistoryCheck(journal).Run(context.Background())
		require.Len(t, result.Items, 1)
		assert.Equal(t, StatusPass, result.Items[0].Status)
		assert.Equal(t, "0 undo, 0 redo", result.Items[0].Detail)
	})

	t.Run("corrupted journal fails", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "history.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

		result := NewHistoryCheck(jsonfile.NewJournalStore(path)).Run(context.Background())
		require.Len(t, result.Items, 1)
		assert.Equal(t, StatusFail, result.Items[0].Status)
		assert.Contains(t, result.Items[0].Detail, "history --clear")
	})
}

func TestConfigCheck(t *testing.T) {
	t.Run("not loaded", func(t *testing.T) {
		result := NewConfigCheck(nil, "").Run(context.Background())
		require.Len(t, result.Items, 1)
		assert.Equal(t, StatusFail, result.Items[0].Status)
	})

	t.Run("defaults are valid", func(t *testing.T) {
		dir := t.TempDir()
		cfg, err := config.Load(filepath.Join(dir, "config.yaml"), dir)
		require.NoError(t, err)

		result := NewConfigCheck(cfg, filepath.Join(dir, "config.yaml")).Run(context.Background())
		assert.Equal(t, []Status{StatusPass, StatusPass}, statuses(result.Items))
		assert.Equal(t, "delimited at "+filepath.Join(dir, "artworks.csv"), result.Items[1].Detail)
	})

	t.Run("warnings reported", func(t *testing.T) {
		dir := t.TempDir()
		cfg, err := config.Load(filepath.Join(dir, "config.yaml"), dir)
		require.NoError(t, err)
		cfg.History.MaxEntries = 2

		result := NewConfigCheck(cfg, filepath.Join(dir, "config.yaml")).Run(context.Background())
		assert.Equal(t, []Status{StatusWarn, StatusPass}, statuses(result.Items))
		assert.Equal(t, "History (history.max_entries)", result.Items[0].Label)
	})

	t.Run("memory store", func(t *testing.T) {
		dir := t.TempDir()
		cfg, err := config.Load("", dir)
		require.NoError(t, err)
		cfg.Store.Kind = "memory"
		cfg.History.Persist = false

		result := NewConfigCheck(cfg, "").Run(context.Background())
		last := result.Items[len(result.Items)-1]
		assert.Equal(t, "Store", last.Label)
		assert.Equal(t, "memory, nothing is saved", last.Detail)
	})
}

func TestRunAll(t *testing.T) {
	results := RunAll(context.Background(), []Check{
		NewCatalogCheck(memory.New(starryNight, starryNight), ""),
		NewHistoryCheck(nil),
	})

	require.Len(t, results, 2)
	assert.Equal(t, "Catalog", results[0].Name)
	assert.Equal(t, "History", results[1].Name)

	tally := Count(results)
	assert.Equal(t, Tally{Passed: 3, Warned: 1}, tally)
	assert.True(t, tally.Healthy())
}

func TestRunAll_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := RunAll(ctx, []Check{NewHistoryCheck(nil)})
	assert.Empty(t, results)
}

func TestCheckItem_JSON(t *testing.T) {
	var result Result
	result.Warn("Entry 2", "skipped")

	data, err := json.Marshal(result.Items[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"label":"Entry 2","status":"warn","detail":"skipped"}`, string(data))
}
