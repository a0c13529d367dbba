package jsonfile

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/artfolio/internal/core/artwork"
)

var catalog = []artwork.Artwork{
	{Title: "Starry Night", Artist: "Vincent van Gogh", Year: 1889, Type: "Painting"},
	{Title: "Mona Lisa", Artist: "Leonardo da Vinci", Year: 1503, Type: "Painting"},
}

func TestEncode_Golden(t *testing.T) {
	data, err := Encode(catalog)
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "catalog", data)
}

func TestEncode_EmptyIsArray(t *testing.T) {
	data, err := Encode(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}

func TestDecode(t *testing.T) {
	t.Run("round trip keeps order", func(t *testing.T) {
		data, err := Encode(catalog)
		require.NoError(t, err)

		got, skipped, err := Decode(data)
		require.NoError(t, err)
		assert.Empty(t, skipped)
		assert.Equal(t, catalog, got)
	})

	t.Run("empty document", func(t *testing.T) {
		got, skipped, err := Decode([]byte("  \n"))
		require.NoError(t, err)
		assert.Empty(t, got)
		assert.Empty(t, skipped)
	})

	t.Run("not an array", func(t *testing.T) {
		_, _, err := Decode([]byte(`{"title": "Starry Night"}`))
		assert.ErrorIs(t, err, artwork.ErrMalformed)
	})

	t.Run("invalid json", func(t *testing.T) {
		_, _, err := Decode([]byte(`[{"title": `))
		assert.ErrorIs(t, err, artwork.ErrMalformed)
	})

	t.Run("malformed entries skipped", func(t *testing.T) {
		input := `[
			{"title": "Starry Night", "artist": "Vincent van Gogh", "year": 1889, "type": "Painting"},
			{"title": "No Year", "artist": "Unknown", "type": "Drawing"},
			{"title": "String Year", "artist": "Unknown", "year": "1900", "type": "Drawing"},
			{"title": "Fraction", "artist": "Unknown", "year": 1900.5, "type": "Drawing"},
			{"title": null, "artist": "Unknown", "year": 1900, "type": "Drawing"},
			"just a string",
			{"title": "Mona Lisa", "artist": "Leonardo da Vinci", "year": 1503, "type": "Painting", "museum": "Louvre"}
		]`

		got, skipped, err := Decode([]byte(input))
		require.NoError(t, err)

		require.Len(t, got, 2)
		assert.Equal(t, "Starry Night", got[0].Title)
		assert.Equal(t, "Mona Lisa", got[1].Title)

		positions := make([]int, 0, len(skipped))
		for _, m := range skipped {
			positions = append(positions, m.Position)
		}
		assert.Equal(t, []int{2, 3, 4, 5, 6}, positions)
		assert.Contains(t, skipped[0].Reason, `"year"`)
		assert.Equal(t, "entry is not an object", skipped[4].Reason)
	})
}
