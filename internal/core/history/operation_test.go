package history

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/artfolio/internal/core/artwork"
	"github.com/hay-kot/artfolio/internal/store/memory"
)

func TestOperation_Unbound(t *testing.T) {
	op := NewInsert(nil, starryNight)
	assert.ErrorIs(t, op.Apply(context.Background()), ErrUnbound)
	assert.ErrorIs(t, op.Revert(context.Background()), ErrUnbound)
}

func TestOperation_Empty(t *testing.T) {
	ctx := context.Background()
	store := memory.New(starryNight)

	del, err := NewDelete(ctx, store, "missing")
	require.NoError(t, err)
	assert.True(t, del.Empty())
	assert.ErrorIs(t, del.Apply(ctx), artwork.ErrNotFound)
	assert.ErrorIs(t, del.Revert(ctx), artwork.ErrNotFound)
	assert.Equal(t, []artwork.Artwork{starryNight}, list(t, store), "empty revert must not add a blank record")

	found, err := NewDelete(ctx, store, starryNight.Title)
	require.NoError(t, err)
	assert.False(t, found.Empty())

	assert.False(t, NewInsert(store, monaLisa).Empty())
}

func TestOperation_ReplaceRenameRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := memory.New(starryNight, monaLisa)

	renamed := monaLisa
	renamed.Title = "La Gioconda"

	op, err := NewReplace(ctx, store, monaLisa.Title, renamed)
	require.NoError(t, err)
	assert.Equal(t, monaLisa, op.Previous)

	require.NoError(t, op.Apply(ctx))
	assert.Equal(t, []artwork.Artwork{starryNight, renamed}, list(t, store))

	require.NoError(t, op.Revert(ctx))
	assert.Equal(t, []artwork.Artwork{starryNight, monaLisa}, list(t, store))
}

type plainStore struct{ artwork.Store }

func TestOperation_RenameNeedsRetitler(t *testing.T) {
	ctx := context.Background()
	store := plainStore{memory.New(monaLisa)}

	renamed := monaLisa
	renamed.Title = "La Gioconda"

	op, err := NewReplace(ctx, store, monaLisa.Title, renamed)
	require.NoError(t, err)
	assert.ErrorContains(t, op.Apply(ctx), "does not support renames")
}

func TestOperation_Description(t *testing.T) {
	ctx := context.Background()
	store := memory.New(monaLisa)

	renamed := monaLisa
	renamed.Title = "La Gioconda"
	rename, err := NewReplace(ctx, store, monaLisa.Title, renamed)
	require.NoError(t, err)

	del, err := NewDelete(ctx, store, monaLisa.Title)
	require.NoError(t, err)

	tests := []struct {
		name string
		op   Operation
		want string
	}{
		{"insert", NewInsert(store, starryNight), `Add "Starry Night"`},
		{"delete", del, `Remove "Mona Lisa"`},
		{"rename", rename, `Update "Mona Lisa" (renamed to "La Gioconda")`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.op.Description())
		})
	}
}

func TestOperation_IDs(t *testing.T) {
	a := NewInsert(nil, starryNight)
	b := NewInsert(nil, starryNight)
	assert.Len(t, a.ID, 8)
	assert.NotEqual(t, a.ID, b.ID)
}
