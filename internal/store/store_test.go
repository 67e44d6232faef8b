package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bookhive/library-service/internal/model"
	"github.com/bookhive/library-service/internal/store"
)

func TestMemory(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()

	_, ok, err := s.Get(ctx, "missing")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, s.Set(ctx, "k", []byte(`[1,2]`)))
	raw, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte(`[1,2]`), raw)

	// the store hands out copies, not aliases
	raw[0] = 'x'
	raw, _, err = s.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte(`[1,2]`), raw)

	require.NoError(t, s.Remove(ctx, "k"))
	_, ok, err = s.Get(ctx, "k")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestLoadSave(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()

	// an absent collection is the empty slice
	books, err := store.Load[model.Book](ctx, s, store.KeyBooks)
	require.NoError(t, err)
	require.Empty(t, books)

	want := []model.Book{
		{ID: "BK001", Title: "Sapiens", TotalCopies: 3, AvailableCopies: 2, Available: true},
	}
	require.NoError(t, store.Save(ctx, s, store.KeyBooks, want))

	books, err = store.Load[model.Book](ctx, s, store.KeyBooks)
	require.NoError(t, err)
	require.Equal(t, want, books)
}

func TestLoadOneSaveOne(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()

	_, ok, err := store.LoadOne[model.AuthUser](ctx, s, store.KeyCurrentUser)
	require.NoError(t, err)
	require.False(t, ok)

	want := model.AuthUser{MemberID: "m1", Name: "Alice", Email: "alice@example.com"}
	require.NoError(t, store.SaveOne(ctx, s, store.KeyCurrentUser, want))

	got, ok, err := store.LoadOne[model.AuthUser](ctx, s, store.KeyCurrentUser)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, want, got)
}
