package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bookhive/library-service/internal/errs"
	"github.com/bookhive/library-service/internal/model"
	"github.com/bookhive/library-service/internal/repository"
	"github.com/bookhive/library-service/internal/store"
)

func newCatalog(t *testing.T, books ...model.Book) repository.Catalog {
	t.Helper()
	repo := repository.NewCatalog(store.NewMemory(), zap.NewExample().Named("test"))
	require.NoError(t, repo.Seed(context.Background(), books))
	return repo
}

func TestCatalog_Search(t *testing.T) {
	repo := newCatalog(t,
		model.Book{ID: "BK001", Title: "The Go Programming Language", Author: "Alan Donovan", Category: "Software", TotalCopies: 3, AvailableCopies: 3},
		model.Book{ID: "BK002", Title: "Clean Code", Author: "Robert Martin", Category: "Software", TotalCopies: 2, AvailableCopies: 2},
		model.Book{ID: "BK003", Title: "Sapiens", Author: "Yuval Noah Harari", Category: "History", TotalCopies: 1, AvailableCopies: 1},
	)
	ctx := context.Background()

	tests := []struct {
		name     string
		criteria model.SearchCriteria
		wantIDs  []string
	}{
		{
			name:     "empty criteria returns everything",
			criteria: model.SearchCriteria{},
			wantIDs:  []string{"BK001", "BK002", "BK003"},
		},
		{
			name:     "case-insensitive substring on title",
			criteria: model.SearchCriteria{Title: "go program"},
			wantIDs:  []string{"BK001"},
		},
		{
			name:     "fields are ANDed",
			criteria: model.SearchCriteria{Category: "software", Author: "martin"},
			wantIDs:  []string{"BK002"},
		},
		{
			name:     "conflicting fields match nothing",
			criteria: model.SearchCriteria{Category: "history", Author: "martin"},
			wantIDs:  []string{},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			books, err := repo.Search(ctx, tt.criteria)
			require.NoError(t, err)
			ids := make([]string, 0, len(books))
			for _, b := range books {
				ids = append(ids, b.ID)
			}
			require.ElementsMatch(t, tt.wantIDs, ids)
		})
	}
}

func TestCatalog_ApplyInventoryDelta(t *testing.T) {
	ctx := context.Background()
	repo := newCatalog(t, model.Book{ID: "BK001", Title: "Sapiens", TotalCopies: 10, AvailableCopies: 1})

	// first borrow takes the last copy
	book, err := repo.ApplyInventoryDelta(ctx, "BK001", -1)
	require.NoError(t, err)
	require.Equal(t, 0, book.AvailableCopies)
	require.False(t, book.Available)

	// second borrow must fail, never going negative
	_, err = repo.ApplyInventoryDelta(ctx, "BK001", -1)
	require.ErrorIs(t, err, errs.ErrInsufficientCopies)

	book, err = repo.Get(ctx, "BK001")
	require.NoError(t, err)
	require.Equal(t, 0, book.AvailableCopies)

	// a return credits the copy back
	book, err = repo.ApplyInventoryDelta(ctx, "BK001", 1)
	require.NoError(t, err)
	require.Equal(t, 1, book.AvailableCopies)
	require.True(t, book.Available)

	// credits are capped at total
	book, err = repo.ApplyInventoryDelta(ctx, "BK001", 100)
	require.NoError(t, err)
	require.Equal(t, 10, book.AvailableCopies)

	_, err = repo.ApplyInventoryDelta(ctx, "missing", -1)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestCatalog_SeedOnce(t *testing.T) {
	ctx := context.Background()
	repo := newCatalog(t, model.Book{ID: "BK001", Title: "Sapiens", TotalCopies: 2, AvailableCopies: 2})

	_, err := repo.ApplyInventoryDelta(ctx, "BK001", -1)
	require.NoError(t, err)

	// reseeding must not reset a populated catalog
	require.NoError(t, repo.Seed(ctx, []model.Book{{ID: "BK001", Title: "Sapiens", TotalCopies: 2, AvailableCopies: 2}}))
	book, err := repo.Get(ctx, "BK001")
	require.NoError(t, err)
	require.Equal(t, 1, book.AvailableCopies)
}
