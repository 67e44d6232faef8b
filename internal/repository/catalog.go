package repository

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/bookhive/library-service/internal/errs"
	"github.com/bookhive/library-service/internal/model"
	"github.com/bookhive/library-service/internal/store"
)

type Catalog interface {
	ListAll(ctx context.Context) ([]model.Book, error)
	Search(ctx context.Context, criteria model.SearchCriteria) ([]model.Book, error)
	Get(ctx context.Context, bookID string) (model.Book, error)
	ApplyInventoryDelta(ctx context.Context, bookID string, delta int) (model.Book, error)
	Seed(ctx context.Context, books []model.Book) error
}

type catalog struct {
	// mu serializes every read-modify-write cycle on the books
	// document; the store itself has no transaction to lean on.
	mu    sync.Mutex
	store store.Store
	log   *zap.Logger
}

func NewCatalog(s store.Store, log *zap.Logger) *catalog {
	return &catalog{
		store: s,
		log:   log.Named("repo"),
	}
}

func (r *catalog) ListAll(ctx context.Context) ([]model.Book, error) {
	return store.Load[model.Book](ctx, r.store, store.KeyBooks)
}

func (r *catalog) Search(ctx context.Context, criteria model.SearchCriteria) ([]model.Book, error) {
	books, err := r.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if criteria.Empty() {
		return books, nil
	}

	matched := make([]model.Book, 0, len(books))
	for _, b := range books {
		if matches(b, criteria) {
			matched = append(matched, b)
		}
	}
	return matched, nil
}

func matches(b model.Book, c model.SearchCriteria) bool {
	contains := func(field, q string) bool {
		return q == "" || strings.Contains(strings.ToLower(field), strings.ToLower(q))
	}
	return contains(b.Title, c.Title) &&
		contains(b.Author, c.Author) &&
		contains(b.Category, c.Category) &&
		contains(b.ID, c.BookID)
}

func (r *catalog) Get(ctx context.Context, bookID string) (model.Book, error) {
	books, err := r.ListAll(ctx)
	if err != nil {
		return model.Book{}, err
	}
	for _, b := range books {
		if b.ID == bookID {
			return b, nil
		}
	}
	return model.Book{}, errs.ErrNotFound
}

// ApplyInventoryDelta adjusts available copies by delta: negative on
// borrow, positive on return. The result is clamped to [0, total]; a
// borrow that would go below zero fails with ErrInsufficientCopies.
func (r *catalog) ApplyInventoryDelta(ctx context.Context, bookID string, delta int) (model.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	books, err := store.Load[model.Book](ctx, r.store, store.KeyBooks)
	if err != nil {
		return model.Book{}, err
	}

	for i := range books {
		if books[i].ID != bookID {
			continue
		}
		next := books[i].AvailableCopies + delta
		if next < 0 {
			return model.Book{}, errs.ErrInsufficientCopies
		}
		if next > books[i].TotalCopies {
			next = books[i].TotalCopies
		}
		books[i].AvailableCopies = next
		books[i].Available = next > 0

		if err := store.Save(ctx, r.store, store.KeyBooks, books); err != nil {
			return model.Book{}, err
		}
		return books[i], nil
	}

	r.log.Debug("ApplyInventoryDelta: unknown book", zap.String("bookId", bookID))
	return model.Book{}, errs.ErrNotFound
}

// Seed writes the initial catalog once; a populated store wins.
func (r *catalog) Seed(ctx context.Context, books []model.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok, err := r.store.Get(ctx, store.KeyBooks)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	for i := range books {
		books[i].Available = books[i].AvailableCopies > 0
	}
	return store.Save(ctx, r.store, store.KeyBooks, books)
}
