package repository

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/bookhive/library-service/internal/errs"
	"github.com/bookhive/library-service/internal/model"
	"github.com/bookhive/library-service/internal/store"
)

// Ledger is the append-only record of borrow events. Records are never
// deleted; a return only sets the return timestamp.
type Ledger interface {
	Append(ctx context.Context, records []model.BorrowRecord) error
	Get(ctx context.Context, recordID string) (model.BorrowRecord, error)
	Return(ctx context.Context, recordID string, at time.Time) (model.BorrowRecord, error)
	ForMember(ctx context.Context, memberID string) ([]model.BorrowRecord, error)
}

type ledger struct {
	mu    sync.Mutex
	store store.Store
	log   *zap.Logger
}

func NewLedger(s store.Store, log *zap.Logger) *ledger {
	return &ledger{
		store: s,
		log:   log.Named("repo"),
	}
}

func (r *ledger) Append(ctx context.Context, records []model.BorrowRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := store.Load[model.BorrowRecord](ctx, r.store, store.KeyBorrowRecords)
	if err != nil {
		return err
	}
	all = append(all, records...)
	return store.Save(ctx, r.store, store.KeyBorrowRecords, all)
}

func (r *ledger) Get(ctx context.Context, recordID string) (model.BorrowRecord, error) {
	all, err := store.Load[model.BorrowRecord](ctx, r.store, store.KeyBorrowRecords)
	if err != nil {
		return model.BorrowRecord{}, err
	}
	for _, rec := range all {
		if rec.ID == recordID {
			return rec, nil
		}
	}
	return model.BorrowRecord{}, errs.ErrNotFound
}

// Return stamps the record once. A record that is missing or already
// returned yields ErrNotFound so a double return never double-credits.
func (r *ledger) Return(ctx context.Context, recordID string, at time.Time) (model.BorrowRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := store.Load[model.BorrowRecord](ctx, r.store, store.KeyBorrowRecords)
	if err != nil {
		return model.BorrowRecord{}, err
	}
	for i := range all {
		if all[i].ID != recordID || all[i].ReturnedAt != nil {
			continue
		}
		ts := at
		all[i].ReturnedAt = &ts
		if err := store.Save(ctx, r.store, store.KeyBorrowRecords, all); err != nil {
			return model.BorrowRecord{}, err
		}
		return all[i], nil
	}
	r.log.Debug("Return: no outstanding record", zap.String("recordId", recordID))
	return model.BorrowRecord{}, errs.ErrNotFound
}

func (r *ledger) ForMember(ctx context.Context, memberID string) ([]model.BorrowRecord, error) {
	all, err := store.Load[model.BorrowRecord](ctx, r.store, store.KeyBorrowRecords)
	if err != nil {
		return nil, err
	}
	records := make([]model.BorrowRecord, 0, len(all))
	for _, rec := range all {
		if rec.MemberID == memberID {
			records = append(records, rec)
		}
	}
	return records, nil
}
