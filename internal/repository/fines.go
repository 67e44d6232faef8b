package repository

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/bookhive/library-service/internal/errs"
	"github.com/bookhive/library-service/internal/model"
	"github.com/bookhive/library-service/internal/store"
)

type Fines interface {
	UpsertPending(ctx context.Context, fines []model.FineRecord) error
	ListPending(ctx context.Context, memberID string) ([]model.FineRecord, error)
	MarkPaid(ctx context.Context, memberID string, fineIDs []string) ([]model.FineRecord, error)
}

type fines struct {
	mu    sync.Mutex
	store store.Store
	log   *zap.Logger
}

func NewFines(s store.Store, log *zap.Logger) *fines {
	return &fines{
		store: s,
		log:   log.Named("repo"),
	}
}

// UpsertPending enforces the one-fine-per-loan invariant: the incoming
// records are folded in by (bookId, memberId, dueDate) key, refreshing a
// pending fine in place and never touching a paid one.
func (r *fines) UpsertPending(ctx context.Context, incoming []model.FineRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := store.Load[model.FineRecord](ctx, r.store, store.KeyFineRecords)
	if err != nil {
		return err
	}

	index := make(map[model.FineKey]int, len(all))
	for i, f := range all {
		index[f.Key()] = i
	}

	changed := false
	for _, f := range incoming {
		i, ok := index[f.Key()]
		if !ok {
			all = append(all, f)
			index[f.Key()] = len(all) - 1
			changed = true
			continue
		}
		if all[i].Status == model.FineStatusPaid {
			continue
		}
		if all[i].DaysOverdue != f.DaysOverdue || all[i].Total != f.Total {
			f.ID = all[i].ID
			all[i] = f
			changed = true
		}
	}

	if !changed {
		return nil
	}
	return store.Save(ctx, r.store, store.KeyFineRecords, all)
}

func (r *fines) ListPending(ctx context.Context, memberID string) ([]model.FineRecord, error) {
	all, err := store.Load[model.FineRecord](ctx, r.store, store.KeyFineRecords)
	if err != nil {
		return nil, err
	}
	pending := make([]model.FineRecord, 0, len(all))
	for _, f := range all {
		if f.MemberID == memberID && f.Status == model.FineStatusPending {
			pending = append(pending, f)
		}
	}
	return pending, nil
}

// MarkPaid flips the named pending fines of the member to paid and
// returns the settled records. Unknown or already-paid ids are skipped;
// settling nothing at all is ErrNotFound.
func (r *fines) MarkPaid(ctx context.Context, memberID string, fineIDs []string) ([]model.FineRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := store.Load[model.FineRecord](ctx, r.store, store.KeyFineRecords)
	if err != nil {
		return nil, err
	}

	requested := make(map[string]struct{}, len(fineIDs))
	for _, id := range fineIDs {
		requested[id] = struct{}{}
	}

	var settled []model.FineRecord
	for i := range all {
		if _, ok := requested[all[i].ID]; !ok {
			continue
		}
		if all[i].MemberID != memberID || all[i].Status != model.FineStatusPending {
			continue
		}
		all[i].Status = model.FineStatusPaid
		settled = append(settled, all[i])
	}

	if len(settled) == 0 {
		return nil, errs.ErrNotFound
	}
	if err := store.Save(ctx, r.store, store.KeyFineRecords, all); err != nil {
		return nil, err
	}
	return settled, nil
}
