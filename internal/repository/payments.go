package repository

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/bookhive/library-service/internal/model"
	"github.com/bookhive/library-service/internal/store"
)

type Payments interface {
	Append(ctx context.Context, p model.PaymentRecord) error
	ForMember(ctx context.Context, memberID string) ([]model.PaymentRecord, error)
}

type payments struct {
	mu    sync.Mutex
	store store.Store
	log   *zap.Logger
}

func NewPayments(s store.Store, log *zap.Logger) *payments {
	return &payments{
		store: s,
		log:   log.Named("repo"),
	}
}

func (r *payments) Append(ctx context.Context, p model.PaymentRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := store.Load[model.PaymentRecord](ctx, r.store, store.KeyPayments)
	if err != nil {
		return err
	}
	all = append(all, p)
	return store.Save(ctx, r.store, store.KeyPayments, all)
}

func (r *payments) ForMember(ctx context.Context, memberID string) ([]model.PaymentRecord, error) {
	all, err := store.Load[model.PaymentRecord](ctx, r.store, store.KeyPayments)
	if err != nil {
		return nil, err
	}
	records := make([]model.PaymentRecord, 0, len(all))
	for _, p := range all {
		if p.MemberID == memberID {
			records = append(records, p)
		}
	}
	return records, nil
}
