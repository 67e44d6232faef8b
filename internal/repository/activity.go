package repository

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/bookhive/library-service/internal/store"
	"github.com/bookhive/library-service/pkg/kafka"
)

// Activity is the audit trail fed by the event consumer.
type Activity interface {
	Append(ctx context.Context, event kafka.EventActivity) error
	ForMember(ctx context.Context, memberID string) ([]kafka.EventActivity, error)
}

type activity struct {
	mu    sync.Mutex
	store store.Store
	log   *zap.Logger
}

func NewActivity(s store.Store, log *zap.Logger) *activity {
	return &activity{
		store: s,
		log:   log.Named("repo"),
	}
}

func (r *activity) Append(ctx context.Context, event kafka.EventActivity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := store.Load[kafka.EventActivity](ctx, r.store, store.KeyActivity)
	if err != nil {
		return err
	}
	all = append(all, event)
	return store.Save(ctx, r.store, store.KeyActivity, all)
}

func (r *activity) ForMember(ctx context.Context, memberID string) ([]kafka.EventActivity, error) {
	all, err := store.Load[kafka.EventActivity](ctx, r.store, store.KeyActivity)
	if err != nil {
		return nil, err
	}
	events := make([]kafka.EventActivity, 0, len(all))
	for _, e := range all {
		if e.MemberID == memberID {
			events = append(events, e)
		}
	}
	return events, nil
}
