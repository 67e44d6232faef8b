package session

import (
	"context"

	"go.uber.org/zap"

	"github.com/bookhive/library-service/internal/model"
	"github.com/bookhive/library-service/internal/store"
)

// Attach seeds the hub from the persisted session keys and subscribes a
// writer that keeps the borrow state in the store, so the shared view
// survives a restart. The user half is written by login already.
func Attach(ctx context.Context, hub *Hub, st store.Store, log *zap.Logger) error {
	user, ok, err := store.LoadOne[model.AuthUser](ctx, st, store.KeyCurrentUser)
	if err != nil {
		return err
	}
	if ok {
		hub.SetUser(user)
	}

	borrow, ok, err := store.LoadOne[BorrowState](ctx, st, store.KeyBorrowState)
	if err != nil {
		return err
	}
	if ok {
		hub.SetBorrow(borrow)
	}

	hub.Subscribe(func(s State) {
		if err := store.SaveOne(ctx, st, store.KeyBorrowState, s.Borrow); err != nil {
			log.Warn("persist borrow state", zap.Error(err))
		}
	})
	return nil
}
