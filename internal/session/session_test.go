package session_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bookhive/library-service/internal/model"
	"github.com/bookhive/library-service/internal/session"
	"github.com/bookhive/library-service/internal/store"
)

func TestHub(t *testing.T) {
	hub := session.NewHub()
	require.Equal(t, session.State{}, hub.Current())

	var seen []session.State
	hub.Subscribe(func(s session.State) { seen = append(seen, s) })

	user := model.AuthUser{MemberID: "m1", Name: "Alice"}
	hub.SetUser(user)
	require.Equal(t, user, hub.Current().User)

	borrow := session.BorrowState{MemberID: "m1", BorrowedCount: 2, PendingFines: 1}
	hub.SetBorrow(borrow)
	require.Equal(t, borrow, hub.Current().Borrow)

	// every mutation fanned out, carrying the state so far
	require.Len(t, seen, 2)
	require.Equal(t, user, seen[0].User)
	require.Equal(t, user, seen[1].User)
	require.Equal(t, borrow, seen[1].Borrow)
}

func TestAttach(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	log := zap.NewExample().Named("test")

	user := model.AuthUser{MemberID: "m1", Name: "Alice"}
	require.NoError(t, store.SaveOne(ctx, st, store.KeyCurrentUser, user))

	hub := session.NewHub()
	require.NoError(t, session.Attach(ctx, hub, st, log))
	require.Equal(t, user, hub.Current().User)

	// mutations flow back into the store
	borrow := session.BorrowState{MemberID: "m1", BorrowedCount: 2, PendingFines: 1}
	hub.SetBorrow(borrow)
	got, ok, err := store.LoadOne[session.BorrowState](ctx, st, store.KeyBorrowState)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, borrow, got)

	// a fresh hub picks the whole state back up
	restarted := session.NewHub()
	require.NoError(t, session.Attach(ctx, restarted, st, log))
	require.Equal(t, user, restarted.Current().User)
	require.Equal(t, borrow, restarted.Current().Borrow)
}
