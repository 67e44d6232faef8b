package fine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bookhive/library-service/internal/model"
	"github.com/bookhive/library-service/internal/repository"
	"github.com/bookhive/library-service/internal/store"
)

func newTestService(t *testing.T) (*Service, repository.Ledger) {
	t.Helper()
	log := zap.NewExample().Named("test")
	st := store.NewMemory()
	ledger := repository.NewLedger(st, log)
	svc := NewService(repository.NewFines(st, log), ledger, log)
	return svc, ledger
}

func TestService_GeneratePendingFines(t *testing.T) {
	ctx := context.Background()
	svc, ledger := newTestService(t)

	now := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	due := time.Date(2025, 1, 4, 0, 0, 0, 0, time.UTC)
	require.NoError(t, ledger.Append(ctx, []model.BorrowRecord{
		{ID: "r1", MemberID: "m1", BookID: "BK001", BorrowedAt: due.AddDate(0, 0, -14), DueAt: due},
		{ID: "r2", MemberID: "m1", BookID: "BK002", BorrowedAt: now, DueAt: now.AddDate(0, 0, 14)},
	}))

	fines, err := svc.GeneratePendingFines(ctx, "m1")
	require.NoError(t, err)
	require.Len(t, fines, 1)
	require.Equal(t, "BK001", fines[0].BookID)
	require.Equal(t, 6, fines[0].DaysOverdue)
	require.Equal(t, 30, fines[0].Total)
	require.Equal(t, model.FineStatusPending, fines[0].Status)

	// idempotent: a second run refreshes, never duplicates
	again, err := svc.GeneratePendingFines(ctx, "m1")
	require.NoError(t, err)
	require.Len(t, again, 1)
	require.Equal(t, fines[0].ID, again[0].ID)

	// a later run grows the amount in place
	svc.now = func() time.Time { return now.AddDate(0, 0, 2) }
	grown, err := svc.GeneratePendingFines(ctx, "m1")
	require.NoError(t, err)
	require.Len(t, grown, 1)
	require.Equal(t, fines[0].ID, grown[0].ID)
	require.Equal(t, 8, grown[0].DaysOverdue)
	require.Equal(t, 40, grown[0].Total)
}

func TestService_GeneratePendingFines_NothingOverdue(t *testing.T) {
	ctx := context.Background()
	svc, ledger := newTestService(t)

	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	require.NoError(t, ledger.Append(ctx, []model.BorrowRecord{
		{ID: "r1", MemberID: "m1", BookID: "BK001", BorrowedAt: now, DueAt: now.AddDate(0, 0, 14)},
	}))

	fines, err := svc.GeneratePendingFines(ctx, "m1")
	require.NoError(t, err)
	require.Empty(t, fines)
}
