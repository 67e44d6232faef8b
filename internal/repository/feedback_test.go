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

func TestComplaints_StatusTransitions(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewComplaints(store.NewMemory(), zap.NewExample().Named("test"))

	require.NoError(t, repo.Create(ctx, model.Complaint{
		ID:       "c1",
		MemberID: "m1",
		Subject:  "torn pages",
		Status:   model.ComplaintStatusOpen,
	}))

	// skipping a step is illegal
	_, err := repo.UpdateStatus(ctx, "c1", model.ComplaintStatusResolved)
	require.ErrorIs(t, err, errs.ErrIllegalTransition)

	got, err := repo.UpdateStatus(ctx, "c1", model.ComplaintStatusInProgress)
	require.NoError(t, err)
	require.Equal(t, model.ComplaintStatusInProgress, got.Status)

	got, err = repo.UpdateStatus(ctx, "c1", model.ComplaintStatusResolved)
	require.NoError(t, err)
	require.Equal(t, model.ComplaintStatusResolved, got.Status)

	// no going back
	_, err = repo.UpdateStatus(ctx, "c1", model.ComplaintStatusOpen)
	require.ErrorIs(t, err, errs.ErrIllegalTransition)

	_, err = repo.UpdateStatus(ctx, "missing", model.ComplaintStatusInProgress)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestDonations_StatusTransitions(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewDonations(store.NewMemory(), zap.NewExample().Named("test"))

	require.NoError(t, repo.Create(ctx, model.Donation{
		ID:        "d1",
		MemberID:  "m1",
		BookTitle: "Sapiens",
		Quantity:  2,
		Status:    model.DonationStatusPending,
	}))

	got, err := repo.UpdateStatus(ctx, "d1", model.DonationStatusAccepted)
	require.NoError(t, err)
	require.Equal(t, model.DonationStatusAccepted, got.Status)

	// accepted is terminal
	_, err = repo.UpdateStatus(ctx, "d1", model.DonationStatusRejected)
	require.ErrorIs(t, err, errs.ErrIllegalTransition)

	list, err := repo.List(ctx, "m1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, model.DonationStatusAccepted, list[0].Status)
}
