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

type Complaints interface {
	Create(ctx context.Context, c model.Complaint) error
	List(ctx context.Context, memberID string) ([]model.Complaint, error)
	UpdateStatus(ctx context.Context, complaintID string, status model.ComplaintStatus) (model.Complaint, error)
}

type complaints struct {
	mu    sync.Mutex
	store store.Store
	log   *zap.Logger
}

func NewComplaints(s store.Store, log *zap.Logger) *complaints {
	return &complaints{
		store: s,
		log:   log.Named("repo"),
	}
}

func (r *complaints) Create(ctx context.Context, c model.Complaint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := store.Load[model.Complaint](ctx, r.store, store.KeyComplaints)
	if err != nil {
		return err
	}
	all = append(all, c)
	return store.Save(ctx, r.store, store.KeyComplaints, all)
}

// List returns every complaint, or only the member's when memberID is set.
func (r *complaints) List(ctx context.Context, memberID string) ([]model.Complaint, error) {
	all, err := store.Load[model.Complaint](ctx, r.store, store.KeyComplaints)
	if err != nil {
		return nil, err
	}
	if memberID == "" {
		return all, nil
	}
	items := make([]model.Complaint, 0, len(all))
	for _, c := range all {
		if c.MemberID == memberID {
			items = append(items, c)
		}
	}
	return items, nil
}

func (r *complaints) UpdateStatus(ctx context.Context, complaintID string, status model.ComplaintStatus) (model.Complaint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := store.Load[model.Complaint](ctx, r.store, store.KeyComplaints)
	if err != nil {
		return model.Complaint{}, err
	}
	for i := range all {
		if all[i].ID != complaintID {
			continue
		}
		if !all[i].Status.CanTransition(status) {
			return model.Complaint{}, errs.ErrIllegalTransition
		}
		all[i].Status = status
		all[i].UpdatedAt = time.Now()
		if err := store.Save(ctx, r.store, store.KeyComplaints, all); err != nil {
			return model.Complaint{}, err
		}
		return all[i], nil
	}
	return model.Complaint{}, errs.ErrNotFound
}

type Donations interface {
	Create(ctx context.Context, d model.Donation) error
	List(ctx context.Context, memberID string) ([]model.Donation, error)
	UpdateStatus(ctx context.Context, donationID string, status model.DonationStatus) (model.Donation, error)
}

type donations struct {
	mu    sync.Mutex
	store store.Store
	log   *zap.Logger
}

func NewDonations(s store.Store, log *zap.Logger) *donations {
	return &donations{
		store: s,
		log:   log.Named("repo"),
	}
}

func (r *donations) Create(ctx context.Context, d model.Donation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := store.Load[model.Donation](ctx, r.store, store.KeyDonations)
	if err != nil {
		return err
	}
	all = append(all, d)
	return store.Save(ctx, r.store, store.KeyDonations, all)
}

func (r *donations) List(ctx context.Context, memberID string) ([]model.Donation, error) {
	all, err := store.Load[model.Donation](ctx, r.store, store.KeyDonations)
	if err != nil {
		return nil, err
	}
	if memberID == "" {
		return all, nil
	}
	items := make([]model.Donation, 0, len(all))
	for _, d := range all {
		if d.MemberID == memberID {
			items = append(items, d)
		}
	}
	return items, nil
}

func (r *donations) UpdateStatus(ctx context.Context, donationID string, status model.DonationStatus) (model.Donation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := store.Load[model.Donation](ctx, r.store, store.KeyDonations)
	if err != nil {
		return model.Donation{}, err
	}
	for i := range all {
		if all[i].ID != donationID {
			continue
		}
		if !all[i].Status.CanTransition(status) {
			return model.Donation{}, errs.ErrIllegalTransition
		}
		all[i].Status = status
		all[i].UpdatedAt = time.Now()
		if err := store.Save(ctx, r.store, store.KeyDonations, all); err != nil {
			return model.Donation{}, err
		}
		return all[i], nil
	}
	return model.Donation{}, errs.ErrNotFound
}
