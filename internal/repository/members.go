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

type Members interface {
	Create(ctx context.Context, m model.Member) (model.Member, error)
	FindByEmail(ctx context.Context, email string) (model.Member, error)
	FindByID(ctx context.Context, memberID string) (model.Member, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	MobileExists(ctx context.Context, countryCode, mobile string) (bool, error)
	Update(ctx context.Context, m model.Member) error
}

type members struct {
	mu    sync.Mutex
	store store.Store
	log   *zap.Logger
}

func NewMembers(s store.Store, log *zap.Logger) *members {
	return &members{
		store: s,
		log:   log.Named("repo"),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Create persists the member unless the email or the mobile pair is
// already taken. Uniqueness is checked under the same gate as the write
// so two racing registrations cannot both pass.
func (r *members) Create(ctx context.Context, m model.Member) (model.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := store.Load[model.Member](ctx, r.store, store.KeyMembers)
	if err != nil {
		return model.Member{}, err
	}
	for _, existing := range all {
		if normalizeEmail(existing.Email) == normalizeEmail(m.Email) {
			return model.Member{}, errs.ErrDuplicateEmail
		}
		if existing.CountryCode == m.CountryCode && existing.Mobile == m.Mobile {
			return model.Member{}, errs.ErrDuplicateMobile
		}
	}

	all = append(all, m)
	if err := store.Save(ctx, r.store, store.KeyMembers, all); err != nil {
		return model.Member{}, err
	}
	r.log.Debug("member registered", zap.String("memberId", m.ID))
	return m, nil
}

func (r *members) FindByEmail(ctx context.Context, email string) (model.Member, error) {
	all, err := store.Load[model.Member](ctx, r.store, store.KeyMembers)
	if err != nil {
		return model.Member{}, err
	}
	for _, m := range all {
		if normalizeEmail(m.Email) == normalizeEmail(email) {
			return m, nil
		}
	}
	return model.Member{}, errs.ErrNotFound
}

func (r *members) FindByID(ctx context.Context, memberID string) (model.Member, error) {
	all, err := store.Load[model.Member](ctx, r.store, store.KeyMembers)
	if err != nil {
		return model.Member{}, err
	}
	for _, m := range all {
		if m.ID == memberID {
			return m, nil
		}
	}
	return model.Member{}, errs.ErrNotFound
}

func (r *members) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := r.FindByEmail(ctx, email)
	if err != nil {
		if err == errs.ErrNotFound {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *members) MobileExists(ctx context.Context, countryCode, mobile string) (bool, error) {
	all, err := store.Load[model.Member](ctx, r.store, store.KeyMembers)
	if err != nil {
		return false, err
	}
	for _, m := range all {
		if m.CountryCode == countryCode && m.Mobile == mobile {
			return true, nil
		}
	}
	return false, nil
}

func (r *members) Update(ctx context.Context, m model.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := store.Load[model.Member](ctx, r.store, store.KeyMembers)
	if err != nil {
		return err
	}
	for i := range all {
		if all[i].ID == m.ID {
			all[i] = m
			return store.Save(ctx, r.store, store.KeyMembers, all)
		}
	}
	return errs.ErrNotFound
}
