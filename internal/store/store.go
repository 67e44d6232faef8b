package store

import (
	"context"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

// Collection keys. Each key holds one JSON document: the full collection.
const (
	KeyMembers       = "registered_users"
	KeyBooks         = "books"
	KeyBorrowRecords = "borrow_records"
	KeyFineRecords   = "fine_records"
	KeyPayments      = "payment_records"
	KeyComplaints    = "complaints"
	KeyDonations     = "donations"
	KeyActivity      = "activity_events"
	KeyCurrentUser   = "currentUser"
	KeyBorrowState   = "borrow_state"
)

// Store is the sole persistence mechanism: named string keys to opaque
// documents. An absent key is not an error.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Load reads the collection at key. Absence decodes as the empty slice.
func Load[T any](ctx context.Context, s Store, key string) ([]T, error) {
	raw, ok, err := s.Get(ctx, key)
	if err != nil {
		return nil, errors.Wrapf(err, "store get %q", key)
	}
	if !ok {
		return nil, nil
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, errors.Wrapf(err, "store decode %q", key)
	}
	return items, nil
}

// Save writes the whole collection back under key.
func Save[T any](ctx context.Context, s Store, key string, items []T) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return errors.Wrapf(err, "store encode %q", key)
	}
	return errors.Wrapf(s.Set(ctx, key, raw), "store set %q", key)
}

// LoadOne reads a single-value document such as the session blob.
func LoadOne[T any](ctx context.Context, s Store, key string) (T, bool, error) {
	var v T
	raw, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		return v, false, errors.Wrapf(err, "store get %q", key)
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, false, errors.Wrapf(err, "store decode %q", key)
	}
	return v, true, nil
}

// SaveOne writes a single-value document under key.
func SaveOne[T any](ctx context.Context, s Store, key string, v T) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "store encode %q", key)
	}
	return errors.Wrapf(s.Set(ctx, key, raw), "store set %q", key)
}
