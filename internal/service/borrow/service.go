package borrow

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/bookhive/library-service/internal/errs"
	"github.com/bookhive/library-service/internal/events"
	"github.com/bookhive/library-service/internal/model"
	"github.com/bookhive/library-service/internal/repository"
	"github.com/bookhive/library-service/internal/service/fine"
	"github.com/bookhive/library-service/internal/session"
	"github.com/bookhive/library-service/pkg/kafka"
)

const (
	// BorrowPeriod is the fixed loan window.
	BorrowPeriod = 14 * 24 * time.Hour
	// MaxBooksAllowed is the per-member cap on outstanding loans.
	MaxBooksAllowed = 5
)

type Service struct {
	log       *zap.Logger
	catalog   repository.Catalog
	ledger    repository.Ledger
	fines     *fine.Service
	hub       *session.Hub
	publisher events.Publisher
	now       func() time.Time
}

func NewService(
	catalog repository.Catalog,
	ledger repository.Ledger,
	fines *fine.Service,
	hub *session.Hub,
	publisher events.Publisher,
	log *zap.Logger,
) *Service {
	return &Service{
		log:       log,
		catalog:   catalog,
		ledger:    ledger,
		fines:     fines,
		hub:       hub,
		publisher: publisher,
		now:       time.Now,
	}
}

// CheckEligibility is the single authority on whether a member may take
// out `requested` more copies. Reasons are surfaced in priority order:
// pending fines, overdue loans, the borrow cap. requested == 0 asks
// whether the member may borrow at all. Only fines already materialized
// by the fines view count; a loan that went overdue since then is
// caught by the overdue rule.
func (s *Service) CheckEligibility(ctx context.Context, memberID string, requested int) (model.Eligibility, error) {
	pending, err := s.fines.ListPending(ctx, memberID)
	if err != nil {
		return model.Eligibility{}, err
	}
	if len(pending) > 0 {
		return model.Eligibility{Reason: "pending fines must be paid before borrowing"}, nil
	}

	records, err := s.ledger.ForMember(ctx, memberID)
	if err != nil {
		return model.Eligibility{}, err
	}
	now := s.now()
	borrowed, overdue := 0, 0
	for _, rec := range records {
		if !rec.Outstanding() {
			continue
		}
		borrowed++
		if rec.DueAt.Before(now) {
			overdue++
		}
	}
	if overdue > 0 {
		return model.Eligibility{Reason: "overdue books must be returned before borrowing"}, nil
	}
	if borrowed+requested > MaxBooksAllowed || (requested == 0 && borrowed >= MaxBooksAllowed) {
		return model.Eligibility{Reason: "borrow limit reached"}, nil
	}
	return model.Eligibility{Eligible: true}, nil
}

// Borrow expands every requested item into one ledger record per copy,
// due a fixed period from now. Inventory is decremented per book; a
// failure mid-way rolls the earlier decrements back before reporting it.
func (s *Service) Borrow(ctx context.Context, req model.BorrowRequest) ([]model.BorrowRecord, error) {
	requested := 0
	for _, item := range req.Items {
		requested += item.Quantity
	}

	eligibility, err := s.CheckEligibility(ctx, req.MemberID, requested)
	if err != nil {
		return nil, err
	}
	if !eligibility.Eligible {
		return nil, errors.Wrap(errs.ErrNotEligible, eligibility.Reason)
	}

	var applied []model.BorrowItem
	rollback := func() {
		for _, item := range applied {
			if _, err := s.catalog.ApplyInventoryDelta(ctx, item.BookID, item.Quantity); err != nil {
				s.log.Error("borrow rollback", zap.String("bookId", item.BookID), zap.Error(err))
			}
		}
	}

	for _, item := range req.Items {
		if _, err := s.catalog.ApplyInventoryDelta(ctx, item.BookID, -item.Quantity); err != nil {
			rollback()
			return nil, err
		}
		applied = append(applied, item)
	}

	now := s.now()
	due := now.Add(BorrowPeriod)
	var records []model.BorrowRecord
	for _, item := range req.Items {
		for i := 0; i < item.Quantity; i++ {
			records = append(records, model.BorrowRecord{
				ID:         uuid.NewString(),
				MemberID:   req.MemberID,
				BookID:     item.BookID,
				BorrowedAt: now,
				DueAt:      due,
			})
		}
	}
	if err := s.ledger.Append(ctx, records); err != nil {
		rollback()
		return nil, err
	}

	for _, rec := range records {
		s.publish(kafka.EventActivity{
			Timestamp: now,
			MemberID:  rec.MemberID,
			BookID:    rec.BookID,
			RecordID:  rec.ID,
			EventType: kafka.EventTypeBorrow,
		})
	}
	s.notify(ctx, req.MemberID)
	return records, nil
}

// Return closes the loan and credits the copy back, capped at the
// book's total. Returning an already-returned record is ErrNotFound.
func (s *Service) Return(ctx context.Context, recordID string) (model.BorrowRecord, error) {
	now := s.now()
	rec, err := s.ledger.Return(ctx, recordID, now)
	if err != nil {
		return model.BorrowRecord{}, err
	}
	if _, err := s.catalog.ApplyInventoryDelta(ctx, rec.BookID, 1); err != nil {
		s.log.Error("return inventory credit", zap.String("bookId", rec.BookID), zap.Error(err))
	}

	s.publish(kafka.EventActivity{
		Timestamp: now,
		MemberID:  rec.MemberID,
		BookID:    rec.BookID,
		RecordID:  rec.ID,
		EventType: kafka.EventTypeReturn,
	})
	s.notify(ctx, rec.MemberID)
	return rec, nil
}

func (s *Service) CurrentBorrowedCount(ctx context.Context, memberID string) (int, error) {
	records, err := s.ledger.ForMember(ctx, memberID)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, rec := range records {
		if rec.Outstanding() {
			count++
		}
	}
	return count, nil
}

// History lists the member's loans, newest borrow first, each enriched
// with its derived status and fine. The fine of a returned loan is fixed
// by its return date; an outstanding one accrues against now.
func (s *Service) History(ctx context.Context, memberID string) ([]model.BorrowHistoryEntry, error) {
	records, err := s.ledger.ForMember(ctx, memberID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	entries := make([]model.BorrowHistoryEntry, 0, len(records))
	for _, rec := range records {
		reference := now
		if rec.ReturnedAt != nil {
			reference = *rec.ReturnedAt
		}
		entry := model.BorrowHistoryEntry{
			BorrowRecord: rec,
			Status:       rec.Status(now),
			Fine:         fine.Calc(rec.DueAt, reference).Total,
		}
		if book, err := s.catalog.Get(ctx, rec.BookID); err == nil {
			entry.BookTitle = book.Title
		}
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].BorrowedAt.After(entries[j].BorrowedAt)
	})
	return entries, nil
}

func (s *Service) publish(event kafka.EventActivity) {
	if err := s.publisher.Publish(kafka.ActivityTopic, event); err != nil {
		s.log.Warn("publish event", zap.String("type", event.EventType), zap.Error(err))
	}
}

func (s *Service) notify(ctx context.Context, memberID string) {
	count, err := s.CurrentBorrowedCount(ctx, memberID)
	if err != nil {
		s.log.Warn("notify: borrowed count", zap.Error(err))
		return
	}
	pending, err := s.fines.ListPending(ctx, memberID)
	if err != nil {
		s.log.Warn("notify: pending fines", zap.Error(err))
		return
	}
	s.hub.SetBorrow(session.BorrowState{
		MemberID:      memberID,
		BorrowedCount: count,
		PendingFines:  len(pending),
	})
}
