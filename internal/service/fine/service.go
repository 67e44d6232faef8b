package fine

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bookhive/library-service/internal/model"
	"github.com/bookhive/library-service/internal/repository"
)

type Service struct {
	log    *zap.Logger
	fines  repository.Fines
	ledger repository.Ledger
	now    func() time.Time
}

func NewService(fines repository.Fines, ledger repository.Ledger, log *zap.Logger) *Service {
	return &Service{
		log:    log,
		fines:  fines,
		ledger: ledger,
		now:    time.Now,
	}
}

// WithClock overrides the time source.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// GeneratePendingFines derives a fine for every outstanding overdue loan
// of the member and returns the member's pending fines. Repeated calls
// refresh the amounts but never duplicate a fine for the same loan.
func (s *Service) GeneratePendingFines(ctx context.Context, memberID string) ([]model.FineRecord, error) {
	records, err := s.ledger.ForMember(ctx, memberID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	var derived []model.FineRecord
	for _, rec := range records {
		if !rec.Outstanding() || !rec.DueAt.Before(now) {
			continue
		}
		amount := Calc(rec.DueAt, now)
		derived = append(derived, model.FineRecord{
			ID:          uuid.NewString(),
			MemberID:    rec.MemberID,
			BookID:      rec.BookID,
			DueAt:       rec.DueAt,
			DaysOverdue: amount.DaysOverdue,
			DailyRate:   DailyRate,
			Total:       amount.Total,
			Status:      model.FineStatusPending,
		})
	}

	if len(derived) > 0 {
		if err := s.fines.UpsertPending(ctx, derived); err != nil {
			return nil, err
		}
	}
	return s.fines.ListPending(ctx, memberID)
}

func (s *Service) ListPending(ctx context.Context, memberID string) ([]model.FineRecord, error) {
	return s.fines.ListPending(ctx, memberID)
}
