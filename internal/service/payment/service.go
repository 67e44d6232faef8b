package payment

import (
	"context"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/bookhive/library-service/internal/errs"
	"github.com/bookhive/library-service/internal/events"
	"github.com/bookhive/library-service/internal/model"
	"github.com/bookhive/library-service/internal/repository"
	"github.com/bookhive/library-service/pkg/breaker"
	"github.com/bookhive/library-service/pkg/kafka"
)

// declineReasons is the fixed set of messages a failed simulated charge
// picks from.
var declineReasons = []string{
	"insufficient funds",
	"card declined by issuer",
	"gateway timeout",
	"transaction limit exceeded",
}

type Service struct {
	log         *zap.Logger
	fines       repository.Fines
	payments    repository.Payments
	publisher   events.Publisher
	cb          breaker.CircuitBreaker
	successRate float64
	rng         *rand.Rand
	now         func() time.Time
}

func NewService(
	fines repository.Fines,
	payments repository.Payments,
	publisher events.Publisher,
	successRate float64,
	log *zap.Logger,
) *Service {
	return &Service{
		log:         log,
		fines:       fines,
		payments:    payments,
		publisher:   publisher,
		cb:          breaker.New(20, 5*time.Second, 0.8, 2),
		successRate: successRate,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
		now:         time.Now,
	}
}

// Pay settles the member's pending fines named in the request. The
// submitted amount must match the current total of the settleable
// fines. The simulated gateway succeeds with the configured
// probability; a decline leaves every record untouched. Unknown fine
// ids are skipped.
func (s *Service) Pay(ctx context.Context, req model.PaymentRequest) (model.PaymentResponse, error) {
	pending, err := s.fines.ListPending(ctx, req.MemberID)
	if err != nil {
		return model.PaymentResponse{}, err
	}
	pendingIDs := make(map[string]model.FineRecord, len(pending))
	for _, f := range pending {
		pendingIDs[f.ID] = f
	}

	amount := 0
	settleable := make([]string, 0, len(req.FineIDs))
	for _, id := range req.FineIDs {
		if f, ok := pendingIDs[id]; ok {
			settleable = append(settleable, id)
			amount += f.Total
		}
	}
	if len(settleable) == 0 {
		return model.PaymentResponse{}, errs.ErrNotFound
	}
	// fines accrue daily, so a stale view can submit an outdated total
	if req.Amount != amount {
		return model.PaymentResponse{}, errors.Wrapf(errs.ErrAmountMismatch, "submitted %d, owed %d", req.Amount, amount)
	}

	if err := s.cb.Call(s.charge); err != nil {
		s.log.Info("payment declined", zap.String("memberId", req.MemberID), zap.Error(err))
		return model.PaymentResponse{}, errors.Wrap(errs.ErrPaymentDeclined, err.Error())
	}

	settled, err := s.fines.MarkPaid(ctx, req.MemberID, settleable)
	if err != nil {
		return model.PaymentResponse{}, err
	}

	settledIDs := make([]string, 0, len(settled))
	for _, f := range settled {
		settledIDs = append(settledIDs, f.ID)
	}
	record := model.PaymentRecord{
		ID:            uuid.NewString(),
		TransactionID: uuid.NewString(),
		MemberID:      req.MemberID,
		Amount:        amount,
		Method:        req.Method,
		PaidAt:        s.now(),
		FineIDs:       settledIDs,
		Status:        model.PaymentStatusCompleted,
	}
	if err := s.payments.Append(ctx, record); err != nil {
		return model.PaymentResponse{}, err
	}

	if err := s.publisher.Publish(kafka.ActivityTopic, kafka.EventActivity{
		Timestamp: record.PaidAt,
		MemberID:  record.MemberID,
		EventType: kafka.EventTypePayment,
		Amount:    record.Amount,
	}); err != nil {
		s.log.Warn("publish event", zap.Error(err))
	}

	return model.PaymentResponse{
		PaymentID:     record.ID,
		TransactionID: record.TransactionID,
		Amount:        record.Amount,
		Status:        string(record.Status),
	}, nil
}

// charge stands in for a payment gateway call.
func (s *Service) charge() error {
	if s.rng.Float64() < s.successRate {
		return nil
	}
	return errors.New(declineReasons[s.rng.Intn(len(declineReasons))])
}

func (s *Service) ListForMember(ctx context.Context, memberID string) ([]model.PaymentRecord, error) {
	return s.payments.ForMember(ctx, memberID)
}
