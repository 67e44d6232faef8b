package feedback

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bookhive/library-service/internal/model"
	"github.com/bookhive/library-service/internal/repository"
)

type Service struct {
	log        *zap.Logger
	complaints repository.Complaints
	donations  repository.Donations
}

func NewService(complaints repository.Complaints, donations repository.Donations, log *zap.Logger) *Service {
	return &Service{
		log:        log,
		complaints: complaints,
		donations:  donations,
	}
}

func (s *Service) CreateComplaint(ctx context.Context, req model.ComplaintRequest) (model.Complaint, error) {
	now := time.Now()
	c := model.Complaint{
		ID:          uuid.NewString(),
		MemberID:    req.MemberID,
		Subject:     req.Subject,
		Description: req.Description,
		Status:      model.ComplaintStatusOpen,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.complaints.Create(ctx, c); err != nil {
		return model.Complaint{}, err
	}
	return c, nil
}

func (s *Service) ListComplaints(ctx context.Context, memberID string) ([]model.Complaint, error) {
	return s.complaints.List(ctx, memberID)
}

func (s *Service) AdvanceComplaint(ctx context.Context, complaintID string, status model.ComplaintStatus) (model.Complaint, error) {
	return s.complaints.UpdateStatus(ctx, complaintID, status)
}

func (s *Service) CreateDonation(ctx context.Context, req model.DonationRequest) (model.Donation, error) {
	now := time.Now()
	d := model.Donation{
		ID:        uuid.NewString(),
		MemberID:  req.MemberID,
		BookTitle: req.BookTitle,
		Author:    req.Author,
		Quantity:  req.Quantity,
		Status:    model.DonationStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.donations.Create(ctx, d); err != nil {
		return model.Donation{}, err
	}
	return d, nil
}

func (s *Service) ListDonations(ctx context.Context, memberID string) ([]model.Donation, error) {
	return s.donations.List(ctx, memberID)
}

func (s *Service) ResolveDonation(ctx context.Context, donationID string, status model.DonationStatus) (model.Donation, error) {
	return s.donations.UpdateStatus(ctx, donationID, status)
}
