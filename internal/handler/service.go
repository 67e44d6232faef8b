package handler

import (
	"context"

	"github.com/bookhive/library-service/internal/model"
	"github.com/bookhive/library-service/internal/repository"
	"github.com/bookhive/library-service/internal/service/borrow"
	"github.com/bookhive/library-service/internal/service/catalog"
	"github.com/bookhive/library-service/internal/service/feedback"
	"github.com/bookhive/library-service/internal/service/fine"
	"github.com/bookhive/library-service/internal/service/member"
	"github.com/bookhive/library-service/internal/service/payment"
	"github.com/bookhive/library-service/pkg/kafka"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type CatalogService interface {
	ListBooks(ctx context.Context, criteria model.SearchCriteria) ([]model.Book, error)
	GetBook(ctx context.Context, bookID string) (model.Book, error)
}

type MemberService interface {
	Register(ctx context.Context, req model.RegisterRequest) (model.RegisterResponse, error)
	Login(ctx context.Context, req model.LoginRequest) (model.LoginResponse, error)
	Get(ctx context.Context, memberID string) (model.Member, error)
	UpdateProfile(ctx context.Context, memberID string, req model.UpdateProfileRequest) (model.Member, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	MobileExists(ctx context.Context, countryCode, mobile string) (bool, error)
}

type BorrowService interface {
	Borrow(ctx context.Context, req model.BorrowRequest) ([]model.BorrowRecord, error)
	Return(ctx context.Context, recordID string) (model.BorrowRecord, error)
	History(ctx context.Context, memberID string) ([]model.BorrowHistoryEntry, error)
	CheckEligibility(ctx context.Context, memberID string, requested int) (model.Eligibility, error)
}

type FineService interface {
	GeneratePendingFines(ctx context.Context, memberID string) ([]model.FineRecord, error)
}

type PaymentService interface {
	Pay(ctx context.Context, req model.PaymentRequest) (model.PaymentResponse, error)
	ListForMember(ctx context.Context, memberID string) ([]model.PaymentRecord, error)
}

type FeedbackService interface {
	CreateComplaint(ctx context.Context, req model.ComplaintRequest) (model.Complaint, error)
	ListComplaints(ctx context.Context, memberID string) ([]model.Complaint, error)
	AdvanceComplaint(ctx context.Context, complaintID string, status model.ComplaintStatus) (model.Complaint, error)
	CreateDonation(ctx context.Context, req model.DonationRequest) (model.Donation, error)
	ListDonations(ctx context.Context, memberID string) ([]model.Donation, error)
	ResolveDonation(ctx context.Context, donationID string, status model.DonationStatus) (model.Donation, error)
}

type ActivityLog interface {
	ForMember(ctx context.Context, memberID string) ([]kafka.EventActivity, error)
}

var (
	_ CatalogService  = (*catalog.Service)(nil)
	_ MemberService   = (*member.Service)(nil)
	_ BorrowService   = (*borrow.Service)(nil)
	_ FineService     = (*fine.Service)(nil)
	_ PaymentService  = (*payment.Service)(nil)
	_ FeedbackService = (*feedback.Service)(nil)
	_ ActivityLog     = (repository.Activity)(nil)
)
