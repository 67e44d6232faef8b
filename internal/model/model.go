package model

import (
	"time"
)

type Book struct {
	ID              string `json:"bookId"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	Category        string `json:"category"`
	ISBN            string `json:"isbn"`
	TotalCopies     int    `json:"totalCopies"`
	AvailableCopies int    `json:"availableCopies"`
	Available       bool   `json:"available"`
}

// SearchCriteria fields are case-insensitive substring matches, ANDed
// when more than one is given. The zero value matches the whole catalog.
type SearchCriteria struct {
	Title    string `json:"title"`
	Author   string `json:"author"`
	Category string `json:"category"`
	BookID   string `json:"bookId"`
}

func (c SearchCriteria) Empty() bool {
	return c.Title == "" && c.Author == "" && c.Category == "" && c.BookID == ""
}

// Member is the persisted directory record. The credential is stored
// as given (plain or hashed per the configured scheme) and must survive
// the store round-trip; HTTP responses serve Profile() instead.
type Member struct {
	ID          string    `json:"memberId"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Password    string    `json:"password"`
	CountryCode string    `json:"countryCode"`
	Mobile      string    `json:"mobile"`
	DateOfBirth string    `json:"dateOfBirth"`
	Address     string    `json:"address"`
	CreatedAt   time.Time `json:"createdAt"`
}

// MemberProfile is the member as served over HTTP, credential omitted.
type MemberProfile struct {
	ID          string    `json:"memberId"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	CountryCode string    `json:"countryCode"`
	Mobile      string    `json:"mobile"`
	DateOfBirth string    `json:"dateOfBirth"`
	Address     string    `json:"address"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (m Member) Profile() MemberProfile {
	return MemberProfile{
		ID:          m.ID,
		Name:        m.Name,
		Email:       m.Email,
		CountryCode: m.CountryCode,
		Mobile:      m.Mobile,
		DateOfBirth: m.DateOfBirth,
		Address:     m.Address,
		CreatedAt:   m.CreatedAt,
	}
}

type BorrowRecord struct {
	ID         string     `json:"recordId"`
	MemberID   string     `json:"memberId"`
	BookID     string     `json:"bookId"`
	BorrowedAt time.Time  `json:"borrowedAt"`
	DueAt      time.Time  `json:"dueAt"`
	ReturnedAt *time.Time `json:"returnedAt,omitempty"`
}

func (r BorrowRecord) Outstanding() bool {
	return r.ReturnedAt == nil
}

type BorrowStatus string

const (
	BorrowStatusBorrowed BorrowStatus = "BORROWED"
	BorrowStatusOverdue  BorrowStatus = "OVERDUE"
	BorrowStatusReturned BorrowStatus = "RETURNED"
)

// Status derives the view state at the given reference time. A returned
// record is never reclassified as overdue.
func (r BorrowRecord) Status(at time.Time) BorrowStatus {
	if r.ReturnedAt != nil {
		return BorrowStatusReturned
	}
	if r.DueAt.Before(at) {
		return BorrowStatusOverdue
	}
	return BorrowStatusBorrowed
}

// FineKey is the key the loan's fine is deduplicated on.
func (r BorrowRecord) FineKey() FineKey {
	return FineKey{BookID: r.BookID, MemberID: r.MemberID, DueUnix: r.DueAt.Unix()}
}

type BorrowHistoryEntry struct {
	BorrowRecord `json:",inline"`
	BookTitle    string       `json:"bookTitle"`
	Status       BorrowStatus `json:"status"`
	Fine         int          `json:"fine"`
}

type FineStatus string

const (
	FineStatusPending FineStatus = "PENDING"
	FineStatusPaid    FineStatus = "PAID"
)

// FineKey identifies the single fine a given overdue loan may accrue.
// The due date is reduced to unix seconds so the key stays comparable
// after a JSON round-trip.
type FineKey struct {
	BookID   string
	MemberID string
	DueUnix  int64
}

type FineRecord struct {
	ID          string     `json:"fineId"`
	MemberID    string     `json:"memberId"`
	BookID      string     `json:"bookId"`
	DueAt       time.Time  `json:"dueAt"`
	DaysOverdue int        `json:"daysOverdue"`
	DailyRate   int        `json:"dailyRate"`
	Total       int        `json:"total"`
	Status      FineStatus `json:"status"`
}

func (f FineRecord) Key() FineKey {
	return FineKey{BookID: f.BookID, MemberID: f.MemberID, DueUnix: f.DueAt.Unix()}
}

type PaymentStatus string

const (
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
)

type PaymentRecord struct {
	ID            string        `json:"paymentId"`
	TransactionID string        `json:"transactionId"`
	MemberID      string        `json:"memberId"`
	Amount        int           `json:"amount"`
	Method        string        `json:"method"`
	PaidAt        time.Time     `json:"paidAt"`
	FineIDs       []string      `json:"fineIds"`
	Status        PaymentStatus `json:"status"`
}

type ComplaintStatus string

const (
	ComplaintStatusOpen       ComplaintStatus = "OPEN"
	ComplaintStatusInProgress ComplaintStatus = "IN_PROGRESS"
	ComplaintStatusResolved   ComplaintStatus = "RESOLVED"
	ComplaintStatusClosed     ComplaintStatus = "CLOSED"
)

// CanTransition reports whether the complaint may move to the given
// status. Transitions only go forward, one step at a time.
func (s ComplaintStatus) CanTransition(to ComplaintStatus) bool {
	order := map[ComplaintStatus]int{
		ComplaintStatusOpen:       0,
		ComplaintStatusInProgress: 1,
		ComplaintStatusResolved:   2,
		ComplaintStatusClosed:     3,
	}
	from, ok := order[s]
	next, ok2 := order[to]
	return ok && ok2 && next == from+1
}

type Complaint struct {
	ID          string          `json:"complaintId"`
	MemberID    string          `json:"memberId"`
	Subject     string          `json:"subject"`
	Description string          `json:"description"`
	Status      ComplaintStatus `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

type DonationStatus string

const (
	DonationStatusPending  DonationStatus = "PENDING"
	DonationStatusAccepted DonationStatus = "ACCEPTED"
	DonationStatusRejected DonationStatus = "REJECTED"
)

// CanTransition reports whether the donation may move to the given
// status. Accepted and Rejected are terminal.
func (s DonationStatus) CanTransition(to DonationStatus) bool {
	return s == DonationStatusPending &&
		(to == DonationStatusAccepted || to == DonationStatusRejected)
}

type Donation struct {
	ID        string         `json:"donationId"`
	MemberID  string         `json:"memberId"`
	BookTitle string         `json:"bookTitle"`
	Author    string         `json:"author"`
	Quantity  int            `json:"quantity"`
	Status    DonationStatus `json:"status"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// AuthUser is the persisted session blob for the logged-in member.
type AuthUser struct {
	MemberID string    `json:"memberId"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Token    string    `json:"token"`
	LoginAt  time.Time `json:"loginAt"`
}

type Eligibility struct {
	Eligible bool   `json:"eligible"`
	Reason   string `json:"reason,omitempty"`
}
