package model

type RegisterRequest struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	CountryCode string `json:"countryCode" validate:"required"`
	Mobile      string `json:"mobile" validate:"required"`
	DateOfBirth string `json:"dateOfBirth"`
	Address     string `json:"address"`
}

type RegisterResponse struct {
	MemberID string `json:"memberId"`
	Name     string `json:"name"`
	Email    string `json:"email"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	MemberID    string `json:"memberId"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	AccessToken string `json:"accessToken"`
	ExpiresIn   int    `json:"expiresIn"`
}

type UpdateProfileRequest struct {
	Name        string `json:"name"`
	DateOfBirth string `json:"dateOfBirth"`
	Address     string `json:"address"`
}

type BorrowItem struct {
	BookID   string `json:"bookId" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
}

type BorrowRequest struct {
	MemberID string       `json:"memberId" validate:"required"`
	Items    []BorrowItem `json:"items" validate:"required,min=1,dive"`
}

type PaymentRequest struct {
	MemberID string   `json:"memberId" validate:"required"`
	FineIDs  []string `json:"fineIds" validate:"required,min=1"`
	Amount   int      `json:"amount" validate:"required,min=1"`
	Method   string   `json:"method" validate:"required,oneof=CARD UPI NETBANKING CASH"`
}

type PaymentResponse struct {
	PaymentID     string `json:"paymentId"`
	TransactionID string `json:"transactionId"`
	Amount        int    `json:"amount"`
	Status        string `json:"status"`
}

type ComplaintRequest struct {
	MemberID    string `json:"memberId" validate:"required"`
	Subject     string `json:"subject" validate:"required"`
	Description string `json:"description" validate:"required"`
}

type ComplaintStatusRequest struct {
	Status ComplaintStatus `json:"status" validate:"required,oneof=OPEN IN_PROGRESS RESOLVED CLOSED"`
}

type DonationRequest struct {
	MemberID  string `json:"memberId" validate:"required"`
	BookTitle string `json:"bookTitle" validate:"required"`
	Author    string `json:"author" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

type DonationStatusRequest struct {
	Status DonationStatus `json:"status" validate:"required,oneof=PENDING ACCEPTED REJECTED"`
}
