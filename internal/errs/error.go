package errs

import (
	"errors"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrDuplicateEmail     = errors.New("email is already registered")
	ErrDuplicateMobile    = errors.New("mobile number is already registered")
	ErrInsufficientCopies = errors.New("not enough copies available")
	ErrNotEligible        = errors.New("member is not eligible to borrow")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrIllegalTransition  = errors.New("illegal status transition")
	ErrPaymentDeclined    = errors.New("payment declined")
	ErrAmountMismatch     = errors.New("amount does not match the selected fines")
)
