package usecase

import "errors"

// Expected domain failures. Handlers map these onto HTTP statuses; anything
// else is an internal error surfaced as 500 without leaking detail.
var (
	ErrNotFound          = errors.New("not found")
	ErrValidation        = errors.New("validation failed")
	ErrAvailability      = errors.New("not available")
	ErrBookingNotPayable = errors.New("booking not payable")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrSignature         = errors.New("signature verification failed")
	ErrNotCancellable    = errors.New("booking not cancellable")
	ErrForbidden         = errors.New("forbidden")
)
