package repository

import "errors"

// Domain outcomes that conditional writes can surface. Callers translate
// these into user-facing failures.
var (
	ErrInsufficientBalance = errors.New("insufficient wallet balance")
	ErrOutOfStock          = errors.New("voucher out of stock")
)
