package payment

import "errors"

var (
	ErrInvalidAmount             = errors.New("payment amount must be positive")
	ErrInvalidMethod             = errors.New("unknown payment method")
	ErrExceedsOutstandingBalance = errors.New("payment exceeds outstanding balance")
	ErrAlreadyResolved           = errors.New("payment is already resolved")
	ErrRejectionReasonRequired   = errors.New("a rejection reason is required")
)
