package wallet

import "errors"

var (
	ErrInvalidAmount             = errors.New("wallet amount must be positive")
	ErrInsufficientWalletBalance = errors.New("insufficient wallet balance")
	ErrAlreadyResolved           = errors.New("deposit is already resolved")
	ErrRejectionReasonRequired   = errors.New("a rejection reason is required")
	ErrNotADeposit               = errors.New("only deposits can be confirmed or rejected")

	// ErrNegativeBalance is an invariant violation: debits are only issued after
	// the payment ledger has checked the balance.
	ErrNegativeBalance = errors.New("wallet balance would become negative")
)
