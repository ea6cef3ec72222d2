package purchase

import "errors"

var (
	ErrPurchaseAlreadyPaid = errors.New("purchase already has an effective payment")
	ErrPurchaseDefaulted   = errors.New("purchase is defaulted")
	ErrPurchaseCancelled   = errors.New("purchase is cancelled")
	ErrPurchaseClosed      = errors.New("purchase is already completed")
	ErrInvalidDueDate      = errors.New("due date outside the shop's maximum tenor")

	// Invariant violations. These indicate a bug or a race that escaped the
	// transactional boundary and must never be recovered from silently.
	ErrOverpaymentInvariantViolation = errors.New("payment exceeds outstanding balance")
	ErrTotalMismatch                 = errors.New("total does not equal subtotal plus interest")
)
