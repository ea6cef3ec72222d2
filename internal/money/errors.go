package money

import "errors"

var (
	ErrEmptyCart               = errors.New("cart has no items")
	ErrInvalidQuantity         = errors.New("quantity must be a positive integer")
	ErrInvalidUnitPrice        = errors.New("unit price must not be negative")
	ErrInvalidPurchaseType     = errors.New("unknown purchase type")
	ErrInvalidInterestType     = errors.New("unknown interest type")
	ErrInvalidRate             = errors.New("interest rate must not be negative")
	ErrInvalidInstallmentCount = errors.New("installment count must be a positive integer")
	ErrInvalidDownPayment      = errors.New("down payment must be between zero and the total")
	ErrCashDownPaymentMismatch = errors.New("cash purchases must be fully paid up front")
)
