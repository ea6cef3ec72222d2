package wallet

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Direction string

const (
	DirectionDeposit Direction = "DEPOSIT"
	DirectionDebit   Direction = "DEBIT"
)

type State string

const (
	StateAwaiting  State = "AWAITING_CONFIRMATION"
	StateConfirmed State = "CONFIRMED"
	StateRejected  State = "REJECTED"
)

// Transaction is one movement on a customer's wallet. Deposits go through
// the same confirm/reject workflow as payments; debits are effective on creation.
type Transaction struct {
	ID              uuid.UUID
	CustomerID      uuid.UUID
	ShopID          uuid.UUID
	Direction       Direction
	Amount          decimal.Decimal
	Method          string
	Reference       string
	State           State
	PaymentID       *uuid.UUID
	RecordedBy      uuid.UUID
	ResolvedBy      *uuid.UUID
	RejectionReason string
	CreatedAt       time.Time
	ConfirmedAt     *time.Time
}

type DepositParams struct {
	CustomerID uuid.UUID
	ShopID     uuid.UUID
	Amount     decimal.Decimal
	Method     string
	Reference  string
	RecordedBy uuid.UUID
}

func NewDeposit(params DepositParams, effective bool, now time.Time) (*Transaction, error) {
	if !params.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	t := &Transaction{
		ID:         uuid.New(),
		CustomerID: params.CustomerID,
		ShopID:     params.ShopID,
		Direction:  DirectionDeposit,
		Amount:     params.Amount,
		Method:     params.Method,
		Reference:  strings.TrimSpace(params.Reference),
		State:      StateAwaiting,
		RecordedBy: params.RecordedBy,
		CreatedAt:  now,
	}

	if effective {
		t.confirm(params.RecordedBy, now)
	}

	return t, nil
}

// NewDebit draws on the wallet to fund an effective payment.
func NewDebit(balance decimal.Decimal, customerID, shopID, paymentID, by uuid.UUID, amount decimal.Decimal, now time.Time) (*Transaction, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	if amount.GreaterThan(balance) {
		return nil, fmt.Errorf("%w: debit %s against %s", ErrNegativeBalance, amount, balance)
	}

	return &Transaction{
		ID:          uuid.New(),
		CustomerID:  customerID,
		ShopID:      shopID,
		Direction:   DirectionDebit,
		Amount:      amount,
		Method:      "WALLET",
		State:       StateConfirmed,
		PaymentID:   &paymentID,
		RecordedBy:  by,
		ResolvedBy:  &by,
		CreatedAt:   now,
		ConfirmedAt: &now,
	}, nil
}

func (t *Transaction) Confirm(by uuid.UUID, now time.Time) error {
	if t.Direction != DirectionDeposit {
		return ErrNotADeposit
	}

	if t.State != StateAwaiting {
		return ErrAlreadyResolved
	}

	t.confirm(by, now)

	return nil
}

func (t *Transaction) Reject(by uuid.UUID, reason string, now time.Time) error {
	if t.Direction != DirectionDeposit {
		return ErrNotADeposit
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		return ErrRejectionReasonRequired
	}

	if t.State != StateAwaiting {
		return ErrAlreadyResolved
	}

	t.State = StateRejected
	t.ResolvedBy = &by
	t.RejectionReason = reason

	return nil
}

func (t *Transaction) confirm(by uuid.UUID, now time.Time) {
	t.State = StateConfirmed
	t.ResolvedBy = &by
	t.ConfirmedAt = &now
}

func (t *Transaction) Clone() *Transaction {
	c := *t
	return &c
}

// Balance is the sum of confirmed deposits minus all debits.
func Balance(txs []*Transaction) decimal.Decimal {
	total := decimal.Zero

	for _, t := range txs {
		switch t.Direction {
		case DirectionDeposit:
			if t.State == StateConfirmed {
				total = total.Add(t.Amount)
			}
		case DirectionDebit:
			total = total.Sub(t.Amount)
		}
	}

	return total
}
