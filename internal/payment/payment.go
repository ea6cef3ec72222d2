package payment

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Method string

const (
	MethodCash         Method = "CASH"
	MethodMobileMoney  Method = "MOBILE_MONEY"
	MethodBankTransfer Method = "BANK_TRANSFER"
	MethodCard         Method = "CARD"
	MethodWallet       Method = "WALLET"
)

func (m Method) Valid() bool {
	switch m {
	case MethodCash, MethodMobileMoney, MethodBankTransfer, MethodCard, MethodWallet:
		return true
	}

	return false
}

// State is the confirmation sub-state of a payment. Both CONFIRMED and
// REJECTED are terminal.
type State string

const (
	StateAwaiting  State = "AWAITING_CONFIRMATION"
	StateConfirmed State = "CONFIRMED"
	StateRejected  State = "REJECTED"
)

// Payment is one attempt to pay into a purchase.
type Payment struct {
	ID              uuid.UUID
	PurchaseID      uuid.UUID
	Amount          decimal.Decimal
	Method          Method
	Reference       string
	RecordedBy      uuid.UUID
	State           State
	RejectionReason string
	ResolvedBy      *uuid.UUID
	ResolvedAt      *time.Time
	PaidAt          *time.Time
	CreatedAt       time.Time
}

type NewParams struct {
	PurchaseID uuid.UUID
	Amount     decimal.Decimal
	Method     Method
	Reference  string
	RecordedBy uuid.UUID
}

// New creates a payment. When effective is true the recorder holds confirm
// authority and the payment starts out CONFIRMED.
func New(params NewParams, effective bool, now time.Time) (*Payment, error) {
	if !params.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	if !params.Method.Valid() {
		return nil, ErrInvalidMethod
	}

	p := &Payment{
		ID:         uuid.New(),
		PurchaseID: params.PurchaseID,
		Amount:     params.Amount,
		Method:     params.Method,
		Reference:  strings.TrimSpace(params.Reference),
		RecordedBy: params.RecordedBy,
		State:      StateAwaiting,
		CreatedAt:  now,
	}

	if effective {
		p.resolve(StateConfirmed, params.RecordedBy, now)
		p.PaidAt = &now
	}

	return p, nil
}

func (p *Payment) Effective() bool {
	return p.State == StateConfirmed
}

func (p *Payment) Awaiting() bool {
	return p.State == StateAwaiting
}

func (p *Payment) Confirm(by uuid.UUID, now time.Time) error {
	if !p.Awaiting() {
		return ErrAlreadyResolved
	}

	p.resolve(StateConfirmed, by, now)
	p.PaidAt = &now

	return nil
}

func (p *Payment) Reject(by uuid.UUID, reason string, now time.Time) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return ErrRejectionReasonRequired
	}

	if !p.Awaiting() {
		return ErrAlreadyResolved
	}

	p.resolve(StateRejected, by, now)
	p.RejectionReason = reason

	return nil
}

func (p *Payment) resolve(state State, by uuid.UUID, now time.Time) {
	p.State = state
	p.ResolvedBy = &by
	p.ResolvedAt = &now
}

func (p *Payment) Clone() *Payment {
	c := *p
	return &c
}
