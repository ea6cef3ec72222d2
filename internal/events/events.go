package events

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Type string

const (
	PurchaseCreated   Type = "purchase.created"
	PurchaseCompleted Type = "purchase.completed"
	WaybillRequested  Type = "waybill.requested"
	PaymentRecorded   Type = "payment.recorded"
	PaymentConfirmed  Type = "payment.confirmed"
	PaymentRejected   Type = "payment.rejected"
	DepositConfirmed  Type = "deposit.confirmed"
	DepositRejected   Type = "deposit.rejected"
)

// Event is what the ledger hands to notification and fulfilment dispatchers.
type Event struct {
	ID         uuid.UUID       `json:"id"`
	Type       Type            `json:"type"`
	PurchaseID *uuid.UUID      `json:"purchase_id,omitempty"`
	PaymentID  *uuid.UUID      `json:"payment_id,omitempty"`
	DepositID  *uuid.UUID      `json:"deposit_id,omitempty"`
	InvoiceID  *uuid.UUID      `json:"invoice_id,omitempty"`
	CustomerID uuid.UUID       `json:"customer_id"`
	ShopID     uuid.UUID       `json:"shop_id"`
	Amount     decimal.Decimal `json:"amount"`
	Reason     string          `json:"reason,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
}

func New(t Type, customerID, shopID uuid.UUID, amount decimal.Decimal, now time.Time) Event {
	return Event{
		ID:         uuid.New(),
		Type:       t,
		CustomerID: customerID,
		ShopID:     shopID,
		Amount:     amount,
		OccurredAt: now,
	}
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Multi fans an event out to every publisher and joins their errors.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, e Event) error {
	var errs []error

	for _, p := range m {
		if err := p.Publish(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// Discard drops every event.
type Discard struct{}

func (Discard) Publish(context.Context, Event) error { return nil }
