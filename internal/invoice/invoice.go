package invoice

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/layby/internal/purchase"
)

// Kind tells which ledger event produced the snapshot.
type Kind string

const (
	KindSale     Kind = "SALE"
	KindPayment  Kind = "PAYMENT"
	KindRevision Kind = "REVISION"
)

// Invoice is an immutable snapshot of a purchase's financial state. Rendering
// to paper or PDF happens outside this service.
type Invoice struct {
	ID              uuid.UUID
	Number          string
	Kind            Kind
	PurchaseID      uuid.UUID
	PaymentID       *uuid.UUID
	CustomerID      uuid.UUID
	ShopID          uuid.UUID
	Items           []purchase.Item
	Subtotal        decimal.Decimal
	Interest        decimal.Decimal
	Total           decimal.Decimal
	PreviousBalance decimal.Decimal
	PaymentAmount   decimal.Decimal
	NewBalance      decimal.Decimal
	IssuedAt        time.Time
}

// FormatNumber renders a sequence value as an invoice number.
func FormatNumber(seq int64) string {
	return fmt.Sprintf("INV-%08d", seq)
}

// ForSale snapshots a freshly created purchase. The down payment, if any, is
// the payment amount and paymentID points at its payment record.
func ForSale(p *purchase.Purchase, paymentID *uuid.UUID, seq int64, now time.Time) *Invoice {
	inv := snapshot(p, KindSale, seq, now)
	inv.PaymentID = paymentID
	inv.PreviousBalance = p.Total
	inv.PaymentAmount = p.DownPayment
	inv.NewBalance = p.Outstanding()

	return inv
}

// ForPayment snapshots the purchase right after a payment became effective.
func ForPayment(p *purchase.Purchase, paymentID uuid.UUID, app purchase.Application, seq int64, now time.Time) *Invoice {
	inv := snapshot(p, KindPayment, seq, now)
	inv.PaymentID = &paymentID
	inv.PreviousBalance = app.PreviousBalance
	inv.PaymentAmount = app.Amount
	inv.NewBalance = app.NewBalance

	return inv
}

// ForRevision snapshots a purchase whose items were edited before payment.
func ForRevision(p *purchase.Purchase, previousBalance decimal.Decimal, seq int64, now time.Time) *Invoice {
	inv := snapshot(p, KindRevision, seq, now)
	inv.PreviousBalance = previousBalance
	inv.PaymentAmount = decimal.Zero
	inv.NewBalance = p.Outstanding()

	return inv
}

func snapshot(p *purchase.Purchase, kind Kind, seq int64, now time.Time) *Invoice {
	items := make([]purchase.Item, len(p.Items))
	copy(items, p.Items)

	return &Invoice{
		ID:         uuid.New(),
		Number:     FormatNumber(seq),
		Kind:       kind,
		PurchaseID: p.ID,
		CustomerID: p.CustomerID,
		ShopID:     p.ShopID,
		Items:      items,
		Subtotal:   p.Subtotal,
		Interest:   p.Interest,
		Total:      p.Total,
		IssuedAt:   now,
	}
}
