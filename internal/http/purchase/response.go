package purchase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/layby/internal/invoice"
	"github.com/MrJamesThe3rd/layby/internal/ledger"
	"github.com/MrJamesThe3rd/layby/internal/money"
	"github.com/MrJamesThe3rd/layby/internal/purchase"
)

type itemResponse struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

type installmentResponse struct {
	Number  int             `json:"number"`
	DueDate time.Time       `json:"due_date"`
	Amount  decimal.Decimal `json:"amount"`
}

type policyResponse struct {
	InterestType money.InterestType `json:"interest_type"`
	RatePercent  decimal.Decimal    `json:"rate_percent"`
	GraceDays    int                `json:"grace_days"`
	MaxTenorDays int                `json:"max_tenor_days"`
}

type purchaseResponse struct {
	ID               uuid.UUID             `json:"id"`
	CustomerID       uuid.UUID             `json:"customer_id"`
	ShopID           uuid.UUID             `json:"shop_id"`
	Type             purchase.Type         `json:"type"`
	Status           purchase.Status       `json:"status"`
	Items            []itemResponse        `json:"items"`
	Subtotal         decimal.Decimal       `json:"subtotal"`
	Interest         decimal.Decimal       `json:"interest"`
	Total            decimal.Decimal       `json:"total"`
	DownPayment      decimal.Decimal       `json:"down_payment"`
	AmountPaid       decimal.Decimal       `json:"amount_paid"`
	Outstanding      decimal.Decimal       `json:"outstanding"`
	InstallmentCount int                   `json:"installment_count"`
	PerInstallment   decimal.Decimal       `json:"per_installment"`
	Policy           policyResponse        `json:"policy"`
	Schedule         []installmentResponse `json:"schedule,omitempty"`
	DueDate          *time.Time            `json:"due_date,omitempty"`
	CreatedAt        time.Time             `json:"created_at"`
	CompletedAt      *time.Time            `json:"completed_at,omitempty"`
	DefaultedAt      *time.Time            `json:"defaulted_at,omitempty"`
	CancelledAt      *time.Time            `json:"cancelled_at,omitempty"`
	Invoice          *invoiceResponse      `json:"invoice,omitempty"`
}

type invoiceResponse struct {
	ID              uuid.UUID       `json:"id"`
	Number          string          `json:"number"`
	Kind            invoice.Kind    `json:"kind"`
	PurchaseID      uuid.UUID       `json:"purchase_id"`
	PaymentID       *uuid.UUID      `json:"payment_id,omitempty"`
	Items           []itemResponse  `json:"items"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	Interest        decimal.Decimal `json:"interest"`
	Total           decimal.Decimal `json:"total"`
	PreviousBalance decimal.Decimal `json:"previous_balance"`
	PaymentAmount   decimal.Decimal `json:"payment_amount"`
	NewBalance      decimal.Decimal `json:"new_balance"`
	IssuedAt        time.Time       `json:"issued_at"`
}

type createResponse struct {
	Purchase      purchaseResponse `json:"purchase"`
	DownPaymentID *uuid.UUID       `json:"down_payment_id,omitempty"`
	Invoice       *invoiceResponse `json:"invoice,omitempty"`
}

func toItems(items []purchase.Item) []itemResponse {
	out := make([]itemResponse, len(items))
	for i, it := range items {
		out[i] = itemResponse{
			ProductID: it.ProductID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			LineTotal: it.LineTotal,
		}
	}

	return out
}

func toResponse(v *ledger.PurchaseView) purchaseResponse {
	p := v.Purchase

	resp := purchaseResponse{
		ID:               p.ID,
		CustomerID:       p.CustomerID,
		ShopID:           p.ShopID,
		Type:             p.Type,
		Status:           v.Status,
		Items:            toItems(p.Items),
		Subtotal:         p.Subtotal,
		Interest:         p.Interest,
		Total:            p.Total,
		DownPayment:      p.DownPayment,
		AmountPaid:       p.AmountPaid,
		Outstanding:      p.Outstanding(),
		InstallmentCount: p.InstallmentCount,
		PerInstallment:   p.PerInstallment,
		Policy: policyResponse{
			InterestType: p.Policy.InterestType,
			RatePercent:  p.Policy.RatePercent,
			GraceDays:    p.Policy.GraceDays,
			MaxTenorDays: p.Policy.MaxTenorDays,
		},
		DueDate:     p.DueDate,
		CreatedAt:   p.CreatedAt,
		CompletedAt: p.CompletedAt,
		DefaultedAt: p.DefaultedAt,
		CancelledAt: p.CancelledAt,
	}

	for _, in := range v.Schedule {
		resp.Schedule = append(resp.Schedule, installmentResponse{Number: in.Number, DueDate: in.DueDate, Amount: in.Amount})
	}

	return resp
}

func toResponseList(views []*ledger.PurchaseView) []purchaseResponse {
	out := make([]purchaseResponse, len(views))
	for i, v := range views {
		out[i] = toResponse(v)
	}

	return out
}

func toInvoiceResponse(inv *invoice.Invoice) *invoiceResponse {
	if inv == nil {
		return nil
	}

	return &invoiceResponse{
		ID:              inv.ID,
		Number:          inv.Number,
		Kind:            inv.Kind,
		PurchaseID:      inv.PurchaseID,
		PaymentID:       inv.PaymentID,
		Items:           toItems(inv.Items),
		Subtotal:        inv.Subtotal,
		Interest:        inv.Interest,
		Total:           inv.Total,
		PreviousBalance: inv.PreviousBalance,
		PaymentAmount:   inv.PaymentAmount,
		NewBalance:      inv.NewBalance,
		IssuedAt:        inv.IssuedAt,
	}
}
