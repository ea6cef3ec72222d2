package payment

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/layby/internal/invoice"
	"github.com/MrJamesThe3rd/layby/internal/payment"
)

type Response struct {
	ID              uuid.UUID       `json:"id"`
	PurchaseID      uuid.UUID       `json:"purchase_id"`
	Amount          decimal.Decimal `json:"amount"`
	Method          payment.Method  `json:"method"`
	Reference       string          `json:"reference,omitempty"`
	State           payment.State   `json:"state"`
	RecordedBy      uuid.UUID       `json:"recorded_by"`
	ResolvedBy      *uuid.UUID      `json:"resolved_by,omitempty"`
	ResolvedAt      *time.Time      `json:"resolved_at,omitempty"`
	RejectionReason string          `json:"rejection_reason,omitempty"`
	PaidAt          *time.Time      `json:"paid_at,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

type resultResponse struct {
	Payment       Response   `json:"payment"`
	InvoiceID     *uuid.UUID `json:"invoice_id,omitempty"`
	InvoiceNumber string     `json:"invoice_number,omitempty"`
	Completed     bool       `json:"purchase_completed"`
}

func ToResponse(p *payment.Payment) Response {
	return Response{
		ID:              p.ID,
		PurchaseID:      p.PurchaseID,
		Amount:          p.Amount,
		Method:          p.Method,
		Reference:       p.Reference,
		State:           p.State,
		RecordedBy:      p.RecordedBy,
		ResolvedBy:      p.ResolvedBy,
		ResolvedAt:      p.ResolvedAt,
		RejectionReason: p.RejectionReason,
		PaidAt:          p.PaidAt,
		CreatedAt:       p.CreatedAt,
	}
}

func ToResponseList(pays []*payment.Payment) []Response {
	out := make([]Response, len(pays))
	for i, p := range pays {
		out[i] = ToResponse(p)
	}

	return out
}

func toResultResponse(p *payment.Payment, inv *invoice.Invoice, completed bool) resultResponse {
	resp := resultResponse{Payment: ToResponse(p), Completed: completed}
	if inv != nil {
		resp.InvoiceID = &inv.ID
		resp.InvoiceNumber = inv.Number
	}

	return resp
}
