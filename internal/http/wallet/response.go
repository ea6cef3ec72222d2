package wallet

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/layby/internal/wallet"
)

type transactionResponse struct {
	ID              uuid.UUID        `json:"id"`
	CustomerID      uuid.UUID        `json:"customer_id"`
	ShopID          uuid.UUID        `json:"shop_id"`
	Direction       wallet.Direction `json:"direction"`
	Amount          decimal.Decimal  `json:"amount"`
	Method          string           `json:"method,omitempty"`
	Reference       string           `json:"reference,omitempty"`
	State           wallet.State     `json:"state"`
	PaymentID       *uuid.UUID       `json:"payment_id,omitempty"`
	RecordedBy      uuid.UUID        `json:"recorded_by"`
	ResolvedBy      *uuid.UUID       `json:"resolved_by,omitempty"`
	RejectionReason string           `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	ConfirmedAt     *time.Time       `json:"confirmed_at,omitempty"`
}

type walletResponse struct {
	CustomerID   uuid.UUID             `json:"customer_id"`
	Balance      decimal.Decimal       `json:"balance"`
	Transactions []transactionResponse `json:"transactions"`
}

func toResponse(t *wallet.Transaction) transactionResponse {
	return transactionResponse{
		ID:              t.ID,
		CustomerID:      t.CustomerID,
		ShopID:          t.ShopID,
		Direction:       t.Direction,
		Amount:          t.Amount,
		Method:          t.Method,
		Reference:       t.Reference,
		State:           t.State,
		PaymentID:       t.PaymentID,
		RecordedBy:      t.RecordedBy,
		ResolvedBy:      t.ResolvedBy,
		RejectionReason: t.RejectionReason,
		CreatedAt:       t.CreatedAt,
		ConfirmedAt:     t.ConfirmedAt,
	}
}

func toResponseList(txs []*wallet.Transaction) []transactionResponse {
	out := make([]transactionResponse, len(txs))
	for i, t := range txs {
		out[i] = toResponse(t)
	}

	return out
}
