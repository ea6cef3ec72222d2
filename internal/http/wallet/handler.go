package wallet

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/layby/internal/http/api"
	"github.com/MrJamesThe3rd/layby/internal/ledger"
)

type Handler struct {
	svc *ledger.Service
}

func NewHandler(svc *ledger.Service) *Handler {
	return &Handler{svc: svc}
}

// WalletRoutes serves /wallets.
func (h *Handler) WalletRoutes(r chi.Router) {
	r.Get("/{customerID}", h.get)
	r.Post("/{customerID}/deposits", h.deposit)
	r.Get("/{customerID}/deposits", h.listDeposits)
}

// DepositRoutes serves /deposits.
func (h *Handler) DepositRoutes(r chi.Router) {
	r.Post("/{id}/confirm", h.confirm)
	r.Post("/{id}/reject", h.reject)
}

type depositRequest struct {
	ShopID    uuid.UUID       `json:"shop_id" validate:"required"`
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method" validate:"required,max=50"`
	Reference string          `json:"reference,omitempty" validate:"max=200"`
}

type rejectRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	customerID, err := api.UUIDParam(r, "customerID")
	if err != nil {
		api.Error(w, r, err)
		return
	}

	balance, err := h.svc.WalletBalance(r.Context(), customerID)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	txs, err := h.svc.ListWalletTransactions(r.Context(), ledger.WalletFilter{CustomerID: &customerID})
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, http.StatusOK, walletResponse{
		CustomerID:   customerID,
		Balance:      balance,
		Transactions: toResponseList(txs),
	})
}

func (h *Handler) deposit(w http.ResponseWriter, r *http.Request) {
	actor, ok := api.Actor(w, r)
	if !ok {
		return
	}

	customerID, err := api.UUIDParam(r, "customerID")
	if err != nil {
		api.Error(w, r, err)
		return
	}

	var req depositRequest
	if err := api.Decode(r, &req); err != nil {
		api.Error(w, r, err)
		return
	}

	tx, err := h.svc.Deposit(r.Context(), actor, ledger.DepositParams{
		CustomerID: customerID,
		ShopID:     req.ShopID,
		Amount:     req.Amount,
		Method:     req.Method,
		Reference:  req.Reference,
	})
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, http.StatusCreated, toResponse(tx))
}

func (h *Handler) listDeposits(w http.ResponseWriter, r *http.Request) {
	customerID, err := api.UUIDParam(r, "customerID")
	if err != nil {
		api.Error(w, r, err)
		return
	}

	txs, err := h.svc.ListDeposits(r.Context(), customerID)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, http.StatusOK, toResponseList(txs))
}

func (h *Handler) confirm(w http.ResponseWriter, r *http.Request) {
	actor, ok := api.Actor(w, r)
	if !ok {
		return
	}

	id, err := api.UUIDParam(r, "id")
	if err != nil {
		api.Error(w, r, err)
		return
	}

	tx, err := h.svc.ConfirmDeposit(r.Context(), actor, id)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, http.StatusOK, toResponse(tx))
}

func (h *Handler) reject(w http.ResponseWriter, r *http.Request) {
	actor, ok := api.Actor(w, r)
	if !ok {
		return
	}

	id, err := api.UUIDParam(r, "id")
	if err != nil {
		api.Error(w, r, err)
		return
	}

	var req rejectRequest
	if err := api.Decode(r, &req); err != nil {
		api.Error(w, r, err)
		return
	}

	tx, err := h.svc.RejectDeposit(r.Context(), actor, id, req.Reason)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, http.StatusOK, toResponse(tx))
}
