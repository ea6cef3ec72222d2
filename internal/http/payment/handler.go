package payment

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/layby/internal/http/api"
	"github.com/MrJamesThe3rd/layby/internal/ledger"
	"github.com/MrJamesThe3rd/layby/internal/payment"
)

type Handler struct {
	svc *ledger.Service
}

func NewHandler(svc *ledger.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.record)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Post("/{id}/confirm", h.confirm)
	r.Post("/{id}/reject", h.reject)
}

type recordRequest struct {
	PurchaseID uuid.UUID       `json:"purchase_id" validate:"required"`
	Amount     decimal.Decimal `json:"amount"`
	Method     payment.Method  `json:"method" validate:"required"`
	Reference  string          `json:"reference,omitempty" validate:"max=200"`
}

type rejectRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

func (h *Handler) record(w http.ResponseWriter, r *http.Request) {
	actor, ok := api.Actor(w, r)
	if !ok {
		return
	}

	var req recordRequest
	if err := api.Decode(r, &req); err != nil {
		api.Error(w, r, err)
		return
	}

	res, err := h.svc.RecordPayment(r.Context(), actor, ledger.RecordPaymentParams{
		PurchaseID: req.PurchaseID,
		Amount:     req.Amount,
		Method:     req.Method,
		Reference:  req.Reference,
	})
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, http.StatusCreated, toResultResponse(res.Payment, res.Invoice, res.Completed))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	var (
		filter ledger.PaymentFilter
		err    error
	)

	if filter.PurchaseID, err = api.UUIDQuery(r, "purchase_id"); err != nil {
		api.Error(w, r, err)
		return
	}

	if filter.ShopID, err = api.UUIDQuery(r, "shop_id"); err != nil {
		api.Error(w, r, err)
		return
	}

	if s := r.URL.Query().Get("state"); s != "" {
		state := payment.State(s)

		switch state {
		case payment.StateAwaiting, payment.StateConfirmed, payment.StateRejected:
			filter.State = &state
		default:
			api.Error(w, r, api.Invalid("state"))
			return
		}
	}

	pays, err := h.svc.ListPayments(r.Context(), filter)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, http.StatusOK, ToResponseList(pays))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := api.UUIDParam(r, "id")
	if err != nil {
		api.Error(w, r, err)
		return
	}

	p, err := h.svc.GetPayment(r.Context(), id)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, http.StatusOK, ToResponse(p))
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

	res, err := h.svc.ConfirmPayment(r.Context(), actor, id)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, http.StatusOK, toResultResponse(res.Payment, res.Invoice, res.Completed))
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

	p, err := h.svc.RejectPayment(r.Context(), actor, id, req.Reason)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, http.StatusOK, ToResponse(p))
}
