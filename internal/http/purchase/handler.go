package purchase

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/layby/internal/auth"
	"github.com/MrJamesThe3rd/layby/internal/http/api"
	paymenthttp "github.com/MrJamesThe3rd/layby/internal/http/payment"
	"github.com/MrJamesThe3rd/layby/internal/invoice"
	"github.com/MrJamesThe3rd/layby/internal/ledger"
	"github.com/MrJamesThe3rd/layby/internal/payment"
	"github.com/MrJamesThe3rd/layby/internal/purchase"
)

type Handler struct {
	svc *ledger.Service
}

func NewHandler(svc *ledger.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Put("/{id}/items", h.editItems)
	r.Post("/{id}/cancel", h.cancel)
	r.Post("/{id}/default", h.markDefaulted)
	r.Get("/{id}/payments", h.payments)
	r.Get("/{id}/invoices", h.invoices)
}

type itemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"gte=1"`
}

type createPurchaseRequest struct {
	CustomerID        uuid.UUID       `json:"customer_id" validate:"required"`
	ShopID            uuid.UUID       `json:"shop_id" validate:"required"`
	Type              purchase.Type   `json:"type" validate:"required,oneof=CASH LAYAWAY CREDIT"`
	Items             []itemRequest   `json:"items" validate:"required,min=1,dive"`
	DownPayment       decimal.Decimal `json:"down_payment"`
	InstallmentCount  int             `json:"installment_count" validate:"gte=0"`
	DueDate           *time.Time      `json:"due_date,omitempty"`
	DownPaymentMethod payment.Method  `json:"down_payment_method,omitempty"`
	Reference         string          `json:"reference,omitempty" validate:"max=200"`
}

func toInputs(items []itemRequest) []ledger.ItemInput {
	out := make([]ledger.ItemInput, len(items))
	for i, it := range items {
		out[i] = ledger.ItemInput{ProductID: it.ProductID, Quantity: it.Quantity}
	}

	return out
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	actor, ok := api.Actor(w, r)
	if !ok {
		return
	}

	var req createPurchaseRequest
	if err := api.Decode(r, &req); err != nil {
		api.Error(w, r, err)
		return
	}

	res, err := h.svc.CreatePurchase(r.Context(), actor, ledger.CreatePurchaseParams{
		CustomerID:        req.CustomerID,
		ShopID:            req.ShopID,
		Type:              req.Type,
		Items:             toInputs(req.Items),
		DownPayment:       req.DownPayment,
		InstallmentCount:  req.InstallmentCount,
		DueDate:           req.DueDate,
		DownPaymentMethod: req.DownPaymentMethod,
		Reference:         req.Reference,
	})
	if err != nil {
		api.Error(w, r, err)
		return
	}

	view, err := h.svc.GetPurchase(r.Context(), res.Purchase.ID)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	resp := createResponse{Purchase: toResponse(view), Invoice: toInvoiceResponse(res.Invoice)}
	if res.DownPayment != nil {
		resp.DownPaymentID = &res.DownPayment.ID
	}

	api.JSON(w, http.StatusCreated, resp)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	var (
		filter ledger.PurchaseFilter
		err    error
	)

	if filter.CustomerID, err = api.UUIDQuery(r, "customer_id"); err != nil {
		api.Error(w, r, err)
		return
	}

	if filter.ShopID, err = api.UUIDQuery(r, "shop_id"); err != nil {
		api.Error(w, r, err)
		return
	}

	if s := r.URL.Query().Get("status"); s != "" {
		status := purchase.Status(s)
		if !status.Valid() {
			api.Error(w, r, api.Invalid("status"))
			return
		}

		filter.Status = &status
	}

	views, err := h.svc.ListPurchases(r.Context(), filter)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, http.StatusOK, toResponseList(views))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := api.UUIDParam(r, "id")
	if err != nil {
		api.Error(w, r, err)
		return
	}

	view, err := h.svc.GetPurchase(r.Context(), id)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, http.StatusOK, toResponse(view))
}

type editItemsRequest struct {
	Items []itemRequest `json:"items" validate:"required,min=1,dive"`
}

func (h *Handler) editItems(w http.ResponseWriter, r *http.Request) {
	actor, ok := api.Actor(w, r)
	if !ok {
		return
	}

	id, err := api.UUIDParam(r, "id")
	if err != nil {
		api.Error(w, r, err)
		return
	}

	var req editItemsRequest
	if err := api.Decode(r, &req); err != nil {
		api.Error(w, r, err)
		return
	}

	p, inv, err := h.svc.EditItems(r.Context(), actor, id, toInputs(req.Items))
	if err != nil {
		api.Error(w, r, err)
		return
	}

	h.respondWithView(w, r, p.ID, inv)
}

func (h *Handler) cancel(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.svc.CancelPurchase)
}

func (h *Handler) markDefaulted(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.svc.MarkDefaulted)
}

type transitionFunc func(ctx context.Context, actor auth.Actor, id uuid.UUID) (*purchase.Purchase, error)

func (h *Handler) transition(w http.ResponseWriter, r *http.Request, fn transitionFunc) {
	actor, ok := api.Actor(w, r)
	if !ok {
		return
	}

	id, err := api.UUIDParam(r, "id")
	if err != nil {
		api.Error(w, r, err)
		return
	}

	p, err := fn(r.Context(), actor, id)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	h.respondWithView(w, r, p.ID, nil)
}

func (h *Handler) respondWithView(w http.ResponseWriter, r *http.Request, id uuid.UUID, inv *invoice.Invoice) {
	view, err := h.svc.GetPurchase(r.Context(), id)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	resp := toResponse(view)
	resp.Invoice = toInvoiceResponse(inv)

	api.JSON(w, http.StatusOK, resp)
}

func (h *Handler) payments(w http.ResponseWriter, r *http.Request) {
	id, err := api.UUIDParam(r, "id")
	if err != nil {
		api.Error(w, r, err)
		return
	}

	if _, err := h.svc.GetPurchase(r.Context(), id); err != nil {
		api.Error(w, r, err)
		return
	}

	pays, err := h.svc.ListPayments(r.Context(), ledger.PaymentFilter{PurchaseID: &id})
	if err != nil {
		api.Error(w, r, err)
		return
	}

	api.JSON(w, http.StatusOK, paymenthttp.ToResponseList(pays))
}

func (h *Handler) invoices(w http.ResponseWriter, r *http.Request) {
	id, err := api.UUIDParam(r, "id")
	if err != nil {
		api.Error(w, r, err)
		return
	}

	if _, err := h.svc.GetPurchase(r.Context(), id); err != nil {
		api.Error(w, r, err)
		return
	}

	invs, err := h.svc.ListInvoices(r.Context(), id)
	if err != nil {
		api.Error(w, r, err)
		return
	}

	out := make([]*invoiceResponse, len(invs))
	for i, inv := range invs {
		out[i] = toInvoiceResponse(inv)
	}

	api.JSON(w, http.StatusOK, out)
}
