package ledger

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/layby/internal/auth"
	"github.com/MrJamesThe3rd/layby/internal/catalog"
	"github.com/MrJamesThe3rd/layby/internal/events"
	"github.com/MrJamesThe3rd/layby/internal/invoice"
	"github.com/MrJamesThe3rd/layby/internal/money"
	"github.com/MrJamesThe3rd/layby/internal/payment"
	"github.com/MrJamesThe3rd/layby/internal/purchase"
)

// ItemInput is a cart line as requested by the client. Prices come from the
// catalog, never from the caller.
type ItemInput struct {
	ProductID uuid.UUID
	Quantity  int
}

type CreatePurchaseParams struct {
	CustomerID       uuid.UUID
	ShopID           uuid.UUID
	Type             purchase.Type
	Items            []ItemInput
	DownPayment      decimal.Decimal
	InstallmentCount int
	DueDate          *time.Time
	// DownPaymentMethod defaults to CASH.
	DownPaymentMethod payment.Method
	Reference         string
}

type CreateResult struct {
	Purchase    *purchase.Purchase
	DownPayment *payment.Payment
	Invoice     *invoice.Invoice
}

// PurchaseView is a purchase as shown to readers: effective status and the
// installment plan are derived at read time.
type PurchaseView struct {
	Purchase *purchase.Purchase
	Status   purchase.Status
	Schedule []money.Installment
}

type PurchaseFilter struct {
	CustomerID *uuid.UUID
	ShopID     *uuid.UUID
	Status     *purchase.Status
}

func (s *Service) CreatePurchase(ctx context.Context, actor auth.Actor, params CreatePurchaseParams) (*CreateResult, error) {
	var res *CreateResult

	if err := actor.RequireMember(params.ShopID); err != nil {
		return nil, err
	}

	err := s.inTx(ctx, "create purchase", func(ctx context.Context, tx Tx, out *outbox) error {
		now := s.now()

		policy, err := tx.ShopPolicy(ctx, params.ShopID)
		if err != nil {
			return fmt.Errorf("get shop policy: %w", err)
		}

		items, err := s.takeStock(ctx, tx, params.ShopID, params.Type, params.Items, nil)
		if err != nil {
			return err
		}

		q, err := money.Calculate(money.Input{
			Lines:            lines(items),
			Type:             params.Type,
			Policy:           policy,
			DownPayment:      params.DownPayment,
			InstallmentCount: params.InstallmentCount,
		})
		if err != nil {
			return err
		}

		p, err := purchase.New(purchase.NewParams{
			CustomerID: params.CustomerID,
			ShopID:     params.ShopID,
			Type:       params.Type,
			Items:      items,
			Policy:     policy,
			DueDate:    params.DueDate,
			CreatedBy:  actor.UserID,
		}, q, now)
		if err != nil {
			return err
		}

		if err := tx.CreatePurchase(ctx, p); err != nil {
			return fmt.Errorf("create purchase: %w", err)
		}

		res = &CreateResult{Purchase: p}

		var paymentID *uuid.UUID

		if p.DownPayment.IsPositive() {
			method := params.DownPaymentMethod
			if method == "" {
				method = payment.MethodCash
			}

			if method == payment.MethodWallet {
				return fmt.Errorf("%w: down payment cannot be drawn from the wallet", payment.ErrInvalidMethod)
			}

			// Down payment is handed over at the counter together with the sale.
			dp, err := payment.New(payment.NewParams{
				PurchaseID: p.ID,
				Amount:     p.DownPayment,
				Method:     method,
				Reference:  params.Reference,
				RecordedBy: actor.UserID,
			}, true, now)
			if err != nil {
				return err
			}

			if err := tx.CreatePayment(ctx, dp); err != nil {
				return fmt.Errorf("create down payment: %w", err)
			}

			res.DownPayment = dp
			paymentID = &dp.ID
		}

		seq, err := tx.NextInvoiceNumber(ctx)
		if err != nil {
			return fmt.Errorf("next invoice number: %w", err)
		}

		inv := invoice.ForSale(p, paymentID, seq, now)
		if err := tx.CreateInvoice(ctx, inv); err != nil {
			return fmt.Errorf("create invoice: %w", err)
		}

		res.Invoice = inv

		e := purchaseEvent(events.PurchaseCreated, p, p.Total, now)
		e.InvoiceID = &inv.ID
		out.add(e)

		if p.Status == purchase.StatusCompleted {
			out.add(purchaseEvent(events.PurchaseCompleted, p, p.Total, now))
			out.add(purchaseEvent(events.WaybillRequested, p, p.Total, now))
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}

// EditItems replaces the cart of a purchase nobody has paid into yet. Stock
// of the old cart is returned before the new cart is taken out.
func (s *Service) EditItems(ctx context.Context, actor auth.Actor, purchaseID uuid.UUID, inputs []ItemInput) (*purchase.Purchase, *invoice.Invoice, error) {
	var (
		res *purchase.Purchase
		inv *invoice.Invoice
	)

	err := s.inTx(ctx, "edit purchase items", func(ctx context.Context, tx Tx, out *outbox) error {
		now := s.now()

		p, err := tx.LockPurchase(ctx, purchaseID)
		if err != nil {
			return fmt.Errorf("lock purchase: %w", err)
		}

		if err := actor.RequireMember(p.ShopID); err != nil {
			return err
		}

		if !p.AmountPaid.IsZero() {
			return purchase.ErrPurchaseAlreadyPaid
		}

		items, err := s.takeStock(ctx, tx, p.ShopID, p.Type, inputs, p.Items)
		if err != nil {
			return err
		}

		q, err := money.Calculate(money.Input{
			Lines:            lines(items),
			Type:             p.Type,
			Policy:           p.Policy,
			DownPayment:      decimal.Zero,
			InstallmentCount: p.InstallmentCount,
		})
		if err != nil {
			return err
		}

		previous := p.Outstanding()

		if err := p.ReplaceItems(items, q, now); err != nil {
			return err
		}

		if err := tx.UpdatePurchase(ctx, p); err != nil {
			return fmt.Errorf("update purchase: %w", err)
		}

		seq, err := tx.NextInvoiceNumber(ctx)
		if err != nil {
			return fmt.Errorf("next invoice number: %w", err)
		}

		inv = invoice.ForRevision(p, previous, seq, now)
		if err := tx.CreateInvoice(ctx, inv); err != nil {
			return fmt.Errorf("create invoice: %w", err)
		}

		res = p

		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return res, inv, nil
}

func (s *Service) CancelPurchase(ctx context.Context, actor auth.Actor, purchaseID uuid.UUID) (*purchase.Purchase, error) {
	var res *purchase.Purchase

	err := s.inTx(ctx, "cancel purchase", func(ctx context.Context, tx Tx, out *outbox) error {
		p, err := tx.LockPurchase(ctx, purchaseID)
		if err != nil {
			return fmt.Errorf("lock purchase: %w", err)
		}

		if err := actor.RequireConfirm(p.ShopID); err != nil {
			return err
		}

		if err := p.Cancel(s.now()); err != nil {
			return err
		}

		if _, err := s.takeStock(ctx, tx, p.ShopID, p.Type, nil, p.Items); err != nil {
			return err
		}

		if err := tx.UpdatePurchase(ctx, p); err != nil {
			return fmt.Errorf("update purchase: %w", err)
		}

		res = p

		return nil
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}

func (s *Service) MarkDefaulted(ctx context.Context, actor auth.Actor, purchaseID uuid.UUID) (*purchase.Purchase, error) {
	var res *purchase.Purchase

	err := s.inTx(ctx, "mark purchase defaulted", func(ctx context.Context, tx Tx, out *outbox) error {
		p, err := tx.LockPurchase(ctx, purchaseID)
		if err != nil {
			return fmt.Errorf("lock purchase: %w", err)
		}

		if err := actor.RequireConfirm(p.ShopID); err != nil {
			return err
		}

		if err := p.MarkDefaulted(s.now()); err != nil {
			return err
		}

		if err := tx.UpdatePurchase(ctx, p); err != nil {
			return fmt.Errorf("update purchase: %w", err)
		}

		res = p

		return nil
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}

func (s *Service) GetPurchase(ctx context.Context, id uuid.UUID) (*PurchaseView, error) {
	p, err := s.repo.GetPurchase(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get purchase: %w", err)
	}

	return s.view(p), nil
}

// ListPurchases resolves a status filter through EffectiveStatus, so OVERDUE
// and COMPLETED mean the same here as on a single read.
func (s *Service) ListPurchases(ctx context.Context, filter PurchaseFilter) ([]*PurchaseView, error) {
	sf := StoreFilter{CustomerID: filter.CustomerID, ShopID: filter.ShopID}
	if filter.Status != nil {
		sf.Statuses = purchase.StoredCandidates(*filter.Status)
	}

	list, err := s.repo.ListPurchases(ctx, sf)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}

	views := make([]*PurchaseView, 0, len(list))

	for _, p := range list {
		v := s.view(p)
		if filter.Status != nil && v.Status != *filter.Status {
			continue
		}

		views = append(views, v)
	}

	return views, nil
}

func (s *Service) view(p *purchase.Purchase) *PurchaseView {
	v := &PurchaseView{Purchase: p, Status: purchase.EffectiveStatus(p, s.now())}

	if p.Type != purchase.TypeCash {
		v.Schedule = money.Schedule(p.Quote(), p.StartedAt, tenorDays(p))
	}

	return v
}

func tenorDays(p *purchase.Purchase) int {
	if p.DueDate == nil {
		return 0
	}

	return int(p.DueDate.Sub(p.StartedAt).Hours() / 24)
}

// takeStock returns the released items to stock and takes the requested
// ones out, priced for the purchase type. Products are locked in id order.
func (s *Service) takeStock(ctx context.Context, tx Tx, shopID uuid.UUID, t purchase.Type, inputs []ItemInput, released []purchase.Item) ([]purchase.Item, error) {
	delta := make(map[uuid.UUID]int)

	for _, it := range released {
		delta[it.ProductID] += it.Quantity
	}

	for _, in := range inputs {
		if in.Quantity <= 0 {
			return nil, money.ErrInvalidQuantity
		}

		delta[in.ProductID] -= in.Quantity
	}

	ids := make([]uuid.UUID, 0, len(delta))
	for id := range delta {
		ids = append(ids, id)
	}

	slices.SortFunc(ids, func(a, b uuid.UUID) int { return slices.Compare(a[:], b[:]) })

	if len(ids) == 0 {
		return nil, money.ErrEmptyCart
	}

	products, err := tx.LockProducts(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("lock products: %w", err)
	}

	for _, id := range ids {
		prod, ok := products[id]
		if !ok || prod.ShopID != shopID {
			return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
		}

		if delta[id] == 0 {
			continue
		}

		if err := prod.Adjust(delta[id]); err != nil {
			return nil, err
		}

		if err := tx.UpdateStock(ctx, id, prod.Quantity); err != nil {
			return nil, fmt.Errorf("update stock: %w", err)
		}
	}

	items := make([]purchase.Item, 0, len(inputs))
	for _, in := range inputs {
		prod := products[in.ProductID]
		items = append(items, priced(prod, t, in.Quantity))
	}

	return items, nil
}

func priced(p *catalog.Product, t purchase.Type, quantity int) purchase.Item {
	return purchase.NewItem(p.ID, p.Name, quantity, p.PriceFor(t))
}

func lines(items []purchase.Item) []money.Line {
	out := make([]money.Line, len(items))
	for i, it := range items {
		out[i] = money.Line{UnitPrice: it.UnitPrice, Quantity: it.Quantity}
	}

	return out
}

func purchaseEvent(t events.Type, p *purchase.Purchase, amount decimal.Decimal, now time.Time) events.Event {
	e := events.New(t, p.CustomerID, p.ShopID, amount, now)
	e.PurchaseID = &p.ID

	return e
}
