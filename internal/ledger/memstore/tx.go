package memstore

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/layby/internal/catalog"
	"github.com/MrJamesThe3rd/layby/internal/invoice"
	"github.com/MrJamesThe3rd/layby/internal/ledger"
	"github.com/MrJamesThe3rd/layby/internal/money"
	"github.com/MrJamesThe3rd/layby/internal/payment"
	"github.com/MrJamesThe3rd/layby/internal/purchase"
	"github.com/MrJamesThe3rd/layby/internal/wallet"
)

type tx struct {
	store *Store
	work  *state
	done  bool
}

func (t *tx) ShopPolicy(_ context.Context, shopID uuid.UUID) (money.Policy, error) {
	p, ok := t.work.shops[shopID]
	if !ok {
		return money.Policy{}, ledger.ErrNotFound
	}

	return p, nil
}

func (t *tx) LockProducts(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]*catalog.Product, error) {
	out := make(map[uuid.UUID]*catalog.Product, len(ids))

	for _, id := range ids {
		if p, ok := t.work.products[id]; ok {
			c := *p
			out[id] = &c
		}
	}

	return out, nil
}

func (t *tx) UpdateStock(_ context.Context, productID uuid.UUID, quantity int) error {
	p, ok := t.work.products[productID]
	if !ok {
		return ledger.ErrNotFound
	}

	p.Quantity = quantity

	return nil
}

func (t *tx) CreatePurchase(_ context.Context, p *purchase.Purchase) error {
	t.work.purchases[p.ID] = p.Clone()
	return nil
}

func (t *tx) LockPurchase(_ context.Context, id uuid.UUID) (*purchase.Purchase, error) {
	p, ok := t.work.purchases[id]
	if !ok {
		return nil, ledger.ErrNotFound
	}

	return p.Clone(), nil
}

func (t *tx) UpdatePurchase(_ context.Context, p *purchase.Purchase) error {
	if _, ok := t.work.purchases[p.ID]; !ok {
		return ledger.ErrNotFound
	}

	t.work.purchases[p.ID] = p.Clone()

	return nil
}

func (t *tx) CreatePayment(_ context.Context, p *payment.Payment) error {
	t.work.payments[p.ID] = p.Clone()
	return nil
}

func (t *tx) LockPayment(_ context.Context, id uuid.UUID) (*payment.Payment, error) {
	p, ok := t.work.payments[id]
	if !ok {
		return nil, ledger.ErrNotFound
	}

	return p.Clone(), nil
}

func (t *tx) UpdatePayment(_ context.Context, p *payment.Payment) error {
	if _, ok := t.work.payments[p.ID]; !ok {
		return ledger.ErrNotFound
	}

	t.work.payments[p.ID] = p.Clone()

	return nil
}

func (t *tx) LockWallet(_ context.Context, customerID uuid.UUID) (decimal.Decimal, error) {
	return t.work.balance(customerID), nil
}

func (t *tx) CreateWalletTransaction(_ context.Context, w *wallet.Transaction) error {
	t.work.walletTxs[w.ID] = w.Clone()
	return nil
}

func (t *tx) LockWalletTransaction(_ context.Context, id uuid.UUID) (*wallet.Transaction, error) {
	w, ok := t.work.walletTxs[id]
	if !ok {
		return nil, ledger.ErrNotFound
	}

	return w.Clone(), nil
}

func (t *tx) UpdateWalletTransaction(_ context.Context, w *wallet.Transaction) error {
	if _, ok := t.work.walletTxs[w.ID]; !ok {
		return ledger.ErrNotFound
	}

	t.work.walletTxs[w.ID] = w.Clone()

	return nil
}

func (t *tx) NextInvoiceNumber(context.Context) (int64, error) {
	t.work.invoiceNo++
	return t.work.invoiceNo, nil
}

func (t *tx) CreateInvoice(_ context.Context, inv *invoice.Invoice) error {
	t.work.invoices[inv.ID] = inv
	return nil
}

func (t *tx) Commit() error {
	if t.done {
		return errTxDone
	}

	t.done = true
	defer t.store.txLock.Unlock()

	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	if t.store.conflicts > 0 {
		t.store.conflicts--
		return ledger.ErrConflict
	}

	t.store.data = t.work

	return nil
}

func (t *tx) Rollback() error {
	if t.done {
		return nil
	}

	t.done = true
	t.store.txLock.Unlock()

	return nil
}
