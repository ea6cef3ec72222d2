// Package memstore is an in-memory ledger repository. Transactions are
// serialised by a single lock and work on a private copy of the state that
// replaces the shared one on commit.
package memstore

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"sync"

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

var errTxDone = errors.New("transaction already finished")

type state struct {
	shops     map[uuid.UUID]money.Policy
	products  map[uuid.UUID]*catalog.Product
	purchases map[uuid.UUID]*purchase.Purchase
	payments  map[uuid.UUID]*payment.Payment
	walletTxs map[uuid.UUID]*wallet.Transaction
	invoices  map[uuid.UUID]*invoice.Invoice
	invoiceNo int64
}

func newState() *state {
	return &state{
		shops:     make(map[uuid.UUID]money.Policy),
		products:  make(map[uuid.UUID]*catalog.Product),
		purchases: make(map[uuid.UUID]*purchase.Purchase),
		payments:  make(map[uuid.UUID]*payment.Payment),
		walletTxs: make(map[uuid.UUID]*wallet.Transaction),
		invoices:  make(map[uuid.UUID]*invoice.Invoice),
	}
}

func (s *state) clone() *state {
	c := newState()
	c.invoiceNo = s.invoiceNo

	for k, v := range s.shops {
		c.shops[k] = v
	}

	for k, v := range s.products {
		p := *v
		c.products[k] = &p
	}

	for k, v := range s.purchases {
		c.purchases[k] = v.Clone()
	}

	for k, v := range s.payments {
		c.payments[k] = v.Clone()
	}

	for k, v := range s.walletTxs {
		c.walletTxs[k] = v.Clone()
	}

	for k, v := range s.invoices {
		c.invoices[k] = v
	}

	return c
}

type Store struct {
	txLock sync.Mutex // held for the lifetime of a transaction

	mu        sync.RWMutex
	data      *state
	conflicts int
}

func New() *Store {
	return &Store{data: newState()}
}

// AddShop registers a shop and its financing policy.
func (s *Store) AddShop(id uuid.UUID, policy money.Policy) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data.shops[id] = policy
}

func (s *Store) AddProduct(p catalog.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data.products[p.ID] = &p
}

// Product returns a copy of the stored product.
func (s *Store) Product(id uuid.UUID) (catalog.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.data.products[id]
	if !ok {
		return catalog.Product{}, false
	}

	return *p, true
}

// InjectConflicts makes the next n commits fail with ledger.ErrConflict.
func (s *Store) InjectConflicts(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.conflicts = n
}

func (s *Store) Begin(ctx context.Context) (ledger.Tx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.txLock.Lock()

	s.mu.RLock()
	work := s.data.clone()
	s.mu.RUnlock()

	return &tx{store: s, work: work}, nil
}

func (s *Store) GetPurchase(_ context.Context, id uuid.UUID) (*purchase.Purchase, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.data.purchases[id]
	if !ok {
		return nil, ledger.ErrNotFound
	}

	return p.Clone(), nil
}

func (s *Store) ListPurchases(_ context.Context, filter ledger.StoreFilter) ([]*purchase.Purchase, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*purchase.Purchase

	for _, p := range s.data.purchases {
		if filter.CustomerID != nil && p.CustomerID != *filter.CustomerID {
			continue
		}

		if filter.ShopID != nil && p.ShopID != *filter.ShopID {
			continue
		}

		if len(filter.Statuses) > 0 && !slices.Contains(filter.Statuses, p.Status) {
			continue
		}

		out = append(out, p.Clone())
	}

	slices.SortFunc(out, func(a, b *purchase.Purchase) int { return b.CreatedAt.Compare(a.CreatedAt) })

	return out, nil
}

func (s *Store) GetPayment(_ context.Context, id uuid.UUID) (*payment.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.data.payments[id]
	if !ok {
		return nil, ledger.ErrNotFound
	}

	return p.Clone(), nil
}

func (s *Store) ListPayments(_ context.Context, filter ledger.PaymentFilter) ([]*payment.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*payment.Payment

	for _, p := range s.data.payments {
		if filter.PurchaseID != nil && p.PurchaseID != *filter.PurchaseID {
			continue
		}

		if filter.State != nil && p.State != *filter.State {
			continue
		}

		if filter.ShopID != nil {
			pur, ok := s.data.purchases[p.PurchaseID]
			if !ok || pur.ShopID != *filter.ShopID {
				continue
			}
		}

		out = append(out, p.Clone())
	}

	slices.SortFunc(out, func(a, b *payment.Payment) int { return b.CreatedAt.Compare(a.CreatedAt) })

	return out, nil
}

func (s *Store) ListInvoices(_ context.Context, purchaseID uuid.UUID) ([]*invoice.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*invoice.Invoice

	for _, inv := range s.data.invoices {
		if inv.PurchaseID == purchaseID {
			out = append(out, inv)
		}
	}

	slices.SortFunc(out, func(a, b *invoice.Invoice) int { return cmp.Compare(a.Number, b.Number) })

	return out, nil
}

func (s *Store) ListWalletTransactions(_ context.Context, filter ledger.WalletFilter) ([]*wallet.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*wallet.Transaction

	for _, t := range s.data.walletTxs {
		if filter.CustomerID != nil && t.CustomerID != *filter.CustomerID {
			continue
		}

		if filter.ShopID != nil && t.ShopID != *filter.ShopID {
			continue
		}

		if filter.Direction != nil && t.Direction != *filter.Direction {
			continue
		}

		if filter.State != nil && t.State != *filter.State {
			continue
		}

		out = append(out, t.Clone())
	}

	slices.SortFunc(out, func(a, b *wallet.Transaction) int { return b.CreatedAt.Compare(a.CreatedAt) })

	return out, nil
}

func (s *Store) WalletBalance(_ context.Context, customerID uuid.UUID) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.data.balance(customerID), nil
}

func (s *state) balance(customerID uuid.UUID) decimal.Decimal {
	var txs []*wallet.Transaction

	for _, t := range s.walletTxs {
		if t.CustomerID == customerID {
			txs = append(txs, t)
		}
	}

	return wallet.Balance(txs)
}
