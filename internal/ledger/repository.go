package ledger

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/layby/internal/catalog"
	"github.com/MrJamesThe3rd/layby/internal/invoice"
	"github.com/MrJamesThe3rd/layby/internal/money"
	"github.com/MrJamesThe3rd/layby/internal/payment"
	"github.com/MrJamesThe3rd/layby/internal/purchase"
	"github.com/MrJamesThe3rd/layby/internal/wallet"
)

var (
	ErrNotFound = errors.New("not found")
	// ErrConflict marks a transaction that lost a race (serialization failure
	// or deadlock). The service retries it with freshly read state.
	ErrConflict = errors.New("concurrent update conflict")
)

//go:generate mockgen -source=repository.go -destination=repository_mock.go -package=ledger
type Repository interface {
	Begin(ctx context.Context) (Tx, error)

	GetPurchase(ctx context.Context, id uuid.UUID) (*purchase.Purchase, error)
	ListPurchases(ctx context.Context, filter StoreFilter) ([]*purchase.Purchase, error)
	GetPayment(ctx context.Context, id uuid.UUID) (*payment.Payment, error)
	ListPayments(ctx context.Context, filter PaymentFilter) ([]*payment.Payment, error)
	ListInvoices(ctx context.Context, purchaseID uuid.UUID) ([]*invoice.Invoice, error)
	ListWalletTransactions(ctx context.Context, filter WalletFilter) ([]*wallet.Transaction, error)
	WalletBalance(ctx context.Context, customerID uuid.UUID) (decimal.Decimal, error)
}

// Tx is one atomic unit of ledger work. Lock* methods take row locks that
// are held until Commit or Rollback.
type Tx interface {
	ShopPolicy(ctx context.Context, shopID uuid.UUID) (money.Policy, error)
	LockProducts(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*catalog.Product, error)
	UpdateStock(ctx context.Context, productID uuid.UUID, quantity int) error

	CreatePurchase(ctx context.Context, p *purchase.Purchase) error
	LockPurchase(ctx context.Context, id uuid.UUID) (*purchase.Purchase, error)
	UpdatePurchase(ctx context.Context, p *purchase.Purchase) error

	CreatePayment(ctx context.Context, p *payment.Payment) error
	LockPayment(ctx context.Context, id uuid.UUID) (*payment.Payment, error)
	UpdatePayment(ctx context.Context, p *payment.Payment) error

	// LockWallet locks the customer's wallet, creating it if needed, and
	// returns its current balance.
	LockWallet(ctx context.Context, customerID uuid.UUID) (decimal.Decimal, error)
	CreateWalletTransaction(ctx context.Context, t *wallet.Transaction) error
	LockWalletTransaction(ctx context.Context, id uuid.UUID) (*wallet.Transaction, error)
	UpdateWalletTransaction(ctx context.Context, t *wallet.Transaction) error

	NextInvoiceNumber(ctx context.Context) (int64, error)
	CreateInvoice(ctx context.Context, inv *invoice.Invoice) error

	Commit() error
	Rollback() error
}

// StoreFilter selects purchases by stored status.
type StoreFilter struct {
	CustomerID *uuid.UUID
	ShopID     *uuid.UUID
	Statuses   []purchase.Status
}

type PaymentFilter struct {
	PurchaseID *uuid.UUID
	ShopID     *uuid.UUID
	State      *payment.State
}

type WalletFilter struct {
	CustomerID *uuid.UUID
	ShopID     *uuid.UUID
	Direction  *wallet.Direction
	State      *wallet.State
}
