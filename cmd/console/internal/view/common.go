package view

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/layby/internal/auth"
	"github.com/MrJamesThe3rd/layby/internal/ledger"
	"github.com/MrJamesThe3rd/layby/internal/payment"
	"github.com/MrJamesThe3rd/layby/internal/purchase"
	"github.com/MrJamesThe3rd/layby/internal/wallet"
)

const dbTimeout = 5 * time.Second

// Ledger is what the console screens call on the ledger service.
type Ledger interface {
	ListPayments(ctx context.Context, filter ledger.PaymentFilter) ([]*payment.Payment, error)
	ConfirmPayment(ctx context.Context, actor auth.Actor, id uuid.UUID) (*ledger.ConfirmResult, error)
	RejectPayment(ctx context.Context, actor auth.Actor, id uuid.UUID, reason string) (*payment.Payment, error)
	ListWalletTransactions(ctx context.Context, filter ledger.WalletFilter) ([]*wallet.Transaction, error)
	ConfirmDeposit(ctx context.Context, actor auth.Actor, id uuid.UUID) (*wallet.Transaction, error)
	RejectDeposit(ctx context.Context, actor auth.Actor, id uuid.UUID, reason string) (*wallet.Transaction, error)
	ListPurchases(ctx context.Context, filter ledger.PurchaseFilter) ([]*ledger.PurchaseView, error)
	MarkDefaulted(ctx context.Context, actor auth.Actor, id uuid.UUID) (*purchase.Purchase, error)
}

type CommonModel struct {
	Width  int
	Height int
}

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

func shortID(id uuid.UUID) string {
	return id.String()[:8]
}

func dbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}
