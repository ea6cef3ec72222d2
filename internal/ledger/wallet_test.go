package ledger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/layby/internal/auth"
	"github.com/MrJamesThe3rd/layby/internal/ledger"
	"github.com/MrJamesThe3rd/layby/internal/wallet"
)

func (f *fixture) balance(t *testing.T) string {
	t.Helper()

	b, err := f.svc.WalletBalance(context.Background(), f.customer)
	require.NoError(t, err)

	return b.StringFixed(2)
}

func TestService_Deposits(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	pending, err := f.svc.Deposit(ctx, f.collector, ledger.DepositParams{
		CustomerID: f.customer, ShopID: f.shop, Amount: dec("300"), Method: "CASH",
	})
	require.NoError(t, err)
	assert.Equal(t, wallet.StateAwaiting, pending.State)
	assert.Equal(t, "0.00", f.balance(t))

	_, err = f.svc.ConfirmDeposit(ctx, f.collector, pending.ID)
	require.ErrorIs(t, err, auth.ErrForbidden)

	_, err = f.svc.ConfirmDeposit(ctx, f.admin, pending.ID)
	require.NoError(t, err)
	assert.Equal(t, "300.00", f.balance(t))

	_, err = f.svc.ConfirmDeposit(ctx, f.admin, pending.ID)
	require.ErrorIs(t, err, wallet.ErrAlreadyResolved)
	assert.Equal(t, "300.00", f.balance(t))

	bounced, err := f.svc.Deposit(ctx, f.collector, ledger.DepositParams{
		CustomerID: f.customer, ShopID: f.shop, Amount: dec("50"), Method: "MOBILE_MONEY",
	})
	require.NoError(t, err)

	_, err = f.svc.RejectDeposit(ctx, f.admin, bounced.ID, "")
	require.ErrorIs(t, err, wallet.ErrRejectionReasonRequired)

	rejected, err := f.svc.RejectDeposit(ctx, f.admin, bounced.ID, "reversed by operator")
	require.NoError(t, err)
	assert.Equal(t, wallet.StateRejected, rejected.State)
	assert.Equal(t, "300.00", f.balance(t))

	direct, err := f.svc.Deposit(ctx, f.admin, ledger.DepositParams{
		CustomerID: f.customer, ShopID: f.shop, Amount: dec("20"), Method: "CASH",
	})
	require.NoError(t, err)
	assert.Equal(t, wallet.StateConfirmed, direct.State)
	assert.Equal(t, "320.00", f.balance(t))

	_, err = f.svc.Deposit(ctx, f.admin, ledger.DepositParams{CustomerID: f.customer, ShopID: f.shop, Amount: dec("0")})
	assert.ErrorIs(t, err, wallet.ErrInvalidAmount)

	_, err = f.svc.Deposit(ctx, f.foreign, ledger.DepositParams{
		CustomerID: f.customer, ShopID: f.shop, Amount: dec("10"), Method: "CASH",
	})
	assert.ErrorIs(t, err, auth.ErrOutsideShop)
	assert.Equal(t, "320.00", f.balance(t))

	list, err := f.svc.ListDeposits(ctx, f.customer)
	require.NoError(t, err)
	assert.Len(t, list, 3)
}

func TestService_WalletPayments(t *testing.T) {
	ctx := context.Background()

	t.Run("RejectedAtRecordTimeWhenShort", func(t *testing.T) {
		f := newFixture(t)
		p := f.creditSale(t)

		_, err := f.svc.Deposit(ctx, f.admin, ledger.DepositParams{CustomerID: f.customer, ShopID: f.shop, Amount: dec("100")})
		require.NoError(t, err)

		_, err = f.svc.RecordPayment(ctx, f.collector, ledger.RecordPaymentParams{
			PurchaseID: p.ID, Amount: dec("150"), Method: "WALLET",
		})
		require.ErrorIs(t, err, wallet.ErrInsufficientWalletBalance)
		assert.Equal(t, "100.00", f.balance(t))
	})

	t.Run("DebitOnlyWhenConfirmed", func(t *testing.T) {
		f := newFixture(t)
		p := f.creditSale(t)

		_, err := f.svc.Deposit(ctx, f.admin, ledger.DepositParams{CustomerID: f.customer, ShopID: f.shop, Amount: dec("500")})
		require.NoError(t, err)

		res, err := f.svc.RecordPayment(ctx, f.collector, ledger.RecordPaymentParams{
			PurchaseID: p.ID, Amount: dec("200"), Method: "WALLET",
		})
		require.NoError(t, err)
		assert.Equal(t, "500.00", f.balance(t))

		_, err = f.svc.ConfirmPayment(ctx, f.admin, res.Payment.ID)
		require.NoError(t, err)
		assert.Equal(t, "300.00", f.balance(t))
		assert.True(t, f.outstanding(t, p.ID).Equal(dec("800")))

		debit := wallet.DirectionDebit

		debits, err := f.svc.ListWalletTransactions(ctx, ledger.WalletFilter{CustomerID: &f.customer, Direction: &debit})
		require.NoError(t, err)
		require.Len(t, debits, 1)
		assert.Equal(t, res.Payment.ID, *debits[0].PaymentID)
	})

	t.Run("RejectedWalletPaymentNeverDebits", func(t *testing.T) {
		f := newFixture(t)
		p := f.creditSale(t)

		_, err := f.svc.Deposit(ctx, f.admin, ledger.DepositParams{CustomerID: f.customer, ShopID: f.shop, Amount: dec("500")})
		require.NoError(t, err)

		res, err := f.svc.RecordPayment(ctx, f.collector, ledger.RecordPaymentParams{
			PurchaseID: p.ID, Amount: dec("200"), Method: "WALLET",
		})
		require.NoError(t, err)

		_, err = f.svc.RejectPayment(ctx, f.admin, res.Payment.ID, "customer disputed")
		require.NoError(t, err)
		assert.Equal(t, "500.00", f.balance(t))
	})

	t.Run("DrainedWalletFailsConfirmation", func(t *testing.T) {
		f := newFixture(t)
		p := f.creditSale(t)

		_, err := f.svc.Deposit(ctx, f.admin, ledger.DepositParams{CustomerID: f.customer, ShopID: f.shop, Amount: dec("300")})
		require.NoError(t, err)

		first, err := f.svc.RecordPayment(ctx, f.collector, ledger.RecordPaymentParams{PurchaseID: p.ID, Amount: dec("200"), Method: "WALLET"})
		require.NoError(t, err)

		second, err := f.svc.RecordPayment(ctx, f.collector, ledger.RecordPaymentParams{PurchaseID: p.ID, Amount: dec("200"), Method: "WALLET"})
		require.NoError(t, err)

		_, err = f.svc.ConfirmPayment(ctx, f.admin, first.Payment.ID)
		require.NoError(t, err)

		_, err = f.svc.ConfirmPayment(ctx, f.admin, second.Payment.ID)
		require.ErrorIs(t, err, wallet.ErrInsufficientWalletBalance)

		assert.Equal(t, "100.00", f.balance(t))
		assert.True(t, f.outstanding(t, p.ID).Equal(dec("800")))
	})
}
