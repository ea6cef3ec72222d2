package ledger_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/layby/internal/auth"
	"github.com/MrJamesThe3rd/layby/internal/catalog"
	"github.com/MrJamesThe3rd/layby/internal/events"
	"github.com/MrJamesThe3rd/layby/internal/ledger"
	"github.com/MrJamesThe3rd/layby/internal/ledger/memstore"
	"github.com/MrJamesThe3rd/layby/internal/money"
	"github.com/MrJamesThe3rd/layby/internal/payment"
	"github.com/MrJamesThe3rd/layby/internal/purchase"
)

type recorder struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recorder) Publish(_ context.Context, e events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, e)

	return nil
}

func (r *recorder) types() []events.Type {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]events.Type, len(r.events))
	for i, e := range r.events {
		out[i] = e.Type
	}

	return out
}

type fixture struct {
	svc       *ledger.Service
	store     *memstore.Store
	published *recorder
	now       time.Time

	shop      uuid.UUID
	otherShop uuid.UUID
	customer  uuid.UUID
	tv        uuid.UUID // credit price 1000
	radio     uuid.UUID // cash price 250

	owner     auth.Actor
	admin     auth.Actor
	collector auth.Actor
	foreign   auth.Actor // admin of another shop
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newFixture(t *testing.T, opts ...ledger.Option) *fixture {
	t.Helper()

	f := &fixture{
		store:     memstore.New(),
		published: &recorder{},
		now:       time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		shop:      uuid.New(),
		otherShop: uuid.New(),
		customer:  uuid.New(),
		tv:        uuid.New(),
		radio:     uuid.New(),
	}

	f.owner = auth.Actor{UserID: uuid.New(), Role: auth.RoleOwner}
	f.admin = auth.Actor{UserID: uuid.New(), Role: auth.RoleShopAdmin, ShopID: &f.shop}
	f.collector = auth.Actor{UserID: uuid.New(), Role: auth.RoleCollector, ShopID: &f.shop}
	f.foreign = auth.Actor{UserID: uuid.New(), Role: auth.RoleShopAdmin, ShopID: &f.otherShop}

	f.store.AddShop(f.shop, money.Policy{
		InterestType: money.InterestFlat,
		RatePercent:  dec("10"),
		GraceDays:    3,
		MaxTenorDays: 90,
	})
	f.store.AddProduct(catalog.Product{
		ID: f.tv, ShopID: f.shop, Name: "TV",
		CashPrice: dec("900"), LayawayPrice: dec("950"), CreditPrice: dec("1000"),
		Quantity: 5,
	})
	f.store.AddProduct(catalog.Product{
		ID: f.radio, ShopID: f.shop, Name: "Radio",
		CashPrice: dec("250"), LayawayPrice: dec("260"), CreditPrice: dec("275"),
		Quantity: 2,
	})

	opts = append([]ledger.Option{
		ledger.WithPublisher(f.published),
		ledger.WithClock(func() time.Time { return f.now }),
	}, opts...)
	f.svc = ledger.NewService(f.store, opts...)

	return f
}

// creditSale sells one TV on credit: 1000 subtotal, 10% flat, 3
// installments, 100 down, leaving 1000 outstanding.
func (f *fixture) creditSale(t *testing.T) *purchase.Purchase {
	t.Helper()

	res, err := f.svc.CreatePurchase(context.Background(), f.admin, ledger.CreatePurchaseParams{
		CustomerID:       f.customer,
		ShopID:           f.shop,
		Type:             purchase.TypeCredit,
		Items:            []ledger.ItemInput{{ProductID: f.tv, Quantity: 1}},
		DownPayment:      dec("100"),
		InstallmentCount: 3,
	})
	require.NoError(t, err)

	return res.Purchase
}

func (f *fixture) outstanding(t *testing.T, id uuid.UUID) decimal.Decimal {
	t.Helper()

	v, err := f.svc.GetPurchase(context.Background(), id)
	require.NoError(t, err)

	return v.Purchase.Outstanding()
}

func (f *fixture) stock(t *testing.T, id uuid.UUID) int {
	t.Helper()

	p, ok := f.store.Product(id)
	require.True(t, ok)

	return p.Quantity
}

func TestService_CreatePurchase(t *testing.T) {
	ctx := context.Background()

	t.Run("CashCompletesImmediately", func(t *testing.T) {
		f := newFixture(t)

		res, err := f.svc.CreatePurchase(ctx, f.collector, ledger.CreatePurchaseParams{
			CustomerID:  f.customer,
			ShopID:      f.shop,
			Type:        purchase.TypeCash,
			Items:       []ledger.ItemInput{{ProductID: f.radio, Quantity: 2}},
			DownPayment: dec("500"),
		})
		require.NoError(t, err)

		p := res.Purchase
		assert.True(t, p.Total.Equal(dec("500")))
		assert.True(t, p.Interest.IsZero())
		assert.True(t, p.Outstanding().IsZero())
		assert.Equal(t, purchase.StatusCompleted, p.Status)
		assert.Nil(t, p.DueDate)

		require.NotNil(t, res.DownPayment)
		assert.True(t, res.DownPayment.Effective())
		require.NotNil(t, res.Invoice)
		assert.Equal(t, "INV-00000001", res.Invoice.Number)
		assert.True(t, res.Invoice.NewBalance.IsZero())

		assert.Equal(t, 0, f.stock(t, f.radio))
		assert.Equal(t, []events.Type{events.PurchaseCreated, events.PurchaseCompleted, events.WaybillRequested}, f.published.types())
	})

	t.Run("CashPricedBelowMinorUnit", func(t *testing.T) {
		tests := []struct {
			name      string
			price     string
			wantTotal string
		}{
			{name: "RoundsUp", price: "3.335", wantTotal: "3.34"},
			{name: "RoundsDown", price: "3.334", wantTotal: "3.33"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				f := newFixture(t)
				cable := uuid.New()
				f.store.AddProduct(catalog.Product{
					ID: cable, ShopID: f.shop, Name: "Cable",
					CashPrice: dec(tt.price), LayawayPrice: dec("4"), CreditPrice: dec("5"),
					Quantity: 1,
				})

				res, err := f.svc.CreatePurchase(ctx, f.admin, ledger.CreatePurchaseParams{
					CustomerID:  f.customer,
					ShopID:      f.shop,
					Type:        purchase.TypeCash,
					Items:       []ledger.ItemInput{{ProductID: cable, Quantity: 1}},
					DownPayment: dec(tt.price),
				})
				require.NoError(t, err)

				p := res.Purchase
				assert.True(t, p.Total.Equal(dec(tt.wantTotal)), "total %s", p.Total)
				assert.True(t, p.Interest.IsZero(), "interest %s", p.Interest)
				assert.True(t, p.AmountPaid.Equal(p.Total), "paid %s", p.AmountPaid)
				assert.True(t, p.Outstanding().IsZero())
				assert.Equal(t, purchase.StatusCompleted, p.Status)
				require.NotNil(t, res.DownPayment)
				assert.True(t, res.DownPayment.Amount.Equal(p.Total))

				v, err := f.svc.GetPurchase(ctx, p.ID)
				require.NoError(t, err)
				assert.Equal(t, purchase.StatusCompleted, v.Status)
			})
		}
	})

	t.Run("SellerOutsideShop", func(t *testing.T) {
		f := newFixture(t)
		outsider := auth.Actor{UserID: uuid.New(), Role: auth.RoleCollector, ShopID: &f.otherShop}

		for _, actor := range []auth.Actor{outsider, f.foreign} {
			_, err := f.svc.CreatePurchase(ctx, actor, ledger.CreatePurchaseParams{
				CustomerID:       f.customer,
				ShopID:           f.shop,
				Type:             purchase.TypeCredit,
				Items:            []ledger.ItemInput{{ProductID: f.tv, Quantity: 1}},
				InstallmentCount: 3,
			})
			assert.ErrorIs(t, err, auth.ErrOutsideShop)
		}

		assert.Equal(t, 5, f.stock(t, f.tv))
		assert.Empty(t, f.published.types())
	})

	t.Run("CreditTerms", func(t *testing.T) {
		f := newFixture(t)
		p := f.creditSale(t)

		assert.True(t, p.Interest.Equal(dec("100")))
		assert.True(t, p.Total.Equal(dec("1100")))
		assert.True(t, p.Outstanding().Equal(dec("1000")))
		assert.True(t, p.PerInstallment.Equal(dec("333.33")))
		assert.Equal(t, purchase.StatusActive, p.Status)
		require.NotNil(t, p.DueDate)
		assert.Equal(t, f.now.AddDate(0, 0, 90), *p.DueDate)
		assert.Equal(t, 4, f.stock(t, f.tv))

		v, err := f.svc.GetPurchase(ctx, p.ID)
		require.NoError(t, err)
		require.Len(t, v.Schedule, 3)
		assert.True(t, v.Schedule[2].Amount.Equal(dec("333.34")))
	})

	t.Run("InsufficientStockRollsBack", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.CreatePurchase(ctx, f.admin, ledger.CreatePurchaseParams{
			CustomerID: f.customer,
			ShopID:     f.shop,
			Type:       purchase.TypeLayaway,
			Items: []ledger.ItemInput{
				{ProductID: f.tv, Quantity: 1},
				{ProductID: f.radio, Quantity: 3},
			},
			InstallmentCount: 2,
		})
		require.ErrorIs(t, err, catalog.ErrInsufficientStock)

		assert.Equal(t, 5, f.stock(t, f.tv))
		assert.Equal(t, 2, f.stock(t, f.radio))

		list, err := f.svc.ListPurchases(ctx, ledger.PurchaseFilter{})
		require.NoError(t, err)
		assert.Empty(t, list)
		assert.Empty(t, f.published.types())
	})

	t.Run("ValidationErrors", func(t *testing.T) {
		tests := []struct {
			name    string
			params  func(f *fixture) ledger.CreatePurchaseParams
			wantErr error
		}{
			{
				name: "CashDownPaymentMismatch",
				params: func(f *fixture) ledger.CreatePurchaseParams {
					return ledger.CreatePurchaseParams{
						CustomerID: f.customer, ShopID: f.shop, Type: purchase.TypeCash,
						Items:       []ledger.ItemInput{{ProductID: f.radio, Quantity: 1}},
						DownPayment: dec("200"),
					}
				},
				wantErr: money.ErrCashDownPaymentMismatch,
			},
			{
				name: "ZeroInstallments",
				params: func(f *fixture) ledger.CreatePurchaseParams {
					return ledger.CreatePurchaseParams{
						CustomerID: f.customer, ShopID: f.shop, Type: purchase.TypeCredit,
						Items: []ledger.ItemInput{{ProductID: f.tv, Quantity: 1}},
					}
				},
				wantErr: money.ErrInvalidInstallmentCount,
			},
			{
				name: "EmptyCart",
				params: func(f *fixture) ledger.CreatePurchaseParams {
					return ledger.CreatePurchaseParams{
						CustomerID: f.customer, ShopID: f.shop, Type: purchase.TypeCredit, InstallmentCount: 1,
					}
				},
				wantErr: money.ErrEmptyCart,
			},
			{
				name: "ProductOfAnotherShop",
				params: func(f *fixture) ledger.CreatePurchaseParams {
					return ledger.CreatePurchaseParams{
						CustomerID: f.customer, ShopID: f.shop, Type: purchase.TypeCredit, InstallmentCount: 1,
						Items: []ledger.ItemInput{{ProductID: uuid.New(), Quantity: 1}},
					}
				},
				wantErr: ledger.ErrNotFound,
			},
			{
				name: "DueDateBeyondTenor",
				params: func(f *fixture) ledger.CreatePurchaseParams {
					return ledger.CreatePurchaseParams{
						CustomerID: f.customer, ShopID: f.shop, Type: purchase.TypeCredit, InstallmentCount: 1,
						Items:   []ledger.ItemInput{{ProductID: f.tv, Quantity: 1}},
						DueDate: new(f.now.AddDate(0, 0, 120)),
					}
				},
				wantErr: purchase.ErrInvalidDueDate,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				f := newFixture(t)

				_, err := f.svc.CreatePurchase(ctx, f.admin, tt.params(f))
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, 5, f.stock(t, f.tv))
			})
		}
	})
}

func TestService_InstallmentsComplete(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.creditSale(t)

	var pending []uuid.UUID

	for _, amount := range []string{"333.33", "333.33", "333.34"} {
		res, err := f.svc.RecordPayment(ctx, f.collector, ledger.RecordPaymentParams{
			PurchaseID: p.ID,
			Amount:     dec(amount),
			Method:     "MOBILE_MONEY",
		})
		require.NoError(t, err)
		assert.Nil(t, res.Invoice)

		pending = append(pending, res.Payment.ID)
	}

	var last *ledger.ConfirmResult

	for _, id := range pending {
		res, err := f.svc.ConfirmPayment(ctx, f.admin, id)
		require.NoError(t, err)

		last = res
	}

	assert.True(t, last.Completed)
	assert.True(t, last.Invoice.NewBalance.IsZero())
	assert.True(t, f.outstanding(t, p.ID).IsZero())

	v, err := f.svc.GetPurchase(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, purchase.StatusCompleted, v.Status)
	assert.NotNil(t, v.Purchase.CompletedAt)

	assert.Contains(t, f.published.types(), events.WaybillRequested)

	_, err = f.svc.RecordPayment(ctx, f.admin, ledger.RecordPaymentParams{PurchaseID: p.ID, Amount: dec("1"), Method: "CASH"})
	assert.ErrorIs(t, err, payment.ErrExceedsOutstandingBalance)
}

func TestService_ConfirmationWorkflow(t *testing.T) {
	ctx := context.Background()

	t.Run("AwaitingPaymentLeavesBalanceAlone", func(t *testing.T) {
		f := newFixture(t)
		p := f.creditSale(t)

		res, err := f.svc.RecordPayment(ctx, f.collector, ledger.RecordPaymentParams{
			PurchaseID: p.ID, Amount: dec("200"), Method: "CASH", Reference: "sheet 12",
		})
		require.NoError(t, err)
		assert.True(t, res.Payment.Awaiting())
		assert.True(t, f.outstanding(t, p.ID).Equal(dec("1000")))

		confirmed, err := f.svc.ConfirmPayment(ctx, f.admin, res.Payment.ID)
		require.NoError(t, err)
		assert.False(t, confirmed.Completed)
		assert.True(t, f.outstanding(t, p.ID).Equal(dec("800")))

		inv := confirmed.Invoice
		require.NotNil(t, inv)
		assert.True(t, inv.PreviousBalance.Equal(dec("1000")))
		assert.True(t, inv.PaymentAmount.Equal(dec("200")))
		assert.True(t, inv.NewBalance.Equal(dec("800")))

		_, err = f.svc.ConfirmPayment(ctx, f.admin, res.Payment.ID)
		require.ErrorIs(t, err, payment.ErrAlreadyResolved)
		assert.True(t, f.outstanding(t, p.ID).Equal(dec("800")))

		invoices, err := f.svc.ListInvoices(ctx, p.ID)
		require.NoError(t, err)
		assert.Len(t, invoices, 2)
	})

	t.Run("RejectKeepsBalance", func(t *testing.T) {
		f := newFixture(t)
		p := f.creditSale(t)

		res, err := f.svc.RecordPayment(ctx, f.collector, ledger.RecordPaymentParams{
			PurchaseID: p.ID, Amount: dec("200"), Method: "CASH",
		})
		require.NoError(t, err)

		_, err = f.svc.RejectPayment(ctx, f.admin, res.Payment.ID, "  ")
		require.ErrorIs(t, err, payment.ErrRejectionReasonRequired)

		rejected, err := f.svc.RejectPayment(ctx, f.admin, res.Payment.ID, "not received")
		require.NoError(t, err)
		assert.Equal(t, "not received", rejected.RejectionReason)
		assert.Equal(t, "REJECTED", string(rejected.State))

		for range 3 {
			_, err = f.svc.RejectPayment(ctx, f.admin, res.Payment.ID, "again")
			assert.ErrorIs(t, err, payment.ErrAlreadyResolved)
		}

		assert.True(t, f.outstanding(t, p.ID).Equal(dec("1000")))

		invoices, err := f.svc.ListInvoices(ctx, p.ID)
		require.NoError(t, err)
		assert.Len(t, invoices, 1)

		assert.Contains(t, f.published.types(), events.PaymentRejected)
	})

	t.Run("AuthorityRequired", func(t *testing.T) {
		f := newFixture(t)
		p := f.creditSale(t)

		res, err := f.svc.RecordPayment(ctx, f.collector, ledger.RecordPaymentParams{
			PurchaseID: p.ID, Amount: dec("50"), Method: "CASH",
		})
		require.NoError(t, err)

		for _, actor := range []auth.Actor{f.collector, f.foreign} {
			_, err = f.svc.ConfirmPayment(ctx, actor, res.Payment.ID)
			assert.ErrorIs(t, err, auth.ErrForbidden)

			_, err = f.svc.RejectPayment(ctx, actor, res.Payment.ID, "nope")
			assert.ErrorIs(t, err, auth.ErrForbidden)
		}

		_, err = f.svc.ConfirmPayment(ctx, f.owner, res.Payment.ID)
		require.NoError(t, err)
	})

	t.Run("RecordingOutsideShop", func(t *testing.T) {
		f := newFixture(t)
		p := f.creditSale(t)
		outsider := auth.Actor{UserID: uuid.New(), Role: auth.RoleCollector, ShopID: &f.otherShop}

		_, err := f.svc.RecordPayment(ctx, outsider, ledger.RecordPaymentParams{
			PurchaseID: p.ID, Amount: dec("50"), Method: "CASH",
		})
		assert.ErrorIs(t, err, auth.ErrOutsideShop)

		list, err := f.svc.ListPayments(ctx, ledger.PaymentFilter{PurchaseID: &p.ID})
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("AdminRecordingIsEffective", func(t *testing.T) {
		f := newFixture(t)
		p := f.creditSale(t)

		res, err := f.svc.RecordPayment(ctx, f.admin, ledger.RecordPaymentParams{
			PurchaseID: p.ID, Amount: dec("1000"), Method: "BANK_TRANSFER",
		})
		require.NoError(t, err)
		assert.True(t, res.Payment.Effective())
		assert.True(t, res.Completed)
		require.NotNil(t, res.Invoice)
		assert.True(t, f.outstanding(t, p.ID).IsZero())
	})

	t.Run("StaleAwaitingPaymentNoLongerFits", func(t *testing.T) {
		f := newFixture(t)
		p := f.creditSale(t)

		var ids []uuid.UUID

		for range 2 {
			res, err := f.svc.RecordPayment(ctx, f.collector, ledger.RecordPaymentParams{
				PurchaseID: p.ID, Amount: dec("600"), Method: "CASH",
			})
			require.NoError(t, err)

			ids = append(ids, res.Payment.ID)
		}

		_, err := f.svc.ConfirmPayment(ctx, f.admin, ids[0])
		require.NoError(t, err)

		_, err = f.svc.ConfirmPayment(ctx, f.admin, ids[1])
		require.ErrorIs(t, err, payment.ErrExceedsOutstandingBalance)

		pay, err := f.svc.GetPayment(ctx, ids[1])
		require.NoError(t, err)
		assert.True(t, pay.Awaiting())
		assert.True(t, f.outstanding(t, p.ID).Equal(dec("400")))
	})

	t.Run("RecordValidation", func(t *testing.T) {
		f := newFixture(t)
		p := f.creditSale(t)

		tests := []struct {
			name    string
			params  ledger.RecordPaymentParams
			wantErr error
		}{
			{"ZeroAmount", ledger.RecordPaymentParams{PurchaseID: p.ID, Amount: decimal.Zero, Method: "CASH"}, payment.ErrInvalidAmount},
			{"NegativeAmount", ledger.RecordPaymentParams{PurchaseID: p.ID, Amount: dec("-5"), Method: "CASH"}, payment.ErrInvalidAmount},
			{"ExceedsOutstanding", ledger.RecordPaymentParams{PurchaseID: p.ID, Amount: dec("1000.01"), Method: "CASH"}, payment.ErrExceedsOutstandingBalance},
			{"UnknownMethod", ledger.RecordPaymentParams{PurchaseID: p.ID, Amount: dec("5"), Method: "CHEQUE"}, payment.ErrInvalidMethod},
			{"UnknownPurchase", ledger.RecordPaymentParams{PurchaseID: uuid.New(), Amount: dec("5"), Method: "CASH"}, ledger.ErrNotFound},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := f.svc.RecordPayment(ctx, f.admin, tt.params)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.True(t, f.outstanding(t, p.ID).Equal(dec("1000")))
			})
		}
	})

	t.Run("DefaultedPurchaseRefusesMoney", func(t *testing.T) {
		f := newFixture(t)
		p := f.creditSale(t)

		res, err := f.svc.RecordPayment(ctx, f.collector, ledger.RecordPaymentParams{
			PurchaseID: p.ID, Amount: dec("100"), Method: "CASH",
		})
		require.NoError(t, err)

		_, err = f.svc.MarkDefaulted(ctx, f.collector, p.ID)
		require.ErrorIs(t, err, auth.ErrForbidden)

		_, err = f.svc.MarkDefaulted(ctx, f.admin, p.ID)
		require.NoError(t, err)

		_, err = f.svc.RecordPayment(ctx, f.admin, ledger.RecordPaymentParams{PurchaseID: p.ID, Amount: dec("10"), Method: "CASH"})
		assert.ErrorIs(t, err, purchase.ErrPurchaseDefaulted)

		_, err = f.svc.ConfirmPayment(ctx, f.admin, res.Payment.ID)
		assert.ErrorIs(t, err, purchase.ErrPurchaseDefaulted)

		v, err := f.svc.GetPurchase(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, purchase.StatusDefaulted, v.Status)
	})
}

func TestService_ConcurrentConfirm(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.creditSale(t)

	res, err := f.svc.RecordPayment(ctx, f.collector, ledger.RecordPaymentParams{
		PurchaseID: p.ID, Amount: dec("300"), Method: "CASH",
	})
	require.NoError(t, err)

	const workers = 8

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		resolved  int
	)

	for range workers {
		wg.Go(func() {
			_, err := f.svc.ConfirmPayment(ctx, f.admin, res.Payment.ID)

			mu.Lock()
			defer mu.Unlock()

			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, payment.ErrAlreadyResolved):
				resolved++
			}
		})
	}

	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, workers-1, resolved)
	assert.True(t, f.outstanding(t, p.ID).Equal(dec("700")))
}

func TestService_EditAndCancel(t *testing.T) {
	ctx := context.Background()

	newLayaway := func(t *testing.T, f *fixture) *purchase.Purchase {
		res, err := f.svc.CreatePurchase(ctx, f.collector, ledger.CreatePurchaseParams{
			CustomerID:       f.customer,
			ShopID:           f.shop,
			Type:             purchase.TypeLayaway,
			Items:            []ledger.ItemInput{{ProductID: f.tv, Quantity: 1}},
			InstallmentCount: 2,
		})
		require.NoError(t, err)

		return res.Purchase
	}

	t.Run("EditSwapsStockAndIssuesRevision", func(t *testing.T) {
		f := newFixture(t)
		p := newLayaway(t, f)

		edited, inv, err := f.svc.EditItems(ctx, f.collector, p.ID, []ledger.ItemInput{{ProductID: f.radio, Quantity: 2}})
		require.NoError(t, err)

		assert.True(t, edited.Subtotal.Equal(dec("520")))
		assert.True(t, edited.Total.Equal(edited.Subtotal.Add(edited.Interest)))
		assert.Equal(t, 5, f.stock(t, f.tv))
		assert.Equal(t, 0, f.stock(t, f.radio))

		assert.Equal(t, "REVISION", string(inv.Kind))
		assert.True(t, inv.PreviousBalance.Equal(p.Outstanding()))
		assert.True(t, inv.NewBalance.Equal(edited.Outstanding()))
	})

	t.Run("EditOutsideShopIsForbidden", func(t *testing.T) {
		f := newFixture(t)
		p := newLayaway(t, f)
		outsider := auth.Actor{UserID: uuid.New(), Role: auth.RoleCollector, ShopID: &f.otherShop}

		for _, actor := range []auth.Actor{outsider, f.foreign} {
			_, _, err := f.svc.EditItems(ctx, actor, p.ID, []ledger.ItemInput{{ProductID: f.tv, Quantity: 4}})
			assert.ErrorIs(t, err, auth.ErrOutsideShop)
		}

		assert.Equal(t, 4, f.stock(t, f.tv))

		v, err := f.svc.GetPurchase(ctx, p.ID)
		require.NoError(t, err)
		require.Len(t, v.Purchase.Items, 1)
		assert.Equal(t, 1, v.Purchase.Items[0].Quantity)

		_, _, err = f.svc.EditItems(ctx, f.owner, p.ID, []ledger.ItemInput{{ProductID: f.tv, Quantity: 2}})
		require.NoError(t, err)
		assert.Equal(t, 3, f.stock(t, f.tv))
	})

	t.Run("EditAfterPaymentFails", func(t *testing.T) {
		f := newFixture(t)
		p := newLayaway(t, f)

		_, err := f.svc.RecordPayment(ctx, f.admin, ledger.RecordPaymentParams{PurchaseID: p.ID, Amount: dec("10"), Method: "CASH"})
		require.NoError(t, err)

		_, _, err = f.svc.EditItems(ctx, f.admin, p.ID, []ledger.ItemInput{{ProductID: f.radio, Quantity: 1}})
		assert.ErrorIs(t, err, purchase.ErrPurchaseAlreadyPaid)

		_, err = f.svc.CancelPurchase(ctx, f.admin, p.ID)
		assert.ErrorIs(t, err, purchase.ErrPurchaseAlreadyPaid)
		assert.Equal(t, 2, f.stock(t, f.radio))
	})

	t.Run("CancelRestoresStock", func(t *testing.T) {
		f := newFixture(t)
		p := newLayaway(t, f)
		assert.Equal(t, 4, f.stock(t, f.tv))

		cancelled, err := f.svc.CancelPurchase(ctx, f.admin, p.ID)
		require.NoError(t, err)
		assert.Equal(t, purchase.StatusCancelled, cancelled.Status)
		assert.Equal(t, 5, f.stock(t, f.tv))

		_, err = f.svc.RecordPayment(ctx, f.admin, ledger.RecordPaymentParams{PurchaseID: p.ID, Amount: dec("10"), Method: "CASH"})
		assert.ErrorIs(t, err, purchase.ErrPurchaseCancelled)
	})
}

func TestService_ListPurchasesByEffectiveStatus(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	due := f.now.AddDate(0, 0, 10)

	res, err := f.svc.CreatePurchase(ctx, f.admin, ledger.CreatePurchaseParams{
		CustomerID: f.customer, ShopID: f.shop, Type: purchase.TypeCredit,
		Items: []ledger.ItemInput{{ProductID: f.tv, Quantity: 1}}, InstallmentCount: 1, DueDate: &due,
	})
	require.NoError(t, err)

	late := res.Purchase
	fresh := f.creditSale(t)

	// Ten days past due with three days of grace.
	f.now = f.now.AddDate(0, 0, 20)

	overdue := purchase.StatusOverdue

	list, err := f.svc.ListPurchases(ctx, ledger.PurchaseFilter{Status: &overdue})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, late.ID, list[0].Purchase.ID)

	active := purchase.StatusActive

	list, err = f.svc.ListPurchases(ctx, ledger.PurchaseFilter{Status: &active})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, fresh.ID, list[0].Purchase.ID)

	_, err = f.svc.RecordPayment(ctx, f.admin, ledger.RecordPaymentParams{PurchaseID: late.ID, Amount: late.Outstanding(), Method: "CASH"})
	require.NoError(t, err)

	completed := purchase.StatusCompleted

	list, err = f.svc.ListPurchases(ctx, ledger.PurchaseFilter{Status: &completed})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, late.ID, list[0].Purchase.ID)
}

func TestService_Retries(t *testing.T) {
	ctx := context.Background()

	t.Run("RetriesConflicts", func(t *testing.T) {
		f := newFixture(t)
		p := f.creditSale(t)
		f.published.events = nil

		f.store.InjectConflicts(2)

		res, err := f.svc.RecordPayment(ctx, f.admin, ledger.RecordPaymentParams{PurchaseID: p.ID, Amount: dec("100"), Method: "CASH"})
		require.NoError(t, err)
		assert.True(t, res.Invoice.NewBalance.Equal(dec("900")))
		assert.True(t, f.outstanding(t, p.ID).Equal(dec("900")))
		assert.Equal(t, []events.Type{events.PaymentConfirmed}, f.published.types())
	})

	t.Run("GivesUp", func(t *testing.T) {
		f := newFixture(t, ledger.WithMaxAttempts(2))
		p := f.creditSale(t)
		f.published.events = nil

		f.store.InjectConflicts(2)

		_, err := f.svc.RecordPayment(ctx, f.admin, ledger.RecordPaymentParams{PurchaseID: p.ID, Amount: dec("100"), Method: "CASH"})
		require.ErrorIs(t, err, ledger.ErrConflict)
		assert.True(t, f.outstanding(t, p.ID).Equal(dec("1000")))
		assert.Empty(t, f.published.types())
	})
}

func TestService_TransactionBoundary(t *testing.T) {
	ctx := context.Background()
	purchaseID := uuid.New()

	tests := []struct {
		name      string
		setupMock func(repo *ledger.MockRepository, tx *ledger.MockTx)
		wantErr   error
	}{
		{
			name: "BeginError",
			setupMock: func(repo *ledger.MockRepository, _ *ledger.MockTx) {
				repo.EXPECT().Begin(gomock.Any()).Return(nil, errors.New("connection refused"))
			},
		},
		{
			name: "RollbackOnLockError",
			setupMock: func(repo *ledger.MockRepository, tx *ledger.MockTx) {
				repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
				tx.EXPECT().LockPurchase(gomock.Any(), purchaseID).Return(nil, ledger.ErrNotFound)
				tx.EXPECT().Rollback().Return(nil)
			},
			wantErr: ledger.ErrNotFound,
		},
		{
			name: "ConflictOnLockIsRetried",
			setupMock: func(repo *ledger.MockRepository, tx *ledger.MockTx) {
				repo.EXPECT().Begin(gomock.Any()).Return(tx, nil).Times(3)
				tx.EXPECT().LockPurchase(gomock.Any(), purchaseID).Return(nil, ledger.ErrConflict).Times(3)
				tx.EXPECT().Rollback().Return(nil).Times(3)
			},
			wantErr: ledger.ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := ledger.NewMockRepository(ctrl)
			tx := ledger.NewMockTx(ctrl)
			tt.setupMock(repo, tx)

			svc := ledger.NewService(repo)

			_, err := svc.RecordPayment(ctx, auth.Actor{UserID: uuid.New(), Role: auth.RoleOwner}, ledger.RecordPaymentParams{
				PurchaseID: purchaseID, Amount: dec("10"), Method: "CASH",
			})
			require.Error(t, err)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
