package main

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/layby/internal/auth"
	"github.com/MrJamesThe3rd/layby/internal/catalog"
	"github.com/MrJamesThe3rd/layby/internal/events"
	"github.com/MrJamesThe3rd/layby/internal/ledger"
	"github.com/MrJamesThe3rd/layby/internal/ledger/memstore"
	"github.com/MrJamesThe3rd/layby/internal/money"
	"github.com/MrJamesThe3rd/layby/internal/payment"
	"github.com/MrJamesThe3rd/layby/internal/purchase"
)

// seedDemo builds an in-memory ledger with one shop, a few sales and
// collector-recorded money waiting for the returned admin to confirm.
func seedDemo() (*ledger.Service, auth.Actor, error) {
	ctx := context.Background()
	store := memstore.New()

	shop := uuid.New()
	store.AddShop(shop, money.Policy{
		InterestType: money.InterestFlat,
		RatePercent:  decimal.NewFromInt(10),
		GraceDays:    3,
		MaxTenorDays: 90,
	})

	fridge, phone := uuid.New(), uuid.New()
	store.AddProduct(catalog.Product{
		ID: fridge, ShopID: shop, Name: "Fridge",
		CashPrice: decimal.NewFromInt(600), LayawayPrice: decimal.NewFromInt(640), CreditPrice: decimal.NewFromInt(700),
		Quantity: 10,
	})
	store.AddProduct(catalog.Product{
		ID: phone, ShopID: shop, Name: "Phone",
		CashPrice: decimal.NewFromInt(200), LayawayPrice: decimal.NewFromInt(215), CreditPrice: decimal.NewFromInt(240),
		Quantity: 20,
	})

	admin := auth.Actor{UserID: uuid.New(), Role: auth.RoleShopAdmin, ShopID: &shop}
	collector := auth.Actor{UserID: uuid.New(), Role: auth.RoleCollector, ShopID: &shop}

	svc := ledger.NewService(store, ledger.WithPublisher(events.Discard{}))

	// An older sale whose term already ran out, so it shows up as overdue.
	past := time.Now().AddDate(0, 0, -120)
	oldSvc := ledger.NewService(store, ledger.WithPublisher(events.Discard{}), ledger.WithClock(func() time.Time { return past }))

	if _, err := oldSvc.CreatePurchase(ctx, admin, ledger.CreatePurchaseParams{
		CustomerID: uuid.New(), ShopID: shop, Type: purchase.TypeCredit,
		Items:       []ledger.ItemInput{{ProductID: phone, Quantity: 1}},
		DownPayment: decimal.NewFromInt(40), InstallmentCount: 2,
	}); err != nil {
		return nil, auth.Actor{}, fmt.Errorf("seed overdue sale: %w", err)
	}

	customers := []uuid.UUID{uuid.New(), uuid.New()}

	for i, customer := range customers {
		res, err := svc.CreatePurchase(ctx, admin, ledger.CreatePurchaseParams{
			CustomerID: customer, ShopID: shop, Type: purchase.TypeCredit,
			Items:       []ledger.ItemInput{{ProductID: fridge, Quantity: 1}},
			DownPayment: decimal.NewFromInt(100), InstallmentCount: 3,
		})
		if err != nil {
			return nil, auth.Actor{}, fmt.Errorf("seed sale: %w", err)
		}

		if _, err := svc.RecordPayment(ctx, collector, ledger.RecordPaymentParams{
			PurchaseID: res.Purchase.ID,
			Amount:     decimal.NewFromInt(int64(150 + 50*i)),
			Method:     payment.MethodMobileMoney,
			Reference:  fmt.Sprintf("MM-%04d", 1000+i),
		}); err != nil {
			return nil, auth.Actor{}, fmt.Errorf("seed payment: %w", err)
		}

		if _, err := svc.Deposit(ctx, collector, ledger.DepositParams{
			CustomerID: customer,
			ShopID:     shop,
			Amount:     decimal.NewFromInt(80),
			Method:     "CASH",
			Reference:  fmt.Sprintf("DEP-%d", i+1),
		}); err != nil {
			return nil, auth.Actor{}, fmt.Errorf("seed deposit: %w", err)
		}
	}

	return svc, admin, nil
}
