package store

import (
	"context"
	"database/sql"
	"fmt"

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

// tx holds row locks taken with SELECT ... FOR UPDATE until it ends.
type tx struct {
	tx *sql.Tx
}

func (t *tx) Commit() error {
	if err := t.tx.Commit(); err != nil {
		return mapErr(err)
	}

	return nil
}

func (t *tx) Rollback() error { return t.tx.Rollback() }

func (t *tx) ShopPolicy(ctx context.Context, shopID uuid.UUID) (money.Policy, error) {
	query := `
		SELECT interest_type, rate_percent, grace_days, max_tenor_days, currency_scale
		FROM shops WHERE id = $1`

	var (
		p            money.Policy
		interestType string
	)

	err := t.tx.QueryRowContext(ctx, query, shopID).Scan(&interestType, &p.RatePercent, &p.GraceDays, &p.MaxTenorDays, &p.Scale)
	if err != nil {
		return money.Policy{}, mapErr(err)
	}

	p.InterestType = money.InterestType(interestType)

	return p, nil
}

func (t *tx) LockProducts(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*catalog.Product, error) {
	query := `
		SELECT id, shop_id, name, cash_price, layaway_price, credit_price, quantity
		FROM products
		WHERE id = ANY($1::uuid[])
		ORDER BY id
		FOR UPDATE`

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = id.String()
	}

	rows, err := t.tx.QueryContext(ctx, query, keys)
	if err != nil {
		return nil, fmt.Errorf("locking products: %w", mapErr(err))
	}
	defer rows.Close()

	out := make(map[uuid.UUID]*catalog.Product, len(ids))

	for rows.Next() {
		var p catalog.Product
		if err := rows.Scan(&p.ID, &p.ShopID, &p.Name, &p.CashPrice, &p.LayawayPrice, &p.CreditPrice, &p.Quantity); err != nil {
			return nil, fmt.Errorf("scanning product: %w", err)
		}

		out[p.ID] = &p
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating products: %w", mapErr(err))
	}

	return out, nil
}

func (t *tx) UpdateStock(ctx context.Context, productID uuid.UUID, quantity int) error {
	if _, err := t.tx.ExecContext(ctx, `UPDATE products SET quantity = $1 WHERE id = $2`, quantity, productID); err != nil {
		return fmt.Errorf("updating stock: %w", mapErr(err))
	}

	return nil
}

func (t *tx) CreatePurchase(ctx context.Context, p *purchase.Purchase) error {
	items, err := encodeItems(p.Items)
	if err != nil {
		return fmt.Errorf("encoding items: %w", err)
	}

	query := `
		INSERT INTO purchases (
			id, customer_id, shop_id, type, items, subtotal, interest, total, down_payment, amount_paid,
			installment_count, per_installment, interest_type, rate_percent, grace_days, max_tenor_days,
			currency_scale, due_date, status, created_by, created_at, started_at, completed_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)`

	_, err = t.tx.ExecContext(ctx, query,
		p.ID, p.CustomerID, p.ShopID, string(p.Type), items, p.Subtotal, p.Interest, p.Total,
		p.DownPayment, p.AmountPaid, p.InstallmentCount, p.PerInstallment,
		string(p.Policy.InterestType), p.Policy.RatePercent, p.Policy.GraceDays, p.Policy.MaxTenorDays,
		p.Policy.EffectiveScale(), p.DueDate, string(p.Status), p.CreatedBy, p.CreatedAt, p.StartedAt,
		p.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting purchase: %w", mapErr(err))
	}

	return nil
}

func (t *tx) LockPurchase(ctx context.Context, id uuid.UUID) (*purchase.Purchase, error) {
	query := `SELECT ` + selectPurchaseColumns + ` FROM purchases WHERE id = $1 FOR UPDATE`

	p, err := scanPurchase(t.tx.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapErr(err)
	}

	return p, nil
}

func (t *tx) UpdatePurchase(ctx context.Context, p *purchase.Purchase) error {
	items, err := encodeItems(p.Items)
	if err != nil {
		return fmt.Errorf("encoding items: %w", err)
	}

	query := `
		UPDATE purchases
		SET items = $1, subtotal = $2, interest = $3, total = $4, down_payment = $5, amount_paid = $6,
		    per_installment = $7, status = $8, completed_at = $9, defaulted_at = $10, cancelled_at = $11,
		    updated_at = $12
		WHERE id = $13`

	res, err := t.tx.ExecContext(ctx, query,
		items, p.Subtotal, p.Interest, p.Total, p.DownPayment, p.AmountPaid,
		p.PerInstallment, string(p.Status), p.CompletedAt, p.DefaultedAt, p.CancelledAt,
		p.UpdatedAt, p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating purchase: %w", mapErr(err))
	}

	return expectOne(res)
}

func (t *tx) CreatePayment(ctx context.Context, p *payment.Payment) error {
	query := `
		INSERT INTO payments (
			id, purchase_id, amount, method, reference, recorded_by, state, rejection_reason,
			resolved_by, resolved_at, paid_at, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := t.tx.ExecContext(ctx, query,
		p.ID, p.PurchaseID, p.Amount, string(p.Method), p.Reference, p.RecordedBy, string(p.State),
		p.RejectionReason, p.ResolvedBy, p.ResolvedAt, p.PaidAt, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting payment: %w", mapErr(err))
	}

	return nil
}

func (t *tx) LockPayment(ctx context.Context, id uuid.UUID) (*payment.Payment, error) {
	query := `SELECT ` + selectPaymentColumns + ` FROM payments p WHERE p.id = $1 FOR UPDATE`

	p, err := scanPayment(t.tx.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapErr(err)
	}

	return p, nil
}

func (t *tx) UpdatePayment(ctx context.Context, p *payment.Payment) error {
	query := `
		UPDATE payments
		SET state = $1, rejection_reason = $2, resolved_by = $3, resolved_at = $4, paid_at = $5
		WHERE id = $6`

	res, err := t.tx.ExecContext(ctx, query,
		string(p.State), p.RejectionReason, p.ResolvedBy, p.ResolvedAt, p.PaidAt, p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating payment: %w", mapErr(err))
	}

	return expectOne(res)
}

func (t *tx) LockWallet(ctx context.Context, customerID uuid.UUID) (decimal.Decimal, error) {
	if _, err := t.tx.ExecContext(ctx,
		`INSERT INTO wallets (customer_id) VALUES ($1) ON CONFLICT (customer_id) DO NOTHING`, customerID,
	); err != nil {
		return decimal.Zero, fmt.Errorf("opening wallet: %w", mapErr(err))
	}

	var id uuid.UUID
	if err := t.tx.QueryRowContext(ctx,
		`SELECT customer_id FROM wallets WHERE customer_id = $1 FOR UPDATE`, customerID,
	).Scan(&id); err != nil {
		return decimal.Zero, fmt.Errorf("locking wallet: %w", mapErr(err))
	}

	return walletBalance(ctx, t.tx, customerID)
}

func (t *tx) CreateWalletTransaction(ctx context.Context, w *wallet.Transaction) error {
	query := `
		INSERT INTO wallet_transactions (
			id, customer_id, shop_id, direction, amount, method, reference, state, payment_id,
			recorded_by, resolved_by, rejection_reason, created_at, confirmed_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := t.tx.ExecContext(ctx, query,
		w.ID, w.CustomerID, w.ShopID, string(w.Direction), w.Amount, w.Method, w.Reference,
		string(w.State), w.PaymentID, w.RecordedBy, w.ResolvedBy, w.RejectionReason, w.CreatedAt,
		w.ConfirmedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting wallet transaction: %w", mapErr(err))
	}

	return nil
}

func (t *tx) LockWalletTransaction(ctx context.Context, id uuid.UUID) (*wallet.Transaction, error) {
	query := `SELECT ` + selectWalletColumns + ` FROM wallet_transactions WHERE id = $1 FOR UPDATE`

	w, err := scanWalletTransaction(t.tx.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapErr(err)
	}

	return w, nil
}

func (t *tx) UpdateWalletTransaction(ctx context.Context, w *wallet.Transaction) error {
	query := `
		UPDATE wallet_transactions
		SET state = $1, resolved_by = $2, rejection_reason = $3, confirmed_at = $4
		WHERE id = $5`

	res, err := t.tx.ExecContext(ctx, query, string(w.State), w.ResolvedBy, w.RejectionReason, w.ConfirmedAt, w.ID)
	if err != nil {
		return fmt.Errorf("updating wallet transaction: %w", mapErr(err))
	}

	return expectOne(res)
}

func (t *tx) NextInvoiceNumber(ctx context.Context) (int64, error) {
	var n int64
	if err := t.tx.QueryRowContext(ctx, `SELECT nextval('invoice_number_seq')`).Scan(&n); err != nil {
		return 0, fmt.Errorf("next invoice number: %w", mapErr(err))
	}

	return n, nil
}

func (t *tx) CreateInvoice(ctx context.Context, inv *invoice.Invoice) error {
	items, err := encodeItems(inv.Items)
	if err != nil {
		return fmt.Errorf("encoding items: %w", err)
	}

	query := `
		INSERT INTO invoices (
			id, number, kind, purchase_id, payment_id, customer_id, shop_id, items, subtotal, interest,
			total, previous_balance, payment_amount, new_balance, issued_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	_, err = t.tx.ExecContext(ctx, query,
		inv.ID, inv.Number, string(inv.Kind), inv.PurchaseID, inv.PaymentID, inv.CustomerID, inv.ShopID,
		items, inv.Subtotal, inv.Interest, inv.Total, inv.PreviousBalance, inv.PaymentAmount,
		inv.NewBalance, inv.IssuedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting invoice: %w", mapErr(err))
	}

	return nil
}

func expectOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}

	if n == 0 {
		return ledger.ErrNotFound
	}

	return nil
}
