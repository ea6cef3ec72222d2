package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/layby/internal/invoice"
	"github.com/MrJamesThe3rd/layby/internal/ledger"
	"github.com/MrJamesThe3rd/layby/internal/money"
	"github.com/MrJamesThe3rd/layby/internal/payment"
	"github.com/MrJamesThe3rd/layby/internal/purchase"
	"github.com/MrJamesThe3rd/layby/internal/wallet"
)

const (
	sqlStateSerializationFailure = "40001"
	sqlStateDeadlockDetected     = "40P01"
	sqlStateUniqueViolation      = "23505"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// mapErr turns lost races into ledger.ErrConflict so the service retries them.
func mapErr(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ledger.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case sqlStateSerializationFailure, sqlStateDeadlockDetected, sqlStateUniqueViolation:
			return fmt.Errorf("%w: %s", ledger.ErrConflict, pgErr.Message)
		}
	}

	return err
}

func (s *Store) Begin(ctx context.Context) (ledger.Tx, error) {
	dbTx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}

	return &tx{tx: dbTx}, nil
}

// itemRow is the JSONB shape of a purchase line.
type itemRow struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

func encodeItems(items []purchase.Item) ([]byte, error) {
	rows := make([]itemRow, len(items))
	for i, it := range items {
		rows[i] = itemRow(it)
	}

	return json.Marshal(rows)
}

func decodeItems(raw []byte) ([]purchase.Item, error) {
	var rows []itemRow
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("decoding items: %w", err)
	}

	items := make([]purchase.Item, len(rows))
	for i, r := range rows {
		items[i] = purchase.Item(r)
	}

	return items, nil
}

const selectPurchaseColumns = `
	id, customer_id, shop_id, type, items, subtotal, interest, total, down_payment, amount_paid,
	installment_count, per_installment, interest_type, rate_percent, grace_days, max_tenor_days,
	currency_scale, due_date, status, created_by, created_at, started_at, completed_at,
	defaulted_at, cancelled_at, updated_at
`

func scanPurchase(s scanner) (*purchase.Purchase, error) {
	var (
		p            purchase.Purchase
		typ, status  string
		interestType string
		items        []byte
	)

	if err := s.Scan(
		&p.ID, &p.CustomerID, &p.ShopID, &typ, &items, &p.Subtotal, &p.Interest, &p.Total,
		&p.DownPayment, &p.AmountPaid, &p.InstallmentCount, &p.PerInstallment,
		&interestType, &p.Policy.RatePercent, &p.Policy.GraceDays, &p.Policy.MaxTenorDays,
		&p.Policy.Scale, &p.DueDate, &status, &p.CreatedBy, &p.CreatedAt, &p.StartedAt,
		&p.CompletedAt, &p.DefaultedAt, &p.CancelledAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}

	p.Type = purchase.Type(typ)
	p.Status = purchase.Status(status)
	p.Policy.InterestType = money.InterestType(interestType)

	decoded, err := decodeItems(items)
	if err != nil {
		return nil, err
	}

	p.Items = decoded

	return &p, nil
}

func (s *Store) GetPurchase(ctx context.Context, id uuid.UUID) (*purchase.Purchase, error) {
	query := `SELECT ` + selectPurchaseColumns + ` FROM purchases WHERE id = $1`

	p, err := scanPurchase(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapErr(err)
	}

	return p, nil
}

func (s *Store) ListPurchases(ctx context.Context, filter ledger.StoreFilter) ([]*purchase.Purchase, error) {
	query := `SELECT ` + selectPurchaseColumns + ` FROM purchases WHERE TRUE`

	var args []any

	argIdx := 1

	if filter.CustomerID != nil {
		query += fmt.Sprintf(" AND customer_id = $%d", argIdx)

		args = append(args, *filter.CustomerID)
		argIdx++
	}

	if filter.ShopID != nil {
		query += fmt.Sprintf(" AND shop_id = $%d", argIdx)

		args = append(args, *filter.ShopID)
		argIdx++
	}

	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, st := range filter.Statuses {
			placeholders[i] = fmt.Sprintf("$%d", argIdx)

			args = append(args, string(st))
			argIdx++
		}

		query += " AND status IN (" + strings.Join(placeholders, ", ") + ")"
	}

	query += " ORDER BY created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing purchases: %w", err)
	}
	defer rows.Close()

	var list []*purchase.Purchase

	for rows.Next() {
		p, err := scanPurchase(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning purchase: %w", err)
		}

		list = append(list, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating purchases: %w", err)
	}

	return list, nil
}

const selectPaymentColumns = `
	p.id, p.purchase_id, p.amount, p.method, p.reference, p.recorded_by, p.state,
	p.rejection_reason, p.resolved_by, p.resolved_at, p.paid_at, p.created_at
`

func scanPayment(s scanner) (*payment.Payment, error) {
	var (
		p             payment.Payment
		method, state string
	)

	if err := s.Scan(
		&p.ID, &p.PurchaseID, &p.Amount, &method, &p.Reference, &p.RecordedBy, &state,
		&p.RejectionReason, &p.ResolvedBy, &p.ResolvedAt, &p.PaidAt, &p.CreatedAt,
	); err != nil {
		return nil, err
	}

	p.Method = payment.Method(method)
	p.State = payment.State(state)

	return &p, nil
}

func (s *Store) GetPayment(ctx context.Context, id uuid.UUID) (*payment.Payment, error) {
	query := `SELECT ` + selectPaymentColumns + ` FROM payments p WHERE p.id = $1`

	p, err := scanPayment(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapErr(err)
	}

	return p, nil
}

func (s *Store) ListPayments(ctx context.Context, filter ledger.PaymentFilter) ([]*payment.Payment, error) {
	query := `SELECT ` + selectPaymentColumns + `
		FROM payments p
		JOIN purchases pu ON pu.id = p.purchase_id
		WHERE TRUE`

	var args []any

	argIdx := 1

	if filter.PurchaseID != nil {
		query += fmt.Sprintf(" AND p.purchase_id = $%d", argIdx)

		args = append(args, *filter.PurchaseID)
		argIdx++
	}

	if filter.ShopID != nil {
		query += fmt.Sprintf(" AND pu.shop_id = $%d", argIdx)

		args = append(args, *filter.ShopID)
		argIdx++
	}

	if filter.State != nil {
		query += fmt.Sprintf(" AND p.state = $%d", argIdx)

		args = append(args, string(*filter.State))
	}

	query += " ORDER BY p.created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing payments: %w", err)
	}
	defer rows.Close()

	var list []*payment.Payment

	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning payment: %w", err)
		}

		list = append(list, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating payments: %w", err)
	}

	return list, nil
}

func (s *Store) ListInvoices(ctx context.Context, purchaseID uuid.UUID) ([]*invoice.Invoice, error) {
	query := `
		SELECT id, number, kind, purchase_id, payment_id, customer_id, shop_id, items,
		       subtotal, interest, total, previous_balance, payment_amount, new_balance, issued_at
		FROM invoices
		WHERE purchase_id = $1
		ORDER BY number ASC`

	rows, err := s.db.QueryContext(ctx, query, purchaseID)
	if err != nil {
		return nil, fmt.Errorf("listing invoices: %w", err)
	}
	defer rows.Close()

	var list []*invoice.Invoice

	for rows.Next() {
		var (
			inv   invoice.Invoice
			kind  string
			items []byte
		)

		if err := rows.Scan(
			&inv.ID, &inv.Number, &kind, &inv.PurchaseID, &inv.PaymentID, &inv.CustomerID, &inv.ShopID,
			&items, &inv.Subtotal, &inv.Interest, &inv.Total, &inv.PreviousBalance, &inv.PaymentAmount,
			&inv.NewBalance, &inv.IssuedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning invoice: %w", err)
		}

		inv.Kind = invoice.Kind(kind)

		if inv.Items, err = decodeItems(items); err != nil {
			return nil, err
		}

		list = append(list, &inv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating invoices: %w", err)
	}

	return list, nil
}

const selectWalletColumns = `
	id, customer_id, shop_id, direction, amount, method, reference, state, payment_id,
	recorded_by, resolved_by, rejection_reason, created_at, confirmed_at
`

func scanWalletTransaction(s scanner) (*wallet.Transaction, error) {
	var (
		t                wallet.Transaction
		direction, state string
	)

	if err := s.Scan(
		&t.ID, &t.CustomerID, &t.ShopID, &direction, &t.Amount, &t.Method, &t.Reference, &state,
		&t.PaymentID, &t.RecordedBy, &t.ResolvedBy, &t.RejectionReason, &t.CreatedAt, &t.ConfirmedAt,
	); err != nil {
		return nil, err
	}

	t.Direction = wallet.Direction(direction)
	t.State = wallet.State(state)

	return &t, nil
}

func (s *Store) ListWalletTransactions(ctx context.Context, filter ledger.WalletFilter) ([]*wallet.Transaction, error) {
	query := `SELECT ` + selectWalletColumns + ` FROM wallet_transactions WHERE TRUE`

	var args []any

	argIdx := 1

	if filter.CustomerID != nil {
		query += fmt.Sprintf(" AND customer_id = $%d", argIdx)

		args = append(args, *filter.CustomerID)
		argIdx++
	}

	if filter.ShopID != nil {
		query += fmt.Sprintf(" AND shop_id = $%d", argIdx)

		args = append(args, *filter.ShopID)
		argIdx++
	}

	if filter.Direction != nil {
		query += fmt.Sprintf(" AND direction = $%d", argIdx)

		args = append(args, string(*filter.Direction))
		argIdx++
	}

	if filter.State != nil {
		query += fmt.Sprintf(" AND state = $%d", argIdx)

		args = append(args, string(*filter.State))
	}

	query += " ORDER BY created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing wallet transactions: %w", err)
	}
	defer rows.Close()

	var list []*wallet.Transaction

	for rows.Next() {
		t, err := scanWalletTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning wallet transaction: %w", err)
		}

		list = append(list, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating wallet transactions: %w", err)
	}

	return list, nil
}

func (s *Store) WalletBalance(ctx context.Context, customerID uuid.UUID) (decimal.Decimal, error) {
	return walletBalance(ctx, s.db, customerID)
}

const balanceQuery = `
	SELECT COALESCE(SUM(CASE
		WHEN direction = 'DEPOSIT' AND state = 'CONFIRMED' THEN amount
		WHEN direction = 'DEBIT' THEN -amount
		ELSE 0 END), 0)
	FROM wallet_transactions
	WHERE customer_id = $1`

func walletBalance(ctx context.Context, q queryer, customerID uuid.UUID) (decimal.Decimal, error) {
	var balance decimal.Decimal
	if err := q.QueryRowContext(ctx, balanceQuery, customerID).Scan(&balance); err != nil {
		return decimal.Zero, fmt.Errorf("summing wallet: %w", mapErr(err))
	}

	return balance, nil
}
