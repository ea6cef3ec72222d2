package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/layby/internal/auth"
	"github.com/MrJamesThe3rd/layby/internal/events"
	"github.com/MrJamesThe3rd/layby/internal/invoice"
	"github.com/MrJamesThe3rd/layby/internal/payment"
	"github.com/MrJamesThe3rd/layby/internal/purchase"
	"github.com/MrJamesThe3rd/layby/internal/wallet"
)

type RecordPaymentParams struct {
	PurchaseID uuid.UUID
	Amount     decimal.Decimal
	Method     payment.Method
	Reference  string
}

// RecordResult carries the invoice and completion flag only when the payment
// was effective on recording.
type RecordResult struct {
	Payment   *payment.Payment
	Purchase  *purchase.Purchase
	Invoice   *invoice.Invoice
	Completed bool
}

type ConfirmResult struct {
	Payment   *payment.Payment
	Purchase  *purchase.Purchase
	Invoice   *invoice.Invoice
	Completed bool
}

// RecordPayment records money received against a purchase. Actors holding
// confirm authority for the purchase's shop produce an effective payment;
// everyone else leaves it awaiting confirmation with balances untouched.
func (s *Service) RecordPayment(ctx context.Context, actor auth.Actor, params RecordPaymentParams) (*RecordResult, error) {
	var res *RecordResult

	err := s.inTx(ctx, "record payment", func(ctx context.Context, tx Tx, out *outbox) error {
		now := s.now()

		p, err := tx.LockPurchase(ctx, params.PurchaseID)
		if err != nil {
			return fmt.Errorf("lock purchase: %w", err)
		}

		if err := actor.RequireMember(p.ShopID); err != nil {
			return err
		}

		if err := p.AcceptsPayments(); err != nil {
			return err
		}

		if !params.Amount.IsPositive() {
			return payment.ErrInvalidAmount
		}

		if params.Amount.GreaterThan(p.Outstanding()) {
			return fmt.Errorf("%w: %s against %s", payment.ErrExceedsOutstandingBalance, params.Amount, p.Outstanding())
		}

		if params.Method == payment.MethodWallet {
			if err := checkWallet(ctx, tx, p.CustomerID, params.Amount); err != nil {
				return err
			}
		}

		effective := actor.CanConfirm(p.ShopID)

		pay, err := payment.New(payment.NewParams{
			PurchaseID: p.ID,
			Amount:     params.Amount,
			Method:     params.Method,
			Reference:  params.Reference,
			RecordedBy: actor.UserID,
		}, effective, now)
		if err != nil {
			return err
		}

		if err := tx.CreatePayment(ctx, pay); err != nil {
			return fmt.Errorf("create payment: %w", err)
		}

		res = &RecordResult{Payment: pay, Purchase: p}

		if !effective {
			out.add(paymentEvent(events.PaymentRecorded, p, pay, now))
			return nil
		}

		inv, app, err := s.makeEffective(ctx, tx, out, p, pay, now)
		if err != nil {
			return err
		}

		res.Invoice = inv
		res.Completed = app.Completed

		return nil
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}

func (s *Service) ConfirmPayment(ctx context.Context, actor auth.Actor, paymentID uuid.UUID) (*ConfirmResult, error) {
	var res *ConfirmResult

	err := s.inTx(ctx, "confirm payment", func(ctx context.Context, tx Tx, out *outbox) error {
		now := s.now()

		pay, err := tx.LockPayment(ctx, paymentID)
		if err != nil {
			return fmt.Errorf("lock payment: %w", err)
		}

		p, err := tx.LockPurchase(ctx, pay.PurchaseID)
		if err != nil {
			return fmt.Errorf("lock purchase: %w", err)
		}

		if err := actor.RequireConfirm(p.ShopID); err != nil {
			return err
		}

		if err := pay.Confirm(actor.UserID, now); err != nil {
			return err
		}

		if err := tx.UpdatePayment(ctx, pay); err != nil {
			return fmt.Errorf("update payment: %w", err)
		}

		inv, app, err := s.makeEffective(ctx, tx, out, p, pay, now)
		if err != nil {
			return err
		}

		res = &ConfirmResult{Payment: pay, Purchase: p, Invoice: inv, Completed: app.Completed}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}

func (s *Service) RejectPayment(ctx context.Context, actor auth.Actor, paymentID uuid.UUID, reason string) (*payment.Payment, error) {
	var res *payment.Payment

	err := s.inTx(ctx, "reject payment", func(ctx context.Context, tx Tx, out *outbox) error {
		now := s.now()

		pay, err := tx.LockPayment(ctx, paymentID)
		if err != nil {
			return fmt.Errorf("lock payment: %w", err)
		}

		p, err := tx.LockPurchase(ctx, pay.PurchaseID)
		if err != nil {
			return fmt.Errorf("lock purchase: %w", err)
		}

		if err := actor.RequireConfirm(p.ShopID); err != nil {
			return err
		}

		if err := pay.Reject(actor.UserID, reason, now); err != nil {
			return err
		}

		if err := tx.UpdatePayment(ctx, pay); err != nil {
			return fmt.Errorf("update payment: %w", err)
		}

		e := paymentEvent(events.PaymentRejected, p, pay, now)
		e.Reason = pay.RejectionReason
		out.add(e)

		res = pay

		return nil
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}

func (s *Service) GetPayment(ctx context.Context, id uuid.UUID) (*payment.Payment, error) {
	p, err := s.repo.GetPayment(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get payment: %w", err)
	}

	return p, nil
}

func (s *Service) ListPayments(ctx context.Context, filter PaymentFilter) ([]*payment.Payment, error) {
	list, err := s.repo.ListPayments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}

	return list, nil
}

func (s *Service) ListInvoices(ctx context.Context, purchaseID uuid.UUID) ([]*invoice.Invoice, error) {
	list, err := s.repo.ListInvoices(ctx, purchaseID)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}

	return list, nil
}

// makeEffective applies a payment that has just become effective: wallet
// debit, balance update and the progress invoice. The amount is checked
// against the balances as they are now, not as they were at recording time.
func (s *Service) makeEffective(ctx context.Context, tx Tx, out *outbox, p *purchase.Purchase, pay *payment.Payment, now time.Time) (*invoice.Invoice, purchase.Application, error) {
	if err := p.AcceptsPayments(); err != nil {
		return nil, purchase.Application{}, err
	}

	if pay.Amount.GreaterThan(p.Outstanding()) {
		return nil, purchase.Application{}, fmt.Errorf("%w: %s against %s", payment.ErrExceedsOutstandingBalance, pay.Amount, p.Outstanding())
	}

	if pay.Method == payment.MethodWallet {
		balance, err := tx.LockWallet(ctx, p.CustomerID)
		if err != nil {
			return nil, purchase.Application{}, fmt.Errorf("lock wallet: %w", err)
		}

		if pay.Amount.GreaterThan(balance) {
			return nil, purchase.Application{}, wallet.ErrInsufficientWalletBalance
		}

		debit, err := wallet.NewDebit(balance, p.CustomerID, p.ShopID, pay.ID, *pay.ResolvedBy, pay.Amount, now)
		if err != nil {
			s.logger.ErrorContext(ctx, "wallet debit rejected", "purchase_id", p.ID, "payment_id", pay.ID, "error", err)
			return nil, purchase.Application{}, err
		}

		if err := tx.CreateWalletTransaction(ctx, debit); err != nil {
			return nil, purchase.Application{}, fmt.Errorf("create wallet debit: %w", err)
		}
	}

	app, err := p.ApplyPayment(pay.Amount, now)
	if err != nil {
		s.logger.ErrorContext(ctx, "payment application rejected", "purchase_id", p.ID, "payment_id", pay.ID, "error", err)
		return nil, purchase.Application{}, err
	}

	if err := tx.UpdatePurchase(ctx, p); err != nil {
		return nil, purchase.Application{}, fmt.Errorf("update purchase: %w", err)
	}

	seq, err := tx.NextInvoiceNumber(ctx)
	if err != nil {
		return nil, purchase.Application{}, fmt.Errorf("next invoice number: %w", err)
	}

	inv := invoice.ForPayment(p, pay.ID, app, seq, now)
	if err := tx.CreateInvoice(ctx, inv); err != nil {
		return nil, purchase.Application{}, fmt.Errorf("create invoice: %w", err)
	}

	e := paymentEvent(events.PaymentConfirmed, p, pay, now)
	e.InvoiceID = &inv.ID
	out.add(e)

	if app.Completed {
		out.add(purchaseEvent(events.PurchaseCompleted, p, p.Total, now))
		out.add(purchaseEvent(events.WaybillRequested, p, p.Total, now))
	}

	return inv, app, nil
}

func checkWallet(ctx context.Context, tx Tx, customerID uuid.UUID, amount decimal.Decimal) error {
	balance, err := tx.LockWallet(ctx, customerID)
	if err != nil {
		return fmt.Errorf("lock wallet: %w", err)
	}

	if amount.GreaterThan(balance) {
		return fmt.Errorf("%w: %s against %s", wallet.ErrInsufficientWalletBalance, amount, balance)
	}

	return nil
}

func paymentEvent(t events.Type, p *purchase.Purchase, pay *payment.Payment, now time.Time) events.Event {
	e := purchaseEvent(t, p, pay.Amount, now)
	e.PaymentID = &pay.ID

	return e
}
