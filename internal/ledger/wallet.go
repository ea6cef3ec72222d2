package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/layby/internal/auth"
	"github.com/MrJamesThe3rd/layby/internal/events"
	"github.com/MrJamesThe3rd/layby/internal/wallet"
)

type DepositParams struct {
	CustomerID uuid.UUID
	ShopID     uuid.UUID
	Amount     decimal.Decimal
	Method     string
	Reference  string
}

// Deposit tops up a customer's wallet. Like payments, it only counts once an
// actor with confirm authority for the shop has recorded or confirmed it.
func (s *Service) Deposit(ctx context.Context, actor auth.Actor, params DepositParams) (*wallet.Transaction, error) {
	if err := actor.RequireMember(params.ShopID); err != nil {
		return nil, err
	}

	var res *wallet.Transaction

	err := s.inTx(ctx, "deposit", func(ctx context.Context, tx Tx, out *outbox) error {
		now := s.now()

		if _, err := tx.LockWallet(ctx, params.CustomerID); err != nil {
			return fmt.Errorf("lock wallet: %w", err)
		}

		t, err := wallet.NewDeposit(wallet.DepositParams{
			CustomerID: params.CustomerID,
			ShopID:     params.ShopID,
			Amount:     params.Amount,
			Method:     params.Method,
			Reference:  params.Reference,
			RecordedBy: actor.UserID,
		}, actor.CanConfirm(params.ShopID), now)
		if err != nil {
			return err
		}

		if err := tx.CreateWalletTransaction(ctx, t); err != nil {
			return fmt.Errorf("create deposit: %w", err)
		}

		if t.State == wallet.StateConfirmed {
			out.add(depositEvent(events.DepositConfirmed, t))
		}

		res = t

		return nil
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}

func (s *Service) ConfirmDeposit(ctx context.Context, actor auth.Actor, id uuid.UUID) (*wallet.Transaction, error) {
	return s.resolveDeposit(ctx, actor, id, "confirm deposit", func(t *wallet.Transaction) error {
		return t.Confirm(actor.UserID, s.now())
	})
}

func (s *Service) RejectDeposit(ctx context.Context, actor auth.Actor, id uuid.UUID, reason string) (*wallet.Transaction, error) {
	return s.resolveDeposit(ctx, actor, id, "reject deposit", func(t *wallet.Transaction) error {
		return t.Reject(actor.UserID, reason, s.now())
	})
}

func (s *Service) resolveDeposit(ctx context.Context, actor auth.Actor, id uuid.UUID, op string, resolve func(*wallet.Transaction) error) (*wallet.Transaction, error) {
	var res *wallet.Transaction

	err := s.inTx(ctx, op, func(ctx context.Context, tx Tx, out *outbox) error {
		t, err := tx.LockWalletTransaction(ctx, id)
		if err != nil {
			return fmt.Errorf("lock deposit: %w", err)
		}

		if err := actor.RequireConfirm(t.ShopID); err != nil {
			return err
		}

		if _, err := tx.LockWallet(ctx, t.CustomerID); err != nil {
			return fmt.Errorf("lock wallet: %w", err)
		}

		if err := resolve(t); err != nil {
			return err
		}

		if err := tx.UpdateWalletTransaction(ctx, t); err != nil {
			return fmt.Errorf("update deposit: %w", err)
		}

		if t.State == wallet.StateConfirmed {
			out.add(depositEvent(events.DepositConfirmed, t))
		} else {
			e := depositEvent(events.DepositRejected, t)
			e.Reason = t.RejectionReason
			out.add(e)
		}

		res = t

		return nil
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}

func (s *Service) WalletBalance(ctx context.Context, customerID uuid.UUID) (decimal.Decimal, error) {
	balance, err := s.repo.WalletBalance(ctx, customerID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("wallet balance: %w", err)
	}

	return balance, nil
}

func (s *Service) ListWalletTransactions(ctx context.Context, filter WalletFilter) ([]*wallet.Transaction, error) {
	list, err := s.repo.ListWalletTransactions(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list wallet transactions: %w", err)
	}

	return list, nil
}

// ListDeposits lists a customer's deposits, newest first.
func (s *Service) ListDeposits(ctx context.Context, customerID uuid.UUID) ([]*wallet.Transaction, error) {
	dir := wallet.DirectionDeposit

	return s.ListWalletTransactions(ctx, WalletFilter{CustomerID: &customerID, Direction: &dir})
}

func depositEvent(t events.Type, tx *wallet.Transaction) events.Event {
	e := events.New(t, tx.CustomerID, tx.ShopID, tx.Amount, tx.CreatedAt)
	e.DepositID = &tx.ID

	return e
}
