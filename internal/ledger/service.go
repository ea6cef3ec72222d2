package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/MrJamesThe3rd/layby/internal/events"
	"github.com/MrJamesThe3rd/layby/internal/purchase"
	"github.com/MrJamesThe3rd/layby/internal/wallet"
)

const defaultMaxAttempts = 3

type Service struct {
	repo        Repository
	publisher   events.Publisher
	logger      *slog.Logger
	now         func() time.Time
	maxAttempts int
}

type Option func(*Service)

func WithPublisher(p events.Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithMaxAttempts bounds how often a transaction that lost a race is re-run.
func WithMaxAttempts(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{
		repo:        repo,
		publisher:   events.Discard{},
		logger:      slog.Default(),
		now:         func() time.Time { return time.Now().UTC() },
		maxAttempts: defaultMaxAttempts,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// outbox collects events raised inside a transaction; they are published
// only once the transaction has committed.
type outbox []events.Event

func (o *outbox) add(e events.Event) {
	*o = append(*o, e)
}

type txFunc func(ctx context.Context, tx Tx, out *outbox) error

// inTx runs fn in a transaction, re-running it from scratch when the store
// reports a conflict. Nothing fn does survives a failed attempt.
func (s *Service) inTx(ctx context.Context, op string, fn txFunc) error {
	var err error

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		var out outbox

		err = s.attempt(ctx, fn, &out)
		if err == nil {
			s.publish(ctx, out)
			return nil
		}

		if !errors.Is(err, ErrConflict) {
			s.checkInvariant(op, err)
			return err
		}

		s.logger.WarnContext(ctx, "ledger transaction conflict, retrying", "op", op, "attempt", attempt, "error", err)
	}

	return fmt.Errorf("%s: giving up after %d attempts: %w", op, s.maxAttempts, err)
}

func (s *Service) attempt(ctx context.Context, fn txFunc, out *outbox) error {
	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(ctx, tx, out); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

func (s *Service) publish(ctx context.Context, out outbox) {
	for _, e := range out {
		if err := s.publisher.Publish(ctx, e); err != nil {
			s.logger.ErrorContext(ctx, "failed to publish ledger event", "type", e.Type, "event_id", e.ID, "error", err)
		}
	}
}

func (s *Service) checkInvariant(op string, err error) {
	if IsInvariantViolation(err) {
		s.logger.Error("ledger invariant violated", "op", op, "error", err)
	}
}

// IsInvariantViolation reports errors that signal a defect rather than a
// user or state error.
func IsInvariantViolation(err error) bool {
	return errors.Is(err, purchase.ErrOverpaymentInvariantViolation) ||
		errors.Is(err, purchase.ErrTotalMismatch) ||
		errors.Is(err, wallet.ErrNegativeBalance)
}
