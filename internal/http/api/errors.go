// Package api holds what every resource handler shares: error mapping,
// JSON decoding and validation, and bearer authentication.
package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/MrJamesThe3rd/layby/internal/auth"
	"github.com/MrJamesThe3rd/layby/internal/catalog"
	"github.com/MrJamesThe3rd/layby/internal/importer"
	"github.com/MrJamesThe3rd/layby/internal/ledger"
	"github.com/MrJamesThe3rd/layby/internal/money"
	"github.com/MrJamesThe3rd/layby/internal/payment"
	"github.com/MrJamesThe3rd/layby/internal/purchase"
	"github.com/MrJamesThe3rd/layby/internal/wallet"
)

var (
	validationErrs = []error{
		money.ErrEmptyCart, money.ErrInvalidQuantity, money.ErrInvalidUnitPrice,
		money.ErrInvalidPurchaseType, money.ErrInvalidInterestType, money.ErrInvalidRate,
		money.ErrInvalidInstallmentCount, money.ErrInvalidDownPayment, money.ErrCashDownPaymentMismatch,
		payment.ErrInvalidAmount, payment.ErrInvalidMethod, payment.ErrExceedsOutstandingBalance,
		payment.ErrRejectionReasonRequired, wallet.ErrInvalidAmount, wallet.ErrInsufficientWalletBalance,
		wallet.ErrRejectionReasonRequired, purchase.ErrInvalidDueDate, importer.ErrUnknownFormat,
		errInvalidRequest,
	}

	stateErrs = []error{
		payment.ErrAlreadyResolved, wallet.ErrAlreadyResolved, wallet.ErrNotADeposit,
		purchase.ErrPurchaseDefaulted, purchase.ErrPurchaseCancelled, purchase.ErrPurchaseAlreadyPaid,
		purchase.ErrPurchaseClosed, catalog.ErrInsufficientStock, ledger.ErrConflict,
	}
)

// Status maps a ledger error onto an HTTP status.
func Status(err error) int {
	switch {
	case errors.Is(err, auth.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, auth.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ledger.ErrNotFound):
		return http.StatusNotFound
	case ledger.IsInvariantViolation(err):
		return http.StatusInternalServerError
	case isAny(err, validationErrs):
		return http.StatusUnprocessableEntity
	case isAny(err, stateErrs):
		return http.StatusConflict
	}

	return http.StatusInternalServerError
}

func isAny(err error, targets []error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}

	return false
}

type errorResponse struct {
	Error string `json:"error"`
}

// Error writes err as JSON. Internal errors are logged and hidden from the client.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	status := Status(err)
	msg := err.Error()

	if status == http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)

		msg = "internal error"
	}

	JSON(w, status, errorResponse{Error: msg})
}
