package money

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseType is the payment term a sale is made on.
type PurchaseType string

const (
	Cash    PurchaseType = "CASH"
	Layaway PurchaseType = "LAYAWAY"
	Credit  PurchaseType = "CREDIT"
)

func (t PurchaseType) Valid() bool {
	switch t {
	case Cash, Layaway, Credit:
		return true
	}

	return false
}

// InterestType selects how a shop charges interest on financed sales.
type InterestType string

const (
	InterestFlat    InterestType = "FLAT"
	InterestMonthly InterestType = "MONTHLY"
)

// DefaultScale is the number of minor-unit digits used when a policy leaves it unset.
const DefaultScale int32 = 2

var hundred = decimal.NewFromInt(100)

// Policy holds the financing terms of a shop.
type Policy struct {
	InterestType InterestType
	RatePercent  decimal.Decimal
	GraceDays    int
	MaxTenorDays int
	// Scale is the currency's minor-unit precision. Zero means DefaultScale.
	Scale int32
}

func (p Policy) EffectiveScale() int32 {
	if p.Scale <= 0 {
		return DefaultScale
	}

	return p.Scale
}

// Line is a single cart entry priced at sale time.
type Line struct {
	UnitPrice decimal.Decimal
	Quantity  int
}

func (l Line) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type Input struct {
	Lines            []Line
	Type             PurchaseType
	Policy           Policy
	DownPayment      decimal.Decimal
	InstallmentCount int
}

// Quote is the priced result of a cart under a policy.
type Quote struct {
	Subtotal         decimal.Decimal
	Interest         decimal.Decimal
	Total            decimal.Decimal
	DownPayment      decimal.Decimal
	AmountToFinance  decimal.Decimal
	PerInstallment   decimal.Decimal
	InstallmentCount int
	Scale            int32
}

// Calculate prices a cart. Intermediate values keep full precision; only the
// total is rounded (half-up) to the currency scale, and interest is taken as
// the difference so that Total == Subtotal + Interest holds exactly. For cash
// the total is the subtotal, so the subtotal itself is rounded.
func Calculate(in Input) (Quote, error) {
	if !in.Type.Valid() {
		return Quote{}, ErrInvalidPurchaseType
	}

	if len(in.Lines) == 0 {
		return Quote{}, ErrEmptyCart
	}

	subtotal := decimal.Zero

	for _, l := range in.Lines {
		if l.Quantity <= 0 {
			return Quote{}, ErrInvalidQuantity
		}

		if l.UnitPrice.IsNegative() {
			return Quote{}, ErrInvalidUnitPrice
		}

		subtotal = subtotal.Add(l.Total())
	}

	scale := in.Policy.EffectiveScale()

	if in.Type == Cash {
		return cashQuote(in, subtotal, scale)
	}

	n := in.InstallmentCount
	if n < 1 {
		return Quote{}, ErrInvalidInstallmentCount
	}

	interest, err := interestFor(in.Policy, subtotal, n)
	if err != nil {
		return Quote{}, err
	}

	total := subtotal.Add(interest).Round(scale)

	if in.DownPayment.IsNegative() || in.DownPayment.GreaterThan(total) {
		return Quote{}, ErrInvalidDownPayment
	}

	toFinance := total.Sub(in.DownPayment)

	return Quote{
		Subtotal:         subtotal,
		Interest:         total.Sub(subtotal),
		Total:            total,
		DownPayment:      in.DownPayment,
		AmountToFinance:  toFinance,
		PerInstallment:   toFinance.Div(decimal.NewFromInt(int64(n))).Round(scale),
		InstallmentCount: n,
		Scale:            scale,
	}, nil
}

// cashQuote settles the subtotal at the currency scale, so a cash total never
// carries interest and the down payment always equals it. The caller may hand
// in either the line sum or its rounded value.
func cashQuote(in Input, subtotal decimal.Decimal, scale int32) (Quote, error) {
	if in.InstallmentCount > 1 || in.InstallmentCount < 0 {
		return Quote{}, ErrInvalidInstallmentCount
	}

	total := subtotal.Round(scale)

	if !in.DownPayment.Equal(total) && !in.DownPayment.Equal(subtotal) {
		return Quote{}, ErrCashDownPaymentMismatch
	}

	return Quote{
		Subtotal:         total,
		Interest:         decimal.Zero,
		Total:            total,
		DownPayment:      total,
		AmountToFinance:  decimal.Zero,
		PerInstallment:   total,
		InstallmentCount: 1,
		Scale:            scale,
	}, nil
}

func interestFor(p Policy, subtotal decimal.Decimal, installments int) (decimal.Decimal, error) {
	if p.RatePercent.IsNegative() {
		return decimal.Zero, ErrInvalidRate
	}

	base := subtotal.Mul(p.RatePercent).Div(hundred)

	switch p.InterestType {
	case InterestFlat:
		return base, nil
	case InterestMonthly:
		return base.Mul(decimal.NewFromInt(int64(installments))), nil
	}

	return decimal.Zero, ErrInvalidInterestType
}

// Installment is one row of a repayment plan.
type Installment struct {
	Number  int
	DueDate time.Time
	Amount  decimal.Decimal
}

// Schedule splits the financed amount into equal installments. The last row
// absorbs the rounding remainder so the rows always sum to AmountToFinance.
// Due dates are spread evenly over tenorDays, or monthly when tenorDays is zero.
func Schedule(q Quote, start time.Time, tenorDays int) []Installment {
	n := q.InstallmentCount
	if n < 1 || !q.AmountToFinance.IsPositive() {
		return nil
	}

	per := q.AmountToFinance.Div(decimal.NewFromInt(int64(n))).Round(q.Scale)
	rows := make([]Installment, n)
	allocated := decimal.Zero

	for i := range n {
		amount := per
		if i == n-1 {
			amount = q.AmountToFinance.Sub(allocated)
		}

		allocated = allocated.Add(amount)

		due := start.AddDate(0, i+1, 0)
		if tenorDays > 0 {
			due = start.AddDate(0, 0, tenorDays*(i+1)/n)
		}

		rows[i] = Installment{Number: i + 1, DueDate: due, Amount: amount}
	}

	return rows
}
