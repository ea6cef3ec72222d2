package purchase

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/layby/internal/money"
)

type Type = money.PurchaseType

const (
	TypeCash    = money.Cash
	TypeLayaway = money.Layaway
	TypeCredit  = money.Credit
)

// Status is the stored lifecycle state of a purchase. StatusOverdue is only
// ever produced by EffectiveStatus and is never persisted.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusActive    Status = "ACTIVE"
	StatusOverdue   Status = "OVERDUE"
	StatusCompleted Status = "COMPLETED"
	StatusDefaulted Status = "DEFAULTED"
	StatusCancelled Status = "CANCELLED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusActive, StatusOverdue, StatusCompleted, StatusDefaulted, StatusCancelled:
		return true
	}

	return false
}

// Item is a line of a sale. UnitPrice is captured at sale time.
type Item struct {
	ProductID uuid.UUID
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}

func NewItem(productID uuid.UUID, name string, quantity int, unitPrice decimal.Decimal) Item {
	return Item{
		ProductID: productID,
		Name:      name,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		LineTotal: unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
	}
}

// Purchase is one sale agreement between a shop and a customer.
type Purchase struct {
	ID               uuid.UUID
	CustomerID       uuid.UUID
	ShopID           uuid.UUID
	Type             Type
	Items            []Item
	Subtotal         decimal.Decimal
	Interest         decimal.Decimal
	Total            decimal.Decimal
	DownPayment      decimal.Decimal
	AmountPaid       decimal.Decimal
	InstallmentCount int
	PerInstallment   decimal.Decimal
	Policy           money.Policy // terms in force at sale time
	DueDate          *time.Time
	Status           Status
	CreatedBy        uuid.UUID
	CreatedAt        time.Time
	StartedAt        time.Time
	CompletedAt      *time.Time
	DefaultedAt      *time.Time
	CancelledAt      *time.Time
	UpdatedAt        *time.Time
}

type NewParams struct {
	CustomerID uuid.UUID
	ShopID     uuid.UUID
	Type       Type
	Items      []Item
	Policy     money.Policy
	DueDate    *time.Time
	CreatedBy  uuid.UUID
}

// New builds a purchase from a priced quote. The down payment counts as paid.
func New(params NewParams, q money.Quote, now time.Time) (*Purchase, error) {
	if !q.Total.Equal(q.Subtotal.Add(q.Interest)) {
		return nil, ErrTotalMismatch
	}

	due, err := dueDate(params, now)
	if err != nil {
		return nil, err
	}

	p := &Purchase{
		ID:               uuid.New(),
		CustomerID:       params.CustomerID,
		ShopID:           params.ShopID,
		Type:             params.Type,
		Items:            cloneItems(params.Items),
		Policy:           params.Policy,
		DueDate:          due,
		Status:           StatusActive,
		CreatedBy:        params.CreatedBy,
		CreatedAt:        now,
		StartedAt:        now,
		AmountPaid:       q.DownPayment,
		DownPayment:      q.DownPayment,
		InstallmentCount: q.InstallmentCount,
	}
	p.setQuote(q)

	if p.Outstanding().IsZero() {
		p.Status = StatusCompleted
		p.CompletedAt = &now
	}

	return p, nil
}

func dueDate(params NewParams, now time.Time) (*time.Time, error) {
	if params.Type == TypeCash {
		return nil, nil
	}

	maxTenor := params.Policy.MaxTenorDays

	if params.DueDate != nil {
		due := *params.DueDate
		if !due.After(now) {
			return nil, fmt.Errorf("%w: due date must be in the future", ErrInvalidDueDate)
		}

		if maxTenor > 0 && due.After(now.AddDate(0, 0, maxTenor)) {
			return nil, ErrInvalidDueDate
		}

		return &due, nil
	}

	if maxTenor <= 0 {
		return nil, nil
	}

	due := now.AddDate(0, 0, maxTenor)

	return &due, nil
}

func (p *Purchase) setQuote(q money.Quote) {
	p.Subtotal = q.Subtotal
	p.Interest = q.Interest
	p.Total = q.Total
	p.PerInstallment = q.PerInstallment
}

// Outstanding is the amount still owed; it is never negative.
func (p *Purchase) Outstanding() decimal.Decimal {
	rest := p.Total.Sub(p.AmountPaid)
	if rest.IsNegative() {
		return decimal.Zero
	}

	return rest
}

// Lines returns the items in the calculator's input shape.
func (p *Purchase) Lines() []money.Line {
	lines := make([]money.Line, len(p.Items))
	for i, it := range p.Items {
		lines[i] = money.Line{UnitPrice: it.UnitPrice, Quantity: it.Quantity}
	}

	return lines
}

// Quote rebuilds the priced terms of the purchase.
func (p *Purchase) Quote() money.Quote {
	return money.Quote{
		Subtotal:         p.Subtotal,
		Interest:         p.Interest,
		Total:            p.Total,
		DownPayment:      p.DownPayment,
		AmountToFinance:  p.Total.Sub(p.DownPayment),
		PerInstallment:   p.PerInstallment,
		InstallmentCount: p.InstallmentCount,
		Scale:            p.Policy.EffectiveScale(),
	}
}

// AcceptsPayments reports whether the purchase is in a state that takes money.
func (p *Purchase) AcceptsPayments() error {
	switch p.Status {
	case StatusDefaulted:
		return ErrPurchaseDefaulted
	case StatusCancelled:
		return ErrPurchaseCancelled
	}

	return nil
}

// Application describes the balance movement caused by one effective payment.
type Application struct {
	PreviousBalance decimal.Decimal
	Amount          decimal.Decimal
	NewBalance      decimal.Decimal
	Completed       bool
}

// ApplyPayment is the only way AmountPaid changes after creation.
func (p *Purchase) ApplyPayment(amount decimal.Decimal, now time.Time) (Application, error) {
	if err := p.AcceptsPayments(); err != nil {
		return Application{}, err
	}

	prev := p.Outstanding()

	if !amount.IsPositive() || amount.GreaterThan(prev) {
		return Application{}, fmt.Errorf("%w: applying %s against %s", ErrOverpaymentInvariantViolation, amount, prev)
	}

	p.AmountPaid = p.AmountPaid.Add(amount)
	p.UpdatedAt = &now

	app := Application{PreviousBalance: prev, Amount: amount, NewBalance: p.Outstanding()}

	if app.NewBalance.IsZero() {
		p.Status = StatusCompleted
		p.CompletedAt = &now
		app.Completed = true
	}

	return app, nil
}

// ReplaceItems swaps the cart of a purchase that has not been paid into yet.
func (p *Purchase) ReplaceItems(items []Item, q money.Quote, now time.Time) error {
	if !p.AmountPaid.IsZero() {
		return ErrPurchaseAlreadyPaid
	}

	if err := p.open(); err != nil {
		return err
	}

	if !q.Total.Equal(q.Subtotal.Add(q.Interest)) {
		return ErrTotalMismatch
	}

	p.Items = cloneItems(items)
	p.DownPayment = q.DownPayment
	p.AmountPaid = q.DownPayment
	p.setQuote(q)
	p.UpdatedAt = &now

	if p.Outstanding().IsZero() {
		p.Status = StatusCompleted
		p.CompletedAt = &now
	}

	return nil
}

// MarkDefaulted records an administrative judgement that the debt is unrecoverable.
func (p *Purchase) MarkDefaulted(now time.Time) error {
	if err := p.open(); err != nil {
		return err
	}

	if p.Outstanding().IsZero() {
		return ErrPurchaseClosed
	}

	p.Status = StatusDefaulted
	p.DefaultedAt = &now
	p.UpdatedAt = &now

	return nil
}

// Cancel voids a purchase before any money was applied to it.
func (p *Purchase) Cancel(now time.Time) error {
	if !p.AmountPaid.IsZero() {
		return ErrPurchaseAlreadyPaid
	}

	if err := p.open(); err != nil {
		return err
	}

	p.Status = StatusCancelled
	p.CancelledAt = &now
	p.UpdatedAt = &now

	return nil
}

func (p *Purchase) open() error {
	switch p.Status {
	case StatusDefaulted:
		return ErrPurchaseDefaulted
	case StatusCancelled:
		return ErrPurchaseCancelled
	case StatusCompleted:
		return ErrPurchaseClosed
	}

	return nil
}

// Clone returns a deep copy.
func (p *Purchase) Clone() *Purchase {
	c := *p
	c.Items = cloneItems(p.Items)

	return &c
}

func cloneItems(items []Item) []Item {
	if items == nil {
		return nil
	}

	out := make([]Item, len(items))
	copy(out, items)

	return out
}
