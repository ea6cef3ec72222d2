package catalog

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/layby/internal/money"
)

var ErrInsufficientStock = errors.New("insufficient stock")

// Product is a shop's stock item with one price per purchase type.
type Product struct {
	ID           uuid.UUID
	ShopID       uuid.UUID
	Name         string
	CashPrice    decimal.Decimal
	LayawayPrice decimal.Decimal
	CreditPrice  decimal.Decimal
	Quantity     int
}

// PriceFor returns the price tier that applies to a sale of the given type.
func (p *Product) PriceFor(t money.PurchaseType) decimal.Decimal {
	switch t {
	case money.Layaway:
		return p.LayawayPrice
	case money.Credit:
		return p.CreditPrice
	}

	return p.CashPrice
}

// Adjust applies a stock delta: negative takes units out, positive returns them.
func (p *Product) Adjust(delta int) error {
	if p.Quantity+delta < 0 {
		return fmt.Errorf("%w: %s has %d, need %d", ErrInsufficientStock, p.Name, p.Quantity, -delta)
	}

	p.Quantity += delta

	return nil
}
