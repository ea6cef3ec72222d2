package catalog_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/layby/internal/catalog"
	"github.com/MrJamesThe3rd/layby/internal/money"
)

func TestProduct_PriceFor(t *testing.T) {
	p := catalog.Product{
		CashPrice:    decimal.NewFromInt(100),
		LayawayPrice: decimal.NewFromInt(110),
		CreditPrice:  decimal.NewFromInt(125),
	}

	assert.True(t, p.PriceFor(money.Cash).Equal(decimal.NewFromInt(100)))
	assert.True(t, p.PriceFor(money.Layaway).Equal(decimal.NewFromInt(110)))
	assert.True(t, p.PriceFor(money.Credit).Equal(decimal.NewFromInt(125)))
}

func TestProduct_Adjust(t *testing.T) {
	p := catalog.Product{Name: "Fridge", Quantity: 2}

	require.NoError(t, p.Adjust(-2))
	assert.Equal(t, 0, p.Quantity)

	err := p.Adjust(-1)
	assert.ErrorIs(t, err, catalog.ErrInsufficientStock)
	assert.Equal(t, 0, p.Quantity)

	require.NoError(t, p.Adjust(3))
	assert.Equal(t, 3, p.Quantity)
}
