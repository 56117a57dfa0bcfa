package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestQuoteAtThresholdChargesShipping(t *testing.T) {
	b := Quote(decimal.NewFromInt(100))
	assert.True(t, b.Shipping.Equal(decimal.NewFromInt(50)))
	assert.False(t, b.FreeShipping())
	assert.Equal(t, "18.00", b.Display().Tax)
	assert.Equal(t, "168.00", b.Display().Total)
}

func TestQuoteAboveThresholdShipsFree(t *testing.T) {
	b := Quote(decimal.NewFromInt(150))
	assert.True(t, b.Tax.Equal(decimal.NewFromInt(27)))
	assert.True(t, b.Shipping.IsZero())
	assert.True(t, b.Total.Equal(decimal.NewFromInt(177)))
	assert.Equal(t, Display{Subtotal: "150.00", Tax: "27.00", Shipping: "0.00", Total: "177.00"}, b.Display())
}

func TestQuoteDoesNotRoundIntermediates(t *testing.T) {
	b := Quote(decimal.RequireFromString("0.01"))
	assert.Equal(t, "0.0018", b.Tax.String())
	assert.Equal(t, "50.0118", b.Total.String())
	assert.Equal(t, "50.01", b.Display().Total)
}

func TestQuoteEmptyCart(t *testing.T) {
	b := Quote(decimal.Zero)
	assert.True(t, b.Tax.IsZero())
	assert.True(t, b.Total.Equal(ShippingFee))
}
