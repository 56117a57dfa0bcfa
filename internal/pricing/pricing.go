// Package pricing derives tax, shipping and totals from a cart subtotal.
package pricing

import "github.com/shopspring/decimal"

var (
	// TaxRate is applied to the subtotal.
	TaxRate = decimal.RequireFromString("0.18")
	// FreeShippingThreshold is exclusive: a subtotal must be above it to ship free.
	FreeShippingThreshold = decimal.NewFromInt(100)
	ShippingFee           = decimal.NewFromInt(50)
)

// Breakdown holds unrounded amounts. Use Display for presentation.
type Breakdown struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Shipping decimal.Decimal `json:"shipping"`
	Total    decimal.Decimal `json:"total"`
}

// Quote prices a subtotal.
func Quote(subtotal decimal.Decimal) Breakdown {
	tax := subtotal.Mul(TaxRate)
	shipping := ShippingFee
	if subtotal.GreaterThan(FreeShippingThreshold) {
		shipping = decimal.Zero
	}
	return Breakdown{
		Subtotal: subtotal,
		Tax:      tax,
		Shipping: shipping,
		Total:    subtotal.Add(tax).Add(shipping),
	}
}

// FreeShipping reports whether the breakdown ships for free.
func (b Breakdown) FreeShipping() bool {
	return b.Shipping.IsZero()
}

// Display is a Breakdown rendered with two decimals.
type Display struct {
	Subtotal string `json:"subtotal"`
	Tax      string `json:"tax"`
	Shipping string `json:"shipping"`
	Total    string `json:"total"`
}

func (b Breakdown) Display() Display {
	return Display{
		Subtotal: b.Subtotal.StringFixed(2),
		Tax:      b.Tax.StringFixed(2),
		Shipping: b.Shipping.StringFixed(2),
		Total:    b.Total.StringFixed(2),
	}
}
