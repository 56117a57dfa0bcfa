package domain

import "github.com/shopspring/decimal"

// CartLine is one entry of the local cart. Customization is opaque to the cart and is
// carried through to the order unchanged (dimensions, area, gift description).
type CartLine struct {
	ID            string                 `json:"id"`
	Name          string                 `json:"name"`
	UnitPrice     decimal.Decimal        `json:"price"`
	Quantity      int                    `json:"quantity"`
	Customization map[string]interface{} `json:"customization,omitempty"`
}

// LineTotal returns unit price times quantity without rounding.
func (l CartLine) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Clone returns a copy whose customization map is not shared with l.
func (l CartLine) Clone() CartLine {
	out := l
	if l.Customization != nil {
		out.Customization = make(map[string]interface{}, len(l.Customization))
		for k, v := range l.Customization {
			out.Customization[k] = v
		}
	}
	return out
}
