package catalog

import (
	"strconv"
	"time"

	"glassstore/internal/domain"

	"github.com/shopspring/decimal"
)

var squareInches = decimal.NewFromInt(144)

// GiftLine builds the cart line for one gift. The id embeds the time in
// milliseconds, so adding the same gift twice gives two lines.
func GiftLine(g domain.GiftProduct, now time.Time) domain.CartLine {
	return domain.CartLine{
		ID:        g.ID + "-" + strconv.FormatInt(now.UnixMilli(), 10),
		Name:      g.Name,
		UnitPrice: decimal.NewFromFloat(g.Price),
		Quantity:  1,
		Customization: map[string]interface{}{
			"type":        "gift",
			"description": g.Description,
		},
	}
}

// GlassLine builds a custom-size line for a product priced per square foot.
// Dimensions are in inches; the unit price is the price of one pane.
func GlassLine(p domain.Product, lineID string, heightIn, widthIn float64, quantity int) (domain.CartLine, error) {
	if heightIn <= 0 {
		return domain.CartLine{}, domain.Invalid("height", "must be positive")
	}
	if widthIn <= 0 {
		return domain.CartLine{}, domain.Invalid("width", "must be positive")
	}
	if quantity < 1 {
		return domain.CartLine{}, domain.Invalid("quantity", "must be at least 1")
	}

	area := decimal.NewFromFloat(heightIn).Mul(decimal.NewFromFloat(widthIn)).Div(squareInches)
	unit := decimal.NewFromFloat(p.BasePrice).Mul(area)
	return domain.CartLine{
		ID:        lineID,
		Name:      p.Name,
		UnitPrice: unit,
		Quantity:  quantity,
		Customization: map[string]interface{}{
			"type":      "custom",
			"productId": p.ID,
			"height":    heightIn,
			"width":     widthIn,
			"area":      area.Round(4).InexactFloat64(),
			"quantity":  quantity,
		},
	}, nil
}
