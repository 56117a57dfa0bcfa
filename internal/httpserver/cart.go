package httpserver

import (
	"net/http"
	"strings"
	"time"

	"glassstore/internal/cart"
	"glassstore/internal/catalog"
	"glassstore/internal/domain"
	"glassstore/internal/pricing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type lineView struct {
	domain.CartLine
	LineTotal string `json:"line_total"`
}

type cartView struct {
	Lines        []lineView      `json:"lines"`
	ItemCount    int             `json:"item_count"`
	Totals       pricing.Display `json:"totals"`
	FreeShipping bool            `json:"free_shipping"`
}

func (h *handlers) cartView() cartView {
	lines := h.deps.Cart.Lines()
	views := make([]lineView, 0, len(lines))
	for _, l := range lines {
		views = append(views, lineView{CartLine: l, LineTotal: l.LineTotal().StringFixed(2)})
	}
	quote := pricing.Quote(h.deps.Cart.Subtotal())
	return cartView{
		Lines:        views,
		ItemCount:    h.deps.Cart.ItemCount(),
		Totals:       quote.Display(),
		FreeShipping: quote.FreeShipping(),
	}
}

func (h *handlers) getCart(c *gin.Context) {
	c.JSON(http.StatusOK, h.cartView())
}

func (h *handlers) clearCart(c *gin.Context) {
	h.deps.Cart.Clear()
	c.JSON(http.StatusOK, h.cartView())
}

type addLineRequest struct {
	ID            string                 `json:"id"`
	ProductID     string                 `json:"product_id"`
	Name          string                 `json:"name"`
	Price         decimal.Decimal        `json:"price"`
	Quantity      int                    `json:"quantity"`
	Customization map[string]interface{} `json:"customization"`
}

func (h *handlers) addLine(c *gin.Context) {
	var req addLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	id := strings.TrimSpace(req.ID)
	if id == "" {
		base := req.ProductID
		if base == "" {
			base = "line"
		}
		id = cart.NewLineID(base)
	}
	line := domain.CartLine{
		ID:            id,
		Name:          req.Name,
		UnitPrice:     req.Price,
		Quantity:      req.Quantity,
		Customization: req.Customization,
	}
	if err := h.deps.Cart.Add(line); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, h.cartView())
}

type updateLineRequest struct {
	Name          *string                `json:"name"`
	Price         *decimal.Decimal       `json:"price"`
	Quantity      *int                   `json:"quantity"`
	Customization map[string]interface{} `json:"customization"`
}

func (h *handlers) updateLine(c *gin.Context) {
	var req updateLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	found, err := h.deps.Cart.Update(c.Param("id"), cart.Patch{
		Name:          req.Name,
		UnitPrice:     req.Price,
		Quantity:      req.Quantity,
		Customization: req.Customization,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	if !found {
		writeError(c, domain.ErrNotFound)
		return
	}
	c.JSON(http.StatusOK, h.cartView())
}

// removeLine is idempotent; removing an unknown id still returns the cart.
func (h *handlers) removeLine(c *gin.Context) {
	h.deps.Cart.Remove(c.Param("id"))
	c.JSON(http.StatusOK, h.cartView())
}

func (h *handlers) addGift(c *gin.Context) {
	g, err := h.deps.Catalog.Gift(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	if err := h.deps.Cart.Add(catalog.GiftLine(g, time.Now())); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, h.cartView())
}

type glassRequest struct {
	Height   float64 `json:"height"`
	Width    float64 `json:"width"`
	Quantity int     `json:"quantity"`
}

// addGlass adds a custom-size pane of a catalog product.
func (h *handlers) addGlass(c *gin.Context) {
	var req glassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	p, err := h.deps.Catalog.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	line, err := catalog.GlassLine(*p, cart.NewLineID(p.ID), req.Height, req.Width, req.Quantity)
	if err != nil {
		writeError(c, err)
		return
	}
	if err := h.deps.Cart.Add(line); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, h.cartView())
}
