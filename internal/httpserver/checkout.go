package httpserver

import (
	"net/http"

	"glassstore/internal/checkout"

	"github.com/gin-gonic/gin"
)

func (h *handlers) quote(c *gin.Context) {
	q := h.deps.Checkout.Quote()
	c.JSON(http.StatusOK, gin.H{
		"breakdown":     q,
		"display":       q.Display(),
		"free_shipping": q.FreeShipping(),
	})
}

func (h *handlers) submitOrder(c *gin.Context) {
	var req checkout.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	receipt, err := h.deps.Checkout.Submit(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	if h.deps.Metrics != nil {
		h.deps.Metrics.OrderPlaced()
	}
	c.JSON(http.StatusCreated, receipt)
}

func (h *handlers) pay(c *gin.Context) {
	var req checkout.PaymentDetails
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	res, err := h.deps.Checkout.Pay(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
