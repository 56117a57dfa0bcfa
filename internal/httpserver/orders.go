package httpserver

import (
	"net/http"

	"glassstore/internal/checkout"
	"glassstore/internal/feedback"

	"github.com/gin-gonic/gin"
)

func (h *handlers) requireSession(c *gin.Context) bool {
	if !h.deps.Session.IsAuthenticated() {
		writeError(c, checkout.ErrNotAuthenticated)
		return false
	}
	return true
}

func (h *handlers) ordersAvailable(c *gin.Context) bool {
	if h.deps.Orders == nil {
		c.AbortWithStatusJSON(http.StatusNotFound, banner{Error: "Orders are not available.", Kind: kindNotFound})
		return false
	}
	return true
}

func (h *handlers) listOrders(c *gin.Context) {
	if !h.ordersAvailable(c) || !h.requireSession(c) {
		return
	}
	orders, err := h.deps.Orders.ListOrders(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

func (h *handlers) getOrder(c *gin.Context) {
	if !h.ordersAvailable(c) || !h.requireSession(c) {
		return
	}
	order, err := h.deps.Orders.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

func (h *handlers) listReviews(c *gin.Context) {
	if h.deps.Reviews == nil {
		c.AbortWithStatusJSON(http.StatusNotFound, banner{Error: "Reviews are not available.", Kind: kindNotFound})
		return
	}
	page, err := h.deps.Reviews.Load(c.Request.Context(), c.Param("productId"), feedback.SortOrder(c.DefaultQuery("sort", string(feedback.SortNewest))))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *handlers) createReview(c *gin.Context) {
	if h.deps.Reviews == nil {
		c.AbortWithStatusJSON(http.StatusNotFound, banner{Error: "Reviews are not available.", Kind: kindNotFound})
		return
	}
	if !h.requireSession(c) {
		return
	}
	var draft feedback.Draft
	if err := c.ShouldBindJSON(&draft); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	review, err := h.deps.Reviews.Submit(c.Request.Context(), draft)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"review": review})
}
