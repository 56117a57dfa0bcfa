package httpserver

import (
	"net/http"
	"time"

	"glassstore/internal/domain"
	"glassstore/internal/session"

	"github.com/gin-gonic/gin"
)

type credentialsRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	AccessCode string `json:"access_code"`
}

type sessionView struct {
	Authenticated  bool         `json:"authenticated"`
	Admin          bool         `json:"admin"`
	User           *domain.User `json:"user,omitempty"`
	TokenExpiresAt *time.Time   `json:"token_expires_at,omitempty"`
}

func (h *handlers) currentSession() sessionView {
	s := h.deps.Session
	view := sessionView{
		Authenticated: s.IsAuthenticated(),
		Admin:         s.IsAdmin(),
		User:          s.User(),
	}
	if exp, ok := session.TokenExpiry(s.Token()); ok {
		view.TokenExpiresAt = &exp
	}
	return view
}

func (h *handlers) getSession(c *gin.Context) {
	c.JSON(http.StatusOK, h.currentSession())
}

func (h *handlers) login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if _, err := h.deps.Session.Login(c.Request.Context(), req.Email, req.Password); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.currentSession())
}

func (h *handlers) register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if _, err := h.deps.Session.Register(c.Request.Context(), req.Name, req.Email, req.Password); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, h.currentSession())
}

// adminLogin reports every failure with the admin copy and the attempts left.
func (h *handlers) adminLogin(c *gin.Context) {
	if h.deps.AdminGate == nil {
		c.AbortWithStatusJSON(http.StatusNotFound, banner{Error: "Admin sign-in is not available.", Kind: kindNotFound})
		return
	}
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if _, err := h.deps.AdminGate.Login(c.Request.Context(), req.Email, req.Password, req.AccessCode); err != nil {
		status, _ := classify(err)
		c.AbortWithStatusJSON(status, gin.H{
			"error":     session.Describe(err),
			"kind":      kindAdminGate,
			"retryable": false,
			"remaining": h.deps.AdminGate.Remaining(),
		})
		return
	}
	c.JSON(http.StatusOK, h.currentSession())
}

// logout ends the session and empties the cart, so the next user of this
// process starts with nothing.
func (h *handlers) logout(c *gin.Context) {
	h.deps.Cart.Clear()
	if err := h.deps.Session.Logout(c.Request.Context()); err != nil {
		h.logger.WithError(err).Warn("clear stored session")
	}
	c.JSON(http.StatusOK, h.currentSession())
}
