package httpserver

import (
	"context"
	"errors"
	"net/http"

	"glassstore/internal/apiclient"
	"glassstore/internal/checkout"
	"glassstore/internal/domain"
	"glassstore/internal/session"

	"github.com/gin-gonic/gin"
)

// Banner kinds tell the UI what went wrong without parsing the message.
const (
	kindConnection   = "connection"
	kindHTTPStatus   = "http_status"
	kindDecode       = "decode"
	kindValidation   = "validation"
	kindNotFound     = "not_found"
	kindUnauthorized = "unauthenticated"
	kindConflict     = "conflict"
	kindAdminGate    = "admin_gate"
	kindRateLimited  = "rate_limited"
	kindCanceled     = "canceled"
	kindInternal     = "internal"
)

// banner is the dismissible error payload every failed request gets.
type banner struct {
	Error     string `json:"error"`
	Kind      string `json:"kind"`
	Retryable bool   `json:"retryable"`
}

// classify maps err to a status code and banner.
func classify(err error) (int, banner) {
	var (
		connErr   *apiclient.ConnectionError
		statusErr *apiclient.HTTPStatusError
		decodeErr *apiclient.DecodeError
		vErr      *domain.ValidationError
	)
	switch {
	case errors.As(err, &vErr):
		return http.StatusBadRequest, banner{Error: vErr.Error(), Kind: kindValidation}
	case errors.As(err, &connErr):
		return http.StatusServiceUnavailable, banner{Error: connErr.Hint(), Kind: kindConnection, Retryable: true}
	case errors.As(err, &statusErr):
		b := banner{Error: statusErr.Message(), Kind: kindHTTPStatus}
		if b.Error == "" {
			b.Error = http.StatusText(statusErr.Status)
		}
		if statusErr.Status >= 500 {
			b.Retryable = true
			return http.StatusBadGateway, b
		}
		return statusErr.Status, b
	case errors.As(err, &decodeErr):
		return http.StatusBadGateway, banner{Error: "The server sent an unexpected response.", Kind: kindDecode}
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, banner{Error: "Not found", Kind: kindNotFound}
	case errors.Is(err, checkout.ErrNotAuthenticated):
		return http.StatusUnauthorized, banner{Error: "Please sign in to continue.", Kind: kindUnauthorized}
	case errors.Is(err, checkout.ErrEmptyCart):
		return http.StatusConflict, banner{Error: "Your cart is empty.", Kind: kindConflict}
	case errors.Is(err, checkout.ErrSubmissionInFlight):
		return http.StatusConflict, banner{Error: "Your order is already being placed.", Kind: kindConflict, Retryable: true}
	case errors.Is(err, session.ErrAdminLocked):
		return http.StatusTooManyRequests, banner{Error: session.Describe(err), Kind: kindAdminGate}
	case errors.Is(err, session.ErrInvalidAccessCode):
		return http.StatusForbidden, banner{Error: session.Describe(err), Kind: kindAdminGate}
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, banner{Error: "The request was cancelled.", Kind: kindCanceled, Retryable: true}
	default:
		return http.StatusInternalServerError, banner{Error: "Something went wrong. Please try again.", Kind: kindInternal, Retryable: true}
	}
}

func writeError(c *gin.Context, err error) {
	status, b := classify(err)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, b)
}

func badRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, banner{Error: msg, Kind: kindValidation})
}
