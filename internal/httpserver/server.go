// Package httpserver is the local HTTP surface the storefront UI talks to. It
// owns no state: every handler works on the session, cart and services built
// once at process start.
package httpserver

import (
	"context"
	"net/http"
	"time"

	"glassstore/internal/apiclient"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Server wraps the HTTP server setup.
type Server struct {
	httpServer *http.Server
	logger     *logrus.Entry
}

// New builds a Server with all storefront routes.
func New(addr string, logger *logrus.Entry, deps Deps) (*Server, error) {
	router, err := buildRouter(logger, deps)
	if err != nil {
		return nil, err
	}

	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return &Server{
		httpServer: httpSrv,
		logger:     logger,
	}, nil
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

type backendHealth interface {
	Health(ctx context.Context) (*apiclient.HealthStatus, error)
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// readyHandler reports whether the backend answers its health check.
func readyHandler(backend backendHealth) gin.HandlerFunc {
	return func(c *gin.Context) {
		if backend == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "backend not configured"})
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		health, err := backend.Health(ctx)
		if err != nil {
			_, b := classify(err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": b.Error})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "backend": health.Status, "database": health.Database})
	}
}
