package main

import (
	"context"
	"errors"
	"net/http"

	"glassstore/internal/app"
	"glassstore/internal/cart"
	"glassstore/internal/catalog"
	"glassstore/internal/checkout"
	"glassstore/internal/feedback"
	"glassstore/internal/httpserver"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the storefront UI API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context())
		},
	}
}

func serve(ctx context.Context) error {
	rt, err := app.Bootstrap(ctx, "storefront")
	if err != nil {
		return err
	}
	defer rt.Close()
	logger := rt.Logger

	data, err := rt.Catalog()
	if err != nil {
		return err
	}

	gin.SetMode(gin.ReleaseMode)
	engine := cart.New()
	srv, err := httpserver.New(rt.Config.HTTPAddr, logger, httpserver.Deps{
		Session:     rt.Session,
		AdminGate:   rt.Admin,
		Catalog:     catalog.NewService(rt.Client, data, logger.WithField("component", "catalog")),
		Cart:        engine,
		Checkout:    checkout.NewFlow(rt.Client, engine, rt.Session, logger.WithField("component", "checkout")),
		Orders:      rt.Client,
		Reviews:     feedback.New(rt.Client, logger.WithField("component", "feedback")),
		Backend:     rt.Client,
		Metrics:     rt.Metrics,
		CORSOrigins: rt.Config.Origins(),
		RateLimit:   rate.Limit(rt.Config.RateLimitPerSecond),
		RateBurst:   rt.Config.RateLimitBurst,
	})
	if err != nil {
		return err
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.WithField("addr", rt.Config.HTTPAddr).Info("starting http server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown requested")
	case err := <-serverErr:
		logger.WithError(err).Error("server error")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), rt.Config.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("graceful shutdown failed")
		return err
	}
	logger.Info("server stopped")
	return nil
}
