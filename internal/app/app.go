// Package app assembles the storefront runtime shared by the commands: config,
// logger, metrics, backend client, local storage and the restored session.
package app

import (
	"context"
	"fmt"
	"net/http"

	"glassstore/internal/apiclient"
	"glassstore/internal/catalog"
	"glassstore/internal/config"
	"glassstore/internal/kvstore"
	"glassstore/internal/logging"
	"glassstore/internal/metrics"
	"glassstore/internal/session"

	"github.com/sirupsen/logrus"
)

// Runtime holds the long-lived components of one process.
type Runtime struct {
	Config  config.Config
	Logger  *logrus.Entry
	Metrics *metrics.Metrics
	Client  *apiclient.Client
	Storage kvstore.Store
	Session *session.Store
	Admin   *session.AdminGate

	closeStorage func()
}

// Bootstrap loads config and wires the runtime. The stored session is restored
// before it returns; a broken stored session is discarded, not reported.
func Bootstrap(ctx context.Context, component string) (*Runtime, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return nil, err
	}
	return New(ctx, cfg, logging.New(cfg.LogLevel, cfg.LogFormat, component))
}

// New wires the runtime from an explicit config.
func New(ctx context.Context, cfg config.Config, logger *logrus.Entry) (*Runtime, error) {
	m := metrics.New()
	client := apiclient.New(apiclient.Options{
		BaseURL:    cfg.APIBaseURL,
		HTTPClient: &http.Client{Timeout: cfg.RequestTimeout},
		Logger:     logger.WithField("component", "apiclient"),
		Recorder:   m,
	})

	storage, closeStorage, err := kvstore.Open(ctx, kvstore.Options{
		Backend:   cfg.StorageBackend,
		Path:      cfg.StoragePath,
		RedisAddr: cfg.RedisAddr,
		DSN:       cfg.DBConnString,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	store := session.New(client, storage, logger.WithField("component", "session"))
	client.SetTokenStore(store)
	if err := store.Restore(ctx); err != nil {
		closeStorage()
		return nil, fmt.Errorf("restore session: %w", err)
	}

	return &Runtime{
		Config:       cfg,
		Logger:       logger,
		Metrics:      m,
		Client:       client,
		Storage:      storage,
		Session:      store,
		Admin:        session.NewAdminGate(store),
		closeStorage: closeStorage,
	}, nil
}

// Catalog returns the fallback catalog, from CatalogFile when configured.
func (r *Runtime) Catalog() (*catalog.Data, error) {
	if r.Config.CatalogFile != "" {
		return catalog.LoadFile(r.Config.CatalogFile)
	}
	return catalog.Embedded()
}

// Close releases the storage backend.
func (r *Runtime) Close() {
	if r.closeStorage != nil {
		r.closeStorage()
	}
}
