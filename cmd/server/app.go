package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/dnt-demos/library-api/internal/api"
	"github.com/dnt-demos/library-api/internal/api/middleware"
	"github.com/dnt-demos/library-api/internal/config"
	"github.com/dnt-demos/library-api/internal/platform/postgres"
	"github.com/dnt-demos/library-api/internal/store"
)

// application holds the wired-up components of the running server.
type application struct {
	config  *config.Config
	logger  *slog.Logger
	gateway store.Gateway
	router  http.Handler
}

// newApplication connects to the database, runs pending migrations and
// assembles the handlers, middleware and router.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	gateway, err := postgres.NewGateway(ctx, cfg.Database.URL, postgres.RetryConfig{
		MaxRetries: cfg.Retry.MaxRetries,
		Backoff:    time.Duration(cfg.Retry.BackoffMillis) * time.Millisecond,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := gateway.Migrate(ctx); err != nil {
		gateway.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	auth, err := middleware.NewBasicAuth(cfg.Auth.Username, cfg.Auth.Password, logger)
	if err != nil {
		gateway.Close()
		return nil, fmt.Errorf("failed to configure authentication: %w", err)
	}

	router := api.NewRouter(api.RouterDeps{
		Authors: api.NewAuthorsHandler(gateway, logger),
		Books:   api.NewBooksHandler(gateway, logger),
		Docs:    api.NewDocsHandler(logger),
		Auth:    auth,
	})

	return &application{
		config:  cfg,
		logger:  logger,
		gateway: gateway,
		router:  router,
	}, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	app.gateway.Close()
}
