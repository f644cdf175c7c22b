// Package main implements the entry point for the Library API server,
// a small demonstration service exposing authors and their books over
// an authenticated REST interface.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/dnt-demos/library-api/internal/config"
	"github.com/dnt-demos/library-api/internal/platform/logger"
)

func main() {
	app, err := initializeApp(context.Background())
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.startHTTPServer(context.Background()); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// initializeApp loads configuration and sets up application components.
func initializeApp(ctx context.Context) (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("Server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel))

	app, err := newApplication(ctx, cfg, appLogger)
	if err != nil {
		return nil, err
	}

	return app, nil
}
