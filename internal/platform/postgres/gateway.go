// Package postgres implements the store interfaces on top of PostgreSQL
// using pgx. Schema migrations are embedded and applied through goose.
package postgres

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/failsafe-go/failsafe-go/retrypolicy"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/dnt-demos/library-api/internal/store"
)

//go:embed migrations/*.sql
var migrations embed.FS

// RetryConfig controls how commits are retried on transient failures.
type RetryConfig struct {
	// MaxRetries is the number of retry attempts after the first failure.
	MaxRetries int

	// Backoff is the initial delay between attempts; it grows
	// exponentially up to MaxBackoff.
	Backoff time.Duration

	// MaxBackoff caps the delay between attempts.
	MaxBackoff time.Duration
}

// Gateway is the PostgreSQL implementation of store.Gateway. It owns the
// connection pool and the commit retry policy shared by all units of work.
type Gateway struct {
	pool   *pgxpool.Pool
	retry  retrypolicy.RetryPolicy[any]
	logger *slog.Logger
}

// Ensure Gateway implements store.Gateway.
var _ store.Gateway = (*Gateway)(nil)

// NewGateway connects to the database at the given URL and builds the
// commit retry policy. The pool is verified with a ping before returning.
func NewGateway(
	ctx context.Context,
	databaseURL string,
	retryCfg RetryConfig,
	logger *slog.Logger,
) (*Gateway, error) {
	if logger == nil {
		logger = slog.Default()
	}

	poolCfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create database connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if retryCfg.Backoff <= 0 {
		retryCfg.Backoff = 100 * time.Millisecond
	}
	if retryCfg.MaxBackoff < retryCfg.Backoff {
		retryCfg.MaxBackoff = 10 * retryCfg.Backoff
	}

	retry := retrypolicy.Builder[any]().
		HandleIf(func(_ any, err error) bool {
			return isTransient(err)
		}).
		WithBackoff(retryCfg.Backoff, retryCfg.MaxBackoff).
		WithMaxRetries(retryCfg.MaxRetries).
		Build()

	return &Gateway{
		pool:   pool,
		retry:  retry,
		logger: logger.With(slog.String("component", "postgres_gateway")),
	}, nil
}

// Begin implements store.Gateway.Begin.
func (g *Gateway) Begin() store.UnitOfWork {
	return &unitOfWork{gateway: g}
}

// Migrate implements store.Gateway.Migrate. It runs all pending goose
// migrations from the embedded filesystem against the pool.
func (g *Gateway) Migrate(ctx context.Context) error {
	goose.SetBaseFS(migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	db := stdlib.OpenDBFromPool(g.pool)
	defer func() {
		if err := db.Close(); err != nil {
			g.logger.Warn("failed to close migration connection", slog.String("error", err.Error()))
		}
	}()

	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	g.logger.Info("database migrations applied")
	return nil
}

// Close implements store.Gateway.Close.
func (g *Gateway) Close() {
	g.pool.Close()
	g.logger.Info("database connection pool closed")
}

// isTransient reports whether an error is worth retrying: connection
// failures, serialization failures and deadlocks. Constraint violations
// and other logic errors are never retried.
func isTransient(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, sql.ErrConnDone) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01": // serialization_failure, deadlock_detected
			return true
		}
		// Class 08: connection exceptions.
		if len(pgErr.Code) >= 2 && pgErr.Code[:2] == "08" {
			return true
		}
		return false
	}

	return pgconn.SafeToRetry(err)
}
