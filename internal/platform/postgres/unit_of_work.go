package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/failsafe-go/failsafe-go"

	"github.com/dnt-demos/library-api/internal/store"
)

// command is a single staged mutation, replayed inside the commit
// transaction in staging order.
type command struct {
	sql  string
	args []any
}

// unitOfWork implements store.UnitOfWork. Reads are executed immediately
// against the pool; mutations accumulate as commands until Save replays
// them in one transaction. The zero value with a gateway is ready to use.
type unitOfWork struct {
	gateway *Gateway
	staged  []command
}

var _ store.UnitOfWork = (*unitOfWork)(nil)

// Authors implements store.UnitOfWork.Authors.
func (u *unitOfWork) Authors() store.AuthorSet {
	return &authorSet{uow: u}
}

// Books implements store.UnitOfWork.Books.
func (u *unitOfWork) Books() store.BookSet {
	return &bookSet{uow: u}
}

// stage appends a mutation for the next Save.
func (u *unitOfWork) stage(sql string, args ...any) {
	u.staged = append(u.staged, command{sql: sql, args: args})
}

// Save implements store.UnitOfWork.Save. All staged commands run inside a
// single transaction; the whole transaction is retried on transient errors
// per the gateway's retry policy. After a successful commit the unit of
// work is empty again.
func (u *unitOfWork) Save(ctx context.Context) error {
	if len(u.staged) == 0 {
		return nil
	}

	err := failsafe.Run(func() error {
		return u.commit(ctx)
	}, u.gateway.retry)
	if err != nil {
		u.gateway.logger.Error("commit failed",
			slog.Int("staged_commands", len(u.staged)),
			slog.String("error", err.Error()))
		return fmt.Errorf("%w: %v", store.ErrPersistence, err)
	}

	u.staged = nil
	return nil
}

// commit replays the staged commands inside one transaction.
func (u *unitOfWork) commit(ctx context.Context) error {
	tx, err := u.gateway.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		_ = tx.Rollback(ctx)
	}()

	for _, cmd := range u.staged {
		if _, err := tx.Exec(ctx, cmd.sql, cmd.args...); err != nil {
			return fmt.Errorf("failed to execute staged command: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Discard implements store.UnitOfWork.Discard.
func (u *unitOfWork) Discard() {
	u.staged = nil
}
