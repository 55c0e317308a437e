package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
)

// WithTx executes a function within a transaction.
func (r *SQLite) WithTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback() // ensure rollback on panic

			panic(p) // re-throw the panic after rollback
		} else if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			slog.Error("rollback error", "error", err)
		}
	}()

	if err := fn(tx); err != nil {
		return fmt.Errorf("fn transaction: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit failed: %w", err)
	}

	return nil
}

// Count returns the number of rows in the given table.
func (r *SQLite) Count(ctx context.Context, t Table) int {
	var n int
	if err := r.DB.GetContext(ctx, &n, fmt.Sprintf("SELECT COUNT(*) FROM %s", t)); err != nil {
		slog.Error("counting records", "table", t, "error", err)
		return 0
	}

	return n
}

// Tables returns the names of the tables managed by this package.
func Tables() []Table {
	t := make([]Table, 0, len(tablesAndSchemas))
	for _, s := range tablesAndSchemas {
		t = append(t, s.Name)
	}

	return t
}
