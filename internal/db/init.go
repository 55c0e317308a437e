package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
)

// tablesAndSchemas all tables and their schema.
var tablesAndSchemas = []Schema{
	schemaHistory,
	schemaBookmarks,
	schemaDownloads,
}

// Init creates the required tables. It is safe to call on an initialized
// database.
func (r *SQLite) Init(ctx context.Context) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		for _, s := range tablesAndSchemas {
			if err := r.tableCreate(ctx, tx, s.Name, s.SQL); err != nil {
				return fmt.Errorf("creating %q table: %w", s.Name, err)
			}

			if s.Index != "" {
				if _, err := tx.ExecContext(ctx, s.Index); err != nil {
					return fmt.Errorf("creating %q index: %w", s.Name, err)
				}
			}
		}

		return nil
	})
}

// tableCreate creates a new table with the specified name in the SQLite database.
func (r *SQLite) tableCreate(ctx context.Context, tx *sqlx.Tx, name Table, schema string) error {
	slog.Debug("creating table", "name", name)

	_, err := tx.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("error creating table: %w", err)
	}

	return nil
}

// Vacuum rebuilds the database file, repacking it into a minimal amount of
// disk space.
func (r *SQLite) Vacuum(ctx context.Context) error {
	return vacuum(ctx, r)
}

// IsInitialized reports whether every table exists.
func (r *SQLite) IsInitialized(ctx context.Context) bool {
	for _, s := range tablesAndSchemas {
		exists, err := tableExists(ctx, r, s.Name)
		if err != nil || !exists {
			slog.Warn("table does not exist", "name", s.Name, "error", err)
			return false
		}
	}

	return true
}

// tableExists checks whether a table with the specified name exists in the SQLite database.
func tableExists(ctx context.Context, r *SQLite, t Table) (bool, error) {
	var count int
	err := r.DB.GetContext(ctx, &count, "SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name = ?", t)
	if err != nil {
		slog.Error("checking if table exists", "name", t, "error", err)
		return false, fmt.Errorf("tableExists: %w", err)
	}

	return count > 0, nil
}
