package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/mateconpizza/neo/internal/sys/files"
)

// Default date format for backup names.
const defaultDateFormat = "20060102-150405"

// Backup writes a compacted copy of the database into dir and returns its
// path.
func (r *SQLite) Backup(ctx context.Context, dir string) (string, error) {
	if err := files.MkdirAll(dir); err != nil {
		return "", fmt.Errorf("%w", err)
	}

	// 20060102-150405_browser_data.db
	dest := filepath.Join(dir, fmt.Sprintf("%s_%s", r.now().Format(defaultDateFormat), r.Name()))
	slog.Info("creating SQLite backup", "src", r.Cfg.Fullpath(), "dest", dest)

	if files.Exists(dest) {
		return "", fmt.Errorf("%w: %q", ErrBackupExists, dest)
	}

	if _, err := r.DB.ExecContext(ctx, "VACUUM INTO ?", dest); err != nil {
		return "", fmt.Errorf("backup: %w", err)
	}

	if err := verifySQLiteIntegrity(ctx, dest); err != nil {
		return "", err
	}

	return dest, nil
}

// ListBackups returns the backups of this database found in dir.
func (r *SQLite) ListBackups(dir string) ([]string, error) {
	base := strings.TrimSuffix(r.Name(), ".db")
	entries, err := filepath.Glob(filepath.Join(dir, "*_"+base+".db"))
	if err != nil {
		return nil, fmt.Errorf("listing backups: %w", err)
	}

	return entries, nil
}

// verifySQLiteIntegrity checks the integrity of the SQLite database.
func verifySQLiteIntegrity(ctx context.Context, path string) error {
	slog.Debug("verifying SQLite integrity", "path", path)

	db, err := OpenDatabase(path)
	if err != nil {
		return fmt.Errorf("opening backup: %w", err)
	}

	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("error closing db", "error", err)
		}
	}()

	var result string
	if err := db.QueryRowContext(ctx, "PRAGMA integrity_check;").Scan(&result); err != nil {
		return fmt.Errorf("%w: %w", ErrDBCorrupted, err)
	}

	if result != "ok" {
		return fmt.Errorf("%w: integrity check: %q", ErrDBCorrupted, result)
	}

	slog.Debug("SQLite integrity verified", "result", result)

	return nil
}

func vacuum(ctx context.Context, r *SQLite) error {
	slog.Debug("vacuuming database")

	start := time.Now()
	if _, err := r.DB.ExecContext(ctx, "VACUUM"); err != nil {
		return fmt.Errorf("vacuum: %w", err)
	}

	slog.Debug("vacuum done", "duration", time.Since(start))

	return nil
}

// notFound maps sql.ErrNoRows to ErrRecordNotFound.
func notFound(err error, what string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w with %s", ErrRecordNotFound, what)
	}

	return fmt.Errorf("%w: %w", ErrRecordScan, err)
}

// expectAffected returns ErrRecordNotFound when res touched no rows.
func expectAffected(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}

	if n == 0 {
		return fmt.Errorf("%w with %s", ErrRecordNotFound, what)
	}

	return nil
}
