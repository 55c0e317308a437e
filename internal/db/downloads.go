package db

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/mateconpizza/neo/internal/download"
)

const selectDownloads = `
    SELECT id, url, filename, filepath, status, size, downloaded, start_time,
           COALESCE(end_time, '') AS end_time
    FROM downloads`

// BeginDownload inserts a running download and returns its id.
func (r *SQLite) BeginDownload(ctx context.Context, bURL, filename, filepath string) (int64, error) {
	if strings.TrimSpace(bURL) == "" {
		return 0, ErrURLEmpty
	}

	d := download.New(bURL, filename, filepath, r.now())
	res, err := r.DB.NamedExecContext(ctx, `
    INSERT INTO downloads (url, filename, filepath, status, size, downloaded, start_time)
    VALUES (:url, :filename, :filepath, :status, :size, :downloaded, :start_time)`, &d)
	if err != nil {
		return 0, fmt.Errorf("begin download: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("begin download: %w", err)
	}

	slog.Debug("download started", "id", id, "url", bURL, "path", filepath)

	return id, nil
}

// UpdateDownloadProgress records bytes received and the expected size.
// The status is not changed.
func (r *SQLite) UpdateDownloadProgress(ctx context.Context, id, downloaded, size int64) (*download.Record, error) {
	return r.applyDownloadEvent(ctx, id, download.Progress{Received: downloaded, Total: size})
}

// FinishDownload marks the download completed or failed and stamps its end.
func (r *SQLite) FinishDownload(ctx context.Context, id int64, success bool) (*download.Record, error) {
	return r.applyDownloadEvent(ctx, id, download.Finished{Success: success})
}

// CancelDownload marks the download canceled and stamps its end.
func (r *SQLite) CancelDownload(ctx context.Context, id int64) (*download.Record, error) {
	return r.applyDownloadEvent(ctx, id, download.Canceled{})
}

// Download returns the download with the given id.
func (r *SQLite) Download(ctx context.Context, id int64) (*download.Record, error) {
	var d download.Record
	if err := r.DB.GetContext(ctx, &d, selectDownloads+" WHERE id = ?", id); err != nil {
		return nil, notFound(err, fmt.Sprintf("download id: %d", id))
	}

	return &d, nil
}

// Downloads returns every download, most recently started first.
func (r *SQLite) Downloads(ctx context.Context) ([]*download.Record, error) {
	ds := []*download.Record{}
	if err := r.DB.SelectContext(ctx, &ds, selectDownloads+" ORDER BY start_time DESC, id DESC"); err != nil {
		return nil, fmt.Errorf("downloads: %w: %w", ErrRecordScan, err)
	}

	return ds, nil
}

// applyDownloadEvent loads the record, runs the state machine and writes
// the result back inside one transaction.
func (r *SQLite) applyDownloadEvent(ctx context.Context, id int64, ev download.Event) (*download.Record, error) {
	var next download.Record
	err := r.WithTx(ctx, func(tx *sqlx.Tx) error {
		var cur download.Record
		if err := tx.GetContext(ctx, &cur, selectDownloads+" WHERE id = ?", id); err != nil {
			return notFound(err, fmt.Sprintf("download id: %d", id))
		}

		var err error
		next, err = download.Apply(cur, ev, r.now())
		if err != nil {
			return err
		}

		_, err = tx.NamedExecContext(ctx, `
      UPDATE downloads SET
        status     = :status,
        size       = :size,
        downloaded = :downloaded,
        end_time   = NULLIF(:end_time, '')
      WHERE id = :id`, &next)
		if err != nil {
			return fmt.Errorf("update download: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Debug("download updated", "id", id, "status", next.Status, "downloaded", next.Downloaded, "size", next.Size)

	return &next, nil
}
