// Package db persists history, bookmarks and downloads in SQLite.
package db

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/mateconpizza/neo/internal/sys/files"
)

const (
	MaxOpenConns    = 10        // Maximum number of open connections
	MaxIdleConns    = 5         // Maximum number of idle connections
	MaxLifetimeConn = time.Hour // Maximum connection lifetime
)

type Table string

// SQLite is the handle to the browser database.
type SQLite struct {
	DB        *sqlx.DB `json:"-"`
	Cfg       *Cfg     `json:"db"`
	now       func() time.Time
	closeOnce sync.Once
}

// Option configures a SQLite handle.
type Option func(*SQLite)

// WithClock replaces the time source used for stored timestamps.
func WithClock(fn func() time.Time) Option {
	return func(r *SQLite) {
		r.now = fn
	}
}

// Name returns the name of the SQLite database.
func (r *SQLite) Name() string {
	return r.Cfg.Name
}

// Close closes the SQLite database connection and logs any errors encountered.
func (r *SQLite) Close() {
	s := r.Name()
	r.closeOnce.Do(func() {
		if err := r.DB.Close(); err != nil {
			slog.Error("closing database", "name", s, "error", err)
		} else {
			slog.Debug("database closed", "name", s)
		}
	})
}

// newSQLiteRepository returns a new SQLite handle.
func newSQLiteRepository(db *sqlx.DB, cfg *Cfg, opts ...Option) *SQLite {
	r := &SQLite{
		DB:  db,
		Cfg: cfg,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// New returns a handle to an existing database at p. The schema is not
// touched.
func New(p string, opts ...Option) (*SQLite, error) {
	if p == "" {
		return nil, fmt.Errorf("%w: %w", ErrDBNotFound, files.ErrPathEmpty)
	}

	c, err := NewSQLiteCfg(p)
	if err != nil {
		return nil, err
	}

	if !c.Exists() {
		return nil, fmt.Errorf("%w: %q", ErrDBNotFound, c.Fullpath())
	}

	db, err := OpenDatabase(p)
	if err != nil {
		return nil, err
	}

	return newSQLiteRepository(db, c, opts...), nil
}

// Open opens the database at p, creating the file, its directory and the
// schema when missing.
func Open(ctx context.Context, p string, opts ...Option) (*SQLite, error) {
	if p == "" {
		return nil, fmt.Errorf("%w: %w", ErrDBNotFound, files.ErrPathEmpty)
	}

	c, err := NewSQLiteCfg(p)
	if err != nil {
		return nil, err
	}

	if err := files.MkdirAll(c.Path); err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db, err := OpenDatabase(c.Fullpath())
	if err != nil {
		return nil, err
	}

	r := newSQLiteRepository(db, c, opts...)
	if err := r.Init(ctx); err != nil {
		r.Close()
		return nil, fmt.Errorf("init database: %w", err)
	}

	slog.Debug("database ready", "path", c.Fullpath())

	return r, nil
}

// OpenWithFallback opens the database at p. If that fails, it logs the
// error and opens the fallback database in the temp directory instead.
func OpenWithFallback(ctx context.Context, p, fallbackName string, opts ...Option) (*SQLite, error) {
	r, err := Open(ctx, p, opts...)
	if err == nil {
		return r, nil
	}

	tmp := filepath.Join(os.TempDir(), fallbackName)
	slog.Error("opening database, using temp dir", "path", p, "fallback", tmp, "error", err)

	r, fbErr := Open(ctx, tmp, opts...)
	if fbErr != nil {
		return nil, fmt.Errorf("%w: fallback: %w", err, fbErr)
	}

	return r, nil
}

// buildSQLiteDSN constructs a SQLite Data Source Name from a file path and
// optional parameters.
func buildSQLiteDSN(path string, params url.Values) string {
	if len(params) == 0 {
		return path
	}

	separator := "?"
	if strings.Contains(path, "?") {
		separator = "&"
	}

	return fmt.Sprintf("%s%s%s", path, separator, params.Encode())
}

// OpenDatabase opens a SQLite database at the specified path and verifies
// the connection, returning the database handle or an error.
func OpenDatabase(path string) (*sqlx.DB, error) {
	slog.Debug("opening database", "path", path)
	isTestingMode := strings.Contains(path, "mode=memory") || path == ":memory:"

	params := url.Values{}
	params.Add("_pragma", "foreign_keys(1)")
	if !isTestingMode {
		params.Add("_pragma", "journal_mode(WAL)")    // concurrent readers with one writer
		params.Add("_pragma", "synchronous(NORMAL)")  // balance performance and durability
		params.Add("_pragma", "busy_timeout(5000)")   // wait on a busy database
	}

	db, err := sqlx.Open("sqlite", buildSQLiteDSN(path, params))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Connection pool tuning
	db.SetMaxOpenConns(MaxOpenConns)
	db.SetMaxIdleConns(MaxIdleConns)
	db.SetConnMaxLifetime(MaxLifetimeConn)

	if isTestingMode {
		// every connection to a memory DSN gets its own database
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: on ping context", err)
	}

	return db, nil
}

// Cfg represents the configuration for a SQLite database.
type Cfg struct {
	Name string `json:"name"` // Name of the SQLite database
	Path string `json:"path"` // Directory holding the database
}

// Fullpath returns the full path to the SQLite database.
func (c *Cfg) Fullpath() string {
	return filepath.Join(c.Path, c.Name)
}

// Exists returns true if the SQLite database exists.
func (c *Cfg) Exists() bool {
	return files.Exists(c.Fullpath())
}

// NewSQLiteCfg returns the default settings for the database.
func NewSQLiteCfg(p string) (*Cfg, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve %q: %w", p, err)
	}

	return &Cfg{
		Path: filepath.Dir(abs),
		Name: files.EnsureSuffix(filepath.Base(abs), ".db"),
	}, nil
}
