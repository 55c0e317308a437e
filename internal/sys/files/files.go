// Package files provides utilities for working with files/directories.
package files

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrFileNotFound = errors.New("file not found")
	ErrPathEmpty    = errors.New("path is empty")
)

// Default permissions.
const (
	DirPerm  os.FileMode = 0o755
	FilePerm os.FileMode = 0o600
)

// Exists checks if a file exists.
func Exists(s string) bool {
	_, err := os.Stat(s)
	return !os.IsNotExist(err)
}

// Size returns the size of a file; 0 when it cannot be read.
func Size(f string) int64 {
	fi, err := os.Stat(f)
	if err != nil {
		return 0
	}

	return fi.Size()
}

// mkdir creates a new directory at the specified path.
func mkdir(s string) error {
	if Exists(s) {
		return nil
	}

	slog.Debug("creating path", "path", s)
	if err := os.MkdirAll(s, DirPerm); err != nil {
		return fmt.Errorf("creating %s: %w", s, err)
	}

	return nil
}

// MkdirAll creates all the given paths.
func MkdirAll(s ...string) error {
	for _, path := range s {
		if path == "" {
			return ErrPathEmpty
		}
		if err := mkdir(path); err != nil {
			return err
		}
	}

	return nil
}

// WriteAtomic writes data to a temp file next to p and renames it over p.
func WriteAtomic(p string, data []byte) error {
	if p == "" {
		return ErrPathEmpty
	}

	dir := filepath.Dir(p)
	if err := mkdir(dir); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(p)+"-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}

	name := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		closeAndClean(tmp)
		return fmt.Errorf("writing temp file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(name)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Chmod(name, FilePerm); err != nil {
		slog.Warn("setting file permissions", "path", name, "error", err)
	}

	if err := os.Rename(name, p); err != nil {
		_ = os.Remove(name)
		return fmt.Errorf("replacing %q: %w", p, err)
	}

	return nil
}

// closeAndClean closes the provided file and deletes it.
func closeAndClean(f *os.File) {
	if err := f.Close(); err != nil {
		slog.Error("closing temp file", "error", err)
	}
	if err := os.Remove(f.Name()); err != nil {
		slog.Error("removing temp file", "error", err)
	}
}

// EnsureSuffix appends the specified suffix to the filename.
func EnsureSuffix(s, suffix string) string {
	if s == "" || strings.HasSuffix(s, suffix) {
		return s
	}

	return s + suffix
}

// ExpandHomeDir expands a leading "~/" to the user's home.
func ExpandHomeDir(s string) string {
	if s == "~" || strings.HasPrefix(s, "~/") {
		dirname, err := os.UserHomeDir()
		if err != nil {
			return s
		}

		return filepath.Join(dirname, strings.TrimPrefix(s[1:], "/"))
	}

	return s
}
