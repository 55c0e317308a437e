// Package sys wraps the operating-system facilities the shell hands work
// off to: the default browser, the file manager and the clipboard.
package sys

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/atotto/clipboard"
	"github.com/pkg/browser"
)

var (
	ErrCopyToClipboard = errors.New("copy to clipboard")
	ErrPathNotFound    = errors.New("path not found")
)

// Env retrieves an environment variable.
//
// If the environment variable is not set, returns the default value.
func Env(s, def string) string {
	if v, ok := os.LookupEnv(s); ok {
		return v
	}

	return def
}

// OpenInBrowser opens a URL in the default browser.
func OpenInBrowser(s string) error {
	if err := browser.OpenURL(s); err != nil {
		return fmt.Errorf("%w: opening in browser", err)
	}

	return nil
}

// OpenFile opens a local file with its default application.
func OpenFile(p string) error {
	if _, err := os.Stat(p); err != nil {
		return fmt.Errorf("%w: %q", ErrPathNotFound, p)
	}

	slog.Debug("opening file", "path", p)
	if err := browser.OpenFile(p); err != nil {
		return fmt.Errorf("%w: opening file", err)
	}

	return nil
}

// ShowInFolder opens the directory containing p in the file manager.
func ShowInFolder(p string) error {
	return OpenFile(filepath.Dir(p))
}

// CopyClipboard copies a string to the clipboard.
func CopyClipboard(s string) error {
	if err := clipboard.WriteAll(s); err != nil {
		return fmt.Errorf("%w: %w", ErrCopyToClipboard, err)
	}

	slog.Debug("text copied to clipboard", "text", s)

	return nil
}

// Opener hands paths and text to the desktop.
type Opener interface {
	OpenURL(s string) error
	OpenFile(p string) error
	ShowInFolder(p string) error
	Copy(s string) error
}

// Desktop is the Opener backed by the operating system.
type Desktop struct{}

func (Desktop) OpenURL(s string) error      { return OpenInBrowser(s) }
func (Desktop) OpenFile(p string) error     { return OpenFile(p) }
func (Desktop) ShowInFolder(p string) error { return ShowInFolder(p) }
func (Desktop) Copy(s string) error         { return CopyClipboard(s) }
