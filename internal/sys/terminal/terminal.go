// Package terminal reports on the process's standard streams.
package terminal

import (
	"os"

	"golang.org/x/term"
)

// MaxWidth is the widest a table is rendered.
var MaxWidth = 120

// IsPiped returns true if the input is piped.
func IsPiped() bool {
	fileInfo, err := os.Stdin.Stat()
	if err != nil {
		return false
	}

	return (fileInfo.Mode() & os.ModeCharDevice) == 0
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Width returns the width of stdout, capped at MaxWidth. Non-terminals
// report MaxWidth.
func Width() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return MaxWidth
	}

	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return MaxWidth
	}

	return min(w, MaxWidth)
}
