package db

import (
	"log/slog"
	"os"
)

func writeFile(p, content string) error {
	return os.WriteFile(p, []byte(content), 0o600)
}

func removeFile(p string) {
	for _, s := range []string{p, p + "-wal", p + "-shm"} {
		if err := os.Remove(s); err != nil && !os.IsNotExist(err) {
			slog.Error("removing test file", "path", s, "error", err)
		}
	}
}
