package store

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultPath resolves the durable log path in priority order:
// 1. QUIZDASH_DATA environment variable
// 2. $XDG_DATA_HOME/quizdash/results.<ext>
// 3. ~/.local/share/quizdash/results.<ext>
func DefaultPath(b Backend) (string, error) {
	if p := os.Getenv("QUIZDASH_DATA"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "quizdash", "results"+extension(b))
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}

func extension(b Backend) string {
	if b == BackendSQLite {
		return ".db"
	}
	return ".csv"
}
