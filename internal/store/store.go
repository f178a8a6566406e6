package store

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Backend names a durable log implementation.
type Backend string

const (
	BackendCSV    Backend = "csv"
	BackendSQLite Backend = "sqlite"
)

// Backends returns the supported backends.
func Backends() []Backend {
	return []Backend{BackendCSV, BackendSQLite}
}

// ParseBackend validates a backend name.
func ParseBackend(s string) (Backend, error) {
	for _, b := range Backends() {
		if string(b) == s {
			return b, nil
		}
	}
	return "", fmt.Errorf("unknown store backend %q (want csv or sqlite)", s)
}

// Store is the append-only durable log of quiz attempts.
type Store interface {
	// Initialize ensures the durable log exists. Safe to call on every start.
	Initialize(ctx context.Context) error

	// LoadAll returns every persisted attempt in append order.
	LoadAll(ctx context.Context) (Log, error)

	// Append validates a, fills in its percentage when unset and writes it
	// after all existing records. It returns the record as stored.
	Append(ctx context.Context, a Attempt) (Attempt, error)

	// Location describes where the log lives (a file path).
	Location() string

	Close() error
}

// Options configures Open.
type Options struct {
	Backend Backend
	// Path of the durable log. Empty means DefaultPath(Backend).
	Path   string
	Logger *zap.Logger
}

// Open creates the configured store and initializes it.
func Open(ctx context.Context, opts Options) (Store, error) {
	if opts.Backend == "" {
		opts.Backend = BackendCSV
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	path := opts.Path
	if path == "" {
		p, err := DefaultPath(opts.Backend)
		if err != nil {
			return nil, fmt.Errorf("resolve results path: %w", err)
		}
		path = p
	} else if err := EnsureDir(path); err != nil {
		return nil, fmt.Errorf("create results dir: %w", err)
	}

	var (
		s   Store
		err error
	)
	switch opts.Backend {
	case BackendCSV:
		s = NewCSV(path, opts.Logger)
	case BackendSQLite:
		s, err = OpenSQLite(path, opts.Logger)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown store backend %q", opts.Backend)
	}

	if err := s.Initialize(ctx); err != nil {
		s.Close()
		return nil, fmt.Errorf("initialize %s store: %w", opts.Backend, err)
	}

	opts.Logger.Info("results store ready",
		zap.String("backend", string(opts.Backend)),
		zap.String("path", s.Location()))
	return s, nil
}
