package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"go.uber.org/zap"
	"golang.org/x/mod/semver"

	// Pure Go SQLite driver (no CGO).
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// SchemaVersion is the version of the SQLite results schema. Databases
// written with a different major version are refused.
const SchemaVersion = "v1.0.0"

const (
	attemptsTable = "attempts"
	metaTable     = "schema_meta"

	colID             = "id"
	colName           = "name"
	colTopic          = "topic"
	colScore          = "score"
	colTotalQuestions = "total_questions"
	colPercentage     = "percentage"
	colDate           = "date"
	colVersion        = "version"
)

// SQLiteStore keeps the log in an SQLite table ordered by rowid.
type SQLiteStore struct {
	mu      sync.Mutex
	path    string
	db      *sql.DB
	builder *entsql.DialectBuilder
	logger  *zap.Logger
}

var _ Store = (*SQLiteStore)(nil)

// OpenSQLite connects to the SQLite database at dsn and applies the
// recommended pragmas. Call Initialize before use.
func OpenSQLite(dsn string, logger *zap.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, &ErrStorageRead{Path: dsn, Err: fmt.Errorf("open database: %w", err)}
	}
	// One connection keeps in-memory databases and pragmas consistent.
	db.SetMaxOpenConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, &ErrStorageRead{Path: dsn, Err: fmt.Errorf("apply pragmas: %w", err)}
	}

	return &SQLiteStore{
		path:    dsn,
		db:      db,
		builder: entsql.Dialect(dialect.SQLite),
		logger:  logger.Named("sqlite"),
	}, nil
}

func (s *SQLiteStore) Location() string { return s.path }

// DB returns the underlying *sql.DB for raw queries.
func (s *SQLiteStore) DB() *sql.DB { return s.db }

// Close closes the database connection.
func (s *SQLiteStore) Close() error { return s.db.Close() }

// Initialize creates the tables if needed and checks the schema version.
func (s *SQLiteStore) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	statements := []string{
		`CREATE TABLE IF NOT EXISTS attempts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			topic TEXT NOT NULL,
			score INTEGER NOT NULL CHECK (score >= 0),
			total_questions INTEGER NOT NULL CHECK (total_questions > 0),
			percentage REAL NOT NULL,
			date TEXT NOT NULL,
			CHECK (score <= total_questions)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_attempts_topic ON attempts(topic)`,
		`CREATE TABLE IF NOT EXISTS schema_meta (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			version TEXT NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			if isNotADatabase(err) {
				return &ErrStorageRead{Path: s.path, Err: fmt.Errorf("open schema: %w", err)}
			}
			return &ErrStorageWrite{Path: s.path, Err: fmt.Errorf("create schema: %w", err)}
		}
	}

	// A fresh database gets the current version; an existing one keeps its own.
	insert, args := s.builder.Insert(metaTable).
		Columns(colID, colVersion).
		Values(1, SchemaVersion).
		OnConflict(entsql.ConflictColumns(colID), entsql.DoNothing()).
		Query()
	if _, err := s.db.ExecContext(ctx, insert, args...); err != nil {
		return &ErrStorageWrite{Path: s.path, Err: fmt.Errorf("seed schema version: %w", err)}
	}

	return s.checkVersion(ctx)
}

// isNotADatabase reports whether err is SQLite refusing a file that is
// not a database.
func isNotADatabase(err error) bool {
	var se *sqlite.Error
	return errors.As(err, &se) && se.Code()&0xff == sqlite3.SQLITE_NOTADB
}

// checkVersion refuses databases whose major schema version differs.
func (s *SQLiteStore) checkVersion(ctx context.Context) error {
	query, args := s.builder.Select(colVersion).
		From(s.builder.Table(metaTable)).
		Where(entsql.EQ(colID, 1)).
		Query()

	var version string
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&version); err != nil {
		return &ErrStorageRead{Path: s.path, Err: fmt.Errorf("read schema version: %w", err)}
	}
	if !semver.IsValid(version) {
		return &ErrStorageRead{Path: s.path, Err: fmt.Errorf("invalid schema version %q", version)}
	}
	if semver.Major(version) != semver.Major(SchemaVersion) {
		return &ErrStorageRead{Path: s.path, Err: fmt.Errorf("schema version %s is incompatible with %s", version, SchemaVersion)}
	}
	return nil
}

// LoadAll returns every attempt ordered by insertion.
func (s *SQLiteStore) LoadAll(ctx context.Context) (Log, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query, args := s.builder.Select(colName, colTopic, colScore, colTotalQuestions, colPercentage, colDate).
		From(s.builder.Table(attemptsTable)).
		OrderBy(colID).
		Query()

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		s.logger.Warn("load results failed", zap.Error(err))
		return nil, &ErrStorageRead{Path: s.path, Err: fmt.Errorf("query attempts: %w", err)}
	}
	defer rows.Close()

	log := Log{}
	for rows.Next() {
		var a Attempt
		if err := rows.Scan(&a.Name, &a.Topic, &a.Score, &a.TotalQuestions, &a.Percentage, &a.Timestamp); err != nil {
			return nil, &ErrStorageRead{Path: s.path, Err: fmt.Errorf("scan attempt: %w", err)}
		}
		log = append(log, a)
	}
	if err := rows.Err(); err != nil {
		return nil, &ErrStorageRead{Path: s.path, Err: fmt.Errorf("iterate attempts: %w", err)}
	}
	return log, nil
}

// Append inserts a inside a transaction.
func (s *SQLiteStore) Append(ctx context.Context, a Attempt) (Attempt, error) {
	rec, err := Prepare(a)
	if err != nil {
		return Attempt{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	query, args := s.builder.Insert(attemptsTable).
		Columns(colName, colTopic, colScore, colTotalQuestions, colPercentage, colDate).
		Values(rec.Name, rec.Topic, rec.Score, rec.TotalQuestions, rec.Percentage, rec.Timestamp).
		Query()

	if err := s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, query, args...)
		return err
	}); err != nil {
		s.logger.Error("append failed", zap.String("topic", rec.Topic), zap.Error(err))
		return Attempt{}, &ErrStorageWrite{Path: s.path, Err: fmt.Errorf("insert attempt: %w", err)}
	}

	s.logger.Info("appended attempt",
		zap.String("topic", rec.Topic),
		zap.Int("score", rec.Score),
		zap.Int("total", rec.TotalQuestions))
	return rec, nil
}

func (s *SQLiteStore) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// applyPragmas configures SQLite for single-user use.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}
