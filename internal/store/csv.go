package store

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"sync"

	"go.uber.org/zap"
)

// CSVStore keeps the log as a CSV file with a header row
// (Name,Topic,Score,Total Questions,Percentage,Date).
//
// Appends rewrite the whole file into a temporary sibling and rename it over
// the existing one, so readers only ever see the old or the new log.
type CSVStore struct {
	mu     sync.Mutex
	path   string
	logger *zap.Logger
}

var _ Store = (*CSVStore)(nil)

// NewCSV returns a store backed by the CSV file at path.
// The file is not touched until Initialize or Append.
func NewCSV(path string, logger *zap.Logger) *CSVStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CSVStore{path: path, logger: logger.Named("csv")}
}

func (s *CSVStore) Location() string { return s.path }

func (s *CSVStore) Close() error { return nil }

// Initialize creates the file with only the header row when it is absent
// or empty. Existing rows are never touched.
func (s *CSVStore) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	info, err := os.Stat(s.path)
	switch {
	case err == nil && info.Size() > 0:
		// Surface a mismatched header now rather than on first read.
		if _, err := s.readRows(); err != nil {
			return err
		}
		return nil
	case err != nil && !errors.Is(err, os.ErrNotExist):
		return &ErrStorageRead{Path: s.path, Err: err}
	}

	if err := s.writeRows(nil); err != nil {
		return err
	}
	s.logger.Debug("created results file", zap.String("path", s.path))
	return nil
}

// LoadAll reads every row. A missing file is an empty log.
func (s *CSVStore) LoadAll(ctx context.Context) (Log, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.readRows()
	if err != nil {
		s.logger.Warn("load results failed", zap.Error(err))
		return nil, err
	}

	log := make(Log, 0, len(rows))
	for i, row := range rows {
		a, err := decodeRow(row)
		if err != nil {
			// Line numbers are 1-based and the header is line 1.
			return nil, &ErrStorageRead{Path: s.path, Err: fmt.Errorf("line %d: %w", i+2, err)}
		}
		log = append(log, a)
	}
	return log, nil
}

// Append writes a as the last row.
func (s *CSVStore) Append(ctx context.Context, a Attempt) (Attempt, error) {
	rec, err := Prepare(a)
	if err != nil {
		return Attempt{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.readRows()
	if err != nil {
		return Attempt{}, err
	}
	rows = append(rows, encodeRow(rec))

	if err := s.writeRows(rows); err != nil {
		s.logger.Error("append failed", zap.String("topic", rec.Topic), zap.Error(err))
		return Attempt{}, err
	}

	s.logger.Info("appended attempt",
		zap.String("topic", rec.Topic),
		zap.Int("score", rec.Score),
		zap.Int("total", rec.TotalQuestions))
	return rec, nil
}

// readRows returns the data rows (header excluded) after checking the header.
func (s *CSVStore) readRows() ([][]string, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, &ErrStorageRead{Path: s.path, Err: err}
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}

	r := csv.NewReader(bytes.NewReader(raw))
	r.FieldsPerRecord = len(Columns())

	header, err := r.Read()
	if err != nil {
		return nil, &ErrStorageRead{Path: s.path, Err: fmt.Errorf("header: %w", err)}
	}
	// A UTF-8 BOM written by spreadsheet tools is tolerated.
	header[0] = string(bytes.TrimPrefix([]byte(header[0]), []byte("\xef\xbb\xbf")))
	if !slices.Equal(header, Columns()) {
		return nil, &ErrStorageRead{Path: s.path, Err: fmt.Errorf("unexpected header %q", header)}
	}

	var rows [][]string
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &ErrStorageRead{Path: s.path, Err: err}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// writeRows replaces the file with the header followed by rows.
func (s *CSVStore) writeRows(rows [][]string) error {
	if err := EnsureDir(s.path); err != nil {
		return &ErrStorageWrite{Path: s.path, Err: err}
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), "."+filepath.Base(s.path)+".*")
	if err != nil {
		return &ErrStorageWrite{Path: s.path, Err: err}
	}
	tmpName := tmp.Name()
	fail := func(err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return &ErrStorageWrite{Path: s.path, Err: err}
	}

	w := csv.NewWriter(tmp)
	if err := w.Write(Columns()); err != nil {
		return fail(err)
	}
	if err := w.WriteAll(rows); err != nil {
		return fail(err)
	}
	if err := tmp.Sync(); err != nil {
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &ErrStorageWrite{Path: s.path, Err: err}
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return &ErrStorageWrite{Path: s.path, Err: err}
	}
	return nil
}

func encodeRow(a Attempt) []string {
	return []string{
		a.Name,
		a.Topic,
		strconv.Itoa(a.Score),
		strconv.Itoa(a.TotalQuestions),
		strconv.FormatFloat(a.Percentage, 'f', -1, 64),
		a.Timestamp,
	}
}

func decodeRow(row []string) (Attempt, error) {
	score, err := parseInt(row[2])
	if err != nil {
		return Attempt{}, fmt.Errorf("%s: %w", ColScore, err)
	}
	total, err := parseInt(row[3])
	if err != nil {
		return Attempt{}, fmt.Errorf("%s: %w", ColTotalQuestions, err)
	}
	pct, err := strconv.ParseFloat(row[4], 64)
	if err != nil {
		return Attempt{}, fmt.Errorf("%s: %w", ColPercentage, err)
	}
	return Attempt{
		Name:           row[0],
		Topic:          row[1],
		Score:          score,
		TotalQuestions: total,
		Percentage:     pct,
		Timestamp:      row[5],
	}, nil
}

// parseInt accepts integral floats such as "2.0", which pandas writes for
// integer columns that once held a missing value.
func parseInt(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f != float64(int(f)) {
		return 0, fmt.Errorf("%q is not an integer", s)
	}
	return int(f), nil
}
