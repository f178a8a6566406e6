package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openTestStores returns one initialized store per backend, each backed by
// a fresh file in a temp dir.
func openTestStores(t *testing.T) map[Backend]Store {
	t.Helper()
	stores := make(map[Backend]Store)
	for _, b := range Backends() {
		s, err := Open(context.Background(), Options{
			Backend: b,
			Path:    filepath.Join(t.TempDir(), "results"+extension(b)),
		})
		require.NoError(t, err, "open %s store", b)
		t.Cleanup(func() { s.Close() })
		stores[b] = s
	}
	return stores
}

func sampleAttempt(topic string, score, total int) Attempt {
	return Attempt{
		Name:           "Ada",
		Topic:          topic,
		Score:          score,
		TotalQuestions: total,
		Timestamp:      "2026-03-01 10:15",
	}
}

func TestStore_EmptyLog(t *testing.T) {
	for b, s := range openTestStores(t) {
		t.Run(string(b), func(t *testing.T) {
			log, err := s.LoadAll(context.Background())
			require.NoError(t, err)
			assert.Empty(t, log)
		})
	}
}

func TestStore_AppendThenLoad(t *testing.T) {
	ctx := context.Background()
	for b, s := range openTestStores(t) {
		t.Run(string(b), func(t *testing.T) {
			first, err := s.Append(ctx, sampleAttempt("Streamlit", 1, 2))
			require.NoError(t, err)
			assert.Equal(t, 50.0, first.Percentage)

			before, err := s.LoadAll(ctx)
			require.NoError(t, err)

			r := sampleAttempt("Jupyter", 2, 3)
			r.Name = "Grace, \"the\" admiral"
			stored, err := s.Append(ctx, r)
			require.NoError(t, err)

			after, err := s.LoadAll(ctx)
			require.NoError(t, err)
			require.Len(t, after, len(before)+1)
			assert.Equal(t, before, after[:len(before)], "prior records changed")
			assert.Equal(t, stored, after[len(after)-1])
			assert.Equal(t, Percent(2, 3), after[len(after)-1].Percentage)
		})
	}
}

func TestStore_AppendRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	for b, s := range openTestStores(t) {
		t.Run(string(b), func(t *testing.T) {
			_, err := s.Append(ctx, sampleAttempt("Streamlit", 2, 2))
			require.NoError(t, err)
			before, err := s.LoadAll(ctx)
			require.NoError(t, err)

			_, err = s.Append(ctx, sampleAttempt("Streamlit", 3, 2))
			var ve *ErrValidation
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, "Score", ve.Field)

			after, err := s.LoadAll(ctx)
			require.NoError(t, err)
			assert.Equal(t, before, after)
		})
	}
}

func TestStore_TextFieldsRoundTrip(t *testing.T) {
	ctx := context.Background()
	for b, s := range openTestStores(t) {
		t.Run(string(b), func(t *testing.T) {
			r := sampleAttempt("Jupyter\tNotebooks", 1, 2)
			r.Name = "Ada\nLovelace, \"Countess\""
			stored, err := s.Append(ctx, r)
			require.NoError(t, err)

			log, err := s.LoadAll(ctx)
			require.NoError(t, err)
			require.Len(t, log, 1)
			assert.Equal(t, stored, log[0])
			assert.Equal(t, r.Name, log[0].Name)
			assert.Equal(t, r.Topic, log[0].Topic)
		})
	}
}

func TestStore_AppendRejectsCarriageReturn(t *testing.T) {
	ctx := context.Background()
	for b, s := range openTestStores(t) {
		t.Run(string(b), func(t *testing.T) {
			crName := sampleAttempt("Jupyter", 1, 2)
			crName.Name = "Ada\r\nLovelace"
			crTopic := sampleAttempt("Jupyter\r", 1, 2)

			for _, r := range []Attempt{crName, crTopic} {
				_, err := s.Append(ctx, r)
				var ve *ErrValidation
				require.ErrorAs(t, err, &ve)
			}

			log, err := s.LoadAll(ctx)
			require.NoError(t, err)
			assert.Empty(t, log)
		})
	}
}

func TestStore_InitializeIdempotent(t *testing.T) {
	ctx := context.Background()
	for b, s := range openTestStores(t) {
		t.Run(string(b), func(t *testing.T) {
			_, err := s.Append(ctx, sampleAttempt("Jupyter", 1, 2))
			require.NoError(t, err)

			require.NoError(t, s.Initialize(ctx))
			require.NoError(t, s.Initialize(ctx))

			log, err := s.LoadAll(ctx)
			require.NoError(t, err)
			assert.Len(t, log, 1)
		})
	}
}

func TestStore_ReopenKeepsRecords(t *testing.T) {
	ctx := context.Background()
	for _, b := range Backends() {
		t.Run(string(b), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "results"+extension(b))
			s, err := Open(ctx, Options{Backend: b, Path: path})
			require.NoError(t, err)
			_, err = s.Append(ctx, sampleAttempt("Python Pandas", 1, 2))
			require.NoError(t, err)
			require.NoError(t, s.Close())

			s, err = Open(ctx, Options{Backend: b, Path: path})
			require.NoError(t, err)
			defer s.Close()

			log, err := s.LoadAll(ctx)
			require.NoError(t, err)
			require.Len(t, log, 1)
			assert.Equal(t, "Python Pandas", log[0].Topic)
		})
	}
}

func TestOpen_UnknownBackend(t *testing.T) {
	_, err := Open(context.Background(), Options{Backend: "parquet", Path: filepath.Join(t.TempDir(), "x")})
	require.Error(t, err)
}

func TestOpen_DefaultsToCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "results.csv")
	s, err := Open(context.Background(), Options{Path: path})
	require.NoError(t, err)
	defer s.Close()

	_, ok := s.(*CSVStore)
	assert.True(t, ok, "store = %T, want *CSVStore", s)
	assert.Equal(t, path, s.Location())
}

func TestParseBackend(t *testing.T) {
	tests := []struct {
		in      string
		want    Backend
		wantErr bool
	}{
		{"csv", BackendCSV, false},
		{"sqlite", BackendSQLite, false},
		{"CSV", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseBackend(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestDefaultPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("QUIZDASH_DATA", "")
	t.Setenv("XDG_DATA_HOME", dir)

	p, err := DefaultPath(BackendSQLite)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "quizdash", "results.db"), p)

	override := filepath.Join(dir, "custom", "mine.csv")
	t.Setenv("QUIZDASH_DATA", override)
	p, err = DefaultPath(BackendCSV)
	require.NoError(t, err)
	assert.Equal(t, override, p)
}

func TestErrorsUnwrap(t *testing.T) {
	inner := errors.New("disk gone")
	var err error = &ErrStorageWrite{Path: "x", Err: inner}
	assert.ErrorIs(t, err, inner)
	err = &ErrStorageRead{Path: "x", Err: inner}
	assert.ErrorIs(t, err, inner)
}
