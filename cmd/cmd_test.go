package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gama646/quizdash/internal/store"
)

// resetFlags restores every flag to its default so commands run
// independently of earlier tests.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// execute runs the root command with args against a results file in a
// temporary directory and returns stdout.
func execute(t *testing.T, dataPath string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("QUIZDASH_DATA", "")
	t.Setenv("QUIZDASH_STORE_BACKEND", "")

	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "--data", dataPath, "--log-file", "off"))
	err := rootCmd.Execute()
	return out.String(), err
}

func seed(t *testing.T, path string, attempts ...store.Attempt) {
	t.Helper()
	st := store.NewCSV(path, nil)
	for _, a := range attempts {
		_, err := st.Append(context.Background(), a)
		require.NoError(t, err)
	}
}

func TestVersion(t *testing.T) {
	out, err := execute(t, filepath.Join(t.TempDir(), "results.csv"), "version")
	require.NoError(t, err)
	assert.Equal(t, "quizdash (devel)\n", out)
}

func TestTopics(t *testing.T) {
	out, err := execute(t, filepath.Join(t.TempDir(), "results.csv"), "topics")
	require.NoError(t, err)

	for _, topic := range []string{"Data Pipeline", "Streamlit", "Python Pandas", "Jupyter"} {
		assert.Contains(t, out, topic)
	}
	assert.Contains(t, out, "4 topics")
}

func TestTopics_CustomBank(t *testing.T) {
	dir := t.TempDir()
	bankPath := filepath.Join(dir, "bank.json")
	require.NoError(t, os.WriteFile(bankPath, []byte(`{"topics":[{"name":"SQL","questions":[
		{"prompt":"SELECT reads?","options":["rows","files","keys","logs"],"correct_index":0}]}]}`), 0o644))

	out, err := execute(t, filepath.Join(dir, "results.csv"), "topics", "--questions", bankPath)
	require.NoError(t, err)
	assert.Contains(t, out, "SQL")
	assert.Contains(t, out, "1 topics")
	assert.NotContains(t, out, "Jupyter")
}

func TestInit_CreatesHeaderOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "results.csv")
	out, err := execute(t, path, "init")
	require.NoError(t, err)
	assert.Contains(t, out, path)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Name,Topic,Score,Total Questions,Percentage,Date\n", string(raw))
}

func TestInit_SQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.db")
	out, err := execute(t, path, "init", "--backend", "sqlite")
	require.NoError(t, err)
	assert.Contains(t, out, "sqlite")
	assert.FileExists(t, path)
}

func TestResultsAndStats_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")
	for _, sub := range []string{"results", "stats"} {
		out, err := execute(t, path, sub)
		require.NoError(t, err)
		assert.Equal(t, "No quiz data available yet.\n", out, sub)
	}
}

func TestResults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")
	seed(t, path,
		store.Attempt{Name: "Ada", Topic: "Jupyter", Score: 1, TotalQuestions: 2, Timestamp: "2024-03-01 10:00"},
		store.Attempt{Name: "Bo", Topic: "Streamlit", Score: 2, TotalQuestions: 2, Timestamp: "2024-03-01 11:00"},
	)

	out, err := execute(t, path, "results")
	require.NoError(t, err)
	assert.Contains(t, out, "Total Questions")
	assert.Contains(t, out, "Ada")
	assert.Contains(t, out, "Bo")
	assert.Contains(t, out, "2 results")

	out, err = execute(t, path, "results", "--topic", "Jupyter")
	require.NoError(t, err)
	assert.Contains(t, out, "Ada")
	assert.NotContains(t, out, "Bo")
	assert.Contains(t, out, "1 results")
}

func TestStats(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")
	seed(t, path,
		store.Attempt{Name: "Ada", Topic: "Jupyter", Score: 1, TotalQuestions: 2, Timestamp: "2024-03-01 10:00"},
		store.Attempt{Name: "Ada", Topic: "Jupyter", Score: 2, TotalQuestions: 2, Timestamp: "2024-03-02 10:00"},
		store.Attempt{Name: "Bo", Topic: "Streamlit", Score: 0, TotalQuestions: 2, Timestamp: "2024-03-02 11:00"},
	)

	out, err := execute(t, path, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Jupyter")
	assert.Contains(t, out, "75.0%")
	assert.Contains(t, out, "Overall Average (%): 50.0")

	out, err = execute(t, path, "stats", "--topic", "Jupyter")
	require.NoError(t, err)
	assert.Contains(t, out, "Progress for Jupyter")
	assert.Contains(t, out, "2024-03-01 10:00")
	assert.Contains(t, out, "2024-03-02 10:00")
	assert.True(t, strings.Index(out, "2024-03-01") < strings.Index(out, "2024-03-02"), "dates ascending")

	out, err = execute(t, path, "stats", "--topic", "Jupyter", "--daily")
	require.NoError(t, err)
	assert.Contains(t, out, "2024-03-01")
	assert.NotContains(t, out, "10:00")

	_, err = execute(t, path, "stats", "--topic", "Rust")
	assert.Error(t, err)
}

func TestInvalidBackend(t *testing.T) {
	_, err := execute(t, filepath.Join(t.TempDir(), "results.csv"), "init", "--backend", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store.backend")
}

func TestCorruptResultsReported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b,c\n1,2,3\n"), 0o644))

	_, err := execute(t, path, "results")
	require.Error(t, err)

	var readErr *store.ErrStorageRead
	assert.ErrorAs(t, err, &readErr)
}
