package progress

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/Gama646/quizdash/internal/screen"
	"github.com/Gama646/quizdash/internal/store"
	"github.com/Gama646/quizdash/internal/ui/components"
)

func newTestStore(t *testing.T, attempts ...store.Attempt) store.Store {
	t.Helper()
	st := store.NewCSV(filepath.Join(t.TempDir(), "results.csv"), nil)
	ctx := context.Background()
	if err := st.Initialize(ctx); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	for _, a := range attempts {
		if _, err := st.Append(ctx, a); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
	return st
}

func attempt(topic string, score int, date string) store.Attempt {
	return store.Attempt{Name: "Ada", Topic: topic, Score: score, TotalQuestions: 2, Timestamp: date}
}

func load(t *testing.T, p *ProgressScreen) {
	t.Helper()
	cmd := p.Init()
	if cmd == nil {
		t.Fatal("expected load command from Init")
	}
	p.Update(cmd())
}

func TestProgressScreen_Empty(t *testing.T) {
	p := New(newTestStore(t), nil)
	load(t, p)

	if !strings.Contains(p.View(80, 24), components.EmptyMessage) {
		t.Error("expected empty-state message")
	}
	if p.Topic() != "" {
		t.Errorf("Topic() = %q, want empty", p.Topic())
	}
}

func TestProgressScreen_TopicsInFirstAppearanceOrder(t *testing.T) {
	p := New(newTestStore(t,
		attempt("Jupyter", 1, "2024-03-01 10:00"),
		attempt("Streamlit", 2, "2024-03-01 11:00"),
		attempt("Jupyter", 2, "2024-03-02 10:00"),
	), nil)
	load(t, p)

	if len(p.topics) != 2 || p.topics[0] != "Jupyter" || p.topics[1] != "Streamlit" {
		t.Fatalf("topics = %v", p.topics)
	}

	view := p.View(100, 40)
	for _, want := range []string{"Progress for Jupyter", "2024-03-01 10:00", "50.0%", "2024-03-02 10:00", "100.0%"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	p.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	if p.Topic() != "Streamlit" {
		t.Errorf("Topic() = %q after right, want Streamlit", p.Topic())
	}
	p.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	if p.Topic() != "Jupyter" {
		t.Errorf("selector should wrap around, got %q", p.Topic())
	}
	p.Update(tea.KeyPressMsg{Code: tea.KeyLeft})
	if p.Topic() != "Streamlit" {
		t.Errorf("Topic() = %q after left, want Streamlit", p.Topic())
	}
}

func TestProgressScreen_ReloadKeepsSelection(t *testing.T) {
	st := newTestStore(t,
		attempt("Jupyter", 1, "2024-03-01 10:00"),
		attempt("Streamlit", 2, "2024-03-01 11:00"),
	)
	p := New(st, nil)
	load(t, p)
	p.Update(tea.KeyPressMsg{Code: tea.KeyRight})

	if _, err := st.Append(context.Background(), attempt("Pandas", 0, "2024-03-03 09:00")); err != nil {
		t.Fatalf("Append: %v", err)
	}
	load(t, p)

	if len(p.topics) != 3 {
		t.Errorf("topics = %v, want 3", p.topics)
	}
	if p.Topic() != "Streamlit" {
		t.Errorf("Topic() = %q, want selection kept", p.Topic())
	}
}

func TestProgressScreen_LoadError(t *testing.T) {
	p := New(newTestStore(t), nil)
	p.Update(screen.LogLoadedMsg{Err: &store.ErrStorageRead{Path: "results.csv", Err: errors.New("bad header")}})

	if !strings.Contains(p.View(80, 24), "bad header") {
		t.Error("expected load error in view")
	}
}
