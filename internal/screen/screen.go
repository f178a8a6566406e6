package screen

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/Gama646/quizdash/internal/store"
	"github.com/Gama646/quizdash/internal/ui/layout"
)

// Screen is one page of the terminal UI. The router owns a stack of them.
type Screen interface {
	// Init returns an initial command when the screen is first shown.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is implemented by screens that show their own footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// InputCapturer is implemented by screens that consume Esc themselves,
// for example to leave a text field or cancel a confirmation.
type InputCapturer interface {
	CapturesEsc() bool
}

// ResultsChangedMsg is emitted after an attempt is stored so the app can
// refresh anything derived from the results log.
type ResultsChangedMsg struct{}

// LogLoadedMsg carries the outcome of LoadLog.
type LogLoadedMsg struct {
	Log store.Log
	Err error
}

// LoadLog reads the whole results log off the UI goroutine.
func LoadLog(st store.Store) tea.Cmd {
	return func() tea.Msg {
		log, err := st.LoadAll(context.Background())
		return LogLoadedMsg{Log: log, Err: err}
	}
}
