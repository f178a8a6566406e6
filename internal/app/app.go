package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/Gama646/quizdash/internal/bank"
	"github.com/Gama646/quizdash/internal/router"
	"github.com/Gama646/quizdash/internal/screen"
	"github.com/Gama646/quizdash/internal/screens/home"
	"github.com/Gama646/quizdash/internal/screens/quiz"
	"github.com/Gama646/quizdash/internal/store"
	"github.com/Gama646/quizdash/internal/ui/layout"
)

// Options holds the dependencies injected into the TUI.
type Options struct {
	Bank   *bank.Bank
	Store  store.Store
	Logger *zap.Logger

	// StartQuiz opens the quiz screen on top of home, prefilled with
	// Name and Topic when they are set.
	StartQuiz bool
	Name      string
	Topic     string
}

type statsMsg struct {
	Stats layout.HeaderStats
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	store  store.Store
	logger *zap.Logger
	stats  layout.HeaderStats
	start  screen.Screen
	width  int
	height int
}

// newAppModel creates the model with home at the bottom of the stack.
func newAppModel(opts Options) AppModel {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	homeScreen := home.New(home.Deps{
		Bank:   opts.Bank,
		Store:  opts.Store,
		Logger: opts.Logger,
	})

	m := AppModel{
		router: router.New(homeScreen),
		store:  opts.Store,
		logger: opts.Logger,
	}
	if opts.StartQuiz {
		m.start = quiz.New(opts.Bank, opts.Store, opts.Logger, opts.Name, opts.Topic)
	}
	return m
}

func (m AppModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.router.Active().Init(), m.loadStats()}
	if m.start != nil {
		start := m.start
		cmds = append(cmds, func() tea.Msg { return router.PushScreenMsg{Screen: start} })
	}
	return tea.Batch(cmds...)
}

func (m AppModel) loadStats() tea.Cmd {
	st := m.store
	logger := m.logger
	return func() tea.Msg {
		log, err := st.LoadAll(context.Background())
		if err != nil {
			logger.Warn("load header stats failed", zap.Error(err))
			return statsMsg{}
		}
		avg, ok := store.OverallAverage(log)
		return statsMsg{Stats: layout.HeaderStats{Attempts: len(log), Average: avg, HasAverage: ok}}
	}
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case statsMsg:
		m.stats = msg.Stats
		return m, nil

	case screen.ResultsChangedMsg:
		return m, tea.Batch(m.loadStats(), m.router.Update(msg))

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if c, ok := m.router.Active().(screen.InputCapturer); ok && c.CapturesEsc() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.stats, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)

	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		if hints := p.KeyHints(); len(hints) > 0 {
			return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
		}
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Q", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
