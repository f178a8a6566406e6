package home

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/Gama646/quizdash/internal/bank"
	"github.com/Gama646/quizdash/internal/router"
	"github.com/Gama646/quizdash/internal/screen"
	"github.com/Gama646/quizdash/internal/screens/dashboard"
	"github.com/Gama646/quizdash/internal/screens/progress"
	"github.com/Gama646/quizdash/internal/screens/quiz"
	"github.com/Gama646/quizdash/internal/store"
	"github.com/Gama646/quizdash/internal/ui/components"
)

// Deps are the services the home screen hands to the screens it opens.
type Deps struct {
	Bank   *bank.Bank
	Store  store.Store
	Logger *zap.Logger
}

// Menu labels in display order.
const (
	LabelQuiz      = "Take Quiz"
	LabelProgress  = "Topic Progress"
	LabelDashboard = "Results Dashboard"
	LabelExit      = "Exit"
)

type summaryMsg struct {
	Log store.Log
	Err error
}

// HomeScreen is the main menu with a short summary of past results.
type HomeScreen struct {
	deps Deps
	menu components.Menu

	attempts int
	topics   int
	average  float64
	hasAvg   bool
	last     *store.Attempt
	loadErr  error
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps Deps) *HomeScreen {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	h := &HomeScreen{deps: deps}

	push := func(build func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			s := build()
			return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
		}
	}

	h.menu = components.NewMenu([]components.MenuItem{
		{Label: LabelQuiz, Action: push(func() screen.Screen {
			return quiz.New(deps.Bank, deps.Store, deps.Logger, "", "")
		})},
		{Label: LabelProgress, Action: push(func() screen.Screen {
			return progress.New(deps.Store, deps.Logger)
		})},
		{Label: LabelDashboard, Action: push(func() screen.Screen {
			return dashboard.New(deps.Store, deps.Logger)
		})},
		{Label: LabelExit, Action: func() tea.Cmd {
			return tea.Quit
		}},
	})
	return h
}

// Init loads the summary. It runs again whenever the app returns home.
func (h *HomeScreen) Init() tea.Cmd {
	st := h.deps.Store
	return func() tea.Msg {
		log, err := st.LoadAll(context.Background())
		return summaryMsg{Log: log, Err: err}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case summaryMsg:
		h.summarize(msg)
		return h, nil
	case screen.ResultsChangedMsg:
		return h, h.Init()
	case tea.KeyPressMsg:
		if msg.String() == "q" {
			return h, tea.Quit
		}
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) summarize(msg summaryMsg) {
	h.loadErr = msg.Err
	if msg.Err != nil {
		h.deps.Logger.Warn("load results failed", zap.Error(msg.Err))
		return
	}
	h.attempts = len(msg.Log)
	h.topics = len(store.UniqueTopics(msg.Log))
	h.average, h.hasAvg = store.OverallAverage(msg.Log)
	h.last = nil
	if n := len(msg.Log); n > 0 {
		last := msg.Log[n-1]
		h.last = &last
	}
}

func (h *HomeScreen) Title() string {
	return "Home"
}
