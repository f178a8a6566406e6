package progress

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/Gama646/quizdash/internal/screen"
	"github.com/Gama646/quizdash/internal/store"
	"github.com/Gama646/quizdash/internal/ui/components"
	"github.com/Gama646/quizdash/internal/ui/layout"
	"github.com/Gama646/quizdash/internal/ui/theme"
)

// ProgressScreen charts one topic's average score per date.
type ProgressScreen struct {
	store  store.Store
	logger *zap.Logger

	log      store.Log
	loaded   bool
	err      error
	topics   []string
	selected int
	offset   int
}

var _ screen.Screen = (*ProgressScreen)(nil)
var _ screen.KeyHintProvider = (*ProgressScreen)(nil)

// New creates the progress screen. The log is loaded on Init.
func New(st store.Store, logger *zap.Logger) *ProgressScreen {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProgressScreen{store: st, logger: logger.Named("progress")}
}

func (p *ProgressScreen) Init() tea.Cmd {
	return screen.LoadLog(p.store)
}

func (p *ProgressScreen) Title() string {
	return "Topic Progress"
}

func (p *ProgressScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←→", Description: "Topic"},
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

// Topic returns the selected topic, or "" when the log is empty.
func (p *ProgressScreen) Topic() string {
	if len(p.topics) == 0 {
		return ""
	}
	return p.topics[p.selected]
}

func (p *ProgressScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.LogLoadedMsg:
		p.loaded = true
		p.err = msg.Err
		if msg.Err != nil {
			p.logger.Warn("load results failed", zap.Error(msg.Err))
			return p, nil
		}
		current := p.Topic()
		p.log = msg.Log
		p.topics = store.UniqueTopics(msg.Log)
		p.selected = 0
		for i, t := range p.topics {
			if t == current {
				p.selected = i
			}
		}
		return p, nil

	case screen.ResultsChangedMsg:
		return p, p.Init()

	case tea.KeyPressMsg:
		if len(p.topics) == 0 {
			return p, nil
		}
		switch msg.String() {
		case "right", "tab", "l":
			p.selected = (p.selected + 1) % len(p.topics)
			p.offset = 0
		case "left", "shift+tab", "h":
			p.selected = (p.selected - 1 + len(p.topics)) % len(p.topics)
			p.offset = 0
		case "down", "j":
			if p.offset < len(store.FilterTopic(p.log, p.Topic()))-1 {
				p.offset++
			}
		case "up", "k":
			if p.offset > 0 {
				p.offset--
			}
		}
	}
	return p, nil
}

func (p *ProgressScreen) View(width, height int) string {
	switch {
	case !p.loaded:
		return components.EmptyState("Loading results...", width, height)
	case p.err != nil:
		return components.EmptyState(theme.ErrorText.Render(p.err.Error()), width, height)
	case len(p.log) == 0:
		return components.EmptyState(components.EmptyMessage, width, height)
	}

	cw := components.ContentWidth(width)
	topic := p.Topic()

	var tabs []string
	for i, t := range p.topics {
		if i == p.selected {
			tabs = append(tabs, theme.ButtonActive.Render(t))
		} else {
			tabs = append(tabs, theme.Hint.Italic(false).Padding(0, 2).Render(t))
		}
	}
	selector := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)

	byDate := store.AggregateByDate(p.log, topic)
	chart := components.NewBarChart(
		components.BarsFrom(store.SortedKeys(byDate), byDate),
		cw-4,
	).View()

	results := store.FilterTopic(p.log, topic)
	used := lipgloss.Height(selector) + lipgloss.Height(chart) + 8
	tbl := components.ResultsTable(results, cw, max(height-used, 5), p.offset)

	sections := []string{
		selector,
		"",
		theme.Title.Render(fmt.Sprintf("Progress for %s", topic)),
		"",
		chart,
		"",
		tbl,
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(sections, "\n"))
}
