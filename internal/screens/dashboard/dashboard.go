package dashboard

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

// DashboardScreen shows every stored result, the per-topic averages and
// the overall average.
type DashboardScreen struct {
	store  store.Store
	logger *zap.Logger

	log    store.Log
	loaded bool
	err    error
	offset int
}

var _ screen.Screen = (*DashboardScreen)(nil)
var _ screen.KeyHintProvider = (*DashboardScreen)(nil)

// New creates the dashboard. The log is loaded on Init.
func New(st store.Store, logger *zap.Logger) *DashboardScreen {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardScreen{store: st, logger: logger.Named("dashboard")}
}

func (d *DashboardScreen) Init() tea.Cmd {
	return screen.LoadLog(d.store)
}

func (d *DashboardScreen) Title() string {
	return "Results Dashboard"
}

func (d *DashboardScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (d *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.LogLoadedMsg:
		d.loaded = true
		d.err = msg.Err
		d.log = msg.Log
		if msg.Err != nil {
			d.logger.Warn("load results failed", zap.Error(msg.Err))
		}
		return d, nil

	case screen.ResultsChangedMsg:
		return d, d.Init()

	case tea.KeyPressMsg:
		switch msg.String() {
		case "down", "j":
			if d.offset < len(d.log)-1 {
				d.offset++
			}
		case "up", "k":
			if d.offset > 0 {
				d.offset--
			}
		case "home", "g":
			d.offset = 0
		}
	}
	return d, nil
}

// OverallLine formats the overall average to one decimal place.
func OverallLine(log store.Log) string {
	avg, ok := store.OverallAverage(log)
	if !ok {
		return "Overall Average (%): -"
	}
	return fmt.Sprintf("Overall Average (%%): %.1f", avg)
}

func (d *DashboardScreen) View(width, height int) string {
	switch {
	case !d.loaded:
		return components.EmptyState("Loading results...", width, height)
	case d.err != nil:
		return components.EmptyState(theme.ErrorText.Render(d.err.Error()), width, height)
	case len(d.log) == 0:
		return components.EmptyState(components.EmptyMessage, width, height)
	}

	cw := components.ContentWidth(width)

	byTopic := store.AggregateByTopic(d.log)
	chart := components.NewBarChart(
		components.BarsFrom(store.SortedKeys(byTopic), byTopic),
		cw-4,
	).View()

	overall := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(OverallLine(d.log))

	used := lipgloss.Height(chart) + 8
	tbl := components.ResultsTable(d.log, cw, max(height-used, 5), d.offset)

	sections := []string{
		theme.Title.Render("Average score by topic"),
		chart,
		"",
		overall,
		"",
		tbl,
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(sections, "\n"))
}
