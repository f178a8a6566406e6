package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/Gama646/quizdash/internal/ui/components"
	"github.com/Gama646/quizdash/internal/ui/theme"
)

const bannerFull = `  ___        _     ___          _
 / _ \ _  _ (_)___|   \ __ _ __| |_
| (_) | || || |_ /| |) / _' (_-< ' \
 \__\_\\_,_||_/__||___/\__,_/__/_||_|`

const bannerCompact = "Q U I Z D A S H"

const tagline = "Data Analysis Learning Quiz Dashboard"

func (h *HomeScreen) View(width, height int) string {
	cw := min(components.ContentWidth(width), 60)
	compact := width < 70 || height < 22

	banner := bannerFull
	if compact {
		banner = bannerCompact
	}

	sections := []string{
		lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(banner),
		theme.Subtitle.Render(tagline),
		h.renderSummary(cw),
		components.Panel("", h.menu.View(), cw),
	}

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (h *HomeScreen) renderSummary(cw int) string {
	if h.loadErr != nil {
		return components.Panel("", theme.ErrorText.Render(h.loadErr.Error()), cw)
	}
	if h.attempts == 0 {
		return components.Panel("", theme.Hint.Render("No quiz data available yet."), cw)
	}

	lines := []string{
		fmt.Sprintf("Attempts: %d across %d topics", h.attempts, h.topics),
		fmt.Sprintf("Overall average: %.1f%%", h.average),
	}
	if h.last != nil {
		lines = append(lines, fmt.Sprintf("Last: %s %d/%d on %s",
			h.last.Topic, h.last.Score, h.last.TotalQuestions, h.last.Timestamp))
	}
	return components.Panel("", theme.Body.Render(strings.Join(lines, "\n")), cw)
}
