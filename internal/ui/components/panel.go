package components

import (
	"charm.land/lipgloss/v2"

	"github.com/Gama646/quizdash/internal/ui/theme"
)

// ContentWidth returns the inner width used by screen panels so
// charts and tables line up.
func ContentWidth(frameWidth int) int {
	return min(max(frameWidth-6, 20), 100)
}

// Panel wraps content in a titled rounded card of width cw.
func Panel(title, content string, cw int) string {
	body := content
	if title != "" {
		body = theme.Title.Render(title) + "\n\n" + content
	}
	return theme.Card.Width(cw).Render(body)
}

// EmptyMessage is shown while no attempt has been stored.
const EmptyMessage = "No quiz data available yet."

// EmptyState renders a centered hint for screens with nothing to show.
func EmptyState(msg string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, theme.Hint.Render(msg))
}
