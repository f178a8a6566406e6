package components

import (
	"strconv"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/Gama646/quizdash/internal/store"
	"github.com/Gama646/quizdash/internal/ui/theme"
)

// ResultsTable renders attempts under the stored column names. height
// limits the visible rows (0 shows all) and offset scrolls them.
func ResultsTable(log store.Log, width, height, offset int) string {
	rows := make([][]string, 0, len(log))
	for _, a := range log {
		rows = append(rows, []string{
			a.Name,
			a.Topic,
			strconv.Itoa(a.Score),
			strconv.Itoa(a.TotalQuestions),
			strconv.FormatFloat(a.Percentage, 'f', 1, 64),
			a.Timestamp,
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		Headers(store.Columns()...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return theme.TableHeader
			}
			return theme.TableCell
		})
	if width > 0 {
		t = t.Width(width)
	}
	if height > 0 {
		t = t.Height(height).YOffset(offset)
	}
	return t.Render()
}
