package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/Gama646/quizdash/internal/ui/theme"
)

var optionLabels = []string{"A", "B", "C", "D", "E", "F"}

// MultiChoice is a single-answer selector over a question's options.
// Enter or the option letter records the choice; the selection can be
// changed again until the quiz is submitted.
type MultiChoice struct {
	Question    string
	Options     []string
	Selected    int
	ChosenIndex int
	// RevealIndex highlights the correct option once the quiz is scored.
	RevealIndex int
}

// NewMultiChoice creates a new multiple-choice component with nothing chosen.
func NewMultiChoice(question string, options []string) MultiChoice {
	return MultiChoice{
		Question:    question,
		Options:     options,
		ChosenIndex: -1,
		RevealIndex: -1,
	}
}

// Init returns nil.
func (m MultiChoice) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation and selection.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.RevealIndex >= 0 {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case "enter", "space":
		m.ChosenIndex = m.Selected
	default:
		for i := range m.Options {
			if i < len(optionLabels) && strings.EqualFold(key, optionLabels[i]) {
				m.Selected = i
				m.ChosenIndex = i
			}
		}
	}

	return m, nil
}

// Answered reports whether an option has been chosen.
func (m MultiChoice) Answered() bool {
	return m.ChosenIndex >= 0 && m.ChosenIndex < len(m.Options)
}

// Chosen returns the text of the chosen option, or "" when unanswered.
func (m MultiChoice) Chosen() string {
	if !m.Answered() {
		return ""
	}
	return m.Options[m.ChosenIndex]
}

// Reveal locks the component and marks correctIndex.
func (m *MultiChoice) Reveal(correctIndex int) {
	m.RevealIndex = correctIndex
}

// View renders the multiple-choice component.
func (m MultiChoice) View() string {
	var b strings.Builder
	b.WriteString(theme.Body.Bold(true).Render(m.Question))
	b.WriteString("\n\n")

	for i, opt := range m.Options {
		label := "?"
		if i < len(optionLabels) {
			label = optionLabels[i]
		}
		prefix := "  "
		if i == m.Selected && m.RevealIndex < 0 {
			prefix = "▸ "
		}
		mark := "( )"
		if i == m.ChosenIndex {
			mark = "(•)"
		}

		line := fmt.Sprintf("%s%s %s)  %s", prefix, mark, label, opt)

		switch {
		case m.RevealIndex >= 0 && i == m.RevealIndex:
			line = theme.Correct.Render(line)
		case m.RevealIndex >= 0 && i == m.ChosenIndex:
			line = theme.Incorrect.Render(line)
		case m.RevealIndex >= 0:
			line = theme.Hint.Render(line)
		case i == m.Selected:
			line = theme.Selected.Render(line)
		default:
			line = theme.Unselected.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}
