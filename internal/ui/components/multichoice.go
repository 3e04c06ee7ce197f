package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingua/internal/ui/theme"
)

// MultiChoice is the answer picker for one quiz word. It only tracks the
// cursor and renders; the caller decides what a choice means and calls
// Reveal once the answer is known.
type MultiChoice struct {
	Options  []string
	Selected int

	revealed bool
	correct  int
	chosen   int
}

// NewMultiChoice creates a picker over options with the cursor on the first.
func NewMultiChoice(options []string) MultiChoice {
	return MultiChoice{Options: options, correct: -1, chosen: -1}
}

// ChooseMsg is emitted when the learner picks an option.
type ChooseMsg struct {
	Index int
}

// Update handles arrow navigation, Enter and the 1-4 shortcuts.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.revealed || len(m.Options) == 0 {
		return m, nil
	}
	kmsg, ok := msg.(tea.KeyMsg)
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
	case "enter":
		return m, choose(m.Selected)
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			i := int(key[0] - '1')
			if i < len(m.Options) {
				m.Selected = i
				return m, choose(i)
			}
		}
	}
	return m, nil
}

func choose(i int) tea.Cmd {
	return func() tea.Msg { return ChooseMsg{Index: i} }
}

// Reveal marks the correct option and the one picked (-1 for a timeout).
func (m *MultiChoice) Reveal(correct, chosen int) {
	m.revealed = true
	m.correct = correct
	m.chosen = chosen
}

// Revealed reports whether the answer is showing.
func (m MultiChoice) Revealed() bool {
	return m.revealed
}

// View renders the options as a numbered list.
func (m MultiChoice) View() string {
	lines := make([]string, 0, len(m.Options))
	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Selected && !m.revealed {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d)  %s", prefix, i+1, opt)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case m.revealed && i == m.correct:
			style = theme.Correct
		case m.revealed && i == m.chosen:
			style = theme.Incorrect
		case m.revealed:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == m.Selected:
			style = theme.Selected
		}
		lines = append(lines, style.Render(line))
	}
	return strings.Join(lines, "\n")
}
