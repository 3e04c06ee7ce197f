package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
)

// Button is a styled button component.
type Button struct {
	Label   string
	OnPress func() tea.Cmd
}

// View renders the button.
func (b Button) View(active bool) string {
	if active {
		return ButtonActiveStyle.Render("▸ " + b.Label)
	}
	return ButtonInactiveStyle.Render(b.Label)
}

// ButtonRow is a horizontal set of buttons navigated with left/right.
type ButtonRow struct {
	Buttons  []Button
	Selected int
}

// NewButtonRow creates a row with the first button selected.
func NewButtonRow(buttons ...Button) ButtonRow {
	return ButtonRow{Buttons: buttons}
}

// Update handles left/right/tab navigation and Enter.
func (r ButtonRow) Update(msg tea.Msg) (ButtonRow, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(r.Buttons) == 0 {
		return r, nil
	}
	switch kmsg.String() {
	case "left", "h", "shift+tab":
		r.Selected = (r.Selected - 1 + len(r.Buttons)) % len(r.Buttons)
	case "right", "l", "tab":
		r.Selected = (r.Selected + 1) % len(r.Buttons)
	case "enter", "space":
		if b := r.Buttons[r.Selected]; b.OnPress != nil {
			return r, b.OnPress()
		}
	}
	return r, nil
}

// View renders the buttons side by side.
func (r ButtonRow) View() string {
	parts := make([]string, len(r.Buttons))
	for i, b := range r.Buttons {
		parts[i] = b.View(i == r.Selected)
	}
	return strings.Join(parts, "  ")
}

// Press activates button i regardless of the selection.
func (r ButtonRow) Press(i int) tea.Cmd {
	if i < 0 || i >= len(r.Buttons) || r.Buttons[i].OnPress == nil {
		return nil
	}
	return r.Buttons[i].OnPress()
}
