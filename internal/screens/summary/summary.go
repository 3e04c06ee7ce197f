// Package summary shows the result of a finished level.
package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingua/internal/progress"
	"github.com/abhisek/lingua/internal/router"
	"github.com/abhisek/lingua/internal/screen"
	"github.com/abhisek/lingua/internal/session"
	"github.com/abhisek/lingua/internal/ui/components"
	"github.com/abhisek/lingua/internal/ui/layout"
	"github.com/abhisek/lingua/internal/ui/theme"
)

// SummaryScreen displays the level results.
type SummaryScreen struct {
	summary *session.Summary
	buttons components.ButtonRow
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a SummaryScreen. replay builds the screen that plays the
// level again; nil hides the option.
func New(summary *session.Summary, replay func() screen.Screen) *SummaryScreen {
	back := components.Button{
		Label:   "Back to levels",
		OnPress: func() tea.Cmd { return func() tea.Msg { return router.PopScreenMsg{} } },
	}
	buttons := []components.Button{back}
	if replay != nil {
		again := components.Button{
			Label: "Play again",
			OnPress: func() tea.Cmd {
				next := replay()
				return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
			},
		}
		buttons = []components.Button{again, back}
	}
	return &SummaryScreen{summary: summary, buttons: components.NewButtonRow(buttons...)}
}

// Summary returns the displayed result.
func (s *SummaryScreen) Summary() *session.Summary {
	return s.summary
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Level Complete"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←→", Description: "Choose"},
		{Key: "Enter", Description: "Select"},
		{Key: "R", Description: "Replay"},
		{Key: "Esc", Description: "Levels"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	if kmsg.String() == "r" && len(s.buttons.Buttons) > 1 {
		return s, s.buttons.Press(0)
	}
	var cmd tea.Cmd
	s.buttons, cmd = s.buttons.Update(msg)
	return s, cmd
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	if sum == nil {
		return ""
	}
	center := func(str string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, str)
	}

	var b strings.Builder

	headline := lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render("Level passed!")
	if !sum.Passed {
		headline = lipgloss.NewStyle().Foreground(theme.Warning).Bold(true).
			Render(fmt.Sprintf("Keep practicing. %d%% is needed to pass.", progress.PassThreshold))
	}
	b.WriteString(center(headline))
	b.WriteString("\n\n")

	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Secondary).Render(sum.LevelName)))
	b.WriteString("\n\n")

	score := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).
		Render(fmt.Sprintf("%d%%", sum.Score))
	b.WriteString(center(components.ArcadeCard(score, 24)))
	b.WriteString("\n")

	mins := int(sum.Duration.Minutes())
	secs := int(sum.Duration.Seconds()) % 60
	stats := fmt.Sprintf("Words: %d    %s %d    %s %d    ◆ %d pts    %d:%02d",
		sum.Total,
		theme.Correct.Render("✓"), sum.Correct,
		theme.Incorrect.Render("✗"), sum.Incorrect,
		sum.RunningScore, mins, secs)
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Text).Render(stats)))
	b.WriteString("\n\n")

	b.WriteString(center(s.buttons.View()))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}
