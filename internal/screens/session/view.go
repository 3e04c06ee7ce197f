package session

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	sess "github.com/abhisek/lingua/internal/session"
	"github.com/abhisek/lingua/internal/ui/components"
	"github.com/abhisek/lingua/internal/ui/theme"
)

func (s *SessionScreen) View(width, height int) string {
	if s.confirmQuit {
		return renderQuitConfirm(width, height)
	}
	if s.state.Phase == sess.PhaseCompleted {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render("Level complete..."))
	}
	return s.renderWord(width, height)
}

func (s *SessionScreen) renderWord(width, height int) string {
	state := s.state
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(s.renderInfoLine(cw))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", cw)))
	b.WriteString("\n\n")

	word := lipgloss.NewStyle().
		Foreground(theme.ArcadeYellow).
		Bold(true).
		Render(state.Word().Original)
	b.WriteString(components.ArcadeCard(word, cw))
	b.WriteString("\n")

	switch {
	case s.image != "":
		b.WriteString(dim("image: " + s.image))
	case s.imageErr != "":
		b.WriteString(dim(s.imageErr))
	}
	b.WriteString("\n\n")

	if len(state.Options) == 0 {
		b.WriteString(dim("Not enough distinct answers for this word. Wait for the timer."))
	} else {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render("What does it mean?"))
		b.WriteString("\n\n")
		b.WriteString(s.choices.View())
	}
	b.WriteString("\n\n")
	b.WriteString(s.renderFeedback())

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}

func (s *SessionScreen) renderInfoLine(cw int) string {
	state := s.state
	left := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("Word %d/%d", state.Index+1, state.Total()))

	timerStyle := lipgloss.NewStyle().Foreground(theme.Accent)
	if state.Remaining <= 5 {
		timerStyle = lipgloss.NewStyle().Foreground(theme.Error).Bold(true)
	}
	right := fmt.Sprintf("%s %d  %s %d  %s %d  %s",
		theme.Correct.Render("✓"), state.Correct,
		theme.Incorrect.Render("✗"), state.Incorrect,
		lipgloss.NewStyle().Foreground(theme.Accent).Render("◆"), state.RunningScore,
		timerStyle.Render(fmt.Sprintf("⏱ %2ds", state.Remaining)),
	)

	gap := max(cw-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}

func (s *SessionScreen) renderFeedback() string {
	state := s.state
	if state.Phase != sess.PhaseAnswered {
		if s.flash != "" {
			return theme.Correct.Render(s.flash)
		}
		return ""
	}

	headline := "Not quite"
	if state.TimedOut {
		headline = "Time's up!"
	}
	return theme.Incorrect.Render(headline) + "\n" +
		dim(fmt.Sprintf("Answer: %s", state.Word().Translation)) + "\n\n" +
		dim("Press Enter to continue")
}

// renderQuitConfirm renders the quit confirmation dialog.
func renderQuitConfirm(width, height int) string {
	lines := []string{
		lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Quit this level?"),
		dim("This attempt will not be saved."),
		"",
		lipgloss.NewStyle().Foreground(theme.Error).Render("[Y] Yes, quit"),
		lipgloss.NewStyle().Foreground(theme.Primary).Render("[N] No, keep playing"),
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(lines, "\n"))
}

func dim(s string) string {
	return lipgloss.NewStyle().Foreground(theme.TextDim).Render(s)
}
