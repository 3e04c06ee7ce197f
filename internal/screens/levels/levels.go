// Package levels lists the levels of the active language.
package levels

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingua/internal/router"
	"github.com/abhisek/lingua/internal/screen"
	sessionscreen "github.com/abhisek/lingua/internal/screens/session"
	"github.com/abhisek/lingua/internal/ui/components"
	"github.com/abhisek/lingua/internal/ui/layout"
	"github.com/abhisek/lingua/internal/ui/theme"
	"github.com/abhisek/lingua/internal/vocab"
)

// LevelsScreen shows one language's levels with completion and score.
type LevelsScreen struct {
	svc        screen.Services
	languageID string
	cursor     int
	errMsg     string
}

var _ screen.Screen = (*LevelsScreen)(nil)
var _ screen.KeyHintProvider = (*LevelsScreen)(nil)

// New creates the level list for languageID. The language should already
// be current in the progress store.
func New(svc screen.Services, languageID string) *LevelsScreen {
	return &LevelsScreen{svc: svc, languageID: languageID}
}

func (l *LevelsScreen) Init() tea.Cmd {
	return nil
}

func (l *LevelsScreen) Title() string {
	if lang, ok := l.language(); ok {
		return lang.Name
	}
	return "Levels"
}

func (l *LevelsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Play"},
		{Key: "Esc", Description: "Back"},
	}
}

func (l *LevelsScreen) language() (vocab.Language, bool) {
	return l.svc.Game.Language(l.languageID)
}

func (l *LevelsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return l, nil
	}
	lang, ok := l.language()
	if !ok {
		return l, nil
	}
	n := len(lang.Levels)

	switch kmsg.String() {
	case "up", "k":
		if l.cursor > 0 {
			l.cursor--
		}
	case "down", "j":
		if l.cursor < n-1 {
			l.cursor++
		}
	case "enter":
		if l.cursor >= n {
			return l, nil
		}
		return l, l.play(lang.Levels[l.cursor])
	}
	return l, nil
}

func (l *LevelsScreen) play(level vocab.Level) tea.Cmd {
	s, err := sessionscreen.New(l.svc, l.languageID, level)
	if err != nil {
		l.errMsg = err.Error()
		return nil
	}
	l.errMsg = ""
	return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
}

func (l *LevelsScreen) View(width, height int) string {
	lang, ok := l.language()
	if !ok {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render("\n\nUnknown language: " + l.languageID)
	}
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(components.NewProgressBar(
		fmt.Sprintf("%d/%d complete", lang.CompletedCount(), len(lang.Levels)),
		lang.Progress, true, cw).View())
	b.WriteString("\n\n")

	if len(lang.Levels) == 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(
			"Not enough words to build a level. Lower words per level in Settings."))
	}

	for i, lv := range lang.Levels {
		b.WriteString(renderLevelRow(lv, i == l.cursor, cw))
		b.WriteString("\n")
	}

	if l.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render(l.errMsg))
	}

	card := components.ArcadeCard(b.String(), cw)
	return components.CabinetFrame(card, width, height)
}

func renderLevelRow(lv vocab.Level, selected bool, cw int) string {
	mark := lipgloss.NewStyle().Foreground(theme.TextDim).Render("·")
	score := lipgloss.NewStyle().Foreground(theme.TextDim).Render("--")
	if lv.Completed {
		mark = theme.Correct.Render("✓")
	}
	if lv.Completed || lv.Score > 0 {
		score = lipgloss.NewStyle().Foreground(theme.Accent).Render(fmt.Sprintf("%3d%%", lv.Score))
	}

	name := fmt.Sprintf("%s  (%d words)", lv.Name, len(lv.Words))
	style := theme.Unselected
	prefix := "  "
	if selected {
		style = lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
		prefix = "▸ "
	}
	left := style.Render(prefix+name) + "  " + mark
	gap := max(cw-8-lipgloss.Width(left)-lipgloss.Width(score), 1)
	return left + strings.Repeat(" ", gap) + score
}
