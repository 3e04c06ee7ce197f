package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingua/internal/screens/welcome"
	"github.com/abhisek/lingua/internal/ui/components"
	"github.com/abhisek/lingua/internal/ui/theme"
	"github.com/abhisek/lingua/internal/vocab"
)

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.ArcadeYellow).
		Bold(true)

	art := welcome.BannerArt
	if compact || cw < welcome.BannerMinWidth {
		art = welcome.BannerCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(art))
}

// renderStatsBar renders the dashboard stats in a bordered box matching content width.
func renderStatsBar(score, completed, levels, cw int, compact bool) string {
	scoreStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	levelStyle := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)

	var stats string
	if compact {
		stats = fmt.Sprintf("%s %s",
			scoreStyle.Render(fmt.Sprintf("◆%d", score)),
			levelStyle.Render(fmt.Sprintf("★%d/%d", completed, levels)),
		)
	} else {
		stats = fmt.Sprintf("%s  %s",
			scoreStyle.Render(fmt.Sprintf("◆ %d POINTS", score)),
			levelStyle.Render(fmt.Sprintf("★ %d/%d LEVELS", completed, levels)),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.ArcadeCyan).
		Width(cw - 2). // account for border chars
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

// renderLanguages renders one progress row per language. selected is the
// highlighted row, or -1.
func renderLanguages(langs []vocab.Language, selected, cw int) string {
	if len(langs) == 0 {
		return lipgloss.NewStyle().
			Width(cw).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render("No word banks found. Add CSV files to the words directory.")
	}

	nameWidth := 0
	for _, l := range langs {
		nameWidth = max(nameWidth, lipgloss.Width(l.Name))
	}

	rows := make([]string, 0, len(langs))
	for i, l := range langs {
		name := l.Name + strings.Repeat(" ", nameWidth-lipgloss.Width(l.Name))
		prefix := "  "
		nameStyle := lipgloss.NewStyle().Foreground(theme.Text)
		if i == selected {
			prefix = "▸ "
			nameStyle = lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
		}
		label := nameStyle.Render(prefix + name)
		bar := components.NewProgressBar("", l.Progress, true, cw-lipgloss.Width(label)-4).View()
		rows = append(rows, label+"  "+bar)
	}
	return lipgloss.NewStyle().Width(cw).Render(strings.Join(rows, "\n"))
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

// renderArcadeMenu renders each menu item as a fixed-width button.
// selected is an index into items, or -1.
func renderArcadeMenu(items []components.MenuItem, selected int, cw int) string {
	var buttons []string
	for i, item := range items {
		if item.Disabled {
			buttons = append(buttons, lipgloss.NewStyle().
				Width(buttonWidth).
				Align(lipgloss.Center).
				Foreground(theme.TextDim).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(theme.Border).
				Padding(0, 1).
				Render(item.Label))
			continue
		}
		buttons = append(buttons, components.ArcadeButton(item.Label, i == selected, buttonWidth))
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

// renderArcadeMenuCompact renders menu items as simple text lines (no borders)
// for very small terminals where bordered buttons would overflow.
func renderArcadeMenuCompact(items []components.MenuItem, selected int, cw int) string {
	var lines []string
	for i, item := range items {
		var line string
		switch {
		case item.Disabled:
			line = lipgloss.NewStyle().
				Foreground(theme.TextDim).
				Render("   " + item.Label)
		case i == selected:
			line = lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.ArcadeYellow).
				Bold(true).
				Render(" ▸ " + item.Label + " ")
		default:
			line = lipgloss.NewStyle().
				Foreground(theme.Text).
				Render("   " + item.Label)
		}
		lines = append(lines, line)
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

// renderQuote renders the quote footer line.
func renderQuote(q string, cw int) string {
	if q == "" {
		return ""
	}
	return lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Italic(true).
		Width(cw).
		Align(lipgloss.Center).
		Render(q)
}

// renderStatus renders a one-line error or notice.
func renderStatus(msg string, cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Error).
		Width(cw).
		Align(lipgloss.Center).
		Render(msg)
}

// renderMascotBox renders the mascot centered in a box matching content width.
func renderMascotBox(variant MascotVariant, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(variant))
}
