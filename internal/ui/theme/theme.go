package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Color palette
var (
	Primary   = lipgloss.Color("#8B5CF6") // Vivid Purple
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F97316") // Orange
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#0F172A") // Deep Navy
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate

	ArcadeYellow = lipgloss.Color("#FACC15")
	ArcadeCyan   = lipgloss.Color("#22D3EE")
)

// Part-of-speech highlight colors, one per tag.
var posColors = map[string]color.Color{
	"NOUN":  lipgloss.Color("#60A5FA"), // Blue
	"VERB":  lipgloss.Color("#4ADE80"), // Green
	"ADJ":   lipgloss.Color("#FACC15"), // Yellow
	"ADV":   lipgloss.Color("#C084FC"), // Purple
	"PROPN": lipgloss.Color("#F87171"), // Red
	"NUM":   lipgloss.Color("#9CA3AF"), // Gray
	"DET":   lipgloss.Color("#F472B6"), // Pink
	"PRON":  lipgloss.Color("#818CF8"), // Indigo
	"ADP":   lipgloss.Color("#FB923C"), // Orange
	"CONJ":  lipgloss.Color("#2DD4BF"), // Teal
	"PART":  lipgloss.Color("#22D3EE"), // Cyan
}

// POSColor returns the highlight color for a part-of-speech tag.
func POSColor(tag string) color.Color {
	if c, ok := posColors[tag]; ok {
		return c
	}
	return TextDim
}

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)
