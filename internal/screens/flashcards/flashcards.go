// Package flashcards browses and deletes saved flashcards.
package flashcards

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingua/internal/flashcard"
	"github.com/abhisek/lingua/internal/screen"
	"github.com/abhisek/lingua/internal/ui/components"
	"github.com/abhisek/lingua/internal/ui/layout"
	"github.com/abhisek/lingua/internal/ui/theme"
)

// Filters are the part-of-speech filters in cycle order. "" shows all.
var Filters = []string{"", "NOUN", "VERB", "ADJ", "ADV", "PROPN", "PRON", "DET", "ADP", "CONJ"}

const pageSize = 8

type loadedMsg struct {
	Items []flashcard.Item
	Err   error
}

// FlashcardsScreen lists flashcards, newest last.
type FlashcardsScreen struct {
	svc    screen.Services
	items  []flashcard.Item
	filter int
	cursor int
	loaded bool
	err    error
}

var _ screen.Screen = (*FlashcardsScreen)(nil)
var _ screen.KeyHintProvider = (*FlashcardsScreen)(nil)

// New creates the flashcard browser.
func New(svc screen.Services) *FlashcardsScreen {
	return &FlashcardsScreen{svc: svc}
}

// Items returns the cards currently shown.
func (f *FlashcardsScreen) Items() []flashcard.Item {
	return f.items
}

// Filter returns the active part-of-speech filter.
func (f *FlashcardsScreen) Filter() string {
	return Filters[f.filter]
}

func (f *FlashcardsScreen) Init() tea.Cmd {
	return f.load()
}

func (f *FlashcardsScreen) Title() string {
	return "Flashcards"
}

func (f *FlashcardsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "F", Description: "Filter"},
		{Key: "D", Description: "Delete"},
		{Key: "Esc", Description: "Back"},
	}
}

func (f *FlashcardsScreen) load() tea.Cmd {
	cards, filter := f.svc.Flashcards, f.Filter()
	return func() tea.Msg {
		ctx := context.Background()
		var (
			items []flashcard.Item
			err   error
		)
		if filter == "" {
			items, err = cards.List(ctx)
		} else {
			items, err = cards.ListByPartOfSpeech(ctx, filter)
		}
		return loadedMsg{Items: items, Err: err}
	}
}

func (f *FlashcardsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		f.loaded = true
		f.items, f.err = msg.Items, msg.Err
		f.cursor = min(f.cursor, max(len(f.items)-1, 0))
		return f, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if f.cursor > 0 {
				f.cursor--
			}
		case "down", "j":
			if f.cursor < len(f.items)-1 {
				f.cursor++
			}
		case "f":
			f.filter = (f.filter + 1) % len(Filters)
			f.cursor = 0
			return f, f.load()
		case "d", "delete":
			if len(f.items) == 0 {
				return f, nil
			}
			id := f.items[f.cursor].ID
			cards := f.svc.Flashcards
			reload := f.load()
			return f, func() tea.Msg {
				if err := cards.Delete(context.Background(), id); err != nil {
					return loadedMsg{Err: err}
				}
				return reload()
			}
		}
	}
	return f, nil
}

func (f *FlashcardsScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	filter := f.Filter()
	if filter == "" {
		filter = "ALL"
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true).Render("FLASHCARDS"))
	b.WriteString(dim.Render(fmt.Sprintf("  filter: %s  (%d)", filter, len(f.items))))
	b.WriteString("\n\n")

	switch {
	case f.err != nil:
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render("Could not load flashcards: " + f.err.Error()))
	case !f.loaded:
		b.WriteString(dim.Render("Loading..."))
	case len(f.items) == 0:
		b.WriteString(dim.Render("No flashcards yet. Save words from the translator."))
	default:
		b.WriteString(f.renderList(cw))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		components.ArcadeCard(b.String(), cw))
}

func (f *FlashcardsScreen) renderList(cw int) string {
	start := 0
	if f.cursor >= pageSize {
		start = f.cursor - pageSize + 1
	}
	end := min(start+pageSize, len(f.items))

	var b strings.Builder
	for i := start; i < end; i++ {
		it := f.items[i]
		tag := lipgloss.NewStyle().Foreground(theme.POSColor(it.PartOfSpeech)).Width(6).Render(it.PartOfSpeech)
		line := fmt.Sprintf("%s %s → %s", tag, it.Word, it.Translation)
		if i == f.cursor {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("▸ " + line))
		} else {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render("  " + line))
		}
		b.WriteString("\n")
	}

	cur := f.items[f.cursor]
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Width(cw - 4).
		Render(fmt.Sprintf("%s (%s → %s): %s", cur.Word, cur.SourceLanguage, cur.TargetLanguage, cur.Meaning)))
	if cur.Context != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Width(cw - 4).Render("“" + cur.Context + "”"))
	}
	return b.String()
}
