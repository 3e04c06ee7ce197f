// Package home is the landing screen: language picker, feature menu and
// a quote of the day.
package home

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lingua/internal/router"
	"github.com/abhisek/lingua/internal/screen"
	"github.com/abhisek/lingua/internal/screens/flashcards"
	"github.com/abhisek/lingua/internal/screens/levels"
	"github.com/abhisek/lingua/internal/screens/settings"
	"github.com/abhisek/lingua/internal/screens/translator"
	"github.com/abhisek/lingua/internal/ui/components"
	"github.com/abhisek/lingua/internal/ui/layout"
	"github.com/abhisek/lingua/internal/vocab"
)

const quoteTimeout = 8 * time.Second

type quoteMsg struct {
	text string
}

type statusMsg struct {
	text string
}

// HomeScreen is the main home screen of the application. The cursor runs
// over the languages first, then the action buttons.
type HomeScreen struct {
	svc     screen.Services
	menu    components.Menu
	langIDs []string
	quote   string
	status  string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(svc screen.Services) *HomeScreen {
	h := &HomeScreen{svc: svc}

	var items []components.MenuItem
	for _, l := range svc.Game.Languages() {
		id := l.ID
		h.langIDs = append(h.langIDs, id)
		items = append(items, components.MenuItem{
			Label:    l.Name,
			Disabled: len(l.Levels) == 0,
			Action:   func() tea.Cmd { return h.openLanguage(id) },
		})
	}

	items = append(items,
		components.MenuItem{Label: "TRANSLATOR", Disabled: svc.Translator == nil, Action: func() tea.Cmd {
			return push(translator.New(svc))
		}},
		components.MenuItem{Label: "FLASHCARDS", Action: func() tea.Cmd {
			return push(flashcards.New(svc))
		}},
		components.MenuItem{Label: "SETTINGS", Action: func() tea.Cmd {
			return push(settings.New(svc))
		}},
		components.MenuItem{Label: "NEW QUOTE", Disabled: svc.Quotes == nil, Action: func() tea.Cmd {
			return h.fetchQuote()
		}},
		components.MenuItem{Label: "QUIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	)

	h.menu = components.NewMenu(items)
	return h
}

func push(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
}

// openLanguage activates the language and opens its level list.
func (h *HomeScreen) openLanguage(id string) tea.Cmd {
	svc := h.svc
	return func() tea.Msg {
		if err := svc.Game.SetCurrentLanguage(context.Background(), id); err != nil {
			return statusMsg{text: err.Error()}
		}
		return router.PushScreenMsg{Screen: levels.New(svc, id)}
	}
}

func (h *HomeScreen) fetchQuote() tea.Cmd {
	if h.svc.Quotes == nil {
		return nil
	}
	quotes := h.svc.Quotes
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), quoteTimeout)
		defer cancel()
		return quoteMsg{text: quotes.Random(ctx).Format()}
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.fetchQuote()
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case quoteMsg:
		h.quote = msg.text
		return h, nil
	case statusMsg:
		h.status = msg.text
		return h, nil
	case tea.KeyMsg:
		h.status = ""
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	termHeight := height + layout.HeaderHeight + layout.FooterHeight
	compact := layout.IsCompactHeight(termHeight) || layout.IsCompactWidth(width)

	cw := components.ContentWidth(width)
	langs := h.svc.Game.Languages()
	nLangs := len(h.langIDs)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))

	if !compact {
		sections = append(sections, renderMascotBox(mascotFor(langs), cw))
	}

	score, completed, total := totals(h.svc.Game.Progress().TotalScore, langs)
	sections = append(sections, renderStatsBar(score, completed, total, cw, compact))

	langSel := -1
	if h.menu.Selected < nLangs {
		langSel = h.menu.Selected
	}
	sections = append(sections, renderLanguages(langs, langSel, cw))

	actions := h.menu.Items[nLangs:]
	actSel := h.menu.Selected - nLangs
	if compact {
		sections = append(sections, renderArcadeMenuCompact(actions, actSel, cw))
	} else {
		sections = append(sections, renderArcadeMenu(actions, actSel, cw))
	}

	if h.status != "" {
		sections = append(sections, renderStatus(h.status, cw))
	}
	if q := renderQuote(h.quote, cw); q != "" {
		sections = append(sections, q)
	}

	sep := "\n\n"
	if compact {
		sep = "\n"
	}
	return components.CabinetFrame(strings.Join(sections, sep), width, height)
}

func totals(score int, langs []vocab.Language) (int, int, int) {
	completed, total := 0, 0
	for i := range langs {
		completed += langs[i].CompletedCount()
		total += len(langs[i].Levels)
	}
	return score, completed, total
}

func mascotFor(langs []vocab.Language) MascotVariant {
	played := false
	for i := range langs {
		if len(langs[i].Levels) > 0 && langs[i].CompletedCount() == len(langs[i].Levels) {
			return MascotCelebrating
		}
		if langs[i].CompletedCount() > 0 {
			played = true
		}
	}
	if !played {
		return MascotAlert
	}
	return MascotIdle
}
