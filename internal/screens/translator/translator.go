// Package translator translates free text, highlights parts of speech and
// saves words as flashcards.
package translator

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingua/internal/flashcard"
	"github.com/abhisek/lingua/internal/pos"
	"github.com/abhisek/lingua/internal/screen"
	"github.com/abhisek/lingua/internal/translate"
	"github.com/abhisek/lingua/internal/ui/components"
	"github.com/abhisek/lingua/internal/ui/layout"
	"github.com/abhisek/lingua/internal/ui/theme"
)

const requestTimeout = 20 * time.Second

// Targets are the languages offered for translation, in cycle order.
var Targets = []string{"es", "fr", "de", "ja", "ko", "ar", "ru"}

type resultMsg struct {
	Translation translate.Translation
	Entities    []pos.Entity
}

type savedMsg struct {
	Count int
	Err   error
}

// TranslatorScreen has two focus areas: the text input and the tagged
// result. Tab moves between them.
type TranslatorScreen struct {
	svc    screen.Services
	input  components.TextInput
	target int

	loading  bool
	result   *resultMsg
	selected int
	onResult bool
	status   string
}

var _ screen.Screen = (*TranslatorScreen)(nil)
var _ screen.KeyHintProvider = (*TranslatorScreen)(nil)
var _ screen.EscCapturer = (*TranslatorScreen)(nil)

// New creates the translator screen.
func New(svc screen.Services) *TranslatorScreen {
	return &TranslatorScreen{
		svc:   svc,
		input: components.NewTextInput("Text", "type something to translate", 500, false),
	}
}

// Target returns the selected target language code.
func (t *TranslatorScreen) Target() string {
	return Targets[t.target]
}

func (t *TranslatorScreen) Init() tea.Cmd {
	return t.input.Init()
}

func (t *TranslatorScreen) Title() string {
	return "Translator"
}

func (t *TranslatorScreen) CapturesEsc() bool {
	return t.onResult
}

func (t *TranslatorScreen) KeyHints() []layout.KeyHint {
	if t.onResult {
		return []layout.KeyHint{
			{Key: "←→", Description: "Word"},
			{Key: "S", Description: "Save word"},
			{Key: "A", Description: "Save all"},
			{Key: "Esc", Description: "Edit text"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Translate"},
		{Key: "Ctrl+T", Description: "Target"},
		{Key: "Tab", Description: "Results"},
		{Key: "Esc", Description: "Back"},
	}
}

func (t *TranslatorScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case resultMsg:
		t.loading = false
		t.result = &msg
		t.selected = 0
		t.status = ""
		if msg.Translation.Provider == translate.StrategyEcho {
			t.status = "Translation services are unavailable; showing the original text."
		}
		return t, nil

	case savedMsg:
		if msg.Err != nil {
			t.status = "Save failed: " + msg.Err.Error()
		} else {
			t.status = fmt.Sprintf("Saved %d flashcard(s).", msg.Count)
		}
		return t, nil

	case tea.KeyMsg:
		if t.onResult {
			return t.updateResult(msg)
		}
		return t.updateInput(msg)
	}

	var cmd tea.Cmd
	t.input, cmd = t.input.Update(msg)
	return t, cmd
}

func (t *TranslatorScreen) updateInput(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "ctrl+t":
		t.target = (t.target + 1) % len(Targets)
		return t, nil
	case "tab":
		if t.result != nil && len(t.result.Entities) > 0 {
			t.onResult = true
			t.input.Blur()
		}
		return t, nil
	case "enter":
		text := t.input.Value()
		if text == "" || t.loading || t.svc.Translator == nil {
			return t, nil
		}
		t.loading = true
		t.status = ""
		return t, t.translate(text, t.Target())
	}
	var cmd tea.Cmd
	t.input, cmd = t.input.Update(msg)
	return t, cmd
}

func (t *TranslatorScreen) updateResult(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	n := len(t.result.Entities)
	switch msg.String() {
	case "esc", "tab":
		t.onResult = false
		return t, t.input.Focus()
	case "left", "h":
		t.selected = (t.selected - 1 + n) % n
	case "right", "l":
		t.selected = (t.selected + 1) % n
	case "s", "enter":
		return t, t.save(t.result.Entities[t.selected])
	case "a":
		return t, t.save(t.result.Entities...)
	}
	return t, nil
}

// translate runs the translation, then tags the original text in the
// language the translator detected.
func (t *TranslatorScreen) translate(text, target string) tea.Cmd {
	translator, tagger := t.svc.Translator, t.svc.Tagger
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		tr := translator.Translate(ctx, text, target, "")
		var entities []pos.Entity
		if tagger != nil {
			entities = tagger.Tag(ctx, text, tr.SourceLanguage)
		}
		return resultMsg{Translation: tr, Entities: entities}
	}
}

func (t *TranslatorScreen) save(entities ...pos.Entity) tea.Cmd {
	tr := t.result.Translation
	cards := t.svc.Flashcards
	items := make([]flashcard.Item, len(entities))
	for i, e := range entities {
		items[i] = flashcard.Item{
			Word:           e.Word,
			Translation:    tr.TranslatedText,
			Meaning:        pos.Describe(e.Type),
			PartOfSpeech:   e.Type,
			SourceLanguage: tr.SourceLanguage,
			TargetLanguage: tr.TargetLanguage,
			Context:        tr.OriginalText,
		}
	}
	return func() tea.Msg {
		saved, err := cards.AddMultiple(context.Background(), items)
		return savedMsg{Count: len(saved), Err: err}
	}
}

func (t *TranslatorScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	var b strings.Builder
	b.WriteString(dim.Render("auto → "))
	b.WriteString(lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true).Render(t.Target()))
	b.WriteString("\n\n")
	b.WriteString(t.input.View())
	b.WriteString("\n\n")

	switch {
	case t.svc.Translator == nil:
		b.WriteString(dim.Render("Translation is not configured."))
	case t.loading:
		b.WriteString(dim.Render("Translating..."))
	case t.result != nil:
		b.WriteString(t.renderResult(cw))
	}
	if t.status != "" {
		b.WriteString("\n\n")
		b.WriteString(dim.Render(t.status))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		components.ArcadeCard(b.String(), cw))
}

func (t *TranslatorScreen) renderResult(cw int) string {
	r := t.result
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).
		Width(cw - 4).Render(r.Translation.TranslatedText))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("%s → %s via %s", r.Translation.SourceLanguage, r.Translation.TargetLanguage, r.Translation.Provider)))
	b.WriteString("\n\n")

	if len(r.Entities) == 0 {
		return b.String()
	}
	words := make([]string, len(r.Entities))
	for i, e := range r.Entities {
		style := lipgloss.NewStyle().Foreground(theme.POSColor(e.Type))
		if t.onResult && i == t.selected {
			style = style.Bold(true).Underline(true)
		}
		words[i] = style.Render(e.Word)
	}
	b.WriteString(strings.Join(words, " "))

	if t.onResult {
		e := r.Entities[t.selected]
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.POSColor(e.Type)).Bold(true).Render(e.Type))
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render("  " + pos.Describe(e.Type)))
	}
	return b.String()
}
