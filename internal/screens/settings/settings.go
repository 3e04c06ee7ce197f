// Package settings edits game settings and image provider keys.
package settings

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingua/internal/imagegen"
	"github.com/abhisek/lingua/internal/progress"
	"github.com/abhisek/lingua/internal/router"
	"github.com/abhisek/lingua/internal/screen"
	"github.com/abhisek/lingua/internal/ui/components"
	"github.com/abhisek/lingua/internal/ui/layout"
	"github.com/abhisek/lingua/internal/ui/theme"
)

const timeStep = 5

type row int

const (
	rowWords row = iota
	rowTime
	rowImages
	rowSound
	rowProvider
	rowAPIKey
	rowSave
	rowCount
)

// SettingsScreen holds an editable draft of the settings. Nothing is
// applied until Save; API keys are stored as soon as they are entered.
type SettingsScreen struct {
	svc    screen.Services
	draft  progress.GameSettings
	cursor row

	editing bool
	keyIn   components.TextInput
	hasKey  map[imagegen.ProviderName]bool
	status  string
}

var _ screen.Screen = (*SettingsScreen)(nil)
var _ screen.KeyHintProvider = (*SettingsScreen)(nil)
var _ screen.EscCapturer = (*SettingsScreen)(nil)

// New creates a SettingsScreen seeded from the stored settings.
func New(svc screen.Services) *SettingsScreen {
	s := &SettingsScreen{
		svc:    svc,
		draft:  svc.Game.Settings(),
		hasKey: make(map[imagegen.ProviderName]bool),
	}
	for _, p := range []imagegen.ProviderName{imagegen.ProviderOpenAI, imagegen.ProviderGemini} {
		if key, err := svc.Game.APIKey(context.Background(), p); err == nil && key != "" {
			s.hasKey[p] = true
		}
	}
	return s
}

// Draft returns the unsaved settings.
func (s *SettingsScreen) Draft() progress.GameSettings {
	return s.draft
}

func (s *SettingsScreen) Init() tea.Cmd {
	return nil
}

func (s *SettingsScreen) Title() string {
	return "Settings"
}

func (s *SettingsScreen) CapturesEsc() bool {
	return s.editing
}

func (s *SettingsScreen) KeyHints() []layout.KeyHint {
	if s.editing {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Store key"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "←→", Description: "Change"},
		{Key: "Enter", Description: "Toggle/Save"},
		{Key: "Esc", Description: "Discard"},
	}
}

func (s *SettingsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if s.editing {
			var cmd tea.Cmd
			s.keyIn, cmd = s.keyIn.Update(msg)
			return s, cmd
		}
		return s, nil
	}
	if s.editing {
		return s.updateKeyInput(kmsg)
	}

	switch kmsg.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j", "tab":
		if s.cursor < rowCount-1 {
			s.cursor++
		}
	case "left", "h":
		s.adjust(-1)
	case "right", "l":
		s.adjust(1)
	case "enter", "space":
		return s, s.activate()
	}
	return s, nil
}

func (s *SettingsScreen) updateKeyInput(kmsg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch kmsg.String() {
	case "esc":
		s.editing = false
		s.keyIn.Blur()
		return s, nil
	case "enter":
		key := s.keyIn.Value()
		provider := s.provider()
		if err := s.svc.Game.SetAPIKey(context.Background(), provider, key); err != nil {
			s.status = "Could not store key: " + err.Error()
		} else {
			s.hasKey[provider] = key != ""
			s.status = fmt.Sprintf("%s key updated", provider)
		}
		s.editing = false
		s.keyIn.Blur()
		return s, nil
	}
	var cmd tea.Cmd
	s.keyIn, cmd = s.keyIn.Update(kmsg)
	return s, cmd
}

func (s *SettingsScreen) provider() imagegen.ProviderName {
	if s.draft.ImageProvider.Valid() {
		return s.draft.ImageProvider
	}
	return imagegen.ProviderOpenAI
}

// adjust steps the numeric rows and flips the toggle rows.
func (s *SettingsScreen) adjust(dir int) {
	switch s.cursor {
	case rowWords:
		s.draft.WordsPerLevel = clamp(s.draft.WordsPerLevel+dir, progress.MinWordsPerLevel, progress.MaxWordsPerLevel)
	case rowTime:
		s.draft.TimePerWord = clamp(s.draft.TimePerWord+dir*timeStep, progress.MinTimePerWord, progress.MaxTimePerWord)
	case rowImages:
		s.draft.UseImages = !s.draft.UseImages
	case rowSound:
		s.draft.SoundEnabled = !s.draft.SoundEnabled
	case rowProvider:
		s.draft.ImageProvider = s.provider().Other()
	}
}

func (s *SettingsScreen) activate() tea.Cmd {
	switch s.cursor {
	case rowImages, rowSound, rowProvider:
		s.adjust(1)
	case rowAPIKey:
		s.editing = true
		s.keyIn = components.NewTextInput(string(s.provider()), "paste API key, empty to remove", 200, true)
		return s.keyIn.Focus()
	case rowSave:
		draft := s.draft
		s.svc.Game.UpdateSettings(context.Background(), progress.SettingsPatch{
			WordsPerLevel: &draft.WordsPerLevel,
			TimePerWord:   &draft.TimePerWord,
			UseImages:     &draft.UseImages,
			SoundEnabled:  &draft.SoundEnabled,
			ImageProvider: &draft.ImageProvider,
		})
		return func() tea.Msg { return router.PopScreenMsg{} }
	}
	return nil
}

func (s *SettingsScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	labelW := 18

	onOff := func(b bool) string {
		if b {
			return theme.Correct.Render("ON")
		}
		return lipgloss.NewStyle().Foreground(theme.TextDim).Render("OFF")
	}
	keyState := lipgloss.NewStyle().Foreground(theme.TextDim).Render("not set")
	if s.hasKey[s.provider()] {
		keyState = theme.Correct.Render("set")
	}

	rows := []struct {
		label string
		value string
	}{
		{"Words per level", fmt.Sprintf("◂ %2d ▸", s.draft.WordsPerLevel)},
		{"Time per word", fmt.Sprintf("◂ %2ds ▸", s.draft.TimePerWord)},
		{"Word images", onOff(s.draft.UseImages)},
		{"Sound", onOff(s.draft.SoundEnabled)},
		{"Image provider", string(s.provider())},
		{"API key", keyState},
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true).Render("GAME SETTINGS"))
	b.WriteString("\n\n")
	for i, r := range rows {
		label := lipgloss.NewStyle().Width(labelW).Render(r.label)
		line := label + r.value
		if row(i) == s.cursor {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("▸ " + line))
		} else {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render("  " + line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(components.Button{Label: "Save"}.View(s.cursor == rowSave))
	b.WriteString("\n\n")

	if s.editing {
		b.WriteString(s.keyIn.View())
		b.WriteString("\n")
	}
	if s.status != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(s.status))
		b.WriteString("\n")
	}
	if s.draft.WordsPerLevel != s.svc.Game.Settings().WordsPerLevel {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Warning).
			Render("Changing words per level rebuilds every level."))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		components.ArcadeCard(b.String(), cw))
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
