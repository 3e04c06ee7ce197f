package home

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lingua/internal/quote"
	"github.com/abhisek/lingua/internal/router"
	"github.com/abhisek/lingua/internal/screens/levels"
	"github.com/abhisek/lingua/internal/screens/screentest"
	"github.com/abhisek/lingua/internal/screens/settings"
)

type stubQuotes struct{}

func (stubQuotes) Random(context.Context) quote.Quote {
	return quote.Quote{Content: "Practice makes perfect.", Author: "Proverb"}
}

func TestHome_OpenLanguage(t *testing.T) {
	svc := screentest.Services(t)
	h := New(svc)

	_, cmd := h.Update(screentest.Key("enter"))
	require.NotNil(t, cmd)
	msg, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	_, ok = msg.Screen.(*levels.LevelsScreen)
	assert.True(t, ok)

	cur, ok := svc.Game.Current()
	require.True(t, ok)
	assert.Equal(t, "spanish", cur.ID)
}

func TestHome_TranslatorDisabledWithoutService(t *testing.T) {
	svc := screentest.Services(t)
	h := New(svc)

	// Languages come first, then TRANSLATOR which is skipped, then FLASHCARDS.
	for range len(svc.Game.Languages()) {
		h.Update(screentest.Key("down"))
	}
	item, ok := h.menu.Current()
	require.True(t, ok)
	assert.Equal(t, "FLASHCARDS", item.Label)

	h.Update(screentest.Key("down"))
	_, cmd := h.Update(screentest.Key("enter"))
	require.NotNil(t, cmd)
	msg, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	_, ok = msg.Screen.(*settings.SettingsScreen)
	assert.True(t, ok)
}

func TestHome_Quote(t *testing.T) {
	svc := screentest.Services(t)
	assert.Nil(t, New(svc).Init(), "no quote service, no fetch")

	svc.Quotes = stubQuotes{}
	h := New(svc)
	cmd := h.Init()
	require.NotNil(t, cmd)
	h.Update(cmd())
	assert.Contains(t, h.View(120, 80), "Practice makes perfect.")
}

func TestHome_MascotFor(t *testing.T) {
	svc := screentest.Services(t)
	assert.Equal(t, MascotAlert, mascotFor(svc.Game.Languages()))

	langs := svc.Game.Languages()
	for i := range langs[0].Levels {
		langs[0].Levels[i].Completed = true
	}
	assert.Equal(t, MascotCelebrating, mascotFor(langs))
}
