package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lingua/internal/imagegen"
	"github.com/abhisek/lingua/internal/progress"
	"github.com/abhisek/lingua/internal/router"
	"github.com/abhisek/lingua/internal/screens/screentest"
)

func press(s *SettingsScreen, keys ...string) {
	for _, k := range keys {
		s.Update(screentest.Key(k))
	}
}

func TestSettings_AdjustWithinBounds(t *testing.T) {
	svc := screentest.Services(t)
	s := New(svc)

	for range 20 {
		press(s, "right")
	}
	assert.Equal(t, progress.MaxWordsPerLevel, s.Draft().WordsPerLevel)

	press(s, "down")
	for range 20 {
		press(s, "left")
	}
	assert.Equal(t, progress.MinTimePerWord, s.Draft().TimePerWord)

	// Nothing is applied before Save.
	assert.Equal(t, progress.DefaultSettings().WordsPerLevel, svc.Game.Settings().WordsPerLevel)
}

func TestSettings_SaveAppliesAndPops(t *testing.T) {
	svc := screentest.Services(t)
	s := New(svc)

	press(s, "right", "right")        // words 5 -> 7
	press(s, "down", "down", "enter") // images off
	press(s, "down", "down", "enter") // provider -> gemini
	press(s, "down", "down")
	require.Equal(t, rowSave, s.cursor)

	_, cmd := s.Update(screentest.Key("enter"))
	require.NotNil(t, cmd)
	_, ok := cmd().(router.PopScreenMsg)
	assert.True(t, ok)

	got := svc.Game.Settings()
	assert.Equal(t, 7, got.WordsPerLevel)
	assert.False(t, got.UseImages)
	assert.Equal(t, imagegen.ProviderGemini, got.ImageProvider)

	lang, ok := svc.Game.Language("spanish")
	require.True(t, ok)
	assert.Len(t, lang.Levels[0].Words, 7)
}

func TestSettings_APIKeyEntry(t *testing.T) {
	svc := screentest.Services(t)
	s := New(svc)

	for s.cursor != rowAPIKey {
		press(s, "down")
	}
	press(s, "enter")
	require.True(t, s.CapturesEsc(), "editing keeps esc on this screen")

	for _, k := range screentest.Type("sk-test") {
		s.Update(k)
	}
	assert.NotContains(t, s.View(100, 30), "sk-test", "keys are masked")
	press(s, "enter")
	assert.False(t, s.CapturesEsc())

	key, err := svc.Game.APIKey(context.Background(), imagegen.ProviderOpenAI)
	require.NoError(t, err)
	assert.Equal(t, "sk-test", key)
	assert.Contains(t, s.View(100, 30), "key updated")
}

func TestSettings_APIKeyCancel(t *testing.T) {
	svc := screentest.Services(t)
	s := New(svc)

	for s.cursor != rowAPIKey {
		press(s, "down")
	}
	press(s, "enter", "x", "esc")
	assert.False(t, s.CapturesEsc())

	key, err := svc.Game.APIKey(context.Background(), imagegen.ProviderOpenAI)
	require.NoError(t, err)
	assert.Empty(t, key)
}

func TestSettings_WarnsWhenWordsPerLevelChanges(t *testing.T) {
	s := New(screentest.Services(t))
	assert.NotContains(t, s.View(100, 30), "rebuilds every level")

	press(s, "right")
	assert.Contains(t, s.View(100, 30), "rebuilds every level")
}
