package levels

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lingua/internal/progress"
	"github.com/abhisek/lingua/internal/router"
	"github.com/abhisek/lingua/internal/screens/screentest"
	sessionscreen "github.com/abhisek/lingua/internal/screens/session"
)

func TestLevels_ListAndPlay(t *testing.T) {
	svc := screentest.Services(t)
	require.NoError(t, svc.Game.SetCurrentLanguage(context.Background(), "spanish"))
	l := New(svc, "spanish")

	assert.Equal(t, "Spanish", l.Title())
	out := l.View(100, 40)
	assert.Contains(t, out, "Level 1")
	assert.Contains(t, out, "0/6 complete")

	l.Update(screentest.Key("down"))
	_, cmd := l.Update(screentest.Key("enter"))
	require.NotNil(t, cmd)
	msg, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	s, ok := msg.Screen.(*sessionscreen.SessionScreen)
	require.True(t, ok)
	assert.Equal(t, 2, s.State().Level.ID)
}

func TestLevels_ShowsCompletion(t *testing.T) {
	svc := screentest.Services(t)
	require.NoError(t, svc.Game.SetCurrentLanguage(context.Background(), "spanish"))
	svc.Game.UpdateProgress(context.Background(), "spanish", 1, 80)

	out := New(svc, "spanish").View(100, 40)
	assert.Contains(t, out, "✓")
	assert.Contains(t, out, "80%")
	assert.Contains(t, out, "1/6 complete")
}

func TestLevels_TooSmallLevelShowsError(t *testing.T) {
	svc := screentest.Services(t)
	one := 1
	svc.Game.UpdateSettings(context.Background(), progress.SettingsPatch{WordsPerLevel: &one})
	require.NoError(t, svc.Game.SetCurrentLanguage(context.Background(), "spanish"))
	l := New(svc, "spanish")

	_, cmd := l.Update(screentest.Key("enter"))
	assert.Nil(t, cmd)
	assert.Contains(t, l.View(100, 40), "need")
}

func TestLevels_UnknownLanguage(t *testing.T) {
	l := New(screentest.Services(t), "klingon")
	assert.Contains(t, l.View(100, 40), "Unknown language")
}
