package translator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lingua/internal/pos"
	"github.com/abhisek/lingua/internal/screens/screentest"
	"github.com/abhisek/lingua/internal/translate"
)

type stubTranslator struct {
	target string
}

func (s *stubTranslator) Translate(_ context.Context, text, target, _ string) translate.Translation {
	s.target = target
	return translate.Translation{
		OriginalText:   text,
		TranslatedText: "el gato duerme",
		SourceLanguage: "en",
		TargetLanguage: target,
		Provider:       translate.StrategyLecto,
	}
}

type stubTagger struct {
	lang string
}

func (s *stubTagger) Tag(_ context.Context, _, lang string) []pos.Entity {
	s.lang = lang
	return []pos.Entity{
		{Word: "the", Type: "DET", Position: [2]int{0, 3}},
		{Word: "cat", Type: "NOUN", Position: [2]int{4, 7}},
		{Word: "sleeps", Type: "VERB", Position: [2]int{8, 14}},
	}
}

func newScreen(t *testing.T) (*TranslatorScreen, *stubTranslator, *stubTagger) {
	t.Helper()
	svc := screentest.Services(t)
	tr, tg := &stubTranslator{}, &stubTagger{}
	svc.Translator, svc.Tagger = tr, tg
	s := New(svc)
	s.Init()
	return s, tr, tg
}

func submit(t *testing.T, s *TranslatorScreen, text string) {
	t.Helper()
	for _, k := range screentest.Type(text) {
		s.Update(k)
	}
	_, cmd := s.Update(screentest.Key("enter"))
	require.NotNil(t, cmd)
	assert.Contains(t, s.View(100, 30), "Translating...")
	s.Update(cmd())
}

func TestTranslator_TargetCycle(t *testing.T) {
	s, _, _ := newScreen(t)
	assert.Equal(t, "es", s.Target())
	for range len(Targets) - 1 {
		s.Update(screentest.Key("ctrl+t"))
	}
	assert.Equal(t, "ru", s.Target())
	s.Update(screentest.Key("ctrl+t"))
	assert.Equal(t, "es", s.Target())
}

func TestTranslator_TranslateAndTag(t *testing.T) {
	s, tr, tg := newScreen(t)
	s.Update(screentest.Key("ctrl+t")) // fr

	submit(t, s, "the cat sleeps")

	assert.Equal(t, "fr", tr.target)
	assert.Equal(t, "en", tg.lang, "tagging uses the detected source")
	out := s.View(100, 30)
	assert.Contains(t, out, "el gato duerme")
	assert.Contains(t, out, "sleeps")
}

func TestTranslator_EmptyInputIgnored(t *testing.T) {
	s, _, _ := newScreen(t)
	_, cmd := s.Update(screentest.Key("enter"))
	assert.Nil(t, cmd)
}

func TestTranslator_SaveWord(t *testing.T) {
	s, _, _ := newScreen(t)
	submit(t, s, "the cat sleeps")

	s.Update(screentest.Key("tab"))
	require.True(t, s.CapturesEsc())
	s.Update(screentest.Key("right"))
	out := s.View(100, 30)
	assert.Contains(t, out, "NOUN")
	assert.Contains(t, out, "A word that represents", "the selected word's part of speech is explained")

	_, cmd := s.Update(screentest.Key("s"))
	require.NotNil(t, cmd)
	s.Update(cmd())
	assert.Contains(t, s.View(100, 30), "Saved 1 flashcard(s).")

	items, err := s.svc.Flashcards.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "cat", items[0].Word)
	assert.Equal(t, "el gato duerme", items[0].Translation)
	assert.Equal(t, "NOUN", items[0].PartOfSpeech)
	assert.Equal(t, "the cat sleeps", items[0].Context)
	assert.Equal(t, "en", items[0].SourceLanguage)
	assert.Equal(t, "es", items[0].TargetLanguage)

	s.Update(screentest.Key("esc"))
	assert.False(t, s.CapturesEsc())
}

func TestTranslator_SaveAll(t *testing.T) {
	s, _, _ := newScreen(t)
	submit(t, s, "the cat sleeps")

	s.Update(screentest.Key("tab"))
	_, cmd := s.Update(screentest.Key("a"))
	require.NotNil(t, cmd)
	s.Update(cmd())

	n, err := s.svc.Flashcards.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestTranslator_Unconfigured(t *testing.T) {
	s := New(screentest.Services(t))
	for _, k := range screentest.Type("hola") {
		s.Update(k)
	}
	_, cmd := s.Update(screentest.Key("enter"))
	assert.Nil(t, cmd)
	assert.Contains(t, s.View(100, 30), "not configured")
}
