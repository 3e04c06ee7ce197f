package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lingua/internal/imagegen"
	"github.com/abhisek/lingua/internal/store"
)

func TestParseSettings(t *testing.T) {
	patch, keys, err := parseSettings([]string{
		"words_per_level=7", "TIME_PER_WORD = 15", "use_images=false",
		"sound=true", "image_provider=Gemini", "openai_key=sk-1", "gemini_key=",
	})
	require.NoError(t, err)

	require.NotNil(t, patch.WordsPerLevel)
	assert.Equal(t, 7, *patch.WordsPerLevel)
	require.NotNil(t, patch.TimePerWord)
	assert.Equal(t, 15, *patch.TimePerWord)
	require.NotNil(t, patch.UseImages)
	assert.False(t, *patch.UseImages)
	require.NotNil(t, patch.SoundEnabled)
	assert.True(t, *patch.SoundEnabled)
	require.NotNil(t, patch.ImageProvider)
	assert.Equal(t, imagegen.ProviderGemini, *patch.ImageProvider)

	assert.Equal(t, map[imagegen.ProviderName]string{
		imagegen.ProviderOpenAI: "sk-1",
		imagegen.ProviderGemini: "",
	}, keys)
}

func TestParseSettings_Errors(t *testing.T) {
	tests := []string{
		"words_per_level",
		"words_per_level=many",
		"use_images=maybe",
		"image_provider=midjourney",
		"volume=11",
	}
	for _, arg := range tests {
		_, _, err := parseSettings([]string{arg})
		assert.Error(t, err, arg)
	}
}

func TestAggregateEvents(t *testing.T) {
	stats := aggregateEvents([]store.Event{
		{Kind: store.KindTranslate, Provider: "mymemory", Success: true, LatencyMs: 100},
		{Kind: store.KindLLM, Provider: "openai", Success: true, InputTokens: 10, OutputTokens: 5, LatencyMs: 300},
		{Kind: store.KindTranslate, Provider: "lecto", Success: false, LatencyMs: 50},
		{Kind: store.KindTranslate, Provider: "mymemory", Success: false, LatencyMs: 200},
	})
	require.Len(t, stats, 3)

	assert.Equal(t, "llm", stats[0].Kind)
	assert.Equal(t, 10, stats[0].InputTokens)
	assert.Equal(t, "lecto", stats[1].Provider)
	assert.Equal(t, eventStats{
		Kind: "translate", Provider: "mymemory", Calls: 2, Failures: 1, TotalLatencyMs: 300,
	}, stats[2])
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab", truncate("abc", 2))
}
