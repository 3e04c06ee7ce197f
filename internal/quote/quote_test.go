package quote

import (
	"context"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, status int, body string) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

func newService(cfg Config) *Service {
	return New(cfg,
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithRand(rand.New(rand.NewPCG(1, 2))),
	)
}

func TestRandom_Formats(t *testing.T) {
	tests := []struct {
		name string
		body string
		want Quote
	}{
		{"q/a", `[{"q":"Keep going.","a":"Anon"}]`, Quote{Content: "Keep going.", Author: "Anon"}},
		{"quote/author", `{"quote":"Stay curious.","author":"Ada"}`, Quote{Content: "Stay curious.", Author: "Ada"}},
		{"content/author", `{"content":"Begin.","author":"Lao"}`, Quote{Content: "Begin.", Author: "Lao"}},
		{"animechan v1", `{"status":"success","data":{"content":"Believe it.","anime":{"name":"Naruto"},"character":{"name":"Naruto Uzumaki"}}}`,
			Quote{Content: "Believe it.", Author: "Naruto Uzumaki"}},
		{"wrapped array", `{"content":[{"q":"One.","a":"Two"}]}`, Quote{Content: "One.", Author: "Two"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newService(Config{RandomURL: serve(t, http.StatusOK, tt.body)})
			got := s.Random(context.Background())
			tt.want.Source = StrategyRandom
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRandom_FallsBackToBuiltin(t *testing.T) {
	for _, body := range []string{`{"message":"rate limited"}`, `[]`, `<html>`} {
		s := newService(Config{RandomURL: serve(t, http.StatusOK, body)})
		got := s.Random(context.Background())
		assert.Equal(t, StrategyBuiltin, got.Source, "body %s", body)
		assert.Contains(t, builtinQuotes, got)
	}

	s := newService(Config{RandomURL: serve(t, http.StatusTooManyRequests, "")})
	assert.Equal(t, StrategyBuiltin, s.Random(context.Background()).Source)
}

func TestCharacter_PrimaryThenBackup(t *testing.T) {
	good := `{"anime":"Bleach","character":"Ichigo Kurosaki","quote":"I'm not fighting because I want to win."}`

	s := newService(Config{
		CharacterURL:       serve(t, http.StatusOK, good),
		CharacterBackupURL: serve(t, http.StatusInternalServerError, ""),
	})
	got := s.Character(context.Background())
	assert.Equal(t, CharacterQuote{
		Content:   "I'm not fighting because I want to win.",
		Character: "Ichigo Kurosaki",
		Anime:     "Bleach",
		Source:    StrategyPrimary,
	}, got)

	s = newService(Config{
		CharacterURL:       serve(t, http.StatusBadGateway, ""),
		CharacterBackupURL: serve(t, http.StatusOK, good),
	})
	assert.Equal(t, StrategyBackup, s.Character(context.Background()).Source)
}

func TestCharacter_Builtin(t *testing.T) {
	s := newService(Config{
		CharacterURL:       serve(t, http.StatusOK, `{"anime":"Bleach"}`),
		CharacterBackupURL: serve(t, http.StatusServiceUnavailable, ""),
	})
	got := s.Character(context.Background())
	require.Equal(t, StrategyBuiltin, got.Source)
	assert.Contains(t, builtinCharacterQuotes, got)
}

func TestBuiltinLists(t *testing.T) {
	assert.Len(t, builtinQuotes, 5)
	assert.Len(t, builtinCharacterQuotes, 5)
	for _, q := range builtinCharacterQuotes {
		assert.NotEmpty(t, q.Content)
		assert.NotEmpty(t, q.Character)
		assert.NotEmpty(t, q.Anime)
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, `"Begin." - Lao Tzu`, Quote{Content: "Begin.", Author: "Lao Tzu"}.Format())
	assert.Equal(t, `"Believe it." - Naruto (Naruto)`,
		CharacterQuote{Content: "Believe it.", Character: "Naruto", Anime: "Naruto"}.Format())
}
