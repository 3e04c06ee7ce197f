// Package screentest builds services and key messages for screen tests.
package screentest

import (
	"context"
	"io"
	"log/slog"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lingua/internal/flashcard"
	"github.com/abhisek/lingua/internal/progress"
	"github.com/abhisek/lingua/internal/screen"
	"github.com/abhisek/lingua/internal/store"
	"github.com/abhisek/lingua/internal/wordbank"
)

// Services returns a game store over the embedded word banks and an
// in-memory flashcard store. Network services are left nil.
func Services(t testing.TB) screen.Services {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	kv := store.NewMemoryKV()
	loader := wordbank.NewLoader(wordbank.NewEmbeddedSource(), wordbank.BuiltinCatalog(), wordbank.WithLogger(logger))
	game := progress.New(kv, loader, progress.WithLogger(logger))
	if err := game.LoadInitialState(context.Background()); err != nil {
		t.Fatalf("LoadInitialState: %v", err)
	}
	return screen.Services{Game: game, Flashcards: flashcard.New(kv)}
}

// Key builds a key press for a name like "enter", "esc" or a single rune.
func Key(name string) tea.KeyPressMsg {
	switch name {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "tab":
		return tea.KeyPressMsg{Code: tea.KeyTab}
	case "space":
		return tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "left":
		return tea.KeyPressMsg{Code: tea.KeyLeft}
	case "right":
		return tea.KeyPressMsg{Code: tea.KeyRight}
	case "backspace":
		return tea.KeyPressMsg{Code: tea.KeyBackspace}
	case "ctrl+t":
		return tea.KeyPressMsg{Code: 't', Mod: tea.ModCtrl}
	}
	r := []rune(name)[0]
	return tea.KeyPressMsg{Code: r, Text: name}
}

// Type returns one key press per rune of s.
func Type(s string) []tea.KeyPressMsg {
	out := make([]tea.KeyPressMsg, 0, len(s))
	for _, r := range s {
		out = append(out, tea.KeyPressMsg{Code: r, Text: string(r)})
	}
	return out
}
