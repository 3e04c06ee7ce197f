package screen

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lingua/internal/flashcard"
	"github.com/abhisek/lingua/internal/imagegen"
	"github.com/abhisek/lingua/internal/pos"
	"github.com/abhisek/lingua/internal/progress"
	"github.com/abhisek/lingua/internal/quote"
	"github.com/abhisek/lingua/internal/translate"
	"github.com/abhisek/lingua/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Translator translates text.
type Translator interface {
	Translate(ctx context.Context, text, target, source string) translate.Translation
}

// Tagger tags parts of speech.
type Tagger interface {
	Tag(ctx context.Context, text, lang string) []pos.Entity
}

// Images renders word images.
type Images interface {
	GenerateFor(ctx context.Context, word, subject string) (imagegen.Image, error)
}

// Quotes serves the home screen quote.
type Quotes interface {
	Random(ctx context.Context) quote.Quote
}

// Services are the dependencies shared by every screen. Game and
// Flashcards are required; the rest may be nil.
type Services struct {
	Game       *progress.Store
	Flashcards *flashcard.Store
	Translator Translator
	Tagger     Tagger
	Images     Images
	Quotes     Quotes
}

// EscCapturer is implemented by screens that use Esc themselves, e.g. to
// open a confirmation or leave an edit field. While CapturesEsc reports
// true the app forwards Esc instead of popping the screen.
type EscCapturer interface {
	CapturesEsc() bool
}
