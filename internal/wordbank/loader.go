// Package wordbank loads per-language vocabulary from two-column word
// bank files (CSV or XLSX) and turns it into levels.
package wordbank

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"

	"github.com/abhisek/lingua/internal/vocab"
)

// Loader resolves languages from a catalog and a Source.
type Loader struct {
	source  Source
	catalog Catalog
	logger  *slog.Logger
	rng     *rand.Rand
}

// Option configures a Loader.
type Option func(*Loader)

// WithLogger sets the logger used for load warnings.
func WithLogger(l *slog.Logger) Option {
	return func(ld *Loader) { ld.logger = l }
}

// WithRand fixes the shuffle source, for tests.
func WithRand(r *rand.Rand) Option {
	return func(ld *Loader) { ld.rng = r }
}

// NewLoader creates a Loader.
func NewLoader(source Source, catalog Catalog, opts ...Option) *Loader {
	l := &Loader{
		source:  source,
		catalog: catalog,
		logger:  slog.Default(),
	}
	for _, o := range opts {
		o(l)
	}
	l.logger = l.logger.With("component", "wordbank")
	return l
}

// Catalog returns the languages the loader knows about.
func (l *Loader) Catalog() Catalog {
	return l.catalog
}

// Words loads the vocabulary for a language. Any failure (unknown id,
// missing source, too few columns, parse error) yields an empty result
// and a logged warning; the caller treats that as "no vocabulary".
func (l *Loader) Words(ctx context.Context, languageID string) []vocab.Word {
	entry, ok := l.catalog.Entry(languageID)
	if !ok {
		l.logger.Warn("language not in catalog", "language", languageID)
		return nil
	}

	rc, format, err := l.source.Open(ctx, entry)
	if err != nil {
		if errors.Is(err, ErrSourceNotFound) {
			l.logger.Warn("word bank not found", "language", languageID)
		} else {
			l.logger.Warn("open word bank", "language", languageID, "error", err)
		}
		return nil
	}
	defer rc.Close()

	words, err := Parse(rc, format)
	if err != nil {
		l.logger.Warn("parse word bank", "language", languageID, "format", format.String(), "error", err)
		return nil
	}
	if len(words) == 0 {
		l.logger.Warn("word bank is empty", "language", languageID)
		return nil
	}
	l.logger.Debug("word bank loaded", "language", languageID, "words", len(words))
	return words
}

// LoadLanguage loads a language and generates its levels. ok is false
// when no vocabulary is available.
func (l *Loader) LoadLanguage(ctx context.Context, languageID string, wordsPerLevel int) (vocab.Language, bool) {
	words := l.Words(ctx, languageID)
	if len(words) == 0 {
		return vocab.Language{}, false
	}
	entry, _ := l.catalog.Entry(languageID)
	return vocab.Language{
		ID:     entry.ID,
		Name:   entry.Name,
		Words:  words,
		Levels: vocab.GenerateLevels(words, wordsPerLevel, l.rng),
	}, true
}

// LoadAll loads every catalog language with vocabulary, in catalog order.
func (l *Loader) LoadAll(ctx context.Context, wordsPerLevel int) []vocab.Language {
	var out []vocab.Language
	for _, e := range l.catalog.Languages {
		if lang, ok := l.LoadLanguage(ctx, e.ID, wordsPerLevel); ok {
			out = append(out, lang)
		}
	}
	return out
}
