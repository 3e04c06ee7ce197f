// Package pos tags the words of a sentence with their part of speech.
//
// Tagging tries a spaCy-style HTTP backend, then an LLM with structured
// output, then a generic tagger that marks every token as a noun. Callers
// always get entities back; only the quality degrades.
package pos

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/abhisek/lingua/internal/fallback"
	"github.com/abhisek/lingua/internal/llm"
	"github.com/abhisek/lingua/internal/store"
)

// Universal part-of-speech tags returned by the tagger.
const (
	Noun         = "NOUN"
	Verb         = "VERB"
	Adjective    = "ADJ"
	Adverb       = "ADV"
	ProperNoun   = "PROPN"
	Pronoun      = "PRON"
	Determiner   = "DET"
	Adposition   = "ADP"
	Conjunction  = "CONJ"
	Numeral      = "NUM"
	Particle     = "PART"
	Interjection = "INTJ"
)

// Tags is the tag set the LLM is asked to use.
var Tags = []string{Noun, Verb, Adjective, Adverb, ProperNoun, Pronoun, Determiner, Adposition, Conjunction}

// Strategy names.
const (
	StrategyBackend = "backend"
	StrategyLLM     = "llm"
	StrategyGeneric = "generic"
)

// Entity is one tagged word. Position holds character (rune) offsets
// [start, end) into the analyzed text, as the analysis backend reports them.
type Entity struct {
	Word     string `json:"word"`
	Type     string `json:"type"`
	Position [2]int `json:"position"`
}

// Config holds the backend location.
type Config struct {
	// BackendURL is the base URL of the analysis service, e.g.
	// "http://localhost:5000". Empty disables the backend.
	BackendURL string
	Timeout    time.Duration
}

// Tagger assigns POS tags. Safe for concurrent use.
type Tagger struct {
	cfg      Config
	client   *http.Client
	provider llm.Provider
	chain    *fallback.Chain[[]Entity]
	logger   *slog.Logger
}

// Option configures a Tagger.
type Option func(*Tagger)

// WithLLM enables the LLM strategy.
func WithLLM(p llm.Provider) Option {
	return func(t *Tagger) { t.provider = p }
}

// WithHTTPClient overrides the backend HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(t *Tagger) { t.client = c }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(t *Tagger) { t.logger = l }
}

// New creates a Tagger. repo may be nil.
func New(cfg Config, repo store.EventRepo, opts ...Option) *Tagger {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	t := &Tagger{cfg: cfg, client: &http.Client{}, logger: slog.Default()}
	for _, opt := range opts {
		opt(t)
	}
	chainOpts := fallback.Options{Logger: t.logger, Classify: classifyLLM}
	if repo != nil {
		chainOpts.Observer = fallback.EventObserver(repo, store.KindTag)
	}
	t.chain = fallback.New[[]Entity]("pos", chainOpts)
	t.logger = t.logger.With("component", "pos")
	return t
}

// Tag runs the full chain: backend, LLM, generic.
func (t *Tagger) Tag(ctx context.Context, text, lang string) []Entity {
	if strings.TrimSpace(text) == "" {
		return []Entity{}
	}
	return t.run(ctx, text, t.backendStrategy(text, lang), t.llmStrategy(text, lang))
}

// TagLocal skips the HTTP backend. The built-in API serves this so that it
// never calls itself when configured as its own backend.
func (t *Tagger) TagLocal(ctx context.Context, text, lang string) []Entity {
	if strings.TrimSpace(text) == "" {
		return []Entity{}
	}
	return t.run(ctx, text, t.llmStrategy(text, lang))
}

func (t *Tagger) run(ctx context.Context, text string, strategies ...fallback.Strategy[[]Entity]) []Entity {
	strategies = append(strategies, fallback.Strategy[[]Entity]{
		Name:  StrategyGeneric,
		Local: true,
		Run: func(context.Context) ([]Entity, error) {
			return Generic(text), nil
		},
	})
	res, err := t.chain.Do(ctx, strategies...)
	if err != nil {
		// Only reachable when ctx is already done.
		return Generic(text)
	}
	return res.Value
}

func (t *Tagger) backendStrategy(text, lang string) fallback.Strategy[[]Entity] {
	return fallback.Strategy[[]Entity]{
		Name: StrategyBackend,
		Run: func(ctx context.Context) ([]Entity, error) {
			return t.backend(ctx, text, lang)
		},
	}
}

func (t *Tagger) llmStrategy(text, lang string) fallback.Strategy[[]Entity] {
	return fallback.Strategy[[]Entity]{
		Name: StrategyLLM,
		Run: func(ctx context.Context) ([]Entity, error) {
			return t.llmTag(ctx, text, lang)
		},
	}
}

// Generic tags every whitespace-separated token as a noun. Positions are
// found by searching forward from the end of the previous token.
func Generic(text string) []Entity {
	entities := []Entity{}
	cursor := 0
	for _, word := range strings.Fields(text) {
		idx := strings.Index(text[cursor:], word)
		if idx < 0 {
			continue
		}
		start := cursor + idx
		end := start + len(word)
		entities = append(entities, Entity{Word: word, Type: Noun, Position: runeSpan(text, start, end)})
		cursor = end
	}
	return entities
}

// runeSpan converts the byte range [start, end) of text to rune offsets.
func runeSpan(text string, start, end int) [2]int {
	s := utf8.RuneCountInString(text[:start])
	return [2]int{s, s + utf8.RuneCountInString(text[start:end])}
}

// Normalize maps a tagger-specific tag onto the tag set used here. It
// reports false for tags that should not be shown (spaces, punctuation,
// symbols and unknown tokens).
func Normalize(tag string) (string, bool) {
	switch strings.ToUpper(strings.TrimSpace(tag)) {
	case Noun:
		return Noun, true
	case ProperNoun:
		return ProperNoun, true
	case Verb, "AUX":
		return Verb, true
	case Adjective:
		return Adjective, true
	case Adverb:
		return Adverb, true
	case Adposition:
		return Adposition, true
	case Conjunction, "CCONJ", "SCONJ":
		return Conjunction, true
	case Determiner:
		return Determiner, true
	case Pronoun:
		return Pronoun, true
	case Numeral:
		return Numeral, true
	case Particle:
		return Particle, true
	case Interjection:
		return Interjection, true
	default:
		return "", false
	}
}

// align keeps entities with a usable word and tag, normalizes the tag and
// repairs positions that do not point at the word.
func align(text string, in []Entity) []Entity {
	runes := []rune(text)
	out := make([]Entity, 0, len(in))
	cursor := 0
	for _, e := range in {
		if strings.TrimSpace(e.Word) == "" {
			continue
		}
		tag, ok := Normalize(e.Type)
		if !ok {
			continue
		}
		start, end := e.Position[0], e.Position[1]
		if start < 0 || end > len(runes) || start >= end || string(runes[start:end]) != e.Word {
			from := len(string(runes[:cursor]))
			idx := strings.Index(text[from:], e.Word)
			if idx < 0 {
				continue
			}
			span := runeSpan(text, from+idx, from+idx+len(e.Word))
			start, end = span[0], span[1]
		}
		out = append(out, Entity{Word: e.Word, Type: tag, Position: [2]int{start, end}})
		if end > cursor {
			cursor = end
		}
	}
	return out
}
