// Package quote fetches a motivational quote for the home screen, with a
// built-in list for when the quote services are unreachable.
package quote

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"sync"
	"time"

	"github.com/abhisek/lingua/internal/fallback"
	"github.com/abhisek/lingua/internal/store"
)

// Quote is a general quote.
type Quote struct {
	Content string `json:"content"`
	Author  string `json:"author"`
	Source  string `json:"source"`
}

// Format renders `"content" - author`.
func (q Quote) Format() string {
	return fmt.Sprintf("\"%s\" - %s", q.Content, q.Author)
}

// CharacterQuote is a quote attributed to an anime character.
type CharacterQuote struct {
	Content   string `json:"content"`
	Character string `json:"character"`
	Anime     string `json:"anime"`
	Source    string `json:"source"`
}

// Format renders `"content" - character (anime)`.
func (q CharacterQuote) Format() string {
	return fmt.Sprintf("\"%s\" - %s (%s)", q.Content, q.Character, q.Anime)
}

// Strategy names.
const (
	StrategyRandom  = "animechan"
	StrategyPrimary = "animechan-xyz"
	StrategyBackup  = "animechan-vercel"
	StrategyBuiltin = "builtin"
)

// Config holds the service endpoints.
type Config struct {
	RandomURL          string
	CharacterURL       string
	CharacterBackupURL string
	Timeout            time.Duration
}

// DefaultConfig returns the public endpoints.
func DefaultConfig() Config {
	return Config{
		RandomURL:          "https://api.animechan.io/v1/quotes/random",
		CharacterURL:       "https://animechan.xyz/api/random",
		CharacterBackupURL: "https://animechan.vercel.app/api/random",
		Timeout:            5 * time.Second,
	}
}

// Service serves quotes. Safe for concurrent use.
type Service struct {
	cfg       Config
	client    *http.Client
	quotes    *fallback.Chain[Quote]
	character *fallback.Chain[CharacterQuote]

	mu  sync.Mutex
	rng *rand.Rand
}

// Option configures a Service.
type Option func(*options)

type options struct {
	client *http.Client
	repo   store.EventRepo
	logger *slog.Logger
	rng    *rand.Rand
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(c *http.Client) Option { return func(o *options) { o.client = c } }

// WithEventRepo records attempts in the event log.
func WithEventRepo(repo store.EventRepo) Option { return func(o *options) { o.repo = repo } }

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option { return func(o *options) { o.logger = l } }

// WithRand sets the source used to pick built-in quotes.
func WithRand(r *rand.Rand) Option { return func(o *options) { o.rng = r } }

// New creates a Service. Zero config fields get DefaultConfig values.
func New(cfg Config, opts ...Option) *Service {
	o := options{client: &http.Client{}, logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	def := DefaultConfig()
	if cfg.RandomURL == "" {
		cfg.RandomURL = def.RandomURL
	}
	if cfg.CharacterURL == "" {
		cfg.CharacterURL = def.CharacterURL
	}
	if cfg.CharacterBackupURL == "" {
		cfg.CharacterBackupURL = def.CharacterBackupURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}

	chainOpts := fallback.Options{Logger: o.logger}
	if o.repo != nil {
		chainOpts.Observer = fallback.EventObserver(o.repo, store.KindQuote)
	}
	return &Service{
		cfg:       cfg,
		client:    o.client,
		quotes:    fallback.New[Quote]("quote", chainOpts),
		character: fallback.New[CharacterQuote]("character-quote", chainOpts),
		rng:       o.rng,
	}
}

// Random returns a quote, falling back to the built-in list.
func (s *Service) Random(ctx context.Context) Quote {
	res, err := s.quotes.Do(ctx,
		fallback.Strategy[Quote]{Name: StrategyRandom, Run: func(ctx context.Context) (Quote, error) {
			return s.fetchRandom(ctx, s.cfg.RandomURL)
		}},
		fallback.Strategy[Quote]{Name: StrategyBuiltin, Local: true, Run: func(context.Context) (Quote, error) {
			return s.builtinQuote(), nil
		}},
	)
	if err != nil {
		return s.builtinQuote()
	}
	return res.Value
}

// Character returns an anime character quote from the primary service,
// then the backup, then the built-in list.
func (s *Service) Character(ctx context.Context) CharacterQuote {
	res, err := s.character.Do(ctx,
		fallback.Strategy[CharacterQuote]{Name: StrategyPrimary, Run: func(ctx context.Context) (CharacterQuote, error) {
			return s.fetchCharacter(ctx, s.cfg.CharacterURL, StrategyPrimary)
		}},
		fallback.Strategy[CharacterQuote]{Name: StrategyBackup, Run: func(ctx context.Context) (CharacterQuote, error) {
			return s.fetchCharacter(ctx, s.cfg.CharacterBackupURL, StrategyBackup)
		}},
		fallback.Strategy[CharacterQuote]{Name: StrategyBuiltin, Local: true, Run: func(context.Context) (CharacterQuote, error) {
			return s.builtinCharacter(), nil
		}},
	)
	if err != nil {
		return s.builtinCharacter()
	}
	return res.Value
}

func (s *Service) pick(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.IntN(n)
}

func (s *Service) builtinQuote() Quote {
	return builtinQuotes[s.pick(len(builtinQuotes))]
}

func (s *Service) builtinCharacter() CharacterQuote {
	return builtinCharacterQuotes[s.pick(len(builtinCharacterQuotes))]
}

var builtinQuotes = []Quote{
	{Content: "The only way to do great work is to love what you do.", Author: "Steve Jobs", Source: StrategyBuiltin},
	{Content: "Life is what happens when you're busy making other plans.", Author: "John Lennon", Source: StrategyBuiltin},
	{Content: "The future belongs to those who believe in the beauty of their dreams.", Author: "Eleanor Roosevelt", Source: StrategyBuiltin},
	{Content: "In the end, we will remember not the words of our enemies, but the silence of our friends.", Author: "Martin Luther King Jr.", Source: StrategyBuiltin},
	{Content: "The journey of a thousand miles begins with one step.", Author: "Lao Tzu", Source: StrategyBuiltin},
}

var builtinCharacterQuotes = []CharacterQuote{
	{Content: "I'm pathetic. I was observing the world from a safe distance. I was just scared of being hurt. I was lonely.", Character: "Amano Yukiteru", Anime: "The Future Diary", Source: StrategyBuiltin},
	{Content: "If you don't take risks, you can't create a future!", Character: "Monkey D. Luffy", Anime: "One Piece", Source: StrategyBuiltin},
	{Content: "A lesson without pain is meaningless. That's because no one can gain without sacrificing something.", Character: "Edward Elric", Anime: "Fullmetal Alchemist: Brotherhood", Source: StrategyBuiltin},
	{Content: "Hard work is worthless for those that don't believe in themselves.", Character: "Uzumaki Naruto", Anime: "Naruto", Source: StrategyBuiltin},
	{Content: "Being alone is better than being with the wrong person.", Character: "L Lawliet", Anime: "Death Note", Source: StrategyBuiltin},
}
