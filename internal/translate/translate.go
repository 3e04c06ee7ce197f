// Package translate turns text into another language through an ordered
// chain of public translation services, ending in an echo that always
// succeeds.
package translate

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/abhisek/lingua/internal/fallback"
	"github.com/abhisek/lingua/internal/store"
)

// AutoDetect asks the service to detect the source language.
const AutoDetect = "auto"

// DefaultSource is reported by the echo fallback when detection was requested.
const DefaultSource = "en"

// Strategy names, also used as event log provider names.
const (
	StrategyLecto    = "lecto"
	StrategyMyMemory = "mymemory"
	StrategyEcho     = "echo"
)

// Translation is the outcome of one Translate call.
type Translation struct {
	OriginalText   string `json:"originalText"`
	TranslatedText string `json:"translatedText"`
	SourceLanguage string `json:"sourceLanguage"`
	TargetLanguage string `json:"targetLanguage"`
	Provider       string `json:"provider"`
}

// Config holds service endpoints and credentials.
type Config struct {
	LectoAPIKey string
	LectoURL    string
	MyMemoryURL string
	Timeout     time.Duration
}

// Service translates text. Safe for concurrent use.
type Service struct {
	cfg    Config
	client *http.Client
	chain  *fallback.Chain[Translation]
	logger *slog.Logger
}

// Option configures a Service.
type Option func(*options)

type options struct {
	client *http.Client
	repo   store.EventRepo
	logger *slog.Logger
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.client = c }
}

// WithEventRepo records every service attempt in the event log.
func WithEventRepo(repo store.EventRepo) Option {
	return func(o *options) { o.repo = repo }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// New creates a Service. Empty URLs get the public endpoints.
func New(cfg Config, opts ...Option) *Service {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	if cfg.LectoURL == "" {
		cfg.LectoURL = "https://api.lecto.ai/v1/translate/text"
	}
	if cfg.MyMemoryURL == "" {
		cfg.MyMemoryURL = "https://api.mymemory.translated.net/get"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if o.client == nil {
		o.client = &http.Client{}
	}

	chainOpts := fallback.Options{Logger: o.logger}
	if o.repo != nil {
		chainOpts.Observer = fallback.EventObserver(o.repo, store.KindTranslate)
	}
	return &Service{
		cfg:    cfg,
		client: o.client,
		chain:  fallback.New[Translation]("translate", chainOpts),
		logger: o.logger.With("component", "translate"),
	}
}

// Translate never fails: when every service is down the original text is
// returned unchanged. An empty source means AutoDetect.
func (s *Service) Translate(ctx context.Context, text, target, source string) Translation {
	source = strings.TrimSpace(source)
	if source == "" {
		source = AutoDetect
	}

	res, err := s.chain.Do(ctx,
		fallback.Strategy[Translation]{Name: StrategyLecto, Run: func(ctx context.Context) (Translation, error) {
			return s.lecto(ctx, text, target, source)
		}},
		fallback.Strategy[Translation]{Name: StrategyMyMemory, Run: func(ctx context.Context) (Translation, error) {
			return s.myMemory(ctx, text, target, source)
		}},
	)
	if err == nil {
		return res.Value
	}

	s.logger.Warn("translation unavailable, echoing input", "target", target, "error", err)
	return echo(text, target, source)
}

func echo(text, target, source string) Translation {
	if source == AutoDetect {
		source = DefaultSource
	}
	return Translation{
		OriginalText:   text,
		TranslatedText: text,
		SourceLanguage: source,
		TargetLanguage: target,
		Provider:       StrategyEcho,
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.cfg.Timeout)
}
