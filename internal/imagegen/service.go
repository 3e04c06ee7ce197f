package imagegen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"unicode"

	"github.com/abhisek/lingua/internal/fallback"
	"github.com/abhisek/lingua/internal/llm"
	"github.com/abhisek/lingua/internal/store"
)

// ErrEmptyWord is returned for a blank word.
var ErrEmptyWord = errors.New("empty word")

// Image is a generated or cached word image.
type Image struct {
	Word     string       `json:"word"`
	Path     string       `json:"path"`
	File     string       `json:"file"`
	URL      string       `json:"url,omitempty"`
	Provider ProviderName `json:"provider,omitempty"`
	Cached   bool         `json:"cached"`
}

// Preferences are the user settings that drive generation.
type Preferences struct {
	UseImages bool
	Provider  ProviderName
}

// PreferencesFunc returns the current preferences.
type PreferencesFunc func() Preferences

// KeyFunc returns the API key for a provider, or "" when none is set.
type KeyFunc func(ctx context.Context, p ProviderName) (string, error)

// ClientConfig configures generators built from API keys.
type ClientConfig struct {
	OpenAIModel string
	GeminiModel string
}

// Service generates word images with provider fallback and caching.
// Safe for concurrent use.
type Service struct {
	dir    string
	prefs  PreferencesFunc
	keys   KeyFunc
	cfg    ClientConfig
	http   *http.Client
	chain  *fallback.Chain[Rendered]
	logger *slog.Logger

	mu     sync.Mutex
	fixed  map[ProviderName]Generator
	built  map[ProviderName]builtGenerator
	influx map[string]*sync.Mutex
}

type builtGenerator struct {
	key string
	gen Generator
}

// Option configures a Service.
type Option func(*Service)

// WithGenerators installs fixed generators, replacing key-based ones for
// their providers.
func WithGenerators(gens ...Generator) Option {
	return func(s *Service) {
		for _, g := range gens {
			s.fixed[g.Name()] = g
		}
	}
}

// WithKeys builds OpenAI and Gemini generators on demand from API keys.
// A changed key rebuilds the client.
func WithKeys(keys KeyFunc, cfg ClientConfig) Option {
	return func(s *Service) {
		s.keys = keys
		s.cfg = cfg
	}
}

// WithPreferences sets the preferences source. The default enables images
// with OpenAI first.
func WithPreferences(f PreferencesFunc) Option {
	return func(s *Service) { s.prefs = f }
}

// WithHTTPClient sets the client used to download provider URLs.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Service) { s.http = c }
}

// WithEventRepo records attempts in the event log.
func WithEventRepo(repo store.EventRepo) Option {
	return func(s *Service) {
		if repo != nil {
			s.chain = newChain(s.logger, fallback.EventObserver(repo, store.KindImage))
		}
	}
}

// WithLogger sets the logger. Apply it before WithEventRepo.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		s.logger = l
		s.chain = newChain(l, nil)
	}
}

func newChain(logger *slog.Logger, obs fallback.Observer) *fallback.Chain[Rendered] {
	return fallback.New[Rendered]("images", fallback.Options{
		Logger:   logger,
		Observer: obs,
		Classify: func(err error) fallback.Reason {
			if errors.Is(err, ErrQuotaExceeded) {
				return fallback.ReasonQuota
			}
			return ""
		},
	})
}

// NewService creates a Service caching under <cacheDir>/images.
func NewService(cacheDir string, opts ...Option) *Service {
	s := &Service{
		dir:    filepath.Join(cacheDir, "images"),
		prefs:  func() Preferences { return Preferences{UseImages: true, Provider: ProviderOpenAI} },
		http:   http.DefaultClient,
		logger: slog.Default(),
		fixed:  make(map[ProviderName]Generator),
		built:  make(map[ProviderName]builtGenerator),
		influx: make(map[string]*sync.Mutex),
	}
	s.chain = newChain(s.logger, nil)
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "imagegen")
	return s
}

// Dir returns the cache directory.
func (s *Service) Dir() string {
	return s.dir
}

// Sanitize turns a word into a cache file stem. Anything that is not a
// letter or digit becomes an underscore.
func Sanitize(word string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return '_'
	}, word)
}

// FileName returns the cache file name for a word.
func FileName(word string) string {
	return Sanitize(word) + ".jpg"
}

// Path returns the cache path for a word.
func (s *Service) Path(word string) string {
	return filepath.Join(s.dir, FileName(word))
}

// Resolve maps a cache file name to its path. It rejects names that would
// escape the cache directory.
func (s *Service) Resolve(file string) (string, error) {
	if file == "" || file != filepath.Base(file) || !strings.HasSuffix(file, ".jpg") || strings.HasPrefix(file, ".") {
		return "", fmt.Errorf("invalid image name %q", file)
	}
	return filepath.Join(s.dir, file), nil
}

// Cached returns the cached image for a word, if any.
func (s *Service) Cached(word string) (Image, bool) {
	path := s.Path(word)
	if _, err := os.Stat(path); err != nil {
		return Image{}, false
	}
	return Image{Word: word, Path: path, File: filepath.Base(path), Cached: true}, true
}

// Generate returns an image of word, prompting with the word itself.
func (s *Service) Generate(ctx context.Context, word string) (Image, error) {
	return s.GenerateFor(ctx, word, word)
}

// GenerateFor caches under word but prompts with subject, typically the
// English translation so the sketch shows the meaning.
//
// The preferred provider is tried first. Only a quota failure or a missing
// client moves on to the other provider.
func (s *Service) GenerateFor(ctx context.Context, word, subject string) (Image, error) {
	word = strings.TrimSpace(word)
	if word == "" {
		return Image{}, ErrEmptyWord
	}
	prefs := s.prefs()
	if !prefs.UseImages {
		return Image{}, ErrImagesDisabled
	}
	if strings.TrimSpace(subject) == "" {
		subject = word
	}

	lock := s.wordLock(word)
	lock.Lock()
	defer lock.Unlock()

	if img, ok := s.Cached(word); ok {
		return img, nil
	}

	primary := prefs.Provider
	if !primary.Valid() {
		primary = ProviderOpenAI
	}
	prompt := Prompt(subject)

	res, err := s.chain.Do(ctx,
		s.strategy(primary, prompt, true),
		s.strategy(primary.Other(), prompt, false),
	)
	if err != nil {
		return Image{}, s.failure(res.Failures, err)
	}
	if res.Degraded() {
		s.logger.Info("image served by fallback provider", "word", word, "provider", res.Strategy)
	}

	path := s.Path(word)
	if err := writeAtomic(path, res.Value.Data); err != nil {
		return Image{}, fmt.Errorf("imagegen: cache %s: %w", word, err)
	}
	return Image{
		Word:     word,
		Path:     path,
		File:     filepath.Base(path),
		URL:      res.Value.SourceURL,
		Provider: ProviderName(res.Strategy),
	}, nil
}

func (s *Service) strategy(p ProviderName, prompt string, primary bool) fallback.Strategy[Rendered] {
	return fallback.Strategy[Rendered]{
		Name: string(p),
		Run: func(ctx context.Context) (Rendered, error) {
			gen, err := s.generator(ctx, p)
			if err != nil {
				return Rendered{}, err
			}
			if gen == nil {
				return Rendered{}, fmt.Errorf("%s: %w: %w", p, fallback.ErrSkip, ErrNoClient)
			}
			out, err := gen.Generate(ctx, prompt)
			if err != nil && primary && !errors.Is(err, ErrQuotaExceeded) {
				return Rendered{}, fallback.Halt(err)
			}
			return out, err
		},
	}
}

// failure picks the most useful error once the chain gave up.
func (s *Service) failure(failures []Failure, err error) error {
	skipped := 0
	for _, f := range failures {
		if errors.Is(f.Err, ErrNoClient) {
			skipped++
		}
	}
	if skipped == len(failures) {
		return ErrNoClient
	}
	for _, f := range failures {
		if errors.Is(f.Err, ErrQuotaExceeded) {
			return fmt.Errorf("imagegen: %w", f.Err)
		}
	}
	return fmt.Errorf("imagegen: %w", err)
}

// Failure is re-exported so callers can inspect attempts without importing
// the fallback package.
type Failure = fallback.Failure

func (s *Service) generator(ctx context.Context, p ProviderName) (Generator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if g, ok := s.fixed[p]; ok {
		return g, nil
	}
	if s.keys == nil {
		return nil, nil
	}
	key, err := s.keys(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("%s: read api key: %w", p, err)
	}
	if key == "" {
		delete(s.built, p)
		return nil, nil
	}
	if b, ok := s.built[p]; ok && b.key == key {
		return b.gen, nil
	}

	var gen Generator
	switch p {
	case ProviderOpenAI:
		gen = NewOpenAIGenerator(llm.NewOpenAIClient(key, ""), s.cfg.OpenAIModel, s.http)
	case ProviderGemini:
		client, err := llm.NewGeminiClient(ctx, key)
		if err != nil {
			return nil, err
		}
		gen = NewGeminiGenerator(client, s.cfg.GeminiModel)
	}
	s.built[p] = builtGenerator{key: key, gen: gen}
	return gen, nil
}

func (s *Service) wordLock(word string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.influx[word]
	if !ok {
		m = &sync.Mutex{}
		s.influx[word] = m
	}
	return m
}

func writeAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".img-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}
