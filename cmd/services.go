package cmd

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lingua/internal/api"
	"github.com/abhisek/lingua/internal/flashcard"
	"github.com/abhisek/lingua/internal/imagegen"
	"github.com/abhisek/lingua/internal/llm"
	"github.com/abhisek/lingua/internal/pos"
	"github.com/abhisek/lingua/internal/progress"
	"github.com/abhisek/lingua/internal/quote"
	"github.com/abhisek/lingua/internal/screen"
	"github.com/abhisek/lingua/internal/store"
	"github.com/abhisek/lingua/internal/translate"
	"github.com/abhisek/lingua/internal/wordbank"
)

// services is everything a command may need, built from cfg.
type services struct {
	store      *store.Store
	kv         store.KV
	redis      *store.RedisKV
	game       *progress.Store
	flashcards *flashcard.Store
	translator *translate.Service
	tagger     *pos.Tagger
	images     *imagegen.Service
	quotes     *quote.Service
}

// openServices opens storage, loads the saved game state and builds the
// network services. The LLM tagger fallback is skipped when no provider
// is configured.
func openServices(cmd *cobra.Command) (*services, error) {
	ctx := cmd.Context()

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	s := &services{store: st, kv: st.KV()}

	if strings.EqualFold(cfg.Storage.Backend, "redis") {
		r, err := store.OpenRedis(ctx, cfg.Storage.RedisAddr, cfg.Storage.RedisPassword, cfg.Storage.RedisDB)
		if err != nil {
			st.Close()
			return nil, err
		}
		s.redis, s.kv = r, r
	}

	catalog, err := wordbank.LoadCatalog(cfg.Words.Dir)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("load language catalog: %w", err)
	}
	source := wordbank.Source(wordbank.NewEmbeddedSource())
	if cfg.Words.Dir != "" {
		source = wordbank.MultiSource{wordbank.NewDirSource(cfg.Words.Dir), wordbank.NewEmbeddedSource()}
	}
	loader := wordbank.NewLoader(source, catalog, wordbank.WithLogger(logger))

	s.game = progress.New(s.kv, loader, progress.WithLogger(logger))
	if err := s.game.LoadInitialState(ctx); err != nil {
		s.Close()
		return nil, fmt.Errorf("load game state: %w", err)
	}
	s.flashcards = flashcard.New(s.kv)

	events := st.EventRepo()
	client := &http.Client{}

	s.translator = translate.New(translate.Config{
		LectoAPIKey: cfg.Translate.LectoAPIKey,
		LectoURL:    cfg.Translate.LectoURL,
		MyMemoryURL: cfg.Translate.MyMemoryURL,
		Timeout:     cfg.Translate.Timeout,
	}, translate.WithHTTPClient(client), translate.WithEventRepo(events), translate.WithLogger(logger))

	tagOpts := []pos.Option{pos.WithHTTPClient(client), pos.WithLogger(logger)}
	if provider, err := newLLMProvider(ctx, events); err != nil {
		logger.Warn("LLM tagging unavailable", "error", err)
	} else if provider != nil {
		tagOpts = append(tagOpts, pos.WithLLM(provider))
	}
	s.tagger = pos.New(pos.Config{BackendURL: cfg.POS.BackendURL, Timeout: cfg.POS.Timeout}, events, tagOpts...)

	s.images = imagegen.NewService(cfg.Cache.Dir,
		imagegen.WithLogger(logger),
		imagegen.WithEventRepo(events),
		imagegen.WithHTTPClient(client),
		imagegen.WithKeys(s.imageKey, imagegen.ClientConfig{
			OpenAIModel: cfg.Images.OpenAIModel,
			GeminiModel: cfg.Images.GeminiModel,
		}),
		imagegen.WithPreferences(func() imagegen.Preferences {
			set := s.game.Settings()
			return imagegen.Preferences{UseImages: set.UseImages, Provider: set.ImageProvider}
		}),
	)

	s.quotes = quote.New(quote.Config{
		RandomURL:          cfg.Quotes.RandomURL,
		CharacterURL:       cfg.Quotes.CharacterURL,
		CharacterBackupURL: cfg.Quotes.CharacterBackupURL,
		Timeout:            cfg.Quotes.Timeout,
	}, quote.WithHTTPClient(client), quote.WithEventRepo(events), quote.WithLogger(logger))

	return s, nil
}

// imageKey prefers a key saved from the settings screen over configured ones.
func (s *services) imageKey(ctx context.Context, p imagegen.ProviderName) (string, error) {
	key, err := s.game.APIKey(ctx, p)
	if err != nil || key != "" {
		return key, err
	}
	switch p {
	case imagegen.ProviderOpenAI:
		return cfg.Images.OpenAIAPIKey, nil
	case imagegen.ProviderGemini:
		return cfg.Images.GeminiAPIKey, nil
	}
	return "", nil
}

// newLLMProvider builds the tagging LLM. It returns nil, nil when none is
// configured or llm.provider is "none".
func newLLMProvider(ctx context.Context, events store.EventRepo) (llm.Provider, error) {
	name := strings.ToLower(cfg.LLM.Provider)
	var lc llm.Config
	switch name {
	case "none":
		return nil, nil
	case "":
		c, ok := llm.DiscoverConfig()
		if !ok {
			return nil, nil
		}
		lc = c
	default:
		lc = llm.ConfigFromEnv()
		lc.Provider = name
	}
	return llm.NewProvider(ctx, lc, events, logger)
}

func (s *services) screens() screen.Services {
	return screen.Services{
		Game:       s.game,
		Flashcards: s.flashcards,
		Translator: s.translator,
		Tagger:     s.tagger,
		Images:     s.images,
		Quotes:     s.quotes,
	}
}

func (s *services) apiDeps() api.Deps {
	return api.Deps{
		Translator: s.translator,
		Tagger:     s.tagger,
		Quotes:     s.quotes,
		Images:     s.images,
		Flashcards: s.flashcards,
		Game:       s.game,
	}
}

// Close releases storage connections.
func (s *services) Close() error {
	if s.redis != nil {
		s.redis.Close()
	}
	return s.store.Close()
}
