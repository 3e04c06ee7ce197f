// Package api exposes the game, translator and flashcard features over a
// small JSON HTTP API.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/abhisek/lingua/internal/config"
	"github.com/abhisek/lingua/internal/flashcard"
	"github.com/abhisek/lingua/internal/imagegen"
	"github.com/abhisek/lingua/internal/pos"
	"github.com/abhisek/lingua/internal/progress"
	"github.com/abhisek/lingua/internal/quote"
	"github.com/abhisek/lingua/internal/translate"
	"github.com/abhisek/lingua/internal/vocab"
)

// Translator translates text.
type Translator interface {
	Translate(ctx context.Context, text, target, source string) translate.Translation
}

// Tagger tags parts of speech without calling an HTTP backend.
type Tagger interface {
	TagLocal(ctx context.Context, text, lang string) []pos.Entity
}

// Quotes serves quotes.
type Quotes interface {
	Random(ctx context.Context) quote.Quote
	Character(ctx context.Context) quote.CharacterQuote
}

// Images generates and locates cached word images.
type Images interface {
	GenerateFor(ctx context.Context, word, subject string) (imagegen.Image, error)
	Resolve(file string) (string, error)
}

// Flashcards is the saved-word store.
type Flashcards interface {
	Add(ctx context.Context, item flashcard.Item) (flashcard.Item, error)
	AddMultiple(ctx context.Context, items []flashcard.Item) ([]flashcard.Item, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]flashcard.Item, error)
	ListByPartOfSpeech(ctx context.Context, pos string) ([]flashcard.Item, error)
	ListByLanguage(ctx context.Context, source, target string) ([]flashcard.Item, error)
	Count(ctx context.Context) (int, error)
}

// Game is the progress store.
type Game interface {
	Languages() []vocab.Language
	Language(id string) (vocab.Language, bool)
	GetLevel(languageID string, levelID int) (vocab.Level, bool)
	Progress() progress.UserProgress
	UpdateProgress(ctx context.Context, languageID string, levelID, score int)
	ResetProgress(ctx context.Context)
	Settings() progress.GameSettings
	UpdateSettings(ctx context.Context, patch progress.SettingsPatch) progress.GameSettings
}

// Deps are the services behind the API. Nil services answer 503.
type Deps struct {
	Translator Translator
	Tagger     Tagger
	Quotes     Quotes
	Images     Images
	Flashcards Flashcards
	Game       Game
}

// Server is the HTTP API server.
type Server struct {
	cfg    config.ServerConfig
	deps   Deps
	router *chi.Mux
	logger *slog.Logger
}

// NewServer creates a Server and builds its routes.
func NewServer(cfg config.ServerConfig, deps Deps, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{cfg: cfg, deps: deps, logger: logger.With("component", "api")}
	s.setupRouter()
	return s
}

// Router returns the configured router.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) setupRouter() {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)

	timeout := s.cfg.WriteTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	r.Use(middleware.Timeout(timeout))

	origins := s.cfg.Origins()
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/translate", s.handleTranslate)
		r.Post("/analyze-pos", s.handleAnalyzePOS)

		r.Route("/flashcards", func(r chi.Router) {
			r.Get("/", s.handleListFlashcards)
			r.Post("/", s.handleAddFlashcards)
			r.Get("/count", s.handleCountFlashcards)
			r.Delete("/{id}", s.handleDeleteFlashcard)
		})

		r.Route("/quotes", func(r chi.Router) {
			r.Get("/random", s.handleRandomQuote)
			r.Get("/character", s.handleCharacterQuote)
		})

		r.Route("/images", func(r chi.Router) {
			r.Post("/", s.handleGenerateImage)
			r.Get("/{file}", s.handleServeImage)
		})

		r.Route("/languages", func(r chi.Router) {
			r.Get("/", s.handleListLanguages)
			r.Get("/{id}", s.handleGetLanguage)
			r.Get("/{id}/levels/{level}", s.handleGetLevel)
		})

		r.Route("/progress", func(r chi.Router) {
			r.Get("/", s.handleGetProgress)
			r.Post("/", s.handleUpdateProgress)
			r.Delete("/", s.handleResetProgress)
		})

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", s.handleGetSettings)
			r.Patch("/", s.handleUpdateSettings)
		})
	})

	s.router = r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down gracefully")
	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// loggingMiddleware logs HTTP requests using slog.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			s.logger.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", middleware.GetReqID(r.Context()),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
