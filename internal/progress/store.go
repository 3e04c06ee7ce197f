package progress

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/abhisek/lingua/internal/imagegen"
	"github.com/abhisek/lingua/internal/store"
	"github.com/abhisek/lingua/internal/vocab"
)

// ErrUnknownLanguage is returned when a language has no loadable vocabulary.
var ErrUnknownLanguage = errors.New("unknown language")

// LanguageLoader builds languages with generated levels.
type LanguageLoader interface {
	LoadLanguage(ctx context.Context, id string, wordsPerLevel int) (vocab.Language, bool)
	LoadAll(ctx context.Context, wordsPerLevel int) []vocab.Language
}

// Store owns the loaded languages, the active language, user progress and
// settings. All methods are safe for concurrent use.
type Store struct {
	kv     store.KV
	loader LanguageLoader
	logger *slog.Logger

	mu        sync.Mutex
	languages []vocab.Language
	current   *vocab.Language
	progress  UserProgress
	settings  GameSettings
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the store logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// New creates a Store with default progress and settings. Call
// LoadInitialState before use.
func New(kv store.KV, loader LanguageLoader, opts ...Option) *Store {
	s := &Store{
		kv:       kv,
		loader:   loader,
		logger:   slog.Default(),
		progress: DefaultProgress(),
		settings: DefaultSettings(),
	}
	for _, o := range opts {
		o(s)
	}
	s.logger = s.logger.With("component", "progress")
	return s
}

// LoadInitialState reads stored settings and progress, then loads every
// available language. Missing or corrupt blobs fall back to defaults. An
// error is returned only when the storage itself cannot be read.
func (s *Store) LoadInitialState(ctx context.Context) error {
	settings := DefaultSettings()
	ok, err := s.readJSON(ctx, KeySettings, &settings)
	if err != nil {
		return err
	}
	if !ok {
		settings = DefaultSettings()
	}
	settings = settings.normalize()

	var progress UserProgress
	ok, err = s.readJSON(ctx, KeyProgress, &progress)
	if err != nil {
		return err
	}
	if !ok {
		progress = DefaultProgress()
	}
	if progress.Languages == nil {
		progress.Languages = make(map[string]*LanguageProgress)
	}

	langs := s.loader.LoadAll(ctx, settings.WordsPerLevel)
	for i := range langs {
		langs[i] = reapply(langs[i], progress.Languages[langs[i].ID])
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
	s.progress = progress
	s.languages = langs
	s.current = nil
	s.logger.Info("state loaded", "languages", len(langs), "words_per_level", settings.WordsPerLevel)
	return nil
}

// readJSON decodes key into v. ok is false when the key is absent or the
// value is not valid JSON; the latter is logged.
func (s *Store) readJSON(ctx context.Context, key string, v any) (bool, error) {
	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		s.logger.Warn("discarding corrupt blob", "key", key, "error", err)
		return false, nil
	}
	return true, nil
}

// SetCurrentLanguage makes id the active language. An already active
// language is kept; otherwise it is regenerated and stored progress is
// reapplied.
func (s *Store) SetCurrentLanguage(ctx context.Context, id string) error {
	s.mu.Lock()
	if s.current != nil && s.current.ID == id {
		s.mu.Unlock()
		return nil
	}
	wpl := s.settings.WordsPerLevel
	s.mu.Unlock()

	lang, ok := s.loader.LoadLanguage(ctx, id, wpl)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownLanguage, id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	lang = reapply(lang, s.progress.Languages[id])
	s.current = &lang
	s.logger.Debug("current language set", "language", id, "levels", len(lang.Levels))
	return nil
}

// UpdateProgress records a finished play of levelID with score (0-100).
func (s *Store) UpdateProgress(ctx context.Context, languageID string, levelID, score int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.progress = applyScore(s.progress, languageID, levelID, score)
	if s.current != nil && s.current.ID == languageID {
		lang := markLevel(*s.current, levelID, score)
		s.current = &lang
	}
	for i := range s.languages {
		if s.languages[i].ID == languageID {
			s.languages[i] = markLevel(s.languages[i], levelID, score)
		}
	}
	s.logger.Info("progress updated",
		"language", languageID,
		"level", levelID,
		"score", score,
		"passed", score >= PassThreshold,
	)
	s.persist(ctx)
}

// ResetProgress clears all progress and every level annotation.
func (s *Store) ResetProgress(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.progress = DefaultProgress()
	for i := range s.languages {
		s.languages[i] = resetLevels(s.languages[i])
	}
	if s.current != nil {
		lang := resetLevels(*s.current)
		s.current = &lang
	}
	s.logger.Info("progress reset")
	s.persist(ctx)
}

// GetLevel returns a level, preferring the active language's copy.
func (s *Store) GetLevel(languageID string, levelID int) (vocab.Level, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil && s.current.ID == languageID {
		return s.current.Level(levelID)
	}
	for i := range s.languages {
		if s.languages[i].ID == languageID {
			return s.languages[i].Level(levelID)
		}
	}
	return vocab.Level{}, false
}

// UpdateSettings merges patch into the settings. Changing WordsPerLevel
// regenerates every loaded language.
func (s *Store) UpdateSettings(ctx context.Context, patch SettingsPatch) GameSettings {
	s.mu.Lock()
	prev := s.settings
	next := prev.Merge(patch)
	s.settings = next
	regenerate := next.WordsPerLevel != prev.WordsPerLevel
	var currentID string
	if s.current != nil {
		currentID = s.current.ID
	}
	s.mu.Unlock()

	// Loading reads word banks, so it runs outside the lock.
	var (
		langs   []vocab.Language
		current *vocab.Language
	)
	if regenerate {
		langs = s.loader.LoadAll(ctx, next.WordsPerLevel)
		if currentID != "" {
			if lang, ok := s.loader.LoadLanguage(ctx, currentID, next.WordsPerLevel); ok {
				current = &lang
			}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if regenerate {
		for i := range langs {
			langs[i] = reapply(langs[i], s.progress.Languages[langs[i].ID])
		}
		s.languages = langs
		if current != nil {
			lang := reapply(*current, s.progress.Languages[current.ID])
			current = &lang
		}
		s.current = current
		s.logger.Info("levels regenerated", "words_per_level", next.WordsPerLevel)
	}
	if patch.ImageProvider != nil && next.ImageProvider.Valid() {
		s.setKey(ctx, KeyImageProvider, string(next.ImageProvider))
	}
	s.persist(ctx)
	return s.settings
}

// Languages returns a copy of the loaded languages.
func (s *Store) Languages() []vocab.Language {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]vocab.Language, len(s.languages))
	for i, l := range s.languages {
		out[i] = l.Clone()
	}
	return out
}

// Language returns a copy of one loaded language, preferring the active one.
func (s *Store) Language(id string) (vocab.Language, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil && s.current.ID == id {
		return s.current.Clone(), true
	}
	for _, l := range s.languages {
		if l.ID == id {
			return l.Clone(), true
		}
	}
	return vocab.Language{}, false
}

// Current returns a copy of the active language.
func (s *Store) Current() (vocab.Language, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return vocab.Language{}, false
	}
	return s.current.Clone(), true
}

// Progress returns a copy of the user progress.
func (s *Store) Progress() UserProgress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progress.Clone()
}

// Settings returns the current settings.
func (s *Store) Settings() GameSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

func apiKeyName(p imagegen.ProviderName) (string, error) {
	switch p {
	case imagegen.ProviderOpenAI:
		return KeyOpenAIKey, nil
	case imagegen.ProviderGemini:
		return KeyGeminiKey, nil
	}
	return "", fmt.Errorf("unknown image provider %q", p)
}

// SetAPIKey stores the API key for an image provider. An empty key
// removes it.
func (s *Store) SetAPIKey(ctx context.Context, p imagegen.ProviderName, key string) error {
	name, err := apiKeyName(p)
	if err != nil {
		return err
	}
	if key == "" {
		return s.kv.Delete(ctx, name)
	}
	return s.kv.Set(ctx, name, key)
}

// APIKey returns the stored API key for an image provider, or "".
func (s *Store) APIKey(ctx context.Context, p imagegen.ProviderName) (string, error) {
	name, err := apiKeyName(p)
	if err != nil {
		return "", err
	}
	key, _, err := s.kv.Get(ctx, name)
	return key, err
}

// persist writes progress and settings. Failures are logged and dropped;
// in-memory state stays authoritative. Callers hold s.mu.
func (s *Store) persist(ctx context.Context) {
	s.writeJSON(ctx, KeyProgress, s.progress)
	s.writeJSON(ctx, KeySettings, s.settings)
}

func (s *Store) writeJSON(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("encode blob", "key", key, "error", err)
		return
	}
	s.setKey(ctx, key, string(data))
}

func (s *Store) setKey(ctx context.Context, key, value string) {
	if err := s.kv.Set(ctx, key, value); err != nil {
		s.logger.Error("persist failed", "key", key, "error", err)
	}
}
