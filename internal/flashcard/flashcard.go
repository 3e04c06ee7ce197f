// Package flashcard stores user-saved words with their translation and
// meaning. The whole table is one JSON blob in the key-value store.
package flashcard

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/lingua/internal/store"
)

// StorageKey is the key holding the flashcard table.
const StorageKey = "language-learning-flashcards"

// DefaultMeaning is stored when a card has no meaning.
const DefaultMeaning = "No definition provided"

// Item is one saved flashcard.
type Item struct {
	ID             string    `json:"id"`
	Word           string    `json:"word"`
	Translation    string    `json:"translation"`
	Meaning        string    `json:"meaning"`
	PartOfSpeech   string    `json:"partOfSpeech"`
	SourceLanguage string    `json:"sourceLanguage"`
	TargetLanguage string    `json:"targetLanguage"`
	CreatedAt      time.Time `json:"createdAt"`
	Context        string    `json:"context,omitempty"`
	TranslatedWord string    `json:"translatedWord,omitempty"`
}

func (it Item) sameKey(o Item) bool {
	return it.Word == o.Word &&
		it.SourceLanguage == o.SourceLanguage &&
		it.TargetLanguage == o.TargetLanguage
}

// merge overlays the non-empty fields of update onto it.
func (it Item) merge(update Item) Item {
	it.Translation = firstNonEmpty(update.Translation, it.Translation)
	it.Meaning = firstNonEmpty(update.Meaning, it.Meaning, DefaultMeaning)
	it.PartOfSpeech = firstNonEmpty(update.PartOfSpeech, it.PartOfSpeech)
	it.Context = firstNonEmpty(update.Context, it.Context)
	it.TranslatedWord = firstNonEmpty(update.TranslatedWord, it.TranslatedWord)
	return it
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// Store is the flashcard table. Safe for concurrent use within one process.
type Store struct {
	kv store.KV

	mu    sync.Mutex
	now   func() time.Time
	newID func() string
}

// New creates a Store over kv.
func New(kv store.KV) *Store {
	return &Store{
		kv:  kv,
		now: time.Now,
		newID: func() string {
			id, err := uuid.NewV7()
			if err != nil {
				return uuid.NewString()
			}
			return id.String()
		},
	}
}

func (s *Store) load(ctx context.Context) ([]Item, error) {
	raw, ok, err := s.kv.Get(ctx, StorageKey)
	if err != nil {
		return nil, fmt.Errorf("load flashcards: %w", err)
	}
	if !ok || raw == "" {
		return []Item{}, nil
	}
	var items []Item
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("decode flashcards: %w", err)
	}
	return items, nil
}

func (s *Store) save(ctx context.Context, items []Item) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode flashcards: %w", err)
	}
	if err := s.kv.Set(ctx, StorageKey, string(data)); err != nil {
		return fmt.Errorf("save flashcards: %w", err)
	}
	return nil
}

// Add saves item. A card with the same word and language pair is updated
// in place: non-empty fields of item win and the timestamp is refreshed.
// ID and CreatedAt on item are ignored.
func (s *Store) Add(ctx context.Context, item Item) (Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load(ctx)
	if err != nil {
		return Item{}, err
	}
	saved := s.upsert(&items, item)
	if err := s.save(ctx, items); err != nil {
		return Item{}, err
	}
	return saved, nil
}

// AddMultiple saves several items with Add semantics in one write.
func (s *Store) AddMultiple(ctx context.Context, batch []Item) ([]Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Item, 0, len(batch))
	for _, it := range batch {
		out = append(out, s.upsert(&items, it))
	}
	if err := s.save(ctx, items); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) upsert(items *[]Item, item Item) Item {
	now := s.now()
	for i, existing := range *items {
		if existing.sameKey(item) {
			updated := existing.merge(item)
			updated.CreatedAt = now
			(*items)[i] = updated
			return updated
		}
	}
	item.ID = s.newID()
	item.CreatedAt = now
	item.Meaning = firstNonEmpty(item.Meaning, DefaultMeaning)
	*items = append(*items, item)
	return item
}

// Delete removes the card with id. Unknown ids are ignored.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load(ctx)
	if err != nil {
		return err
	}
	kept := items[:0]
	for _, it := range items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	if len(kept) == len(items) {
		return nil
	}
	return s.save(ctx, kept)
}

// List returns every card in insertion order.
func (s *Store) List(ctx context.Context) ([]Item, error) {
	return s.filter(ctx, func(Item) bool { return true })
}

// ListByPartOfSpeech returns cards whose tag equals pos exactly.
func (s *Store) ListByPartOfSpeech(ctx context.Context, pos string) ([]Item, error) {
	return s.filter(ctx, func(it Item) bool { return it.PartOfSpeech == pos })
}

// ListByLanguage returns cards for a source/target language pair.
func (s *Store) ListByLanguage(ctx context.Context, source, target string) ([]Item, error) {
	return s.filter(ctx, func(it Item) bool {
		return it.SourceLanguage == source && it.TargetLanguage == target
	})
}

// Count returns the number of stored cards.
func (s *Store) Count(ctx context.Context) (int, error) {
	items, err := s.List(ctx)
	return len(items), err
}

func (s *Store) filter(ctx context.Context, keep func(Item) bool) ([]Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out, nil
}
