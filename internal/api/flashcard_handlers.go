package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/abhisek/lingua/internal/flashcard"
)

func (s *Server) handleListFlashcards(w http.ResponseWriter, r *http.Request) {
	if s.deps.Flashcards == nil {
		unavailable(w, "flashcards")
		return
	}
	q := r.URL.Query()
	var (
		items []flashcard.Item
		err   error
	)
	switch {
	case q.Get("pos") != "":
		items, err = s.deps.Flashcards.ListByPartOfSpeech(r.Context(), q.Get("pos"))
	case q.Get("source") != "" || q.Get("target") != "":
		items, err = s.deps.Flashcards.ListByLanguage(r.Context(), q.Get("source"), q.Get("target"))
	default:
		items, err = s.deps.Flashcards.List(r.Context())
	}
	if err != nil {
		s.logger.Error("failed to list flashcards", "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to list flashcards")
		return
	}
	respondJSON(w, http.StatusOK, items)
}

func validCard(it flashcard.Item) bool {
	return strings.TrimSpace(it.Word) != "" && strings.TrimSpace(it.Translation) != ""
}

// handleAddFlashcards accepts one card or an array of cards.
func (s *Server) handleAddFlashcards(w http.ResponseWriter, r *http.Request) {
	if s.deps.Flashcards == nil {
		unavailable(w, "flashcards")
		return
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBody))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "unreadable body")
		return
	}
	body = bytes.TrimSpace(body)

	if len(body) > 0 && body[0] == '[' {
		var batch []flashcard.Item
		if err := json.Unmarshal(body, &batch); err != nil {
			respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
			return
		}
		for _, it := range batch {
			if !validCard(it) {
				respondError(w, http.StatusBadRequest, "validation_error", "word and translation are required")
				return
			}
		}
		saved, err := s.deps.Flashcards.AddMultiple(r.Context(), batch)
		if err != nil {
			s.logger.Error("failed to add flashcards", "error", err)
			respondError(w, http.StatusInternalServerError, "internal_error", "failed to save flashcards")
			return
		}
		respondJSON(w, http.StatusCreated, saved)
		return
	}

	var item flashcard.Item
	if err := json.Unmarshal(body, &item); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if !validCard(item) {
		respondError(w, http.StatusBadRequest, "validation_error", "word and translation are required")
		return
	}
	saved, err := s.deps.Flashcards.Add(r.Context(), item)
	if err != nil {
		s.logger.Error("failed to add flashcard", "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to save flashcard")
		return
	}
	respondJSON(w, http.StatusCreated, saved)
}

func (s *Server) handleCountFlashcards(w http.ResponseWriter, r *http.Request) {
	if s.deps.Flashcards == nil {
		unavailable(w, "flashcards")
		return
	}
	n, err := s.deps.Flashcards.Count(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to count flashcards")
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"count": n})
}

func (s *Server) handleDeleteFlashcard(w http.ResponseWriter, r *http.Request) {
	if s.deps.Flashcards == nil {
		unavailable(w, "flashcards")
		return
	}
	id := urlParam(r, "id")
	if err := s.deps.Flashcards.Delete(r.Context(), id); err != nil {
		s.logger.Error("failed to delete flashcard", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to delete flashcard")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"deleted": id})
}
