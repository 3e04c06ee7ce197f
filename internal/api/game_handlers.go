package api

import (
	"net/http"
	"os"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/abhisek/lingua/internal/progress"
	"github.com/abhisek/lingua/internal/vocab"
)

func urlParam(r *http.Request, key string) string {
	return chi.URLParam(r, key)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

type languageSummary struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Words     int     `json:"words"`
	Levels    int     `json:"levels"`
	Completed int     `json:"completed"`
	Progress  float64 `json:"progress"`
}

func summarize(l vocab.Language) languageSummary {
	return languageSummary{
		ID:        l.ID,
		Name:      l.Name,
		Words:     len(l.Words),
		Levels:    len(l.Levels),
		Completed: l.CompletedCount(),
		Progress:  l.Progress,
	}
}

func (s *Server) handleListLanguages(w http.ResponseWriter, r *http.Request) {
	if s.deps.Game == nil {
		unavailable(w, "game")
		return
	}
	langs := s.deps.Game.Languages()
	out := make([]languageSummary, 0, len(langs))
	for _, l := range langs {
		out = append(out, summarize(l))
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetLanguage(w http.ResponseWriter, r *http.Request) {
	if s.deps.Game == nil {
		unavailable(w, "game")
		return
	}
	lang, ok := s.deps.Game.Language(urlParam(r, "id"))
	if !ok {
		respondError(w, http.StatusNotFound, "language_not_found", "language not found")
		return
	}
	respondJSON(w, http.StatusOK, lang)
}

func (s *Server) handleGetLevel(w http.ResponseWriter, r *http.Request) {
	if s.deps.Game == nil {
		unavailable(w, "game")
		return
	}
	levelID, err := strconv.Atoi(urlParam(r, "level"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "level must be a number")
		return
	}
	level, ok := s.deps.Game.GetLevel(urlParam(r, "id"), levelID)
	if !ok {
		respondError(w, http.StatusNotFound, "level_not_found", "level not found")
		return
	}
	respondJSON(w, http.StatusOK, level)
}

func (s *Server) handleGetProgress(w http.ResponseWriter, r *http.Request) {
	if s.deps.Game == nil {
		unavailable(w, "game")
		return
	}
	respondJSON(w, http.StatusOK, s.deps.Game.Progress())
}

type progressRequest struct {
	Language string `json:"language"`
	Level    int    `json:"level"`
	Score    int    `json:"score"`
}

func (s *Server) handleUpdateProgress(w http.ResponseWriter, r *http.Request) {
	if s.deps.Game == nil {
		unavailable(w, "game")
		return
	}
	var req progressRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Score < 0 || req.Score > 100 {
		respondError(w, http.StatusBadRequest, "validation_error", "score must be between 0 and 100")
		return
	}
	if _, ok := s.deps.Game.GetLevel(req.Language, req.Level); !ok {
		respondError(w, http.StatusNotFound, "level_not_found", "level not found")
		return
	}
	s.deps.Game.UpdateProgress(r.Context(), req.Language, req.Level, req.Score)
	respondJSON(w, http.StatusOK, s.deps.Game.Progress())
}

func (s *Server) handleResetProgress(w http.ResponseWriter, r *http.Request) {
	if s.deps.Game == nil {
		unavailable(w, "game")
		return
	}
	s.deps.Game.ResetProgress(r.Context())
	respondJSON(w, http.StatusOK, s.deps.Game.Progress())
}

// redact hides the stored API key; clients only learn whether one is set.
func redact(st progress.GameSettings) map[string]any {
	return map[string]any{
		"wordsPerLevel": st.WordsPerLevel,
		"timePerWord":   st.TimePerWord,
		"useImages":     st.UseImages,
		"soundEnabled":  st.SoundEnabled,
		"imageProvider": st.ImageProvider,
		"hasApiKey":     st.APIKey != "",
	}
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	if s.deps.Game == nil {
		unavailable(w, "game")
		return
	}
	respondJSON(w, http.StatusOK, redact(s.deps.Game.Settings()))
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	if s.deps.Game == nil {
		unavailable(w, "game")
		return
	}
	var patch progress.SettingsPatch
	if !decodeBody(w, r, &patch) {
		return
	}
	if patch.ImageProvider != nil && !patch.ImageProvider.Valid() {
		respondError(w, http.StatusBadRequest, "validation_error", "imageProvider must be openai or gemini")
		return
	}
	respondJSON(w, http.StatusOK, redact(s.deps.Game.UpdateSettings(r.Context(), patch)))
}
