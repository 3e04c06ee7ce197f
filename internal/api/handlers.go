package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/abhisek/lingua/internal/imagegen"
	"github.com/abhisek/lingua/internal/pos"
)

// maxBody bounds request bodies.
const maxBody = 1 << 20

type apiResponse struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *apiError `json:"error,omitempty"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := apiResponse{
		Success: status >= 200 && status < 300,
		Data:    data,
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := apiResponse{Error: &apiError{Code: code, Message: message}}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBody)).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return false
	}
	return true
}

func unavailable(w http.ResponseWriter, what string) {
	respondError(w, http.StatusServiceUnavailable, "unavailable", what+" is not configured")
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

type translateRequest struct {
	Text   string `json:"text"`
	Target string `json:"target"`
	Source string `json:"source"`
}

func (s *Server) handleTranslate(w http.ResponseWriter, r *http.Request) {
	if s.deps.Translator == nil {
		unavailable(w, "translation")
		return
	}
	var req translateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "text is required")
		return
	}
	if strings.TrimSpace(req.Target) == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "target is required")
		return
	}
	respondJSON(w, http.StatusOK, s.deps.Translator.Translate(r.Context(), req.Text, req.Target, req.Source))
}

type analyzeRequest struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

type analyzeResponse struct {
	Entities []pos.Entity `json:"entities"`
}

func (s *Server) handleAnalyzePOS(w http.ResponseWriter, r *http.Request) {
	if s.deps.Tagger == nil {
		unavailable(w, "tagging")
		return
	}
	var req analyzeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	text := strings.TrimSpace(req.Text)
	if text == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "no text provided")
		return
	}
	lang := req.Language
	if lang == "" {
		lang = "en"
	}
	respondJSON(w, http.StatusOK, analyzeResponse{Entities: s.deps.Tagger.TagLocal(r.Context(), req.Text, lang)})
}

func (s *Server) handleRandomQuote(w http.ResponseWriter, r *http.Request) {
	if s.deps.Quotes == nil {
		unavailable(w, "quotes")
		return
	}
	q := s.deps.Quotes.Random(r.Context())
	respondJSON(w, http.StatusOK, map[string]any{"quote": q, "formatted": q.Format()})
}

func (s *Server) handleCharacterQuote(w http.ResponseWriter, r *http.Request) {
	if s.deps.Quotes == nil {
		unavailable(w, "quotes")
		return
	}
	q := s.deps.Quotes.Character(r.Context())
	respondJSON(w, http.StatusOK, map[string]any{"quote": q, "formatted": q.Format()})
}

type imageRequest struct {
	Word    string `json:"word"`
	Subject string `json:"subject"`
}

type imageResponse struct {
	imagegen.Image
	Href string `json:"href"`
}

func (s *Server) handleGenerateImage(w http.ResponseWriter, r *http.Request) {
	if s.deps.Images == nil {
		unavailable(w, "image generation")
		return
	}
	var req imageRequest
	if !decodeBody(w, r, &req) {
		return
	}
	img, err := s.deps.Images.GenerateFor(r.Context(), req.Word, req.Subject)
	switch {
	case err == nil:
		respondJSON(w, http.StatusOK, imageResponse{Image: img, Href: "/api/images/" + img.File})
	case errors.Is(err, imagegen.ErrEmptyWord):
		respondError(w, http.StatusBadRequest, "validation_error", "word is required")
	case errors.Is(err, imagegen.ErrImagesDisabled):
		respondError(w, http.StatusConflict, "images_disabled", "image generation is turned off in settings")
	case errors.Is(err, imagegen.ErrNoClient):
		respondError(w, http.StatusServiceUnavailable, "no_provider", "no image provider has an API key")
	case errors.Is(err, imagegen.ErrQuotaExceeded):
		respondError(w, http.StatusTooManyRequests, "quota_exceeded", "image provider quota exceeded")
	default:
		s.logger.Error("image generation failed", "word", req.Word, "error", err)
		respondError(w, http.StatusBadGateway, "provider_error", "image generation failed")
	}
}

func (s *Server) handleServeImage(w http.ResponseWriter, r *http.Request) {
	if s.deps.Images == nil {
		unavailable(w, "image generation")
		return
	}
	path, err := s.deps.Images.Resolve(urlParam(r, "file"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if !fileExists(path) {
		respondError(w, http.StatusNotFound, "not_found", "image not found")
		return
	}
	w.Header().Set("Content-Type", "image/jpeg")
	http.ServeFile(w, r, path)
}
