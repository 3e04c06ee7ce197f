package pos

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/abhisek/lingua/internal/fallback"
)

type backendRequest struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

type backendResponse struct {
	Entities []Entity `json:"entities"`
}

func (t *Tagger) backend(ctx context.Context, text, lang string) ([]Entity, error) {
	if t.cfg.BackendURL == "" {
		return nil, fallback.ErrSkip
	}
	ctx, cancel := context.WithTimeout(ctx, t.cfg.Timeout)
	defer cancel()

	payload, err := json.Marshal(backendRequest{Text: text, Language: lang})
	if err != nil {
		return nil, fmt.Errorf("pos backend: encode request: %w", err)
	}
	url := strings.TrimRight(t.cfg.BackendURL, "/") + "/api/analyze-pos"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("pos backend: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pos backend: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("pos backend: unexpected status %d", resp.StatusCode)
	}

	// The built-in API wraps payloads in an envelope; a bare spaCy service
	// does not.
	var raw struct {
		backendResponse
		Data *backendResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("pos backend: %w: %w", fallback.ErrInvalid, err)
	}
	out := raw.backendResponse
	if raw.Data != nil {
		out = *raw.Data
	}
	if out.Entities == nil {
		return nil, fmt.Errorf("pos backend: %w: missing entities", fallback.ErrInvalid)
	}
	return align(text, out.Entities), nil
}
