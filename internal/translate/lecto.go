package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/abhisek/lingua/internal/fallback"
)

type lectoRequest struct {
	Texts []string `json:"texts"`
	To    []string `json:"to"`
	From  string   `json:"from,omitempty"`
}

type lectoResponse struct {
	Translations []json.RawMessage `json:"translations"`
	From         string            `json:"from"`
}

// lectoTranslation is the documented element shape. Some deployments return
// plain strings instead, which firstTranslation also accepts.
type lectoTranslation struct {
	To         string   `json:"to"`
	Translated []string `json:"translated"`
}

func (s *Service) lecto(ctx context.Context, text, target, source string) (Translation, error) {
	if s.cfg.LectoAPIKey == "" {
		return Translation{}, fallback.ErrSkip
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	body := lectoRequest{Texts: []string{text}, To: []string{target}}
	if source != AutoDetect {
		body.From = source
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return Translation{}, fmt.Errorf("lecto: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.LectoURL, bytes.NewReader(payload))
	if err != nil {
		return Translation{}, fmt.Errorf("lecto: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", s.cfg.LectoAPIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return Translation{}, fmt.Errorf("lecto: request failed: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus("lecto", resp); err != nil {
		return Translation{}, err
	}

	var out lectoResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Translation{}, fmt.Errorf("lecto: decode json: %w: %w", fallback.ErrInvalid, err)
	}
	translated, ok := firstTranslation(out.Translations)
	if !ok {
		return Translation{}, fmt.Errorf("lecto: %w: no translations", fallback.ErrInvalid)
	}

	detected := out.From
	if detected == "" {
		detected = source
	}
	return Translation{
		OriginalText:   text,
		TranslatedText: translated,
		SourceLanguage: detected,
		TargetLanguage: target,
		Provider:       StrategyLecto,
	}, nil
}

func firstTranslation(items []json.RawMessage) (string, bool) {
	if len(items) == 0 {
		return "", false
	}
	var s string
	if err := json.Unmarshal(items[0], &s); err == nil && s != "" {
		return s, true
	}
	var t lectoTranslation
	if err := json.Unmarshal(items[0], &t); err == nil && len(t.Translated) > 0 && t.Translated[0] != "" {
		return t.Translated[0], true
	}
	return "", false
}

// checkStatus maps non-2xx responses onto fallback errors.
func checkStatus(service string, resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode == http.StatusPaymentRequired {
		return fmt.Errorf("%s: status %d: %w", service, resp.StatusCode, fallback.ErrQuota)
	}
	return fmt.Errorf("%s: unexpected status %d: %s", service, resp.StatusCode, bytes.TrimSpace(msg))
}
