package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/abhisek/lingua/internal/fallback"
)

// rawQuote accepts every field name the quote services have used.
type rawQuote struct {
	Q         string          `json:"q"`
	A         string          `json:"a"`
	Quote     string          `json:"quote"`
	Content   string          `json:"content"`
	Author    string          `json:"author"`
	Character json.RawMessage `json:"character"`
	Anime     json.RawMessage `json:"anime"`
}

type named struct {
	Name string `json:"name"`
}

// name reads either "Naruto" or {"name": "Naruto"}.
func name(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n named
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.Name
	}
	return ""
}

func (r rawQuote) text() string {
	for _, s := range []string{r.Q, r.Quote, r.Content} {
		if strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}

func (r rawQuote) author() string {
	for _, s := range []string{r.A, r.Author, name(r.Character)} {
		if strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}

func (s *Service) get(ctx context.Context, url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("status %d: %w", resp.StatusCode, fallback.ErrQuota)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, 1<<20))
}

// decode finds quote objects in body: a bare object, an array, or either
// of those under "data" or "content".
func decode(body []byte) ([]rawQuote, error) {
	body = []byte(strings.TrimSpace(string(body)))
	if len(body) == 0 {
		return nil, fmt.Errorf("%w: empty body", fallback.ErrInvalid)
	}
	if body[0] == '[' {
		var list []rawQuote
		if err := json.Unmarshal(body, &list); err != nil {
			return nil, fmt.Errorf("%w: %w", fallback.ErrInvalid, err)
		}
		return list, nil
	}

	var wrapper struct {
		Data    json.RawMessage `json:"data"`
		Content json.RawMessage `json:"content"`
	}
	if err := json.Unmarshal(body, &wrapper); err != nil {
		return nil, fmt.Errorf("%w: %w", fallback.ErrInvalid, err)
	}
	for _, inner := range []json.RawMessage{wrapper.Data, wrapper.Content} {
		trimmed := strings.TrimSpace(string(inner))
		if strings.HasPrefix(trimmed, "[") || strings.HasPrefix(trimmed, "{") {
			return decode(inner)
		}
	}

	var one rawQuote
	if err := json.Unmarshal(body, &one); err != nil {
		return nil, fmt.Errorf("%w: %w", fallback.ErrInvalid, err)
	}
	return []rawQuote{one}, nil
}

func (s *Service) fetchRandom(ctx context.Context, url string) (Quote, error) {
	body, err := s.get(ctx, url)
	if err != nil {
		return Quote{}, fmt.Errorf("quote: %w", err)
	}
	list, err := decode(body)
	if err != nil {
		return Quote{}, fmt.Errorf("quote: %w", err)
	}

	var usable []Quote
	for _, r := range list {
		if r.text() == "" || r.author() == "" {
			continue
		}
		usable = append(usable, Quote{Content: r.text(), Author: r.author(), Source: StrategyRandom})
	}
	if len(usable) == 0 {
		return Quote{}, fmt.Errorf("quote: %w: no usable quote", fallback.ErrInvalid)
	}
	return usable[s.pick(len(usable))], nil
}

func (s *Service) fetchCharacter(ctx context.Context, url, source string) (CharacterQuote, error) {
	body, err := s.get(ctx, url)
	if err != nil {
		return CharacterQuote{}, fmt.Errorf("%s: %w", source, err)
	}
	list, err := decode(body)
	if err != nil {
		return CharacterQuote{}, fmt.Errorf("%s: %w", source, err)
	}
	for _, r := range list {
		character, anime := name(r.Character), name(r.Anime)
		if r.text() == "" || character == "" || anime == "" {
			continue
		}
		return CharacterQuote{Content: r.text(), Character: character, Anime: anime, Source: source}, nil
	}
	return CharacterQuote{}, fmt.Errorf("%s: %w: missing anime, character or quote", source, fallback.ErrInvalid)
}
