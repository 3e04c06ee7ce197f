package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/abhisek/lingua/internal/fallback"
)

type myMemoryResponse struct {
	ResponseData struct {
		TranslatedText   string `json:"translatedText"`
		DetectedLanguage string `json:"detectedLanguage"`
	} `json:"responseData"`
	ResponseStatus json.Number `json:"responseStatus"`
}

func (s *Service) myMemory(ctx context.Context, text, target, source string) (Translation, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	params := url.Values{}
	params.Set("q", text)
	params.Set("langpair", source+"|"+target)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.MyMemoryURL+"?"+params.Encode(), nil)
	if err != nil {
		return Translation{}, fmt.Errorf("mymemory: create request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return Translation{}, fmt.Errorf("mymemory: request failed: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus("mymemory", resp); err != nil {
		return Translation{}, err
	}

	var out myMemoryResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Translation{}, fmt.Errorf("mymemory: decode json: %w: %w", fallback.ErrInvalid, err)
	}
	translated := out.ResponseData.TranslatedText
	if strings.TrimSpace(translated) == "" {
		return Translation{}, fmt.Errorf("mymemory: %w: empty translatedText", fallback.ErrInvalid)
	}
	// MyMemory reports quota exhaustion inside a 200 body.
	if out.ResponseStatus.String() == "429" {
		return Translation{}, fmt.Errorf("mymemory: %w: %s", fallback.ErrQuota, translated)
	}

	detected := source
	if source == AutoDetect {
		detected = out.ResponseData.DetectedLanguage
		if detected == "" {
			detected = DefaultSource
		}
	}
	return Translation{
		OriginalText:   text,
		TranslatedText: translated,
		SourceLanguage: detected,
		TargetLanguage: target,
		Provider:       StrategyMyMemory,
	}, nil
}
