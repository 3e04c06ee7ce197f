// Package imagegen renders a small sketch for a vocabulary word with OpenAI
// or Gemini and keeps the result in an on-disk cache.
package imagegen

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ProviderName identifies an image generation backend.
type ProviderName string

const (
	ProviderOpenAI ProviderName = "openai"
	ProviderGemini ProviderName = "gemini"
)

// Valid reports whether p is a known provider.
func (p ProviderName) Valid() bool {
	return p == ProviderOpenAI || p == ProviderGemini
}

// Other returns the fallback provider for p.
func (p ProviderName) Other() ProviderName {
	if p == ProviderGemini {
		return ProviderOpenAI
	}
	return ProviderGemini
}

// ParseProvider parses a provider name, case-insensitively.
func ParseProvider(s string) (ProviderName, error) {
	p := ProviderName(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("unknown image provider %q (want openai or gemini)", s)
	}
	return p, nil
}

var (
	// ErrQuotaExceeded marks a provider failure caused by billing, quota or
	// rate limits. It is the signal that switches to the other provider.
	ErrQuotaExceeded = errors.New("image quota exceeded")

	// ErrImagesDisabled is returned when image generation is turned off.
	ErrImagesDisabled = errors.New("image generation disabled")

	// ErrNoClient is returned by a provider that has no API key configured.
	ErrNoClient = errors.New("image provider not configured")
)

// Rendered is the raw output of a generator.
type Rendered struct {
	Data []byte
	// SourceURL is the provider-hosted URL the data was downloaded from,
	// if the provider returned one.
	SourceURL string
}

// Generator produces an image for a prompt.
type Generator interface {
	Name() ProviderName
	Generate(ctx context.Context, prompt string) (Rendered, error)
}

// Prompt builds the sketch prompt for a subject.
func Prompt(subject string) string {
	return fmt.Sprintf("Simple sketch of %s, minimalist line drawing style, black and white", subject)
}

// quotaError wraps err with ErrQuotaExceeded when it looks like a quota
// failure.
func quotaError(provider ProviderName, status int, err error) error {
	if status == 429 || isQuotaMessage(err.Error()) {
		return fmt.Errorf("%s: %w: %w", provider, ErrQuotaExceeded, err)
	}
	return fmt.Errorf("%s: %w", provider, err)
}

// isQuotaMessage reports whether an error message looks like a quota or
// billing failure.
func isQuotaMessage(msg string) bool {
	msg = strings.ToLower(msg)
	for _, s := range []string{"billing", "quota", "limit", "429"} {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}
