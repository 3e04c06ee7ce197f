package imagegen

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// GeminiGenerator renders images with Imagen through the Gemini API.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

// NewGeminiGenerator creates a generator for the given Imagen model.
func NewGeminiGenerator(client *genai.Client, model string) *GeminiGenerator {
	if model == "" {
		model = "imagen-3.0-generate-002"
	}
	return &GeminiGenerator{client: client, model: model}
}

func (g *GeminiGenerator) Name() ProviderName { return ProviderGemini }

func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (Rendered, error) {
	resp, err := g.client.Models.GenerateImages(ctx, g.model, prompt, nil)
	if err != nil {
		return Rendered{}, mapGeminiError(err)
	}
	for _, img := range resp.GeneratedImages {
		if img == nil || img.Image == nil || len(img.Image.ImageBytes) == 0 {
			continue
		}
		return Rendered{Data: img.Image.ImageBytes}, nil
	}
	return Rendered{}, fmt.Errorf("gemini: no image returned")
}

func mapGeminiError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return quotaError(ProviderGemini, apiErr.Code, err)
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return quotaError(ProviderGemini, apiErrPtr.Code, err)
	}
	return quotaError(ProviderGemini, 0, err)
}
