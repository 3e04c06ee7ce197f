package imagegen

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

// maxImageBytes bounds a single download.
const maxImageBytes = 10 << 20

// OpenAIGenerator renders images with DALL-E. The image comes back as a
// short-lived URL and is downloaded immediately.
type OpenAIGenerator struct {
	client *openai.Client
	model  string
	size   string
	http   *http.Client
}

// NewOpenAIGenerator creates a generator. An empty model means dall-e-2.
func NewOpenAIGenerator(client *openai.Client, model string, httpClient *http.Client) *OpenAIGenerator {
	if model == "" {
		model = openai.CreateImageModelDallE2
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &OpenAIGenerator{client: client, model: model, size: openai.CreateImageSize256x256, http: httpClient}
}

func (g *OpenAIGenerator) Name() ProviderName { return ProviderOpenAI }

func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string) (Rendered, error) {
	resp, err := g.client.CreateImage(ctx, openai.ImageRequest{
		Prompt:         prompt,
		Model:          g.model,
		N:              1,
		Size:           g.size,
		ResponseFormat: openai.CreateImageResponseFormatURL,
	})
	if err != nil {
		return Rendered{}, mapOpenAIError(err)
	}
	if len(resp.Data) == 0 {
		return Rendered{}, fmt.Errorf("openai: no image returned")
	}

	img := resp.Data[0]
	if img.URL == "" && img.B64JSON != "" {
		data, err := base64.StdEncoding.DecodeString(img.B64JSON)
		if err != nil {
			return Rendered{}, fmt.Errorf("openai: decode image: %w", err)
		}
		return Rendered{Data: data}, nil
	}
	if img.URL == "" {
		return Rendered{}, fmt.Errorf("openai: empty image url")
	}

	data, err := g.download(ctx, img.URL)
	if err != nil {
		return Rendered{}, err
	}
	return Rendered{Data: data, SourceURL: img.URL}, nil
}

func (g *OpenAIGenerator) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("openai: create download request: %w", err)
	}
	resp, err := g.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openai: download failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("openai: download failed with status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("openai: read image: %w", err)
	}
	if len(data) > maxImageBytes {
		return nil, fmt.Errorf("openai: image exceeds %d bytes", maxImageBytes)
	}
	return data, nil
}

func mapOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		if code, _ := apiErr.Code.(string); code == "insufficient_quota" || code == "billing_hard_limit_reached" {
			return fmt.Errorf("%s: %w: %w", ProviderOpenAI, ErrQuotaExceeded, err)
		}
		return quotaError(ProviderOpenAI, apiErr.HTTPStatusCode, err)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return quotaError(ProviderOpenAI, reqErr.HTTPStatusCode, err)
	}
	return quotaError(ProviderOpenAI, 0, err)
}
