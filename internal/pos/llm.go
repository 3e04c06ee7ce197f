package pos

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/lingua/internal/fallback"
	"github.com/abhisek/lingua/internal/llm"
)

const systemPrompt = `You are a part-of-speech tagger for language learners.
Tag each significant word of the user's text and give its start and end
character offsets in the original text. Skip punctuation and whitespace.`

func tagSchema() *llm.Schema {
	tags := make([]any, len(Tags))
	for i, t := range Tags {
		tags[i] = t
	}
	return &llm.Schema{
		Name:        "pos-tags",
		Description: "Part-of-speech tags for each word",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"entities": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"word": map[string]any{"type": "string"},
							"type": map[string]any{"type": "string", "enum": tags},
							"position": map[string]any{
								"type":     "array",
								"items":    map[string]any{"type": "integer"},
								"minItems": 2,
								"maxItems": 2,
							},
						},
						"required":             []any{"word", "type", "position"},
						"additionalProperties": false,
					},
				},
			},
			"required":             []any{"entities"},
			"additionalProperties": false,
		},
	}
}

func (t *Tagger) llmTag(ctx context.Context, text, lang string) ([]Entity, error) {
	if t.provider == nil {
		return nil, fallback.ErrSkip
	}
	ctx = llm.WithPurpose(ctx, llm.PurposePOS)

	out, err := llm.GenerateJSON[backendResponse](ctx, t.provider, llm.Request{
		System:      systemPrompt,
		Messages:    llm.UserMessage(fmt.Sprintf("Language: %s\nText: %q", lang, text)),
		Schema:      tagSchema(),
		MaxTokens:   1024,
		Temperature: 0.1,
	})
	if err != nil {
		return nil, err
	}
	entities := align(text, out.Entities)
	if len(entities) == 0 {
		return nil, fmt.Errorf("llm: %w: no usable entities", fallback.ErrInvalid)
	}
	return entities, nil
}

// classifyLLM maps the llm package's typed errors onto fallback reasons.
func classifyLLM(err error) fallback.Reason {
	var (
		quota   *llm.ErrQuotaExhausted
		rate    *llm.ErrRateLimit
		invalid *llm.ErrInvalidResponse
		maxTok  *llm.ErrMaxTokensExceeded
	)
	switch {
	case errors.As(err, &quota), errors.As(err, &rate):
		return fallback.ReasonQuota
	case errors.As(err, &invalid), errors.As(err, &maxTok):
		return fallback.ReasonInvalid
	}
	return ""
}
