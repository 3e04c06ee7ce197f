// Package llm is a small provider-neutral layer over the OpenAI, Gemini and
// Anthropic SDKs. Callers describe a prompt and an optional JSON schema and
// get back validated JSON.
package llm

import (
	"context"
	"encoding/json"
)

// Provider is the core abstraction for LLM interaction.
type Provider interface {
	// Generate sends a prompt to the LLM and returns a structured response.
	// When req.Schema is set the provider uses its native structured output
	// mechanism and Content is JSON validated against the schema.
	Generate(ctx context.Context, req Request) (*Response, error)

	// Name returns the provider name ("openai", "gemini", ...).
	Name() string

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the LLM.
type Request struct {
	// System is the system prompt.
	System string

	// Messages is the conversation. Tagging and other single-shot calls
	// send one user message.
	Messages []Message

	// Schema is the JSON Schema the response must conform to. When nil,
	// Content is the raw text response.
	Schema *Schema

	MaxTokens int

	// Temperature controls randomness (0.0 - 1.0). Zero means the
	// provider default.
	Temperature float64
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// UserMessage is shorthand for a single user turn.
func UserMessage(content string) []Message {
	return []Message{{Role: RoleUser, Content: content}}
}

// Schema defines the JSON structure expected from the LLM.
type Schema struct {
	// Name identifies this schema, kebab-case (e.g. "pos-tags"). Also the
	// cache key for the compiled validator.
	Name string

	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Response holds the LLM's output.
type Response struct {
	Content json.RawMessage
	Usage   Usage

	// Model is the model that served the request.
	Model string

	// StopReason is normalized to "end", "max_tokens" or "error".
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// GenerateJSON runs req and decodes the response content into T.
func GenerateJSON[T any](ctx context.Context, p Provider, req Request) (T, error) {
	var out T
	resp, err := p.Generate(ctx, req)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return out, &ErrInvalidResponse{Content: resp.Content, Err: err}
	}
	return out, nil
}

// textContent wraps a plain-text reply as a JSON string so Content is
// always valid JSON.
func textContent(s string) json.RawMessage {
	b, _ := json.Marshal(s)
	return b
}
