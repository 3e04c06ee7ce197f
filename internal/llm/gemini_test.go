package llm

import (
	"errors"
	"testing"

	"google.golang.org/genai"
)

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-2.0-flash"},
		{"gemini-pro", "gemini-2.5-pro"},
		{"gemini-flash-lite", "gemini-2.0-flash-lite"},
		{"gemini-2.5-flash", "gemini-2.5-flash"}, // Pass-through
	}
	for _, tt := range tests {
		got := resolveModel(tt.input, geminiModels)
		if got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestBuildGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"word":  map[string]any{"type": "string"},
			"start": map[string]any{"type": "integer"},
			"type":  map[string]any{"type": "string", "enum": []any{"NOUN", "VERB", "ADJ"}},
			"spans": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "integer"},
			},
		},
		"required": []any{"word", "type"},
	}

	schema := buildGeminiSchema(def)

	if schema.Type != "OBJECT" {
		t.Fatalf("expected OBJECT type, got %s", schema.Type)
	}
	if len(schema.Properties) != 4 {
		t.Fatalf("expected 4 properties, got %d", len(schema.Properties))
	}
	if schema.Properties["word"].Type != "STRING" {
		t.Fatalf("expected STRING for word, got %s", schema.Properties["word"].Type)
	}
	if schema.Properties["start"].Type != "INTEGER" {
		t.Fatalf("expected INTEGER for start, got %s", schema.Properties["start"].Type)
	}
	if len(schema.Properties["type"].Enum) != 3 {
		t.Fatalf("expected 3 enum values, got %d", len(schema.Properties["type"].Enum))
	}
	if schema.Properties["spans"].Type != "ARRAY" {
		t.Fatalf("expected ARRAY for spans, got %s", schema.Properties["spans"].Type)
	}
	if schema.Properties["spans"].Items.Type != "INTEGER" {
		t.Fatalf("expected INTEGER for spans items, got %s", schema.Properties["spans"].Items.Type)
	}
	if len(schema.Required) != 2 {
		t.Fatalf("expected 2 required fields, got %d", len(schema.Required))
	}
}

func TestMapGeminiError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"rate limit", genai.APIError{Code: 429, Status: "RESOURCE_EXHAUSTED", Message: "too many requests"}, "rate"},
		{"quota", genai.APIError{Code: 429, Status: "RESOURCE_EXHAUSTED", Message: "You exceeded your current quota"}, "quota"},
		{"server", genai.APIError{Code: 503, Message: "unavailable"}, "unavailable"},
		{"network", errors.New("dial tcp: refused"), "unavailable"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := mapGeminiError(tt.err)
			var (
				rl    *ErrRateLimit
				quota *ErrQuotaExhausted
				down  *ErrProviderUnavailable
			)
			switch tt.want {
			case "rate":
				if !errors.As(err, &rl) {
					t.Fatalf("got %T, want ErrRateLimit", err)
				}
			case "quota":
				if !errors.As(err, &quota) {
					t.Fatalf("got %T, want ErrQuotaExhausted", err)
				}
			default:
				if !errors.As(err, &down) {
					t.Fatalf("got %T, want ErrProviderUnavailable", err)
				}
			}
		})
	}
}
