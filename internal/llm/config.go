package llm

import (
	"fmt"
	"os"
	"time"
)

// Provider names accepted by Config.Provider.
const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
	ProviderGemini    = "gemini"
	ProviderMock      = "mock"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use.
	Provider string

	Anthropic AnthropicConfig
	OpenAI    OpenAIConfig
	Gemini    GeminiConfig
	Retry     RetryConfig

	// Timeout bounds a single request including retries.
	Timeout time.Duration
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string
	Model  string
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string // Optional, for OpenAI-compatible gateways.
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string
	Model  string
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config with defaults suited to short tagging calls.
func DefaultConfig() Config {
	return Config{
		Provider:  ProviderAnthropic,
		Anthropic: AnthropicConfig{Model: "claude-haiku"},
		OpenAI:    OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:    GeminiConfig{Model: "gemini-flash"},
		Retry: RetryConfig{
			MaxAttempts: 2,
			InitialWait: 500 * time.Millisecond,
			MaxWait:     5 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 20 * time.Second,
	}
}

type envVar struct {
	name string
	dst  *string
}

// envOverrides maps LINGUA_* variables onto config fields.
func envOverrides(cfg *Config) []envVar {
	return []envVar{
		{"LINGUA_LLM_PROVIDER", &cfg.Provider},
		{"LINGUA_ANTHROPIC_API_KEY", &cfg.Anthropic.APIKey},
		{"LINGUA_ANTHROPIC_MODEL", &cfg.Anthropic.Model},
		{"LINGUA_OPENAI_API_KEY", &cfg.OpenAI.APIKey},
		{"LINGUA_OPENAI_MODEL", &cfg.OpenAI.Model},
		{"LINGUA_OPENAI_BASE_URL", &cfg.OpenAI.BaseURL},
		{"LINGUA_GEMINI_API_KEY", &cfg.Gemini.APIKey},
		{"LINGUA_GEMINI_MODEL", &cfg.Gemini.Model},
	}
}

// ConfigFromEnv builds a Config from LINGUA_* environment variables,
// falling back to defaults for unset values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	for _, o := range envOverrides(&cfg) {
		if v := os.Getenv(o.name); v != "" {
			*o.dst = v
		}
	}
	return cfg
}

// DiscoverConfig probes the standard API key variables in priority order
// (Gemini, OpenAI, Anthropic) and returns a Config for the first provider
// whose key is found. LINGUA_* model overrides still apply.
func DiscoverConfig() (Config, bool) {
	cfg := ConfigFromEnv()

	switch {
	case os.Getenv("GEMINI_API_KEY") != "":
		cfg.Provider = ProviderGemini
		cfg.Gemini.APIKey = os.Getenv("GEMINI_API_KEY")
	case os.Getenv("OPENAI_API_KEY") != "":
		cfg.Provider = ProviderOpenAI
		cfg.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	case os.Getenv("ANTHROPIC_API_KEY") != "":
		cfg.Provider = ProviderAnthropic
		cfg.Anthropic.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	default:
		return Config{}, false
	}
	return cfg, true
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	missing := func(env string) error {
		return fmt.Errorf("%s is required for the %s provider", env, c.Provider)
	}
	switch c.Provider {
	case ProviderAnthropic:
		if c.Anthropic.APIKey == "" {
			return missing("LINGUA_ANTHROPIC_API_KEY")
		}
	case ProviderOpenAI:
		if c.OpenAI.APIKey == "" {
			return missing("LINGUA_OPENAI_API_KEY")
		}
	case ProviderGemini:
		if c.Gemini.APIKey == "" {
			return missing("LINGUA_GEMINI_API_KEY")
		}
	case ProviderMock:
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}
