package config

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Storage   StorageConfig   `yaml:"storage"`
	Words     WordsConfig     `yaml:"words"`
	Cache     CacheConfig     `yaml:"cache"`
	Log       LogConfig       `yaml:"log"`
	Server    ServerConfig    `yaml:"server"`
	Translate TranslateConfig `yaml:"translate"`
	POS       POSConfig       `yaml:"pos"`
	Images    ImagesConfig    `yaml:"images"`
	Quotes    QuotesConfig    `yaml:"quotes"`
	LLM       LLMConfig       `yaml:"llm"`
}

// StorageConfig selects and configures the key-value backend.
type StorageConfig struct {
	Backend       string `yaml:"backend"        env:"LINGUA_STORAGE"        env-default:"sqlite"`
	DBPath        string `yaml:"db_path"        env:"LINGUA_DB"`
	RedisAddr     string `yaml:"redis_addr"     env:"LINGUA_REDIS_ADDR"     env-default:"localhost:6379"`
	RedisPassword string `yaml:"redis_password" env:"LINGUA_REDIS_PASSWORD"`
	RedisDB       int    `yaml:"redis_db"       env:"LINGUA_REDIS_DB"       env-default:"0"`
}

// WordsConfig points at an optional directory of word bank files.
// Built-in word banks are used for languages the directory does not cover.
type WordsConfig struct {
	Dir string `yaml:"dir" env:"LINGUA_WORDS_DIR"`
}

// CacheConfig holds the on-disk cache location (generated images).
type CacheConfig struct {
	Dir string `yaml:"dir" env:"LINGUA_CACHE_DIR"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LINGUA_LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LINGUA_LOG_FORMAT" env-default:"text"`
	File   string `yaml:"file"   env:"LINGUA_LOG_FILE"`
}

// ServerConfig holds HTTP server settings for `lingua serve`.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"LINGUA_SERVER_HOST"             env-default:"127.0.0.1"`
	Port            int           `yaml:"port"             env:"LINGUA_SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"LINGUA_SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"LINGUA_SERVER_WRITE_TIMEOUT"    env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"LINGUA_SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	AllowedOrigins  string        `yaml:"allowed_origins"  env:"LINGUA_CORS_ALLOWED_ORIGINS"    env-default:"*"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Origins splits AllowedOrigins on commas.
func (s ServerConfig) Origins() []string {
	return splitList(s.AllowedOrigins)
}

// TranslateConfig configures the translation fallback chain.
type TranslateConfig struct {
	LectoAPIKey string        `yaml:"lecto_api_key" env:"LECTO_API_KEY"`
	LectoURL    string        `yaml:"lecto_url"     env:"LINGUA_LECTO_URL"     env-default:"https://api.lecto.ai/v1/translate/text"`
	MyMemoryURL string        `yaml:"mymemory_url"  env:"LINGUA_MYMEMORY_URL"  env-default:"https://api.mymemory.translated.net/get"`
	Timeout     time.Duration `yaml:"timeout"       env:"LINGUA_TRANSLATE_TIMEOUT" env-default:"5s"`
}

// POSConfig configures part-of-speech tagging.
type POSConfig struct {
	BackendURL string        `yaml:"backend_url" env:"LINGUA_POS_BACKEND_URL"`
	Timeout    time.Duration `yaml:"timeout"     env:"LINGUA_POS_TIMEOUT" env-default:"10s"`
}

// ImagesConfig configures word image generation.
type ImagesConfig struct {
	OpenAIAPIKey string `yaml:"openai_api_key" env:"LINGUA_OPENAI_API_KEY"`
	OpenAIModel  string `yaml:"openai_model"   env:"LINGUA_IMAGE_OPENAI_MODEL" env-default:"dall-e-2"`
	GeminiAPIKey string `yaml:"gemini_api_key" env:"LINGUA_GEMINI_API_KEY"`
	GeminiModel  string `yaml:"gemini_model"   env:"LINGUA_IMAGE_GEMINI_MODEL" env-default:"imagen-3.0-generate-002"`
}

// QuotesConfig holds the quote service endpoints.
type QuotesConfig struct {
	RandomURL          string        `yaml:"random_url"           env:"LINGUA_QUOTES_RANDOM_URL"    env-default:"https://api.animechan.io/v1/quotes/random"`
	CharacterURL       string        `yaml:"character_url"        env:"LINGUA_QUOTES_CHARACTER_URL" env-default:"https://animechan.xyz/api/random"`
	CharacterBackupURL string        `yaml:"character_backup_url" env:"LINGUA_QUOTES_BACKUP_URL"    env-default:"https://animechan.vercel.app/api/random"`
	Timeout            time.Duration `yaml:"timeout"              env:"LINGUA_QUOTES_TIMEOUT"       env-default:"5s"`
}

// LLMConfig selects the LLM used for tagging when the POS backend is down.
// An empty provider means auto-discovery from the standard key variables.
type LLMConfig struct {
	Provider string `yaml:"provider" env:"LINGUA_LLM_PROVIDER"`
}

var (
	validBackends = []string{"sqlite", "redis"}
	validFormats  = []string{"text", "json"}
	validLevels   = []string{"debug", "info", "warn", "error"}
	validLLMs     = []string{"", "anthropic", "openai", "gemini", "mock", "none"}
)

// Validate checks enum fields and ranges.
func (c *Config) Validate() error {
	if !slices.Contains(validBackends, strings.ToLower(c.Storage.Backend)) {
		return fmt.Errorf("storage.backend: unsupported value %q", c.Storage.Backend)
	}
	if !slices.Contains(validFormats, strings.ToLower(c.Log.Format)) {
		return fmt.Errorf("log.format: unsupported value %q", c.Log.Format)
	}
	if !slices.Contains(validLevels, strings.ToLower(c.Log.Level)) {
		return fmt.Errorf("log.level: unsupported value %q", c.Log.Level)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port: %d out of range", c.Server.Port)
	}
	if c.Translate.Timeout <= 0 {
		return fmt.Errorf("translate.timeout must be positive")
	}
	if !slices.Contains(validLLMs, strings.ToLower(c.LLM.Provider)) {
		return fmt.Errorf("llm.provider: unsupported value %q", c.LLM.Provider)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
