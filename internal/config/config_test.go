package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	chdirTemp(t)
	t.Setenv("LINGUA_CONFIG", "")
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Translate.Timeout)
	assert.Equal(t, "https://api.mymemory.translated.net/get", cfg.Translate.MyMemoryURL)
	assert.Equal(t, "dall-e-2", cfg.Images.OpenAIModel)
	assert.Equal(t, filepath.Join("/tmp/xdg-cache", "lingua"), cfg.Cache.Dir)
}

func TestLoad_YAMLAndEnvOverride(t *testing.T) {
	dir := chdirTemp(t)
	path := filepath.Join(dir, "custom.yaml")
	yaml := "server:\n  port: 9090\nlog:\n  level: debug\nwords:\n  dir: /srv/words\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	t.Setenv("LINGUA_LOG_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Log.Level, "env must win over yaml")
	assert.Equal(t, "/srv/words", cfg.Words.Dir)
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	chdirTemp(t)
	_, err := Load("/does/not/exist.yaml")
	assert.Error(t, err)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := chdirTemp(t)
	t.Setenv("LINGUA_CONFIG", "")
	t.Setenv("CONFIG_PATH", "")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("LINGUA_SERVER_PORT=7070\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("LINGUA_SERVER_PORT") })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{
			Storage:   StorageConfig{Backend: "sqlite"},
			Log:       LogConfig{Level: "info", Format: "text"},
			Server:    ServerConfig{Port: 8080},
			Translate: TranslateConfig{Timeout: time.Second},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"redis backend", func(c *Config) { c.Storage.Backend = "redis" }, false},
		{"bad backend", func(c *Config) { c.Storage.Backend = "postgres" }, true},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, true},
		{"bad level", func(c *Config) { c.Log.Level = "trace" }, true},
		{"bad port", func(c *Config) { c.Server.Port = 0 }, true},
		{"zero timeout", func(c *Config) { c.Translate.Timeout = 0 }, true},
		{"bad llm", func(c *Config) { c.LLM.Provider = "llama" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestServerOrigins(t *testing.T) {
	s := ServerConfig{AllowedOrigins: "http://a.test, http://b.test,,"}
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, s.Origins())
	assert.Equal(t, "127.0.0.1:8080", ServerConfig{Host: "127.0.0.1", Port: 8080}.Addr())
}
