package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// DefaultFile is the config file picked up from the working directory
// when no path is given.
const DefaultFile = "./lingua.yaml"

// Load reads configuration from a YAML file and environment variables.
// Priority: ENV > YAML > defaults (via env-default tags).
//
// A .env file in the working directory is loaded first; it never overrides
// variables that are already set. The YAML path is the explicit argument,
// then LINGUA_CONFIG, then CONFIG_PATH, then DefaultFile. A missing file is
// an error only when the path was given explicitly.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}

	explicit := path != ""
	if !explicit {
		path = os.Getenv("LINGUA_CONFIG")
		if path == "" {
			path = os.Getenv("CONFIG_PATH")
		}
		explicit = path != ""
	}
	if !explicit {
		path = DefaultFile
	}

	var cfg Config
	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if explicit {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	if err := cfg.applyDefaults(); err != nil {
		return nil, fmt.Errorf("config: defaults: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

// applyDefaults fills in directory defaults that depend on the environment.
func (c *Config) applyDefaults() error {
	if c.Cache.Dir == "" {
		dir, err := cacheHome()
		if err != nil {
			return err
		}
		c.Cache.Dir = filepath.Join(dir, "lingua")
	}
	return nil
}

// cacheHome resolves $XDG_CACHE_HOME, falling back to ~/.cache.
func cacheHome() (string, error) {
	if d := os.Getenv("XDG_CACHE_HOME"); d != "" {
		return d, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".cache"), nil
}
