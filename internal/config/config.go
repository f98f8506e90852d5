// Package config loads doclens configuration from a TOML file and the
// environment. API keys are read from the environment only and are never
// written to or read from the config file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// Environment variable names for provider credentials.
const (
	EnvGoogleAPIKey = "GOOGLE_API_KEY"
	EnvOpenAIAPIKey = "OPENAI_API_KEY"
)

// Supported AI providers.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Default configuration values.
const (
	DefaultProvider    = ProviderGemini
	DefaultTopK        = 5
	DefaultConcurrency = 4
	DefaultRetries     = 3
)

// Config holds all doclens settings.
type Config struct {
	// Provider selects the AI backend: "gemini" or "openai".
	Provider string `toml:"provider"`

	// Source is the path to the corpus markdown file.
	Source string `toml:"source"`

	// Snapshot is the path where the embedding index is persisted.
	Snapshot string `toml:"snapshot"`

	// TopK is the default number of documents retrieved per query.
	TopK int `toml:"top_k"`

	Embedding EmbeddingConfig `toml:"embedding"`
	LLM       LLMConfig       `toml:"llm"`
	Index     IndexConfig     `toml:"index"`
}

// EmbeddingConfig holds embedding service settings.
type EmbeddingConfig struct {
	// Model overrides the provider's default embedding model.
	Model string `toml:"model"`

	// BaseURL overrides the provider's API endpoint.
	BaseURL string `toml:"base_url"`

	// TimeoutSeconds overrides the request timeout. Zero keeps the
	// provider default.
	TimeoutSeconds int `toml:"timeout_seconds"`
}

// LLMConfig holds generative service settings.
type LLMConfig struct {
	// Model overrides the provider's default chat model.
	Model string `toml:"model"`

	// BaseURL overrides the provider's API endpoint.
	BaseURL string `toml:"base_url"`

	// TimeoutSeconds overrides the request timeout. Zero keeps the
	// provider default.
	TimeoutSeconds int `toml:"timeout_seconds"`
}

// IndexConfig holds index build settings.
type IndexConfig struct {
	// Concurrency is the number of parallel embedding requests.
	Concurrency int `toml:"concurrency"`

	// Retries is the maximum retry count per embedding request.
	Retries int `toml:"retries"`

	// RateLimit caps embedding requests per second. Zero disables limiting.
	RateLimit float64 `toml:"rate_limit"`
}

// DefaultDir returns the doclens configuration directory (~/.doclens).
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".doclens"), nil
}

// DefaultPath returns the default configuration file path.
func DefaultPath() (string, error) {
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Default returns a Config populated with default values. Source and
// Snapshot default to paths under the doclens config directory.
func Default() *Config {
	cfg := &Config{
		Provider: DefaultProvider,
		TopK:     DefaultTopK,
		Index: IndexConfig{
			Concurrency: DefaultConcurrency,
			Retries:     DefaultRetries,
		},
	}
	if dir, err := DefaultDir(); err == nil {
		cfg.Source = filepath.Join(dir, "corpus.md")
		cfg.Snapshot = filepath.Join(dir, "index.json")
	}
	return cfg
}

// Load reads configuration from the given TOML file, applying defaults
// for unset fields. A missing file is not an error: defaults are
// returned. An empty path uses DefaultPath.
//
// A .env file in the working directory is loaded first so that API keys
// can be kept out of the shell profile during development.
func Load(path string) (*Config, error) {
	// Best effort: absence of a .env file is the normal case.
	_ = godotenv.Load()

	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration to the given path with restricted
// permissions, creating the directory if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}

// APIKey returns the credential for the configured provider, read from
// the environment. Returns an error naming the missing variable so the
// user knows what to set.
func (c *Config) APIKey() (string, error) {
	var envVar string
	switch c.Provider {
	case ProviderGemini:
		envVar = EnvGoogleAPIKey
	case ProviderOpenAI:
		envVar = EnvOpenAIAPIKey
	default:
		return "", fmt.Errorf("unsupported provider: %q", c.Provider)
	}

	key := os.Getenv(envVar)
	if key == "" {
		return "", fmt.Errorf("%s is not set; export it or add it to a .env file", envVar)
	}
	return key, nil
}

func (c *Config) validate() error {
	switch c.Provider {
	case ProviderGemini, ProviderOpenAI:
	default:
		return fmt.Errorf("unsupported provider: %q (expected %q or %q)",
			c.Provider, ProviderGemini, ProviderOpenAI)
	}
	if c.TopK <= 0 {
		return fmt.Errorf("top_k must be positive, got %d", c.TopK)
	}
	if c.Index.Concurrency <= 0 {
		return fmt.Errorf("index.concurrency must be positive, got %d", c.Index.Concurrency)
	}
	if c.Index.Retries < 0 {
		return fmt.Errorf("index.retries must not be negative, got %d", c.Index.Retries)
	}
	if c.Index.RateLimit < 0 {
		return fmt.Errorf("index.rate_limit must not be negative, got %g", c.Index.RateLimit)
	}
	if c.Embedding.TimeoutSeconds < 0 {
		return fmt.Errorf("embedding.timeout_seconds must not be negative, got %d", c.Embedding.TimeoutSeconds)
	}
	if c.LLM.TimeoutSeconds < 0 {
		return fmt.Errorf("llm.timeout_seconds must not be negative, got %d", c.LLM.TimeoutSeconds)
	}
	return nil
}
