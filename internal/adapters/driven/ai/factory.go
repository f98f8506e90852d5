// Package ai provides factory functions for creating AI service adapters.
package ai

import (
	"context"
	"fmt"
	"time"

	geminiembed "github.com/custodia-labs/doclens-cli/internal/adapters/driven/embedding/gemini"
	openaiembed "github.com/custodia-labs/doclens-cli/internal/adapters/driven/embedding/openai"
	geminillm "github.com/custodia-labs/doclens-cli/internal/adapters/driven/llm/gemini"
	openaillm "github.com/custodia-labs/doclens-cli/internal/adapters/driven/llm/openai"
	"github.com/custodia-labs/doclens-cli/internal/config"
	"github.com/custodia-labs/doclens-cli/internal/core/domain"
	"github.com/custodia-labs/doclens-cli/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// Services bundles the AI backends for a configured provider.
type Services struct {
	Embedding driven.EmbeddingService
	LLM       driven.LLMService
}

// Close releases all resources held by Services.
func (s *Services) Close() {
	if s.Embedding != nil {
		s.Embedding.Close()
	}
	if s.LLM != nil {
		s.LLM.Close()
	}
}

// CreateEmbeddingService creates the embedding service for the configured provider.
func CreateEmbeddingService(cfg *config.Config) (driven.EmbeddingService, error) {
	apiKey, err := cfg.APIKey()
	if err != nil {
		return nil, err
	}

	timeout := time.Duration(cfg.Embedding.TimeoutSeconds) * time.Second

	switch cfg.Provider {
	case config.ProviderGemini:
		return geminiembed.NewEmbeddingService(geminiembed.Config{
			APIKey:  apiKey,
			BaseURL: cfg.Embedding.BaseURL,
			Model:   cfg.Embedding.Model,
			Timeout: timeout,
		})

	case config.ProviderOpenAI:
		return openaiembed.NewEmbeddingService(openaiembed.Config{
			APIKey:  apiKey,
			BaseURL: cfg.Embedding.BaseURL,
			Model:   cfg.Embedding.Model,
			Timeout: timeout,
		})

	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", cfg.Provider)
	}
}

// CreateLLMService creates the generative service for the configured provider.
func CreateLLMService(cfg *config.Config) (driven.LLMService, error) {
	apiKey, err := cfg.APIKey()
	if err != nil {
		return nil, err
	}

	timeout := time.Duration(cfg.LLM.TimeoutSeconds) * time.Second

	switch cfg.Provider {
	case config.ProviderGemini:
		return geminillm.NewLLMService(geminillm.Config{
			APIKey:  apiKey,
			BaseURL: cfg.LLM.BaseURL,
			Model:   cfg.LLM.Model,
			Timeout: timeout,
		})

	case config.ProviderOpenAI:
		return openaillm.NewLLMService(openaillm.Config{
			APIKey:  apiKey,
			BaseURL: cfg.LLM.BaseURL,
			Model:   cfg.LLM.Model,
			Timeout: timeout,
		})

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}

// CreateAndValidateEmbeddingService creates an embedding service and
// validates connectivity before returning it.
func CreateAndValidateEmbeddingService(cfg *config.Config) (driven.EmbeddingService, error) {
	svc, err := CreateEmbeddingService(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrEmbeddingService, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: service unreachable: %w", domain.ErrEmbeddingService, err)
	}
	return svc, nil
}

// CreateAndValidateLLMService creates a generative service and validates
// connectivity before returning it.
func CreateAndValidateLLMService(cfg *config.Config) (driven.LLMService, error) {
	svc, err := CreateLLMService(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrGenerativeService, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: service unreachable: %w", domain.ErrGenerativeService, err)
	}
	return svc, nil
}

// CreateAndValidateServices creates both AI services for the configured
// provider, validating connectivity for each.
func CreateAndValidateServices(cfg *config.Config) (*Services, error) {
	embedding, err := CreateAndValidateEmbeddingService(cfg)
	if err != nil {
		return nil, err
	}

	llm, err := CreateAndValidateLLMService(cfg)
	if err != nil {
		embedding.Close()
		return nil, err
	}

	return &Services{Embedding: embedding, LLM: llm}, nil
}
