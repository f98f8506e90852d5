package services

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/custodia-labs/doclens-cli/internal/core/domain"
	"github.com/custodia-labs/doclens-cli/internal/core/ports/driven"
	"github.com/custodia-labs/doclens-cli/internal/logger"
)

// retryInitialInterval is the first backoff delay; subsequent delays
// grow exponentially with jitter.
const retryInitialInterval = 500 * time.Millisecond

func newBackOff(ctx context.Context, retries uint64) backoff.BackOffContext {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = retryInitialInterval
	bo.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(bo, retries), ctx)
}

// embedWithRetry calls the embedding service with bounded exponential
// backoff. A persistent failure wraps domain.ErrEmbeddingService.
func embedWithRetry(ctx context.Context, svc driven.EmbeddingService, text string, retries uint64) ([]float32, error) {
	var vec []float32
	op := func() error {
		v, err := svc.Embed(ctx, text)
		if err != nil {
			logger.Debug("embed attempt failed: %v", err)
			return err
		}
		vec = v
		return nil
	}
	if err := backoff.Retry(op, newBackOff(ctx, retries)); err != nil {
		return nil, fmt.Errorf("%w after %d attempts: %v", domain.ErrEmbeddingService, retries+1, err)
	}
	return vec, nil
}

// generateWithRetry calls the generative reasoning service with bounded
// exponential backoff. A persistent failure wraps domain.ErrGenerativeService.
func generateWithRetry(ctx context.Context, svc driven.LLMService, prompt string, opts driven.GenerateOptions, retries uint64) (string, error) {
	var text string
	op := func() error {
		t, err := svc.Generate(ctx, prompt, opts)
		if err != nil {
			logger.Debug("generate attempt failed: %v", err)
			return err
		}
		text = t
		return nil
	}
	if err := backoff.Retry(op, newBackOff(ctx, retries)); err != nil {
		return "", fmt.Errorf("%w after %d attempts: %v", domain.ErrGenerativeService, retries+1, err)
	}
	return text, nil
}
