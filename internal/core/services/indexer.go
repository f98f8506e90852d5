package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/doclens-cli/internal/core/domain"
	"github.com/custodia-labs/doclens-cli/internal/core/ports/driven"
	"github.com/custodia-labs/doclens-cli/internal/core/ports/driving"
	"github.com/custodia-labs/doclens-cli/internal/logger"
)

// Ensure IndexService implements the interface.
var _ driving.IndexBuilder = (*IndexService)(nil)

// Defaults for the offline build.
const (
	DefaultEmbedConcurrency = 4
	DefaultEmbedRetries     = 3
)

// IndexService embeds parsed records into an indexed corpus.
// A persistent embedding failure aborts the whole build: a partial
// corpus silently degrades retrieval quality, so nothing is returned
// unless every record embedded successfully.
type IndexService struct {
	embedder    driven.EmbeddingService
	concurrency int
	retries     uint64
	limiter     *rate.Limiter
}

// IndexOption configures the index service.
type IndexOption func(*IndexService)

// WithConcurrency sets how many embedding calls run in parallel.
func WithConcurrency(n int) IndexOption {
	return func(s *IndexService) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithRetries sets how many times a failed embedding call is retried
// before the build aborts.
func WithRetries(n int) IndexOption {
	return func(s *IndexService) {
		if n >= 0 {
			s.retries = uint64(n)
		}
	}
}

// WithRateLimit caps embedding calls at n per second across all
// workers. Zero disables the limiter.
func WithRateLimit(n float64) IndexOption {
	return func(s *IndexService) {
		if n > 0 {
			s.limiter = rate.NewLimiter(rate.Limit(n), 1)
		}
	}
}

// NewIndexService creates a new index builder on top of the given
// embedding service.
func NewIndexService(embedder driven.EmbeddingService, opts ...IndexOption) *IndexService {
	s := &IndexService{
		embedder:    embedder,
		concurrency: DefaultEmbedConcurrency,
		retries:     DefaultEmbedRetries,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Build embeds every record and returns the corpus. Output order equals
// input order regardless of which embedding calls finish first; each
// worker writes only its own slot.
func (s *IndexService) Build(ctx context.Context, records []domain.Record) (domain.Corpus, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("no records to index: %w", domain.ErrInvalidInput)
	}
	if err := checkSlugs(records); err != nil {
		return nil, err
	}

	logger.Section("Corpus Build")
	logger.Info("embedding %d records with %s (concurrency %d)",
		len(records), s.embedder.ModelName(), s.concurrency)

	corpus := make(domain.Corpus, len(records))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, rec := range records {
		i, rec := i, rec
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if s.limiter != nil {
				if err := s.limiter.Wait(gctx); err != nil {
					return err
				}
			}
			vec, err := embedWithRetry(gctx, s.embedder, EmbeddingText(rec), s.retries)
			if err != nil {
				return fmt.Errorf("record %q: %w", rec.Slug, err)
			}
			corpus[i] = domain.Document{Record: rec, Embedding: vec}
			logger.Debug("embedded %q (%d dimensions)", rec.Slug, len(vec))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("build corpus: %w", err)
	}

	logger.Info("corpus built: %d documents, %d dimensions", len(corpus), corpus.Dimensions())
	return corpus, nil
}

// checkSlugs rejects duplicate slugs across the input records. The
// parser already deduplicates; this guards callers that bypass it.
func checkSlugs(records []domain.Record) error {
	seen := make(map[string]struct{}, len(records))
	for _, rec := range records {
		if _, dup := seen[rec.Slug]; dup {
			return fmt.Errorf("record %q: %w", rec.Slug, domain.ErrDuplicateSlug)
		}
		seen[rec.Slug] = struct{}{}
	}
	return nil
}
