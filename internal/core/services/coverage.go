package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/custodia-labs/doclens-cli/internal/core/domain"
	"github.com/custodia-labs/doclens-cli/internal/core/ports/driven"
	"github.com/custodia-labs/doclens-cli/internal/core/ports/driving"
	"github.com/custodia-labs/doclens-cli/internal/logger"
)

// Ensure CoverageService implements the interface.
var _ driving.CoverageAnalyzer = (*CoverageService)(nil)

// DefaultQueryRetries bounds retries of query-time service calls.
const DefaultQueryRetries = 2

// CoverageService answers coverage queries: it embeds the query, ranks
// the corpus, and asks the generative reasoning service for an analysis
// grounded in the top documents. It owns no ranking logic beyond
// delegating to the Ranker, and it never mutates the corpus.
type CoverageService struct {
	corpus   domain.Corpus
	embedder driven.EmbeddingService
	llm      driven.LLMService
	ranker   *Ranker
	retries  uint64
}

// CoverageOption configures the coverage service.
type CoverageOption func(*CoverageService)

// WithQueryRetries sets how many times failed embedding or generative
// calls are retried at query time.
func WithQueryRetries(n int) CoverageOption {
	return func(s *CoverageService) {
		if n >= 0 {
			s.retries = uint64(n)
		}
	}
}

// NewCoverageService creates a coverage analyzer over a loaded,
// read-only corpus.
func NewCoverageService(
	corpus domain.Corpus,
	embedder driven.EmbeddingService,
	llm driven.LLMService,
	opts ...CoverageOption,
) *CoverageService {
	s := &CoverageService{
		corpus:   corpus,
		embedder: embedder,
		llm:      llm,
		ranker:   NewRanker(),
		retries:  DefaultQueryRetries,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Analyze answers a free-text coverage query with the top-k relevant
// documents and a generated analysis. When the generative call fails
// after ranking succeeded, the returned report still carries the
// ranked references alongside the error.
func (s *CoverageService) Analyze(ctx context.Context, query string, k int) (*domain.CoverageReport, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("coverage query: %w", domain.ErrEmptyQuery)
	}

	logger.Section("Coverage Analysis")
	logger.Debug("query: %q, k: %d, corpus: %d documents", query, k, len(s.corpus))

	vec, err := embedWithRetry(ctx, s.embedder, query, s.retries)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	ranked, err := s.ranker.Rank(vec, s.corpus, k)
	if err != nil {
		return nil, fmt.Errorf("rank corpus: %w", err)
	}

	// Non-positive similarity is noise, not coverage. With nothing left
	// the analysis becomes a gap suggestion instead of a refinement.
	results := make([]domain.RankedResult, 0, len(ranked))
	for _, res := range ranked {
		if res.Score > 0 {
			results = append(results, res)
		}
	}

	report := &domain.CoverageReport{
		ID:        uuid.New().String(),
		Query:     query,
		Documents: documentRefs(results),
	}
	logger.Info("report %s: %d relevant documents", report.ID, len(results))

	prompt, genOpts := buildPrompt(query, results)
	logger.Debug("prompt: %d bytes, temperature %.1f", len(prompt), genOpts.Temperature)

	analysis, err := generateWithRetry(ctx, s.llm, prompt, genOpts, s.retries)
	if err != nil {
		// Ranking succeeded; the caller keeps the references.
		return report, fmt.Errorf("analyze %q: %w", query, err)
	}

	report.Analysis = analysisPreamble(query, len(results) > 0) + analysis
	return report, nil
}

// documentRefs projects ranked results onto the reference list the
// query surface returns.
func documentRefs(results []domain.RankedResult) []domain.DocumentRef {
	refs := make([]domain.DocumentRef, len(results))
	for i, res := range results {
		refs[i] = domain.DocumentRef{
			Title: res.Document.Title,
			Slug:  res.Document.Slug,
			Score: res.Score,
		}
	}
	return refs
}
