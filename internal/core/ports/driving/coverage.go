package driving

import (
	"context"

	"github.com/custodia-labs/doclens-cli/internal/core/domain"
)

// IndexBuilder turns parsed records into an indexed corpus.
type IndexBuilder interface {
	// Build embeds every record and returns the corpus in input order.
	// A persistent embedding failure aborts the whole build; no partial
	// corpus is returned.
	Build(ctx context.Context, records []domain.Record) (domain.Corpus, error)
}

// CoverageAnalyzer answers free-text coverage queries against the
// loaded corpus.
type CoverageAnalyzer interface {
	// Analyze embeds the query, ranks the corpus, and asks the
	// generative reasoning service for a coverage analysis of the
	// top-k documents. When the generative call fails after ranking
	// succeeded, the returned report still carries the ranked
	// references alongside the error.
	Analyze(ctx context.Context, query string, k int) (*domain.CoverageReport, error)
}
