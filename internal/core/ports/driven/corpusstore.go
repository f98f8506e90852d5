package driven

import (
	"context"

	"github.com/custodia-labs/doclens-cli/internal/core/domain"
)

// CorpusStore persists the indexed corpus as a flat snapshot.
// Save fully replaces any prior snapshot; there are no partial or
// incremental writes. Load reconstructs an equivalent corpus with
// identical ordering and numerically identical embeddings.
type CorpusStore interface {
	// Save writes the corpus snapshot, replacing prior content.
	// The corpus must validate; a half-built snapshot is never observable.
	Save(ctx context.Context, corpus domain.Corpus) error

	// Load reads the snapshot back. Structural violations (inconsistent
	// dimensionality, duplicate slugs, missing fields) return an error
	// wrapping domain.ErrCorruptIndex.
	Load(ctx context.Context) (domain.Corpus, error)
}
