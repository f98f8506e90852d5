package driven

import (
	"context"
	"io"

	"github.com/custodia-labs/doclens-cli/internal/core/domain"
)

// CorpusParser splits a consolidated documentation source into discrete
// document records, extracting metadata and cleaned body text.
// Records are returned in source order.
type CorpusParser interface {
	// Parse reads the consolidated source and returns one record per
	// section. An input with no recognisable sections returns an error
	// wrapping domain.ErrNoSections.
	Parse(ctx context.Context, r io.Reader) ([]domain.Record, error)
}
