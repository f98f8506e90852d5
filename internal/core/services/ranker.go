package services

import (
	"fmt"
	"math"
	"sort"

	"github.com/custodia-labs/doclens-cli/internal/core/domain"
	"github.com/custodia-labs/doclens-cli/internal/logger"
)

// DefaultTopK is the number of documents returned when the caller does
// not specify k.
const DefaultTopK = 5

// Ranker scores corpus documents against a query vector using cosine
// similarity. It holds no state; the corpus is passed per call and
// never mutated.
type Ranker struct{}

// NewRanker creates a new similarity ranker.
func NewRanker() *Ranker {
	return &Ranker{}
}

// Rank scores every document in the corpus against the query vector and
// returns the top k by descending cosine similarity. Ties keep corpus
// insertion order, so identical inputs always produce identical output.
//
// An empty corpus returns an empty slice. A query whose dimensionality
// differs from the corpus returns domain.ErrDimensionMismatch before
// any document is scored. k <= 0 falls back to DefaultTopK.
func (r *Ranker) Rank(query []float32, corpus domain.Corpus, k int) ([]domain.RankedResult, error) {
	if len(corpus) == 0 {
		return []domain.RankedResult{}, nil
	}
	if dims := corpus.Dimensions(); len(query) != dims {
		return nil, fmt.Errorf("query has %d dimensions, corpus has %d: %w",
			len(query), dims, domain.ErrDimensionMismatch)
	}
	if k <= 0 {
		k = DefaultTopK
	}

	results := make([]domain.RankedResult, len(corpus))
	for i := range corpus {
		results[i] = domain.RankedResult{
			Document: corpus[i],
			Score:    Cosine(query, corpus[i].Embedding),
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if k > len(results) {
		k = len(results)
	}
	logger.Debug("ranked %d documents, returning top %d", len(results), k)
	return results[:k], nil
}

// Cosine returns the cosine similarity of two equal-length vectors,
// accumulated in float64 for stability. A zero-norm vector on either
// side yields 0 rather than a division error.
func Cosine(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
