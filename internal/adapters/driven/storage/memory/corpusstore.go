// Package memory provides an in-memory corpus store. It backs tests and
// ad-hoc pipelines that do not need a snapshot on disk.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/doclens-cli/internal/core/domain"
	"github.com/custodia-labs/doclens-cli/internal/core/ports/driven"
)

// Ensure CorpusStore implements the interface.
var _ driven.CorpusStore = (*CorpusStore)(nil)

// CorpusStore holds the corpus in memory. The zero value is empty and
// ready to use.
type CorpusStore struct {
	mu     sync.RWMutex
	corpus domain.Corpus
	saves  int
}

// NewCorpusStore creates an empty in-memory corpus store.
func NewCorpusStore() *CorpusStore {
	return &CorpusStore{}
}

// Seed replaces the stored corpus without validation. Intended for
// test setup.
func (s *CorpusStore) Seed(corpus domain.Corpus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.corpus = corpus
}

// Save validates and stores the corpus, replacing any previous one.
func (s *CorpusStore) Save(_ context.Context, corpus domain.Corpus) error {
	if err := corpus.Validate(); err != nil {
		return fmt.Errorf("invalid corpus: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.corpus = make(domain.Corpus, len(corpus))
	copy(s.corpus, corpus)
	s.saves++
	return nil
}

// Load returns the stored corpus. Returns an error if nothing has been
// stored yet, matching the file store's behaviour for a missing snapshot.
func (s *CorpusStore) Load(_ context.Context) (domain.Corpus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.corpus == nil {
		return nil, fmt.Errorf("no corpus stored: run an index build first")
	}

	out := make(domain.Corpus, len(s.corpus))
	copy(out, s.corpus)
	return out, nil
}

// Saves reports how many times Save succeeded.
func (s *CorpusStore) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}
