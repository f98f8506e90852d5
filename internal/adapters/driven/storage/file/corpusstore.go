// Package file provides a flat-file CorpusStore using a JSON snapshot.
//
// The snapshot is self-describing: it records the embedding model,
// dimensionality and document count alongside the documents, so a
// loader can verify structural invariants without outside knowledge.
// Floats survive the round trip exactly: encoding/json emits the
// shortest decimal that parses back to the identical float32.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/doclens-cli/internal/core/domain"
	"github.com/custodia-labs/doclens-cli/internal/core/ports/driven"
	"github.com/custodia-labs/doclens-cli/internal/logger"
)

// Ensure CorpusStore implements the interface.
var _ driven.CorpusStore = (*CorpusStore)(nil)

// snapshot is the on-disk format.
type snapshot struct {
	Model      string        `json:"model,omitempty"`
	Dimensions int           `json:"dimensions"`
	Count      int           `json:"count"`
	Documents  domain.Corpus `json:"documents"`
}

// CorpusStore persists the corpus to a single JSON file.
type CorpusStore struct {
	path  string
	model string
}

// Option configures the corpus store.
type Option func(*CorpusStore)

// WithModel records the embedding model name in the snapshot header.
func WithModel(name string) Option {
	return func(s *CorpusStore) {
		s.model = name
	}
}

// NewCorpusStore creates a store backed by the given snapshot path.
func NewCorpusStore(path string, opts ...Option) *CorpusStore {
	s := &CorpusStore{path: path}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the snapshot file location.
func (s *CorpusStore) Path() string {
	return s.path
}

// Save writes the full corpus snapshot, replacing prior content. The
// snapshot is written to a temporary file in the same directory and
// renamed into place, so a crashed save never leaves a readable
// half-written snapshot.
func (s *CorpusStore) Save(_ context.Context, corpus domain.Corpus) error {
	if err := corpus.Validate(); err != nil {
		return fmt.Errorf("refusing to save invalid corpus: %w", err)
	}

	snap := snapshot{
		Model:      s.model,
		Dimensions: corpus.Dimensions(),
		Count:      len(corpus),
		Documents:  corpus,
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create snapshot directory: %w", err)
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".corpus-*.json")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}

	logger.Info("saved corpus snapshot: %d documents, %d dimensions, %s",
		snap.Count, snap.Dimensions, s.path)
	return nil
}

// Load reads the snapshot back and verifies its invariants. Structural
// violations return an error wrapping domain.ErrCorruptIndex.
func (s *CorpusStore) Load(_ context.Context) (domain.Corpus, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("snapshot %s does not exist (run an index build first): %w", s.path, err)
		}
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %v: %w", s.path, err, domain.ErrCorruptIndex)
	}

	if snap.Count != len(snap.Documents) {
		return nil, fmt.Errorf("snapshot %s: header count %d but %d documents: %w",
			s.path, snap.Count, len(snap.Documents), domain.ErrCorruptIndex)
	}
	if err := snap.Documents.Validate(); err != nil {
		if errors.Is(err, domain.ErrCorruptIndex) {
			return nil, fmt.Errorf("snapshot %s: %w", s.path, err)
		}
		return nil, fmt.Errorf("snapshot %s: %v: %w", s.path, err, domain.ErrCorruptIndex)
	}
	if dims := snap.Documents.Dimensions(); snap.Dimensions != dims {
		return nil, fmt.Errorf("snapshot %s: header dimensions %d but documents have %d: %w",
			s.path, snap.Dimensions, dims, domain.ErrCorruptIndex)
	}

	logger.Info("loaded corpus snapshot: %d documents, %d dimensions, model %q",
		snap.Count, snap.Dimensions, snap.Model)
	return snap.Documents, nil
}
