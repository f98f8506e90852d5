package domain

import "fmt"

// Record is a single documentation section after parsing.
// It is the canonical representation before embedding.
type Record struct {
	// Slug is the unique, URL-safe identifier for the document.
	Slug string `json:"slug"`

	// Title is the human-readable title from the metadata block.
	Title string `json:"title"`

	// Content is the body text with the metadata block stripped.
	Content string `json:"content"`

	// FilePath is the source-relative path from the section marker.
	FilePath string `json:"filepath,omitempty"`
}

// Document is a Record with its embedding vector attached.
// Documents are immutable once built.
type Document struct {
	Record

	// Embedding is the vector representation used for similarity search.
	// All documents in one corpus share the same dimensionality.
	Embedding []float32 `json:"embedding"`
}

// Corpus is the full ordered collection of indexed documents.
// Order equals source order and is preserved through save/load.
// A loaded corpus is read-only; updates happen only by rebuilding
// and replacing the whole snapshot.
type Corpus []Document

// Dimensions returns the embedding vector size shared by all
// documents, or 0 for an empty corpus.
func (c Corpus) Dimensions() int {
	if len(c) == 0 {
		return 0
	}
	return len(c[0].Embedding)
}

// Validate checks the corpus invariants: every document has a slug,
// a title and an embedding, slugs are unique, and all embeddings share
// the same dimensionality. Violations return a wrapped sentinel error.
func (c Corpus) Validate() error {
	seen := make(map[string]struct{}, len(c))
	dims := 0
	for i := range c {
		d := &c[i]
		if d.Slug == "" {
			return fmt.Errorf("document %d: missing slug: %w", i, ErrCorruptIndex)
		}
		if d.Title == "" {
			return fmt.Errorf("document %q: missing title: %w", d.Slug, ErrCorruptIndex)
		}
		if _, dup := seen[d.Slug]; dup {
			return fmt.Errorf("document %d: slug %q: %w", i, d.Slug, ErrDuplicateSlug)
		}
		seen[d.Slug] = struct{}{}
		if len(d.Embedding) == 0 {
			return fmt.Errorf("document %q: missing embedding: %w", d.Slug, ErrCorruptIndex)
		}
		if dims == 0 {
			dims = len(d.Embedding)
		} else if len(d.Embedding) != dims {
			return fmt.Errorf("document %q: embedding has %d dimensions, corpus has %d: %w",
				d.Slug, len(d.Embedding), dims, ErrCorruptIndex)
		}
	}
	return nil
}
