package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoSections indicates the corpus source contained no parseable sections.
	ErrNoSections = errors.New("no document sections found")

	// ErrDuplicateSlug indicates two documents share the same slug.
	// Slugs must be unique across the corpus; this is a build-time error.
	ErrDuplicateSlug = errors.New("duplicate slug")

	// ErrCorruptIndex indicates a loaded snapshot violates a structural
	// invariant: inconsistent dimensionality, missing fields, or a count
	// that disagrees with the document list.
	ErrCorruptIndex = errors.New("corrupt index")

	// ErrDimensionMismatch indicates a query vector does not match the
	// corpus embedding dimensionality. Vectors are never truncated or
	// padded to compensate.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrEmptyQuery indicates a blank coverage query.
	ErrEmptyQuery = errors.New("empty query")

	// ErrEmbeddingService indicates the embedding service failed after
	// bounded retries. During a build this aborts the whole pipeline.
	ErrEmbeddingService = errors.New("embedding service failed")

	// ErrGenerativeService indicates the generative reasoning service
	// failed after bounded retries. Ranked document references are still
	// returned to the caller when ranking succeeded.
	ErrGenerativeService = errors.New("generative service failed")
)
