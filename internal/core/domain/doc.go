// Package domain defines the core business entities for doclens.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Record: A parsed documentation section before indexing
//   - Document: A Record with its embedding vector attached
//   - Corpus: The ordered collection of indexed documents
//   - RankedResult: A document scored against a query vector
//   - CoverageReport: The answer produced for a coverage query
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
