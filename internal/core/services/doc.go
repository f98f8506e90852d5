// Package services implements the core use cases of doclens.
//
// Three services cover the retrieval pipeline:
//
//   - IndexService: embeds parsed records into an indexed corpus (offline)
//   - Ranker: scores corpus documents against a query vector
//   - CoverageService: answers coverage queries over a loaded corpus
//
// Services depend only on domain types and driven ports, never on
// concrete adapters.
package services
