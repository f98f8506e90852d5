// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Interfaces
//
//   - CorpusParser: Splits a consolidated source into document records
//   - EmbeddingService: Converts text into vectors
//   - LLMService: Generative reasoning over an assembled prompt
//   - CorpusStore: Persists and loads the indexed corpus snapshot
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or parser package
package driven
