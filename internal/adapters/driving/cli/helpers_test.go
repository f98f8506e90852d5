package cli

import (
	"context"
	"sync"

	"github.com/custodia-labs/doclens-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/doclens-cli/internal/config"
	"github.com/custodia-labs/doclens-cli/internal/core/domain"
	"github.com/custodia-labs/doclens-cli/internal/core/ports/driven"
	"github.com/custodia-labs/doclens-cli/internal/parser/markdown"
)

// sampleCorpus is a two-section corpus in the expected markdown format.
const sampleCorpus = `## Arquivo: docs/auth.md
## Metadata_Start
## title: Authentication
## slug: authentication
## Metadata_End
How to authenticate with the API using tokens.
---
## Arquivo: docs/billing.md
## Metadata_Start
## title: Billing
## slug: billing
## Metadata_End
How invoices and payment methods work.
---
`

// mockEmbedder returns a fixed-dimension vector derived from text length.
type mockEmbedder struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (m *mockEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return []float32{float32(len(text)), 1}, nil
}

func (m *mockEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		vec, err := m.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		out[i] = vec
	}
	return out, nil
}

func (m *mockEmbedder) Dimensions() int              { return 2 }
func (m *mockEmbedder) ModelName() string            { return "mock-embedder" }
func (m *mockEmbedder) Ping(_ context.Context) error { return nil }
func (m *mockEmbedder) Close() error                 { return nil }

// mockLLM returns a canned analysis and records the last prompt.
type mockLLM struct {
	mu         sync.Mutex
	lastPrompt string
	response   string
	err        error
}

func (m *mockLLM) Generate(_ context.Context, prompt string, _ driven.GenerateOptions) (string, error) {
	m.mu.Lock()
	m.lastPrompt = prompt
	m.mu.Unlock()
	if m.err != nil {
		return "", m.err
	}
	if m.response == "" {
		return "The corpus covers this topic well.", nil
	}
	return m.response, nil
}

func (m *mockLLM) ModelName() string            { return "mock-llm" }
func (m *mockLLM) Ping(_ context.Context) error { return nil }
func (m *mockLLM) Close() error                 { return nil }

// seededStore returns an in-memory store pre-loaded with two documents.
func seededStore() *memory.CorpusStore {
	store := memory.NewCorpusStore()
	store.Seed(domain.Corpus{
		{
			Record:    domain.Record{Slug: "authentication", Title: "Authentication", Content: "Token auth."},
			Embedding: []float32{1, 0},
		},
		{
			Record:    domain.Record{Slug: "billing", Title: "Billing", Content: "Invoices."},
			Embedding: []float32{0, 1},
		},
	})
	return store
}

// setupTestServices wires mock services into the package vars and
// returns a cleanup that restores the previous state.
func setupTestServices() func() {
	oldCfg := cfg
	oldParser := corpusParser
	oldStore := corpusStore
	oldEmbedder := embeddingService
	oldLLM := llmService

	cfg = config.Default()
	corpusParser = markdown.New()
	corpusStore = seededStore()
	embeddingService = &mockEmbedder{}
	llmService = &mockLLM{}

	return func() {
		cfg = oldCfg
		corpusParser = oldParser
		corpusStore = oldStore
		embeddingService = oldEmbedder
		llmService = oldLLM
	}
}
