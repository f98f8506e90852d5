package driven

import "context"

// LLMService is the generative reasoning collaborator. It receives a
// fully assembled prompt and returns free text; it owns no retrieval
// or ranking logic.
//
// Implementations may include:
//   - Google Gemini (gemini-1.5-pro)
//   - OpenAI (GPT-4o family)
type LLMService interface {
	// Generate produces text completion from a prompt.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable with a lightweight request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// GenerateOptions configures text generation behaviour.
type GenerateOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64
}
