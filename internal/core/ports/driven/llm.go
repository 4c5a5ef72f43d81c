package driven

import "context"

// LLMService provides single-turn answer synthesis.
// This is an optional service - when nil, the assistant degrades to
// deterministic template answers.
//
// Implementations may include:
//   - Ollama (local)
//   - Anthropic (Claude)
//   - OpenAI (GPT-4o and compatible APIs)
type LLMService interface {
	// Complete produces a completion for one user message under a
	// system prompt. The core never depends on streaming or
	// multi-turn state, only on the returned text.
	Complete(ctx context.Context, systemPrompt, userMessage string) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight
	// test request. Used at startup before committing to the LLM path.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
