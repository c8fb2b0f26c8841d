package core

import "context"

// LLMProvider is the remote extraction endpoint. Generate sends one bounded
// request and returns the raw response body without reshaping it.
type LLMProvider interface {
	Generate(ctx context.Context, systemPrompt string, userPrompt string) (string, error)
}

// EmbeddingProvider turns parsed resume payloads into vectors for the
// similarity search.
type EmbeddingProvider interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}
