package embedding

import "context"

// EmbeddingProvider defines the interface for generating text embeddings.
// Implementations must return a non-empty vector or an error.
type EmbeddingProvider interface {
	Generate(ctx context.Context, text string) ([]float32, error)
}
