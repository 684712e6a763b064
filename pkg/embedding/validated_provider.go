package embedding

import (
	"context"
	"fmt"
)

// ValidatedProvider decorates an EmbeddingProvider with a dimension check so
// a misconfigured model is rejected at generation time instead of failing at
// the vector column.
type ValidatedProvider struct {
	inner     EmbeddingProvider
	dimension int
}

func NewValidatedProvider(inner EmbeddingProvider, dimension int) EmbeddingProvider {
	return &ValidatedProvider{
		inner:     inner,
		dimension: dimension,
	}
}

func (p *ValidatedProvider) Generate(ctx context.Context, text string) ([]float32, error) {
	vec, err := p.inner.Generate(ctx, text)
	if err != nil {
		return nil, err
	}
	if p.dimension > 0 && len(vec) != p.dimension {
		return nil, fmt.Errorf("embedding dimension mismatch: model returned %d, storage expects %d", len(vec), p.dimension)
	}
	return vec, nil
}
