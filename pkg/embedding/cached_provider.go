package embedding

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

// CachedProvider decorates an EmbeddingProvider with a TTL cache keyed by the
// input text. Repeated queries (evaluation runs replay the same questions)
// skip the embedding round-trip.
type CachedProvider struct {
	inner EmbeddingProvider
	cache *cache.Cache
}

func NewCachedProvider(inner EmbeddingProvider, ttl time.Duration) EmbeddingProvider {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &CachedProvider{
		inner: inner,
		cache: cache.New(ttl, 2*ttl),
	}
}

func (p *CachedProvider) Generate(ctx context.Context, text string) ([]float32, error) {
	if x, found := p.cache.Get(text); found {
		return x.([]float32), nil
	}

	vec, err := p.inner.Generate(ctx, text)
	if err != nil {
		return nil, err
	}

	p.cache.Set(text, vec, cache.DefaultExpiration)
	return vec, nil
}
