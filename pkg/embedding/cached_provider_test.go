package embedding

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type countingProvider struct {
	calls int
	vec   []float32
}

func (c *countingProvider) Generate(ctx context.Context, text string) ([]float32, error) {
	c.calls++
	return c.vec, nil
}

func TestCachedProviderHitsCache(t *testing.T) {
	inner := &countingProvider{vec: []float32{0.1, 0.2}}
	p := NewCachedProvider(inner, time.Minute)

	v1, err := p.Generate(context.Background(), "who directed inception?")
	assert.NoError(t, err)
	v2, err := p.Generate(context.Background(), "who directed inception?")
	assert.NoError(t, err)

	assert.Equal(t, v1, v2)
	assert.Equal(t, 1, inner.calls)
}

func TestCachedProviderDistinctKeys(t *testing.T) {
	inner := &countingProvider{vec: []float32{0.3}}
	p := NewCachedProvider(inner, time.Minute)

	_, _ = p.Generate(context.Background(), "question one")
	_, _ = p.Generate(context.Background(), "question two")

	assert.Equal(t, 2, inner.calls)
}
