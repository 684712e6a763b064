package embedding

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatedProviderAcceptsMatchingDimension(t *testing.T) {
	inner := &countingProvider{vec: []float32{0.1, 0.2, 0.3}}
	p := NewValidatedProvider(inner, 3)

	vec, err := p.Generate(context.Background(), "some text")
	assert.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, vec)
}

func TestValidatedProviderRejectsWrongDimension(t *testing.T) {
	inner := &countingProvider{vec: []float32{0.1, 0.2}}
	p := NewValidatedProvider(inner, 3)

	_, err := p.Generate(context.Background(), "some text")
	assert.ErrorContains(t, err, "dimension mismatch")
}

func TestValidatedProviderZeroDimensionDisablesCheck(t *testing.T) {
	inner := &countingProvider{vec: []float32{0.1, 0.2}}
	p := NewValidatedProvider(inner, 0)

	vec, err := p.Generate(context.Background(), "some text")
	assert.NoError(t, err)
	assert.Len(t, vec, 2)
}
