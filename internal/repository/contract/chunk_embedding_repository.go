package contract

import (
	"context"

	"film-assistant-be/internal/entity"
	"film-assistant-be/internal/repository/specification"
)

// ScoredChunk is a chunk with its cosine distance to a query vector.
type ScoredChunk struct {
	ChunkId  int64
	Content  string
	Distance float64
}

type ChunkEmbeddingRepository interface {
	Create(ctx context.Context, embedding *entity.ChunkEmbedding) error
	DeleteByChunkId(ctx context.Context, chunkId int64) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChunkEmbedding, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// SearchNearest returns the k chunks closest to the vector, nearest first.
	SearchNearest(ctx context.Context, vector []float32, k int) ([]*ScoredChunk, error)
}
