package entity

import (
	"time"
)

// Chunk is one unit of retrievable knowledge. Identity is a stable integer
// assigned by the database; external eval tooling relies on it staying
// constant for the chunk's lifetime.
type Chunk struct {
	Id        int64
	Content   string
	CreatedAt time.Time
}

// ChunkEmbedding is the vector representation of a chunk. Exactly one per
// chunk; created in the same transaction as its chunk.
type ChunkEmbedding struct {
	Id        int64
	ChunkId   int64
	Embedding []float32
	CreatedAt time.Time
}
