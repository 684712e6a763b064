package mapper

import (
	"github.com/pgvector/pgvector-go"

	"film-assistant-be/internal/entity"
	"film-assistant-be/internal/model"
)

type ChunkEmbeddingMapper struct{}

func NewChunkEmbeddingMapper() *ChunkEmbeddingMapper {
	return &ChunkEmbeddingMapper{}
}

func (m *ChunkEmbeddingMapper) ToEntity(e *model.ChunkEmbedding) *entity.ChunkEmbedding {
	if e == nil {
		return nil
	}
	return &entity.ChunkEmbedding{
		Id:        e.Id,
		ChunkId:   e.ChunkId,
		Embedding: e.Embedding.Slice(),
		CreatedAt: e.CreatedAt,
	}
}

func (m *ChunkEmbeddingMapper) ToModel(e *entity.ChunkEmbedding) *model.ChunkEmbedding {
	if e == nil {
		return nil
	}
	return &model.ChunkEmbedding{
		Id:        e.Id,
		ChunkId:   e.ChunkId,
		Embedding: pgvector.NewVector(e.Embedding),
		CreatedAt: e.CreatedAt,
	}
}
