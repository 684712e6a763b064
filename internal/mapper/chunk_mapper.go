package mapper

import (
	"film-assistant-be/internal/entity"
	"film-assistant-be/internal/model"
)

type ChunkMapper struct{}

func NewChunkMapper() *ChunkMapper {
	return &ChunkMapper{}
}

func (m *ChunkMapper) ToEntity(c *model.Chunk) *entity.Chunk {
	if c == nil {
		return nil
	}
	return &entity.Chunk{
		Id:        c.Id,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
	}
}

func (m *ChunkMapper) ToModel(c *entity.Chunk) *model.Chunk {
	if c == nil {
		return nil
	}
	return &model.Chunk{
		Id:        c.Id,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
	}
}
