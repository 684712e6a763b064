package model

import (
	"time"

	"github.com/pgvector/pgvector-go"
)

type ChunkEmbedding struct {
	Id      int64 `gorm:"primaryKey;autoIncrement"`
	ChunkId int64 `gorm:"not null;uniqueIndex"`
	// The column dimension follows EMBEDDING_DIMENSION; cmd/migrate alters it
	// after AutoMigrate. The tag matches the default (nomic-embed-text).
	Embedding pgvector.Vector `gorm:"type:vector(768)"`
	CreatedAt time.Time       `gorm:"autoCreateTime"`
}

func (ChunkEmbedding) TableName() string {
	return "chunk_embeddings"
}
