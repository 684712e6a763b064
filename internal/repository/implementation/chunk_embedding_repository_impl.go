package implementation

import (
	"context"
	"errors"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"film-assistant-be/internal/entity"
	"film-assistant-be/internal/mapper"
	"film-assistant-be/internal/model"
	"film-assistant-be/internal/repository/contract"
	"film-assistant-be/internal/repository/specification"
)

type ChunkEmbeddingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChunkEmbeddingMapper
}

func NewChunkEmbeddingRepository(db *gorm.DB) contract.ChunkEmbeddingRepository {
	return &ChunkEmbeddingRepositoryImpl{
		db:     db,
		mapper: mapper.NewChunkEmbeddingMapper(),
	}
}

func (r *ChunkEmbeddingRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ChunkEmbeddingRepositoryImpl) Create(ctx context.Context, embedding *entity.ChunkEmbedding) error {
	m := r.mapper.ToModel(embedding)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*embedding = *r.mapper.ToEntity(m)
	return nil
}

func (r *ChunkEmbeddingRepositoryImpl) DeleteByChunkId(ctx context.Context, chunkId int64) error {
	return r.db.WithContext(ctx).Where("chunk_id = ?", chunkId).Delete(&model.ChunkEmbedding{}).Error
}

func (r *ChunkEmbeddingRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChunkEmbedding, error) {
	var m model.ChunkEmbedding
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ChunkEmbeddingRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.ChunkEmbedding{}).Count(&count).Error
	return count, err
}

func (r *ChunkEmbeddingRepositoryImpl) SearchNearest(ctx context.Context, vector []float32, k int) ([]*contract.ScoredChunk, error) {
	if k <= 0 {
		k = 5
	}

	var rows []struct {
		ChunkId  int64
		Content  string
		Distance float64
	}

	// Cosine distance via pgvector's <=> operator. The same expression is used
	// for ordering and for the reported distance.
	err := r.db.WithContext(ctx).
		Table("chunk_embeddings").
		Select("chunks.id AS chunk_id, chunks.content AS content, chunk_embeddings.embedding <=> ? AS distance", pgvector.NewVector(vector)).
		Joins("JOIN chunks ON chunks.id = chunk_embeddings.chunk_id").
		Clauses(clause.OrderBy{Expression: clause.Expr{
			SQL:  "chunk_embeddings.embedding <=> ?",
			Vars: []interface{}{pgvector.NewVector(vector)},
		}}).
		Limit(k).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredChunk, len(rows))
	for i, row := range rows {
		scored[i] = &contract.ScoredChunk{
			ChunkId:  row.ChunkId,
			Content:  row.Content,
			Distance: row.Distance,
		}
	}
	return scored, nil
}
