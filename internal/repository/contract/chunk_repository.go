package contract

import (
	"context"

	"film-assistant-be/internal/entity"
	"film-assistant-be/internal/repository/specification"
)

type ChunkRepository interface {
	Create(ctx context.Context, chunk *entity.Chunk) error
	Delete(ctx context.Context, id int64) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Chunk, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Chunk, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// Sample returns up to n chunks in random order.
	Sample(ctx context.Context, n int) ([]*entity.Chunk, error)
}
