package unitofwork

import (
	"context"

	"film-assistant-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ChunkRepository() contract.ChunkRepository
	ChunkEmbeddingRepository() contract.ChunkEmbeddingRepository
	TelemetryEventRepository() contract.TelemetryEventRepository
}
