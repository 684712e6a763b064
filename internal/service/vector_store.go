package service

import (
	"context"

	"film-assistant-be/internal/repository/unitofwork"
	"film-assistant-be/pkg/rag/retrieve"
)

// vectorStore adapts the embedding repository to the retrieval pipeline's
// Store interface.
type vectorStore struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewVectorStore(uowFactory unitofwork.RepositoryFactory) retrieve.Store {
	return &vectorStore{uowFactory: uowFactory}
}

func (s *vectorStore) NearestChunks(ctx context.Context, vector []float32, k int) ([]retrieve.Candidate, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	scored, err := uow.ChunkEmbeddingRepository().SearchNearest(ctx, vector, k)
	if err != nil {
		return nil, err
	}

	candidates := make([]retrieve.Candidate, len(scored))
	for i, sc := range scored {
		candidates[i] = retrieve.Candidate{
			ChunkID:  sc.ChunkId,
			Content:  sc.Content,
			Distance: sc.Distance,
		}
	}
	return candidates, nil
}
