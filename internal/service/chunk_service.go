package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"film-assistant-be/internal/config"
	"film-assistant-be/internal/constant"
	"film-assistant-be/internal/dto"
	"film-assistant-be/internal/entity"
	"film-assistant-be/internal/pkg/logger"
	"film-assistant-be/internal/repository/unitofwork"
	"film-assistant-be/pkg/embedding"
	"film-assistant-be/pkg/events"
	"film-assistant-be/pkg/rag/retrieve"
	"film-assistant-be/pkg/utils"
)

type IChunkService interface {
	// Ingest persists one chunk and its embedding atomically.
	Ingest(ctx context.Context, content string) (int64, error)
	UploadChunks(ctx context.Context, req *dto.UploadChunksRequest) (*dto.UploadChunksResponse, error)
	UploadDocs(ctx context.Context, req *dto.UploadDocsRequest) (*dto.UploadDocsResponse, error)
	Delete(ctx context.Context, id int64) error
	Samples(ctx context.Context, req *dto.SamplesRequest) (*dto.SamplesResponse, error)
	Retrieve(ctx context.Context, question string, limit int) ([]retrieve.Candidate, error)
}

type chunkService struct {
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	retriever         *retrieve.Retriever
	publisherService  IPublisherService
	eventPublisher    events.Publisher
	ingestion         config.IngestionConfig
	logger            logger.ILogger
}

func NewChunkService(
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	retriever *retrieve.Retriever,
	publisherService IPublisherService,
	eventPublisher events.Publisher,
	ingestion config.IngestionConfig,
	log logger.ILogger,
) IChunkService {
	if ingestion.ChunkSize <= 0 {
		ingestion.ChunkSize = 500
	}
	if ingestion.ChunkOverlap < 0 {
		ingestion.ChunkOverlap = 0
	}
	return &chunkService{
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		retriever:         retriever,
		publisherService:  publisherService,
		eventPublisher:    eventPublisher,
		ingestion:         ingestion,
		logger:            log,
	}
}

func (c *chunkService) Ingest(ctx context.Context, content string) (int64, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return 0, fmt.Errorf("chunk content is empty")
	}

	vector, err := c.embeddingProvider.Generate(ctx, content)
	if err != nil {
		return 0, fmt.Errorf("generate embedding: %w", err)
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}
	defer uow.Rollback()

	chunk := entity.Chunk{
		Content:   content,
		CreatedAt: time.Now(),
	}
	if err := uow.ChunkRepository().Create(ctx, &chunk); err != nil {
		return 0, err
	}

	emb := entity.ChunkEmbedding{
		ChunkId:   chunk.Id,
		Embedding: vector,
		CreatedAt: time.Now(),
	}
	if err := uow.ChunkEmbeddingRepository().Create(ctx, &emb); err != nil {
		return 0, err
	}

	if err := uow.Commit(); err != nil {
		return 0, err
	}

	c.emit(ctx, events.ChunkIngested(chunk.Id, len(content)))
	return chunk.Id, nil
}

func (c *chunkService) UploadChunks(ctx context.Context, req *dto.UploadChunksRequest) (*dto.UploadChunksResponse, error) {
	ids := make([]int64, 0, len(req.Chunks))
	for _, content := range req.Chunks {
		id, err := c.Ingest(ctx, content)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return &dto.UploadChunksResponse{ChunkIds: ids}, nil
}

func (c *chunkService) UploadDocs(ctx context.Context, req *dto.UploadDocsRequest) (*dto.UploadDocsResponse, error) {
	queued := 0
	for _, doc := range req.Docs {
		fragments := utils.FilterFragments(utils.SplitText(doc, c.ingestion.ChunkSize, c.ingestion.ChunkOverlap))
		for _, fragment := range fragments {
			payload, err := json.Marshal(dto.PublishChunkFragmentMessage{Content: fragment})
			if err != nil {
				return nil, err
			}
			if err := c.publisherService.Publish(ctx, payload); err != nil {
				return nil, err
			}
			queued++
		}
	}

	c.logger.Info("ChunkService", "Document fragments queued", map[string]interface{}{
		"docs":      len(req.Docs),
		"fragments": queued,
	})
	return &dto.UploadDocsResponse{QueuedFragments: queued}, nil
}

func (c *chunkService) Delete(ctx context.Context, id int64) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ChunkEmbeddingRepository().DeleteByChunkId(ctx, id); err != nil {
		return err
	}
	if err := uow.ChunkRepository().Delete(ctx, id); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	c.emit(ctx, events.ChunkDeleted(id))
	return nil
}

func (c *chunkService) Samples(ctx context.Context, req *dto.SamplesRequest) (*dto.SamplesResponse, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = constant.DefaultSampleLimit
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	chunks, err := uow.ChunkRepository().Sample(ctx, limit)
	if err != nil {
		return nil, err
	}

	items := make([]dto.SampleChunk, len(chunks))
	for i, chunk := range chunks {
		items[i] = dto.SampleChunk{Id: chunk.Id, Content: chunk.Content}
	}
	return &dto.SamplesResponse{Items: items}, nil
}

func (c *chunkService) Retrieve(ctx context.Context, question string, limit int) ([]retrieve.Candidate, error) {
	return c.retriever.Retrieve(ctx, question, limit)
}

func (c *chunkService) emit(ctx context.Context, event events.Event) {
	if c.eventPublisher == nil {
		return
	}
	if err := c.eventPublisher.Publish(ctx, event); err != nil {
		c.logger.Debug("ChunkService", "Failed to publish telemetry event", map[string]interface{}{
			"event": event.EventType(),
			"error": err.Error(),
		})
	}
}
