package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/fatih/color"

	"film-assistant-be/internal/config"
	"film-assistant-be/internal/entity"
	"film-assistant-be/internal/repository/unitofwork"
	"film-assistant-be/pkg/database"
	"film-assistant-be/pkg/embedding"
	"film-assistant-be/pkg/utils"
)

// Bulk-loads text files into the knowledge base, bypassing the HTTP surface.
// Usage: go run ./cmd/ingest file1.txt [file2.txt ...]
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: ingest <file> [file ...]")
	}

	cfg := config.Load()

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	uowFactory := unitofwork.NewRepositoryFactory(db)

	var provider embedding.EmbeddingProvider
	switch cfg.Ai.EmbeddingProvider {
	case "openai":
		provider = embedding.NewOpenAIProvider(cfg.Ai.OpenAIBaseURL, cfg.Ai.OpenAIAPIKey, cfg.Ai.EmbeddingModel)
	default:
		provider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.EmbeddingModel)
	}
	provider = embedding.NewValidatedProvider(provider, cfg.Ai.EmbeddingDimension)

	ctx := context.Background()
	totalChunks := 0

	for _, path := range os.Args[1:] {
		data, err := os.ReadFile(path)
		if err != nil {
			color.Red("✗ %s: %v", path, err)
			continue
		}

		fragments := utils.FilterFragments(utils.SplitText(string(data), cfg.Ingestion.ChunkSize, cfg.Ingestion.ChunkOverlap))
		color.Cyan("%s: %d fragments", path, len(fragments))

		for _, fragment := range fragments {
			vector, err := provider.Generate(ctx, fragment)
			if err != nil {
				color.Red("✗ embedding failed: %v", err)
				os.Exit(1)
			}

			uow := uowFactory.NewUnitOfWork(ctx)
			if err := uow.Begin(ctx); err != nil {
				color.Red("✗ begin tx: %v", err)
				os.Exit(1)
			}

			chunk := entity.Chunk{Content: fragment, CreatedAt: time.Now()}
			if err := uow.ChunkRepository().Create(ctx, &chunk); err != nil {
				uow.Rollback()
				color.Red("✗ create chunk: %v", err)
				os.Exit(1)
			}
			emb := entity.ChunkEmbedding{ChunkId: chunk.Id, Embedding: vector, CreatedAt: time.Now()}
			if err := uow.ChunkEmbeddingRepository().Create(ctx, &emb); err != nil {
				uow.Rollback()
				color.Red("✗ create embedding: %v", err)
				os.Exit(1)
			}
			if err := uow.Commit(); err != nil {
				color.Red("✗ commit: %v", err)
				os.Exit(1)
			}
			totalChunks++
		}
	}

	color.Green("✓ Ingested %d chunks", totalChunks)
}
