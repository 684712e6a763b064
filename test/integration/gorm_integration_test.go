package integration

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"film-assistant-be/internal/config"
	"film-assistant-be/internal/entity"
	"film-assistant-be/internal/repository/unitofwork"
	"film-assistant-be/pkg/database"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.ChunkRepository())
	assert.NotNil(t, uow.ChunkEmbeddingRepository())
	assert.NotNil(t, uow.TelemetryEventRepository())

	sqlDB, _ := gormDB.DB()
	assert.NoError(t, sqlDB.Ping())

	t.Run("Check Chunk Repository", func(t *testing.T) {
		count, err := uow.ChunkRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Chunk count: %d", count)
	})

	t.Run("Check Chunk Embedding Repository", func(t *testing.T) {
		count, err := uow.ChunkEmbeddingRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("ChunkEmbedding count: %d", count)
	})

	t.Run("Transactional Chunk And Embedding", func(t *testing.T) {
		ctx := context.Background()
		txUow := uowFactory.NewUnitOfWork(ctx)
		require.NoError(t, txUow.Begin(ctx))
		defer txUow.Rollback()

		chunk := entity.Chunk{Content: "integration test chunk"}
		require.NoError(t, txUow.ChunkRepository().Create(ctx, &chunk))
		require.NotZero(t, chunk.Id)

		vector := make([]float32, config.Load().Ai.EmbeddingDimension)
		vector[0] = 1
		emb := entity.ChunkEmbedding{ChunkId: chunk.Id, Embedding: vector}
		require.NoError(t, txUow.ChunkEmbeddingRepository().Create(ctx, &emb))

		scored, err := txUow.ChunkEmbeddingRepository().SearchNearest(ctx, vector, 1)
		require.NoError(t, err)
		require.NotEmpty(t, scored)
		assert.Equal(t, chunk.Id, scored[0].ChunkId)

		// Rolled back by the deferred call; nothing persists.
	})
}
