package main

import (
	"fmt"
	"log"

	"film-assistant-be/internal/config"
	"film-assistant-be/internal/model"
	"film-assistant-be/pkg/database"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()
	if cfg.Database.Connection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Starting GORM Migration...")

	// 3. Pre-Migration: extensions GORM AutoMigrate does not handle
	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS vector;`,
	}
	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Fatalf("Error: Setup step failed (%s): %v", sql, err)
		}
	}

	// 4. AutoMigrate the schema
	if err := db.AutoMigrate(
		&model.Chunk{},
		&model.ChunkEmbedding{},
		&model.TelemetryEvent{},
	); err != nil {
		log.Fatal("Error: AutoMigrate failed:", err)
	}

	// 5. Align the vector column with the configured embedding dimension.
	// Fails if existing rows carry a different dimension; re-embed first.
	alterSQL := fmt.Sprintf(
		`ALTER TABLE chunk_embeddings ALTER COLUMN embedding TYPE vector(%d);`,
		cfg.Ai.EmbeddingDimension,
	)
	if err := db.Exec(alterSQL).Error; err != nil {
		log.Fatalf("Error: Failed to set embedding dimension to %d: %v", cfg.Ai.EmbeddingDimension, err)
	}

	// 6. Post-Migration: vector index for nearest-neighbor search
	indexSQL := `CREATE INDEX IF NOT EXISTS idx_chunk_embeddings_embedding
		ON chunk_embeddings USING hnsw (embedding vector_cosine_ops);`
	if err := db.Exec(indexSQL).Error; err != nil {
		log.Printf("Warn: Failed to create vector index (hnsw may be unavailable): %v", err)
	}

	log.Println("Migration complete.")
}
