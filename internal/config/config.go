package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Ai        AIConfig
	Retrieval RetrievalConfig
	Chat      ChatConfig
	Auth      AuthConfig
	Ingestion IngestionConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type AIConfig struct {
	EmbeddingProvider  string // "ollama" or "openai"
	EmbeddingModel     string
	EmbeddingDimension int
	EmbeddingCacheTTL  time.Duration
	OllamaBaseURL      string
	OpenAIBaseURL      string
	OpenAIAPIKey       string
	LLMProvider        string // "ollama" or "openai"
	LLMModel           string
}

type RetrievalConfig struct {
	RerankerURL          string // empty disables the second stage
	DefaultLimit         int
	FirstStageMultiplier int
	FirstStageCap        int
	Timeout              time.Duration
}

type ChatConfig struct {
	MaxSteps int
}

type AuthConfig struct {
	JWTSecret string
}

type IngestionConfig struct {
	ChunkSize    int
	ChunkOverlap int
	UploadTopic  string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Ai: AIConfig{
			EmbeddingProvider:  getEnv("EMBEDDING_PROVIDER", "ollama"),
			EmbeddingModel:     getEnv("EMBEDDING_MODEL", "nomic-embed-text"),
			EmbeddingDimension: getEnvAsInt("EMBEDDING_DIMENSION", 768),
			EmbeddingCacheTTL:  getEnvAsDuration("EMBEDDING_CACHE_TTL", 15*time.Minute),
			OllamaBaseURL:      getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OpenAIBaseURL:      getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			OpenAIAPIKey:       getEnv("OPENAI_API_KEY", ""),
			LLMProvider:        getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:           getEnv("LLM_MODEL", "llama3"),
		},
		Retrieval: RetrievalConfig{
			RerankerURL:          getEnv("RERANKER_URL", ""),
			DefaultLimit:         getEnvAsInt("RETRIEVAL_DEFAULT_LIMIT", 5),
			FirstStageMultiplier: getEnvAsInt("RETRIEVAL_FIRST_STAGE_MULTIPLIER", 5),
			FirstStageCap:        getEnvAsInt("RETRIEVAL_FIRST_STAGE_CAP", 50),
			Timeout:              getEnvAsDuration("RETRIEVAL_TIMEOUT", 15*time.Second),
		},
		Chat: ChatConfig{
			MaxSteps: getEnvAsInt("CHAT_MAX_STEPS", 3),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
		},
		Ingestion: IngestionConfig{
			ChunkSize:    getEnvAsInt("INGESTION_CHUNK_SIZE", 500),
			ChunkOverlap: getEnvAsInt("INGESTION_CHUNK_OVERLAP", 50),
			UploadTopic:  getEnv("UPLOAD_DOCS_TOPIC_NAME", "UPLOAD_DOCS"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
