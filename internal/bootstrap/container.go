package bootstrap

import (
	"context"
	"log"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"film-assistant-be/internal/config"
	"film-assistant-be/internal/controller"
	"film-assistant-be/internal/pkg/logger"
	"film-assistant-be/internal/repository/unitofwork"
	"film-assistant-be/internal/service"
	"film-assistant-be/internal/websocket"
	"film-assistant-be/pkg/embedding"
	"film-assistant-be/pkg/llm/factory"
	pkgNats "film-assistant-be/pkg/nats"
	"film-assistant-be/pkg/rag/orchestrate"
	"film-assistant-be/pkg/rag/rerank"
	"film-assistant-be/pkg/rag/retrieve"
)

type Container struct {
	// Controllers
	ChatController      controller.IChatController
	ChunkController     controller.IChunkController
	EvalController      controller.IEvalController
	TelemetryController controller.ITelemetryController

	// Background services (exposed for main.go to run)
	ConsumerService  service.IConsumerService
	TelemetryService service.ITelemetryService

	// WebSockets
	WebSocketHub *websocket.Hub

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event bus (in-process queue for document ingestion)
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Embedding provider
	var embeddingProvider embedding.EmbeddingProvider
	switch cfg.Ai.EmbeddingProvider {
	case "openai":
		embeddingProvider = embedding.NewOpenAIProvider(cfg.Ai.OpenAIBaseURL, cfg.Ai.OpenAIAPIKey, cfg.Ai.EmbeddingModel)
		log.Printf("[INFO] Using Embedding Provider: OPENAI (%s)", cfg.Ai.EmbeddingModel)
	default:
		embeddingProvider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.EmbeddingModel)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.EmbeddingModel)
	}
	embeddingProvider = embedding.NewValidatedProvider(embeddingProvider, cfg.Ai.EmbeddingDimension)
	embeddingProvider = embedding.NewCachedProvider(embeddingProvider, cfg.Ai.EmbeddingCacheTTL)

	// 4. LLM provider
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.OpenAIAPIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 5. Infrastructure
	natsPub, err := pkgNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pkgNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
		rdb = nil
	}

	wsLogger := logger.NewIsolatedLogger("logs/telemetry.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 6. Retrieval pipeline
	var reranker retrieve.Reranker
	if cfg.Retrieval.RerankerURL != "" {
		reranker = rerank.NewClient(cfg.Retrieval.RerankerURL, cfg.Retrieval.Timeout)
		log.Printf("[INFO] Reranker enabled: %s", cfg.Retrieval.RerankerURL)
	} else {
		log.Printf("[INFO] Reranker disabled, using first-stage order")
	}

	retriever := retrieve.NewRetriever(
		embeddingProvider,
		service.NewVectorStore(uowFactory),
		reranker,
		natsPub,
		sysLogger,
		retrieve.Config{
			DefaultLimit:         cfg.Retrieval.DefaultLimit,
			FirstStageMultiplier: cfg.Retrieval.FirstStageMultiplier,
			FirstStageCap:        cfg.Retrieval.FirstStageCap,
		},
	)

	// 7. Services
	publisherService := service.NewPublisherService(pubSub, cfg.Ingestion.UploadTopic)
	chunkService := service.NewChunkService(
		uowFactory,
		embeddingProvider,
		retriever,
		publisherService,
		natsPub,
		cfg.Ingestion,
		sysLogger,
	)
	consumerService := service.NewConsumerService(pubSub, cfg.Ingestion.UploadTopic, chunkService, sysLogger)

	orchestrator := orchestrate.NewOrchestrator(
		llmProvider,
		retriever,
		chunkService,
		natsPub,
		sysLogger,
		orchestrate.Config{
			MaxSteps:         cfg.Chat.MaxSteps,
			RetrievalLimit:   cfg.Retrieval.DefaultLimit,
			RetrievalTimeout: cfg.Retrieval.Timeout,
		},
	)
	chatService := service.NewChatService(orchestrator, sysLogger)
	telemetryService := service.NewTelemetryService(natsSub, uowFactory, wsHub, sysLogger)

	// 8. Controllers
	return &Container{
		ChatController:      controller.NewChatController(chatService),
		ChunkController:     controller.NewChunkController(chunkService),
		EvalController:      controller.NewEvalController(chunkService),
		TelemetryController: controller.NewTelemetryController(telemetryService, wsHub),
		ConsumerService:     consumerService,
		TelemetryService:    telemetryService,
		WebSocketHub:        wsHub,
		Logger:              sysLogger,
	}
}
