package bootstrap

import (
	"log"

	"documentor-ai-be/internal/config"
	"documentor-ai-be/internal/controller"
	"documentor-ai-be/internal/pkg/logger"
	"documentor-ai-be/internal/repository/contract"
	"documentor-ai-be/internal/repository/implementation"
	"documentor-ai-be/internal/repository/memory"
	"documentor-ai-be/internal/service"
	"documentor-ai-be/pkg/embedding"
	"documentor-ai-be/pkg/events"
	"documentor-ai-be/pkg/llm/factory"
	"documentor-ai-be/pkg/rag/answer"
	"documentor-ai-be/pkg/rag/export"
	"documentor-ai-be/pkg/rag/ingest"
	"documentor-ai-be/pkg/rag/prompt"
	"documentor-ai-be/pkg/rag/retrieve"
	"documentor-ai-be/pkg/report"
	"documentor-ai-be/pkg/session"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	HealthController   controller.IHealthController
	DocumentController controller.IDocumentController
	ChatController     controller.IChatController
	ExportController   controller.IExportController

	// Background Services (Exposed for main.go to run)
	AuditService service.IAuditService

	// Session lifecycle (Exposed for the cleanup scheduler)
	Registry *session.Registry

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)
	lifecyclePublisher := events.NewWatermillPublisher(pubSub, cfg.Events.SessionLifecycleTopic)

	// 3. AI Providers
	var embeddingProvider embedding.Provider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaEmbeddingModel,
			cfg.Ai.EmbeddingDimension,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaEmbeddingModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.GoogleGemini,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Collection Store
	var collections contract.CollectionRepository
	if db != nil {
		collections = implementation.NewCollectionRepository(db)
		log.Printf("[INFO] Using Collection Store: POSTGRES (pgvector)")
	} else {
		collections = memory.NewCollectionRepository()
		log.Printf("[INFO] Using Collection Store: IN-MEMORY")
	}

	// 5. Session Registry & RAG Pipelines
	registry := session.NewRegistry(
		collections,
		embeddingProvider.Dimension(),
		cfg.Session.TTL,
		lifecyclePublisher,
		sysLogger,
	)

	prompts := prompt.NewBuilder(cfg.Retrieval.HistoryWindow)
	pipeline := ingest.NewPipeline(
		registry,
		collections,
		embeddingProvider,
		lifecyclePublisher,
		sysLogger,
		cfg.Ingest.ChunkSize,
		cfg.Ingest.ChunkOverlap,
		cfg.Ingest.BatchSize,
	)
	retriever := retrieve.NewRetriever(registry, collections, embeddingProvider, cfg.Retrieval.TopK)
	assembler := answer.NewAssembler(llmProvider, prompts)
	summarizer := export.NewSummarizer(llmProvider, prompts, sysLogger)
	reports := report.NewGenerator(cfg.Export.ReportsDir)

	// 6. Services
	documentService := service.NewDocumentService(pipeline, sysLogger)
	chatService := service.NewChatService(retriever, assembler)
	exportService := service.NewExportService(summarizer, reports, sysLogger)
	auditService := service.NewAuditService(pubSub, cfg.Events.SessionLifecycleTopic, sysLogger)

	// 7. Controllers
	return &Container{
		HealthController:   controller.NewHealthController(),
		DocumentController: controller.NewDocumentController(documentService),
		ChatController:     controller.NewChatController(chatService, sysLogger),
		ExportController:   controller.NewExportController(exportService),
		AuditService:       auditService,
		Registry:           registry,
		Logger:             sysLogger,
	}
}
