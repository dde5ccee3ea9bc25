package bootstrap

import (
	"log"

	"rams-generator-be/internal/config"
	"rams-generator-be/internal/controller"
	"rams-generator-be/internal/pkg/logger"
	"rams-generator-be/internal/repository/implementation"
	"rams-generator-be/internal/repository/memory"
	"rams-generator-be/internal/service"
	"rams-generator-be/internal/template"
	"rams-generator-be/pkg/llm/factory"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	RamsController      controller.IRamsController
	InterviewController controller.IInterviewController
	ArchiveController   controller.IArchiveController // nil without a database

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Template Store
	templateStore, err := template.NewStore(cfg.Rams.TemplatePath)
	if err != nil {
		log.Fatalf("[FATAL] Failed to load RAMS template: %v", err)
	}

	// 3. LLM Provider
	llmProvider, err := factory.NewProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		providerBaseURL(cfg),
		cfg.Ai.OpenAIAPIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. In-Memory Stores
	sessionRepo := memory.NewSessionRepository()
	workdocRepo := memory.NewWorkdocRepository()

	// 5. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)
	publisherService := service.NewPublisherService(cfg.Rams.GeneratedTopic, pubSub)

	// Archive consumer only runs when a database is configured; generation
	// itself never depends on the archive.
	var consumerService service.IConsumerService
	var archiveController controller.IArchiveController
	if db != nil {
		recordRepo := implementation.NewDocumentRecordRepository(db)
		consumerService = service.NewConsumerService(pubSub, cfg.Rams.GeneratedTopic, recordRepo, sysLogger)
		archiveController = controller.NewArchiveController(recordRepo)
	} else {
		log.Printf("[WARN] No database configured, generated documents will not be archived")
	}

	// 6. Services
	ramsService := service.NewRamsService(
		templateStore,
		workdocRepo,
		llmProvider,
		publisherService,
		sysLogger,
		cfg.Rams.SystemPromptPath,
		cfg.Ai.Temperature,
		cfg.Ai.MaxTokens,
	)
	interviewService := service.NewInterviewService(
		sessionRepo,
		llmProvider,
		ramsService,
		sysLogger,
	)

	// 7. Controllers
	return &Container{
		RamsController:      controller.NewRamsController(ramsService),
		InterviewController: controller.NewInterviewController(interviewService),
		ArchiveController:   archiveController,

		ConsumerService: consumerService,
		Logger:          sysLogger,
	}
}

func providerBaseURL(cfg *config.Config) string {
	if cfg.Ai.LLMProvider == "ollama" {
		return cfg.Ai.OllamaBaseURL
	}
	return cfg.Ai.OpenAIBaseURL
}
