package bootstrap

import (
	"log"
	"time"

	"ai-foodchat-be/internal/config"
	"ai-foodchat-be/internal/controller"
	"ai-foodchat-be/internal/pkg/logger"
	"ai-foodchat-be/internal/repository/memory"
	"ai-foodchat-be/internal/repository/unitofwork"
	"ai-foodchat-be/internal/service"
	"ai-foodchat-be/pkg/llm"
	embeddingfactory "ai-foodchat-be/pkg/embedding/factory"
	llmfactory "ai-foodchat-be/pkg/llm/factory"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController   controller.IChatController
	RecipeController controller.IRecipeController

	// Background Services (Exposed for main.go to run)
	IndexerService service.IIndexerService

	// System Logger
	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Providers
	embeddingKey := cfg.Keys.GoogleGemini
	if cfg.Ai.EmbeddingProvider == "jina" {
		embeddingKey = cfg.Keys.Jina
	}
	embeddingProvider, err := embeddingfactory.NewProvider(
		cfg.Ai.EmbeddingProvider,
		embeddingKey,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.OllamaModel,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize embedding provider: %v", err)
	}
	log.Printf("[INFO] Using embedding provider: %s", cfg.Ai.EmbeddingProvider)

	apiKey := cfg.Keys.OpenAI
	baseProvider, err := llmfactory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		apiKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM provider: %v", err)
	}
	log.Printf("[INFO] Using LLM provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	resilientCfg := llm.DefaultResilientConfig()
	resilientCfg.RatePerSecond = cfg.Ai.LLMRatePerSecond
	resilientCfg.Burst = cfg.Ai.LLMBurst
	llmProvider := llm.NewResilientProvider(baseProvider, resilientCfg)

	// 4. Session state
	sessionTTL := time.Duration(cfg.Chat.SessionTTLMinutes) * time.Minute
	sessionRepo := memory.NewSessionRepository(sessionTTL)

	// 5. Services
	publisherService := service.NewPublisherService(pubSub, cfg.Keys.IndexRecipeTopic)
	indexerService := service.NewIndexerService(
		pubSub,
		cfg.Keys.IndexRecipeTopic,
		uowFactory,
		embeddingProvider,
	)

	recipeService := service.NewRecipeService(uowFactory, publisherService)
	chatService := service.NewChatService(
		uowFactory,
		embeddingProvider,
		llmProvider,
		sessionRepo,
		cfg.Chat,
	)

	// 6. Controllers
	return &Container{
		ChatController:   controller.NewChatController(chatService),
		RecipeController: controller.NewRecipeController(recipeService),

		IndexerService: indexerService,
		Logger:         sysLogger,
	}
}
