package bootstrap

import (
	"context"
	"log"
	"time"

	"event-discovery-be/internal/config"
	"event-discovery-be/internal/controller"
	"event-discovery-be/internal/pkg/logger"
	"event-discovery-be/internal/repository/implementation"
	"event-discovery-be/internal/service"
	"event-discovery-be/pkg/embedding"
	"event-discovery-be/pkg/ranking"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	SearchController controller.ISearchController
	EventController  controller.IEventController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// Shared infrastructure some commands reach into directly
	EmbeddingClient *embedding.Client
	Logger          logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	eventRepository := implementation.NewEventRepository(db)
	placeRepository := implementation.NewPlaceRepository(db)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Embedding stack: remote service first, local Ollama as fallback
	localProvider := embedding.NewOllamaProvider(
		cfg.Embedding.OllamaBaseURL,
		cfg.Embedding.OllamaModel,
	)
	embeddingClient := embedding.NewClient(embedding.Config{
		ServiceURL:      cfg.Embedding.ServiceURL,
		FallbackToLocal: cfg.Embedding.FallbackToLocal,
		Timeout:         time.Duration(cfg.Embedding.TimeoutSeconds) * time.Second,
		CacheCapacity:   cfg.Embedding.CacheCapacity,
	}, localProvider, sysLogger)
	if cfg.Embedding.ServiceURL != "" {
		log.Printf("[INFO] Using Embedding Service: %s (fallback=%v)", cfg.Embedding.ServiceURL, cfg.Embedding.FallbackToLocal)
	} else {
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Embedding.OllamaModel)
	}
	embeddingClient.Warmup(context.Background())

	// 4. Ranking engine
	weights := ranking.DefaultWeights()
	if len(cfg.Search.WeightOverrides) > 0 {
		weights = weights.ApplyOverrides(cfg.Search.WeightOverrides)
	}
	engine := ranking.NewEngine(weights, ranking.Tiers{
		MaxRecommended: cfg.Search.MaxRecommended,
		MaxAdditional:  cfg.Search.MaxAdditional,
		MaxContext:     cfg.Search.MaxContext,
	}, sysLogger)

	// 5. Services
	publisherService := service.NewPublisherService(cfg.Keys.RefreshEventTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Keys.RefreshEventTopic,
		eventRepository,
		embeddingClient,
	)

	locationService := service.NewLocationService(placeRepository, cfg.Search.DefaultState, sysLogger)
	retrievalService := service.NewRetrievalService(
		eventRepository,
		locationService,
		embeddingClient,
		engine,
		cfg.Search.DefaultRadius,
		cfg.Search.TimeWindowDays,
		sysLogger,
	)
	eventService := service.NewEventService(eventRepository, publisherService, sysLogger)

	// 6. Controllers
	return &Container{
		SearchController: controller.NewSearchController(retrievalService, embeddingClient, eventRepository),
		EventController:  controller.NewEventController(eventService),

		ConsumerService: consumerService,

		EmbeddingClient: embeddingClient,
		Logger:          sysLogger,
	}
}
