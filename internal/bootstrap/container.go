package bootstrap

import (
	"context"
	stdlog "log"
	"os"
	"time"

	"insightsmith-be/internal/config"
	"insightsmith-be/internal/constant"
	"insightsmith-be/internal/controller"
	"insightsmith-be/internal/handler"
	"insightsmith-be/internal/pkg/logger"
	"insightsmith-be/internal/repository/archive"
	"insightsmith-be/internal/repository/memory"
	"insightsmith-be/internal/service"
	"insightsmith-be/internal/websocket"
	"insightsmith-be/pkg/composer"
	"insightsmith-be/pkg/detector"
	"insightsmith-be/pkg/llm/factory"
	"insightsmith-be/pkg/search"
	"insightsmith-be/pkg/voice"
	voiceOpenai "insightsmith-be/pkg/voice/openai"

	pktNats "insightsmith-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
)

type Container struct {
	// Controllers
	ChatController  controller.IChatController
	VoiceController controller.IVoiceController

	// Background Services (Exposed for main.go to run)
	ChatService     service.IChatService
	ConsumerService service.IConsumerService

	// WebSockets & Streaming
	StreamHandler *handler.StreamHandler
	WebSocketHub  *websocket.Hub

	// Closed on shutdown
	NatsPublisher *pktNats.Publisher
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// Initialize LLM Provider based on Config
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.OpenAIBaseURL,
		cfg.Keys.OpenAI,
	)
	if err != nil {
		stdlog.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	if llmProvider != nil {
		stdlog.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)
	} else {
		stdlog.Printf("[INFO] Using rule-based response templates (no LLM provider)")
	}

	// Web search is optional; without it Step B is skipped entirely.
	var searchProvider search.Provider
	if cfg.Search.BaseURL != "" {
		searchProvider = search.NewWebSearchClient(cfg.Search.BaseURL, cfg.Keys.WebSearch)
		stdlog.Printf("[INFO] Web search enabled via %s", cfg.Search.BaseURL)
	}

	// Voice is optional too; the voice endpoints answer 503 without a key.
	var voiceProvider voice.Provider
	if cfg.Keys.OpenAI != "" {
		voiceProvider = voiceOpenai.NewOpenAIVoiceProvider(
			cfg.Keys.OpenAI,
			cfg.Ai.OpenAIBaseURL,
			cfg.Voice.TranscribeModel,
			cfg.Voice.SpeechModel,
		)
	}

	// Initialize In-Memory Session Storage
	sessionRepo := memory.NewSessionRepository()

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		stdlog.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		stdlog.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		stdlog.Printf("[WARN] Failed to connect to Redis: %v", err)
		rdb = nil
	}

	// Snapshots outlive the in-memory sweep so a swept conversation can
	// still be inspected out of band.
	sessionArchive := archive.NewSessionArchive(rdb, 24*time.Hour, sysLogger)

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/stream.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. Services
	cmp := composer.NewComposer(
		llmProvider,
		searchProvider,
		constant.SearchTriggers,
		cfg.Search.MaxResults,
		stdlog.New(os.Stdout, "", stdlog.LstdFlags),
	)
	det := detector.New(
		constant.ModeCycle,
		constant.ModeDetectionPhrases,
		constant.HelpPhrases,
		constant.ModeSwitchPhrases,
		constant.ModeGuide,
	)

	publisherService := service.NewPublisherService(cfg.App.EventTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.App.EventTopic,
		wsHub,
		natsPub,
		logger.NewIsolatedLogger("logs/chat_events.log"),
	)

	chatService := service.NewChatService(
		sessionRepo,
		sessionArchive,
		cmp,
		det,
		publisherService,
		cfg.Session.StaleAfter,
		sysLogger,
	)
	voiceService := service.NewVoiceService(
		voiceProvider,
		chatService,
		cfg.Voice.DefaultLanguage,
		cfg.Voice.DefaultVoice,
		sysLogger,
	)

	streamHandler := handler.NewStreamHandler(sessionRepo, wsHub, wsLogger)

	// 4. Controllers
	return &Container{
		ChatController:  controller.NewChatController(chatService),
		VoiceController: controller.NewVoiceController(voiceService),

		ChatService:     chatService,
		ConsumerService: consumerService,

		StreamHandler: streamHandler,
		WebSocketHub:  wsHub,

		NatsPublisher: natsPub,
	}
}
