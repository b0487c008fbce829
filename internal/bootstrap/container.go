package bootstrap

import (
	"context"
	"log"

	"ai-videostudio-be/internal/config"
	"ai-videostudio-be/internal/controller"
	"ai-videostudio-be/internal/handler"
	"ai-videostudio-be/internal/pkg/logger"
	"ai-videostudio-be/internal/pkg/mailer"
	"ai-videostudio-be/internal/repository/implementation"
	"ai-videostudio-be/internal/repository/memory"
	"ai-videostudio-be/internal/repository/unitofwork"
	"ai-videostudio-be/internal/service"
	"ai-videostudio-be/internal/websocket"
	"ai-videostudio-be/pkg/pricing"
	"ai-videostudio-be/pkg/provider/elevenlabs"
	"ai-videostudio-be/pkg/provider/fal"
	"ai-videostudio-be/pkg/provider/gemini"
	"ai-videostudio-be/pkg/provider/openai"
	"ai-videostudio-be/pkg/storage"

	pktNats "ai-videostudio-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController        controller.IAuthController
	OAuthController       controller.IOAuthController
	UserController        controller.IUserController
	ImageController       controller.IImageController
	VideoController       controller.IVideoController
	AudioController       controller.IAudioController
	ScriptController      controller.IScriptController
	LibraryController     controller.ILibraryController
	VoiceController       controller.IVoiceController
	IntegrationController controller.IIntegrationController
	ProjectController     controller.IProjectController
	BillingController     controller.IBillingController
	HealthController      controller.IHealthController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets & Notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
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
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. Provider adapters
	openaiClient := openai.NewClient(cfg.Providers.OpenAI)
	geminiClient := gemini.NewClient(cfg.Providers.Gemini, cfg.Providers.GeminiModel)
	falClient := fal.NewClient(cfg.Providers.Fal)
	speechClient := elevenlabs.NewClient(cfg.Providers.ElevenLabs, cfg.Providers.ElevenLabsTTSModel)

	store := storage.NewService(
		cfg.Storage.SupabaseURL,
		cfg.Storage.ServiceRoleKey,
		cfg.Storage.Bucket,
	)
	healthRepo := memory.NewHealthRepository()
	prices := pricing.NewTable(cfg.Pricing.Overrides)

	// 4. Services
	publisherService := service.NewPublisherService(pubSub, cfg.App.MediaTopicName)
	creditService := service.NewCreditService(uowFactory, prices, sysLogger)
	persistenceService := service.NewPersistenceService(uowFactory, store, publisherService, sysLogger)

	authService := service.NewAuthService(uowFactory, emailService, natsPub)
	oauthService := service.NewOAuthService(uowFactory)
	userService := service.NewUserService(uowFactory, store, natsPub)

	imageService := service.NewImageService(creditService, persistenceService, openaiClient, geminiClient, falClient, sysLogger)
	videoService := service.NewVideoService(uowFactory, creditService, persistenceService, falClient, speechClient, sysLogger)
	audioService := service.NewAudioService(uowFactory, creditService, persistenceService, openaiClient, speechClient, sysLogger)
	scriptService := service.NewScriptService(creditService, geminiClient, sysLogger)

	libraryService := service.NewLibraryService(uowFactory, store, sysLogger)
	voiceService := service.NewVoiceService(uowFactory, creditService, speechClient, store, sysLogger)
	integrationService := service.NewIntegrationService(uowFactory)
	projectService := service.NewProjectService(uowFactory)
	healthService := service.NewHealthService(store, healthRepo)

	billingService := service.NewBillingService(
		uowFactory,
		creditService,
		emailService,
		natsPub,
		cfg.Billing.LemonSqueezyWebhookSecret,
	)

	// 5. Notification System
	notifRepo := implementation.NewNotificationRepository(db)
	notifService := service.NewNotificationService(notifRepo, natsSub, wsHub, wsLogger) // Hub implements NotificationDelivery

	// Start Service (Worker)
	if natsSub != nil {
		go notifService.Start()
	}

	consumerService := service.NewConsumerService(
		pubSub,
		cfg.App.MediaTopicName,
		notifRepo,
		wsHub,
	)

	notifHandler := handler.NewNotificationHandler(notifService, natsPub, wsHub, wsLogger)

	// 6. Controllers
	return &Container{
		NotificationHandler: notifHandler,
		WebSocketHub:        wsHub,

		AuthController:        controller.NewAuthController(authService),
		OAuthController:       controller.NewOAuthController(oauthService),
		UserController:        controller.NewUserController(userService, creditService),
		ImageController:       controller.NewImageController(imageService),
		VideoController:       controller.NewVideoController(videoService),
		AudioController:       controller.NewAudioController(audioService),
		ScriptController:      controller.NewScriptController(scriptService),
		LibraryController:     controller.NewLibraryController(libraryService),
		VoiceController:       controller.NewVoiceController(voiceService),
		IntegrationController: controller.NewIntegrationController(integrationService),
		ProjectController:     controller.NewProjectController(projectService),
		BillingController:     controller.NewBillingController(billingService),
		HealthController:      controller.NewHealthController(healthService),

		ConsumerService: consumerService,
	}
}
