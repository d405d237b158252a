package bootstrap

import (
	"log"

	"notelite-be/internal/config"
	"notelite-be/internal/controller"
	"notelite-be/internal/pkg/logger"
	"notelite-be/internal/pkg/serverutils"
	"notelite-be/internal/repository/memory"
	"notelite-be/internal/repository/unitofwork"
	"notelite-be/internal/service"
	"notelite-be/pkg/events"
	"notelite-be/pkg/llm/factory"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const noteEventsTopic = "note.events"

type Container struct {
	// Controllers
	AuthController      controller.IAuthController
	NoteController      controller.INoteController
	SummarizeController controller.ISummarizeController

	// Route guard for authenticated groups
	AuthGuard fiber.Handler

	// Background services (exposed for main.go to run)
	ActivityService service.IActivityService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)
	eventPublisher := events.NewPublisher(pubSub, noteEventsTopic)

	// 3. LLM provider per config
	llmProvider, err := factory.NewLLMProvider(cfg.Ai)
	if err != nil {
		log.Panicf("Unable to initialize LLM provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Services
	noteCache := memory.NewNoteListCache()
	authService := service.NewAuthService(uowFactory, cfg.Auth, eventPublisher, sysLogger)
	noteService := service.NewNoteService(uowFactory, noteCache, eventPublisher, sysLogger)
	summarizeService := service.NewSummarizeService(llmProvider, cfg.Ai.LLMModel, sysLogger)
	activityService := service.NewActivityService(pubSub, noteEventsTopic, sysLogger)

	// 5. Controllers
	return &Container{
		AuthController:      controller.NewAuthController(authService),
		NoteController:      controller.NewNoteController(noteService),
		SummarizeController: controller.NewSummarizeController(summarizeService),
		AuthGuard:           serverutils.JwtProtected(cfg.Auth.JwtSecret),
		ActivityService:     activityService,
		Logger:              sysLogger,
	}
}
