package bootstrap

import (
	"simple-notes-be/internal/config"
	"simple-notes-be/internal/controller"
	"simple-notes-be/internal/pkg/logger"
	"simple-notes-be/internal/pkg/metrics"
	"simple-notes-be/internal/pkg/serverutils"
	"simple-notes-be/internal/service"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type Container struct {
	// Controllers
	PublicNoteController controller.IPublicNoteController
	NoteController       controller.INoteController
	UserController       controller.IUserController
	AuthController       controller.IAuthController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Metrics *metrics.Metrics

	pubSub *gochannel.GoChannel
}

func NewContainer(cfg *config.Config, infra *Infrastructure, log logger.ILogger) *Container {
	// 1. Event Bus
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermill.NopLogger{},
	)

	// 2. Services
	publisherService := service.NewPublisherService(cfg.Events.Topic, pubSub, log)
	consumerService := service.NewConsumerService(pubSub, cfg.Events.Topic, infra.Relay, log)

	authService := service.NewAuthService(
		infra.UserRepo,
		infra.SessionRepo,
		infra.Verifier,
		publisherService,
		cfg.Auth.SessionTTL,
		log,
	)
	noteService := service.NewNoteService(infra.NoteRepo, infra.UserRepo, publisherService, log)
	userService := service.NewUserService(infra.UserRepo, authService)

	// 3. Controllers
	auth := serverutils.AuthMiddleware(authService, cfg.Auth.SessionCookieName)
	cookie := controller.CookieConfig{
		Name:   cfg.Auth.SessionCookieName,
		Secure: cfg.IsProduction(),
	}

	return &Container{
		PublicNoteController: controller.NewPublicNoteController(noteService),
		NoteController:       controller.NewNoteController(noteService, authService, auth),
		UserController:       controller.NewUserController(userService, auth),
		AuthController:       controller.NewAuthController(authService, auth, cookie),
		ConsumerService:      consumerService,
		Metrics:              metrics.NewMetrics(),
		pubSub:               pubSub,
	}
}

// Close stops the in-process event bus.
func (c *Container) Close() error {
	return c.pubSub.Close()
}
