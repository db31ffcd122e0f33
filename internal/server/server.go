package server

import (
	"context"
	"strings"

	"simple-notes-be/internal/bootstrap"
	"simple-notes-be/internal/config"
	"simple-notes-be/internal/pkg/logger"
	"simple-notes-be/internal/pkg/serverutils"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
	logger    logger.ILogger
}

func New(cfg *config.Config, container *bootstrap.Container, log logger.ILogger) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit:             1 * 1024 * 1024,
		ErrorHandler:          serverutils.ErrorHandler(log),
		DisableStartupMessage: cfg.IsProduction(),
	})

	// Middleware. Metrics sits outside recover so panics are counted as 500s.
	if cfg.Telemetry.MetricsEnabled {
		app.Use(container.Metrics.Middleware())
	}
	app.Use(recover.New())
	if cfg.Telemetry.OtelEnabled {
		app.Use(otelfiber.Middleware())
	}
	if cfg.IsDevelopment() {
		app.Use(cors.New(cors.Config{
			AllowOrigins:     strings.Join(cfg.App.AllowedOrigins, ","),
			AllowCredentials: true,
			AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
			AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		}))
	}

	// Routes
	app.Get("/health", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{"status": "ok"})
	})
	if cfg.Telemetry.MetricsEnabled {
		app.Get("/metrics", container.Metrics.Handler())
	}
	registerRoutes(app, container)

	app.Use(func(ctx *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "route not found")
	})

	return &Server{
		app:       app,
		cfg:       cfg,
		container: container,
		logger:    log,
	}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	s.logger.Info("Server", "Server is running", map[string]interface{}{"port": s.cfg.App.Port})
	return s.app.Listen(":" + s.cfg.App.Port)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func registerRoutes(app *fiber.App, c *bootstrap.Container) {
	c.PublicNoteController.RegisterRoutes(app)
	c.NoteController.RegisterRoutes(app)
	c.UserController.RegisterRoutes(app)
	c.AuthController.RegisterRoutes(app)
}
