package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"simple-notes-be/internal/bootstrap"
	"simple-notes-be/internal/config"
	"simple-notes-be/internal/pkg/logger"
	"simple-notes-be/internal/server"
	"simple-notes-be/internal/tracer"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()
	log := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.LogLevel, cfg.IsProduction())
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Tracing (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer(ctx, cfg.Telemetry, log)

	// 3. Storage, sessions and event relay
	infra, err := bootstrap.NewInfrastructure(ctx, cfg, log)
	if err != nil {
		log.Error("Main", "Failed to initialize infrastructure", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}

	// 4. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(cfg, infra, log)

	// 5. Start Background Services
	if err := container.ConsumerService.Consume(ctx); err != nil {
		log.Error("Main", "Failed to start event consumer", map[string]interface{}{"error": err.Error()})
	}

	// 6. Run Server
	srv := server.New(cfg, container, log)
	go func() {
		if err := srv.Run(); err != nil {
			log.Error("Main", "Server stopped", map[string]interface{}{"error": err.Error()})
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("Main", "Shutting down", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Main", "Server shutdown failed", map[string]interface{}{"error": err.Error()})
	}
	if err := container.Close(); err != nil {
		log.Warn("Main", "Event bus close failed", map[string]interface{}{"error": err.Error()})
	}
	if err := infra.Close(); err != nil {
		log.Warn("Main", "Infrastructure close failed", map[string]interface{}{"error": err.Error()})
	}
	if err := shutdownTracer(shutdownCtx); err != nil {
		log.Warn("Main", "Tracer shutdown failed", map[string]interface{}{"error": err.Error()})
	}
}
