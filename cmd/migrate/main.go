package main

import (
	"context"
	"os"

	"simple-notes-be/internal/config"
	"simple-notes-be/internal/pkg/logger"
	"simple-notes-be/pkg/database"
)

// migrate prepares the configured storage: it creates the DynamoDB tables and
// indexes, or runs the Postgres schema migration.
func main() {
	cfg := config.Load()
	log := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.LogLevel, cfg.IsProduction())
	defer log.Sync()

	if err := run(context.Background(), cfg, log); err != nil {
		log.Error("Migrate", "Migration failed", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}
	log.Info("Migrate", "Migration completed", map[string]interface{}{"driver": cfg.Storage.Driver})
}

func run(ctx context.Context, cfg *config.Config, log logger.ILogger) error {
	if cfg.Storage.Driver == config.StoragePostgres {
		db, err := database.NewGormDBFromDSN(cfg.Database.Connection, cfg.IsProduction())
		if err != nil {
			return err
		}
		return database.AutoMigrate(db)
	}

	client, err := database.NewDynamoClient(ctx, cfg.Dynamo)
	if err != nil {
		return err
	}
	return database.EnsureTables(ctx, client, cfg.Dynamo, log)
}
