package bootstrap

import (
	"context"
	"fmt"
	"time"

	"simple-notes-be/internal/config"
	"simple-notes-be/internal/pkg/identity"
	"simple-notes-be/internal/pkg/logger"
	"simple-notes-be/internal/repository/contract"
	"simple-notes-be/internal/repository/dynamo"
	"simple-notes-be/internal/repository/implementation"
	"simple-notes-be/internal/repository/memory"
	redisrepo "simple-notes-be/internal/repository/redis"
	"simple-notes-be/internal/service"
	"simple-notes-be/pkg/database"
	pktNats "simple-notes-be/pkg/nats"
)

// Infrastructure holds the adapters the services run on. NewInfrastructure
// picks them from config; tests fill the struct directly.
type Infrastructure struct {
	NoteRepo    contract.NoteRepository
	UserRepo    contract.UserRepository
	SessionRepo contract.SessionRepository
	Verifier    identity.TokenVerifier
	// Relay is nil when no NATS server is configured.
	Relay service.EventRelay

	closers []func() error
}

// Close releases connections opened by NewInfrastructure, newest first.
func (i *Infrastructure) Close() error {
	var firstErr error
	for n := len(i.closers) - 1; n >= 0; n-- {
		if err := i.closers[n](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	i.closers = nil
	return firstErr
}

func NewInfrastructure(ctx context.Context, cfg *config.Config, log logger.ILogger) (*Infrastructure, error) {
	infra := &Infrastructure{
		Verifier: identity.NewHMACVerifier(cfg.Auth.TokenSecret, cfg.Auth.FirebaseProjectID),
	}
	if cfg.Auth.TokenSecret == "" {
		log.Warn("Bootstrap", "AUTH_TOKEN_SECRET is empty, every identity token will be rejected", nil)
	}

	if err := infra.openStorage(ctx, cfg, log); err != nil {
		infra.Close()
		return nil, err
	}
	if err := infra.openSessions(ctx, cfg, log); err != nil {
		infra.Close()
		return nil, err
	}
	infra.openRelay(cfg, log)

	return infra, nil
}

func (i *Infrastructure) openStorage(ctx context.Context, cfg *config.Config, log logger.ILogger) error {
	switch cfg.Storage.Driver {
	case config.StorageDynamoDB:
		client, err := database.NewDynamoClient(ctx, cfg.Dynamo)
		if err != nil {
			return err
		}
		if cfg.Dynamo.CreateTables {
			if err := database.EnsureTables(ctx, client, cfg.Dynamo, log); err != nil {
				return err
			}
		}
		i.NoteRepo = dynamo.NewNoteRepository(client, dynamo.NoteTableConfig{
			Table:       cfg.Dynamo.NotesTable,
			UserIndex:   cfg.Dynamo.UserIndex,
			PublicIndex: cfg.Dynamo.PublicIndex,
		}, log)
		i.UserRepo = dynamo.NewUserRepository(client, cfg.Dynamo.UsersTable, log)
		log.Info("Bootstrap", "Using DynamoDB storage", map[string]interface{}{
			"notes_table":  cfg.Dynamo.NotesTable,
			"users_table":  cfg.Dynamo.UsersTable,
			"public_index": cfg.Dynamo.PublicIndex,
			"user_index":   cfg.Dynamo.UserIndex,
		})

	case config.StoragePostgres:
		db, err := database.NewGormDBFromDSN(cfg.Database.Connection, cfg.IsProduction())
		if err != nil {
			return err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		i.closers = append(i.closers, sqlDB.Close)
		i.NoteRepo = implementation.NewNoteRepository(db, log, time.Now)
		i.UserRepo = implementation.NewUserRepository(db)
		log.Info("Bootstrap", "Using Postgres storage", nil)

	default:
		return fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
	return nil
}

func (i *Infrastructure) openSessions(ctx context.Context, cfg *config.Config, log logger.ILogger) error {
	switch cfg.Auth.SessionStore {
	case config.SessionStoreMemory:
		i.SessionRepo = memory.NewSessionRepository(time.Now)

	case config.SessionStoreRedis:
		rdb := redisrepo.NewClient(cfg.Auth.RedisURL)
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn("Bootstrap", "Failed to connect to Redis", map[string]interface{}{"error": err.Error()})
		}
		i.closers = append(i.closers, rdb.Close)
		i.SessionRepo = redisrepo.NewSessionRepository(rdb)

	default:
		return fmt.Errorf("unknown session store %q", cfg.Auth.SessionStore)
	}
	return nil
}

func (i *Infrastructure) openRelay(cfg *config.Config, log logger.ILogger) {
	if cfg.Events.NatsURL == "" {
		return
	}

	natsPub, err := pktNats.NewPublisher(cfg.Events.NatsURL, log)
	if err != nil {
		log.Warn("Bootstrap", "Failed to connect to NATS, events stay in process", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	i.closers = append(i.closers, func() error {
		natsPub.Close()
		return nil
	})
	i.Relay = natsPub
}
