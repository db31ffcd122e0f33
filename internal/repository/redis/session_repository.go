package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"simple-notes-be/internal/entity"
	"simple-notes-be/internal/pkg/apperror"
	"simple-notes-be/internal/repository/contract"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:"

// SessionRepository stores sessions as JSON with a TTL matching ExpiresAt, so
// sessions survive restarts and are shared between instances.
type SessionRepository struct {
	rdb *redis.Client
	now func() time.Time
}

func NewSessionRepository(rdb *redis.Client) contract.SessionRepository {
	return &SessionRepository{rdb: rdb, now: time.Now}
}

// NewClient parses a redis:// URL, falling back to treating it as a plain
// host:port address.
func NewClient(url string) *redis.Client {
	opt, err := redis.ParseURL(url)
	if err != nil {
		opt = &redis.Options{Addr: url}
	}
	return redis.NewClient(opt)
}

func (r *SessionRepository) Save(ctx context.Context, session *entity.Session) error {
	ttl := session.ExpiresAt.Sub(r.now())
	if ttl <= 0 {
		return r.Delete(ctx, session.Id)
	}

	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	if err := r.rdb.Set(ctx, keyPrefix+session.Id, data, ttl).Err(); err != nil {
		return apperror.StorageUnavailable("failed to save session", err)
	}
	return nil
}

func (r *SessionRepository) Get(ctx context.Context, sessionId string) (*entity.Session, error) {
	data, err := r.rdb.Get(ctx, keyPrefix+sessionId).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, apperror.StorageUnavailable("failed to get session", err)
	}

	var session entity.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	if session.IsExpired(r.now()) {
		return nil, nil
	}
	return &session, nil
}

func (r *SessionRepository) Delete(ctx context.Context, sessionId string) error {
	if err := r.rdb.Del(ctx, keyPrefix+sessionId).Err(); err != nil {
		return apperror.StorageUnavailable("failed to delete session", err)
	}
	return nil
}
