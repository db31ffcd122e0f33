package memory

import (
	"context"
	"time"

	"simple-notes-be/internal/entity"
	"simple-notes-be/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

type SessionRepository struct {
	cache *cache.Cache
	now   func() time.Time
}

// NewSessionRepository keeps sessions in process memory. Entries expire at the
// session's own ExpiresAt; the cache purges expired entries every 10 minutes.
func NewSessionRepository(now func() time.Time) contract.SessionRepository {
	if now == nil {
		now = time.Now
	}
	return &SessionRepository{
		cache: cache.New(cache.NoExpiration, 10*time.Minute),
		now:   now,
	}
}

func (r *SessionRepository) Save(_ context.Context, session *entity.Session) error {
	ttl := session.ExpiresAt.Sub(r.now())
	if ttl <= 0 {
		r.cache.Delete(session.Id)
		return nil
	}
	copied := *session
	r.cache.Set(session.Id, &copied, ttl)
	return nil
}

func (r *SessionRepository) Get(_ context.Context, sessionId string) (*entity.Session, error) {
	x, found := r.cache.Get(sessionId)
	if !found {
		return nil, nil
	}
	session := *x.(*entity.Session)
	if session.IsExpired(r.now()) {
		r.cache.Delete(sessionId)
		return nil, nil
	}
	return &session, nil
}

func (r *SessionRepository) Delete(_ context.Context, sessionId string) error {
	r.cache.Delete(sessionId)
	return nil
}
