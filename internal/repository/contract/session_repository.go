package contract

import (
	"context"

	"simple-notes-be/internal/entity"
)

type SessionRepository interface {
	Save(ctx context.Context, session *entity.Session) error
	// Get returns (nil, nil) for unknown or expired sessions.
	Get(ctx context.Context, id string) (*entity.Session, error)
	Delete(ctx context.Context, id string) error
}
