package contract

import (
	"context"

	"simple-notes-be/internal/entity"
)

type UserRepository interface {
	// Save upserts the user by UserId.
	Save(ctx context.Context, user *entity.User) error
	// FindByID returns (nil, nil) when the user does not exist.
	FindByID(ctx context.Context, userId string) (*entity.User, error)
}
