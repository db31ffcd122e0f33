// FILE: internal/service/user_service.go
package service

import (
	"context"
	"strings"
	"time"

	"simple-notes-be/internal/dto"
	"simple-notes-be/internal/entity"
	"simple-notes-be/internal/pkg/apperror"
	"simple-notes-be/internal/pkg/identity"
	"simple-notes-be/internal/repository/contract"
)

type IUserService interface {
	GetProfile(ctx context.Context, id *identity.Identity) (*entity.User, error)
	UpdateProfile(ctx context.Context, id *identity.Identity, req *dto.UpdateProfileRequest) (*entity.User, error)
}

type userService struct {
	userRepo    contract.UserRepository
	authService IAuthService
	now         func() time.Time
}

func NewUserService(userRepo contract.UserRepository, authService IAuthService) IUserService {
	return &userService{
		userRepo:    userRepo,
		authService: authService,
		now:         time.Now,
	}
}

func (s *userService) GetProfile(ctx context.Context, id *identity.Identity) (*entity.User, error) {
	return s.authService.EnsureUser(ctx, id)
}

func (s *userService) UpdateProfile(ctx context.Context, id *identity.Identity, req *dto.UpdateProfileRequest) (*entity.User, error) {
	if id.IsAnonymous {
		return nil, apperror.Authorization("a registered account is required")
	}
	if req.IsEmpty() {
		return nil, apperror.Validation("at least one field must be provided")
	}

	user, err := s.authService.EnsureUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.DisplayName != nil {
		name := strings.TrimSpace(*req.DisplayName)
		user.DisplayName = &name
	}
	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		user.Email = &email
	}
	user.Touch(s.now())

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
