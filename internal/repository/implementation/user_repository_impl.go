package implementation

import (
	"context"
	"errors"

	"simple-notes-be/internal/entity"
	"simple-notes-be/internal/mapper"
	"simple-notes-be/internal/model"
	"simple-notes-be/internal/pkg/apperror"
	"simple-notes-be/internal/repository/contract"
	"simple-notes-be/internal/repository/specification"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.UserMapper
}

func NewUserRepository(db *gorm.DB) contract.UserRepository {
	return &UserRepositoryImpl{
		db:     db,
		mapper: mapper.NewUserMapper(),
	}
}

func (r *UserRepositoryImpl) Save(ctx context.Context, user *entity.User) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			UpdateAll: true,
		}).
		Create(r.mapper.ToModel(user)).Error
	if err != nil {
		return apperror.StorageUnavailable("failed to save user", err)
	}
	return nil
}

func (r *UserRepositoryImpl) FindByID(ctx context.Context, userId string) (*entity.User, error) {
	var m model.User
	query := specification.ApplyAll(r.db.WithContext(ctx), specification.ByUserID{UserID: userId})
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperror.StorageUnavailable("failed to get user", err)
	}
	return r.mapper.ToEntity(&m), nil
}
