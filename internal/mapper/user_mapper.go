package mapper

import (
	"fmt"

	"simple-notes-be/internal/dto"
	"simple-notes-be/internal/entity"
	"simple-notes-be/internal/model"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToEntity(u *model.User) *entity.User {
	if u == nil {
		return nil
	}
	return &entity.User{
		UserId:      u.UserId,
		DisplayName: u.DisplayName,
		Email:       u.Email,
		IsAnonymous: u.IsAnonymous,
		CreatedAt:   entity.Timestamp(u.CreatedAt),
		UpdatedAt:   entity.Timestamp(u.UpdatedAt),
	}
}

func (m *UserMapper) ToModel(u *entity.User) *model.User {
	if u == nil {
		return nil
	}
	return &model.User{
		UserId:      u.UserId,
		DisplayName: u.DisplayName,
		Email:       u.Email,
		IsAnonymous: u.IsAnonymous,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func (m *UserMapper) ToItem(u *entity.User) *model.UserItem {
	return &model.UserItem{
		UserId:      u.UserId,
		DisplayName: u.DisplayName,
		Email:       u.Email,
		IsAnonymous: u.IsAnonymous,
		CreatedAt:   FormatTimestamp(u.CreatedAt),
		UpdatedAt:   FormatTimestamp(u.UpdatedAt),
	}
}

func (m *UserMapper) FromItem(item *model.UserItem) (*entity.User, error) {
	if item.UserId == "" {
		return nil, fmt.Errorf("user item has no user_id")
	}
	createdAt, err := ParseTimestamp(item.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("user %s created_at: %w", item.UserId, err)
	}
	updatedAt, err := ParseTimestamp(item.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("user %s updated_at: %w", item.UserId, err)
	}
	return &entity.User{
		UserId:      item.UserId,
		DisplayName: item.DisplayName,
		Email:       item.Email,
		IsAnonymous: item.IsAnonymous,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}, nil
}

func (m *UserMapper) ToProfileResponse(u *entity.User) dto.UserProfileResponse {
	return dto.UserProfileResponse{
		UserId:      u.UserId,
		DisplayName: u.DisplayName,
		Email:       u.Email,
		IsAnonymous: u.IsAnonymous,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
