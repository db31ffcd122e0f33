package dto

import "time"

type UserProfileResponse struct {
	UserId      string    `json:"user_id"`
	DisplayName *string   `json:"display_name"`
	Email       *string   `json:"email"`
	IsAnonymous bool      `json:"is_anonymous"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type UpdateProfileRequest struct {
	DisplayName *string `json:"display_name" validate:"omitempty,notblank,max=100"`
	Email       *string `json:"email" validate:"omitempty,email"`
}

func (r UpdateProfileRequest) IsEmpty() bool {
	return r.DisplayName == nil && r.Email == nil
}
