package dto

import "time"

type AnonymousAuthRequest struct {
	IdToken string `json:"id_token" validate:"required"`
}

type LoginRequest struct {
	IdToken string `json:"id_token" validate:"required"`
}

type SignupRequest struct {
	IdToken     string  `json:"id_token" validate:"required"`
	DisplayName *string `json:"display_name" validate:"omitempty,notblank,max=100"`
}

type PromoteRequest struct {
	IdToken     string  `json:"id_token" validate:"required"`
	DisplayName *string `json:"display_name" validate:"omitempty,notblank,max=100"`
}

type AuthResponse struct {
	User      UserProfileResponse `json:"user"`
	ExpiresAt *time.Time          `json:"expires_at,omitempty"`
}
