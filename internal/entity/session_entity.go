package entity

import "time"

// Session is a server-side login session referenced by the session cookie.
type Session struct {
	Id          string    `json:"id"`
	UserId      string    `json:"user_id"`
	IsAnonymous bool      `json:"is_anonymous"`
	Email       string    `json:"email,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	ExpiresAt   time.Time `json:"expires_at"`
}

func (s *Session) IsExpired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
