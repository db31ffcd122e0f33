package entity

import "time"

type User struct {
	UserId      string
	DisplayName *string
	Email       *string
	IsAnonymous bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func NewAnonymousUser(userId string, now time.Time) *User {
	ts := Timestamp(now)
	return &User{
		UserId:      userId,
		IsAnonymous: true,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
}

func NewRegisteredUser(userId string, email, displayName *string, now time.Time) *User {
	ts := Timestamp(now)
	return &User{
		UserId:      userId,
		DisplayName: displayName,
		Email:       email,
		IsAnonymous: false,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
}

// Promote turns an anonymous account into a registered one. The UserId is
// kept, so every note owned by the account stays with it.
func (u *User) Promote(email, displayName *string, now time.Time) {
	u.IsAnonymous = false
	if email != nil {
		u.Email = email
	}
	if displayName != nil {
		u.DisplayName = displayName
	}
	u.Touch(now)
}

func (u *User) Touch(now time.Time) {
	u.UpdatedAt = nextTimestamp(now, u.CreatedAt, u.UpdatedAt)
}

// Name returns the public author name for the account.
func (u *User) Name() string {
	if u == nil || u.IsAnonymous || u.DisplayName == nil || *u.DisplayName == "" {
		return "Anonymous"
	}
	return *u.DisplayName
}
