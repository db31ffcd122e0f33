package model

import "time"

type User struct {
	UserId      string    `gorm:"type:varchar(128);primaryKey"`
	DisplayName *string   `gorm:"type:varchar(255)"`
	Email       *string   `gorm:"type:varchar(255)"`
	IsAnonymous bool      `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null;autoUpdateTime:false"`
}

func (User) TableName() string {
	return "users"
}

// UserItem is the key-value record stored in the users table, keyed by user_id.
type UserItem struct {
	UserId      string  `dynamodbav:"user_id"`
	DisplayName *string `dynamodbav:"display_name,omitempty"`
	Email       *string `dynamodbav:"email,omitempty"`
	IsAnonymous bool    `dynamodbav:"is_anonymous"`
	CreatedAt   string  `dynamodbav:"created_at"`
	UpdatedAt   string  `dynamodbav:"updated_at"`
}
