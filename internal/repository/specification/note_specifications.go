package specification

import (
	"simple-notes-be/internal/entity"

	"gorm.io/gorm"
)

type NoteOwnedByUser struct {
	UserID string
}

func (s NoteOwnedByUser) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("notes.user_id = ?", s.UserID)
}

type ByPrivacy struct {
	Privacy entity.Privacy
}

func (s ByPrivacy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("notes.privacy = ?", string(s.Privacy))
}
