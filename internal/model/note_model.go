package model

import "time"

// Note is the relational row used by the postgres driver.
type Note struct {
	Id        string    `gorm:"type:varchar(64);primaryKey"`
	UserId    string    `gorm:"type:varchar(128);not null;index:idx_notes_user_updated,priority:1"`
	Title     string    `gorm:"type:varchar(255);not null"`
	Content   string    `gorm:"type:text;not null"`
	Privacy   string    `gorm:"type:varchar(16);not null;default:'private';index:idx_notes_privacy_updated,priority:1"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime:false;index:idx_notes_user_updated,priority:2,sort:desc;index:idx_notes_privacy_updated,priority:2,sort:desc"`
}

func (Note) TableName() string {
	return "notes"
}

// NoteItem is the flat key-value record stored in the notes table, keyed by id.
// Timestamps are UTC ISO-8601 strings.
type NoteItem struct {
	Id        string `dynamodbav:"id"`
	UserId    string `dynamodbav:"user_id"`
	Title     string `dynamodbav:"title"`
	Content   string `dynamodbav:"content"`
	Privacy   string `dynamodbav:"privacy"`
	CreatedAt string `dynamodbav:"created_at"`
	UpdatedAt string `dynamodbav:"updated_at"`
}
