package specification

import "gorm.io/gorm"

type ByUserID struct {
	UserID string
}

func (s ByUserID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("users.user_id = ?", s.UserID)
}
