package specification

import (
	"testing"

	"simple-notes-be/internal/entity"
	"simple-notes-be/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=notes dbname=notes sslmode=disable",
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	require.NoError(t, err)
	return db
}

func TestNoteSpecificationsSQL(t *testing.T) {
	db := dryRunDB(t)

	tests := []struct {
		name  string
		specs []Specification
		want  string
	}{
		{
			name:  "by id",
			specs: []Specification{ByID{ID: "n1"}},
			want:  `SELECT * FROM "notes" WHERE id = 'n1'`,
		},
		{
			name: "public feed window",
			specs: append(
				[]Specification{ByPrivacy{Privacy: entity.PrivacyPublic}},
				append(NewestFirst(), Pagination{Limit: 20, Offset: 40})...,
			),
			want: `SELECT * FROM "notes" WHERE notes.privacy = 'public' ORDER BY updated_at DESC,id ASC LIMIT 20 OFFSET 40`,
		},
		{
			name:  "owner",
			specs: append([]Specification{NoteOwnedByUser{UserID: "u1"}}, NewestFirst()...),
			want:  `SELECT * FROM "notes" WHERE notes.user_id = 'u1' ORDER BY updated_at DESC,id ASC`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
				var notes []*model.Note
				return ApplyAll(tx.Model(&model.Note{}), tt.specs...).Find(&notes)
			})
			assert.Equal(t, tt.want, sql)
		})
	}
}

func TestUserSpecificationSQL(t *testing.T) {
	db := dryRunDB(t)

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var user model.User
		return ApplyAll(tx, ByUserID{UserID: "u1"}).Limit(1).Find(&user)
	})
	assert.Equal(t, `SELECT * FROM "users" WHERE users.user_id = 'u1' LIMIT 1`, sql)
}
