package implementation_test

import (
	"context"
	"os"
	"testing"
	"time"

	"simple-notes-be/internal/entity"
	"simple-notes-be/internal/pkg/logger"
	"simple-notes-be/internal/repository/contract"
	"simple-notes-be/internal/repository/contracttest"
	"simple-notes-be/internal/repository/implementation"
	"simple-notes-be/pkg/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// openDB connects to the database in DB_CONNECTION_STRING, skipping the test
// when it is not set.
func openDB(t testing.TB) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("DB_CONNECTION_STRING not set")
	}

	db, err := database.NewGormDBFromDSN(dsn, true)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	require.NoError(t, db.Exec("TRUNCATE TABLE notes, users").Error)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func TestNoteRepositoryContract(t *testing.T) {
	contracttest.NoteRepository{
		Subject: func(tb testing.TB, now func() time.Time) contract.NoteRepository {
			return implementation.NewNoteRepository(openDB(tb), logger.NewNopLogger(), now)
		},
	}.Test(t)
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := implementation.NewUserRepository(openDB(t))

	missing, err := repo.FindByID(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, missing)

	user := entity.NewAnonymousUser("anon-1", time.Now())
	require.NoError(t, repo.Save(ctx, user))

	email := "a@example.com"
	user.Promote(&email, nil, time.Now().Add(time.Second))
	require.NoError(t, repo.Save(ctx, user))

	got, err := repo.FindByID(ctx, "anon-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.False(t, got.IsAnonymous)
	assert.Equal(t, email, *got.Email)
	assert.Nil(t, got.DisplayName)
}
