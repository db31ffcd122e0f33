package memory

import (
	"context"
	"testing"
	"time"

	"simple-notes-be/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRepository(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	repo := NewSessionRepository(func() time.Time { return now })

	session := &entity.Session{
		Id:        "s1",
		UserId:    "u1",
		CreatedAt: now,
		ExpiresAt: now.Add(time.Hour),
	}
	require.NoError(t, repo.Save(ctx, session))

	got, err := repo.Get(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "u1", got.UserId)

	got.UserId = "mutated"
	again, _ := repo.Get(ctx, "s1")
	assert.Equal(t, "u1", again.UserId, "callers must not share the stored value")

	missing, err := repo.Get(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, repo.Delete(ctx, "s1"))
	require.NoError(t, repo.Delete(ctx, "s1"))
	gone, err := repo.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestSessionRepositoryExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	repo := NewSessionRepository(clock)

	require.NoError(t, repo.Save(ctx, &entity.Session{Id: "s1", ExpiresAt: now.Add(time.Minute)}))
	require.NoError(t, repo.Save(ctx, &entity.Session{Id: "stale", ExpiresAt: now.Add(-time.Minute)}))

	stale, err := repo.Get(ctx, "stale")
	require.NoError(t, err)
	assert.Nil(t, stale)

	now = now.Add(2 * time.Minute)
	expired, err := repo.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, expired)
}
