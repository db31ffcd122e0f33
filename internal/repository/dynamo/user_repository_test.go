package dynamo_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"simple-notes-be/internal/entity"
	"simple-notes-be/internal/pkg/apperror"
	"simple-notes-be/internal/pkg/logger"
	"simple-notes-be/internal/repository/dynamo"
	"simple-notes-be/internal/repository/dynamo/dynamotest"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const usersTable = "users"

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	fake := dynamotest.New()
	fake.CreateTable(usersTable, "user_id")
	repo := dynamo.NewUserRepository(fake, usersTable, logger.NewNopLogger())

	t.Run("absent user", func(t *testing.T) {
		got, err := repo.FindByID(ctx, "nobody")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("anonymous user omits profile fields", func(t *testing.T) {
		user := entity.NewAnonymousUser("anon-1", time.Now())
		require.NoError(t, repo.Save(ctx, user))

		item := fake.Item(usersTable, "anon-1")
		_, hasName := item["display_name"]
		_, hasEmail := item["email"]
		assert.False(t, hasName)
		assert.False(t, hasEmail)
		assert.Equal(t, &types.AttributeValueMemberBOOL{Value: true}, item["is_anonymous"])

		got, err := repo.FindByID(ctx, "anon-1")
		require.NoError(t, err)
		assert.Equal(t, user, got)
	})

	t.Run("save upserts by user_id", func(t *testing.T) {
		user := entity.NewAnonymousUser("u-2", time.Now())
		require.NoError(t, repo.Save(ctx, user))

		email := "u2@example.com"
		name := "Two"
		user.Promote(&email, &name, time.Now())
		require.NoError(t, repo.Save(ctx, user))

		got, err := repo.FindByID(ctx, "u-2")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.False(t, got.IsAnonymous)
		assert.Equal(t, "Two", *got.DisplayName)
		assert.Equal(t, 2, fake.Len(usersTable))
	})

	t.Run("storage failures fail closed", func(t *testing.T) {
		fake.FailOn(dynamotest.OpGetItem, errors.New("timeout"))
		defer fake.FailOn(dynamotest.OpGetItem, nil)

		_, err := repo.FindByID(ctx, "u-2")
		assert.True(t, apperror.Is(err, apperror.KindStorageUnavailable))
	})
}

func TestUserRepositoryUnconfiguredTable(t *testing.T) {
	repo := dynamo.NewUserRepository(dynamotest.New(), "", logger.NewNopLogger())

	err := repo.Save(context.Background(), entity.NewAnonymousUser("u1", time.Now()))
	assert.ErrorIs(t, err, apperror.ErrStorageUnavailable)

	_, err = repo.FindByID(context.Background(), "u1")
	assert.ErrorIs(t, err, apperror.ErrStorageUnavailable)
}
