package service

import (
	"context"
	"errors"
	"testing"

	"simple-notes-be/internal/pkg/apperror"
	"simple-notes-be/internal/pkg/identity"
	"simple-notes-be/internal/repository/dynamo/dynamotest"
	"simple-notes-be/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAnonymousUserIsIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	first, err := f.authService.RegisterAnonymousUser(ctx, "anon-1")
	require.NoError(t, err)
	assert.True(t, first.IsAnonymous)

	second, err := f.authService.RegisterAnonymousUser(ctx, "anon-1")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, f.fake.Len("users"))
	assert.Equal(t, []string{events.UserRegistered}, f.published.Types())
}

func TestRegisterAnonymousUserStorageFailure(t *testing.T) {
	f := newFixture(t)
	f.fake.FailOn(dynamotest.OpPutItem, errors.New("down"))

	_, err := f.authService.RegisterAnonymousUser(context.Background(), "anon-1")
	assert.ErrorIs(t, err, apperror.ErrStorageUnavailable)
}

func TestAuthenticateAnonymous(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	res, err := f.authService.AuthenticateAnonymous(ctx, f.token(t, "anon-1", true, ""))
	require.NoError(t, err)
	assert.Equal(t, "anon-1", res.User.UserId)
	assert.True(t, res.Session.IsAnonymous)
	assert.True(t, res.Session.ExpiresAt.After(res.Session.CreatedAt))

	stored, err := f.sessions.Get(ctx, res.Session.Id)
	require.NoError(t, err)
	require.NotNil(t, stored)

	_, err = f.authService.AuthenticateAnonymous(ctx, f.token(t, "ada", false, ""))
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	_, err = f.authService.AuthenticateAnonymous(ctx, "garbage")
	assert.True(t, apperror.Is(err, apperror.KindAuthentication))
}

func TestSignupAndLogin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	token := f.token(t, "ada", false, "ada@example.com")

	_, err := f.authService.Login(ctx, token)
	assert.True(t, apperror.Is(err, apperror.KindAuthentication), "login before signup")

	res, err := f.authService.Signup(ctx, token, ptr("  Ada  "))
	require.NoError(t, err)
	assert.False(t, res.User.IsAnonymous)
	assert.Equal(t, "Ada", *res.User.DisplayName)
	assert.Equal(t, "ada@example.com", *res.User.Email)

	_, err = f.authService.Signup(ctx, token, nil)
	assert.True(t, apperror.Is(err, apperror.KindConflict))

	login, err := f.authService.Login(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "ada", login.User.UserId)
	assert.NotEqual(t, res.Session.Id, login.Session.Id)

	_, err = f.authService.Signup(ctx, f.token(t, "anon", true, ""), nil)
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}

func TestPromote(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	anon, err := f.authService.AuthenticateAnonymous(ctx, f.token(t, "anon-1", true, ""))
	require.NoError(t, err)
	note, err := f.noteService.CreateNote(ctx, "anon-1", "kept", "body")
	require.NoError(t, err)
	current := &identity.Identity{UserId: "anon-1", IsAnonymous: true}

	t.Run("rejects a different account", func(t *testing.T) {
		_, err := f.authService.Promote(ctx, current, anon.Session.Id, f.token(t, "someone-else", false, ""), nil)
		assert.True(t, apperror.Is(err, apperror.KindValidation))
	})

	t.Run("rejects an anonymous token", func(t *testing.T) {
		_, err := f.authService.Promote(ctx, current, anon.Session.Id, f.token(t, "anon-1", true, ""), nil)
		assert.True(t, apperror.Is(err, apperror.KindValidation))
	})

	t.Run("rejects registered callers", func(t *testing.T) {
		registered := &identity.Identity{UserId: "anon-1"}
		_, err := f.authService.Promote(ctx, registered, "", f.token(t, "anon-1", false, ""), nil)
		assert.True(t, apperror.Is(err, apperror.KindValidation))
	})

	res, err := f.authService.Promote(ctx, current, anon.Session.Id, f.token(t, "anon-1", false, "a@example.com"), ptr("Ada"))
	require.NoError(t, err)
	assert.Equal(t, "anon-1", res.User.UserId)
	assert.False(t, res.User.IsAnonymous)
	assert.False(t, res.Session.IsAnonymous)
	assert.True(t, res.User.CreatedAt.Before(res.User.UpdatedAt))

	old, err := f.sessions.Get(ctx, anon.Session.Id)
	require.NoError(t, err)
	assert.Nil(t, old, "the anonymous session is replaced")

	notes, err := f.noteService.GetNotesForUser(ctx, "anon-1")
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, note.Id, notes[0].Id)

	_, err = f.authService.Promote(ctx, current, "", f.token(t, "anon-1", false, ""), nil)
	assert.True(t, apperror.Is(err, apperror.KindConflict))
	assert.Contains(t, f.published.Types(), events.UserPromoted)
}

func TestResolveRequest(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	res, err := f.authService.AuthenticateAnonymous(ctx, f.token(t, "anon-1", true, ""))
	require.NoError(t, err)

	tests := []struct {
		name      string
		sessionId string
		bearer    string
		wantUser  string
		wantErr   bool
	}{
		{name: "session", sessionId: res.Session.Id, wantUser: "anon-1"},
		{name: "session wins over bearer", sessionId: res.Session.Id, bearer: f.token(t, "ada", false, ""), wantUser: "anon-1"},
		{name: "bearer", bearer: f.token(t, "ada", false, ""), wantUser: "ada"},
		{name: "unknown session falls back to bearer", sessionId: "stale", bearer: f.token(t, "ada", false, ""), wantUser: "ada"},
		{name: "unknown session", sessionId: "stale", wantErr: true},
		{name: "bad bearer", bearer: "nope", wantErr: true},
		{name: "nothing", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := f.authService.ResolveRequest(ctx, tt.sessionId, tt.bearer)
			if tt.wantErr {
				assert.True(t, apperror.Is(err, apperror.KindAuthentication))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantUser, id.UserId)
		})
	}

	require.NoError(t, f.authService.Logout(ctx, res.Session.Id))
	require.NoError(t, f.authService.Logout(ctx, res.Session.Id))
	_, err = f.authService.ResolveRequest(ctx, res.Session.Id, "")
	assert.True(t, apperror.Is(err, apperror.KindAuthentication))
}

func TestResolveRequestSeesPromotionFromAnotherSession(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	first, err := f.authService.AuthenticateAnonymous(ctx, f.token(t, "anon-1", true, ""))
	require.NoError(t, err)
	second, err := f.authService.AuthenticateAnonymous(ctx, f.token(t, "anon-1", true, ""))
	require.NoError(t, err)

	before, err := f.authService.ResolveRequest(ctx, second.Session.Id, "")
	require.NoError(t, err)
	assert.True(t, before.IsAnonymous)

	current := &identity.Identity{UserId: "anon-1", IsAnonymous: true}
	_, err = f.authService.Promote(ctx, current, first.Session.Id, f.token(t, "anon-1", false, "a@example.com"), nil)
	require.NoError(t, err)

	after, err := f.authService.ResolveRequest(ctx, second.Session.Id, "")
	require.NoError(t, err)
	assert.Equal(t, "anon-1", after.UserId)
	assert.False(t, after.IsAnonymous)
	assert.Equal(t, "a@example.com", after.Email)

	t.Run("user lookup failures fail closed", func(t *testing.T) {
		anon, err := f.authService.AuthenticateAnonymous(ctx, f.token(t, "anon-2", true, ""))
		require.NoError(t, err)
		f.fake.FailOn(dynamotest.OpGetItem, errors.New("timeout"))
		defer f.fake.FailOn(dynamotest.OpGetItem, nil)

		_, err = f.authService.ResolveRequest(ctx, anon.Session.Id, "")
		assert.True(t, apperror.Is(err, apperror.KindStorageUnavailable))
	})
}

func TestEnsureUser(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	registered, err := f.authService.EnsureUser(ctx, &identity.Identity{UserId: "ada", Email: "ada@example.com"})
	require.NoError(t, err)
	assert.False(t, registered.IsAnonymous)
	assert.Equal(t, "ada@example.com", *registered.Email)

	again, err := f.authService.EnsureUser(ctx, &identity.Identity{UserId: "ada"})
	require.NoError(t, err)
	assert.Equal(t, registered, again)

	anon, err := f.authService.EnsureUser(ctx, &identity.Identity{UserId: "anon", IsAnonymous: true})
	require.NoError(t, err)
	assert.True(t, anon.IsAnonymous)
	assert.Equal(t, 2, f.fake.Len("users"))
}
