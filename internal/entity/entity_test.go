package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNoteDefaults(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 123456789, time.FixedZone("X", 3600))
	n := NewNote("u1", "title", "content", now)

	assert.NotEmpty(t, n.Id)
	assert.Equal(t, "u1", n.UserId)
	assert.Equal(t, PrivacyPrivate, n.Privacy)
	assert.Equal(t, time.UTC, n.CreatedAt.Location())
	assert.Equal(t, 123456000, n.CreatedAt.Nanosecond())
	assert.True(t, n.CreatedAt.Equal(n.UpdatedAt))

	other := NewNote("u1", "title", "content", now)
	assert.NotEqual(t, n.Id, other.Id)
}

func TestNoteTouchIsMonotonic(t *testing.T) {
	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	n := NewNote("u1", "t", "c", created)

	n.Touch(created)
	first := n.UpdatedAt
	assert.True(t, first.After(created))

	n.Touch(created.Add(-time.Hour))
	assert.True(t, n.UpdatedAt.After(first))
	assert.False(t, n.UpdatedAt.Before(n.CreatedAt))

	later := created.Add(time.Hour)
	n.Touch(later)
	assert.True(t, n.UpdatedAt.Equal(later))
}

func TestParsePrivacy(t *testing.T) {
	p, err := ParsePrivacy(" PUBLIC ")
	require.NoError(t, err)
	assert.Equal(t, PrivacyPublic, p)

	_, err = ParsePrivacy("friends")
	assert.Error(t, err)
}

func TestValidContent(t *testing.T) {
	assert.True(t, IsValidContent("x"))
	assert.False(t, IsValidContent(""))
	assert.False(t, IsValidContent(" \n\t"))
	assert.False(t, (&Note{Content: "  "}).HasValidContent())
}

func TestUserPromoteKeepsIdentity(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	u := NewAnonymousUser("anon-1", now)
	assert.Equal(t, "Anonymous", u.Name())

	email := "a@example.com"
	name := "Ada"
	u.Promote(&email, &name, now.Add(time.Minute))

	assert.Equal(t, "anon-1", u.UserId)
	assert.False(t, u.IsAnonymous)
	assert.Equal(t, "Ada", u.Name())
	assert.Equal(t, email, *u.Email)
	assert.True(t, u.UpdatedAt.After(u.CreatedAt))
}

func TestSessionExpiry(t *testing.T) {
	now := time.Now()
	s := &Session{ExpiresAt: now.Add(time.Minute)}
	assert.False(t, s.IsExpired(now))
	assert.True(t, s.IsExpired(now.Add(time.Minute)))
}
