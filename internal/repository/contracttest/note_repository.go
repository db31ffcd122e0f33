// Package contracttest holds behaviour suites shared by every repository
// implementation.
package contracttest

import (
	"context"
	"sync"
	"testing"
	"time"

	"simple-notes-be/internal/entity"
	"simple-notes-be/internal/repository/contract"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Clock hands out strictly increasing instants, one second apart.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

func NewClock() *Clock {
	return &Clock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

// NoteRepository checks a contract.NoteRepository. Subject must return a
// repository over an empty store that stamps saves with now.
type NoteRepository struct {
	Subject func(tb testing.TB, now func() time.Time) contract.NoteRepository
}

func (c NoteRepository) Test(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (contract.NoteRepository, *Clock) {
		clock := NewClock()
		return c.Subject(t, clock.Now), clock
	}

	t.Run("save then find returns the note", func(t *testing.T) {
		repo, clock := setup(t)
		note := entity.NewNote("u1", "Title", "Content", clock.Now())
		require.NoError(t, repo.Save(ctx, note))

		got, err := repo.FindByID(ctx, note.Id)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, note.Title, got.Title)
		assert.Equal(t, note.Content, got.Content)
		assert.Equal(t, note.UserId, got.UserId)
		assert.Equal(t, entity.PrivacyPrivate, got.Privacy)
		assert.True(t, note.CreatedAt.Equal(got.CreatedAt))
		assert.True(t, note.UpdatedAt.Equal(got.UpdatedAt))
		assert.False(t, got.UpdatedAt.Before(got.CreatedAt))
	})

	t.Run("find absent id returns nil", func(t *testing.T) {
		repo, _ := setup(t)
		got, err := repo.FindByID(ctx, "does-not-exist")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("save is idempotent and bumps updated_at", func(t *testing.T) {
		repo, clock := setup(t)
		note := entity.NewNote("u1", "Title", "Content", clock.Now())
		require.NoError(t, repo.Save(ctx, note))
		first := note.UpdatedAt

		note.Title = "Renamed"
		require.NoError(t, repo.Save(ctx, note))
		assert.True(t, note.UpdatedAt.After(first))

		notes, err := repo.FindByUserID(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, notes, 1)
		assert.Equal(t, "Renamed", notes[0].Title)
		assert.True(t, notes[0].UpdatedAt.Equal(note.UpdatedAt))
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		repo, clock := setup(t)
		note := entity.NewNote("u1", "Title", "Content", clock.Now())
		require.NoError(t, repo.Save(ctx, note))

		require.NoError(t, repo.Delete(ctx, note.Id))
		require.NoError(t, repo.Delete(ctx, note.Id))

		got, err := repo.FindByID(ctx, note.Id)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("find by user returns only the owner's notes newest first", func(t *testing.T) {
		repo, clock := setup(t)
		mine1 := entity.NewNote("alice", "a1", "x", clock.Now())
		theirs := entity.NewNote("bob", "b1", "x", clock.Now())
		mine2 := entity.NewNote("alice", "a2", "x", clock.Now())
		for _, n := range []*entity.Note{mine1, theirs, mine2} {
			require.NoError(t, repo.Save(ctx, n))
		}

		notes, err := repo.FindByUserID(ctx, "alice")
		require.NoError(t, err)
		require.Len(t, notes, 2)
		assert.Equal(t, mine2.Id, notes[0].Id)
		assert.Equal(t, mine1.Id, notes[1].Id)
		for _, n := range notes {
			assert.Equal(t, "alice", n.UserId)
		}

		none, err := repo.FindByUserID(ctx, "carol")
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("public notes are windowed newest first", func(t *testing.T) {
		repo, clock := setup(t)
		var public []*entity.Note
		for i := 0; i < 3; i++ {
			n := entity.NewNote("u1", "public", "x", clock.Now())
			n.Privacy = entity.PrivacyPublic
			require.NoError(t, repo.Save(ctx, n))
			public = append(public, n)
		}
		require.NoError(t, repo.Save(ctx, entity.NewNote("u1", "private", "x", clock.Now())))

		first, err := repo.FindPublicNotes(ctx, 2, 0)
		require.NoError(t, err)
		require.Len(t, first, 2)
		assert.Equal(t, public[2].Id, first[0].Id)
		assert.Equal(t, public[1].Id, first[1].Id)

		second, err := repo.FindPublicNotes(ctx, 2, 2)
		require.NoError(t, err)
		require.Len(t, second, 1)
		assert.Equal(t, public[0].Id, second[0].Id)

		all, err := repo.FindPublicNotes(ctx, 100, 0)
		require.NoError(t, err)
		require.Len(t, all, 3)
		for i := 1; i < len(all); i++ {
			assert.False(t, all[i].UpdatedAt.After(all[i-1].UpdatedAt))
		}
	})

	t.Run("public notes window bounds", func(t *testing.T) {
		repo, clock := setup(t)
		for i := 0; i < 3; i++ {
			n := entity.NewNote("u1", "public", "x", clock.Now())
			n.Privacy = entity.PrivacyPublic
			require.NoError(t, repo.Save(ctx, n))
		}

		tests := []struct {
			name          string
			limit, offset int
			want          int
		}{
			{name: "zero limit", limit: 0, offset: 0, want: 0},
			{name: "negative limit", limit: -1, offset: 0, want: 0},
			{name: "offset past the end", limit: 2, offset: 10, want: 0},
			{name: "negative offset reads from the start", limit: 2, offset: -5, want: 2},
			{name: "limit larger than total", limit: 50, offset: 1, want: 2},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				notes, err := repo.FindPublicNotes(ctx, tt.limit, tt.offset)
				require.NoError(t, err)
				assert.Len(t, notes, tt.want)
			})
		}
	})

	t.Run("updating a note moves it to the top of the feed", func(t *testing.T) {
		repo, clock := setup(t)
		older := entity.NewNote("u1", "older", "x", clock.Now())
		older.Privacy = entity.PrivacyPublic
		newer := entity.NewNote("u1", "newer", "x", clock.Now())
		newer.Privacy = entity.PrivacyPublic
		require.NoError(t, repo.Save(ctx, older))
		require.NoError(t, repo.Save(ctx, newer))

		older.Content = "edited"
		require.NoError(t, repo.Save(ctx, older))

		notes, err := repo.FindPublicNotes(ctx, 1, 0)
		require.NoError(t, err)
		require.Len(t, notes, 1)
		assert.Equal(t, older.Id, notes[0].Id)
	})
}
