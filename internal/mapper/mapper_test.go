package mapper

import (
	"testing"
	"time"

	"simple-notes-be/internal/entity"
	"simple-notes-be/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoteItemRoundTrip(t *testing.T) {
	m := NewNoteMapper()
	created := time.Date(2024, 3, 1, 10, 0, 0, 123456789, time.FixedZone("WIB", 7*3600))
	note := entity.NewNote("u1", "Groceries", "milk and eggs", created)
	note.Privacy = entity.PrivacyPublic
	note.Touch(created.Add(90 * time.Minute))

	item := m.ToItem(note)
	assert.Equal(t, "2024-03-01T03:00:00.123456Z", item.CreatedAt)
	assert.Equal(t, "public", item.Privacy)

	back, err := m.FromItem(item)
	require.NoError(t, err)
	assert.Equal(t, note, back)
}

func TestNoteModelRoundTrip(t *testing.T) {
	m := NewNoteMapper()
	note := entity.NewNote("u1", "t", "c", time.Now())

	back := m.ToEntity(m.ToModel(note))
	assert.Equal(t, note, back)
}

func TestFromItemRejectsCorruptRecords(t *testing.T) {
	m := NewNoteMapper()
	valid := model.NoteItem{
		Id: "n1", UserId: "u1", Privacy: "private",
		CreatedAt: "2024-01-01T00:00:00.000000Z", UpdatedAt: "2024-01-01T00:00:00.000000Z",
	}

	tests := []struct {
		name   string
		mutate func(*model.NoteItem)
	}{
		{name: "missing id", mutate: func(i *model.NoteItem) { i.Id = "" }},
		{name: "unknown privacy", mutate: func(i *model.NoteItem) { i.Privacy = "friends" }},
		{name: "bad created_at", mutate: func(i *model.NoteItem) { i.CreatedAt = "yesterday" }},
		{name: "bad updated_at", mutate: func(i *model.NoteItem) { i.UpdatedAt = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := valid
			tt.mutate(&item)
			_, err := m.FromItem(&item)
			assert.Error(t, err)
		})
	}
}

func TestParseTimestamp(t *testing.T) {
	want := time.Date(2024, 1, 2, 3, 4, 5, 678000000, time.UTC)

	tests := []struct {
		in   string
		want time.Time
	}{
		{in: "2024-01-02T03:04:05.678000Z", want: want},
		{in: "2024-01-02T03:04:05.678+00:00", want: want},
		{in: "2024-01-02T05:04:05.678+02:00", want: want},
		{in: "2024-01-02T03:04:05.678", want: want},
		{in: "2024-01-02T03:04:05+00:00", want: want.Truncate(time.Second)},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTimestamp(tt.in)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s", got)
			assert.Equal(t, time.UTC, got.Location())
		})
	}

	_, err := ParseTimestamp("not a time")
	assert.Error(t, err)
}

func TestUserItemRoundTrip(t *testing.T) {
	m := NewUserMapper()
	name := "Ada"
	email := "ada@example.com"
	user := entity.NewRegisteredUser("u1", &email, &name, time.Now())

	item := m.ToItem(user)
	back, err := m.FromItem(item)
	require.NoError(t, err)
	assert.Equal(t, user, back)

	anon := entity.NewAnonymousUser("u2", time.Now())
	back, err = m.FromItem(m.ToItem(anon))
	require.NoError(t, err)
	assert.Nil(t, back.DisplayName)
	assert.True(t, back.IsAnonymous)
}
