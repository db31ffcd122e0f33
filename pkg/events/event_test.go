package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelopeRoundTrip(t *testing.T) {
	at := time.Date(2024, 2, 3, 4, 5, 6, 0, time.FixedZone("X", 7200))
	evt := NoteEvent(NoteCreated, "n1", "u1", false, at)

	data, err := Marshal(evt)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"type":"note.created","data":{"note_id":"n1","user_id":"u1","is_public":false},"occurred_at":"2024-02-03T02:05:06Z"}`,
		string(data))

	got, err := Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, NoteCreated, got.EventType())
	assert.Equal(t, "n1", got.Payload()["note_id"])
	assert.True(t, got.Timestamp().Equal(at))
}

func TestUnmarshalRejects(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "not json", data: "nope"},
		{name: "missing type", data: `{"data":{}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Unmarshal([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestUserEvent(t *testing.T) {
	evt := UserEvent(UserPromoted, "u1", false, time.Now())
	assert.Equal(t, "user.promoted", evt.EventType())
	assert.Equal(t, false, evt.Payload()["is_anonymous"])
}
