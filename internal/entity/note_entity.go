package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Privacy string

const (
	PrivacyPublic  Privacy = "public"
	PrivacyPrivate Privacy = "private"
)

func (p Privacy) IsValid() bool {
	return p == PrivacyPublic || p == PrivacyPrivate
}

func ParsePrivacy(s string) (Privacy, error) {
	p := Privacy(strings.ToLower(strings.TrimSpace(s)))
	if !p.IsValid() {
		return "", fmt.Errorf("unknown privacy %q", s)
	}
	return p, nil
}

type Note struct {
	Id        string
	UserId    string
	Title     string
	Content   string
	Privacy   Privacy
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewNote builds a private note owned by userId. Timestamps are kept in UTC at
// microsecond precision, which is what the storage layer persists.
func NewNote(userId, title, content string, now time.Time) *Note {
	ts := Timestamp(now)
	return &Note{
		Id:        uuid.NewString(),
		UserId:    userId,
		Title:     title,
		Content:   content,
		Privacy:   PrivacyPrivate,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
}

func (n *Note) IsPublic() bool {
	return n.Privacy == PrivacyPublic
}

func (n *Note) IsOwnedBy(userId string) bool {
	return n.UserId == userId
}

// HasValidContent reports whether the note carries non-blank content.
func (n *Note) HasValidContent() bool {
	return IsValidContent(n.Content)
}

// Touch moves UpdatedAt forward to now. UpdatedAt never goes backwards and
// never drops below CreatedAt.
func (n *Note) Touch(now time.Time) {
	n.UpdatedAt = nextTimestamp(now, n.CreatedAt, n.UpdatedAt)
}

func IsValidContent(content string) bool {
	return strings.TrimSpace(content) != ""
}

// Timestamp normalizes t to the precision and zone used by persisted records.
func Timestamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

// nextTimestamp returns now (normalized), bumped one microsecond past prev when
// the clock has not advanced, and never earlier than floor.
func nextTimestamp(now, floor, prev time.Time) time.Time {
	ts := Timestamp(now)
	if !prev.IsZero() && !ts.After(prev) {
		ts = Timestamp(prev).Add(time.Microsecond)
	}
	if ts.Before(floor) {
		ts = Timestamp(floor)
	}
	return ts
}
