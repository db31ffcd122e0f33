package contract

import (
	"context"

	"simple-notes-be/internal/entity"
)

// NoteRepository persists notes.
//
// Save, FindByID and Delete fail closed: an unreachable or unconfigured store
// is reported as a storage-unavailable error. FindByUserID and
// FindPublicNotes fail open: storage errors are logged and an empty result is
// returned.
type NoteRepository interface {
	// Save upserts the note by id. It refreshes note.UpdatedAt to the current
	// time before writing, strictly after the previous value.
	Save(ctx context.Context, note *entity.Note) error
	// FindByID returns (nil, nil) when no note has the id.
	FindByID(ctx context.Context, id string) (*entity.Note, error)
	// FindByUserID returns the user's notes, newest updated first.
	FindByUserID(ctx context.Context, userId string) ([]*entity.Note, error)
	// FindPublicNotes returns at most limit public notes, newest updated
	// first, skipping the first offset.
	FindPublicNotes(ctx context.Context, limit, offset int) ([]*entity.Note, error)
	// Delete removes the note. Deleting an absent id is not an error.
	Delete(ctx context.Context, id string) error
}
