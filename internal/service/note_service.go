// FILE: internal/service/note_service.go
package service

import (
	"context"
	"time"

	"simple-notes-be/internal/dto"
	"simple-notes-be/internal/entity"
	"simple-notes-be/internal/mapper"
	"simple-notes-be/internal/pkg/apperror"
	"simple-notes-be/internal/pkg/htmlsanitize"
	"simple-notes-be/internal/pkg/logger"
	"simple-notes-be/internal/repository/contract"
	"simple-notes-be/pkg/events"
)

// NoteUpdate holds the fields of a partial note update. Nil fields are kept.
type NoteUpdate struct {
	Title   *string
	Content *string
	Privacy *entity.Privacy
}

func (u NoteUpdate) IsEmpty() bool {
	return u.Title == nil && u.Content == nil && u.Privacy == nil
}

type INoteService interface {
	CreateNote(ctx context.Context, userId, title, content string) (*entity.Note, error)
	GetNotesForUser(ctx context.Context, userId string) ([]*entity.Note, error)
	// GetPublicNotes expects limit and offset to be validated by the caller.
	GetPublicNotes(ctx context.Context, limit, offset int) ([]*entity.Note, error)

	GetUserNote(ctx context.Context, userId, noteId string) (*entity.Note, error)
	UpdateUserNote(ctx context.Context, userId, noteId string, update NoteUpdate) (*entity.Note, error)
	DeleteUserNote(ctx context.Context, userId, noteId string) error
	GetPublicNote(ctx context.Context, noteId string) (*dto.PublicNoteResponse, error)
	ListPublicNotes(ctx context.Context, page, limit int) (*dto.PublicNoteListData, error)
	ListUserNotes(ctx context.Context, userId string, page, limit int) (*dto.PrivateNoteListData, error)
}

type noteService struct {
	noteRepo         contract.NoteRepository
	userRepo         contract.UserRepository
	publisherService IPublisherService
	noteMapper       *mapper.NoteMapper
	logger           logger.ILogger
	now              func() time.Time
}

func NewNoteService(
	noteRepo contract.NoteRepository,
	userRepo contract.UserRepository,
	publisherService IPublisherService,
	log logger.ILogger,
) INoteService {
	return &noteService{
		noteRepo:         noteRepo,
		userRepo:         userRepo,
		publisherService: publisherService,
		noteMapper:       mapper.NewNoteMapper(),
		logger:           log,
		now:              time.Now,
	}
}

func (s *noteService) CreateNote(ctx context.Context, userId, title, content string) (*entity.Note, error) {
	title = htmlsanitize.SanitizeTitle(title)
	content = htmlsanitize.Sanitize(content)
	if !entity.IsValidContent(content) {
		return nil, apperror.Validation("content must not be blank")
	}

	note := entity.NewNote(userId, title, content, s.now())
	if err := s.noteRepo.Save(ctx, note); err != nil {
		return nil, err
	}

	s.publish(ctx, events.NoteCreated, note)
	return note, nil
}

func (s *noteService) GetNotesForUser(ctx context.Context, userId string) ([]*entity.Note, error) {
	return s.noteRepo.FindByUserID(ctx, userId)
}

func (s *noteService) GetPublicNotes(ctx context.Context, limit, offset int) ([]*entity.Note, error) {
	return s.noteRepo.FindPublicNotes(ctx, limit, offset)
}

func (s *noteService) GetUserNote(ctx context.Context, userId, noteId string) (*entity.Note, error) {
	note, err := s.noteRepo.FindByID(ctx, noteId)
	if err != nil {
		return nil, err
	}
	// Someone else's note is reported exactly like a missing one.
	if note == nil || !note.IsOwnedBy(userId) {
		return nil, apperror.NotFound("note not found")
	}
	return note, nil
}

func (s *noteService) UpdateUserNote(ctx context.Context, userId, noteId string, update NoteUpdate) (*entity.Note, error) {
	if update.IsEmpty() {
		return nil, apperror.Validation("at least one field must be provided")
	}

	note, err := s.GetUserNote(ctx, userId, noteId)
	if err != nil {
		return nil, err
	}

	if update.Title != nil {
		note.Title = htmlsanitize.SanitizeTitle(*update.Title)
	}
	if update.Content != nil {
		content := htmlsanitize.Sanitize(*update.Content)
		if !entity.IsValidContent(content) {
			return nil, apperror.Validation("content must not be blank")
		}
		note.Content = content
	}
	if update.Privacy != nil {
		if !update.Privacy.IsValid() {
			return nil, apperror.Validation("privacy is invalid")
		}
		note.Privacy = *update.Privacy
	}

	if err := s.noteRepo.Save(ctx, note); err != nil {
		return nil, err
	}

	s.publish(ctx, events.NoteUpdated, note)
	return note, nil
}

func (s *noteService) DeleteUserNote(ctx context.Context, userId, noteId string) error {
	note, err := s.GetUserNote(ctx, userId, noteId)
	if err != nil {
		return err
	}

	if err := s.noteRepo.Delete(ctx, note.Id); err != nil {
		return err
	}

	s.publish(ctx, events.NoteDeleted, note)
	return nil
}

func (s *noteService) GetPublicNote(ctx context.Context, noteId string) (*dto.PublicNoteResponse, error) {
	note, err := s.noteRepo.FindByID(ctx, noteId)
	if err != nil {
		return nil, err
	}
	if note == nil || !note.IsPublic() {
		return nil, apperror.NotFound("note not found")
	}

	authors := newAuthorResolver(s.userRepo, s.logger)
	res := s.noteMapper.ToPublicResponse(note, authors.Name(ctx, note.UserId))
	return &res, nil
}

func (s *noteService) ListPublicNotes(ctx context.Context, page, limit int) (*dto.PublicNoteListData, error) {
	notes, err := s.noteRepo.FindPublicNotes(ctx, limit, dto.PageOffset(page, limit))
	if err != nil {
		return nil, err
	}

	authors := newAuthorResolver(s.userRepo, s.logger)
	items := make([]dto.PublicNoteResponse, 0, len(notes))
	for _, n := range notes {
		items = append(items, s.noteMapper.ToPublicResponse(n, authors.Name(ctx, n.UserId)))
	}

	return &dto.PublicNoteListData{
		Notes:      items,
		Pagination: dto.InferPagination(page, limit, len(notes)),
	}, nil
}

func (s *noteService) ListUserNotes(ctx context.Context, userId string, page, limit int) (*dto.PrivateNoteListData, error) {
	notes, err := s.noteRepo.FindByUserID(ctx, userId)
	if err != nil {
		return nil, err
	}

	start := min(dto.PageOffset(page, limit), len(notes))
	end := start + min(max(limit, 0), len(notes)-start)

	return &dto.PrivateNoteListData{
		Notes:      s.noteMapper.ToPrivateResponses(notes[start:end]),
		Pagination: dto.ExactPagination(page, limit, len(notes)),
	}, nil
}

func (s *noteService) publish(ctx context.Context, eventType string, note *entity.Note) {
	s.publisherService.Publish(ctx, events.NoteEvent(eventType, note.Id, note.UserId, note.IsPublic(), s.now()))
}

// authorResolver looks up author names once per owner for a single response.
type authorResolver struct {
	userRepo contract.UserRepository
	logger   logger.ILogger
	names    map[string]string
}

func newAuthorResolver(userRepo contract.UserRepository, log logger.ILogger) *authorResolver {
	return &authorResolver{userRepo: userRepo, logger: log, names: make(map[string]string)}
}

func (r *authorResolver) Name(ctx context.Context, userId string) string {
	if name, ok := r.names[userId]; ok {
		return name
	}

	user, err := r.userRepo.FindByID(ctx, userId)
	if err != nil {
		// A missing author name is not worth failing a public read over.
		r.logger.Warn("NoteService", "Failed to resolve note author", map[string]interface{}{
			"user_id": userId,
			"error":   err.Error(),
		})
		user = nil
	}

	name := user.Name()
	r.names[userId] = name
	return name
}
