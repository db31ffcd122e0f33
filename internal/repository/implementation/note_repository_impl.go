package implementation

import (
	"context"
	"errors"
	"time"

	"simple-notes-be/internal/entity"
	"simple-notes-be/internal/mapper"
	"simple-notes-be/internal/model"
	"simple-notes-be/internal/pkg/apperror"
	"simple-notes-be/internal/pkg/logger"
	"simple-notes-be/internal/repository/contract"
	"simple-notes-be/internal/repository/specification"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const noteModule = "NoteRepository"

type NoteRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.NoteMapper
	logger logger.ILogger
	now    func() time.Time
}

func NewNoteRepository(db *gorm.DB, log logger.ILogger, now func() time.Time) contract.NoteRepository {
	if now == nil {
		now = time.Now
	}
	return &NoteRepositoryImpl{
		db:     db,
		mapper: mapper.NewNoteMapper(),
		logger: log,
		now:    now,
	}
}

func (r *NoteRepositoryImpl) Save(ctx context.Context, note *entity.Note) error {
	stamped := *note
	stamped.Touch(r.now())

	m := r.mapper.ToModel(&stamped)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(m).Error
	if err != nil {
		return apperror.StorageUnavailable("failed to save note", err)
	}

	note.UpdatedAt = stamped.UpdatedAt
	return nil
}

func (r *NoteRepositoryImpl) FindByID(ctx context.Context, id string) (*entity.Note, error) {
	var m model.Note
	query := specification.ApplyAll(r.db.WithContext(ctx), specification.ByID{ID: id})
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperror.StorageUnavailable("failed to get note", err)
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *NoteRepositoryImpl) FindByUserID(ctx context.Context, userId string) ([]*entity.Note, error) {
	specs := append([]specification.Specification{specification.NoteOwnedByUser{UserID: userId}}, specification.NewestFirst()...)

	notes, err := r.findAll(ctx, specs...)
	if err != nil {
		r.logger.Error(noteModule, "Failed to fetch notes by user_id", map[string]interface{}{
			"user_id": userId,
			"error":   err,
		})
		return []*entity.Note{}, nil
	}
	return notes, nil
}

func (r *NoteRepositoryImpl) FindPublicNotes(ctx context.Context, limit, offset int) ([]*entity.Note, error) {
	if limit <= 0 {
		return []*entity.Note{}, nil
	}
	if offset < 0 {
		offset = 0
	}

	specs := append([]specification.Specification{specification.ByPrivacy{Privacy: entity.PrivacyPublic}}, specification.NewestFirst()...)
	specs = append(specs, specification.Pagination{Limit: limit, Offset: offset})

	notes, err := r.findAll(ctx, specs...)
	if err != nil {
		r.logger.Error(noteModule, "Failed to fetch public notes", map[string]interface{}{"error": err})
		return []*entity.Note{}, nil
	}
	return notes, nil
}

func (r *NoteRepositoryImpl) Delete(ctx context.Context, id string) error {
	err := specification.ApplyAll(r.db.WithContext(ctx), specification.ByID{ID: id}).
		Delete(&model.Note{}).Error
	if err != nil {
		return apperror.StorageUnavailable("failed to delete note", err)
	}
	return nil
}

func (r *NoteRepositoryImpl) findAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Note, error) {
	var models []*model.Note
	query := specification.ApplyAll(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
