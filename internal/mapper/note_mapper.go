package mapper

import (
	"fmt"

	"simple-notes-be/internal/dto"
	"simple-notes-be/internal/entity"
	"simple-notes-be/internal/model"
)

type NoteMapper struct{}

func NewNoteMapper() *NoteMapper {
	return &NoteMapper{}
}

func (m *NoteMapper) ToEntity(n *model.Note) *entity.Note {
	if n == nil {
		return nil
	}
	return &entity.Note{
		Id:        n.Id,
		UserId:    n.UserId,
		Title:     n.Title,
		Content:   n.Content,
		Privacy:   entity.Privacy(n.Privacy),
		CreatedAt: entity.Timestamp(n.CreatedAt),
		UpdatedAt: entity.Timestamp(n.UpdatedAt),
	}
}

func (m *NoteMapper) ToModel(n *entity.Note) *model.Note {
	if n == nil {
		return nil
	}
	return &model.Note{
		Id:        n.Id,
		UserId:    n.UserId,
		Title:     n.Title,
		Content:   n.Content,
		Privacy:   string(n.Privacy),
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

func (m *NoteMapper) ToEntities(notes []*model.Note) []*entity.Note {
	entities := make([]*entity.Note, len(notes))
	for i, n := range notes {
		entities[i] = m.ToEntity(n)
	}
	return entities
}

func (m *NoteMapper) ToItem(n *entity.Note) *model.NoteItem {
	return &model.NoteItem{
		Id:        n.Id,
		UserId:    n.UserId,
		Title:     n.Title,
		Content:   n.Content,
		Privacy:   string(n.Privacy),
		CreatedAt: FormatTimestamp(n.CreatedAt),
		UpdatedAt: FormatTimestamp(n.UpdatedAt),
	}
}

// FromItem decodes a stored item. Unknown privacy values and unparsable
// timestamps are errors.
func (m *NoteMapper) FromItem(item *model.NoteItem) (*entity.Note, error) {
	if item.Id == "" {
		return nil, fmt.Errorf("note item has no id")
	}
	privacy, err := entity.ParsePrivacy(item.Privacy)
	if err != nil {
		return nil, fmt.Errorf("note %s: %w", item.Id, err)
	}
	createdAt, err := ParseTimestamp(item.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("note %s created_at: %w", item.Id, err)
	}
	updatedAt, err := ParseTimestamp(item.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("note %s updated_at: %w", item.Id, err)
	}
	return &entity.Note{
		Id:        item.Id,
		UserId:    item.UserId,
		Title:     item.Title,
		Content:   item.Content,
		Privacy:   privacy,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}

func (m *NoteMapper) ToPrivateResponse(n *entity.Note) dto.PrivateNoteResponse {
	return dto.PrivateNoteResponse{
		Id:        n.Id,
		Title:     n.Title,
		Content:   n.Content,
		IsPublic:  n.IsPublic(),
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

func (m *NoteMapper) ToPrivateResponses(notes []*entity.Note) []dto.PrivateNoteResponse {
	res := make([]dto.PrivateNoteResponse, len(notes))
	for i, n := range notes {
		res[i] = m.ToPrivateResponse(n)
	}
	return res
}

func (m *NoteMapper) ToPublicResponse(n *entity.Note, author string) dto.PublicNoteResponse {
	return dto.PublicNoteResponse{
		Id:        n.Id,
		Title:     n.Title,
		Content:   n.Content,
		Author:    author,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
		IsPublic:  n.IsPublic(),
	}
}
