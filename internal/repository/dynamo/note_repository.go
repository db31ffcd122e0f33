package dynamo

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"simple-notes-be/internal/entity"
	"simple-notes-be/internal/mapper"
	"simple-notes-be/internal/model"
	"simple-notes-be/internal/pkg/apperror"
	"simple-notes-be/internal/pkg/logger"
	"simple-notes-be/internal/repository/contract"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const noteModule = "DynamoNoteRepository"

// NoteTableConfig names the notes table and its optional secondary indexes.
// UserIndex is partitioned by user_id and PublicIndex by privacy; both are
// expected to sort by updated_at. An empty index name selects the scan
// fallback.
type NoteTableConfig struct {
	Table       string
	UserIndex   string
	PublicIndex string
}

type noteRepository struct {
	client API
	cfg    NoteTableConfig
	mapper *mapper.NoteMapper
	logger logger.ILogger
	now    func() time.Time
}

func NewNoteRepository(client API, cfg NoteTableConfig, log logger.ILogger, opts ...Option) contract.NoteRepository {
	o := buildOptions(opts)
	if cfg.Table == "" {
		log.Warn(noteModule, "Notes table is not configured; writes will fail and lists will be empty", nil)
	}
	return &noteRepository{
		client: client,
		cfg:    cfg,
		mapper: mapper.NewNoteMapper(),
		logger: log,
		now:    o.now,
	}
}

func (r *noteRepository) Save(ctx context.Context, note *entity.Note) error {
	if r.cfg.Table == "" {
		return apperror.StorageUnavailable("notes table is not configured", nil)
	}

	stamped := *note
	stamped.Touch(r.now())

	item, err := attributevalue.MarshalMap(r.mapper.ToItem(&stamped))
	if err != nil {
		return fmt.Errorf("marshal note %s: %w", note.Id, err)
	}

	r.logger.Debug(noteModule, "Saving note", map[string]interface{}{"note_id": note.Id})
	if _, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.cfg.Table),
		Item:      item,
	}); err != nil {
		return apperror.StorageUnavailable("failed to save note", err)
	}

	note.UpdatedAt = stamped.UpdatedAt
	return nil
}

func (r *noteRepository) FindByID(ctx context.Context, id string) (*entity.Note, error) {
	if r.cfg.Table == "" {
		return nil, apperror.StorageUnavailable("notes table is not configured", nil)
	}

	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.cfg.Table),
		Key:       stringKey("id", id),
	})
	if err != nil {
		return nil, apperror.StorageUnavailable("failed to get note", err)
	}
	if result.Item == nil {
		return nil, nil
	}

	note, err := r.decode(result.Item)
	if err != nil {
		return nil, fmt.Errorf("decode note %s: %w", id, err)
	}
	return note, nil
}

func (r *noteRepository) FindByUserID(ctx context.Context, userId string) ([]*entity.Note, error) {
	if r.cfg.Table == "" {
		return []*entity.Note{}, nil
	}
	r.logger.Debug(noteModule, "Finding notes for user", map[string]interface{}{"user_id": userId})

	owned := func(n *entity.Note) bool { return n.IsOwnedBy(userId) }

	var (
		notes []*entity.Note
		err   error
	)
	if r.cfg.UserIndex != "" {
		notes, err = r.queryIndex(ctx, r.cfg.UserIndex, "user_id", userId, 0, owned)
	} else {
		notes, err = r.scanEqual(ctx, "user_id", userId, owned)
	}
	if err != nil {
		r.logger.Error(noteModule, "Failed to fetch notes by user_id", map[string]interface{}{
			"user_id": userId,
			"error":   err,
		})
		return []*entity.Note{}, nil
	}

	sortNewestFirst(notes)
	return notes, nil
}

func (r *noteRepository) FindPublicNotes(ctx context.Context, limit, offset int) ([]*entity.Note, error) {
	if limit <= 0 || r.cfg.Table == "" {
		return []*entity.Note{}, nil
	}
	if offset < 0 {
		offset = 0
	}
	r.logger.Debug(noteModule, "Finding public notes", map[string]interface{}{
		"limit":  limit,
		"offset": offset,
	})

	var (
		notes []*entity.Note
		err   error
	)
	if r.cfg.PublicIndex != "" {
		// The index is already newest first; stop once the window is covered.
		want := offset + limit
		if offset > math.MaxInt-limit {
			want = math.MaxInt
		}
		notes, err = r.queryIndex(ctx, r.cfg.PublicIndex, "privacy", string(entity.PrivacyPublic), want, (*entity.Note).IsPublic)
	} else {
		// Full scan per page. Acceptable for local development tables only.
		notes, err = r.scanEqual(ctx, "privacy", string(entity.PrivacyPublic), (*entity.Note).IsPublic)
	}
	if err != nil {
		r.logger.Error(noteModule, "Failed to fetch public notes", map[string]interface{}{"error": err})
		return []*entity.Note{}, nil
	}

	sortNewestFirst(notes)
	return window(notes, offset, limit), nil
}

func (r *noteRepository) Delete(ctx context.Context, id string) error {
	if r.cfg.Table == "" {
		return apperror.StorageUnavailable("notes table is not configured", nil)
	}

	r.logger.Debug(noteModule, "Deleting note", map[string]interface{}{"note_id": id})
	if _, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.cfg.Table),
		Key:       stringKey("id", id),
	}); err != nil {
		return apperror.StorageUnavailable("failed to delete note", err)
	}
	return nil
}

// queryIndex pages through an index partition in descending sort-key order.
// A positive want stops paging once that many notes were decoded and kept,
// so corrupt items never shorten the window.
func (r *noteRepository) queryIndex(ctx context.Context, index, attr, value string, want int, keep func(*entity.Note) bool) ([]*entity.Note, error) {
	var (
		notes            []*entity.Note
		lastEvaluatedKey map[string]types.AttributeValue
	)

	for {
		input := &dynamodb.QueryInput{
			TableName:                 aws.String(r.cfg.Table),
			IndexName:                 aws.String(index),
			KeyConditionExpression:    aws.String("#k = :v"),
			ExpressionAttributeNames:  map[string]string{"#k": attr},
			ExpressionAttributeValues: map[string]types.AttributeValue{":v": &types.AttributeValueMemberS{Value: value}},
			ScanIndexForward:          aws.Bool(false),
			ExclusiveStartKey:         lastEvaluatedKey,
		}
		if want > 0 {
			input.Limit = aws.Int32(int32(min(want-len(notes), math.MaxInt32)))
		}

		result, err := r.client.Query(ctx, input)
		if err != nil {
			return nil, err
		}
		notes = append(notes, r.decodeAll(result.Items, keep)...)

		lastEvaluatedKey = result.LastEvaluatedKey
		if lastEvaluatedKey == nil || (want > 0 && len(notes) >= want) {
			break
		}
	}
	return notes, nil
}

// scanEqual reads the whole table, keeping items whose attr equals value.
func (r *noteRepository) scanEqual(ctx context.Context, attr, value string, keep func(*entity.Note) bool) ([]*entity.Note, error) {
	var (
		notes            []*entity.Note
		lastEvaluatedKey map[string]types.AttributeValue
	)

	for {
		result, err := r.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:                 aws.String(r.cfg.Table),
			FilterExpression:          aws.String("#k = :v"),
			ExpressionAttributeNames:  map[string]string{"#k": attr},
			ExpressionAttributeValues: map[string]types.AttributeValue{":v": &types.AttributeValueMemberS{Value: value}},
			ExclusiveStartKey:         lastEvaluatedKey,
		})
		if err != nil {
			return nil, err
		}
		notes = append(notes, r.decodeAll(result.Items, keep)...)

		lastEvaluatedKey = result.LastEvaluatedKey
		if lastEvaluatedKey == nil {
			break
		}
	}
	return notes, nil
}

func (r *noteRepository) decode(av map[string]types.AttributeValue) (*entity.Note, error) {
	var item model.NoteItem
	if err := attributevalue.UnmarshalMap(av, &item); err != nil {
		return nil, err
	}
	return r.mapper.FromItem(&item)
}

// decodeAll skips items that cannot be decoded or fail keep.
func (r *noteRepository) decodeAll(items []map[string]types.AttributeValue, keep func(*entity.Note) bool) []*entity.Note {
	notes := make([]*entity.Note, 0, len(items))
	for _, av := range items {
		note, err := r.decode(av)
		if err != nil {
			r.logger.Warn(noteModule, "Skipping corrupt note item", map[string]interface{}{"error": err})
			continue
		}
		if keep(note) {
			notes = append(notes, note)
		}
	}
	return notes
}

// sortNewestFirst orders by parsed UpdatedAt descending, then by id.
func sortNewestFirst(notes []*entity.Note) {
	sort.SliceStable(notes, func(i, j int) bool {
		a, b := notes[i], notes[j]
		if !a.UpdatedAt.Equal(b.UpdatedAt) {
			return a.UpdatedAt.After(b.UpdatedAt)
		}
		return a.Id < b.Id
	})
}

func window(notes []*entity.Note, offset, limit int) []*entity.Note {
	if offset >= len(notes) {
		return []*entity.Note{}
	}
	end := offset + limit
	if end > len(notes) {
		end = len(notes)
	}
	return notes[offset:end]
}

func stringKey(name, value string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{name: &types.AttributeValueMemberS{Value: value}}
}
