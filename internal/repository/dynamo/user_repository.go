package dynamo

import (
	"context"
	"fmt"

	"simple-notes-be/internal/entity"
	"simple-notes-be/internal/mapper"
	"simple-notes-be/internal/model"
	"simple-notes-be/internal/pkg/apperror"
	"simple-notes-be/internal/pkg/logger"
	"simple-notes-be/internal/repository/contract"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

const userModule = "DynamoUserRepository"

type userRepository struct {
	client API
	table  string
	mapper *mapper.UserMapper
	logger logger.ILogger
}

func NewUserRepository(client API, table string, log logger.ILogger) contract.UserRepository {
	if table == "" {
		log.Warn(userModule, "Users table is not configured; user operations will fail", nil)
	}
	return &userRepository{
		client: client,
		table:  table,
		mapper: mapper.NewUserMapper(),
		logger: log,
	}
}

func (r *userRepository) Save(ctx context.Context, user *entity.User) error {
	if r.table == "" {
		return apperror.StorageUnavailable("users table is not configured", nil)
	}

	item, err := attributevalue.MarshalMap(r.mapper.ToItem(user))
	if err != nil {
		return fmt.Errorf("marshal user %s: %w", user.UserId, err)
	}

	r.logger.Debug(userModule, "Saving user", map[string]interface{}{"user_id": user.UserId})
	if _, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item:      item,
	}); err != nil {
		return apperror.StorageUnavailable("failed to save user", err)
	}
	return nil
}

func (r *userRepository) FindByID(ctx context.Context, userId string) (*entity.User, error) {
	if r.table == "" {
		return nil, apperror.StorageUnavailable("users table is not configured", nil)
	}

	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key:       stringKey("user_id", userId),
	})
	if err != nil {
		return nil, apperror.StorageUnavailable("failed to get user", err)
	}
	if result.Item == nil {
		return nil, nil
	}

	var item model.UserItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, fmt.Errorf("decode user %s: %w", userId, err)
	}
	user, err := r.mapper.FromItem(&item)
	if err != nil {
		return nil, fmt.Errorf("decode user %s: %w", userId, err)
	}
	return user, nil
}
