package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"simple-notes-be/internal/config"
	"simple-notes-be/internal/pkg/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// NewDynamoClient builds a DynamoDB client from the app settings. Static
// credentials and a custom endpoint (DynamoDB Local, LocalStack) are used when
// set; otherwise the default AWS credential chain applies.
func NewDynamoClient(ctx context.Context, cfg config.DynamoConfig) (*dynamodb.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.EndpointURL != "" {
			o.BaseEndpoint = aws.String(cfg.EndpointURL)
		}
	}), nil
}

// TableAdmin is the part of the DynamoDB client needed to create tables.
type TableAdmin interface {
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
	CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
}

// EnsureTables creates the notes and users tables, with whichever indexes are
// configured, when they do not exist yet.
func EnsureTables(ctx context.Context, admin TableAdmin, cfg config.DynamoConfig, log logger.ILogger) error {
	for _, input := range tableDefinitions(cfg) {
		name := aws.ToString(input.TableName)

		_, err := admin.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: input.TableName})
		if err == nil {
			continue
		}
		var notFound *types.ResourceNotFoundException
		if !errors.As(err, &notFound) {
			return fmt.Errorf("describe table %s: %w", name, err)
		}

		log.Info("Database", "Creating DynamoDB table", map[string]interface{}{"table": name})
		if _, err := admin.CreateTable(ctx, input); err != nil {
			return fmt.Errorf("create table %s: %w", name, err)
		}
		waiter := dynamodb.NewTableExistsWaiter(admin)
		if err := waiter.Wait(ctx, &dynamodb.DescribeTableInput{TableName: input.TableName}, 30*time.Second); err != nil {
			return fmt.Errorf("wait for table %s: %w", name, err)
		}
	}
	return nil
}

func tableDefinitions(cfg config.DynamoConfig) []*dynamodb.CreateTableInput {
	var defs []*dynamodb.CreateTableInput

	if cfg.NotesTable != "" {
		notes := &dynamodb.CreateTableInput{
			TableName:   aws.String(cfg.NotesTable),
			BillingMode: types.BillingModePayPerRequest,
			KeySchema: []types.KeySchemaElement{
				{AttributeName: aws.String("id"), KeyType: types.KeyTypeHash},
			},
			AttributeDefinitions: []types.AttributeDefinition{
				{AttributeName: aws.String("id"), AttributeType: types.ScalarAttributeTypeS},
			},
		}
		indexed := false
		for _, idx := range []struct{ name, hashKey string }{
			{cfg.UserIndex, "user_id"},
			{cfg.PublicIndex, "privacy"},
		} {
			if idx.name == "" {
				continue
			}
			indexed = true
			notes.AttributeDefinitions = append(notes.AttributeDefinitions, types.AttributeDefinition{
				AttributeName: aws.String(idx.hashKey), AttributeType: types.ScalarAttributeTypeS,
			})
			notes.GlobalSecondaryIndexes = append(notes.GlobalSecondaryIndexes, types.GlobalSecondaryIndex{
				IndexName: aws.String(idx.name),
				KeySchema: []types.KeySchemaElement{
					{AttributeName: aws.String(idx.hashKey), KeyType: types.KeyTypeHash},
					{AttributeName: aws.String("updated_at"), KeyType: types.KeyTypeRange},
				},
				Projection: &types.Projection{ProjectionType: types.ProjectionTypeAll},
			})
		}
		if indexed {
			notes.AttributeDefinitions = append(notes.AttributeDefinitions, types.AttributeDefinition{
				AttributeName: aws.String("updated_at"), AttributeType: types.ScalarAttributeTypeS,
			})
		}
		defs = append(defs, notes)
	}

	if cfg.UsersTable != "" {
		defs = append(defs, &dynamodb.CreateTableInput{
			TableName:   aws.String(cfg.UsersTable),
			BillingMode: types.BillingModePayPerRequest,
			KeySchema: []types.KeySchemaElement{
				{AttributeName: aws.String("user_id"), KeyType: types.KeyTypeHash},
			},
			AttributeDefinitions: []types.AttributeDefinition{
				{AttributeName: aws.String("user_id"), AttributeType: types.ScalarAttributeTypeS},
			},
		})
	}
	return defs
}
