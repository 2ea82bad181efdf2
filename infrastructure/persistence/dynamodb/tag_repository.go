package dynamodb

import (
	"context"
	"fmt"
	"time"

	"catalog-backend/application/ports"
	"catalog-backend/domain/catalog"
	appErrors "catalog-backend/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// TagRepository implements the TagRepository port using DynamoDB
type TagRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewTagRepository creates a new TagRepository
func NewTagRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.TagRepository {
	return &TagRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// tagRecord represents the DynamoDB item structure for a tag
type tagRecord struct {
	TagID     string `dynamodbav:"tagId"`
	Type      string `dynamodbav:"type"`
	Name      string `dynamodbav:"name"`
	CreatedAt string `dynamodbav:"createdAt"`
	UpdatedAt string `dynamodbav:"updatedAt"`
}

func toTagRecord(t catalog.Tag) tagRecord {
	return tagRecord{
		TagID:     t.ID,
		Type:      catalog.TypeTag,
		Name:      t.Name,
		CreatedAt: t.CreatedAt.Format(time.RFC3339),
		UpdatedAt: t.UpdatedAt.Format(time.RFC3339),
	}
}

func (rec tagRecord) toDomain() catalog.Tag {
	createdAt, _ := time.Parse(time.RFC3339, rec.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339, rec.UpdatedAt)
	return catalog.Tag{
		ID:        rec.TagID,
		Name:      rec.Name,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// Save persists a tag, overwriting any previous version of the row.
func (r *TagRepository) Save(ctx context.Context, tag catalog.Tag) error {
	av, err := attributevalue.MarshalMap(toTagRecord(tag))
	if err != nil {
		return fmt.Errorf("failed to marshal tag: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	if err != nil {
		r.logger.Error("Failed to save tag",
			zap.Error(err),
			zap.String("tagId", tag.ID),
		)
		return mapError("save tag", err)
	}
	return nil
}

// GetByID retrieves a tag by primary key.
func (r *TagRepository) GetByID(ctx context.Context, id string) (catalog.Tag, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"tagId": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return catalog.Tag{}, mapError("get tag", err)
	}
	if out.Item == nil {
		return catalog.Tag{}, appErrors.NewNotFoundError("tag " + id)
	}

	var rec tagRecord
	if err := attributevalue.UnmarshalMap(out.Item, &rec); err != nil {
		return catalog.Tag{}, fmt.Errorf("failed to unmarshal tag: %w", err)
	}
	return rec.toDomain(), nil
}

// FindByName queries the name index. A missing name is not an error.
func (r *TagRepository) FindByName(ctx context.Context, name string) (catalog.Tag, bool, error) {
	expr, err := expression.NewBuilder().
		WithKeyCondition(expression.Key("name").Equal(expression.Value(name))).
		Build()
	if err != nil {
		return catalog.Tag{}, false, fmt.Errorf("failed to build query: %w", err)
	}

	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(indexName),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		Limit:                     aws.Int32(1),
	})
	if err != nil {
		return catalog.Tag{}, false, mapError("find tag by name", err)
	}
	if len(out.Items) == 0 {
		return catalog.Tag{}, false, nil
	}

	var rec tagRecord
	if err := attributevalue.UnmarshalMap(out.Items[0], &rec); err != nil {
		return catalog.Tag{}, false, fmt.Errorf("failed to unmarshal tag: %w", err)
	}
	return rec.toDomain(), true, nil
}

// List returns all tags via the nameSort index, name ascending.
func (r *TagRepository) List(ctx context.Context) ([]catalog.Tag, error) {
	expr, err := expression.NewBuilder().
		WithKeyCondition(expression.Key("type").Equal(expression.Value(catalog.TypeTag))).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	tags := []catalog.Tag{}
	paginator := dynamodb.NewQueryPaginator(r.client, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(indexNameSort),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ScanIndexForward:          aws.Bool(true),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, mapError("list tags", err)
		}

		var records []tagRecord
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &records); err != nil {
			return nil, fmt.Errorf("failed to unmarshal tags: %w", err)
		}
		for _, rec := range records {
			tags = append(tags, rec.toDomain())
		}
	}
	return tags, nil
}

// Delete removes a tag row. Deleting a missing row is not an error.
func (r *TagRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"tagId": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		r.logger.Error("Failed to delete tag",
			zap.Error(err),
			zap.String("tagId", id),
		)
		return mapError("delete tag", err)
	}
	return nil
}
