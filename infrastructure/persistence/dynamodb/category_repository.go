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

// CategoryRepository implements the CategoryRepository port using DynamoDB
type CategoryRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.CategoryRepository {
	return &CategoryRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// categoryRecord represents the DynamoDB item structure for a category
type categoryRecord struct {
	CategoryID  string `dynamodbav:"categoryId"`
	Type        string `dynamodbav:"type"`
	Name        string `dynamodbav:"name"`
	Description string `dynamodbav:"description,omitempty"`
	Image       string `dynamodbav:"image,omitempty"`
	CreatedAt   string `dynamodbav:"createdAt"`
	UpdatedAt   string `dynamodbav:"updatedAt"`
}

func toCategoryRecord(c catalog.Category) categoryRecord {
	return categoryRecord{
		CategoryID:  c.ID,
		Type:        catalog.TypeCategory,
		Name:        c.Name,
		Description: c.Description,
		Image:       c.Image,
		CreatedAt:   c.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   c.UpdatedAt.Format(time.RFC3339),
	}
}

func (rec categoryRecord) toDomain() catalog.Category {
	createdAt, _ := time.Parse(time.RFC3339, rec.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339, rec.UpdatedAt)
	return catalog.Category{
		ID:          rec.CategoryID,
		Name:        rec.Name,
		Description: rec.Description,
		Image:       rec.Image,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}

// Save persists a category, overwriting any previous version of the row.
func (r *CategoryRepository) Save(ctx context.Context, category catalog.Category) error {
	av, err := attributevalue.MarshalMap(toCategoryRecord(category))
	if err != nil {
		return fmt.Errorf("failed to marshal category: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	if err != nil {
		r.logger.Error("Failed to save category",
			zap.Error(err),
			zap.String("categoryId", category.ID),
		)
		return mapError("save category", err)
	}
	return nil
}

// GetByID retrieves a category by primary key.
func (r *CategoryRepository) GetByID(ctx context.Context, id string) (catalog.Category, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"categoryId": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return catalog.Category{}, mapError("get category", err)
	}
	if out.Item == nil {
		return catalog.Category{}, appErrors.NewNotFoundError("category " + id)
	}

	var rec categoryRecord
	if err := attributevalue.UnmarshalMap(out.Item, &rec); err != nil {
		return catalog.Category{}, fmt.Errorf("failed to unmarshal category: %w", err)
	}
	return rec.toDomain(), nil
}

// FindByName queries the name index. A missing name is not an error.
func (r *CategoryRepository) FindByName(ctx context.Context, name string) (catalog.Category, bool, error) {
	expr, err := expression.NewBuilder().
		WithKeyCondition(expression.Key("name").Equal(expression.Value(name))).
		Build()
	if err != nil {
		return catalog.Category{}, false, fmt.Errorf("failed to build query: %w", err)
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
		return catalog.Category{}, false, mapError("find category by name", err)
	}
	if len(out.Items) == 0 {
		return catalog.Category{}, false, nil
	}

	var rec categoryRecord
	if err := attributevalue.UnmarshalMap(out.Items[0], &rec); err != nil {
		return catalog.Category{}, false, fmt.Errorf("failed to unmarshal category: %w", err)
	}
	return rec.toDomain(), true, nil
}

// List returns all categories via the nameSort index, name ascending.
func (r *CategoryRepository) List(ctx context.Context) ([]catalog.Category, error) {
	expr, err := expression.NewBuilder().
		WithKeyCondition(expression.Key("type").Equal(expression.Value(catalog.TypeCategory))).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	categories := []catalog.Category{}
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
			return nil, mapError("list categories", err)
		}

		var records []categoryRecord
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &records); err != nil {
			return nil, fmt.Errorf("failed to unmarshal categories: %w", err)
		}
		for _, rec := range records {
			categories = append(categories, rec.toDomain())
		}
	}
	return categories, nil
}

// Delete removes a category row. Deleting a missing row is not an error.
func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"categoryId": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		r.logger.Error("Failed to delete category",
			zap.Error(err),
			zap.String("categoryId", id),
		)
		return mapError("delete category", err)
	}
	return nil
}
