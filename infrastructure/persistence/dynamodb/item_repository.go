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
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// batchWriteMaxAttempts bounds the unprocessed-items retry loop.
const batchWriteMaxAttempts = 3

// ItemRepository implements the ItemRepository port using DynamoDB
type ItemRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewItemRepository creates a new ItemRepository
func NewItemRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.ItemRepository {
	return &ItemRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// itemRecord represents the DynamoDB item structure for a catalog item.
// Price is stored as a string to keep exact decimal representation.
type itemRecord struct {
	ItemID      string   `dynamodbav:"itemId"`
	Type        string   `dynamodbav:"type"`
	Name        string   `dynamodbav:"name"`
	SearchName  string   `dynamodbav:"searchName"`
	Description string   `dynamodbav:"description,omitempty"`
	Category    string   `dynamodbav:"category"`
	Tags        []string `dynamodbav:"tags"`
	Price       string   `dynamodbav:"price"`
	Quantity    int      `dynamodbav:"quantity"`
	MainImage   string   `dynamodbav:"mainImage,omitempty"`
	Images      []string `dynamodbav:"images"`
	CreatedAt   string   `dynamodbav:"createdAt"`
	UpdatedAt   string   `dynamodbav:"updatedAt"`
	CreatedBy   string   `dynamodbav:"createdBy"`
}

func toItemRecord(i catalog.Item) itemRecord {
	return itemRecord{
		ItemID:      i.ID,
		Type:        catalog.TypeItem,
		Name:        i.Name,
		SearchName:  i.SearchName,
		Description: i.Description,
		Category:    i.CategoryID,
		Tags:        i.TagIDs,
		Price:       i.Price.String(),
		Quantity:    i.Quantity,
		MainImage:   i.MainImage,
		Images:      i.Images,
		CreatedAt:   i.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   i.UpdatedAt.Format(time.RFC3339),
		CreatedBy:   i.CreatedBy,
	}
}

func (rec itemRecord) toDomain() catalog.Item {
	createdAt, _ := time.Parse(time.RFC3339, rec.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339, rec.UpdatedAt)
	price, err := decimal.NewFromString(rec.Price)
	if err != nil {
		price = decimal.Zero
	}
	tags := rec.Tags
	if tags == nil {
		tags = []string{}
	}
	images := rec.Images
	if images == nil {
		images = []string{}
	}
	return catalog.Item{
		ID:          rec.ItemID,
		Name:        rec.Name,
		SearchName:  rec.SearchName,
		Description: rec.Description,
		CategoryID:  rec.Category,
		TagIDs:      tags,
		Price:       price,
		Quantity:    rec.Quantity,
		MainImage:   rec.MainImage,
		Images:      images,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
		CreatedBy:   rec.CreatedBy,
	}
}

// Save persists an item, overwriting any previous version of the row.
func (r *ItemRepository) Save(ctx context.Context, item catalog.Item) error {
	av, err := attributevalue.MarshalMap(toItemRecord(item))
	if err != nil {
		return fmt.Errorf("failed to marshal item: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	if err != nil {
		r.logger.Error("Failed to save item",
			zap.Error(err),
			zap.String("itemId", item.ID),
		)
		return mapError("save item", err)
	}
	return nil
}

// GetByID retrieves an item by primary key.
func (r *ItemRepository) GetByID(ctx context.Context, id string) (catalog.Item, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"itemId": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return catalog.Item{}, mapError("get item", err)
	}
	if out.Item == nil {
		return catalog.Item{}, appErrors.NewNotFoundError("item " + id)
	}

	var rec itemRecord
	if err := attributevalue.UnmarshalMap(out.Item, &rec); err != nil {
		return catalog.Item{}, fmt.Errorf("failed to unmarshal item: %w", err)
	}
	return rec.toDomain(), nil
}

// Delete removes an item row. Deleting a missing row is not an error.
func (r *ItemRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"itemId": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		r.logger.Error("Failed to delete item",
			zap.Error(err),
			zap.String("itemId", id),
		)
		return mapError("delete item", err)
	}
	return nil
}

// List returns all items via the nameSort index, name ascending.
func (r *ItemRepository) List(ctx context.Context) ([]catalog.Item, error) {
	expr, err := expression.NewBuilder().
		WithKeyCondition(expression.Key("type").Equal(expression.Value(catalog.TypeItem))).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	return r.queryItems(ctx, "list items", indexNameSort, expr, true)
}

// ListByCategory returns a category's items via the categorySort index.
func (r *ItemRepository) ListByCategory(ctx context.Context, categoryID string) ([]catalog.Item, error) {
	expr, err := expression.NewBuilder().
		WithKeyCondition(expression.Key("category").Equal(expression.Value(categoryID))).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	return r.queryItems(ctx, "list items by category", indexCategorySort, expr, true)
}

// ListByTag filters the all-items partition on tag membership. This reads
// every item of the type; acceptable at catalog scale, revisit if items grow
// past a few thousand.
func (r *ItemRepository) ListByTag(ctx context.Context, tagID string) ([]catalog.Item, error) {
	expr, err := expression.NewBuilder().
		WithKeyCondition(expression.Key("type").Equal(expression.Value(catalog.TypeItem))).
		WithFilter(expression.Contains(expression.Name("tags"), tagID)).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	return r.queryItems(ctx, "list items by tag", indexNameSort, expr, true)
}

// ListByCategoryAndTag intersects the category partition with a
// tag-membership filter.
func (r *ItemRepository) ListByCategoryAndTag(ctx context.Context, categoryID, tagID string) ([]catalog.Item, error) {
	expr, err := expression.NewBuilder().
		WithKeyCondition(expression.Key("category").Equal(expression.Value(categoryID))).
		WithFilter(expression.Contains(expression.Name("tags"), tagID)).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	return r.queryItems(ctx, "list items by category and tag", indexCategorySort, expr, true)
}

// ListByUpdateTime returns items via the dateSort index. Empty categoryID and
// tagID mean no filter.
func (r *ItemRepository) ListByUpdateTime(ctx context.Context, dir ports.SortDirection, categoryID, tagID string) ([]catalog.Item, error) {
	builder := expression.NewBuilder().
		WithKeyCondition(expression.Key("type").Equal(expression.Value(catalog.TypeItem)))

	var filters []expression.ConditionBuilder
	if categoryID != "" {
		filters = append(filters, expression.Name("category").Equal(expression.Value(categoryID)))
	}
	if tagID != "" {
		filters = append(filters, expression.Contains(expression.Name("tags"), tagID))
	}
	switch len(filters) {
	case 1:
		builder = builder.WithFilter(filters[0])
	case 2:
		builder = builder.WithFilter(expression.And(filters[0], filters[1]))
	}

	expr, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	return r.queryItems(ctx, "list items by update time", indexDateSort, expr, dir == ports.SortAscending)
}

// SearchByName filters the all-items partition on a normalized substring.
func (r *ItemRepository) SearchByName(ctx context.Context, substring string) ([]catalog.Item, error) {
	expr, err := expression.NewBuilder().
		WithKeyCondition(expression.Key("type").Equal(expression.Value(catalog.TypeItem))).
		WithFilter(expression.Contains(expression.Name("searchName"), substring)).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	return r.queryItems(ctx, "search items by name", indexNameSort, expr, true)
}

// DeleteBatch removes up to maxBatchWriteItems rows in one BatchWriteItem
// call, retrying unprocessed keys. Callers chunk to the limit.
func (r *ItemRepository) DeleteBatch(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	if len(ids) > maxBatchWriteItems {
		return appErrors.NewValidationError(fmt.Sprintf("batch of %d exceeds the write limit of %d", len(ids), maxBatchWriteItems))
	}

	requests := make([]types.WriteRequest, 0, len(ids))
	for _, id := range ids {
		requests = append(requests, types.WriteRequest{
			DeleteRequest: &types.DeleteRequest{
				Key: map[string]types.AttributeValue{
					"itemId": &types.AttributeValueMemberS{Value: id},
				},
			},
		})
	}

	pending := map[string][]types.WriteRequest{r.tableName: requests}
	for attempt := 1; attempt <= batchWriteMaxAttempts; attempt++ {
		out, err := r.client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
			RequestItems: pending,
		})
		if err != nil {
			return mapError("batch delete items", err)
		}
		if len(out.UnprocessedItems[r.tableName]) == 0 {
			return nil
		}

		pending = out.UnprocessedItems
		r.logger.Warn("Retrying unprocessed batch deletes",
			zap.Int("remaining", len(pending[r.tableName])),
			zap.Int("attempt", attempt),
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * 100 * time.Millisecond):
		}
	}
	return appErrors.NewDatabaseError("batch delete items", fmt.Errorf("%d deletes still unprocessed after %d attempts", len(pending[r.tableName]), batchWriteMaxAttempts))
}

// queryItems runs a paginated index query and maps the rows to domain items.
func (r *ItemRepository) queryItems(ctx context.Context, operation, index string, expr expression.Expression, ascending bool) ([]catalog.Item, error) {
	items := []catalog.Item{}
	paginator := dynamodb.NewQueryPaginator(r.client, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(index),
		KeyConditionExpression:    expr.KeyCondition(),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ScanIndexForward:          aws.Bool(ascending),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, mapError(operation, err)
		}

		var records []itemRecord
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &records); err != nil {
			return nil, fmt.Errorf("failed to unmarshal items: %w", err)
		}
		for _, rec := range records {
			items = append(items, rec.toDomain())
		}
	}
	return items, nil
}
