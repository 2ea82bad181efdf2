package cascade

import (
	"context"
	"fmt"
	"testing"

	"catalog-backend/domain/catalog"
	"catalog-backend/pkg/errors"
	"catalog-backend/tests/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func makeItems(n int) []catalog.Item {
	items := make([]catalog.Item, n)
	for i := range items {
		items[i] = catalog.Item{
			ID:        fmt.Sprintf("item-%d", i),
			MainImage: fmt.Sprintf("https://bucket.s3.amazonaws.com/image-%d.png", i),
		}
	}
	return items
}

func TestBulkDeleter_ChunksRowsByTwenty(t *testing.T) {
	ctx := context.Background()
	itemRepo := new(mocks.MockItemRepository)
	store := new(mocks.MockObjectStore)
	deleter := NewBulkDeleter(itemRepo, store, nil, zap.NewNop())

	items := makeItems(45)
	itemRepo.On("ListByCategory", ctx, "cat-1").Return(items, nil)
	itemRepo.On("DeleteBatch", ctx, mock.MatchedBy(func(ids []string) bool {
		return len(ids) > 0 && len(ids) <= DeleteChunkSize
	})).Return(nil)
	store.On("MaxDeleteBatch").Return(1000)
	store.On("DeleteObjects", ctx, mock.MatchedBy(func(keys []string) bool {
		return len(keys) == 45
	})).Return([]string{}, nil)

	report, err := deleter.DeleteCategoryItems(ctx, "cat-1")

	assert.NoError(t, err)
	assert.Equal(t, 45, report.DeletedItems)
	assert.Equal(t, 3, report.Batches)
	itemRepo.AssertNumberOfCalls(t, "DeleteBatch", 3)
	store.AssertExpectations(t)
}

func TestBulkDeleter_EmptyCategoryIsNotFound(t *testing.T) {
	ctx := context.Background()
	itemRepo := new(mocks.MockItemRepository)
	store := new(mocks.MockObjectStore)
	deleter := NewBulkDeleter(itemRepo, store, nil, zap.NewNop())

	itemRepo.On("ListByCategory", ctx, "cat-1").Return([]catalog.Item{}, nil)

	_, err := deleter.DeleteCategoryItems(ctx, "cat-1")

	assert.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
	itemRepo.AssertNotCalled(t, "DeleteBatch", mock.Anything, mock.Anything)
}

func TestBulkDeleter_MissingCategoryIDRejected(t *testing.T) {
	ctx := context.Background()
	itemRepo := new(mocks.MockItemRepository)
	deleter := NewBulkDeleter(itemRepo, new(mocks.MockObjectStore), nil, zap.NewNop())

	_, err := deleter.DeleteCategoryItems(ctx, "")

	assert.Error(t, err)
	assert.True(t, errors.IsValidation(err))
	itemRepo.AssertNotCalled(t, "ListByCategory", mock.Anything, mock.Anything)
}

func TestBulkDeleter_ChunkFailureReturnsErrorForRedelivery(t *testing.T) {
	ctx := context.Background()
	itemRepo := new(mocks.MockItemRepository)
	store := new(mocks.MockObjectStore)
	deleter := NewBulkDeleter(itemRepo, store, nil, zap.NewNop())

	items := makeItems(25)
	itemRepo.On("ListByCategory", ctx, "cat-1").Return(items, nil)
	itemRepo.On("DeleteBatch", ctx, mock.MatchedBy(func(ids []string) bool {
		return len(ids) == DeleteChunkSize
	})).Return(errors.NewDatabaseError("BatchWriteItem", assert.AnError))
	itemRepo.On("DeleteBatch", ctx, mock.MatchedBy(func(ids []string) bool {
		return len(ids) == 5
	})).Return(nil)

	report, err := deleter.DeleteCategoryItems(ctx, "cat-1")

	assert.Error(t, err)
	assert.True(t, errors.IsDatabase(err))
	assert.Equal(t, 5, report.DeletedItems)
	store.AssertNotCalled(t, "DeleteObjects", mock.Anything, mock.Anything)
}

func TestBulkDeleter_ImageDeleteOutageDoesNotFailRun(t *testing.T) {
	ctx := context.Background()
	itemRepo := new(mocks.MockItemRepository)
	store := new(mocks.MockObjectStore)
	deleter := NewBulkDeleter(itemRepo, store, nil, zap.NewNop())

	items := makeItems(3)
	itemRepo.On("ListByCategory", ctx, "cat-1").Return(items, nil)
	itemRepo.On("DeleteBatch", ctx, mock.Anything).Return(nil)
	store.On("MaxDeleteBatch").Return(1000)
	store.On("DeleteObjects", ctx, mock.Anything).Return(nil, assert.AnError)

	report, err := deleter.DeleteCategoryItems(ctx, "cat-1")

	assert.NoError(t, err)
	assert.Equal(t, 3, report.DeletedItems)
}
