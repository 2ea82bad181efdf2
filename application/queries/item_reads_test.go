package queries

import (
	"context"
	"testing"

	"catalog-backend/application/ports"
	"catalog-backend/domain/catalog"
	"catalog-backend/pkg/errors"
	"catalog-backend/tests/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func newItemReaderForTest() (*ItemReader, *mocks.MockItemRepository, *mocks.MockCategoryRepository, *mocks.MockTagRepository) {
	itemRepo := new(mocks.MockItemRepository)
	categoryRepo := new(mocks.MockCategoryRepository)
	tagRepo := new(mocks.MockTagRepository)
	reader := NewItemReader(itemRepo, categoryRepo, tagRepo, zap.NewNop())
	return reader, itemRepo, categoryRepo, tagRepo
}

func TestItemReader_ItemIDWinsOverEveryOtherFilter(t *testing.T) {
	ctx := context.Background()
	reader, itemRepo, categoryRepo, tagRepo := newItemReaderForTest()

	item := catalog.Item{ID: "item-1", CategoryID: "cat-1", TagIDs: []string{"tag-1"}}
	itemRepo.On("GetByID", ctx, "item-1").Return(item, nil)
	categoryRepo.On("GetByID", ctx, "cat-1").Return(catalog.Category{ID: "cat-1", Name: "Guitars"}, nil)
	tagRepo.On("GetByID", ctx, "tag-1").Return(catalog.Tag{ID: "tag-1", Name: "vintage"}, nil)

	result, err := reader.Read(ctx, ItemReadRequest{
		ItemID:     "item-1",
		NameSearch: "strat",
		Order:      OrderLatest,
		Category:   "cat-2",
		Tag:        "tag-2",
	})

	assert.NoError(t, err)
	assert.NotNil(t, result.Item)
	assert.Equal(t, "Guitars", result.Item.Category.Name)
	assert.Len(t, result.Item.Tags, 1)
	itemRepo.AssertNotCalled(t, "SearchByName", mock.Anything, mock.Anything)
	itemRepo.AssertNotCalled(t, "ListByUpdateTime", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestItemReader_NameSearchIsNormalizedAndWinsOverOrder(t *testing.T) {
	ctx := context.Background()
	reader, itemRepo, _, _ := newItemReaderForTest()

	itemRepo.On("SearchByName", ctx, "strat").Return([]catalog.Item{{ID: "item-1"}}, nil)

	result, err := reader.Read(ctx, ItemReadRequest{NameSearch: "STRAT", Order: OrderLatest})

	assert.NoError(t, err)
	assert.Len(t, result.Items, 1)
	itemRepo.AssertNotCalled(t, "ListByUpdateTime", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestItemReader_OrderCarriesCategoryAndTagAsFilters(t *testing.T) {
	ctx := context.Background()
	reader, itemRepo, _, _ := newItemReaderForTest()

	itemRepo.On("ListByUpdateTime", ctx, ports.SortDescending, "cat-1", "tag-1").
		Return([]catalog.Item{{ID: "item-2"}, {ID: "item-1"}}, nil)

	result, err := reader.Read(ctx, ItemReadRequest{Order: OrderLatest, Category: "cat-1", Tag: "tag-1"})

	assert.NoError(t, err)
	assert.Len(t, result.Items, 2)
	itemRepo.AssertNotCalled(t, "ListByCategoryAndTag", mock.Anything, mock.Anything, mock.Anything)
}

func TestItemReader_OrderOldestSortsAscending(t *testing.T) {
	ctx := context.Background()
	reader, itemRepo, _, _ := newItemReaderForTest()

	itemRepo.On("ListByUpdateTime", ctx, ports.SortAscending, "", "").Return([]catalog.Item{}, nil)

	_, err := reader.Read(ctx, ItemReadRequest{Order: OrderOldest})

	assert.NoError(t, err)
	itemRepo.AssertExpectations(t)
}

func TestItemReader_UnknownOrderRejected(t *testing.T) {
	ctx := context.Background()
	reader, itemRepo, _, _ := newItemReaderForTest()

	_, err := reader.Read(ctx, ItemReadRequest{Order: "newest"})

	assert.Error(t, err)
	assert.True(t, errors.IsValidation(err))
	itemRepo.AssertNotCalled(t, "ListByUpdateTime", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestItemReader_CategoryAndTagUsesCombinedPath(t *testing.T) {
	ctx := context.Background()
	reader, itemRepo, _, _ := newItemReaderForTest()

	itemRepo.On("ListByCategoryAndTag", ctx, "cat-1", "tag-1").Return([]catalog.Item{{ID: "item-1"}}, nil)

	result, err := reader.Read(ctx, ItemReadRequest{Category: "cat-1", Tag: "tag-1"})

	assert.NoError(t, err)
	assert.Len(t, result.Items, 1)
	itemRepo.AssertNotCalled(t, "ListByCategory", mock.Anything, mock.Anything)
	itemRepo.AssertNotCalled(t, "ListByTag", mock.Anything, mock.Anything)
}

func TestItemReader_NoFiltersListsEverything(t *testing.T) {
	ctx := context.Background()
	reader, itemRepo, _, _ := newItemReaderForTest()

	itemRepo.On("List", ctx).Return(nil, nil)

	result, err := reader.Read(ctx, ItemReadRequest{})

	assert.NoError(t, err)
	assert.NotNil(t, result.Items)
	assert.Empty(t, result.Items)
}

func TestItemReader_SingleRead_MissingTagReferenceIsNotFound(t *testing.T) {
	ctx := context.Background()
	reader, itemRepo, categoryRepo, tagRepo := newItemReaderForTest()

	item := catalog.Item{ID: "item-1", CategoryID: "cat-1", TagIDs: []string{"tag-gone"}}
	itemRepo.On("GetByID", ctx, "item-1").Return(item, nil)
	categoryRepo.On("GetByID", ctx, "cat-1").Return(catalog.Category{ID: "cat-1"}, nil)
	tagRepo.On("GetByID", ctx, "tag-gone").Return(catalog.Tag{}, errors.NewNotFoundError("tag tag-gone"))

	_, err := reader.Read(ctx, ItemReadRequest{ItemID: "item-1"})

	assert.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
	assert.Contains(t, err.Error(), "tag-gone")
}
