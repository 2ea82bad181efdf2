package cascade

import (
	"context"
	"testing"

	"catalog-backend/domain/catalog"
	"catalog-backend/domain/events"
	"catalog-backend/pkg/errors"
	"catalog-backend/tests/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func TestCoordinator_ItemDeleted_AlwaysEmitsEvenWithoutImages(t *testing.T) {
	ctx := context.Background()
	imagesBus := new(mocks.MockEventBus)
	coordinator := NewCoordinator(imagesBus, new(mocks.MockEventBus), zap.NewNop())

	imagesBus.On("Publish", ctx, mock.MatchedBy(func(event events.DomainEvent) bool {
		cleanup, ok := event.(events.ItemImagesToDelete)
		return ok && len(cleanup.Images) == 0 && cleanup.GetAggregateID() == "item-1"
	})).Return(nil)

	coordinator.ItemDeleted(ctx, catalog.Item{ID: "item-1"})

	imagesBus.AssertExpectations(t)
}

func TestCoordinator_ItemDeleted_MapsMainImageToSlotZero(t *testing.T) {
	ctx := context.Background()
	imagesBus := new(mocks.MockEventBus)
	coordinator := NewCoordinator(imagesBus, new(mocks.MockEventBus), zap.NewNop())

	imagesBus.On("Publish", ctx, mock.MatchedBy(func(event events.DomainEvent) bool {
		cleanup, ok := event.(events.ItemImagesToDelete)
		return ok && cleanup.Images["image0"] == "main.png" && cleanup.Images["image1"] == "extra.png"
	})).Return(nil)

	coordinator.ItemDeleted(ctx, catalog.Item{
		ID:        "item-1",
		MainImage: "https://bucket.s3.amazonaws.com/main.png",
		Images:    []string{"https://bucket.s3.amazonaws.com/extra.png"},
	})

	imagesBus.AssertExpectations(t)
}

func TestCoordinator_RequestBulkDelete_PublishFailureIsReturned(t *testing.T) {
	ctx := context.Background()
	bulkBus := new(mocks.MockEventBus)
	coordinator := NewCoordinator(new(mocks.MockEventBus), bulkBus, zap.NewNop())

	bulkBus.On("Publish", ctx, mock.Anything).Return(assert.AnError)

	err := coordinator.RequestBulkDelete(ctx, "cat-1")

	assert.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeExternal))
}

func TestCoordinator_RequestBulkDelete_MissingCategoryRejected(t *testing.T) {
	ctx := context.Background()
	bulkBus := new(mocks.MockEventBus)
	coordinator := NewCoordinator(new(mocks.MockEventBus), bulkBus, zap.NewNop())

	err := coordinator.RequestBulkDelete(ctx, "")

	assert.Error(t, err)
	assert.True(t, errors.IsValidation(err))
	bulkBus.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}
