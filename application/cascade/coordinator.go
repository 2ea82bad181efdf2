// Package cascade holds the asynchronous follow-up work that primary deletes
// leave behind: image cleanup after an item delete and the fan-out that
// empties a category. Row mutations stay synchronous; everything here is
// best-effort and never rolls a primary delete back.
package cascade

import (
	"context"

	"catalog-backend/application/ports"
	"catalog-backend/domain/catalog"
	"catalog-backend/domain/events"
	"catalog-backend/pkg/errors"

	"go.uber.org/zap"
)

// Coordinator emits the cascade events. Image-cleanup emission happens after
// the item row is already gone, so its failures are logged and swallowed;
// the bulk-delete request is the operation itself, so its failure is
// returned to the caller.
type Coordinator struct {
	imagesBus ports.EventBus
	bulkBus   ports.EventBus
	logger    *zap.Logger
}

// NewCoordinator creates a cascade coordinator. The two buses are distinct
// because the platform routes each event kind through its own bus.
func NewCoordinator(imagesBus, bulkBus ports.EventBus, logger *zap.Logger) *Coordinator {
	return &Coordinator{
		imagesBus: imagesBus,
		bulkBus:   bulkBus,
		logger:    logger,
	}
}

// ItemDeleted emits the image-cleanup event for a just-deleted item. The
// event always goes out, with an empty mapping when the item had no images,
// so downstream accounting sees every deletion.
func (c *Coordinator) ItemDeleted(ctx context.Context, item catalog.Item) {
	event := events.NewItemImagesToDelete(item.ID, item.ImageKeys())

	if err := c.imagesBus.Publish(ctx, event); err != nil {
		// Best-effort: the row is gone, an orphaned image is accepted.
		c.logger.Error("Failed to publish image cleanup event",
			zap.String("itemId", item.ID),
			zap.Int("imageCount", len(event.Images)),
			zap.Error(err),
		)
		return
	}

	c.logger.Info("Image cleanup event published",
		zap.String("itemId", item.ID),
		zap.Int("imageCount", len(event.Images)),
	)
}

// RequestBulkDelete emits the batch-delete event for a category. The event
// is routed through the durable delete-items queue, so the caller gets a
// "processing" answer immediately and the consumer is retried by the queue
// on failure.
func (c *Coordinator) RequestBulkDelete(ctx context.Context, categoryID string) error {
	if categoryID == "" {
		return errors.NewValidationError("categoryId is required")
	}

	if err := c.bulkBus.Publish(ctx, events.NewBulkDeleteRequested(categoryID)); err != nil {
		return errors.NewExternalError("event bus", err)
	}

	c.logger.Info("Bulk delete requested",
		zap.String("categoryId", categoryID),
	)
	return nil
}
