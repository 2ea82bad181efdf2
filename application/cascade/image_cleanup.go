package cascade

import (
	"context"

	"catalog-backend/application/ports"
	"catalog-backend/domain/events"
	"catalog-backend/pkg/observability"

	"go.uber.org/zap"
)

// ImageCleaner is the consumer side of the image-cleanup cascade. It deletes
// every key listed in an ItemImagesToDelete event, chunking by the object
// store's max-keys-per-call. Keys the store reports as failed are returned
// for the caller to surface; they are not retried here.
type ImageCleaner struct {
	store   ports.ObjectStore
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewImageCleaner creates an image cleaner
func NewImageCleaner(store ports.ObjectStore, metrics *observability.Metrics, logger *zap.Logger) *ImageCleaner {
	return &ImageCleaner{
		store:   store,
		metrics: metrics,
		logger:  logger,
	}
}

// Clean deletes all keys carried by the event and returns the keys that
// failed. A transport or store outage is returned as err; per-key failures
// are not.
func (c *ImageCleaner) Clean(ctx context.Context, event events.ItemImagesToDelete) ([]string, error) {
	keys := event.Keys()
	if len(keys) == 0 {
		c.logger.Info("No images to delete",
			zap.String("itemId", event.ItemID),
		)
		return nil, nil
	}

	var failed []string
	for _, chunk := range chunkKeys(keys, c.store.MaxDeleteBatch()) {
		chunkFailed, err := c.store.DeleteObjects(ctx, chunk)
		if err != nil {
			return failed, err
		}
		failed = append(failed, chunkFailed...)
	}

	c.metrics.Count(ctx, observability.MetricImagesDeleted, float64(len(keys)-len(failed)))
	if len(failed) > 0 {
		c.metrics.Count(ctx, observability.MetricImageCleanupFailed, float64(len(failed)))
		c.logger.Warn("Some image deletions failed",
			zap.String("itemId", event.ItemID),
			zap.Strings("failedKeys", failed),
		)
	}

	c.logger.Info("Image cleanup completed",
		zap.String("itemId", event.ItemID),
		zap.Int("deleted", len(keys)-len(failed)),
		zap.Int("failed", len(failed)),
	)
	return failed, nil
}

// chunkKeys splits keys into slices of at most size elements.
func chunkKeys(keys []string, size int) [][]string {
	if size <= 0 {
		size = 1
	}
	var chunks [][]string
	for start := 0; start < len(keys); start += size {
		end := start + size
		if end > len(keys) {
			end = len(keys)
		}
		chunks = append(chunks, keys[start:end])
	}
	return chunks
}
