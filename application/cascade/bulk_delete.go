package cascade

import (
	"context"
	"fmt"
	"sync"

	"catalog-backend/application/ports"
	"catalog-backend/domain/catalog"
	"catalog-backend/pkg/errors"
	"catalog-backend/pkg/observability"

	"go.uber.org/zap"
)

// DeleteChunkSize bounds one batch-delete call against the store. The hard
// limit per batch write is 25; 20 leaves headroom.
const DeleteChunkSize = 20

// BulkDeleteReport summarizes one bulk-delete run.
type BulkDeleteReport struct {
	CategoryID      string   `json:"categoryId"`
	DeletedItems    int      `json:"deletedItems"`
	Batches         int      `json:"batches"`
	FailedImageKeys []string `json:"failedImageKeys,omitempty"`
}

// BulkDeleter is the queue-driven consumer that empties a category: it loads
// every item in the category, deletes the rows in concurrent fixed-size
// batches, then removes all collected image keys in batched object-store
// calls. Image cleanup is best-effort; a row-deletion failure is returned so
// the queue redelivers the message.
type BulkDeleter struct {
	items   ports.ItemRepository
	store   ports.ObjectStore
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewBulkDeleter creates a bulk deleter
func NewBulkDeleter(items ports.ItemRepository, store ports.ObjectStore, metrics *observability.Metrics, logger *zap.Logger) *BulkDeleter {
	return &BulkDeleter{
		items:   items,
		store:   store,
		metrics: metrics,
		logger:  logger,
	}
}

// DeleteCategoryItems deletes every item in the category plus their images.
func (d *BulkDeleter) DeleteCategoryItems(ctx context.Context, categoryID string) (BulkDeleteReport, error) {
	report := BulkDeleteReport{CategoryID: categoryID}

	if categoryID == "" {
		return report, errors.NewValidationError("categoryId is required")
	}

	items, err := d.items.ListByCategory(ctx, categoryID)
	if err != nil {
		return report, err
	}
	if len(items) == 0 {
		return report, errors.NewNotFoundError("items with given category")
	}

	d.logger.Info("Bulk delete starting",
		zap.String("categoryId", categoryID),
		zap.Int("itemCount", len(items)),
	)

	// Row deletion: fixed-size chunks, all issued concurrently. Chunks have
	// no ordering dependency between them.
	chunks := chunkItems(items, DeleteChunkSize)
	report.Batches = len(chunks)

	var wg sync.WaitGroup
	chunkErrs := make([]error, len(chunks))
	for i, chunk := range chunks {
		wg.Add(1)
		go func(i int, chunk []catalog.Item) {
			defer wg.Done()
			ids := make([]string, len(chunk))
			for j, item := range chunk {
				ids[j] = item.ID
			}
			chunkErrs[i] = d.items.DeleteBatch(ctx, ids)
		}(i, chunk)
	}
	wg.Wait()

	failedChunks := 0
	for i, chunkErr := range chunkErrs {
		if chunkErr != nil {
			failedChunks++
			d.logger.Error("Batch delete chunk failed",
				zap.String("categoryId", categoryID),
				zap.Int("chunk", i),
				zap.Error(chunkErr),
			)
		} else {
			report.DeletedItems += len(chunks[i])
		}
	}

	d.metrics.Count(ctx, observability.MetricItemsBulkDeleted, float64(report.DeletedItems))
	d.metrics.Count(ctx, observability.MetricBulkDeleteBatches, float64(report.Batches))

	if failedChunks > 0 {
		d.metrics.Count(ctx, observability.MetricBulkDeleteFailures, float64(failedChunks))
		return report, errors.NewDatabaseError("bulk delete",
			fmt.Errorf("%d of %d chunks failed", failedChunks, len(chunks)))
	}

	// Image cleanup: aggregate every key from every deleted item, then chunk
	// by the object store's own max-keys-per-call. No compensation when this
	// fails after the rows are gone; orphaned images are accepted.
	var keys []string
	for _, item := range items {
		keys = append(keys, item.ImageKeys()...)
	}
	for _, chunk := range chunkKeys(keys, d.store.MaxDeleteBatch()) {
		failed, err := d.store.DeleteObjects(ctx, chunk)
		if err != nil {
			d.logger.Error("Image batch delete failed",
				zap.String("categoryId", categoryID),
				zap.Error(err),
			)
			d.metrics.Count(ctx, observability.MetricImageCleanupFailed, float64(len(chunk)))
			continue
		}
		report.FailedImageKeys = append(report.FailedImageKeys, failed...)
	}
	if len(report.FailedImageKeys) > 0 {
		d.metrics.Count(ctx, observability.MetricImageCleanupFailed, float64(len(report.FailedImageKeys)))
		d.logger.Warn("Some image deletions failed",
			zap.String("categoryId", categoryID),
			zap.Strings("failedKeys", report.FailedImageKeys),
		)
	}

	d.logger.Info("Bulk delete completed",
		zap.String("categoryId", categoryID),
		zap.Int("deletedItems", report.DeletedItems),
		zap.Int("batches", report.Batches),
		zap.Int("imageKeys", len(keys)),
	)
	return report, nil
}

// chunkItems splits items into slices of at most size elements.
func chunkItems(items []catalog.Item, size int) [][]catalog.Item {
	if size <= 0 {
		size = 1
	}
	var chunks [][]catalog.Item
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		chunks = append(chunks, items[start:end])
	}
	return chunks
}
