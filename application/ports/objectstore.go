package ports

import (
	"context"
	"time"
)

// ObjectStore abstracts the image bucket. The application never proxies
// image bytes; uploads and downloads go through presigned URLs.
type ObjectStore interface {
	// DeleteObjects removes up to MaxDeleteBatch keys in one call. Keys the
	// store failed to delete are returned; a partial failure is not an error.
	DeleteObjects(ctx context.Context, keys []string) (failed []string, err error)

	// DeleteObject removes a single key, used for synchronous best-effort
	// cleanup of replaced images.
	DeleteObject(ctx context.Context, key string) error

	// MaxDeleteBatch is the store's maximum keys per batch-delete call.
	MaxDeleteBatch() int

	// PresignUpload returns a time-limited PUT URL for the key.
	PresignUpload(ctx context.Context, key, contentType string, expires time.Duration) (string, error)

	// PresignDownload returns a time-limited GET URL for the key.
	PresignDownload(ctx context.Context, key string, expires time.Duration) (string, error)
}
