package ports

import (
	"context"
	"time"
)

// Cache is a read-through cache for the small, hot list reads (categories,
// tags). Implementations must treat every failure as a miss; the store is
// always the source of truth.
type Cache interface {
	Get(ctx context.Context, key string) (value []byte, ok bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	Delete(ctx context.Context, key string)
}
