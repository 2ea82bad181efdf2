//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"catalog-backend/infrastructure/config"

	"github.com/google/wire"
)

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideAWSConfig,
	ProvideDynamoDBClient,
	ProvideEventBridgeClient,
	ProvideS3Client,
	ProvideCloudWatchClient,
	ProvideCategoryRepository,
	ProvideTagRepository,
	ProvideItemRepository,
	ProvideObjectStore,
	ProvideCache,
	ProvideMetrics,
	ProvideCoordinator,
	ProvideIntegrityGuard,
	ProvideCategoryService,
	ProvideTagService,
	ProvideItemService,
	ProvideImageService,
	ProvideItemReader,
	ProvideImageCleaner,
	ProvideBulkDeleter,
	ProvideErrorHandler,
	ProvideJWTValidator,
	ProvideRateLimiter,
	ProvideRouter,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil // Wire will replace this
}
