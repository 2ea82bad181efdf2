package di

import (
	"context"
	"time"

	"catalog-backend/application/cascade"
	"catalog-backend/application/ports"
	"catalog-backend/application/queries"
	"catalog-backend/application/services"
	"catalog-backend/infrastructure/cache"
	"catalog-backend/infrastructure/config"
	"catalog-backend/infrastructure/messaging/eventbridge"
	s3store "catalog-backend/infrastructure/objectstore/s3"
	dynamorepo "catalog-backend/infrastructure/persistence/dynamodb"
	"catalog-backend/interfaces/http/rest"
	"catalog-backend/interfaces/http/rest/handlers"
	"catalog-backend/pkg/auth"
	"catalog-backend/pkg/errors"
	"catalog-backend/pkg/observability"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscloudwatch "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

// metricsNamespace groups the cascade counters in CloudWatch.
const metricsNamespace = "Catalog"

// Container holds all application dependencies
type Container struct {
	Config          *config.Config
	Logger          *zap.Logger
	CategoryService *services.CategoryService
	TagService      *services.TagService
	ItemService     *services.ItemService
	ImageService    *services.ImageService
	ItemReader      *queries.ItemReader
	Coordinator     *cascade.Coordinator
	ImageCleaner    *cascade.ImageCleaner
	BulkDeleter     *cascade.BulkDeleter
	ErrorHandler    *errors.ErrorHandler
	Router          *rest.Router
}

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideAWSConfig creates AWS configuration, instrumented for tracing when
// the flag is set.
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
	if err != nil {
		return aws.Config{}, err
	}
	if cfg.EnableTracing {
		observability.InstrumentAWSClients(&awsCfg)
	}
	return awsCfg, nil
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideEventBridgeClient creates an EventBridge client
func ProvideEventBridgeClient(awsCfg aws.Config) *awseventbridge.Client {
	return awseventbridge.NewFromConfig(awsCfg)
}

// ProvideS3Client creates an S3 client
func ProvideS3Client(awsCfg aws.Config) *awss3.Client {
	return awss3.NewFromConfig(awsCfg)
}

// ProvideCloudWatchClient creates a CloudWatch client
func ProvideCloudWatchClient(awsCfg aws.Config) *awscloudwatch.Client {
	return awscloudwatch.NewFromConfig(awsCfg)
}

// ProvideCategoryRepository creates a category repository
func ProvideCategoryRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.CategoryRepository {
	return dynamorepo.NewCategoryRepository(client, cfg.CategoriesTable, logger)
}

// ProvideTagRepository creates a tag repository
func ProvideTagRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.TagRepository {
	return dynamorepo.NewTagRepository(client, cfg.TagsTable, logger)
}

// ProvideItemRepository creates an item repository
func ProvideItemRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.ItemRepository {
	return dynamorepo.NewItemRepository(client, cfg.ItemsTable, logger)
}

// ProvideObjectStore creates the S3-backed object store
func ProvideObjectStore(client *awss3.Client, cfg *config.Config, logger *zap.Logger) ports.ObjectStore {
	return s3store.NewStore(client, cfg.ImageBucket, logger)
}

// ProvideCache selects the cache backend. With no Redis address configured
// the in-process cache is used. An unreachable Redis is reported at startup
// but still selected; every read failure is just a cache miss.
func ProvideCache(cfg *config.Config, logger *zap.Logger) ports.Cache {
	if cfg.RedisAddr != "" {
		redisCache := cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, logger)

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := redisCache.Ping(pingCtx); err != nil {
			logger.Warn("Redis unreachable at startup, reads will miss until it recovers",
				zap.String("addr", cfg.RedisAddr),
				zap.Error(err),
			)
		}
		return redisCache
	}
	return cache.NewMemory()
}

// ProvideMetrics creates the CloudWatch metrics publisher. Returns nil when
// metrics are disabled; a nil publisher is a no-op.
func ProvideMetrics(client *awscloudwatch.Client, cfg *config.Config, logger *zap.Logger) *observability.Metrics {
	if !cfg.EnableMetrics {
		return nil
	}
	return observability.NewMetrics(metricsNamespace, client, logger)
}

// ProvideCoordinator creates the cascade coordinator with one publisher per
// destination bus.
func ProvideCoordinator(client *awseventbridge.Client, cfg *config.Config, logger *zap.Logger) *cascade.Coordinator {
	imagesBus := eventbridge.NewPublisher(client, cfg.ImageEventsBusName, logger)
	bulkBus := eventbridge.NewPublisher(client, cfg.BatchEventsBusName, logger)
	return cascade.NewCoordinator(imagesBus, bulkBus, logger)
}

// ProvideIntegrityGuard creates the integrity guard
func ProvideIntegrityGuard(categories ports.CategoryRepository, tags ports.TagRepository, items ports.ItemRepository) *services.IntegrityGuard {
	return services.NewIntegrityGuard(categories, tags, items)
}

// ProvideCategoryService creates the category service
func ProvideCategoryService(
	categories ports.CategoryRepository,
	guard *services.IntegrityGuard,
	objects ports.ObjectStore,
	cacheImpl ports.Cache,
	logger *zap.Logger,
) *services.CategoryService {
	return services.NewCategoryService(categories, guard, objects, cacheImpl, logger)
}

// ProvideTagService creates the tag service
func ProvideTagService(tags ports.TagRepository, guard *services.IntegrityGuard, cacheImpl ports.Cache, logger *zap.Logger) *services.TagService {
	return services.NewTagService(tags, guard, cacheImpl, logger)
}

// ProvideItemService creates the item service
func ProvideItemService(items ports.ItemRepository, guard *services.IntegrityGuard, coordinator *cascade.Coordinator, logger *zap.Logger) *services.ItemService {
	return services.NewItemService(items, guard, coordinator, logger)
}

// ProvideImageService creates the image service
func ProvideImageService(objects ports.ObjectStore, logger *zap.Logger) *services.ImageService {
	return services.NewImageService(objects, logger)
}

// ProvideItemReader creates the item read composer
func ProvideItemReader(items ports.ItemRepository, categories ports.CategoryRepository, tags ports.TagRepository, logger *zap.Logger) *queries.ItemReader {
	return queries.NewItemReader(items, categories, tags, logger)
}

// ProvideImageCleaner creates the image cleanup consumer
func ProvideImageCleaner(store ports.ObjectStore, metrics *observability.Metrics, logger *zap.Logger) *cascade.ImageCleaner {
	return cascade.NewImageCleaner(store, metrics, logger)
}

// ProvideBulkDeleter creates the bulk delete consumer
func ProvideBulkDeleter(items ports.ItemRepository, store ports.ObjectStore, metrics *observability.Metrics, logger *zap.Logger) *cascade.BulkDeleter {
	return cascade.NewBulkDeleter(items, store, metrics, logger)
}

// ProvideErrorHandler creates the HTTP error handler
func ProvideErrorHandler(logger *zap.Logger) *errors.ErrorHandler {
	return errors.NewErrorHandler(logger)
}

// ProvideJWTValidator creates the server-mode token validator. Behind the
// gateway authorizer no secret is configured and the validator stays nil.
func ProvideJWTValidator(cfg *config.Config) *auth.JWTValidator {
	if cfg.JWTSecret == "" {
		return nil
	}
	validator, err := auth.NewJWTValidator(cfg.JWTSecret, cfg.JWTIssuer)
	if err != nil {
		return nil
	}
	return validator
}

// ProvideRateLimiter creates the per-IP request limiter. A zero budget
// disables limiting; the middleware skips a nil limiter.
func ProvideRateLimiter(cfg *config.Config) auth.RateLimiter {
	if cfg.RateLimitPerMinute <= 0 {
		return nil
	}
	return auth.NewIPRateLimiter(cfg.RateLimitPerMinute)
}

// ProvideRouter creates the HTTP router
func ProvideRouter(
	categoryService *services.CategoryService,
	tagService *services.TagService,
	itemService *services.ItemService,
	imageService *services.ImageService,
	reader *queries.ItemReader,
	coordinator *cascade.Coordinator,
	errorHandler *errors.ErrorHandler,
	validator *auth.JWTValidator,
	limiter auth.RateLimiter,
	cfg *config.Config,
	logger *zap.Logger,
) *rest.Router {
	categoryHandler := handlers.NewCategoryHandler(categoryService, coordinator, errorHandler, logger)
	tagHandler := handlers.NewTagHandler(tagService, errorHandler, logger)
	itemHandler := handlers.NewItemHandler(itemService, reader, errorHandler, logger)
	imageHandler := handlers.NewImageHandler(imageService, errorHandler, logger)
	return rest.NewRouter(categoryHandler, tagHandler, itemHandler, imageHandler, validator, limiter, cfg.IsLambda, cfg.EnableCORS, logger)
}
