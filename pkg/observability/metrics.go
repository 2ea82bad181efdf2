package observability

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"go.uber.org/zap"
)

// Metric names emitted by the cascade paths.
const (
	MetricItemsBulkDeleted    = "ItemsBulkDeleted"
	MetricImagesDeleted       = "ImagesDeleted"
	MetricImageCleanupFailed  = "ImageCleanupFailed"
	MetricBulkDeleteBatches   = "BulkDeleteBatches"
	MetricBulkDeleteFailures  = "BulkDeleteFailures"
)

// Metrics publishes counters to CloudWatch. A nil *Metrics is a no-op, so
// callers never guard their metric calls.
type Metrics struct {
	namespace string
	client    *cloudwatch.Client
	logger    *zap.Logger
}

// NewMetrics creates a metrics publisher for the given namespace
func NewMetrics(namespace string, client *cloudwatch.Client, logger *zap.Logger) *Metrics {
	return &Metrics{
		namespace: namespace,
		client:    client,
		logger:    logger,
	}
}

// Count publishes a count metric. Failures are logged and swallowed; metrics
// never fail the operation that emitted them.
func (m *Metrics) Count(ctx context.Context, name string, value float64) {
	if m == nil || m.client == nil {
		return
	}

	_, err := m.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace: aws.String(m.namespace),
		MetricData: []types.MetricDatum{
			{
				MetricName: aws.String(name),
				Value:      aws.Float64(value),
				Unit:       types.StandardUnitCount,
			},
		},
	})
	if err != nil && m.logger != nil {
		m.logger.Warn("Failed to publish metric",
			zap.String("metric", name),
			zap.Error(err),
		)
	}
}
