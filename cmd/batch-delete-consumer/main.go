// Consumer for the category bulk-delete queue. The queue delivers one
// message per invocation; a returned error makes the queue redeliver, which
// is how partial row-deletion failures are retried.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"catalog-backend/domain/events"
	"catalog-backend/infrastructure/config"
	"catalog-backend/infrastructure/di"

	awsevents "github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"
)

var container *di.Container

func init() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	container, err = di.InitializeContainer(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
}

// busEnvelope is the bus-to-queue message shape; the domain event rides in
// the detail field.
type busEnvelope struct {
	Detail events.BulkDeleteRequested `json:"detail"`
}

// Handler processes the queued bulk-delete requests.
func Handler(ctx context.Context, event awsevents.SQSEvent) error {
	for _, record := range event.Records {
		var envelope busEnvelope
		if err := json.Unmarshal([]byte(record.Body), &envelope); err != nil {
			container.Logger.Error("Malformed bulk delete message",
				zap.String("messageId", record.MessageId),
				zap.Error(err),
			)
			// Malformed input never succeeds on retry.
			continue
		}

		report, err := container.BulkDeleter.DeleteCategoryItems(ctx, envelope.Detail.CategoryID)
		if err != nil {
			container.Logger.Error("Bulk delete failed",
				zap.String("messageId", record.MessageId),
				zap.String("categoryId", envelope.Detail.CategoryID),
				zap.Error(err),
			)
			return fmt.Errorf("bulk delete for category %s: %w", envelope.Detail.CategoryID, err)
		}

		container.Logger.Info("Bulk delete processed",
			zap.String("categoryId", report.CategoryID),
			zap.Int("deletedItems", report.DeletedItems),
			zap.Int("batches", report.Batches),
		)
	}
	return nil
}

func main() {
	lambda.Start(Handler)
}
