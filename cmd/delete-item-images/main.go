// Consumer for the image-cleanup bus. Each invocation carries one
// ItemImagesToDelete event; the cleaner removes every listed object key.
package main

import (
	"context"
	"encoding/json"
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

// Handler deletes the image objects named by the event. Per-key failures are
// logged by the cleaner and not returned; images orphaned here are accepted
// rather than retried forever.
func Handler(ctx context.Context, event awsevents.CloudWatchEvent) error {
	var payload events.ItemImagesToDelete
	if err := json.Unmarshal(event.Detail, &payload); err != nil {
		container.Logger.Error("Malformed image cleanup event",
			zap.String("eventId", event.ID),
			zap.Error(err),
		)
		// Malformed input never succeeds on retry.
		return nil
	}

	failed, err := container.ImageCleaner.Clean(ctx, payload)
	if err != nil {
		container.Logger.Error("Image cleanup failed",
			zap.String("eventId", event.ID),
			zap.Error(err),
		)
		return err
	}
	if len(failed) > 0 {
		container.Logger.Warn("Image cleanup left failed keys",
			zap.String("eventId", event.ID),
			zap.Strings("failedKeys", failed),
		)
	}
	return nil
}

func main() {
	lambda.Start(Handler)
}
