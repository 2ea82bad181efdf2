// Package s3 implements the ObjectStore port on an S3 image bucket.
package s3

import (
	"context"
	"time"

	"catalog-backend/application/ports"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/zap"
)

// maxDeleteBatch is the S3 DeleteObjects limit per call.
const maxDeleteBatch = 1000

// Store implements the ObjectStore interface using S3
type Store struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
	logger  *zap.Logger
}

// NewStore creates a store bound to a single bucket
func NewStore(client *s3.Client, bucket string, logger *zap.Logger) ports.ObjectStore {
	return &Store{
		client:  client,
		presign: s3.NewPresignClient(client),
		bucket:  bucket,
		logger:  logger,
	}
}

// MaxDeleteBatch returns the per-call key limit of DeleteObjects.
func (s *Store) MaxDeleteBatch() int {
	return maxDeleteBatch
}

// DeleteObjects removes up to MaxDeleteBatch keys in one call. Keys the
// store rejected come back in failed; a partial failure is not an error.
func (s *Store) DeleteObjects(ctx context.Context, keys []string) ([]string, error) {
	if len(keys) == 0 {
		return nil, nil
	}

	objects := make([]types.ObjectIdentifier, 0, len(keys))
	for _, key := range keys {
		objects = append(objects, types.ObjectIdentifier{Key: aws.String(key)})
	}

	out, err := s.client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
		Bucket: aws.String(s.bucket),
		Delete: &types.Delete{
			Objects: objects,
			Quiet:   aws.Bool(false),
		},
	})
	if err != nil {
		return keys, err
	}

	var failed []string
	for _, e := range out.Errors {
		s.logger.Warn("Object delete rejected",
			zap.String("key", aws.ToString(e.Key)),
			zap.String("code", aws.ToString(e.Code)),
			zap.String("message", aws.ToString(e.Message)),
		)
		failed = append(failed, aws.ToString(e.Key))
	}
	return failed, nil
}

// DeleteObject removes a single key.
func (s *Store) DeleteObject(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}

// PresignUpload returns a time-limited PUT URL for the key.
func (s *Store) PresignUpload(ctx context.Context, key, contentType string, expires time.Duration) (string, error) {
	req, err := s.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(expires))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}

// PresignDownload returns a time-limited GET URL for the key.
func (s *Store) PresignDownload(ctx context.Context, key string, expires time.Duration) (string, error) {
	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expires))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}
