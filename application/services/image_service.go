package services

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"catalog-backend/application/ports"
	"catalog-backend/domain/catalog"
	"catalog-backend/pkg/errors"

	"go.uber.org/zap"
)

// Presigned URL lifetimes. Uploads get five minutes, downloads one.
const (
	uploadURLExpiry   = 5 * time.Minute
	downloadURLExpiry = time.Minute
)

// ImageService hands out presigned URLs for image upload and download. The
// service never proxies image bytes.
type ImageService struct {
	objects ports.ObjectStore
	logger  *zap.Logger
}

// NewImageService creates an image service
func NewImageService(objects ports.ObjectStore, logger *zap.Logger) *ImageService {
	return &ImageService{
		objects: objects,
		logger:  logger,
	}
}

// UploadURL returns a presigned PUT URL for a new image object. The object
// key is the requested file name with a random numeric suffix, so repeated
// uploads of the same file name never collide.
func (s *ImageService) UploadURL(ctx context.Context, fileName string) (string, error) {
	if fileName == "" {
		return "", errors.NewValidationError("fileName is required")
	}

	key := fmt.Sprintf("%s%d.png", fileName, rand.Intn(100000))
	url, err := s.objects.PresignUpload(ctx, key, "image/png", uploadURLExpiry)
	if err != nil {
		return "", errors.NewExternalError("object store", err)
	}

	s.logger.Info("Upload URL issued",
		zap.String("key", key),
	)
	return url, nil
}

// DownloadURL returns a presigned GET URL for an existing image reference.
func (s *ImageService) DownloadURL(ctx context.Context, imageURL string) (string, error) {
	if imageURL == "" {
		return "", errors.NewValidationError("image is required")
	}

	key := catalog.ObjectKeyFromURL(imageURL)
	if key == "" {
		return "", errors.NewValidationError("image is not a valid object reference")
	}

	url, err := s.objects.PresignDownload(ctx, key, downloadURLExpiry)
	if err != nil {
		return "", errors.NewExternalError("object store", err)
	}
	return url, nil
}
