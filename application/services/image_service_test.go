package services

import (
	"context"
	"testing"

	"catalog-backend/pkg/errors"
	"catalog-backend/tests/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func TestImageService_UploadURL_AppendsRandomSuffix(t *testing.T) {
	ctx := context.Background()
	store := new(mocks.MockObjectStore)
	svc := NewImageService(store, zap.NewNop())

	store.On("PresignUpload", ctx, mock.MatchedBy(func(key string) bool {
		return len(key) > len("photo.png") && key[:5] == "photo"
	}), "image/png", uploadURLExpiry).Return("https://signed-upload", nil)

	url, err := svc.UploadURL(ctx, "photo")

	assert.NoError(t, err)
	assert.Equal(t, "https://signed-upload", url)
	store.AssertExpectations(t)
}

func TestImageService_UploadURL_RequiresFileName(t *testing.T) {
	svc := NewImageService(new(mocks.MockObjectStore), zap.NewNop())

	_, err := svc.UploadURL(context.Background(), "")

	assert.Error(t, err)
	assert.True(t, errors.IsValidation(err))
}

func TestImageService_DownloadURL_ResolvesObjectKey(t *testing.T) {
	ctx := context.Background()
	store := new(mocks.MockObjectStore)
	svc := NewImageService(store, zap.NewNop())

	store.On("PresignDownload", ctx, "images/photo.png", downloadURLExpiry).Return("https://signed-download", nil)

	url, err := svc.DownloadURL(ctx, "https://bucket.s3.amazonaws.com/images/photo.png")

	assert.NoError(t, err)
	assert.Equal(t, "https://signed-download", url)
	store.AssertExpectations(t)
}

func TestImageService_DownloadURL_RejectsNonObjectReference(t *testing.T) {
	svc := NewImageService(new(mocks.MockObjectStore), zap.NewNop())

	_, err := svc.DownloadURL(context.Background(), "not-an-object-url")

	assert.Error(t, err)
	assert.True(t, errors.IsValidation(err))
}
