package services

import (
	"context"
	"testing"

	"catalog-backend/domain/catalog"
	"catalog-backend/pkg/errors"
	"catalog-backend/tests/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func newTagServiceForTest() (*TagService, *mocks.MockTagRepository, *mocks.MockItemRepository, *mocks.MockCache) {
	categoryRepo := new(mocks.MockCategoryRepository)
	tagRepo := new(mocks.MockTagRepository)
	itemRepo := new(mocks.MockItemRepository)
	cache := new(mocks.MockCache)

	guard := NewIntegrityGuard(categoryRepo, tagRepo, itemRepo)
	svc := NewTagService(tagRepo, guard, cache, zap.NewNop())
	return svc, tagRepo, itemRepo, cache
}

func TestTagService_Create_Success(t *testing.T) {
	ctx := context.Background()
	svc, tagRepo, _, cache := newTagServiceForTest()

	tagRepo.On("FindByName", ctx, "vintage").Return(catalog.Tag{}, false, nil)
	tagRepo.On("Save", ctx, mock.AnythingOfType("catalog.Tag")).Return(nil)
	cache.On("Delete", ctx, "tags:list").Return()

	tag, err := svc.Create(ctx, adminUser(), "vintage")

	assert.NoError(t, err)
	assert.Equal(t, "vintage", tag.Name)
	assert.NotEmpty(t, tag.ID)
	tagRepo.AssertExpectations(t)
}

func TestTagService_Create_NonAdminForbidden(t *testing.T) {
	ctx := context.Background()
	svc, tagRepo, _, _ := newTagServiceForTest()

	_, err := svc.Create(ctx, plainUser(), "vintage")

	assert.Error(t, err)
	assert.True(t, errors.IsForbidden(err))
	tagRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestTagService_Create_DuplicateNameConflict(t *testing.T) {
	ctx := context.Background()
	svc, tagRepo, _, _ := newTagServiceForTest()

	existing := catalog.NewTag("vintage")
	tagRepo.On("FindByName", ctx, "vintage").Return(existing, true, nil)

	_, err := svc.Create(ctx, adminUser(), "vintage")

	assert.Error(t, err)
	assert.True(t, errors.IsConflict(err))
	tagRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestTagService_Update_RenameToTakenNameConflict(t *testing.T) {
	ctx := context.Background()
	svc, tagRepo, _, _ := newTagServiceForTest()

	existing := catalog.NewTag("vintage")
	other := catalog.NewTag("modern")
	tagRepo.On("GetByID", ctx, existing.ID).Return(existing, nil)
	tagRepo.On("FindByName", ctx, "modern").Return(other, true, nil)

	_, err := svc.Update(ctx, adminUser(), existing.ID, "modern")

	assert.Error(t, err)
	assert.True(t, errors.IsConflict(err))
	tagRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestTagService_Delete_BlockedWhileReferenced(t *testing.T) {
	ctx := context.Background()
	svc, tagRepo, itemRepo, _ := newTagServiceForTest()

	itemRepo.On("ListByTag", ctx, "tag-1").Return([]catalog.Item{{ID: "item-1"}}, nil)

	err := svc.Delete(ctx, adminUser(), "tag-1")

	assert.Error(t, err)
	assert.True(t, errors.IsConflict(err))
	tagRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestTagService_Delete_Success(t *testing.T) {
	ctx := context.Background()
	svc, tagRepo, itemRepo, cache := newTagServiceForTest()

	itemRepo.On("ListByTag", ctx, "tag-1").Return([]catalog.Item{}, nil)
	tagRepo.On("Delete", ctx, "tag-1").Return(nil)
	cache.On("Delete", ctx, "tags:list").Return()

	err := svc.Delete(ctx, adminUser(), "tag-1")

	assert.NoError(t, err)
	tagRepo.AssertExpectations(t)
	cache.AssertExpectations(t)
}
