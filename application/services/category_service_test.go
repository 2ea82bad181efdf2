package services

import (
	"context"
	"encoding/json"
	"testing"

	"catalog-backend/domain/catalog"
	"catalog-backend/pkg/auth"
	"catalog-backend/pkg/errors"
	"catalog-backend/tests/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func newCategoryServiceForTest() (*CategoryService, *mocks.MockCategoryRepository, *mocks.MockItemRepository, *mocks.MockObjectStore, *mocks.MockCache) {
	categoryRepo := new(mocks.MockCategoryRepository)
	tagRepo := new(mocks.MockTagRepository)
	itemRepo := new(mocks.MockItemRepository)
	store := new(mocks.MockObjectStore)
	cache := new(mocks.MockCache)

	guard := NewIntegrityGuard(categoryRepo, tagRepo, itemRepo)
	svc := NewCategoryService(categoryRepo, guard, store, cache, zap.NewNop())
	return svc, categoryRepo, itemRepo, store, cache
}

func adminUser() *auth.UserContext {
	return &auth.UserContext{Username: "alice", Groups: []string{auth.AdminGroup}}
}

func plainUser() *auth.UserContext {
	return &auth.UserContext{Username: "bob"}
}

func TestCategoryService_Create_Success(t *testing.T) {
	ctx := context.Background()
	svc, categoryRepo, _, _, cache := newCategoryServiceForTest()

	categoryRepo.On("FindByName", ctx, "Guitars").Return(catalog.Category{}, false, nil)
	categoryRepo.On("Save", ctx, mock.AnythingOfType("catalog.Category")).Return(nil)
	cache.On("Delete", ctx, "categories:list").Return()

	category, err := svc.Create(ctx, adminUser(), CreateCategoryInput{Name: "Guitars"})

	assert.NoError(t, err)
	assert.Equal(t, "Guitars", category.Name)
	assert.NotEmpty(t, category.ID)
	categoryRepo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestCategoryService_Create_NonAdminForbidden(t *testing.T) {
	ctx := context.Background()
	svc, categoryRepo, _, _, _ := newCategoryServiceForTest()

	_, err := svc.Create(ctx, plainUser(), CreateCategoryInput{Name: "Guitars"})

	assert.Error(t, err)
	assert.True(t, errors.IsForbidden(err))
	categoryRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCategoryService_Create_DuplicateNameConflict(t *testing.T) {
	ctx := context.Background()
	svc, categoryRepo, _, _, _ := newCategoryServiceForTest()

	existing := catalog.NewCategory("Guitars", "", "")
	categoryRepo.On("FindByName", ctx, "Guitars").Return(existing, true, nil)

	_, err := svc.Create(ctx, adminUser(), CreateCategoryInput{Name: "Guitars"})

	assert.Error(t, err)
	assert.True(t, errors.IsConflict(err))
	categoryRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCategoryService_Update_KeepingOwnNameIsNotAConflict(t *testing.T) {
	ctx := context.Background()
	svc, categoryRepo, _, _, cache := newCategoryServiceForTest()

	existing := catalog.NewCategory("Guitars", "", "")
	categoryRepo.On("GetByID", ctx, existing.ID).Return(existing, nil)
	categoryRepo.On("FindByName", ctx, "Guitars").Return(existing, true, nil)
	categoryRepo.On("Save", ctx, mock.AnythingOfType("catalog.Category")).Return(nil)
	cache.On("Delete", ctx, "categories:list").Return()

	updated, err := svc.Update(ctx, adminUser(), UpdateCategoryInput{ID: existing.ID, Name: "Guitars"})

	assert.NoError(t, err)
	assert.Equal(t, existing.ID, updated.ID)
	categoryRepo.AssertExpectations(t)
}

func TestCategoryService_Update_ReplacedImageIsDeleted(t *testing.T) {
	ctx := context.Background()
	svc, categoryRepo, _, store, cache := newCategoryServiceForTest()

	existing := catalog.NewCategory("Guitars", "", "https://bucket.s3.amazonaws.com/old-image.png")
	categoryRepo.On("GetByID", ctx, existing.ID).Return(existing, nil)
	categoryRepo.On("FindByName", ctx, "Guitars").Return(existing, true, nil)
	categoryRepo.On("Save", ctx, mock.AnythingOfType("catalog.Category")).Return(nil)
	store.On("DeleteObject", ctx, "old-image.png").Return(nil)
	cache.On("Delete", ctx, "categories:list").Return()

	_, err := svc.Update(ctx, adminUser(), UpdateCategoryInput{
		ID:    existing.ID,
		Name:  "Guitars",
		Image: "https://bucket.s3.amazonaws.com/new-image.png",
	})

	assert.NoError(t, err)
	store.AssertExpectations(t)
}

func TestCategoryService_Delete_BlockedWhileReferenced(t *testing.T) {
	ctx := context.Background()
	svc, categoryRepo, itemRepo, _, _ := newCategoryServiceForTest()

	existing := catalog.NewCategory("Guitars", "", "")
	categoryRepo.On("GetByID", ctx, existing.ID).Return(existing, nil)
	itemRepo.On("ListByCategory", ctx, existing.ID).Return([]catalog.Item{{ID: "item-1"}}, nil)

	err := svc.Delete(ctx, adminUser(), existing.ID)

	assert.Error(t, err)
	assert.True(t, errors.IsConflict(err))
	categoryRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestCategoryService_Delete_RemovesRowAndImage(t *testing.T) {
	ctx := context.Background()
	svc, categoryRepo, itemRepo, store, cache := newCategoryServiceForTest()

	existing := catalog.NewCategory("Guitars", "", "https://bucket.s3.amazonaws.com/cat.png")
	categoryRepo.On("GetByID", ctx, existing.ID).Return(existing, nil)
	itemRepo.On("ListByCategory", ctx, existing.ID).Return([]catalog.Item{}, nil)
	categoryRepo.On("Delete", ctx, existing.ID).Return(nil)
	store.On("DeleteObject", ctx, "cat.png").Return(nil)
	cache.On("Delete", ctx, "categories:list").Return()

	err := svc.Delete(ctx, adminUser(), existing.ID)

	assert.NoError(t, err)
	categoryRepo.AssertExpectations(t)
	store.AssertExpectations(t)
}

func TestCategoryService_List_ServedFromCache(t *testing.T) {
	ctx := context.Background()
	svc, categoryRepo, _, _, cache := newCategoryServiceForTest()

	cached := []catalog.Category{{ID: "c1", Name: "Guitars"}}
	encoded, _ := json.Marshal(cached)
	cache.On("Get", ctx, "categories:list").Return(encoded, true)

	categories, err := svc.List(ctx)

	assert.NoError(t, err)
	assert.Equal(t, cached, categories)
	categoryRepo.AssertNotCalled(t, "List", mock.Anything)
}

func TestCategoryService_List_MissFallsThroughAndCaches(t *testing.T) {
	ctx := context.Background()
	svc, categoryRepo, _, _, cache := newCategoryServiceForTest()

	fromStore := []catalog.Category{{ID: "c1", Name: "Guitars"}}
	cache.On("Get", ctx, "categories:list").Return(nil, false)
	categoryRepo.On("List", ctx).Return(fromStore, nil)
	cache.On("Set", ctx, "categories:list", mock.Anything, listCacheTTL).Return()

	categories, err := svc.List(ctx)

	assert.NoError(t, err)
	assert.Equal(t, fromStore, categories)
	cache.AssertExpectations(t)
}
