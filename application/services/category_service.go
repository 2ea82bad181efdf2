package services

import (
	"context"
	"encoding/json"
	"time"

	"catalog-backend/application/cascade"
	"catalog-backend/application/ports"
	"catalog-backend/domain/catalog"
	"catalog-backend/pkg/auth"
	"catalog-backend/pkg/errors"

	"go.uber.org/zap"
)

const categoryListCacheKey = "categories:list"

// listCacheTTL bounds staleness of the cached category/tag listings.
const listCacheTTL = 30 * time.Second

// CategoryService implements category lifecycle: create, update, delete and
// reads. Mutations are admin-only and consult the integrity guard before
// touching the store.
type CategoryService struct {
	categories ports.CategoryRepository
	guard      *IntegrityGuard
	objects    ports.ObjectStore
	cache      ports.Cache
	logger     *zap.Logger
}

// NewCategoryService creates a category service
func NewCategoryService(
	categories ports.CategoryRepository,
	guard *IntegrityGuard,
	objects ports.ObjectStore,
	cache ports.Cache,
	logger *zap.Logger,
) *CategoryService {
	return &CategoryService{
		categories: categories,
		guard:      guard,
		objects:    objects,
		cache:      cache,
		logger:     logger,
	}
}

// CreateCategoryInput carries the fields of a category create request.
type CreateCategoryInput struct {
	Name        string
	Description string
	Image       string
}

// Create persists a new category after the admin and uniqueness checks.
func (s *CategoryService) Create(ctx context.Context, user *auth.UserContext, input CreateCategoryInput) (catalog.Category, error) {
	if !user.IsAdmin() {
		return catalog.Category{}, errors.NewForbiddenError("only admins can create categories")
	}
	if err := s.guard.EnsureCategoryNameUnique(ctx, input.Name, ""); err != nil {
		return catalog.Category{}, err
	}

	category := catalog.NewCategory(input.Name, input.Description, input.Image)
	if err := s.categories.Save(ctx, category); err != nil {
		return catalog.Category{}, err
	}

	s.cache.Delete(ctx, categoryListCacheKey)
	s.logger.Info("Category created",
		zap.String("categoryId", category.ID),
		zap.String("name", category.Name),
	)
	return category, nil
}

// UpdateCategoryInput carries the fields of a category update request.
type UpdateCategoryInput struct {
	ID    string
	Name  string
	Image string
}

// Update renames a category and/or replaces its image. Replacing the image
// schedules best-effort deletion of the previous object: only one live key
// may occupy an image slot.
func (s *CategoryService) Update(ctx context.Context, user *auth.UserContext, input UpdateCategoryInput) (catalog.Category, error) {
	if !user.IsAdmin() {
		return catalog.Category{}, errors.NewForbiddenError("only admins can update categories")
	}

	existing, err := s.guard.EnsureCategoryExists(ctx, input.ID)
	if err != nil {
		return catalog.Category{}, err
	}
	if err := s.guard.EnsureCategoryNameUnique(ctx, input.Name, input.ID); err != nil {
		return catalog.Category{}, err
	}

	updated := existing
	updated.Name = input.Name
	updated.Image = input.Image
	updated.UpdatedAt = time.Now().UTC()
	if err := s.categories.Save(ctx, updated); err != nil {
		return catalog.Category{}, err
	}

	if existing.Image != "" && existing.Image != input.Image {
		s.deleteImageObject(ctx, existing.Image)
	}

	s.cache.Delete(ctx, categoryListCacheKey)
	s.logger.Info("Category updated",
		zap.String("categoryId", updated.ID),
		zap.String("name", updated.Name),
	)
	return updated, nil
}

// Delete removes a category. Blocked with Conflict while any item still
// references it; the category's image object is removed afterwards,
// best-effort.
func (s *CategoryService) Delete(ctx context.Context, user *auth.UserContext, id string) error {
	if !user.IsAdmin() {
		return errors.NewForbiddenError("only admins can delete categories")
	}
	if id == "" {
		return errors.NewValidationError("categoryId is required")
	}

	category, err := s.guard.EnsureCategoryExists(ctx, id)
	if err != nil {
		return err
	}
	if err := s.guard.EnsureNoCategoryDependents(ctx, id); err != nil {
		return err
	}
	if err := s.categories.Delete(ctx, id); err != nil {
		return err
	}

	if category.Image != "" {
		s.deleteImageObject(ctx, category.Image)
	}

	s.cache.Delete(ctx, categoryListCacheKey)
	s.logger.Info("Category deleted",
		zap.String("categoryId", id),
	)
	return nil
}

// Get returns a single category by id.
func (s *CategoryService) Get(ctx context.Context, id string) (catalog.Category, error) {
	return s.categories.GetByID(ctx, id)
}

// List returns all categories ordered by name, served from cache when warm.
func (s *CategoryService) List(ctx context.Context) ([]catalog.Category, error) {
	if cached, ok := s.cache.Get(ctx, categoryListCacheKey); ok {
		var categories []catalog.Category
		if err := json.Unmarshal(cached, &categories); err == nil {
			return categories, nil
		}
	}

	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(categories); err == nil {
		s.cache.Set(ctx, categoryListCacheKey, encoded, listCacheTTL)
	}
	return categories, nil
}

// RequestBulkDelete asks the cascade coordinator to empty the category
// asynchronously. Admin only; the caller gets a processing acknowledgment.
func (s *CategoryService) RequestBulkDelete(ctx context.Context, user *auth.UserContext, coordinator *cascade.Coordinator, categoryID string) error {
	if !user.IsAdmin() {
		return errors.NewForbiddenError("only admins can bulk delete items")
	}
	return coordinator.RequestBulkDelete(ctx, categoryID)
}

func (s *CategoryService) deleteImageObject(ctx context.Context, imageURL string) {
	key := catalog.ObjectKeyFromURL(imageURL)
	if key == "" {
		return
	}
	if err := s.objects.DeleteObject(ctx, key); err != nil {
		s.logger.Warn("Failed to delete category image object",
			zap.String("key", key),
			zap.Error(err),
		)
	}
}
