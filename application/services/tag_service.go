package services

import (
	"context"
	"encoding/json"
	"time"

	"catalog-backend/application/ports"
	"catalog-backend/domain/catalog"
	"catalog-backend/pkg/auth"
	"catalog-backend/pkg/errors"

	"go.uber.org/zap"
)

const tagListCacheKey = "tags:list"

// TagService implements tag lifecycle. Same shape as categories: admin-only
// mutations, uniqueness on name, deletion blocked while referenced.
type TagService struct {
	tags   ports.TagRepository
	guard  *IntegrityGuard
	cache  ports.Cache
	logger *zap.Logger
}

// NewTagService creates a tag service
func NewTagService(tags ports.TagRepository, guard *IntegrityGuard, cache ports.Cache, logger *zap.Logger) *TagService {
	return &TagService{
		tags:   tags,
		guard:  guard,
		cache:  cache,
		logger: logger,
	}
}

// Create persists a new tag after the admin and uniqueness checks.
func (s *TagService) Create(ctx context.Context, user *auth.UserContext, name string) (catalog.Tag, error) {
	if !user.IsAdmin() {
		return catalog.Tag{}, errors.NewForbiddenError("only admins can create tags")
	}
	if err := s.guard.EnsureTagNameUnique(ctx, name, ""); err != nil {
		return catalog.Tag{}, err
	}

	tag := catalog.NewTag(name)
	if err := s.tags.Save(ctx, tag); err != nil {
		return catalog.Tag{}, err
	}

	s.cache.Delete(ctx, tagListCacheKey)
	s.logger.Info("Tag created",
		zap.String("tagId", tag.ID),
		zap.String("name", tag.Name),
	)
	return tag, nil
}

// Update renames a tag.
func (s *TagService) Update(ctx context.Context, user *auth.UserContext, id, name string) (catalog.Tag, error) {
	if !user.IsAdmin() {
		return catalog.Tag{}, errors.NewForbiddenError("only admins can update tags")
	}

	existing, err := s.guard.EnsureTagExists(ctx, id)
	if err != nil {
		return catalog.Tag{}, err
	}
	if err := s.guard.EnsureTagNameUnique(ctx, name, id); err != nil {
		return catalog.Tag{}, err
	}

	updated := existing
	updated.Name = name
	updated.UpdatedAt = time.Now().UTC()
	if err := s.tags.Save(ctx, updated); err != nil {
		return catalog.Tag{}, err
	}

	s.cache.Delete(ctx, tagListCacheKey)
	s.logger.Info("Tag updated",
		zap.String("tagId", updated.ID),
		zap.String("name", updated.Name),
	)
	return updated, nil
}

// Delete removes a tag. Blocked with Conflict while any item references it.
func (s *TagService) Delete(ctx context.Context, user *auth.UserContext, id string) error {
	if !user.IsAdmin() {
		return errors.NewForbiddenError("only admins can delete tags")
	}
	if id == "" {
		return errors.NewValidationError("tagId is required")
	}

	if err := s.guard.EnsureNoTagDependents(ctx, id); err != nil {
		return err
	}
	if err := s.tags.Delete(ctx, id); err != nil {
		return err
	}

	s.cache.Delete(ctx, tagListCacheKey)
	s.logger.Info("Tag deleted",
		zap.String("tagId", id),
	)
	return nil
}

// Get returns a single tag by id.
func (s *TagService) Get(ctx context.Context, id string) (catalog.Tag, error) {
	return s.tags.GetByID(ctx, id)
}

// List returns all tags ordered by name, served from cache when warm.
func (s *TagService) List(ctx context.Context) ([]catalog.Tag, error) {
	if cached, ok := s.cache.Get(ctx, tagListCacheKey); ok {
		var tags []catalog.Tag
		if err := json.Unmarshal(cached, &tags); err == nil {
			return tags, nil
		}
	}

	tags, err := s.tags.List(ctx)
	if err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(tags); err == nil {
		s.cache.Set(ctx, tagListCacheKey, encoded, listCacheTTL)
	}
	return tags, nil
}
