package services

import (
	"context"
	"fmt"

	"catalog-backend/application/ports"
	"catalog-backend/domain/catalog"
	"catalog-backend/pkg/errors"
)

// IntegrityGuard enforces referential consistency at write time. The store
// has no constraints of its own, so every mutating operation must consult
// the guard before persisting; this is a required call sequence, not an
// optional helper.
//
// The uniqueness check and the subsequent write are not atomic: two
// concurrent creates with the same name can both pass the check. The store
// cannot condition a write on a secondary-index attribute, so closing the
// race would need dedicated constraint records and a second table. The race
// is documented and tolerated.
type IntegrityGuard struct {
	categories ports.CategoryRepository
	tags       ports.TagRepository
	items      ports.ItemRepository
}

// NewIntegrityGuard creates an integrity guard over the three collections
func NewIntegrityGuard(
	categories ports.CategoryRepository,
	tags ports.TagRepository,
	items ports.ItemRepository,
) *IntegrityGuard {
	return &IntegrityGuard{
		categories: categories,
		tags:       tags,
		items:      items,
	}
}

// EnsureCategoryNameUnique fails with Conflict when a different category
// already carries the name. excludingID is the id of the record being
// updated, empty on create.
func (g *IntegrityGuard) EnsureCategoryNameUnique(ctx context.Context, name, excludingID string) error {
	existing, found, err := g.categories.FindByName(ctx, name)
	if err != nil {
		return err
	}
	if found && existing.ID != excludingID {
		return errors.NewConflictError(fmt.Sprintf("category with name %q already exists", name))
	}
	return nil
}

// EnsureTagNameUnique fails with Conflict when a different tag already
// carries the name.
func (g *IntegrityGuard) EnsureTagNameUnique(ctx context.Context, name, excludingID string) error {
	existing, found, err := g.tags.FindByName(ctx, name)
	if err != nil {
		return err
	}
	if found && existing.ID != excludingID {
		return errors.NewConflictError(fmt.Sprintf("tag with name %q already exists", name))
	}
	return nil
}

// EnsureCategoryExists returns the category or a NotFound error.
func (g *IntegrityGuard) EnsureCategoryExists(ctx context.Context, id string) (catalog.Category, error) {
	return g.categories.GetByID(ctx, id)
}

// EnsureTagExists returns the tag or a NotFound error.
func (g *IntegrityGuard) EnsureTagExists(ctx context.Context, id string) (catalog.Tag, error) {
	return g.tags.GetByID(ctx, id)
}

// EnsureNoCategoryDependents fails with Conflict when any item still
// references the category.
func (g *IntegrityGuard) EnsureNoCategoryDependents(ctx context.Context, categoryID string) error {
	dependents, err := g.items.ListByCategory(ctx, categoryID)
	if err != nil {
		return err
	}
	if len(dependents) > 0 {
		return errors.NewConflictError("items with this category exist, cannot delete category").
			WithDetails(map[string]interface{}{"dependentCount": len(dependents)})
	}
	return nil
}

// EnsureNoTagDependents fails with Conflict when any item still references
// the tag.
func (g *IntegrityGuard) EnsureNoTagDependents(ctx context.Context, tagID string) error {
	dependents, err := g.items.ListByTag(ctx, tagID)
	if err != nil {
		return err
	}
	if len(dependents) > 0 {
		return errors.NewConflictError("items with this tag exist, cannot delete tag").
			WithDetails(map[string]interface{}{"dependentCount": len(dependents)})
	}
	return nil
}

// EnsureReferencesResolve verifies an item's foreign keys at creation time.
// Any miss is a validation error naming the offending reference.
func (g *IntegrityGuard) EnsureReferencesResolve(ctx context.Context, categoryID string, tagIDs []string) error {
	if _, err := g.categories.GetByID(ctx, categoryID); err != nil {
		if errors.IsNotFound(err) {
			return errors.NewValidationError(fmt.Sprintf("category %s does not exist", categoryID))
		}
		return err
	}
	for _, tagID := range tagIDs {
		if _, err := g.tags.GetByID(ctx, tagID); err != nil {
			if errors.IsNotFound(err) {
				return errors.NewValidationError(fmt.Sprintf("tag %s does not exist", tagID))
			}
			return err
		}
	}
	return nil
}
