package services

import (
	"context"

	"catalog-backend/application/cascade"
	"catalog-backend/application/ports"
	"catalog-backend/domain/catalog"
	"catalog-backend/pkg/auth"
	"catalog-backend/pkg/errors"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ItemService implements item create and delete. Reads live in the query
// layer; deletion hands image cleanup to the cascade coordinator.
type ItemService struct {
	items       ports.ItemRepository
	guard       *IntegrityGuard
	coordinator *cascade.Coordinator
	logger      *zap.Logger
}

// NewItemService creates an item service
func NewItemService(
	items ports.ItemRepository,
	guard *IntegrityGuard,
	coordinator *cascade.Coordinator,
	logger *zap.Logger,
) *ItemService {
	return &ItemService{
		items:       items,
		guard:       guard,
		coordinator: coordinator,
		logger:      logger,
	}
}

// CreateItemInput carries the fields of an item create request. Description,
// tags, price and quantity default to empty/zero when omitted.
type CreateItemInput struct {
	Name        string
	Description string
	CategoryID  string
	TagIDs      []string
	Price       decimal.Decimal
	Quantity    int
	MainImage   string
	Images      []string
}

// Create persists a new item once every referenced category and tag
// resolves. The caller must be authenticated; the item records them as its
// creator.
func (s *ItemService) Create(ctx context.Context, user *auth.UserContext, input CreateItemInput) (catalog.Item, error) {
	if user == nil || user.Username == "" {
		return catalog.Item{}, errors.NewUnauthorizedError("authentication required to create items")
	}

	if err := s.guard.EnsureReferencesResolve(ctx, input.CategoryID, input.TagIDs); err != nil {
		return catalog.Item{}, err
	}

	item := catalog.NewItem(
		input.Name,
		input.Description,
		input.CategoryID,
		input.TagIDs,
		input.Price,
		input.Quantity,
		input.MainImage,
		input.Images,
		user.Username,
	)
	if err := s.items.Save(ctx, item); err != nil {
		return catalog.Item{}, err
	}

	s.logger.Info("Item created",
		zap.String("itemId", item.ID),
		zap.String("categoryId", item.CategoryID),
		zap.String("createdBy", item.CreatedBy),
	)
	return item, nil
}

// Delete removes an item row synchronously and emits the asynchronous
// image-cleanup event. Only the item's creator or an admin may delete it.
func (s *ItemService) Delete(ctx context.Context, user *auth.UserContext, id string) error {
	if user == nil || user.Username == "" {
		return errors.NewUnauthorizedError("authentication required to delete items")
	}
	if id == "" {
		return errors.NewValidationError("itemId is required")
	}

	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !user.IsAdmin() && user.Username != item.CreatedBy {
		return errors.NewForbiddenError("only admin or item owner can delete the item")
	}

	if err := s.items.Delete(ctx, id); err != nil {
		return err
	}

	// The row is gone; everything past this point is best-effort.
	s.coordinator.ItemDeleted(ctx, item)

	s.logger.Info("Item deleted",
		zap.String("itemId", id),
		zap.String("deletedBy", user.Username),
	)
	return nil
}
