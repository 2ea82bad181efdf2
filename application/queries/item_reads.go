// Package queries maps the closed set of item read shapes onto the declared
// store indexes. There is no query planner: each supported combination of
// request parameters is one branch, checked in a fixed precedence order, and
// exactly one branch executes.
package queries

import (
	"context"
	"fmt"

	"catalog-backend/application/ports"
	"catalog-backend/domain/catalog"
	"catalog-backend/pkg/errors"

	"go.uber.org/zap"
)

// Order values accepted by the order parameter.
const (
	OrderLatest = "latest"
	OrderOldest = "oldest"
)

// ItemReadRequest is the raw filter set of an item read. Empty fields are
// absent filters.
type ItemReadRequest struct {
	ItemID     string
	NameSearch string
	Order      string
	Category   string
	Tag        string
}

// ItemReadResult is either a single populated item or a list, never both.
type ItemReadResult struct {
	Item  *catalog.PopulatedItem `json:"item,omitempty"`
	Items []catalog.Item         `json:"items,omitempty"`
}

// ItemReader composes item reads out of the fixed index set.
type ItemReader struct {
	items      ports.ItemRepository
	categories ports.CategoryRepository
	tags       ports.TagRepository
	logger     *zap.Logger
}

// NewItemReader creates an item reader
func NewItemReader(
	items ports.ItemRepository,
	categories ports.CategoryRepository,
	tags ports.TagRepository,
	logger *zap.Logger,
) *ItemReader {
	return &ItemReader{
		items:      items,
		categories: categories,
		tags:       tags,
		logger:     logger,
	}
}

// Read resolves a request to exactly one access path. Branch precedence is
// fixed and load-bearing: item > namesearch > order > category+tag >
// category > tag > all. The first matching branch wins and no other runs.
func (r *ItemReader) Read(ctx context.Context, req ItemReadRequest) (ItemReadResult, error) {
	switch {
	case req.ItemID != "":
		populated, err := r.readSingle(ctx, req.ItemID)
		if err != nil {
			return ItemReadResult{}, err
		}
		return ItemReadResult{Item: populated}, nil

	case req.NameSearch != "":
		items, err := r.items.SearchByName(ctx, catalog.NormalizeName(req.NameSearch))
		return listResult(items, err)

	case req.Order != "":
		dir, err := sortDirection(req.Order)
		if err != nil {
			return ItemReadResult{}, err
		}
		items, err := r.items.ListByUpdateTime(ctx, dir, req.Category, req.Tag)
		return listResult(items, err)

	case req.Category != "" && req.Tag != "":
		items, err := r.items.ListByCategoryAndTag(ctx, req.Category, req.Tag)
		return listResult(items, err)

	case req.Category != "":
		items, err := r.items.ListByCategory(ctx, req.Category)
		return listResult(items, err)

	case req.Tag != "":
		items, err := r.items.ListByTag(ctx, req.Tag)
		return listResult(items, err)

	default:
		items, err := r.items.List(ctx)
		return listResult(items, err)
	}
}

// readSingle loads one item and populates its category and tag references.
// A reference that no longer resolves aborts the whole read with NotFound
// naming the missing record.
func (r *ItemReader) readSingle(ctx context.Context, itemID string) (*catalog.PopulatedItem, error) {
	item, err := r.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	category, err := r.categories.GetByID(ctx, item.CategoryID)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.NewNotFoundError(fmt.Sprintf("referenced category %s", item.CategoryID))
		}
		return nil, err
	}

	tags := make([]catalog.Tag, 0, len(item.TagIDs))
	for _, tagID := range item.TagIDs {
		tag, err := r.tags.GetByID(ctx, tagID)
		if err != nil {
			if errors.IsNotFound(err) {
				return nil, errors.NewNotFoundError(fmt.Sprintf("referenced tag %s", tagID))
			}
			return nil, err
		}
		tags = append(tags, tag)
	}

	return &catalog.PopulatedItem{
		Item:     item,
		Category: category,
		Tags:     tags,
	}, nil
}

func sortDirection(order string) (ports.SortDirection, error) {
	switch order {
	case OrderLatest:
		return ports.SortDescending, nil
	case OrderOldest:
		return ports.SortAscending, nil
	default:
		return 0, errors.NewValidationError("order must be latest or oldest")
	}
}

func listResult(items []catalog.Item, err error) (ItemReadResult, error) {
	if err != nil {
		return ItemReadResult{}, err
	}
	if items == nil {
		items = []catalog.Item{}
	}
	return ItemReadResult{Items: items}, nil
}
