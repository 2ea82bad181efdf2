package ports

import (
	"context"

	"catalog-backend/domain/catalog"
)

// SortDirection selects the order of an index query.
type SortDirection int

const (
	SortAscending SortDirection = iota
	SortDescending
)

// CategoryRepository defines the persistence port for categories.
// Every method maps to a declared index; there is no ad-hoc scanning.
type CategoryRepository interface {
	// Save persists a category (create or update)
	Save(ctx context.Context, category catalog.Category) error

	// GetByID retrieves a category by primary key
	GetByID(ctx context.Context, id string) (catalog.Category, error)

	// FindByName queries the name index; found is false when no category
	// carries the name
	FindByName(ctx context.Context, name string) (category catalog.Category, found bool, err error)

	// List returns all categories via the nameSort index, name ascending
	List(ctx context.Context) ([]catalog.Category, error)

	// Delete removes a category row
	Delete(ctx context.Context, id string) error
}

// TagRepository defines the persistence port for tags.
type TagRepository interface {
	Save(ctx context.Context, tag catalog.Tag) error
	GetByID(ctx context.Context, id string) (catalog.Tag, error)
	FindByName(ctx context.Context, name string) (tag catalog.Tag, found bool, err error)
	List(ctx context.Context) ([]catalog.Tag, error)
	Delete(ctx context.Context, id string) error
}

// ItemRepository defines the persistence port for items. Each list method is
// backed by exactly one declared index (see the query layer for which reads
// compose onto which method).
type ItemRepository interface {
	Save(ctx context.Context, item catalog.Item) error
	GetByID(ctx context.Context, id string) (catalog.Item, error)
	Delete(ctx context.Context, id string) error

	// List returns all items via the nameSort index, name ascending
	List(ctx context.Context) ([]catalog.Item, error)

	// ListByCategory returns a category's items via the categorySort index,
	// name ascending
	ListByCategory(ctx context.Context, categoryID string) ([]catalog.Item, error)

	// ListByTag returns items whose tag set contains tagID. Implemented as an
	// equality query over the all-items partition with a contains filter, so
	// it reads every item of the type; a known scalability limit of the
	// access-pattern set, not something to silently re-index.
	ListByTag(ctx context.Context, tagID string) ([]catalog.Item, error)

	// ListByCategoryAndTag intersects the category partition with a
	// tag-membership filter, name ascending
	ListByCategoryAndTag(ctx context.Context, categoryID, tagID string) ([]catalog.Item, error)

	// ListByUpdateTime returns items via the dateSort index. Optional
	// category/tag filters narrow the result; empty strings mean no filter.
	ListByUpdateTime(ctx context.Context, dir SortDirection, categoryID, tagID string) ([]catalog.Item, error)

	// SearchByName returns items whose normalized name contains the
	// substring, name ascending
	SearchByName(ctx context.Context, substring string) ([]catalog.Item, error)

	// DeleteBatch removes up to the store's batch-write maximum of items in
	// one call. Callers chunk; the repository rejects oversized batches.
	DeleteBatch(ctx context.Context, ids []string) error
}
