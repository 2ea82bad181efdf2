package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Item is a catalog entry. CategoryID must reference an existing Category at
// creation time and every TagIDs element an existing Tag; there is no ongoing
// enforcement after creation. MainImage and Images hold image object URLs
// whose lifecycle is tied to the item's.
type Item struct {
	ID          string
	Name        string
	SearchName  string // lowercased Name, filter target for substring search
	Description string
	CategoryID  string
	TagIDs      []string
	Price       decimal.Decimal
	Quantity    int
	MainImage   string
	Images      []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	CreatedBy   string
}

// NewItem builds an item with a generated id, derived search name and
// creation timestamps. Nil tag lists are normalized to empty.
func NewItem(name, description, categoryID string, tagIDs []string, price decimal.Decimal, quantity int, mainImage string, images []string, createdBy string) Item {
	if tagIDs == nil {
		tagIDs = []string{}
	}
	if images == nil {
		images = []string{}
	}
	now := time.Now().UTC()
	return Item{
		ID:          uuid.New().String(),
		Name:        name,
		SearchName:  NormalizeName(name),
		Description: description,
		CategoryID:  categoryID,
		TagIDs:      tagIDs,
		Price:       price,
		Quantity:    quantity,
		MainImage:   mainImage,
		Images:      images,
		CreatedAt:   now,
		UpdatedAt:   now,
		CreatedBy:   createdBy,
	}
}

// NormalizeName lowercases a name for case-insensitive substring search.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ImageKeys collects the object-store keys of every image the item owns,
// main image first.
func (i Item) ImageKeys() []string {
	keys := make([]string, 0, len(i.Images)+1)
	if key := ObjectKeyFromURL(i.MainImage); key != "" {
		keys = append(keys, key)
	}
	for _, img := range i.Images {
		if key := ObjectKeyFromURL(img); key != "" {
			keys = append(keys, key)
		}
	}
	return keys
}

// PopulatedItem is an item with its category and tag references resolved into
// full records, returned by single-item reads.
type PopulatedItem struct {
	Item
	Category Category
	Tags     []Tag
}
