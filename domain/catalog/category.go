package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Constant type tags shared by every record of a collection. They serve as
// the partition key of the nameSort/dateSort indexes so that "list all,
// sorted" can be expressed as an equality query.
const (
	TypeCategory = "#CATEGORY"
	TypeTag      = "#TAG"
	TypeItem     = "#ITEM"
)

// Category groups items. Name is unique across the collection; Image holds
// the URL of the category's image object, empty when none was uploaded.
type Category struct {
	ID          string
	Name        string
	Description string
	Image       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewCategory builds a category with a generated id and creation timestamps.
func NewCategory(name, description, image string) Category {
	now := time.Now().UTC()
	return Category{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		Image:       image,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// ObjectKeyFromURL extracts the object-store key from a stored image URL.
// Image references are persisted as full bucket URLs; the key is everything
// after the host suffix. Returns "" when the value does not look like a URL.
func ObjectKeyFromURL(url string) string {
	_, key, found := strings.Cut(url, ".com/")
	if !found {
		return ""
	}
	return key
}
