package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Tag is a label items can carry. Name is unique across the collection.
type Tag struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewTag builds a tag with a generated id and creation timestamps.
func NewTag(name string) Tag {
	now := time.Now().UTC()
	return Tag{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
