package events

import (
	"fmt"
	"time"
)

// ItemImagesToDelete is raised after an item row is deleted and asks a
// downstream consumer to remove the item's image objects.
//
// The bus rejects list payloads, so the keys are marshalled into a mapping of
// synthetic slot names (image0, image1, ...) instead of an array. The slot
// names carry no meaning beyond uniqueness.
// ItemID is serialized into the detail: the envelope fields do not survive
// the bus, and the consumer needs the id for its accounting.
type ItemImagesToDelete struct {
	BaseEvent
	ItemID string            `json:"itemId"`
	Images map[string]string `json:"images"`
}

// NewItemImagesToDelete builds the cleanup event for an item, mapping the
// main image to slot image0 and the gallery images to image1..imageN.
func NewItemImagesToDelete(itemID string, keys []string) ItemImagesToDelete {
	images := make(map[string]string, len(keys))
	for i, key := range keys {
		images[fmt.Sprintf("image%d", i)] = key
	}
	return ItemImagesToDelete{
		BaseEvent: BaseEvent{
			AggregateID: itemID,
			EventType:   TypeDeleteItemImages,
			Source:      SourceDeleteItemImages,
			Timestamp:   time.Now().UTC(),
		},
		ItemID: itemID,
		Images: images,
	}
}

// Keys flattens the slot mapping back into a plain key list.
func (e ItemImagesToDelete) Keys() []string {
	keys := make([]string, 0, len(e.Images))
	for i := 0; ; i++ {
		key, ok := e.Images[fmt.Sprintf("image%d", i)]
		if !ok {
			break
		}
		keys = append(keys, key)
	}
	// Tolerate slot names produced by other writers.
	if len(keys) != len(e.Images) {
		keys = keys[:0]
		for _, key := range e.Images {
			keys = append(keys, key)
		}
	}
	return keys
}

// BulkDeleteRequested asks the fan-out consumer to delete every item in a
// category. It is routed through the durable delete-items queue so consumer
// failures are retried by the queue's redelivery policy.
type BulkDeleteRequested struct {
	BaseEvent
	CategoryID string `json:"categoryId"`
}

// NewBulkDeleteRequested builds the fan-out event for a category.
func NewBulkDeleteRequested(categoryID string) BulkDeleteRequested {
	return BulkDeleteRequested{
		BaseEvent: BaseEvent{
			AggregateID: categoryID,
			EventType:   TypeBatchDeleteItems,
			Source:      SourceBatchDeleteItems,
			Timestamp:   time.Now().UTC(),
		},
		CategoryID: categoryID,
	}
}
