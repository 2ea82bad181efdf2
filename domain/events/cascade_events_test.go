package events

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewItemImagesToDelete_AssignsSequentialSlots(t *testing.T) {
	event := NewItemImagesToDelete("item-1", []string{"main.png", "a.png", "b.png"})

	assert.Equal(t, "item-1", event.GetAggregateID())
	assert.Equal(t, TypeDeleteItemImages, event.GetEventType())
	assert.Equal(t, map[string]string{
		"image0": "main.png",
		"image1": "a.png",
		"image2": "b.png",
	}, event.Images)
}

func TestItemImagesToDelete_KeysRoundTripsInOrder(t *testing.T) {
	keys := []string{"main.png", "a.png", "b.png"}

	event := NewItemImagesToDelete("item-1", keys)

	assert.Equal(t, keys, event.Keys())
}

func TestItemImagesToDelete_KeysToleratesForeignSlotNames(t *testing.T) {
	event := ItemImagesToDelete{Images: map[string]string{
		"img-a": "a.png",
		"img-b": "b.png",
	}}

	keys := event.Keys()

	assert.ElementsMatch(t, []string{"a.png", "b.png"}, keys)
}

func TestItemImagesToDelete_MarshalsAsMappingNotArray(t *testing.T) {
	event := NewItemImagesToDelete("item-1", []string{"main.png"})

	encoded, err := json.Marshal(event)

	assert.NoError(t, err)
	assert.JSONEq(t, `{"itemId":"item-1","images":{"image0":"main.png"}}`, string(encoded))
}

func TestItemImagesToDelete_ItemIDSurvivesTheBus(t *testing.T) {
	// The envelope fields are not serialized; only what rides in the detail
	// reaches the consumer.
	encoded, err := json.Marshal(NewItemImagesToDelete("item-1", []string{"main.png"}))
	assert.NoError(t, err)

	var received ItemImagesToDelete
	assert.NoError(t, json.Unmarshal(encoded, &received))

	assert.Equal(t, "item-1", received.ItemID)
	assert.Equal(t, []string{"main.png"}, received.Keys())
	assert.Empty(t, received.GetAggregateID())
}

func TestNewBulkDeleteRequested(t *testing.T) {
	event := NewBulkDeleteRequested("cat-1")

	assert.Equal(t, "cat-1", event.CategoryID)
	assert.Equal(t, TypeBatchDeleteItems, event.GetEventType())
	assert.Equal(t, SourceBatchDeleteItems, event.GetSource())
	assert.False(t, event.GetTimestamp().IsZero())
}
