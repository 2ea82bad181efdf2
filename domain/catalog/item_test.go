package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNewItem_DerivesSearchNameAndNormalizesSlices(t *testing.T) {
	item := NewItem("  Fender Stratocaster ", "", "cat-1", nil, decimal.Zero, 0, "", nil, "")

	assert.Equal(t, "fender stratocaster", item.SearchName)
	assert.NotNil(t, item.TagIDs)
	assert.NotNil(t, item.Images)
	assert.Equal(t, item.CreatedAt, item.UpdatedAt)
}

func TestItem_ImageKeys_MainImageFirst(t *testing.T) {
	item := Item{
		MainImage: "https://bucket.s3.amazonaws.com/main.png",
		Images: []string{
			"https://bucket.s3.amazonaws.com/gallery/a.png",
			"https://bucket.s3.amazonaws.com/gallery/b.png",
		},
	}

	keys := item.ImageKeys()

	assert.Equal(t, []string{"main.png", "gallery/a.png", "gallery/b.png"}, keys)
}

func TestItem_ImageKeys_SkipsUnparsableURLs(t *testing.T) {
	item := Item{
		MainImage: "not-a-url",
		Images:    []string{"https://bucket.s3.amazonaws.com/a.png"},
	}

	assert.Equal(t, []string{"a.png"}, item.ImageKeys())
}

func TestObjectKeyFromURL(t *testing.T) {
	assert.Equal(t, "images/photo.png", ObjectKeyFromURL("https://bucket.s3.amazonaws.com/images/photo.png"))
	assert.Equal(t, "", ObjectKeyFromURL("photo.png"))
	assert.Equal(t, "", ObjectKeyFromURL(""))
}
