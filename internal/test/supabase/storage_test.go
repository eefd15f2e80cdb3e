package supabase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"bidhouse-backend/internal/supabase"
)

func TestStorageClient_GetPublicURL(t *testing.T) {
	client, err := supabase.NewStorageClient("https://project.supabase.co/", "anon-key", "item-images")
	assert.NoError(t, err)

	url := client.GetPublicURL("items/abc/photo.jpg")
	assert.Equal(t, "https://project.supabase.co/storage/v1/object/public/item-images/items/abc/photo.jpg", url)
}
