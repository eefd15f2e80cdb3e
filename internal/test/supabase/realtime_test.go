package supabase_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"bidhouse-backend/internal/supabase"
)

func TestBidPlacedPayload(t *testing.T) {
	itemID := uuid.New()

	payload := supabase.BidPlacedPayload(itemID, 125.50)

	assert.Equal(t, map[string]interface{}{
		"item_id":     itemID.String(),
		"event":       "bid_placed",
		"current_bid": 125.50,
	}, payload)
}

func TestItemSoldPayload(t *testing.T) {
	itemID := uuid.New()

	payload := supabase.ItemSoldPayload(itemID, "buyer@example.com")

	assert.Equal(t, map[string]interface{}{
		"item_id":     itemID.String(),
		"event":       "item_sold",
		"buyer_email": "buyer@example.com",
	}, payload)
}
