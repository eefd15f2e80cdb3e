package supabase

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/supabase-community/supabase-go"
)

type RealtimeClient struct {
	client *supabase.Client
}

func NewRealtimeClient(client *supabase.Client) *RealtimeClient {
	return &RealtimeClient{
		client: client,
	}
}

func (r *RealtimeClient) PublishEvent(channel string, event string, payload map[string]interface{}) error {
	// The Supabase Go client has no direct Realtime publish. Row changes on
	// bids and items already reach subscribed clients through
	// postgres_changes; this hook exists for explicit broadcast events.
	return nil
}

func (r *RealtimeClient) PublishAuctionEvent(auctionID uuid.UUID, event string, payload map[string]interface{}) error {
	channel := fmt.Sprintf("auction:%s", auctionID.String())
	return r.PublishEvent(channel, event, payload)
}

func (r *RealtimeClient) PublishItemEvent(itemID uuid.UUID, event string, payload map[string]interface{}) error {
	channel := fmt.Sprintf("item:%s", itemID.String())
	return r.PublishEvent(channel, event, payload)
}

// Event payloads
func BidPlacedPayload(itemID uuid.UUID, amount float64) map[string]interface{} {
	return map[string]interface{}{
		"item_id":     itemID.String(),
		"event":       "bid_placed",
		"current_bid": amount,
	}
}

func ItemSoldPayload(itemID uuid.UUID, buyerEmail string) map[string]interface{} {
	return map[string]interface{}{
		"item_id":     itemID.String(),
		"event":       "item_sold",
		"buyer_email": buyerEmail,
	}
}
