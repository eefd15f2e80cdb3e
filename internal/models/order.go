package models

import (
	"time"

	"github.com/google/uuid"
)

const OrderTypeBuyNow = "buy_now"

type Order struct {
	OrderID    uuid.UUID `json:"order_id"`
	ItemID     uuid.UUID `json:"item_id"`
	AuctionID  uuid.UUID `json:"auction_id"`
	BuyerID    uuid.UUID `json:"buyer_id"`
	BuyerEmail string    `json:"buyer_email"`
	BuyerName  string    `json:"buyer_name"`
	Amount     float64   `json:"amount"`
	OrderType  string    `json:"order_type"`
	CreatedAt  time.Time `json:"created_at"`

	// Item is embedded on order lookups.
	Item *Item `json:"item,omitempty"`
}
