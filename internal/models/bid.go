package models

import (
	"time"

	"github.com/google/uuid"
)

// Bid records are append-only; in demo auctions a bid is a price guess.
type Bid struct {
	BidID       uuid.UUID `json:"bid_id"`
	ItemID      uuid.UUID `json:"item_id"`
	BidderID    uuid.UUID `json:"bidder_id"`
	BidderEmail string    `json:"bidder_email"`
	BidderName  string    `json:"bidder_name"`
	Amount      float64   `json:"amount"`
	CreatedAt   time.Time `json:"created_at"`
}
