package models

import (
	"time"

	"github.com/google/uuid"
)

type Item struct {
	ItemID        uuid.UUID  `json:"item_id"`
	AuctionID     uuid.UUID  `json:"auction_id"`
	Title         string     `json:"title"`
	Brand         string     `json:"brand"`
	Model         string     `json:"model"`
	Year          *int       `json:"year"`
	AIDescription *string    `json:"ai_description"`
	IsListed      bool       `json:"is_listed"`
	IsSold        bool       `json:"is_sold"`
	SoldAt        *time.Time `json:"sold_at"`
	StartingBid   *float64   `json:"starting_bid"`
	MinIncrement  *float64   `json:"min_increment"`
	BuyNowPrice   *float64   `json:"buy_now_price"`
	CurrentBid    *float64   `json:"current_bid"`
	Lot           *int       `json:"lot"`
	CreatedAt     time.Time  `json:"created_at"`
}

// ItemImage positions are 1-based; position 1 is the primary image.
type ItemImage struct {
	ImageID   int64     `json:"image_id"`
	ItemID    uuid.UUID `json:"item_id"`
	URL       string    `json:"url"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
}
