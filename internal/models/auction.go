package models

import (
	"time"

	"github.com/google/uuid"
)

// Auction lifecycle statuses. Transitions are draft -> published -> closed;
// closed is terminal.
const (
	AuctionStatusDraft     = "draft"
	AuctionStatusPublished = "published"
	AuctionStatusClosed    = "closed"
)

func ValidAuctionStatus(status string) bool {
	switch status {
	case AuctionStatusDraft, AuctionStatusPublished, AuctionStatusClosed:
		return true
	}
	return false
}

type Auction struct {
	AuctionID       uuid.UUID  `json:"auction_id"`
	ProfileID       uuid.UUID  `json:"profile_id"`
	AuctionName     string     `json:"auction_name"`
	IsDemo          bool       `json:"is_demo"`
	Status          string     `json:"status"`
	StartTime       *time.Time `json:"start_time"`
	EndTime         *time.Time `json:"end_time"`
	PickupLocation  *string    `json:"pickup_location"`
	ShippingAllowed bool       `json:"shipping_allowed"`
	CreatedAt       time.Time  `json:"created_at"`
}
