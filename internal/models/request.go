package models

import "time"

type CreateUserRequest struct {
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}

type UpdateEmailRequest struct {
	Email string `json:"email"`
}

type PaymentRequest struct {
	ProfileID string `json:"profile_id"`
}

type CreateAuctionRequest struct {
	AuctionName string `json:"auction_name"`
	IsDemo      bool   `json:"is_demo,omitempty"`
}

type UpdateAuctionRequest struct {
	AuctionName string `json:"auction_name"`
}

// AuctionSettingsUpdate carries optional auction settings; nil fields are
// left untouched.
type AuctionSettingsUpdate struct {
	StartTime       *time.Time `json:"start_time,omitempty"`
	EndTime         *time.Time `json:"end_time,omitempty"`
	Status          *string    `json:"status,omitempty"`
	PickupLocation  *string    `json:"pickup_location,omitempty"`
	ShippingAllowed *bool      `json:"shipping_allowed,omitempty"`
}

// CreateItemRequest accepts one to five image URLs; the first becomes the
// primary image.
type CreateItemRequest struct {
	AuctionID     string   `json:"auction_id"`
	Title         string   `json:"title"`
	ImageURLs     []string `json:"image_urls"`
	Brand         string   `json:"brand,omitempty"`
	Model         string   `json:"model,omitempty"`
	Year          *int     `json:"year,omitempty"`
	AIDescription string   `json:"ai_description,omitempty"`
}

type UpdateItemRequest struct {
	Title *string `json:"title,omitempty"`
	Brand *string `json:"brand,omitempty"`
	Model *string `json:"model,omitempty"`
	Year  *int    `json:"year,omitempty"`
}

type ItemAuctionSettings struct {
	StartingBid  *float64 `json:"starting_bid,omitempty"`
	MinIncrement *float64 `json:"min_increment,omitempty"`
	BuyNowPrice  *float64 `json:"buy_now_price,omitempty"`
	Lot          *int     `json:"lot,omitempty"`
	IsListed     *bool    `json:"is_listed,omitempty"`
}

type BatchItemAuctionSettings struct {
	ItemIDs      []string `json:"item_ids"`
	StartingBid  *float64 `json:"starting_bid,omitempty"`
	MinIncrement *float64 `json:"min_increment,omitempty"`
	BuyNowPrice  *float64 `json:"buy_now_price,omitempty"`
	IsListed     *bool    `json:"is_listed,omitempty"`
}

type AddItemImagesRequest struct {
	URLs []string `json:"urls"`
}

type UpdateImageURLRequest struct {
	URL string `json:"url"`
}

type BidRequest struct {
	BidderEmail string  `json:"bidder_email"`
	BidderName  string  `json:"bidder_name"`
	BidAmount   float64 `json:"bid_amount"`
}

type BuyNowRequest struct {
	BuyerEmail string `json:"buyer_email"`
	BuyerName  string `json:"buyer_name"`
}

type SimpleDescriptionRequest struct {
	Title string `json:"title"`
	Brand string `json:"brand,omitempty"`
	Year  string `json:"year,omitempty"`
	Notes string `json:"notes,omitempty"`
}

type CompsRequest struct {
	ItemID string `json:"item_id"`
	Brand  string `json:"brand,omitempty"`
	Model  string `json:"model,omitempty"`
	Year   string `json:"year,omitempty"`
	Notes  string `json:"notes,omitempty"`
}

type BatchCompsItem struct {
	ItemID string `json:"item_id"`
	Brand  string `json:"brand,omitempty"`
	Model  string `json:"model,omitempty"`
	Year   string `json:"year,omitempty"`
	Notes  string `json:"notes,omitempty"`
}

type BatchCompsRequest struct {
	Items []BatchCompsItem `json:"items"`
}
