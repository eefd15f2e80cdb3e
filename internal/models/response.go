package models

import "github.com/google/uuid"

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

// ItemDetail is an item as returned by the seller listing endpoints: the row
// plus its images, comps and the computed suggested starting price. The
// suggested price is derived on read and never persisted.
type ItemDetail struct {
	Item
	Images                 []ItemImage `json:"images"`
	Comps                  []Comp      `json:"comps"`
	SuggestedStartingPrice *int64      `json:"suggested_starting_price"`
}

type ItemsResponse struct {
	AuctionID string       `json:"auction_id,omitempty"`
	ProfileID string       `json:"profile_id,omitempty"`
	Message   string       `json:"message,omitempty"`
	Items     []ItemDetail `json:"items"`
}

type ItemWithImages struct {
	Item
	Images []ItemImage `json:"images"`
}

type CreateItemResponse struct {
	Item   Item        `json:"item"`
	Images []ItemImage `json:"images"`
}

// PublicItem is the public-auction view of an item: current_bid falls back to
// the starting bid when no bids have been placed.
type PublicItem struct {
	Item
	Images     []ItemImage `json:"images"`
	CurrentBid float64     `json:"current_bid"`
	BidCount   int         `json:"bid_count"`
}

type PublicAuctionResponse struct {
	Auction Auction      `json:"auction"`
	Items   []PublicItem `json:"items"`
}

type PublicAuctionsResponse struct {
	Auctions []Auction `json:"auctions"`
}

type AuctionsResponse struct {
	ProfileID string    `json:"profile_id,omitempty"`
	Message   string    `json:"message,omitempty"`
	Auctions  []Auction `json:"auctions"`
}

type BidResponse struct {
	Message        string  `json:"message"`
	Bid            Bid     `json:"bid"`
	CurrentHighest float64 `json:"current_highest"`
	IsDemo         bool    `json:"is_demo"`
}

type BuyNowResponse struct {
	Message string `json:"message"`
	Order   Order  `json:"order"`
}

type ItemBidsResponse struct {
	ItemID string `json:"item_id"`
	Bids   []Bid  `json:"bids"`
}

type ItemWithBids struct {
	Item
	Name       string   `json:"name"`
	Bids       []Bid    `json:"bids"`
	BidCount   int      `json:"bid_count"`
	HighestBid *float64 `json:"highest_bid"`
}

type AuctionBidsResponse struct {
	Auction       Auction        `json:"auction"`
	ItemsWithBids []ItemWithBids `json:"items_with_bids"`
}

type OrdersResponse struct {
	Orders []Order `json:"orders"`
}

// GuessResult is a demo-mode guess annotated with its absolute distance from
// the average comp price.
type GuessResult struct {
	Bid
	Difference float64 `json:"difference"`
}

type DemoItemResult struct {
	Item             ItemWithImages `json:"item"`
	AvgCompPrice     float64        `json:"avg_comp_price"`
	CompCount        int            `json:"comp_count"`
	Guesses          []GuessResult  `json:"guesses"`
	Winner           *Bid           `json:"winner"`
	WinnerDifference *float64       `json:"winner_difference"`
}

type DemoResultsResponse struct {
	Results []DemoItemResult `json:"results"`
	Auction *Auction         `json:"auction,omitempty"`
}

// CompCandidate is one comparable-sale record as produced by the discovery
// agent, before persistence.
type CompCandidate struct {
	Source   string `json:"source"`
	URL      string `json:"url"`
	SaleDate string `json:"sale_date"`
	Price    string `json:"price"`
	Notes    string `json:"notes"`
}

type CompsTriple struct {
	Comp1 CompCandidate `json:"comp_1"`
	Comp2 CompCandidate `json:"comp_2"`
	Comp3 CompCandidate `json:"comp_3"`
}

type CompsResponse struct {
	Success bool        `json:"success"`
	ItemID  string      `json:"item_id"`
	Comps   CompsTriple `json:"comps"`
}

type StoredCompsResponse struct {
	ItemID string `json:"item_id"`
	Comps  []Comp `json:"comps"`
}

// SavedComp is the frontend-facing shape of a persisted comp.
type SavedComp struct {
	CompID    uuid.UUID `json:"comp_id"`
	Source    string    `json:"source"`
	Link      string    `json:"link"`
	SalePrice float64   `json:"sale_price"`
	Currency  string    `json:"currency"`
	DateText  *string   `json:"date_text"`
	Title     string    `json:"title"`
}

type SavedCompsResponse struct {
	ItemID     string      `json:"item_id"`
	CompsCount int         `json:"comps_count"`
	Comps      []SavedComp `json:"comps"`
}

type BatchCompsResult struct {
	ItemID  string       `json:"item_id"`
	Success bool         `json:"success"`
	Comps   *CompsTriple `json:"comps,omitempty"`
	Error   string       `json:"error,omitempty"`
}

type BatchCompsResponse struct {
	BatchID    string             `json:"batch_id"`
	Status     string             `json:"status"`
	TotalItems int                `json:"total_items"`
	Successful int                `json:"successful"`
	Failed     int                `json:"failed"`
	Results    []BatchCompsResult `json:"results"`
	Message    string             `json:"message"`
}

type DescriptionResponse struct {
	Description string `json:"description"`
}

type VisionDescriptionDetails struct {
	Title string `json:"title"`
	Model string `json:"model,omitempty"`
	Year  string `json:"year,omitempty"`
}

type VisionDescriptionResponse struct {
	Success     bool                     `json:"success"`
	Description string                   `json:"description"`
	ItemDetails VisionDescriptionDetails `json:"item_details"`
}
