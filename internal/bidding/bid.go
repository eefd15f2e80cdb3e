// Package bidding implements bid admission for auction items: lifecycle
// checks, minimum-bid enforcement for real auctions and guess validation
// for demo auctions, plus buy-now admission.
package bidding

import (
	"errors"
	"fmt"
	"time"

	"bidhouse-backend/internal/models"
)

// MaxGuessAmount caps demo-mode guesses.
const MaxGuessAmount = 100000

// Defaults applied when an item has no explicit bidding settings.
const (
	defaultStartingBid  = 0
	defaultMinIncrement = 1
)

var (
	ErrAuctionNotActive  = errors.New("auction is not active")
	ErrAuctionEnded      = errors.New("auction has ended")
	ErrItemSold          = errors.New("item has already been sold")
	ErrGuessNotPositive  = errors.New("guess must be a positive amount")
	ErrGuessTooLarge     = errors.New("guess must be under $100,000")
	ErrBuyNowUnavailable = errors.New("buy now not available for this item")
)

// BelowMinimumError reports a real-mode bid under the required minimum; the
// computed minimum is part of the message shown to bidders.
type BelowMinimumError struct {
	Minimum float64
}

func (e *BelowMinimumError) Error() string {
	return fmt.Sprintf("bid must be at least $%.2f", e.Minimum)
}

func StartingBid(item *models.Item) float64 {
	if item.StartingBid == nil {
		return defaultStartingBid
	}
	return *item.StartingBid
}

func MinIncrement(item *models.Item) float64 {
	if item.MinIncrement == nil {
		return defaultMinIncrement
	}
	return *item.MinIncrement
}

// MinimumRequired returns the lowest admissible bid amount. The very first
// bid may equal the starting bid exactly; every later bid must exceed the
// current highest by at least the item's increment.
func MinimumRequired(item *models.Item, highest *models.Bid) float64 {
	if highest == nil {
		return StartingBid(item)
	}
	return highest.Amount + MinIncrement(item)
}

// ValidateBid runs the admission checks in order: auction published, auction
// not ended, item not sold, then the mode-dependent amount check. highest is
// the current highest bid (nil when none) and is ignored for demo auctions,
// where every guess is independently valid.
func ValidateBid(auction *models.Auction, item *models.Item, highest *models.Bid, amount float64, now time.Time) error {
	if err := checkOpen(auction, item, now); err != nil {
		return err
	}

	if auction.IsDemo {
		if amount <= 0 {
			return ErrGuessNotPositive
		}
		if amount > MaxGuessAmount {
			return ErrGuessTooLarge
		}
		return nil
	}

	if min := MinimumRequired(item, highest); amount < min {
		return &BelowMinimumError{Minimum: min}
	}
	return nil
}

// ValidateBuyNow admits an immediate purchase: auction published, item not
// sold, and a buy-now price configured. End time is not checked; buy-now
// stays available until the auction is closed.
func ValidateBuyNow(auction *models.Auction, item *models.Item) error {
	if auction.Status != models.AuctionStatusPublished {
		return ErrAuctionNotActive
	}
	if item.IsSold {
		return ErrItemSold
	}
	if item.BuyNowPrice == nil || *item.BuyNowPrice <= 0 {
		return ErrBuyNowUnavailable
	}
	return nil
}

func checkOpen(auction *models.Auction, item *models.Item, now time.Time) error {
	if auction.Status != models.AuctionStatusPublished {
		return ErrAuctionNotActive
	}
	// Expired auctions reject bids even while still marked published.
	if auction.EndTime != nil && !now.Before(*auction.EndTime) {
		return ErrAuctionEnded
	}
	if item.IsSold {
		return ErrItemSold
	}
	return nil
}
