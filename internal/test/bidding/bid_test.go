package bidding_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"bidhouse-backend/internal/bidding"
	"bidhouse-backend/internal/models"
)

func floatPtr(v float64) *float64 { return &v }

func publishedAuction(endsIn time.Duration) *models.Auction {
	end := time.Now().Add(endsIn)
	return &models.Auction{
		Status:  models.AuctionStatusPublished,
		EndTime: &end,
	}
}

func TestValidateBid_AuctionNotPublished(t *testing.T) {
	auction := &models.Auction{Status: models.AuctionStatusDraft}
	item := &models.Item{}

	err := bidding.ValidateBid(auction, item, nil, 50, time.Now())
	assert.ErrorIs(t, err, bidding.ErrAuctionNotActive)
}

func TestValidateBid_AuctionEnded(t *testing.T) {
	auction := publishedAuction(-time.Minute)
	item := &models.Item{}

	err := bidding.ValidateBid(auction, item, nil, 50, time.Now())
	assert.ErrorIs(t, err, bidding.ErrAuctionEnded)
}

func TestValidateBid_EndTimeIsExclusive(t *testing.T) {
	now := time.Now()
	auction := &models.Auction{
		Status:  models.AuctionStatusPublished,
		EndTime: &now,
	}
	item := &models.Item{StartingBid: floatPtr(10)}

	err := bidding.ValidateBid(auction, item, nil, 50, now)
	assert.ErrorIs(t, err, bidding.ErrAuctionEnded)
}

func TestValidateBid_ItemSold(t *testing.T) {
	auction := publishedAuction(time.Hour)
	item := &models.Item{IsSold: true}

	err := bidding.ValidateBid(auction, item, nil, 50, time.Now())
	assert.ErrorIs(t, err, bidding.ErrItemSold)
}

func TestValidateBid_NoEndTimeStaysOpen(t *testing.T) {
	auction := &models.Auction{Status: models.AuctionStatusPublished}
	item := &models.Item{StartingBid: floatPtr(10)}

	err := bidding.ValidateBid(auction, item, nil, 10, time.Now())
	assert.NoError(t, err)
}

func TestValidateBid_FirstBidMayEqualStartingBid(t *testing.T) {
	auction := publishedAuction(time.Hour)
	item := &models.Item{StartingBid: floatPtr(100)}

	assert.NoError(t, bidding.ValidateBid(auction, item, nil, 100, time.Now()))

	err := bidding.ValidateBid(auction, item, nil, 99.99, time.Now())
	var belowMin *bidding.BelowMinimumError
	assert.ErrorAs(t, err, &belowMin)
	assert.Equal(t, 100.0, belowMin.Minimum)
}

func TestValidateBid_LaterBidsNeedIncrement(t *testing.T) {
	auction := publishedAuction(time.Hour)
	item := &models.Item{StartingBid: floatPtr(100), MinIncrement: floatPtr(5)}
	highest := &models.Bid{Amount: 120}

	// Matching the highest bid is no longer enough.
	err := bidding.ValidateBid(auction, item, highest, 120, time.Now())
	var belowMin *bidding.BelowMinimumError
	assert.ErrorAs(t, err, &belowMin)
	assert.Equal(t, 125.0, belowMin.Minimum)
	assert.Contains(t, belowMin.Error(), "$125.00")

	assert.NoError(t, bidding.ValidateBid(auction, item, highest, 125, time.Now()))
}

func TestValidateBid_DefaultsWhenSettingsMissing(t *testing.T) {
	auction := publishedAuction(time.Hour)
	item := &models.Item{}

	// No starting bid configured: any positive first bid clears zero.
	assert.NoError(t, bidding.ValidateBid(auction, item, nil, 1, time.Now()))

	// No increment configured: the default step is 1.
	highest := &models.Bid{Amount: 10}
	err := bidding.ValidateBid(auction, item, highest, 10.5, time.Now())
	var belowMin *bidding.BelowMinimumError
	assert.ErrorAs(t, err, &belowMin)
	assert.Equal(t, 11.0, belowMin.Minimum)
}

func TestValidateBid_DemoBounds(t *testing.T) {
	auction := publishedAuction(time.Hour)
	auction.IsDemo = true
	item := &models.Item{StartingBid: floatPtr(1000000)}

	assert.ErrorIs(t, bidding.ValidateBid(auction, item, nil, 0, time.Now()), bidding.ErrGuessNotPositive)
	assert.ErrorIs(t, bidding.ValidateBid(auction, item, nil, -5, time.Now()), bidding.ErrGuessNotPositive)
	assert.ErrorIs(t, bidding.ValidateBid(auction, item, nil, 100001, time.Now()), bidding.ErrGuessTooLarge)

	// Guesses ignore the starting bid and the current highest entirely.
	highest := &models.Bid{Amount: 99999}
	assert.NoError(t, bidding.ValidateBid(auction, item, highest, 1, time.Now()))
	assert.NoError(t, bidding.ValidateBid(auction, item, highest, 100000, time.Now()))
}

func TestValidateBuyNow(t *testing.T) {
	auction := publishedAuction(time.Hour)

	assert.NoError(t, bidding.ValidateBuyNow(auction, &models.Item{BuyNowPrice: floatPtr(250)}))

	assert.ErrorIs(t, bidding.ValidateBuyNow(auction, &models.Item{}), bidding.ErrBuyNowUnavailable)
	assert.ErrorIs(t, bidding.ValidateBuyNow(auction, &models.Item{BuyNowPrice: floatPtr(0)}), bidding.ErrBuyNowUnavailable)
	assert.ErrorIs(t, bidding.ValidateBuyNow(auction, &models.Item{BuyNowPrice: floatPtr(250), IsSold: true}), bidding.ErrItemSold)

	draft := &models.Auction{Status: models.AuctionStatusDraft}
	assert.ErrorIs(t, bidding.ValidateBuyNow(draft, &models.Item{BuyNowPrice: floatPtr(250)}), bidding.ErrAuctionNotActive)
}

func TestValidateBuyNow_IgnoresEndTime(t *testing.T) {
	// Buy-now stays open after the bidding window closes.
	auction := publishedAuction(-time.Hour)
	item := &models.Item{BuyNowPrice: floatPtr(250)}

	assert.NoError(t, bidding.ValidateBuyNow(auction, item))
}

func TestMinimumRequired(t *testing.T) {
	item := &models.Item{StartingBid: floatPtr(100), MinIncrement: floatPtr(10)}

	assert.Equal(t, 100.0, bidding.MinimumRequired(item, nil))
	assert.Equal(t, 160.0, bidding.MinimumRequired(item, &models.Bid{Amount: 150}))
}

func TestBidderID_StableAndCaseInsensitive(t *testing.T) {
	a := bidding.BidderID("Bidder@Example.com")
	b := bidding.BidderID("bidder@example.com")
	c := bidding.BidderID("other@example.com")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.NotEqual(t, uuid16Zero(), a.String())
}

func uuid16Zero() string {
	return "00000000-0000-0000-0000-000000000000"
}

func TestOrderedChecks_SoldReportedAfterLifecycle(t *testing.T) {
	// A sold item in a draft auction reports the lifecycle problem first.
	auction := &models.Auction{Status: models.AuctionStatusDraft}
	item := &models.Item{IsSold: true}

	err := bidding.ValidateBid(auction, item, nil, 50, time.Now())
	assert.True(t, errors.Is(err, bidding.ErrAuctionNotActive))
}
