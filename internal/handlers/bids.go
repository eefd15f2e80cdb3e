package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bidhouse-backend/internal/bidding"
	"bidhouse-backend/internal/models"
	"bidhouse-backend/internal/store"
	"bidhouse-backend/internal/supabase"
)

type BidsHandler struct {
	store    *store.Client
	realtime *supabase.RealtimeClient
}

func NewBidsHandler(storeClient *store.Client, realtime *supabase.RealtimeClient) *BidsHandler {
	return &BidsHandler{store: storeClient, realtime: realtime}
}

// PlaceBid accepts a public bid or, on demo auctions, a price guess. The
// bidder needs no account; identity is derived from the email address.
func (h *BidsHandler) PlaceBid(c *gin.Context) {
	itemID, ok := parseUUIDParam(c, "item_id")
	if !ok {
		return
	}

	var req models.BidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}
	if req.BidderEmail == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "bidder_email is required"})
		return
	}

	item, err := h.store.GetItem(itemID)
	if err != nil {
		respondReadError(c, err, "item")
		return
	}
	auction, err := h.store.GetAuction(item.AuctionID)
	if err != nil {
		respondReadError(c, err, "auction")
		return
	}

	var highest *models.Bid
	if !auction.IsDemo {
		highest, err = h.store.HighestBid(itemID)
		if err != nil {
			respondReadError(c, err, "bids")
			return
		}
	}

	if err := bidding.ValidateBid(auction, item, highest, req.BidAmount, time.Now()); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	bidderID := bidding.BidderID(req.BidderEmail)
	bid, err := h.store.InsertBid(itemID, bidderID, req.BidderEmail, req.BidderName, req.BidAmount)
	if err != nil {
		respondWriteError(c, err, "place bid")
		return
	}

	message := "Bid placed successfully"
	if auction.IsDemo {
		message = "Guess recorded"
	} else {
		// Denormalized for the public item views; the bids table stays the
		// source of truth.
		if err := h.store.SetItemCurrentBid(itemID, req.BidAmount); err != nil {
			log.Printf("failed to update current bid for item %s: %v", itemID, err)
		}
	}

	if h.realtime != nil {
		payload := supabase.BidPlacedPayload(itemID, req.BidAmount)
		if err := h.realtime.PublishItemEvent(itemID, "bid_placed", payload); err != nil {
			log.Printf("failed to publish bid event for item %s: %v", itemID, err)
		}
	}

	c.JSON(http.StatusOK, models.BidResponse{
		Message:        message,
		Bid:            *bid,
		CurrentHighest: req.BidAmount,
		IsDemo:         auction.IsDemo,
	})
}

// BuyNow sells the item immediately at its configured price and records the
// order. The availability check and the sold flip are separate gateway
// writes, so two simultaneous buyers can in principle both succeed; the
// auction operator resolves that manually.
func (h *BidsHandler) BuyNow(c *gin.Context) {
	itemID, ok := parseUUIDParam(c, "item_id")
	if !ok {
		return
	}

	var req models.BuyNowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}
	if req.BuyerEmail == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "buyer_email is required"})
		return
	}

	item, err := h.store.GetItem(itemID)
	if err != nil {
		respondReadError(c, err, "item")
		return
	}
	auction, err := h.store.GetAuction(item.AuctionID)
	if err != nil {
		respondReadError(c, err, "auction")
		return
	}

	if err := bidding.ValidateBuyNow(auction, item); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	buyerID := bidding.BidderID(req.BuyerEmail)
	order, err := h.store.CreateOrder(store.CreateOrderParams{
		ItemID:     itemID,
		AuctionID:  item.AuctionID,
		BuyerID:    buyerID,
		BuyerEmail: req.BuyerEmail,
		BuyerName:  req.BuyerName,
		Amount:     *item.BuyNowPrice,
		OrderType:  models.OrderTypeBuyNow,
	})
	if err != nil {
		respondWriteError(c, err, "create order")
		return
	}

	soldAt := time.Now()
	if err := h.store.MarkItemSold(itemID, soldAt); err != nil {
		respondWriteError(c, err, "mark item sold")
		return
	}

	item.IsSold = true
	item.SoldAt = &soldAt
	order.Item = item

	if h.realtime != nil {
		payload := supabase.ItemSoldPayload(itemID, req.BuyerEmail)
		if err := h.realtime.PublishItemEvent(itemID, "item_sold", payload); err != nil {
			log.Printf("failed to publish sold event for item %s: %v", itemID, err)
		}
	}

	c.JSON(http.StatusOK, models.BuyNowResponse{
		Message: "Purchase successful",
		Order:   *order,
	})
}

func (h *BidsHandler) ListItemBids(c *gin.Context) {
	itemID, ok := parseUUIDParam(c, "item_id")
	if !ok {
		return
	}

	if _, err := h.store.GetItem(itemID); err != nil {
		respondReadError(c, err, "item")
		return
	}

	bids, err := h.store.ListBidsByItem(itemID)
	if err != nil {
		respondReadError(c, err, "bids")
		return
	}

	c.JSON(http.StatusOK, models.ItemBidsResponse{
		ItemID: itemID.String(),
		Bids:   bids,
	})
}
