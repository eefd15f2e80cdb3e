package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bidhouse-backend/internal/bidding"
	"bidhouse-backend/internal/models"
	"bidhouse-backend/internal/store"
	"bidhouse-backend/internal/supabase"
)

// AuctionStore is the persistence surface auction handlers operate on.
// *store.Client satisfies it; tests substitute fakes.
type AuctionStore interface {
	GetProfile(profileID uuid.UUID) (*models.Profile, error)
	CreateAuction(profileID uuid.UUID, auctionName string, isDemo bool) (*models.Auction, error)
	GetAuction(auctionID uuid.UUID) (*models.Auction, error)
	ListAuctionsByProfile(profileID uuid.UUID) ([]models.Auction, error)
	ListPublishedAuctions() ([]models.Auction, error)
	UpdateAuctionName(auctionID uuid.UUID, auctionName string) (*models.Auction, error)
	UpdateAuctionStatus(auctionID uuid.UUID, status string) (*models.Auction, error)
	UpdateAuctionSettings(auctionID uuid.UUID, settings models.AuctionSettingsUpdate) (*models.Auction, error)
	DeleteAuction(auctionID uuid.UUID) error
	ListItemsByAuction(auctionID uuid.UUID) ([]models.Item, error)
	ListItemsForPublic(auctionID uuid.UUID, listedOnly bool) ([]models.Item, error)
	DeleteItemsByAuction(auctionID uuid.UUID) error
	ListImagesByItemIDs(itemIDs []uuid.UUID) ([]models.ItemImage, error)
	DeleteImagesByItem(itemID uuid.UUID) error
	ListBidsByItemIDs(itemIDs []uuid.UUID) ([]models.Bid, error)
	DeleteCompsByItem(itemID uuid.UUID) error
}

type AuctionsHandler struct {
	store   AuctionStore
	storage *supabase.StorageClient
}

func NewAuctionsHandler(storeClient AuctionStore, storage *supabase.StorageClient) *AuctionsHandler {
	return &AuctionsHandler{store: storeClient, storage: storage}
}

func (h *AuctionsHandler) CreateAuction(c *gin.Context) {
	profileID, ok := authedProfileID(c)
	if !ok {
		return
	}
	if _, ok := requireActiveProfile(c, h.store, profileID); !ok {
		return
	}

	var req models.CreateAuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}
	if req.AuctionName == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "auction_name is required"})
		return
	}

	auction, err := h.store.CreateAuction(profileID, req.AuctionName, req.IsDemo)
	if err != nil {
		respondWriteError(c, err, "create auction")
		return
	}

	c.JSON(http.StatusOK, auction)
}

func (h *AuctionsHandler) GetAuction(c *gin.Context) {
	auctionID, ok := parseUUIDParam(c, "auction_id")
	if !ok {
		return
	}

	auction, err := h.store.GetAuction(auctionID)
	if err != nil {
		respondReadError(c, err, "auction")
		return
	}

	c.JSON(http.StatusOK, auction)
}

func (h *AuctionsHandler) ListAuctions(c *gin.Context) {
	profileID, ok := authedProfileID(c)
	if !ok {
		return
	}

	auctions, err := h.store.ListAuctionsByProfile(profileID)
	if err != nil {
		respondReadError(c, err, "auctions")
		return
	}

	c.JSON(http.StatusOK, models.AuctionsResponse{
		ProfileID: profileID.String(),
		Auctions:  auctions,
	})
}

func (h *AuctionsHandler) UpdateAuction(c *gin.Context) {
	auctionID, ok := parseUUIDParam(c, "auction_id")
	if !ok {
		return
	}

	var req models.UpdateAuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}
	if req.AuctionName == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "auction_name is required"})
		return
	}

	auction, err := h.store.UpdateAuctionName(auctionID, req.AuctionName)
	if err != nil {
		if store.IsNotFound(err) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "auction not found"})
			return
		}
		respondWriteError(c, err, "update auction")
		return
	}

	c.JSON(http.StatusOK, auction)
}

// UpdateSettings applies partial auction settings. Closed auctions reject
// every change; publishing through a status change requires both start and
// end times to be known after the update.
func (h *AuctionsHandler) UpdateSettings(c *gin.Context) {
	auctionID, ok := parseUUIDParam(c, "auction_id")
	if !ok {
		return
	}

	auction, err := h.store.GetAuction(auctionID)
	if err != nil {
		respondReadError(c, err, "auction")
		return
	}
	if auction.Status == models.AuctionStatusClosed {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "auction is closed"})
		return
	}

	var req models.AuctionSettingsUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	if req.Status != nil {
		if !models.ValidAuctionStatus(*req.Status) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid status"})
			return
		}
		if *req.Status == models.AuctionStatusPublished {
			startTime := auction.StartTime
			if req.StartTime != nil {
				startTime = req.StartTime
			}
			endTime := auction.EndTime
			if req.EndTime != nil {
				endTime = req.EndTime
			}
			if startTime == nil || endTime == nil {
				c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "start_time and end_time must be set before publishing"})
				return
			}
		}
	}

	updated, err := h.store.UpdateAuctionSettings(auctionID, req)
	if err != nil {
		if store.IsNotFound(err) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "auction not found"})
			return
		}
		if errors.Is(err, store.ErrNoUpdates) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
			return
		}
		respondWriteError(c, err, "update auction settings")
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *AuctionsHandler) PublishAuction(c *gin.Context) {
	auctionID, ok := parseUUIDParam(c, "auction_id")
	if !ok {
		return
	}

	auction, err := h.store.GetAuction(auctionID)
	if err != nil {
		respondReadError(c, err, "auction")
		return
	}
	if auction.Status == models.AuctionStatusClosed {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "auction is closed"})
		return
	}
	if auction.StartTime == nil || auction.EndTime == nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "start_time and end_time must be set before publishing"})
		return
	}

	updated, err := h.store.UpdateAuctionStatus(auctionID, models.AuctionStatusPublished)
	if err != nil {
		respondWriteError(c, err, "publish auction")
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *AuctionsHandler) CloseAuction(c *gin.Context) {
	auctionID, ok := parseUUIDParam(c, "auction_id")
	if !ok {
		return
	}

	if _, err := h.store.GetAuction(auctionID); err != nil {
		respondReadError(c, err, "auction")
		return
	}

	updated, err := h.store.UpdateAuctionStatus(auctionID, models.AuctionStatusClosed)
	if err != nil {
		respondWriteError(c, err, "close auction")
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteAuction cascades: comps, image rows and stored files are removed
// best-effort per item, then items and the auction itself. Only the last
// two failures abort the delete.
func (h *AuctionsHandler) DeleteAuction(c *gin.Context) {
	auctionID, ok := parseUUIDParam(c, "auction_id")
	if !ok {
		return
	}

	if _, err := h.store.GetAuction(auctionID); err != nil {
		respondReadError(c, err, "auction")
		return
	}

	items, err := h.store.ListItemsByAuction(auctionID)
	if err != nil {
		respondReadError(c, err, "items")
		return
	}

	for _, item := range items {
		if err := h.store.DeleteCompsByItem(item.ItemID); err != nil {
			log.Printf("failed to delete comps for item %s: %v", item.ItemID, err)
		}
		if err := h.store.DeleteImagesByItem(item.ItemID); err != nil {
			log.Printf("failed to delete images for item %s: %v", item.ItemID, err)
		}
		if h.storage != nil {
			if err := h.storage.DeleteItemImages(item.ItemID); err != nil {
				log.Printf("failed to delete stored images for item %s: %v", item.ItemID, err)
			}
		}
	}

	if err := h.store.DeleteItemsByAuction(auctionID); err != nil {
		respondWriteError(c, err, "delete auction items")
		return
	}
	if err := h.store.DeleteAuction(auctionID); err != nil {
		respondWriteError(c, err, "delete auction")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "auction deleted",
		"auction_id": auctionID.String(),
	})
}

func (h *AuctionsHandler) ListPublicAuctions(c *gin.Context) {
	auctions, err := h.store.ListPublishedAuctions()
	if err != nil {
		respondReadError(c, err, "auctions")
		return
	}

	c.JSON(http.StatusOK, models.PublicAuctionsResponse{Auctions: auctions})
}

// GetPublicAuction returns the bidder-facing view: the auction and its
// items, each with images, live current bid and bid count. Draft auctions
// show every item so sellers can preview; once published only listed items
// appear.
func (h *AuctionsHandler) GetPublicAuction(c *gin.Context) {
	auctionID, ok := parseUUIDParam(c, "auction_id")
	if !ok {
		return
	}

	auction, err := h.store.GetAuction(auctionID)
	if err != nil {
		respondReadError(c, err, "auction")
		return
	}

	listedOnly := auction.Status != models.AuctionStatusDraft
	items, err := h.store.ListItemsForPublic(auctionID, listedOnly)
	if err != nil {
		respondReadError(c, err, "items")
		return
	}

	itemIDs := make([]uuid.UUID, len(items))
	for i, item := range items {
		itemIDs[i] = item.ItemID
	}

	images, err := h.store.ListImagesByItemIDs(itemIDs)
	if err != nil {
		respondReadError(c, err, "images")
		return
	}
	bids, err := h.store.ListBidsByItemIDs(itemIDs)
	if err != nil {
		respondReadError(c, err, "bids")
		return
	}

	imagesByItem := groupImages(images)
	bidsByItem := groupBids(bids)

	publicItems := make([]models.PublicItem, 0, len(items))
	for _, item := range items {
		itemBids := bidsByItem[item.ItemID]

		currentBid := bidding.StartingBid(&item)
		for _, b := range itemBids {
			if b.Amount > currentBid {
				currentBid = b.Amount
			}
		}

		publicItems = append(publicItems, models.PublicItem{
			Item:       item,
			Images:     imagesByItem[item.ItemID],
			CurrentBid: currentBid,
			BidCount:   len(itemBids),
		})
	}

	c.JSON(http.StatusOK, models.PublicAuctionResponse{
		Auction: *auction,
		Items:   publicItems,
	})
}

// GetAuctionBids is the seller dashboard view: every item with its bids
// sorted highest first.
func (h *AuctionsHandler) GetAuctionBids(c *gin.Context) {
	auctionID, ok := parseUUIDParam(c, "auction_id")
	if !ok {
		return
	}

	auction, err := h.store.GetAuction(auctionID)
	if err != nil {
		respondReadError(c, err, "auction")
		return
	}

	items, err := h.store.ListItemsByAuction(auctionID)
	if err != nil {
		respondReadError(c, err, "items")
		return
	}

	itemIDs := make([]uuid.UUID, len(items))
	for i, item := range items {
		itemIDs[i] = item.ItemID
	}
	bids, err := h.store.ListBidsByItemIDs(itemIDs)
	if err != nil {
		respondReadError(c, err, "bids")
		return
	}
	bidsByItem := groupBids(bids)

	results := make([]models.ItemWithBids, 0, len(items))
	for _, item := range items {
		itemBids := bidsByItem[item.ItemID]

		var highest *float64
		for i := range itemBids {
			if highest == nil || itemBids[i].Amount > *highest {
				highest = &itemBids[i].Amount
			}
		}

		results = append(results, models.ItemWithBids{
			Item:       item,
			Name:       item.Title,
			Bids:       itemBids,
			BidCount:   len(itemBids),
			HighestBid: highest,
		})
	}

	c.JSON(http.StatusOK, models.AuctionBidsResponse{
		Auction:       *auction,
		ItemsWithBids: results,
	})
}

func groupImages(images []models.ItemImage) map[uuid.UUID][]models.ItemImage {
	grouped := make(map[uuid.UUID][]models.ItemImage)
	for _, img := range images {
		grouped[img.ItemID] = append(grouped[img.ItemID], img)
	}
	return grouped
}

func groupBids(bids []models.Bid) map[uuid.UUID][]models.Bid {
	grouped := make(map[uuid.UUID][]models.Bid)
	for _, b := range bids {
		grouped[b.ItemID] = append(grouped[b.ItemID], b)
	}
	return grouped
}
