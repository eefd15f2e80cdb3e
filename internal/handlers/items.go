package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bidhouse-backend/internal/models"
	"bidhouse-backend/internal/pricing"
	"bidhouse-backend/internal/store"
	"bidhouse-backend/internal/supabase"
)

const (
	minItemImages = 1
	maxItemImages = 5
)

type ItemsHandler struct {
	store   *store.Client
	storage *supabase.StorageClient
}

func NewItemsHandler(storeClient *store.Client, storage *supabase.StorageClient) *ItemsHandler {
	return &ItemsHandler{store: storeClient, storage: storage}
}

// CreateItem inserts an item with its initial images. The first URL becomes
// the primary image. A failed image insert rolls the item back so no
// imageless items leak into the auction.
func (h *ItemsHandler) CreateItem(c *gin.Context) {
	profileID, ok := authedProfileID(c)
	if !ok {
		return
	}
	if _, ok := requireActiveProfile(c, h.store, profileID); !ok {
		return
	}

	var req models.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}
	if req.Title == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "title is required"})
		return
	}
	if len(req.ImageURLs) < minItemImages || len(req.ImageURLs) > maxItemImages {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "between 1 and 5 image urls are required"})
		return
	}

	auctionID, err := uuid.Parse(req.AuctionID)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid auction_id"})
		return
	}
	if _, err := h.store.GetAuction(auctionID); err != nil {
		respondReadError(c, err, "auction")
		return
	}

	params := store.CreateItemParams{
		AuctionID: auctionID,
		Title:     req.Title,
		Brand:     req.Brand,
		Model:     req.Model,
		Year:      req.Year,
	}
	if req.AIDescription != "" {
		params.AIDescription = &req.AIDescription
	}

	item, err := h.store.CreateItem(params)
	if err != nil {
		respondWriteError(c, err, "create item")
		return
	}

	images, err := h.store.AddItemImages(item.ItemID, req.ImageURLs, 1)
	if err != nil {
		if delErr := h.store.DeleteItem(item.ItemID); delErr != nil {
			log.Printf("failed to roll back item %s after image insert failure: %v", item.ItemID, delErr)
		}
		respondWriteError(c, err, "save item images")
		return
	}

	c.JSON(http.StatusOK, models.CreateItemResponse{
		Item:   *item,
		Images: images,
	})
}

func (h *ItemsHandler) GetItem(c *gin.Context) {
	itemID, ok := parseUUIDParam(c, "item_id")
	if !ok {
		return
	}

	item, err := h.store.GetItem(itemID)
	if err != nil {
		respondReadError(c, err, "item")
		return
	}

	detail, err := h.itemDetail(*item)
	if err != nil {
		respondReadError(c, err, "item details")
		return
	}

	c.JSON(http.StatusOK, detail)
}

// ListByAuction returns the seller view of an auction's items, newest first,
// each with images, comps and the suggested starting price.
func (h *ItemsHandler) ListByAuction(c *gin.Context) {
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

	details, err := h.itemDetails(items)
	if err != nil {
		respondReadError(c, err, "item details")
		return
	}

	c.JSON(http.StatusOK, models.ItemsResponse{
		AuctionID: auctionID.String(),
		Items:     details,
	})
}

// ListMine returns every item across the caller's auctions.
func (h *ItemsHandler) ListMine(c *gin.Context) {
	profileID, ok := authedProfileID(c)
	if !ok {
		return
	}

	auctions, err := h.store.ListAuctionsByProfile(profileID)
	if err != nil {
		respondReadError(c, err, "auctions")
		return
	}

	auctionIDs := make([]uuid.UUID, len(auctions))
	for i, a := range auctions {
		auctionIDs[i] = a.AuctionID
	}

	items, err := h.store.ListItemsByAuctionIDs(auctionIDs)
	if err != nil {
		respondReadError(c, err, "items")
		return
	}

	details, err := h.itemDetails(items)
	if err != nil {
		respondReadError(c, err, "item details")
		return
	}

	c.JSON(http.StatusOK, models.ItemsResponse{
		ProfileID: profileID.String(),
		Items:     details,
	})
}

func (h *ItemsHandler) UpdateItem(c *gin.Context) {
	itemID, ok := parseUUIDParam(c, "item_id")
	if !ok {
		return
	}

	var req models.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	item, err := h.store.UpdateItem(itemID, req)
	if err != nil {
		if store.IsNotFound(err) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "item not found"})
			return
		}
		if errors.Is(err, store.ErrNoUpdates) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
			return
		}
		respondWriteError(c, err, "update item")
		return
	}

	c.JSON(http.StatusOK, item)
}

// DeleteItem cascades like the auction delete: comps, image rows and stored
// files go best-effort, the item row itself is fatal.
func (h *ItemsHandler) DeleteItem(c *gin.Context) {
	itemID, ok := parseUUIDParam(c, "item_id")
	if !ok {
		return
	}

	if _, err := h.store.GetItem(itemID); err != nil {
		respondReadError(c, err, "item")
		return
	}

	if err := h.store.DeleteCompsByItem(itemID); err != nil {
		log.Printf("failed to delete comps for item %s: %v", itemID, err)
	}
	if err := h.store.DeleteImagesByItem(itemID); err != nil {
		log.Printf("failed to delete images for item %s: %v", itemID, err)
	}
	if h.storage != nil {
		if err := h.storage.DeleteItemImages(itemID); err != nil {
			log.Printf("failed to delete stored images for item %s: %v", itemID, err)
		}
	}

	if err := h.store.DeleteItem(itemID); err != nil {
		respondWriteError(c, err, "delete item")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "item deleted",
		"item_id": itemID.String(),
	})
}

func (h *ItemsHandler) UpdateAuctionSettings(c *gin.Context) {
	itemID, ok := parseUUIDParam(c, "item_id")
	if !ok {
		return
	}

	var req models.ItemAuctionSettings
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	item, err := h.store.UpdateItemAuctionSettings(itemID, req)
	if err != nil {
		if store.IsNotFound(err) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "item not found"})
			return
		}
		if errors.Is(err, store.ErrNoUpdates) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
			return
		}
		respondWriteError(c, err, "update item settings")
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *ItemsHandler) BatchUpdateAuctionSettings(c *gin.Context) {
	var req models.BatchItemAuctionSettings
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}
	if len(req.ItemIDs) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "item_ids is required"})
		return
	}

	itemIDs := make([]uuid.UUID, 0, len(req.ItemIDs))
	for _, raw := range req.ItemIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid item id: " + raw})
			return
		}
		itemIDs = append(itemIDs, id)
	}

	items, err := h.store.BatchUpdateItemAuctionSettings(itemIDs, req)
	if err != nil {
		if errors.Is(err, store.ErrNoUpdates) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
			return
		}
		respondWriteError(c, err, "update item settings")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "settings updated",
		"updated": len(items),
		"items":   items,
	})
}

func (h *ItemsHandler) itemDetail(item models.Item) (*models.ItemDetail, error) {
	details, err := h.itemDetails([]models.Item{item})
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}

// itemDetails decorates items with images, comps and the suggested starting
// price in two batched queries.
func (h *ItemsHandler) itemDetails(items []models.Item) ([]models.ItemDetail, error) {
	itemIDs := make([]uuid.UUID, len(items))
	for i, item := range items {
		itemIDs[i] = item.ItemID
	}

	images, err := h.store.ListImagesByItemIDs(itemIDs)
	if err != nil {
		return nil, err
	}
	comps, err := h.store.ListCompsByItemIDs(itemIDs)
	if err != nil {
		return nil, err
	}

	imagesByItem := groupImages(images)
	compsByItem := make(map[uuid.UUID][]models.Comp)
	for _, comp := range comps {
		compsByItem[comp.ItemID] = append(compsByItem[comp.ItemID], comp)
	}

	details := make([]models.ItemDetail, 0, len(items))
	for _, item := range items {
		itemComps := compsByItem[item.ItemID]

		prices := make([]float64, 0, len(itemComps))
		for _, comp := range itemComps {
			prices = append(prices, comp.SoldPrice)
		}

		details = append(details, models.ItemDetail{
			Item:                   item,
			Images:                 imagesByItem[item.ItemID],
			Comps:                  itemComps,
			SuggestedStartingPrice: pricing.SuggestedStartingPrice(prices),
		})
	}
	return details, nil
}
