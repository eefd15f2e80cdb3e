package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"bidhouse-backend/internal/models"
	"bidhouse-backend/internal/services"
	"bidhouse-backend/internal/store"
)

type CompsHandler struct {
	store *store.Client
	comps *services.CompsService
}

func NewCompsHandler(storeClient *store.Client, compsService *services.CompsService) *CompsHandler {
	return &CompsHandler{store: storeClient, comps: compsService}
}

// Generate runs comparable-sale discovery for one item.
func (h *CompsHandler) Generate(c *gin.Context) {
	var req models.CompsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}
	if req.ItemID == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "item_id is required"})
		return
	}

	resp, err := h.comps.Generate(req)
	if err != nil {
		if store.IsNotFound(err) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "comps search failed", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GenerateBatch fans discovery out over up to 100 items in one call.
func (h *CompsHandler) GenerateBatch(c *gin.Context) {
	var req models.BatchCompsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}
	if len(req.Items) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "items is required"})
		return
	}
	if len(req.Items) > services.BatchCompsLimit {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: fmt.Sprintf("batch is limited to %d items", services.BatchCompsLimit),
		})
		return
	}

	c.JSON(http.StatusOK, h.comps.GenerateBatch(req.Items))
}

// Stored returns the raw persisted comps for an item.
func (h *CompsHandler) Stored(c *gin.Context) {
	itemID, ok := parseUUIDParam(c, "item_id")
	if !ok {
		return
	}

	if _, err := h.store.GetItem(itemID); err != nil {
		respondReadError(c, err, "item")
		return
	}

	comps, err := h.store.ListCompsByItem(itemID)
	if err != nil {
		respondReadError(c, err, "comps")
		return
	}

	c.JSON(http.StatusOK, models.StoredCompsResponse{
		ItemID: itemID.String(),
		Comps:  comps,
	})
}

// Saved returns the persisted comps in the shape the listing editor
// renders.
func (h *CompsHandler) Saved(c *gin.Context) {
	itemID, ok := parseUUIDParam(c, "item_id")
	if !ok {
		return
	}

	if _, err := h.store.GetItem(itemID); err != nil {
		respondReadError(c, err, "item")
		return
	}

	comps, err := h.store.ListCompsByItem(itemID)
	if err != nil {
		respondReadError(c, err, "comps")
		return
	}

	saved := make([]models.SavedComp, 0, len(comps))
	for _, comp := range comps {
		var dateText *string
		if comp.SoldAt != nil {
			text := comp.SoldAt.Format("2006-01-02")
			dateText = &text
		}
		saved = append(saved, models.SavedComp{
			CompID:    comp.CompID,
			Source:    comp.Source,
			Link:      comp.SourceURL,
			SalePrice: comp.SoldPrice,
			Currency:  comp.Currency,
			DateText:  dateText,
			Title:     comp.Notes,
		})
	}

	c.JSON(http.StatusOK, models.SavedCompsResponse{
		ItemID:     itemID.String(),
		CompsCount: len(saved),
		Comps:      saved,
	})
}
