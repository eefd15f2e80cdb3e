package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bidhouse-backend/internal/export"
	"bidhouse-backend/internal/store"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ExportHandler struct {
	store *store.Client
}

func NewExportHandler(storeClient *store.Client) *ExportHandler {
	return &ExportHandler{store: storeClient}
}

// AuctionExcel streams the auction's inventory as an .xlsx download, one
// row per item with its primary image URL.
func (h *ExportHandler) AuctionExcel(c *gin.Context) {
	auctionID, ok := parseUUIDParam(c, "auction_id")
	if !ok {
		return
	}

	auction, err := h.store.GetAuction(auctionID)
	if err != nil {
		respondReadError(c, err, "auction")
		return
	}

	items, err := h.store.ListItemsForPublic(auctionID, false)
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

	primaryImage := make(map[uuid.UUID]string)
	for _, img := range images {
		if img.Position == 1 {
			primaryImage[img.ItemID] = img.URL
		}
	}

	data, err := export.AuctionWorkbook(items, primaryImage)
	if err != nil {
		respondWriteError(c, err, "build export")
		return
	}

	filename := export.WorkbookFilename(auction.AuctionName)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}
