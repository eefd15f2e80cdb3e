package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bidhouse-backend/internal/models"
	"bidhouse-backend/internal/pricing"
)

// DemoStore is the persistence surface demo scoring reads from.
type DemoStore interface {
	GetAuction(auctionID uuid.UUID) (*models.Auction, error)
	ListItemsForPublic(auctionID uuid.UUID, listedOnly bool) ([]models.Item, error)
	ListImagesByItemIDs(itemIDs []uuid.UUID) ([]models.ItemImage, error)
	ListCompsByItem(itemID uuid.UUID) ([]models.Comp, error)
	ListGuessesByItem(itemID uuid.UUID) ([]models.Bid, error)
}

type DemoHandler struct {
	store DemoStore
}

func NewDemoHandler(storeClient DemoStore) *DemoHandler {
	return &DemoHandler{store: storeClient}
}

// Results scores a demo auction: for each item the guess closest to the
// average comp price wins, earliest guess first on ties. Guesses are
// accepted on unlisted items too, so scoring covers every item of the
// auction.
func (h *DemoHandler) Results(c *gin.Context) {
	auctionID, ok := parseUUIDParam(c, "auction_id")
	if !ok {
		return
	}

	auction, err := h.store.GetAuction(auctionID)
	if err != nil {
		respondReadError(c, err, "auction")
		return
	}
	if !auction.IsDemo {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "auction is not a demo"})
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
	imagesByItem := groupImages(images)

	results := make([]models.DemoItemResult, 0, len(items))
	for _, item := range items {
		comps, err := h.store.ListCompsByItem(item.ItemID)
		if err != nil {
			respondReadError(c, err, "comps")
			return
		}
		prices := make([]float64, 0, len(comps))
		for _, comp := range comps {
			prices = append(prices, comp.SoldPrice)
		}
		avgPrice := pricing.AverageCompPrice(prices)

		guesses, err := h.store.ListGuessesByItem(item.ItemID)
		if err != nil {
			respondReadError(c, err, "guesses")
			return
		}

		scored, winner, winnerDiff := pricing.ScoreGuesses(avgPrice, guesses)

		guessResults := make([]models.GuessResult, 0, len(scored))
		for _, g := range scored {
			guessResults = append(guessResults, models.GuessResult{
				Bid:        g.Bid,
				Difference: g.Difference,
			})
		}

		result := models.DemoItemResult{
			Item: models.ItemWithImages{
				Item:   item,
				Images: imagesByItem[item.ItemID],
			},
			AvgCompPrice: avgPrice,
			CompCount:    len(comps),
			Guesses:      guessResults,
			Winner:       winner,
		}
		if winner != nil {
			result.WinnerDifference = &winnerDiff
		}
		results = append(results, result)
	}

	c.JSON(http.StatusOK, models.DemoResultsResponse{
		Results: results,
		Auction: auction,
	})
}
