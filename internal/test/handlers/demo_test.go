package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"bidhouse-backend/internal/handlers"
	"bidhouse-backend/internal/models"
)

type fakeDemoStore struct {
	auction    *models.Auction
	items      []models.Item
	comps      map[uuid.UUID][]models.Comp
	guesses    map[uuid.UUID][]models.Bid
	listedOnly []bool
}

func (f *fakeDemoStore) GetAuction(auctionID uuid.UUID) (*models.Auction, error) {
	return f.auction, nil
}

func (f *fakeDemoStore) ListItemsForPublic(auctionID uuid.UUID, listedOnly bool) ([]models.Item, error) {
	f.listedOnly = append(f.listedOnly, listedOnly)
	if !listedOnly {
		return f.items, nil
	}
	var listed []models.Item
	for _, item := range f.items {
		if item.IsListed {
			listed = append(listed, item)
		}
	}
	return listed, nil
}

func (f *fakeDemoStore) ListImagesByItemIDs(itemIDs []uuid.UUID) ([]models.ItemImage, error) {
	return nil, nil
}

func (f *fakeDemoStore) ListCompsByItem(itemID uuid.UUID) ([]models.Comp, error) {
	return f.comps[itemID], nil
}

func (f *fakeDemoStore) ListGuessesByItem(itemID uuid.UUID) ([]models.Bid, error) {
	return f.guesses[itemID], nil
}

func demoRouter(storeClient handlers.DemoStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := handlers.NewDemoHandler(storeClient)

	router := gin.New()
	router.GET("/auctions/:auction_id/demo-results", handler.Results)
	return router
}

func TestDemoResultsScoreUnlistedItems(t *testing.T) {
	auctionID := uuid.New()
	listedItem := models.Item{ItemID: uuid.New(), AuctionID: auctionID, Title: "Listed lamp", IsListed: true}
	unlistedItem := models.Item{ItemID: uuid.New(), AuctionID: auctionID, Title: "Unlisted radio", IsListed: false}

	storeClient := &fakeDemoStore{
		auction: &models.Auction{AuctionID: auctionID, IsDemo: true, Status: models.AuctionStatusPublished},
		items:   []models.Item{listedItem, unlistedItem},
		comps: map[uuid.UUID][]models.Comp{
			unlistedItem.ItemID: {{SoldPrice: 90}, {SoldPrice: 110}},
		},
		guesses: map[uuid.UUID][]models.Bid{
			unlistedItem.ItemID: {
				{BidID: uuid.New(), ItemID: unlistedItem.ItemID, Amount: 120},
				{BidID: uuid.New(), ItemID: unlistedItem.ItemID, Amount: 90},
			},
		},
	}

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/auctions/"+auctionID.String()+"/demo-results", nil)
	demoRouter(storeClient).ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, []bool{false}, storeClient.listedOnly)

	var resp models.DemoResultsResponse
	assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	assert.Len(t, resp.Results, 2)

	var unlisted *models.DemoItemResult
	for i := range resp.Results {
		if resp.Results[i].Item.ItemID == unlistedItem.ItemID {
			unlisted = &resp.Results[i]
		}
	}
	assert.NotNil(t, unlisted)
	assert.Equal(t, 100.0, unlisted.AvgCompPrice)
	assert.Len(t, unlisted.Guesses, 2)
	assert.NotNil(t, unlisted.Winner)
	assert.Equal(t, 90.0, unlisted.Winner.Amount)
}

func TestDemoResultsRejectRegularAuction(t *testing.T) {
	auctionID := uuid.New()
	storeClient := &fakeDemoStore{
		auction: &models.Auction{AuctionID: auctionID, IsDemo: false, Status: models.AuctionStatusPublished},
	}

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/auctions/"+auctionID.String()+"/demo-results", nil)
	demoRouter(storeClient).ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "not a demo")
}
