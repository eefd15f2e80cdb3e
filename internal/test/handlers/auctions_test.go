package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"bidhouse-backend/internal/handlers"
	"bidhouse-backend/internal/models"
)

// fakeAuctionStore embeds the interface so only the methods a test exercises
// need real implementations; anything else panics.
type fakeAuctionStore struct {
	handlers.AuctionStore
	auction  *models.Auction
	statuses []string
}

func (f *fakeAuctionStore) GetAuction(auctionID uuid.UUID) (*models.Auction, error) {
	return f.auction, nil
}

func (f *fakeAuctionStore) UpdateAuctionStatus(auctionID uuid.UUID, status string) (*models.Auction, error) {
	f.statuses = append(f.statuses, status)
	updated := *f.auction
	updated.Status = status
	return &updated, nil
}

func publishRouter(storeClient handlers.AuctionStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := handlers.NewAuctionsHandler(storeClient, nil)

	router := gin.New()
	router.POST("/auctions/:auction_id/publish", handler.PublishAuction)
	return router
}

func publishRequest(auctionID uuid.UUID) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/auctions/"+auctionID.String()+"/publish", nil)
}

func TestPublishAuctionRequiresStartAndEndTimes(t *testing.T) {
	auctionID := uuid.New()
	start := time.Now()
	storeClient := &fakeAuctionStore{
		auction: &models.Auction{
			AuctionID: auctionID,
			Status:    models.AuctionStatusDraft,
			StartTime: &start,
		},
	}

	recorder := httptest.NewRecorder()
	publishRouter(storeClient).ServeHTTP(recorder, publishRequest(auctionID))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "start_time and end_time must be set")
	assert.Empty(t, storeClient.statuses)
}

func TestPublishAuctionRejectsClosed(t *testing.T) {
	auctionID := uuid.New()
	storeClient := &fakeAuctionStore{
		auction: &models.Auction{AuctionID: auctionID, Status: models.AuctionStatusClosed},
	}

	recorder := httptest.NewRecorder()
	publishRouter(storeClient).ServeHTTP(recorder, publishRequest(auctionID))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "auction is closed")
	assert.Empty(t, storeClient.statuses)
}

func TestPublishAuctionWithScheduledTimes(t *testing.T) {
	auctionID := uuid.New()
	start := time.Now()
	end := start.Add(48 * time.Hour)
	storeClient := &fakeAuctionStore{
		auction: &models.Auction{
			AuctionID: auctionID,
			Status:    models.AuctionStatusDraft,
			StartTime: &start,
			EndTime:   &end,
		},
	}

	recorder := httptest.NewRecorder()
	publishRouter(storeClient).ServeHTTP(recorder, publishRequest(auctionID))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, []string{models.AuctionStatusPublished}, storeClient.statuses)
	assert.Contains(t, recorder.Body.String(), `"status":"published"`)
}
