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

type listOrdersCall struct {
	buyerEmail string
	auctionID  *uuid.UUID
}

type fakeOrderStore struct {
	orders []models.Order
	calls  []listOrdersCall
}

func (f *fakeOrderStore) GetOrder(orderID uuid.UUID) (*models.Order, error) {
	return &f.orders[0], nil
}

func (f *fakeOrderStore) ListOrders(buyerEmail string, auctionID *uuid.UUID) ([]models.Order, error) {
	f.calls = append(f.calls, listOrdersCall{buyerEmail: buyerEmail, auctionID: auctionID})
	return f.orders, nil
}

func ordersRouter(storeClient handlers.OrderStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := handlers.NewOrdersHandler(storeClient)

	router := gin.New()
	router.GET("/orders", handler.ListOrders)
	return router
}

func TestListOrdersWithoutFilters(t *testing.T) {
	storeClient := &fakeOrderStore{
		orders: []models.Order{
			{OrderID: uuid.New(), BuyerEmail: "a@example.com", Amount: 50},
			{OrderID: uuid.New(), BuyerEmail: "b@example.com", Amount: 75},
		},
	}

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/orders", nil)
	ordersRouter(storeClient).ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, []listOrdersCall{{buyerEmail: "", auctionID: nil}}, storeClient.calls)

	var resp models.OrdersResponse
	assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	assert.Len(t, resp.Orders, 2)
}

func TestListOrdersPassesFilters(t *testing.T) {
	auctionID := uuid.New()
	storeClient := &fakeOrderStore{}

	recorder := httptest.NewRecorder()
	url := "/orders?buyer_email=a@example.com&auction_id=" + auctionID.String()
	request := httptest.NewRequest(http.MethodGet, url, nil)
	ordersRouter(storeClient).ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Len(t, storeClient.calls, 1)
	assert.Equal(t, "a@example.com", storeClient.calls[0].buyerEmail)
	assert.NotNil(t, storeClient.calls[0].auctionID)
	assert.Equal(t, auctionID, *storeClient.calls[0].auctionID)
}

func TestListOrdersRejectsBadAuctionID(t *testing.T) {
	storeClient := &fakeOrderStore{}

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/orders?auction_id=not-a-uuid", nil)
	ordersRouter(storeClient).ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Empty(t, storeClient.calls)
}
