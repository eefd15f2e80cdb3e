package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bidhouse-backend/internal/models"
)

// OrderStore is the persistence surface order lookups read from.
type OrderStore interface {
	GetOrder(orderID uuid.UUID) (*models.Order, error)
	ListOrders(buyerEmail string, auctionID *uuid.UUID) ([]models.Order, error)
}

type OrdersHandler struct {
	store OrderStore
}

func NewOrdersHandler(storeClient OrderStore) *OrdersHandler {
	return &OrdersHandler{store: storeClient}
}

func (h *OrdersHandler) GetOrder(c *gin.Context) {
	orderID, ok := parseUUIDParam(c, "order_id")
	if !ok {
		return
	}

	order, err := h.store.GetOrder(orderID)
	if err != nil {
		respondReadError(c, err, "order")
		return
	}

	c.JSON(http.StatusOK, order)
}

// ListOrders filters by buyer email and/or auction; both are optional and
// an unfiltered request lists every order. Buyers look their purchases up
// by the email they bought with.
func (h *OrdersHandler) ListOrders(c *gin.Context) {
	buyerEmail := c.Query("buyer_email")

	var auctionID *uuid.UUID
	if raw := c.Query("auction_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid auction_id"})
			return
		}
		auctionID = &id
	}

	orders, err := h.store.ListOrders(buyerEmail, auctionID)
	if err != nil {
		respondReadError(c, err, "orders")
		return
	}

	c.JSON(http.StatusOK, models.OrdersResponse{Orders: orders})
}
