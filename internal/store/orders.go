package store

import (
	"fmt"

	"bidhouse-backend/internal/models"
	"github.com/google/uuid"
)

const orderColumns = "o.order_id, o.item_id, o.auction_id, o.buyer_id, o.buyer_email, o.buyer_name, o.amount, o.order_type, o.created_at"

func scanOrderWithItem(s rowScanner) (*models.Order, error) {
	var (
		o  models.Order
		it models.Item
	)
	if err := s.Scan(
		&o.OrderID, &o.ItemID, &o.AuctionID, &o.BuyerID, &o.BuyerEmail,
		&o.BuyerName, &o.Amount, &o.OrderType, &o.CreatedAt,
		&it.ItemID, &it.AuctionID, &it.Title, &it.Brand, &it.Model, &it.Year,
		&it.AIDescription, &it.IsListed, &it.IsSold, &it.SoldAt,
		&it.StartingBid, &it.MinIncrement, &it.BuyNowPrice, &it.CurrentBid,
		&it.Lot, &it.CreatedAt,
	); err != nil {
		return nil, err
	}
	o.Item = &it
	return &o, nil
}

type CreateOrderParams struct {
	ItemID     uuid.UUID
	AuctionID  uuid.UUID
	BuyerID    uuid.UUID
	BuyerEmail string
	BuyerName  string
	Amount     float64
	OrderType  string
}

func (c *Client) CreateOrder(params CreateOrderParams) (*models.Order, error) {
	var o models.Order
	err := c.db.QueryRow(`
		INSERT INTO orders (item_id, auction_id, buyer_id, buyer_email, buyer_name, amount, order_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING order_id, item_id, auction_id, buyer_id, buyer_email, buyer_name, amount, order_type, created_at`,
		params.ItemID, params.AuctionID, params.BuyerID, params.BuyerEmail,
		params.BuyerName, params.Amount, params.OrderType).Scan(
		&o.OrderID, &o.ItemID, &o.AuctionID, &o.BuyerID, &o.BuyerEmail,
		&o.BuyerName, &o.Amount, &o.OrderType, &o.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	return &o, nil
}

// GetOrder embeds the purchased item.
func (c *Client) GetOrder(orderID uuid.UUID) (*models.Order, error) {
	var order *models.Order
	err := withReadRetry(func() error {
		var err error
		order, err = scanOrderWithItem(c.db.QueryRow(`
			SELECT `+orderColumns+`, `+prefixedItemColumns("i")+`
			FROM orders o
			JOIN items i ON i.item_id = o.item_id
			WHERE o.order_id = $1`,
			orderID))
		return notFound(err, "order")
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// ListOrders filters by buyer email and/or auction; empty filters list
// everything, newest first.
func (c *Client) ListOrders(buyerEmail string, auctionID *uuid.UUID) ([]models.Order, error) {
	query := `
		SELECT ` + orderColumns + `, ` + prefixedItemColumns("i") + `
		FROM orders o
		JOIN items i ON i.item_id = o.item_id`
	var (
		conds []string
		args  []any
	)
	if buyerEmail != "" {
		args = append(args, buyerEmail)
		conds = append(conds, fmt.Sprintf("o.buyer_email = $%d", len(args)))
	}
	if auctionID != nil {
		args = append(args, *auctionID)
		conds = append(conds, fmt.Sprintf("o.auction_id = $%d", len(args)))
	}
	for i, cond := range conds {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY o.created_at DESC"

	var orders []models.Order
	err := withReadRetry(func() error {
		rows, err := c.db.Query(query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		orders = orders[:0]
		for rows.Next() {
			o, err := scanOrderWithItem(rows)
			if err != nil {
				return fmt.Errorf("failed to scan order: %w", err)
			}
			orders = append(orders, *o)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

func prefixedItemColumns(alias string) string {
	return alias + ".item_id, " + alias + ".auction_id, " + alias + ".title, " +
		alias + ".brand, " + alias + ".model, " + alias + ".year, " +
		alias + ".ai_description, " + alias + ".is_listed, " + alias + ".is_sold, " +
		alias + ".sold_at, " + alias + ".starting_bid, " + alias + ".min_increment, " +
		alias + ".buy_now_price, " + alias + ".current_bid, " + alias + ".lot, " +
		alias + ".created_at"
}
