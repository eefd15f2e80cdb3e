package store

import (
	"fmt"

	"bidhouse-backend/internal/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

const bidColumns = "bid_id, item_id, bidder_id, bidder_email, bidder_name, amount, created_at"

func scanBid(s rowScanner) (*models.Bid, error) {
	var b models.Bid
	if err := s.Scan(&b.BidID, &b.ItemID, &b.BidderID, &b.BidderEmail, &b.BidderName, &b.Amount, &b.CreatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

func (c *Client) InsertBid(itemID, bidderID uuid.UUID, bidderEmail, bidderName string, amount float64) (*models.Bid, error) {
	bid, err := scanBid(c.db.QueryRow(`
		INSERT INTO bids (item_id, bidder_id, bidder_email, bidder_name, amount)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+bidColumns,
		itemID, bidderID, bidderEmail, bidderName, amount))
	if err != nil {
		return nil, fmt.Errorf("failed to insert bid: %w", err)
	}
	return bid, nil
}

// HighestBid returns (nil, nil) when the item has no bids.
func (c *Client) HighestBid(itemID uuid.UUID) (*models.Bid, error) {
	var bid *models.Bid
	err := withReadRetry(func() error {
		var err error
		bid, err = scanBid(c.db.QueryRow(`
			SELECT `+bidColumns+`
			FROM bids
			WHERE item_id = $1
			ORDER BY amount DESC
			LIMIT 1`,
			itemID))
		return notFound(err, "bid")
	})
	if IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get highest bid: %w", err)
	}
	return bid, nil
}

func (c *Client) listBids(query string, args ...any) ([]models.Bid, error) {
	var bids []models.Bid
	err := withReadRetry(func() error {
		rows, err := c.db.Query(query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		bids = bids[:0]
		for rows.Next() {
			b, err := scanBid(rows)
			if err != nil {
				return fmt.Errorf("failed to scan bid: %w", err)
			}
			bids = append(bids, *b)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list bids: %w", err)
	}
	return bids, nil
}

// ListBidsByItem orders highest amount first.
func (c *Client) ListBidsByItem(itemID uuid.UUID) ([]models.Bid, error) {
	return c.listBids(`
		SELECT `+bidColumns+`
		FROM bids
		WHERE item_id = $1
		ORDER BY amount DESC`,
		itemID)
}

// ListGuessesByItem orders by creation time ascending, the order required
// for earliest-wins tie breaking in demo results.
func (c *Client) ListGuessesByItem(itemID uuid.UUID) ([]models.Bid, error) {
	return c.listBids(`
		SELECT `+bidColumns+`
		FROM bids
		WHERE item_id = $1
		ORDER BY created_at ASC`,
		itemID)
}

func (c *Client) ListBidsByItemIDs(itemIDs []uuid.UUID) ([]models.Bid, error) {
	ids := make([]string, len(itemIDs))
	for i, id := range itemIDs {
		ids[i] = id.String()
	}
	return c.listBids(`
		SELECT `+bidColumns+`
		FROM bids
		WHERE item_id = ANY($1)
		ORDER BY amount DESC`,
		pq.Array(ids))
}
