package store

import (
	"fmt"
	"strings"
	"time"

	"bidhouse-backend/internal/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

const itemColumns = "item_id, auction_id, title, brand, model, year, ai_description, is_listed, is_sold, sold_at, starting_bid, min_increment, buy_now_price, current_bid, lot, created_at"

func scanItem(s rowScanner) (*models.Item, error) {
	var it models.Item
	if err := s.Scan(
		&it.ItemID, &it.AuctionID, &it.Title, &it.Brand, &it.Model, &it.Year,
		&it.AIDescription, &it.IsListed, &it.IsSold, &it.SoldAt,
		&it.StartingBid, &it.MinIncrement, &it.BuyNowPrice, &it.CurrentBid,
		&it.Lot, &it.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &it, nil
}

func (c *Client) scanItemRows(query string, args ...any) ([]models.Item, error) {
	var items []models.Item
	err := withReadRetry(func() error {
		rows, err := c.db.Query(query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		items = items[:0]
		for rows.Next() {
			it, err := scanItem(rows)
			if err != nil {
				return fmt.Errorf("failed to scan item: %w", err)
			}
			items = append(items, *it)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

type CreateItemParams struct {
	AuctionID     uuid.UUID
	Title         string
	Brand         string
	Model         string
	Year          *int
	AIDescription *string
}

// CreateItem inserts an item unlisted; it becomes publicly visible only once
// is_listed is flipped through the auction settings.
func (c *Client) CreateItem(params CreateItemParams) (*models.Item, error) {
	item, err := scanItem(c.db.QueryRow(`
		INSERT INTO items (auction_id, title, brand, model, year, ai_description)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+itemColumns,
		params.AuctionID, params.Title, params.Brand, params.Model, params.Year, params.AIDescription))
	if err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}
	return item, nil
}

func (c *Client) GetItem(itemID uuid.UUID) (*models.Item, error) {
	var item *models.Item
	err := withReadRetry(func() error {
		var err error
		item, err = scanItem(c.db.QueryRow(`
			SELECT `+itemColumns+`
			FROM items
			WHERE item_id = $1`,
			itemID))
		return notFound(err, "item")
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (c *Client) ListItemsByAuction(auctionID uuid.UUID) ([]models.Item, error) {
	items, err := c.scanItemRows(`
		SELECT `+itemColumns+`
		FROM items
		WHERE auction_id = $1
		ORDER BY created_at DESC`,
		auctionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	return items, nil
}

// ListItemsForPublic orders oldest first for stable lot display; listedOnly
// is false for draft previews.
func (c *Client) ListItemsForPublic(auctionID uuid.UUID, listedOnly bool) ([]models.Item, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM items
		WHERE auction_id = $1`
	if listedOnly {
		query += ` AND is_listed = TRUE`
	}
	query += ` ORDER BY created_at ASC`

	items, err := c.scanItemRows(query, auctionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	return items, nil
}

func (c *Client) ListItemsByAuctionIDs(auctionIDs []uuid.UUID) ([]models.Item, error) {
	ids := make([]string, len(auctionIDs))
	for i, id := range auctionIDs {
		ids[i] = id.String()
	}
	items, err := c.scanItemRows(`
		SELECT `+itemColumns+`
		FROM items
		WHERE auction_id = ANY($1)
		ORDER BY created_at DESC`,
		pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	return items, nil
}

func (c *Client) UpdateItem(itemID uuid.UUID, updates models.UpdateItemRequest) (*models.Item, error) {
	var (
		sets []string
		args []any
	)
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if updates.Title != nil {
		add("title", strings.TrimSpace(*updates.Title))
	}
	if updates.Brand != nil {
		add("brand", strings.TrimSpace(*updates.Brand))
	}
	if updates.Model != nil {
		add("model", strings.TrimSpace(*updates.Model))
	}
	if updates.Year != nil {
		add("year", *updates.Year)
	}

	if len(sets) == 0 {
		return nil, ErrNoUpdates
	}

	args = append(args, itemID)
	query := fmt.Sprintf(`
		UPDATE items
		SET %s
		WHERE item_id = $%d
		RETURNING %s`,
		strings.Join(sets, ", "), len(args), itemColumns)

	item, err := scanItem(c.db.QueryRow(query, args...))
	if err != nil {
		return nil, fmt.Errorf("failed to update item: %w", notFound(err, "item"))
	}
	return item, nil
}

func itemSettingsClauses(startingBid, minIncrement, buyNowPrice *float64, lot *int, isListed *bool) ([]string, []any) {
	var (
		sets []string
		args []any
	)
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if startingBid != nil {
		add("starting_bid", *startingBid)
	}
	if minIncrement != nil {
		add("min_increment", *minIncrement)
	}
	if buyNowPrice != nil {
		add("buy_now_price", *buyNowPrice)
	}
	if lot != nil {
		add("lot", *lot)
	}
	if isListed != nil {
		add("is_listed", *isListed)
	}
	return sets, args
}

func (c *Client) UpdateItemAuctionSettings(itemID uuid.UUID, settings models.ItemAuctionSettings) (*models.Item, error) {
	sets, args := itemSettingsClauses(settings.StartingBid, settings.MinIncrement, settings.BuyNowPrice, settings.Lot, settings.IsListed)
	if len(sets) == 0 {
		return nil, ErrNoUpdates
	}

	args = append(args, itemID)
	query := fmt.Sprintf(`
		UPDATE items
		SET %s
		WHERE item_id = $%d
		RETURNING %s`,
		strings.Join(sets, ", "), len(args), itemColumns)

	item, err := scanItem(c.db.QueryRow(query, args...))
	if err != nil {
		return nil, fmt.Errorf("failed to update item settings: %w", notFound(err, "item"))
	}
	return item, nil
}

func (c *Client) BatchUpdateItemAuctionSettings(itemIDs []uuid.UUID, settings models.BatchItemAuctionSettings) ([]models.Item, error) {
	sets, args := itemSettingsClauses(settings.StartingBid, settings.MinIncrement, settings.BuyNowPrice, nil, settings.IsListed)
	if len(sets) == 0 {
		return nil, ErrNoUpdates
	}

	ids := make([]string, len(itemIDs))
	for i, id := range itemIDs {
		ids[i] = id.String()
	}
	args = append(args, pq.Array(ids))
	query := fmt.Sprintf(`
		UPDATE items
		SET %s
		WHERE item_id = ANY($%d)
		RETURNING %s`,
		strings.Join(sets, ", "), len(args), itemColumns)

	rows, err := c.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update items: %w", err)
	}
	defer rows.Close()

	var items []models.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, *it)
	}
	return items, rows.Err()
}

func (c *Client) SetItemCurrentBid(itemID uuid.UUID, amount float64) error {
	if _, err := c.db.Exec(`
		UPDATE items
		SET current_bid = $1
		WHERE item_id = $2`,
		amount, itemID); err != nil {
		return fmt.Errorf("failed to update current bid: %w", err)
	}
	return nil
}

func (c *Client) MarkItemSold(itemID uuid.UUID, soldAt time.Time) error {
	if _, err := c.db.Exec(`
		UPDATE items
		SET is_sold = TRUE, sold_at = $1
		WHERE item_id = $2`,
		soldAt, itemID); err != nil {
		return fmt.Errorf("failed to mark item sold: %w", err)
	}
	return nil
}

func (c *Client) DeleteItem(itemID uuid.UUID) error {
	result, err := c.db.Exec(`DELETE FROM items WHERE item_id = $1`, itemID)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("item: %w", ErrNotFound)
	}
	return nil
}

func (c *Client) DeleteItemsByAuction(auctionID uuid.UUID) error {
	if _, err := c.db.Exec(`DELETE FROM items WHERE auction_id = $1`, auctionID); err != nil {
		return fmt.Errorf("failed to delete items: %w", err)
	}
	return nil
}
