package store

import (
	"fmt"
	"time"

	"bidhouse-backend/internal/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

const compColumns = "comp_id, item_id, source, url_comp, sold_price, currency, sold_at, notes, created_at"

func scanComp(s rowScanner) (*models.Comp, error) {
	var comp models.Comp
	if err := s.Scan(
		&comp.CompID, &comp.ItemID, &comp.Source, &comp.SourceURL,
		&comp.SoldPrice, &comp.Currency, &comp.SoldAt, &comp.Notes, &comp.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &comp, nil
}

type InsertCompParams struct {
	ItemID    uuid.UUID
	Source    string
	SourceURL string
	SoldPrice float64
	Currency  string
	SoldAt    *time.Time
	Notes     string
}

func (c *Client) InsertComp(params InsertCompParams) (*models.Comp, error) {
	comp, err := scanComp(c.db.QueryRow(`
		INSERT INTO comps (item_id, source, url_comp, sold_price, currency, sold_at, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+compColumns,
		params.ItemID, params.Source, params.SourceURL, params.SoldPrice,
		params.Currency, params.SoldAt, params.Notes))
	if err != nil {
		return nil, fmt.Errorf("failed to insert comp: %w", err)
	}
	return comp, nil
}

func (c *Client) ListCompsByItem(itemID uuid.UUID) ([]models.Comp, error) {
	var comps []models.Comp
	err := withReadRetry(func() error {
		rows, err := c.db.Query(`
			SELECT `+compColumns+`
			FROM comps
			WHERE item_id = $1
			ORDER BY created_at DESC`,
			itemID)
		if err != nil {
			return err
		}
		defer rows.Close()

		comps = comps[:0]
		for rows.Next() {
			comp, err := scanComp(rows)
			if err != nil {
				return fmt.Errorf("failed to scan comp: %w", err)
			}
			comps = append(comps, *comp)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list comps: %w", err)
	}
	return comps, nil
}

func (c *Client) ListCompsByItemIDs(itemIDs []uuid.UUID) ([]models.Comp, error) {
	ids := make([]string, len(itemIDs))
	for i, id := range itemIDs {
		ids[i] = id.String()
	}

	var comps []models.Comp
	err := withReadRetry(func() error {
		rows, err := c.db.Query(`
			SELECT `+compColumns+`
			FROM comps
			WHERE item_id = ANY($1)`,
			pq.Array(ids))
		if err != nil {
			return err
		}
		defer rows.Close()

		comps = comps[:0]
		for rows.Next() {
			comp, err := scanComp(rows)
			if err != nil {
				return fmt.Errorf("failed to scan comp: %w", err)
			}
			comps = append(comps, *comp)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list comps: %w", err)
	}
	return comps, nil
}

func (c *Client) DeleteCompsByItem(itemID uuid.UUID) error {
	if _, err := c.db.Exec(`DELETE FROM comps WHERE item_id = $1`, itemID); err != nil {
		return fmt.Errorf("failed to delete comps: %w", err)
	}
	return nil
}
