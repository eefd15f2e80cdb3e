package store

import (
	"fmt"
	"strings"

	"bidhouse-backend/internal/models"
	"github.com/google/uuid"
)

const auctionColumns = "auction_id, profile_id, auction_name, is_demo, status, start_time, end_time, pickup_location, shipping_allowed, created_at"

func scanAuction(s rowScanner) (*models.Auction, error) {
	var a models.Auction
	if err := s.Scan(
		&a.AuctionID, &a.ProfileID, &a.AuctionName, &a.IsDemo, &a.Status,
		&a.StartTime, &a.EndTime, &a.PickupLocation, &a.ShippingAllowed, &a.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &a, nil
}

func (c *Client) CreateAuction(profileID uuid.UUID, auctionName string, isDemo bool) (*models.Auction, error) {
	auction, err := scanAuction(c.db.QueryRow(`
		INSERT INTO auctions (profile_id, auction_name, is_demo)
		VALUES ($1, $2, $3)
		RETURNING `+auctionColumns,
		profileID, auctionName, isDemo))
	if err != nil {
		return nil, fmt.Errorf("failed to create auction: %w", err)
	}
	return auction, nil
}

func (c *Client) GetAuction(auctionID uuid.UUID) (*models.Auction, error) {
	var auction *models.Auction
	err := withReadRetry(func() error {
		var err error
		auction, err = scanAuction(c.db.QueryRow(`
			SELECT `+auctionColumns+`
			FROM auctions
			WHERE auction_id = $1`,
			auctionID))
		return notFound(err, "auction")
	})
	if err != nil {
		return nil, err
	}
	return auction, nil
}

func (c *Client) ListAuctionsByProfile(profileID uuid.UUID) ([]models.Auction, error) {
	var auctions []models.Auction
	err := withReadRetry(func() error {
		rows, err := c.db.Query(`
			SELECT `+auctionColumns+`
			FROM auctions
			WHERE profile_id = $1
			ORDER BY created_at DESC`,
			profileID)
		if err != nil {
			return err
		}
		defer rows.Close()

		auctions = auctions[:0]
		for rows.Next() {
			a, err := scanAuction(rows)
			if err != nil {
				return fmt.Errorf("failed to scan auction: %w", err)
			}
			auctions = append(auctions, *a)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list auctions: %w", err)
	}
	return auctions, nil
}

func (c *Client) ListPublishedAuctions() ([]models.Auction, error) {
	var auctions []models.Auction
	err := withReadRetry(func() error {
		rows, err := c.db.Query(`
			SELECT `+auctionColumns+`
			FROM auctions
			WHERE status = $1
			ORDER BY created_at DESC`,
			models.AuctionStatusPublished)
		if err != nil {
			return err
		}
		defer rows.Close()

		auctions = auctions[:0]
		for rows.Next() {
			a, err := scanAuction(rows)
			if err != nil {
				return fmt.Errorf("failed to scan auction: %w", err)
			}
			auctions = append(auctions, *a)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list published auctions: %w", err)
	}
	return auctions, nil
}

func (c *Client) UpdateAuctionName(auctionID uuid.UUID, auctionName string) (*models.Auction, error) {
	auction, err := scanAuction(c.db.QueryRow(`
		UPDATE auctions
		SET auction_name = $1
		WHERE auction_id = $2
		RETURNING `+auctionColumns,
		auctionName, auctionID))
	if err != nil {
		return nil, fmt.Errorf("failed to update auction: %w", notFound(err, "auction"))
	}
	return auction, nil
}

func (c *Client) UpdateAuctionStatus(auctionID uuid.UUID, status string) (*models.Auction, error) {
	auction, err := scanAuction(c.db.QueryRow(`
		UPDATE auctions
		SET status = $1
		WHERE auction_id = $2
		RETURNING `+auctionColumns,
		status, auctionID))
	if err != nil {
		return nil, fmt.Errorf("failed to update auction status: %w", notFound(err, "auction"))
	}
	return auction, nil
}

// UpdateAuctionSettings applies only the fields set in the update; at least
// one must be set.
func (c *Client) UpdateAuctionSettings(auctionID uuid.UUID, settings models.AuctionSettingsUpdate) (*models.Auction, error) {
	var (
		sets []string
		args []any
	)
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if settings.StartTime != nil {
		add("start_time", *settings.StartTime)
	}
	if settings.EndTime != nil {
		add("end_time", *settings.EndTime)
	}
	if settings.Status != nil {
		add("status", *settings.Status)
	}
	if settings.PickupLocation != nil {
		add("pickup_location", *settings.PickupLocation)
	}
	if settings.ShippingAllowed != nil {
		add("shipping_allowed", *settings.ShippingAllowed)
	}

	if len(sets) == 0 {
		return nil, ErrNoUpdates
	}

	args = append(args, auctionID)
	query := fmt.Sprintf(`
		UPDATE auctions
		SET %s
		WHERE auction_id = $%d
		RETURNING %s`,
		strings.Join(sets, ", "), len(args), auctionColumns)

	auction, err := scanAuction(c.db.QueryRow(query, args...))
	if err != nil {
		return nil, fmt.Errorf("failed to update auction settings: %w", notFound(err, "auction"))
	}
	return auction, nil
}

func (c *Client) DeleteAuction(auctionID uuid.UUID) error {
	if _, err := c.db.Exec(`DELETE FROM auctions WHERE auction_id = $1`, auctionID); err != nil {
		return fmt.Errorf("failed to delete auction: %w", err)
	}
	return nil
}
