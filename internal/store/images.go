package store

import (
	"database/sql"
	"errors"
	"fmt"

	"bidhouse-backend/internal/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

const imageColumns = "image_id, item_id, url, position, created_at"

func scanImage(s rowScanner) (*models.ItemImage, error) {
	var img models.ItemImage
	if err := s.Scan(&img.ImageID, &img.ItemID, &img.URL, &img.Position, &img.CreatedAt); err != nil {
		return nil, err
	}
	return &img, nil
}

// AddItemImages inserts urls at consecutive positions starting at
// startPosition.
func (c *Client) AddItemImages(itemID uuid.UUID, urls []string, startPosition int) ([]models.ItemImage, error) {
	images := make([]models.ItemImage, 0, len(urls))
	for i, url := range urls {
		img, err := scanImage(c.db.QueryRow(`
			INSERT INTO item_images (item_id, url, position)
			VALUES ($1, $2, $3)
			RETURNING `+imageColumns,
			itemID, url, startPosition+i))
		if err != nil {
			return nil, fmt.Errorf("failed to add item image: %w", err)
		}
		images = append(images, *img)
	}
	return images, nil
}

func (c *Client) ListItemImages(itemID uuid.UUID) ([]models.ItemImage, error) {
	var images []models.ItemImage
	err := withReadRetry(func() error {
		rows, err := c.db.Query(`
			SELECT `+imageColumns+`
			FROM item_images
			WHERE item_id = $1
			ORDER BY position ASC`,
			itemID)
		if err != nil {
			return err
		}
		defer rows.Close()

		images = images[:0]
		for rows.Next() {
			img, err := scanImage(rows)
			if err != nil {
				return fmt.Errorf("failed to scan image: %w", err)
			}
			images = append(images, *img)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list item images: %w", err)
	}
	return images, nil
}

func (c *Client) ListImagesByItemIDs(itemIDs []uuid.UUID) ([]models.ItemImage, error) {
	ids := make([]string, len(itemIDs))
	for i, id := range itemIDs {
		ids[i] = id.String()
	}

	var images []models.ItemImage
	err := withReadRetry(func() error {
		rows, err := c.db.Query(`
			SELECT `+imageColumns+`
			FROM item_images
			WHERE item_id = ANY($1)
			ORDER BY position ASC`,
			pq.Array(ids))
		if err != nil {
			return err
		}
		defer rows.Close()

		images = images[:0]
		for rows.Next() {
			img, err := scanImage(rows)
			if err != nil {
				return fmt.Errorf("failed to scan image: %w", err)
			}
			images = append(images, *img)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}
	return images, nil
}

// NextImagePosition returns 1 when the item has no images yet.
func (c *Client) NextImagePosition(itemID uuid.UUID) (int, error) {
	var max sql.NullInt64
	err := c.db.QueryRow(`
		SELECT MAX(position)
		FROM item_images
		WHERE item_id = $1`,
		itemID).Scan(&max)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("failed to get image position: %w", err)
	}
	if !max.Valid {
		return 1, nil
	}
	return int(max.Int64) + 1, nil
}

func (c *Client) UpdateImageURL(imageID int64, url string) (*models.ItemImage, error) {
	img, err := scanImage(c.db.QueryRow(`
		UPDATE item_images
		SET url = $1
		WHERE image_id = $2
		RETURNING `+imageColumns,
		url, imageID))
	if err != nil {
		return nil, fmt.Errorf("failed to update image url: %w", notFound(err, "image"))
	}
	return img, nil
}

func (c *Client) UpdateImagePosition(imageID int64, position int) (*models.ItemImage, error) {
	img, err := scanImage(c.db.QueryRow(`
		UPDATE item_images
		SET position = $1
		WHERE image_id = $2
		RETURNING `+imageColumns,
		position, imageID))
	if err != nil {
		return nil, fmt.Errorf("failed to update image position: %w", notFound(err, "image"))
	}
	return img, nil
}

func (c *Client) DeleteImagesByItem(itemID uuid.UUID) error {
	if _, err := c.db.Exec(`DELETE FROM item_images WHERE item_id = $1`, itemID); err != nil {
		return fmt.Errorf("failed to delete item images: %w", err)
	}
	return nil
}
