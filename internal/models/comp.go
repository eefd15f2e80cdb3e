package models

import (
	"time"

	"github.com/google/uuid"
)

// Comp is a comparable historical sale used to estimate fair value for an item.
type Comp struct {
	CompID    uuid.UUID  `json:"comp_id"`
	ItemID    uuid.UUID  `json:"item_id"`
	Source    string     `json:"source"`
	SourceURL string     `json:"url_comp"`
	SoldPrice float64    `json:"sold_price"`
	Currency  string     `json:"currency"`
	SoldAt    *time.Time `json:"sold_at"`
	Notes     string     `json:"notes"`
	CreatedAt time.Time  `json:"created_at"`
}
