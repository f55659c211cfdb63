package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockLevel is the storage representation of one stock cache row.
type StockLevel struct {
	LocationID string          `json:"locationID"`
	PartID     string          `json:"partID"`
	Quantity   decimal.Decimal `json:"quantity"`
	Version    int64           `json:"version"`
	ComputedAt time.Time       `json:"computedAt"`
	Stale      bool            `json:"stale"`
}
