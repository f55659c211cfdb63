package dto

import (
	"time"

	"github.com/partbin/stockledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// StockResponse reports the quantity for one (location, part) key.
// Source says where the value came from: "cache" when served from the
// projection table, "ledger" when freshly folded.
type StockResponse struct {
	LocationID string          `json:"locationID"`
	PartID     string          `json:"partID"`
	Quantity   decimal.Decimal `json:"quantity"`
	ComputedAt time.Time       `json:"computedAt"`
	Source     string          `json:"source"`
}

// ToStockResponse converts a cached level to its response form.
func ToStockResponse(level *domain.StockLevel, source string) StockResponse {
	return StockResponse{
		LocationID: level.LocationID,
		PartID:     level.PartID,
		Quantity:   level.Quantity,
		ComputedAt: level.ComputedAt,
		Source:     source,
	}
}

// StockKeyRequest identifies one key in a batch read.
type StockKeyRequest struct {
	LocationID string `json:"locationID" binding:"required"`
	PartID     string `json:"partID" binding:"required"`
}

// BatchStockRequest is a batched current-stock read.
type BatchStockRequest struct {
	Keys []StockKeyRequest `json:"keys" binding:"required,min=1,dive"`
}

// BatchStockResponse carries one response per requested key, in order.
type BatchStockResponse struct {
	Levels []StockResponse `json:"levels"`
}

// RebuildResponse reports the outcome of a full cache rebuild.
type RebuildResponse struct {
	KeysRebuilt int `json:"keysRebuilt"`
}
