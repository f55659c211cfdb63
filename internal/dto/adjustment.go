package dto

import (
	"time"

	"github.com/partbin/stockledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAdjustmentRequest corrects the stock of a key to an externally
// observed count, e.g. after a physical inventory check.
type CreateAdjustmentRequest struct {
	PartID      string          `json:"partID" binding:"required"`
	LocationID  string          `json:"locationID" binding:"required"`
	NewQuantity decimal.Decimal `json:"newQuantity" binding:"dgte0"`
	Reason      string          `json:"reason" binding:"required"`
	Metadata    string          `json:"metadata"`
}

// AdjustmentResponse reports the committed adjustment record.
type AdjustmentResponse struct {
	EntryID        string          `json:"entryID"`
	LocationID     string          `json:"locationID"`
	PartID         string          `json:"partID"`
	QuantityBefore decimal.Decimal `json:"quantityBefore"`
	QuantityAfter  decimal.Decimal `json:"quantityAfter"`
	QuantityChange decimal.Decimal `json:"quantityChange"`
	Reason         string          `json:"reason"`
	AdjustedAt     time.Time       `json:"adjustedAt"`
	AdjustedBy     string          `json:"adjustedBy"`
}

// ToAdjustmentResponse converts a domain AdjustmentRecord to its response form.
func ToAdjustmentResponse(r *domain.AdjustmentRecord) AdjustmentResponse {
	return AdjustmentResponse{
		EntryID:        r.EntryID,
		LocationID:     r.LocationID,
		PartID:         r.PartID,
		QuantityBefore: r.QuantityBefore,
		QuantityAfter:  r.QuantityAfter,
		QuantityChange: r.QuantityChange,
		Reason:         r.Reason,
		AdjustedAt:     r.AdjustedAt,
		AdjustedBy:     r.AdjustedBy,
	}
}
