package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdjustmentRecord captures one operator-initiated stock correction.
// It is created exactly once when the correction is applied and never
// updated afterward; undoing one means recording a compensating adjustment.
// Invariant: QuantityAfter = QuantityBefore + QuantityChange.
type AdjustmentRecord struct {
	EntryID        string          `json:"entryID"` // The ADJUSTMENT ledger entry backing this record
	LocationID     string          `json:"locationID"`
	PartID         string          `json:"partID"`
	QuantityBefore decimal.Decimal `json:"quantityBefore"`
	QuantityAfter  decimal.Decimal `json:"quantityAfter"`
	QuantityChange decimal.Decimal `json:"quantityChange"`
	Reason         string          `json:"reason"`
	AdjustedAt     time.Time       `json:"adjustedAt"`
	AdjustedBy     string          `json:"adjustedBy"`
}
