package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockLevel is the cached projection for one (location, part) key.
// It is a derived, disposable artifact: its Quantity must always be
// reproducible by folding the key's ledger entries through the projector,
// and the whole table may be dropped and rebuilt with no loss of information.
type StockLevel struct {
	LocationID string          `json:"locationID"`
	PartID     string          `json:"partID"`
	Quantity   decimal.Decimal `json:"quantity"`
	Version    int64           `json:"version"` // Incremented on every refresh
	ComputedAt time.Time       `json:"computedAt"`
	Stale      bool            `json:"stale"` // Set by invalidation, cleared by refresh
}

// Key returns the cache key of this level.
func (s StockLevel) Key() StockKey {
	return StockKey{LocationID: s.LocationID, PartID: s.PartID}
}
