package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // Opaque actor reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// StockKey identifies one (location, part) pair, the unit of projection
// and of write serialization.
type StockKey struct {
	LocationID string `json:"locationID"`
	PartID     string `json:"partID"`
}

func (k StockKey) String() string {
	return k.LocationID + ":" + k.PartID
}
