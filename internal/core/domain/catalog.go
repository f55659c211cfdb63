package domain

// Part is a catalog entry for a stocked part. Deactivating a part rejects
// new movements but leaves its ledger history untouched.
type Part struct {
	PartID   string `json:"partID"`
	SKU      string `json:"sku"`
	Name     string `json:"name"`
	Unit     string `json:"unit"` // e.g. "pcs", "kg"
	IsActive bool   `json:"isActive"`
	AuditFields
}

// Location is a catalog entry for a storage location.
type Location struct {
	LocationID string `json:"locationID"`
	Code       string `json:"code"`
	Name       string `json:"name"`
	IsActive   bool   `json:"isActive"`
	AuditFields
}
