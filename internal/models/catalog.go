package models

// Part is the storage representation of a catalog part.
type Part struct {
	PartID   string `json:"partID"`
	SKU      string `json:"sku"`
	Name     string `json:"name"`
	Unit     string `json:"unit"`
	IsActive bool   `json:"isActive"`
	AuditFields
}

// Location is the storage representation of a storage location.
type Location struct {
	LocationID string `json:"locationID"`
	Code       string `json:"code"`
	Name       string `json:"name"`
	IsActive   bool   `json:"isActive"`
	AuditFields
}
