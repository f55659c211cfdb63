package dto

import (
	"github.com/partbin/stockledger/internal/core/domain"
)

// CreatePartRequest registers a new part in the catalog.
type CreatePartRequest struct {
	SKU  string `json:"sku" binding:"required"`
	Name string `json:"name" binding:"required"`
	Unit string `json:"unit" binding:"required"`
}

// PartResponse is the outward representation of a catalog part.
type PartResponse struct {
	PartID   string `json:"partID"`
	SKU      string `json:"sku"`
	Name     string `json:"name"`
	Unit     string `json:"unit"`
	IsActive bool   `json:"isActive"`
}

// ToPartResponse converts a domain Part to its response form.
func ToPartResponse(p *domain.Part) PartResponse {
	return PartResponse{
		PartID:   p.PartID,
		SKU:      p.SKU,
		Name:     p.Name,
		Unit:     p.Unit,
		IsActive: p.IsActive,
	}
}

// CreateLocationRequest registers a new storage location.
type CreateLocationRequest struct {
	Code string `json:"code" binding:"required"`
	Name string `json:"name" binding:"required"`
}

// LocationResponse is the outward representation of a storage location.
type LocationResponse struct {
	LocationID string `json:"locationID"`
	Code       string `json:"code"`
	Name       string `json:"name"`
	IsActive   bool   `json:"isActive"`
}

// ToLocationResponse converts a domain Location to its response form.
func ToLocationResponse(l *domain.Location) LocationResponse {
	return LocationResponse{
		LocationID: l.LocationID,
		Code:       l.Code,
		Name:       l.Name,
		IsActive:   l.IsActive,
	}
}
