package mapping

import (
	"github.com/partbin/stockledger/internal/core/domain"
	"github.com/partbin/stockledger/internal/models"
)

// ToModelStockLevel converts a domain StockLevel to a model StockLevel
func ToModelStockLevel(d domain.StockLevel) models.StockLevel {
	return models.StockLevel{
		LocationID: d.LocationID,
		PartID:     d.PartID,
		Quantity:   d.Quantity,
		Version:    d.Version,
		ComputedAt: d.ComputedAt,
		Stale:      d.Stale,
	}
}

// ToDomainStockLevel converts a model StockLevel to a domain StockLevel
func ToDomainStockLevel(m models.StockLevel) domain.StockLevel {
	return domain.StockLevel{
		LocationID: m.LocationID,
		PartID:     m.PartID,
		Quantity:   m.Quantity,
		Version:    m.Version,
		ComputedAt: m.ComputedAt,
		Stale:      m.Stale,
	}
}
