package mapping

import (
	"github.com/partbin/stockledger/internal/core/domain"
	"github.com/partbin/stockledger/internal/models"
)

// ToModelPart converts a domain Part to a model Part
func ToModelPart(d domain.Part) models.Part {
	return models.Part{
		PartID:      d.PartID,
		SKU:         d.SKU,
		Name:        d.Name,
		Unit:        d.Unit,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPart converts a model Part to a domain Part
func ToDomainPart(m models.Part) domain.Part {
	return domain.Part{
		PartID:      m.PartID,
		SKU:         m.SKU,
		Name:        m.Name,
		Unit:        m.Unit,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelLocation converts a domain Location to a model Location
func ToModelLocation(d domain.Location) models.Location {
	return models.Location{
		LocationID:  d.LocationID,
		Code:        d.Code,
		Name:        d.Name,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLocation converts a model Location to a domain Location
func ToDomainLocation(m models.Location) domain.Location {
	return domain.Location{
		LocationID:  m.LocationID,
		Code:        m.Code,
		Name:        m.Name,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
