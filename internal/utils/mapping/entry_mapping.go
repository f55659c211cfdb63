package mapping

import (
	"github.com/partbin/stockledger/internal/core/domain"
	"github.com/partbin/stockledger/internal/models"
)

// ToModelLedgerEntry converts a domain LedgerEntry to a model LedgerEntry
func ToModelLedgerEntry(d domain.LedgerEntry) models.LedgerEntry {
	return models.LedgerEntry{
		EntryID:         d.EntryID,
		Kind:            models.EntryKind(d.Kind),
		PartID:          d.PartID,
		Quantity:        d.Quantity,
		QuantityChange:  d.QuantityChange,
		FromLocationID:  d.FromLocationID,
		ToLocationID:    d.ToLocationID,
		TransferGroupID: d.TransferGroupID,
		Reason:          d.Reason,
		Metadata:        d.Metadata,
		OccurredAt:      d.OccurredAt,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLedgerEntry converts a model LedgerEntry to a domain LedgerEntry
func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:         m.EntryID,
		Kind:            domain.EntryKind(m.Kind),
		PartID:          m.PartID,
		Quantity:        m.Quantity,
		QuantityChange:  m.QuantityChange,
		FromLocationID:  m.FromLocationID,
		ToLocationID:    m.ToLocationID,
		TransferGroupID: m.TransferGroupID,
		Reason:          m.Reason,
		Metadata:        m.Metadata,
		OccurredAt:      m.OccurredAt,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainLedgerEntrySlice converts a slice of model entries to domain entries
func ToDomainLedgerEntrySlice(ms []models.LedgerEntry) []domain.LedgerEntry {
	ds := make([]domain.LedgerEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLedgerEntry(m)
	}
	return ds
}
