package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryKind classifies an inventory-affecting event.
type EntryKind string

const (
	Receipt     EntryKind = "RECEIPT"
	Consumption EntryKind = "CONSUMPTION"
	Transfer    EntryKind = "TRANSFER"
	Adjustment  EntryKind = "ADJUSTMENT"
)

// LedgerEntry is the storage representation of one ledger row.
// Rows are insert-only; no code path issues UPDATE or DELETE against them.
type LedgerEntry struct {
	EntryID         string          `json:"entryID"`
	Kind            EntryKind       `json:"kind"`
	PartID          string          `json:"partID"`
	Quantity        decimal.Decimal `json:"quantity"`
	QuantityChange  decimal.Decimal `json:"quantityChange"`
	FromLocationID  string          `json:"fromLocationID"`
	ToLocationID    string          `json:"toLocationID"`
	TransferGroupID string          `json:"transferGroupID"`
	Reason          string          `json:"reason"`
	Metadata        string          `json:"metadata"`
	OccurredAt      time.Time       `json:"occurredAt"`
	AuditFields
}
