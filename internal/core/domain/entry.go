package domain

import (
	"fmt"
	"time"

	"github.com/partbin/stockledger/internal/apperrors"
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

// LedgerEntry is one immutable record of an inventory-affecting event.
// Once committed it is never mutated or deleted; corrections are new entries.
//
// A transfer is represented as two linked entries (debit + credit) sharing a
// TransferGroupID. The store guarantees both legs commit atomically, so no
// reader ever observes one leg without the other.
type LedgerEntry struct {
	EntryID         string          `json:"entryID"`
	Kind            EntryKind       `json:"kind"`
	PartID          string          `json:"partID"`
	Quantity        decimal.Decimal `json:"quantity"`                 // Positive magnitude of the movement
	QuantityChange  decimal.Decimal `json:"quantityChange"`           // Signed delta, ADJUSTMENT only
	FromLocationID  string          `json:"fromLocationID,omitempty"` // CONSUMPTION, transfer debit leg
	ToLocationID    string          `json:"toLocationID,omitempty"`   // RECEIPT, transfer credit leg
	TransferGroupID string          `json:"transferGroupID,omitempty"`
	Reason          string          `json:"reason,omitempty"` // Required for ADJUSTMENT
	Metadata        string          `json:"metadata,omitempty"`
	OccurredAt      time.Time       `json:"occurredAt"` // Assigned by the store at commit time
	AuditFields
}

// Keys returns the (location, part) keys this entry contributes to.
// Receipts and consumption touch one key; a transfer leg touches one key;
// an adjustment touches the location it targets.
func (e LedgerEntry) Keys() []StockKey {
	keys := make([]StockKey, 0, 2)
	if e.FromLocationID != "" {
		keys = append(keys, StockKey{LocationID: e.FromLocationID, PartID: e.PartID})
	}
	if e.ToLocationID != "" {
		keys = append(keys, StockKey{LocationID: e.ToLocationID, PartID: e.PartID})
	}
	return keys
}

// Validate checks the structural invariants of an entry before it may be
// appended: positive quantity for movement kinds, and the location fields
// required by the kind.
func (e LedgerEntry) Validate() error {
	if e.PartID == "" {
		return fmt.Errorf("%w: part ID is required", apperrors.ErrValidation)
	}
	switch e.Kind {
	case Receipt:
		if e.ToLocationID == "" {
			return fmt.Errorf("%w: receipt requires a destination location", apperrors.ErrValidation)
		}
		if e.FromLocationID != "" {
			return fmt.Errorf("%w: receipt must not carry a source location", apperrors.ErrValidation)
		}
		if e.Quantity.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("%w: receipt quantity must be positive", apperrors.ErrValidation)
		}
	case Consumption:
		if e.FromLocationID == "" {
			return fmt.Errorf("%w: consumption requires a source location", apperrors.ErrValidation)
		}
		if e.ToLocationID != "" {
			return fmt.Errorf("%w: consumption must not carry a destination location", apperrors.ErrValidation)
		}
		if e.Quantity.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("%w: consumption quantity must be positive", apperrors.ErrValidation)
		}
	case Transfer:
		// One leg per entry: exactly one of the two location fields is set.
		if (e.FromLocationID == "") == (e.ToLocationID == "") {
			return fmt.Errorf("%w: transfer leg requires exactly one of source or destination location", apperrors.ErrValidation)
		}
		if e.TransferGroupID == "" {
			return fmt.Errorf("%w: transfer leg requires a transfer group ID", apperrors.ErrValidation)
		}
		if e.Quantity.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("%w: transfer quantity must be positive", apperrors.ErrValidation)
		}
	case Adjustment:
		if e.ToLocationID == "" {
			return fmt.Errorf("%w: adjustment requires a target location", apperrors.ErrValidation)
		}
		if e.Reason == "" {
			return fmt.Errorf("%w: adjustment requires a reason", apperrors.ErrValidation)
		}
		if !e.Quantity.Equal(e.QuantityChange.Abs()) {
			return fmt.Errorf("%w: adjustment quantity must equal the magnitude of its change", apperrors.ErrValidation)
		}
	default:
		return fmt.Errorf("%w: unknown entry kind %q", apperrors.ErrValidation, e.Kind)
	}
	return nil
}
