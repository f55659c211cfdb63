package dto

import (
	"time"

	"github.com/partbin/stockledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateReceiptRequest records the arrival of stock at a location.
type CreateReceiptRequest struct {
	PartID       string          `json:"partID" binding:"required"`
	ToLocationID string          `json:"toLocationID" binding:"required"`
	Quantity     decimal.Decimal `json:"quantity" binding:"required,dgt0"`
	Metadata     string          `json:"metadata"`
}

// CreateConsumptionRequest records stock leaving a location.
type CreateConsumptionRequest struct {
	PartID         string          `json:"partID" binding:"required"`
	FromLocationID string          `json:"fromLocationID" binding:"required"`
	Quantity       decimal.Decimal `json:"quantity" binding:"required,dgt0"`
	Metadata       string          `json:"metadata"`
}

// LedgerEntryResponse is the outward representation of one committed entry.
type LedgerEntryResponse struct {
	EntryID         string          `json:"entryID"`
	Kind            string          `json:"kind"`
	PartID          string          `json:"partID"`
	Quantity        decimal.Decimal `json:"quantity"`
	QuantityChange  decimal.Decimal `json:"quantityChange,omitempty"`
	FromLocationID  string          `json:"fromLocationID,omitempty"`
	ToLocationID    string          `json:"toLocationID,omitempty"`
	TransferGroupID string          `json:"transferGroupID,omitempty"`
	Reason          string          `json:"reason,omitempty"`
	OccurredAt      time.Time       `json:"occurredAt"`
	CreatedBy       string          `json:"createdBy"`
}

// ToLedgerEntryResponse converts a domain entry to its response form.
func ToLedgerEntryResponse(e *domain.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		EntryID:         e.EntryID,
		Kind:            string(e.Kind),
		PartID:          e.PartID,
		Quantity:        e.Quantity,
		QuantityChange:  e.QuantityChange,
		FromLocationID:  e.FromLocationID,
		ToLocationID:    e.ToLocationID,
		TransferGroupID: e.TransferGroupID,
		Reason:          e.Reason,
		OccurredAt:      e.OccurredAt,
		CreatedBy:       e.CreatedBy,
	}
}

// ToLedgerEntryResponses converts a slice of domain entries.
func ToLedgerEntryResponses(entries []domain.LedgerEntry) []LedgerEntryResponse {
	responses := make([]LedgerEntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToLedgerEntryResponse(&entries[i])
	}
	return responses
}

// ListEntriesParams holds pagination parameters for a ledger audit slice.
type ListEntriesParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListEntriesResponse is a page of a key's ledger slice.
type ListEntriesResponse struct {
	Entries   []LedgerEntryResponse `json:"entries"`
	NextToken *string               `json:"nextToken,omitempty"`
}
