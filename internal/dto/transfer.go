package dto

import (
	"github.com/partbin/stockledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransferRequest moves stock between two locations as one logical
// operation backed by an atomic debit/credit entry pair.
type CreateTransferRequest struct {
	PartID                string          `json:"partID" binding:"required"`
	SourceLocationID      string          `json:"sourceLocationID" binding:"required"`
	DestinationLocationID string          `json:"destinationLocationID" binding:"required"`
	Quantity              decimal.Decimal `json:"quantity" binding:"required,dgt0"`
	Metadata              string          `json:"metadata"`
}

// TransferResponse reports the committed legs of a transfer.
type TransferResponse struct {
	TransferGroupID string              `json:"transferGroupID"`
	Debit           LedgerEntryResponse `json:"debit"`
	Credit          LedgerEntryResponse `json:"credit"`
}

// ToTransferResponse converts the committed legs to their response form.
func ToTransferResponse(debit, credit *domain.LedgerEntry) TransferResponse {
	return TransferResponse{
		TransferGroupID: debit.TransferGroupID,
		Debit:           ToLedgerEntryResponse(debit),
		Credit:          ToLedgerEntryResponse(credit),
	}
}
