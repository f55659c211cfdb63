package services

import (
	"context"

	"github.com/partbin/stockledger/internal/core/domain"
	"github.com/partbin/stockledger/internal/dto"
)

// TransferSvcFacade coordinates the two-sided ledger write of a transfer.
type TransferSvcFacade interface {
	// Transfer moves quantity of a part from source to destination as one
	// all-or-nothing operation. On failure no ledger entries exist and no
	// cache entries were touched, except for ErrCacheStale and
	// ErrNegativeStock: those accompany a committed pair (returned alongside
	// the error) and must not be retried.
	Transfer(ctx context.Context, req dto.CreateTransferRequest, actorID string) (debit, credit *domain.LedgerEntry, err error)
}
