package services

import (
	"context"

	"github.com/partbin/stockledger/internal/core/domain"
	"github.com/partbin/stockledger/internal/dto"
)

// AdjustmentSvcFacade lets an operator reconcile derived stock against an
// externally observed count. It never edits history; it appends an
// explanatory ADJUSTMENT entry and refreshes the cache. When the entry
// committed but the cache could not be updated, the record is returned
// together with ErrCacheStale.
type AdjustmentSvcFacade interface {
	Adjust(ctx context.Context, req dto.CreateAdjustmentRequest, actorID string) (*domain.AdjustmentRecord, error)
}
