package repositories

import (
	"context"

	"github.com/partbin/stockledger/internal/core/domain"
)

// StockCacheRepository is the port for the mutable stock projection.
// The cache is derived and disposable; only the stock service's
// refresh/invalidate paths may mutate it.
type StockCacheRepository interface {
	// Get retrieves the cached level for a key, or apperrors.ErrNotFound
	// when no row exists.
	Get(ctx context.Context, locationID, partID string) (*domain.StockLevel, error)

	// Put overwrites the cached level for the key.
	Put(ctx context.Context, level domain.StockLevel) error

	// Invalidate marks the key's entry stale without recomputing. Marking an
	// absent key is a no-op.
	Invalidate(ctx context.Context, locationID, partID string) error

	// DeleteAll drops the entire projection, for a full rebuild.
	DeleteAll(ctx context.Context) error
}
