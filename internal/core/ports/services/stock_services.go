package services

import (
	"context"

	"github.com/partbin/stockledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// StockReaderSvc defines current-stock reads.
type StockReaderSvc interface {
	// GetStock returns the quantity for a key, serving from the cache when
	// it is fresh. A stale or missing cache row is refreshed from the ledger
	// before returning; fromCache reports whether the cache satisfied the
	// read without a refresh.
	GetStock(ctx context.Context, locationID, partID string) (level *domain.StockLevel, fromCache bool, err error)

	// GetStockBatch returns levels for several keys, in request order.
	// fromCache reports per key whether the cache satisfied the read
	// without a refresh, mirroring GetStock.
	GetStockBatch(ctx context.Context, keys []domain.StockKey) (levels []domain.StockLevel, fromCache []bool, err error)

	// ProjectStock folds the key's full ledger slice, bypassing the cache.
	// Callers needing a guaranteed-fresh value use this.
	ProjectStock(ctx context.Context, locationID, partID string) (decimal.Decimal, error)
}

// StockMaintainerSvc defines the cache maintenance operations. These are the
// only sanctioned mutations of the stock cache.
type StockMaintainerSvc interface {
	// Refresh recomputes the key's quantity via the projector and overwrites
	// the cache entry.
	Refresh(ctx context.Context, locationID, partID string) (*domain.StockLevel, error)

	// Invalidate marks the key's cache entry stale without recomputing.
	Invalidate(ctx context.Context, locationID, partID string) error

	// RebuildAll drops the projection and refolds every key with ledger
	// history. Returns the number of keys rebuilt.
	RebuildAll(ctx context.Context) (int, error)
}

// StockSvcFacade combines all stock service interfaces.
type StockSvcFacade interface {
	StockReaderSvc
	StockMaintainerSvc
}
