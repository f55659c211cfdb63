package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/partbin/stockledger/internal/core/ports/repositories"
)

// NewRepositoryProvider wires the Postgres-backed repositories. The stock
// cache defaults to the Postgres projection; callers running a Redis cache
// swap the StockCacheRepo field before building services.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		LedgerRepo:     newPgxLedgerRepository(dbPool),
		StockCacheRepo: newPgxStockCacheRepository(dbPool),
		PartRepo:       newPgxPartRepository(dbPool),
		LocationRepo:   newPgxLocationRepository(dbPool),
	}
}
