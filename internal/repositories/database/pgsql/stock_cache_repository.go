package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/partbin/stockledger/internal/apperrors"
	"github.com/partbin/stockledger/internal/core/domain"
	portsrepo "github.com/partbin/stockledger/internal/core/ports/repositories"
	"github.com/partbin/stockledger/internal/models"
	"github.com/partbin/stockledger/internal/utils/mapping"
)

type PgxStockCacheRepository struct {
	BaseRepository
}

// newPgxStockCacheRepository creates the Postgres-backed stock projection.
func newPgxStockCacheRepository(pool *pgxpool.Pool) portsrepo.StockCacheRepository {
	return &PgxStockCacheRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.StockCacheRepository = (*PgxStockCacheRepository)(nil)

// Get retrieves the cached level for a key.
func (r *PgxStockCacheRepository) Get(ctx context.Context, locationID, partID string) (*domain.StockLevel, error) {
	query := `
		SELECT location_id, part_id, quantity, version, computed_at, stale
		FROM stock_levels
		WHERE location_id = $1 AND part_id = $2;
	`
	var m models.StockLevel
	err := r.Pool.QueryRow(ctx, query, locationID, partID).Scan(
		&m.LocationID,
		&m.PartID,
		&m.Quantity,
		&m.Version,
		&m.ComputedAt,
		&m.Stale,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to get stock level for key "+locationID+":"+partID, err)
	}
	level := mapping.ToDomainStockLevel(m)
	return &level, nil
}

// Put overwrites the cached level for the key.
func (r *PgxStockCacheRepository) Put(ctx context.Context, level domain.StockLevel) error {
	m := mapping.ToModelStockLevel(level)
	query := `
		INSERT INTO stock_levels (location_id, part_id, quantity, version, computed_at, stale)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (location_id, part_id) DO UPDATE SET
			quantity = EXCLUDED.quantity,
			version = EXCLUDED.version,
			computed_at = EXCLUDED.computed_at,
			stale = EXCLUDED.stale;
	`
	_, err := r.Pool.Exec(ctx, query, m.LocationID, m.PartID, m.Quantity, m.Version, m.ComputedAt, m.Stale)
	if err != nil {
		return apperrors.NewAppError(500, "failed to put stock level for key "+m.LocationID+":"+m.PartID, err)
	}
	return nil
}

// Invalidate marks the key's entry stale. Marking an absent key is a no-op.
func (r *PgxStockCacheRepository) Invalidate(ctx context.Context, locationID, partID string) error {
	query := `UPDATE stock_levels SET stale = TRUE WHERE location_id = $1 AND part_id = $2;`
	_, err := r.Pool.Exec(ctx, query, locationID, partID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to invalidate stock level for key "+locationID+":"+partID, err)
	}
	return nil
}

// DeleteAll drops the entire projection, for a full rebuild.
func (r *PgxStockCacheRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.Pool.Exec(ctx, `DELETE FROM stock_levels;`); err != nil {
		return apperrors.NewAppError(500, "failed to delete stock levels", err)
	}
	return nil
}
