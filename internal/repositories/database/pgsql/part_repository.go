package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/partbin/stockledger/internal/apperrors"
	"github.com/partbin/stockledger/internal/core/domain"
	portsrepo "github.com/partbin/stockledger/internal/core/ports/repositories"
	"github.com/partbin/stockledger/internal/models"
	"github.com/partbin/stockledger/internal/utils/mapping"
)

type PgxPartRepository struct {
	BaseRepository
}

// newPgxPartRepository creates a new repository for catalog part data.
func newPgxPartRepository(pool *pgxpool.Pool) portsrepo.PartRepository {
	return &PgxPartRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.PartRepository = (*PgxPartRepository)(nil)

// SavePart inserts a new part.
func (r *PgxPartRepository) SavePart(ctx context.Context, part domain.Part) error {
	m := mapping.ToModelPart(part)
	query := `
		INSERT INTO parts (part_id, sku, name, unit, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.PartID,
		m.SKU,
		m.Name,
		m.Unit,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("%w: part with SKU %s already exists", apperrors.ErrDuplicate, m.SKU)
		}
		return fmt.Errorf("failed to save part %s: %w", m.PartID, err)
	}
	return nil
}

// FindPartByID retrieves a part by its ID.
func (r *PgxPartRepository) FindPartByID(ctx context.Context, partID string) (*domain.Part, error) {
	query := `
		SELECT part_id, sku, name, unit, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM parts
		WHERE part_id = $1;
	`
	var m models.Part
	err := r.Pool.QueryRow(ctx, query, partID).Scan(
		&m.PartID,
		&m.SKU,
		&m.Name,
		&m.Unit,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find part by ID %s: %w", partID, err)
	}
	part := mapping.ToDomainPart(m)
	return &part, nil
}

// ListParts retrieves a page of parts ordered by SKU.
func (r *PgxPartRepository) ListParts(ctx context.Context, limit int, offset int) ([]domain.Part, error) {
	query := `
		SELECT part_id, sku, name, unit, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM parts
		ORDER BY sku
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list parts: %w", err)
	}
	defer rows.Close()

	parts := []models.Part{}
	for rows.Next() {
		var m models.Part
		err := rows.Scan(
			&m.PartID,
			&m.SKU,
			&m.Name,
			&m.Unit,
			&m.IsActive,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan part row: %w", err)
		}
		parts = append(parts, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating part rows: %w", err)
	}

	domainParts := make([]domain.Part, len(parts))
	for i, m := range parts {
		domainParts[i] = mapping.ToDomainPart(m)
	}
	return domainParts, nil
}

// UpdatePart updates a part's mutable fields.
func (r *PgxPartRepository) UpdatePart(ctx context.Context, part domain.Part) error {
	m := mapping.ToModelPart(part)
	query := `
		UPDATE parts
		SET sku = $2, name = $3, unit = $4, is_active = $5, last_updated_at = $6, last_updated_by = $7
		WHERE part_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.PartID,
		m.SKU,
		m.Name,
		m.Unit,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update part %s: %w", m.PartID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
