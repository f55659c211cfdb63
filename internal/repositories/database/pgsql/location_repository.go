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

type PgxLocationRepository struct {
	BaseRepository
}

// newPgxLocationRepository creates a new repository for storage location data.
func newPgxLocationRepository(pool *pgxpool.Pool) portsrepo.LocationRepository {
	return &PgxLocationRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.LocationRepository = (*PgxLocationRepository)(nil)

// SaveLocation inserts a new location.
func (r *PgxLocationRepository) SaveLocation(ctx context.Context, location domain.Location) error {
	m := mapping.ToModelLocation(location)
	query := `
		INSERT INTO locations (location_id, code, name, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.LocationID,
		m.Code,
		m.Name,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("%w: location with code %s already exists", apperrors.ErrDuplicate, m.Code)
		}
		return fmt.Errorf("failed to save location %s: %w", m.LocationID, err)
	}
	return nil
}

// FindLocationByID retrieves a location by its ID.
func (r *PgxLocationRepository) FindLocationByID(ctx context.Context, locationID string) (*domain.Location, error) {
	query := `
		SELECT location_id, code, name, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM locations
		WHERE location_id = $1;
	`
	var m models.Location
	err := r.Pool.QueryRow(ctx, query, locationID).Scan(
		&m.LocationID,
		&m.Code,
		&m.Name,
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
		return nil, fmt.Errorf("failed to find location by ID %s: %w", locationID, err)
	}
	location := mapping.ToDomainLocation(m)
	return &location, nil
}

// ListLocations retrieves a page of locations ordered by code.
func (r *PgxLocationRepository) ListLocations(ctx context.Context, limit int, offset int) ([]domain.Location, error) {
	query := `
		SELECT location_id, code, name, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM locations
		ORDER BY code
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	defer rows.Close()

	locations := []models.Location{}
	for rows.Next() {
		var m models.Location
		err := rows.Scan(
			&m.LocationID,
			&m.Code,
			&m.Name,
			&m.IsActive,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan location row: %w", err)
		}
		locations = append(locations, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating location rows: %w", err)
	}

	domainLocations := make([]domain.Location, len(locations))
	for i, m := range locations {
		domainLocations[i] = mapping.ToDomainLocation(m)
	}
	return domainLocations, nil
}

// UpdateLocation updates a location's mutable fields.
func (r *PgxLocationRepository) UpdateLocation(ctx context.Context, location domain.Location) error {
	m := mapping.ToModelLocation(location)
	query := `
		UPDATE locations
		SET code = $2, name = $3, is_active = $4, last_updated_at = $5, last_updated_by = $6
		WHERE location_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.LocationID,
		m.Code,
		m.Name,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update location %s: %w", m.LocationID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
