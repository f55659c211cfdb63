package repositories

import (
	"context"

	"github.com/partbin/stockledger/internal/core/domain"
)

// PartRepository defines persistence operations for catalog parts.
type PartRepository interface {
	SavePart(ctx context.Context, part domain.Part) error
	FindPartByID(ctx context.Context, partID string) (*domain.Part, error)
	ListParts(ctx context.Context, limit int, offset int) ([]domain.Part, error)
	UpdatePart(ctx context.Context, part domain.Part) error
}

// LocationRepository defines persistence operations for storage locations.
type LocationRepository interface {
	SaveLocation(ctx context.Context, location domain.Location) error
	FindLocationByID(ctx context.Context, locationID string) (*domain.Location, error)
	ListLocations(ctx context.Context, limit int, offset int) ([]domain.Location, error)
	UpdateLocation(ctx context.Context, location domain.Location) error
}
