package services

import (
	"context"

	"github.com/partbin/stockledger/internal/core/domain"
	"github.com/partbin/stockledger/internal/dto"
)

// PartSvcFacade manages the part catalog.
type PartSvcFacade interface {
	CreatePart(ctx context.Context, req dto.CreatePartRequest, actorID string) (*domain.Part, error)
	GetPartByID(ctx context.Context, partID string) (*domain.Part, error)
	ListParts(ctx context.Context, limit int, offset int) ([]domain.Part, error)
	DeactivatePart(ctx context.Context, partID string, actorID string) error
}

// LocationSvcFacade manages the storage location catalog.
type LocationSvcFacade interface {
	CreateLocation(ctx context.Context, req dto.CreateLocationRequest, actorID string) (*domain.Location, error)
	GetLocationByID(ctx context.Context, locationID string) (*domain.Location, error)
	ListLocations(ctx context.Context, limit int, offset int) ([]domain.Location, error)
	DeactivateLocation(ctx context.Context, locationID string, actorID string) error
}
