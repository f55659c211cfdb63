package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/partbin/stockledger/internal/apperrors"
	"github.com/partbin/stockledger/internal/core/domain"
	portsrepo "github.com/partbin/stockledger/internal/core/ports/repositories"
	portssvc "github.com/partbin/stockledger/internal/core/ports/services"
	"github.com/partbin/stockledger/internal/dto"
)

type locationService struct {
	locationRepo portsrepo.LocationRepository
}

// NewLocationService creates a new location catalog service.
func NewLocationService(locationRepo portsrepo.LocationRepository) portssvc.LocationSvcFacade {
	return &locationService{locationRepo: locationRepo}
}

var _ portssvc.LocationSvcFacade = (*locationService)(nil)

func (s *locationService) CreateLocation(ctx context.Context, req dto.CreateLocationRequest, actorID string) (*domain.Location, error) {
	now := time.Now().UTC()
	location := domain.Location{
		LocationID: uuid.NewString(),
		Code:       req.Code,
		Name:       req.Name,
		IsActive:   true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}
	if err := s.locationRepo.SaveLocation(ctx, location); err != nil {
		return nil, fmt.Errorf("failed to create location: %w", err)
	}
	return &location, nil
}

func (s *locationService) GetLocationByID(ctx context.Context, locationID string) (*domain.Location, error) {
	location, err := s.locationRepo.FindLocationByID(ctx, locationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get location %s: %w", locationID, err)
	}
	return location, nil
}

func (s *locationService) ListLocations(ctx context.Context, limit int, offset int) ([]domain.Location, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	locations, err := s.locationRepo.ListLocations(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	if locations == nil {
		locations = []domain.Location{}
	}
	return locations, nil
}

func (s *locationService) DeactivateLocation(ctx context.Context, locationID string, actorID string) error {
	location, err := s.locationRepo.FindLocationByID(ctx, locationID)
	if err != nil {
		return fmt.Errorf("failed to find location %s to deactivate: %w", locationID, err)
	}
	if !location.IsActive {
		return fmt.Errorf("%w: location %s is already inactive", apperrors.ErrConflict, locationID)
	}
	location.IsActive = false
	location.LastUpdatedAt = time.Now().UTC()
	location.LastUpdatedBy = actorID
	if err := s.locationRepo.UpdateLocation(ctx, *location); err != nil {
		return fmt.Errorf("failed to deactivate location %s: %w", locationID, err)
	}
	return nil
}
