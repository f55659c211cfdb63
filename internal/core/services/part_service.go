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

type partService struct {
	partRepo portsrepo.PartRepository
}

// NewPartService creates a new part catalog service.
func NewPartService(partRepo portsrepo.PartRepository) portssvc.PartSvcFacade {
	return &partService{partRepo: partRepo}
}

var _ portssvc.PartSvcFacade = (*partService)(nil)

func (s *partService) CreatePart(ctx context.Context, req dto.CreatePartRequest, actorID string) (*domain.Part, error) {
	now := time.Now().UTC()
	part := domain.Part{
		PartID:   uuid.NewString(),
		SKU:      req.SKU,
		Name:     req.Name,
		Unit:     req.Unit,
		IsActive: true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}
	if err := s.partRepo.SavePart(ctx, part); err != nil {
		return nil, fmt.Errorf("failed to create part: %w", err)
	}
	return &part, nil
}

func (s *partService) GetPartByID(ctx context.Context, partID string) (*domain.Part, error) {
	part, err := s.partRepo.FindPartByID(ctx, partID)
	if err != nil {
		return nil, fmt.Errorf("failed to get part %s: %w", partID, err)
	}
	return part, nil
}

func (s *partService) ListParts(ctx context.Context, limit int, offset int) ([]domain.Part, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	parts, err := s.partRepo.ListParts(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list parts: %w", err)
	}
	if parts == nil {
		parts = []domain.Part{}
	}
	return parts, nil
}

func (s *partService) DeactivatePart(ctx context.Context, partID string, actorID string) error {
	part, err := s.partRepo.FindPartByID(ctx, partID)
	if err != nil {
		return fmt.Errorf("failed to find part %s to deactivate: %w", partID, err)
	}
	if !part.IsActive {
		return fmt.Errorf("%w: part %s is already inactive", apperrors.ErrConflict, partID)
	}
	part.IsActive = false
	part.LastUpdatedAt = time.Now().UTC()
	part.LastUpdatedBy = actorID
	if err := s.partRepo.UpdatePart(ctx, *part); err != nil {
		return fmt.Errorf("failed to deactivate part %s: %w", partID, err)
	}
	return nil
}
