package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/partbin/stockledger/internal/apperrors"
	"github.com/partbin/stockledger/internal/core/domain"
	portsrepo "github.com/partbin/stockledger/internal/core/ports/repositories"
	portssvc "github.com/partbin/stockledger/internal/core/ports/services"
	"github.com/partbin/stockledger/internal/dto"
	"github.com/partbin/stockledger/internal/middleware"
)

// adjustmentService reconciles derived stock against an externally observed
// count. It never rewrites history; every correction becomes an explanatory
// ADJUSTMENT entry in the ledger.
type adjustmentService struct {
	ledgerRepo  portsrepo.LedgerRepositoryFacade
	stockSvc    portssvc.StockSvcFacade
	partSvc     portssvc.PartSvcFacade
	locationSvc portssvc.LocationSvcFacade
}

// NewAdjustmentService creates a new adjustment reconciler.
func NewAdjustmentService(ledgerRepo portsrepo.LedgerRepositoryFacade, stockSvc portssvc.StockSvcFacade, partSvc portssvc.PartSvcFacade, locationSvc portssvc.LocationSvcFacade) portssvc.AdjustmentSvcFacade {
	return &adjustmentService{
		ledgerRepo:  ledgerRepo,
		stockSvc:    stockSvc,
		partSvc:     partSvc,
		locationSvc: locationSvc,
	}
}

var _ portssvc.AdjustmentSvcFacade = (*adjustmentService)(nil)

// Adjust sets the key's stock to the observed count by appending an
// ADJUSTMENT entry whose signed change bridges the gap between the derived
// quantity and the observation. A zero-delta adjustment is still recorded:
// the operator confirmed the count, and the audit trail should say so.
func (s *adjustmentService) Adjust(ctx context.Context, req dto.CreateAdjustmentRequest, actorID string) (*domain.AdjustmentRecord, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.NewQuantity.IsNegative() {
		return nil, fmt.Errorf("%w: observed quantity must not be negative, got %s", apperrors.ErrValidation, req.NewQuantity)
	}
	if req.Reason == "" {
		return nil, fmt.Errorf("%w: an adjustment requires a reason", apperrors.ErrValidation)
	}
	if err := checkCatalog(ctx, s.partSvc, s.locationSvc, req.PartID, req.LocationID); err != nil {
		return nil, err
	}

	before, err := s.stockSvc.ProjectStock(ctx, req.LocationID, req.PartID)
	if err != nil {
		return nil, fmt.Errorf("failed to derive current stock for adjustment: %w", err)
	}
	change := req.NewQuantity.Sub(before)

	entry := newEntry(domain.Adjustment, req.PartID, actorID, req.Metadata)
	entry.ToLocationID = req.LocationID
	entry.Quantity = change.Abs()
	entry.QuantityChange = change
	entry.Reason = req.Reason
	if err := entry.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err)
	}

	if err := s.ledgerRepo.AppendEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to append adjustment entry: %w", err)
	}

	record := &domain.AdjustmentRecord{
		EntryID:        entry.EntryID,
		LocationID:     req.LocationID,
		PartID:         req.PartID,
		QuantityBefore: before,
		QuantityAfter:  req.NewQuantity,
		QuantityChange: change,
		Reason:         req.Reason,
		AdjustedAt:     entry.OccurredAt,
		AdjustedBy:     actorID,
	}

	// Refresh brings the cache straight to the observed count. If that fails
	// fall back to marking the key stale; if neither works the cache would
	// keep serving the pre-adjustment value as fresh, so surface it.
	if _, refErr := s.stockSvc.Refresh(ctx, req.LocationID, req.PartID); refErr != nil {
		logger.Warn("Cache refresh failed after adjustment, falling back to invalidation",
			slog.String("error", refErr.Error()), slog.String("location_id", req.LocationID), slog.String("part_id", req.PartID))
		if invErr := s.stockSvc.Invalidate(ctx, req.LocationID, req.PartID); invErr != nil {
			return record, fmt.Errorf("%w: key %s:%s: refresh: %s; invalidate: %s",
				apperrors.ErrCacheStale, req.LocationID, req.PartID, refErr, invErr)
		}
	}

	logger.Info("Adjustment committed",
		slog.String("entry_id", entry.EntryID), slog.String("location_id", req.LocationID),
		slog.String("part_id", req.PartID), slog.String("quantity_change", change.String()),
		slog.String("reason", req.Reason))

	return record, nil
}
