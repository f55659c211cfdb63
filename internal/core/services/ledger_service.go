package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/partbin/stockledger/internal/apperrors"
	"github.com/partbin/stockledger/internal/core/domain"
	portsrepo "github.com/partbin/stockledger/internal/core/ports/repositories"
	portssvc "github.com/partbin/stockledger/internal/core/ports/services"
	"github.com/partbin/stockledger/internal/dto"
	"github.com/partbin/stockledger/internal/middleware"
	"github.com/shopspring/decimal"
)

var (
	ErrUnknownPart     = errors.New("part not found in catalog")
	ErrUnknownLocation = errors.New("location not found in catalog")
	ErrInactivePart    = errors.New("part is inactive")
	ErrInactiveLoc     = errors.New("location is inactive")
)

// ledgerService handles the single-entry write commands (receipt and
// consumption) and the audit reads over committed history.
type ledgerService struct {
	ledgerRepo  portsrepo.LedgerRepositoryFacade
	stockSvc    portssvc.StockMaintainerSvc
	partSvc     portssvc.PartSvcFacade
	locationSvc portssvc.LocationSvcFacade
}

// NewLedgerService creates a new ledger service.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepositoryFacade, stockSvc portssvc.StockMaintainerSvc, partSvc portssvc.PartSvcFacade, locationSvc portssvc.LocationSvcFacade) portssvc.LedgerSvcFacade {
	return &ledgerService{
		ledgerRepo:  ledgerRepo,
		stockSvc:    stockSvc,
		partSvc:     partSvc,
		locationSvc: locationSvc,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// checkCatalog verifies the part and every referenced location exist and are
// active before a movement is accepted.
func checkCatalog(ctx context.Context, partSvc portssvc.PartSvcFacade, locationSvc portssvc.LocationSvcFacade, partID string, locationIDs ...string) error {
	part, err := partSvc.GetPartByID(ctx, partID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: %s: %s", apperrors.ErrValidation, ErrUnknownPart, partID)
		}
		return fmt.Errorf("failed to look up part %s: %w", partID, err)
	}
	if !part.IsActive {
		return fmt.Errorf("%w: %s: %s", apperrors.ErrValidation, ErrInactivePart, partID)
	}

	for _, locationID := range locationIDs {
		location, err := locationSvc.GetLocationByID(ctx, locationID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return fmt.Errorf("%w: %s: %s", apperrors.ErrValidation, ErrUnknownLocation, locationID)
			}
			return fmt.Errorf("failed to look up location %s: %w", locationID, err)
		}
		if !location.IsActive {
			return fmt.Errorf("%w: %s: %s", apperrors.ErrValidation, ErrInactiveLoc, locationID)
		}
	}
	return nil
}

// invalidateOrRefresh marks a key stale after a durable ledger write,
// falling back to a full refresh when invalidation fails. If both fail the
// cache still claims freshness over a pre-write value and nothing would ever
// force a repair, so the failure surfaces as ErrCacheStale instead of being
// swallowed. The ledger write itself is committed; callers must not retry it.
func invalidateOrRefresh(ctx context.Context, stockSvc portssvc.StockMaintainerSvc, locationID, partID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	invErr := stockSvc.Invalidate(ctx, locationID, partID)
	if invErr == nil {
		return nil
	}
	logger.Warn("Cache invalidation failed, attempting refresh",
		slog.String("error", invErr.Error()), slog.String("location_id", locationID), slog.String("part_id", partID))

	if _, refErr := stockSvc.Refresh(ctx, locationID, partID); refErr != nil {
		logger.Error("Cache could not be invalidated or refreshed after committed write",
			slog.String("invalidate_error", invErr.Error()), slog.String("refresh_error", refErr.Error()),
			slog.String("location_id", locationID), slog.String("part_id", partID))
		return fmt.Errorf("%w: key %s:%s: invalidate: %s; refresh: %s",
			apperrors.ErrCacheStale, locationID, partID, invErr, refErr)
	}
	return nil
}

// RecordReceipt commits a RECEIPT entry and invalidates the touched key.
func (s *ledgerService) RecordReceipt(ctx context.Context, req dto.CreateReceiptRequest, actorID string) (*domain.LedgerEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Quantity.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: receipt quantity must be positive", apperrors.ErrValidation)
	}
	if err := checkCatalog(ctx, s.partSvc, s.locationSvc, req.PartID, req.ToLocationID); err != nil {
		return nil, err
	}

	entry := newEntry(domain.Receipt, req.PartID, actorID, req.Metadata)
	entry.Quantity = req.Quantity
	entry.ToLocationID = req.ToLocationID

	if err := entry.Validate(); err != nil {
		return nil, err
	}
	if err := s.ledgerRepo.AppendEntry(ctx, entry); err != nil {
		logger.Error("Failed to append receipt entry", slog.String("error", err.Error()), slog.String("part_id", req.PartID))
		return nil, err
	}
	if err := invalidateOrRefresh(ctx, s.stockSvc, req.ToLocationID, req.PartID); err != nil {
		// The entry is durably committed; the caller gets it back alongside
		// the staleness error so the write is not mistaken for a failure.
		return entry, err
	}

	logger.Info("Receipt recorded", slog.String("entry_id", entry.EntryID), slog.String("part_id", req.PartID), slog.String("location_id", req.ToLocationID))
	return entry, nil
}

// RecordConsumption commits a CONSUMPTION entry and invalidates the touched
// key. The repository re-derives the source balance under the per-key lock,
// so an overdraw fails with ErrInsufficientStock and commits nothing.
func (s *ledgerService) RecordConsumption(ctx context.Context, req dto.CreateConsumptionRequest, actorID string) (*domain.LedgerEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Quantity.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: consumption quantity must be positive", apperrors.ErrValidation)
	}
	if err := checkCatalog(ctx, s.partSvc, s.locationSvc, req.PartID, req.FromLocationID); err != nil {
		return nil, err
	}

	entry := newEntry(domain.Consumption, req.PartID, actorID, req.Metadata)
	entry.Quantity = req.Quantity
	entry.FromLocationID = req.FromLocationID

	if err := entry.Validate(); err != nil {
		return nil, err
	}
	if err := s.ledgerRepo.AppendEntry(ctx, entry); err != nil {
		if errors.Is(err, apperrors.ErrInsufficientStock) {
			logger.Warn("Consumption rejected, insufficient stock", slog.String("part_id", req.PartID), slog.String("location_id", req.FromLocationID), slog.String("quantity", req.Quantity.String()))
			return nil, err
		}
		logger.Error("Failed to append consumption entry", slog.String("error", err.Error()), slog.String("part_id", req.PartID))
		return nil, err
	}
	if err := invalidateOrRefresh(ctx, s.stockSvc, req.FromLocationID, req.PartID); err != nil {
		return entry, err
	}

	logger.Info("Consumption recorded", slog.String("entry_id", entry.EntryID), slog.String("part_id", req.PartID), slog.String("location_id", req.FromLocationID))
	return entry, nil
}

// GetEntry retrieves one committed entry.
func (s *ledgerService) GetEntry(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	entry, err := s.ledgerRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find ledger entry %s: %w", entryID, err)
	}
	return entry, nil
}

// ListEntries retrieves a paginated audit slice of a key's ledger.
func (s *ledgerService) ListEntries(ctx context.Context, locationID, partID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 50
	}

	entries, nextToken, err := s.ledgerRepo.ListEntriesForKey(ctx, locationID, partID, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries for %s:%s: %w", locationID, partID, err)
	}

	return &dto.ListEntriesResponse{
		Entries:   dto.ToLedgerEntryResponses(entries),
		NextToken: nextToken,
	}, nil
}

// newEntry builds the shared fields of a fresh ledger entry. OccurredAt is
// left zero; the store assigns it at commit time.
func newEntry(kind domain.EntryKind, partID, actorID, metadata string) *domain.LedgerEntry {
	now := time.Now().UTC()
	return &domain.LedgerEntry{
		EntryID:  uuid.NewString(),
		Kind:     kind,
		PartID:   partID,
		Metadata: metadata,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}
}
